package feed

// Header candidates per field, most specific first. Columns are matched by
// case-insensitive substring, so "event" also matches "Event Code".
var (
	titleFields       = []string{"title", "name", "event"}
	eventCodeFields   = []string{"event code", "code"}
	descriptionFields = []string{"description", "about"}
	dateFields        = []string{"date"}
	timeFields        = []string{"time"}
	venueFields       = []string{"venue", "location", "place"}
	clubFields        = []string{"club", "organizer", "organisation"}
	organizerFields   = []string{"organizer", "organized by", "contact person"}
	categoryFields    = []string{"category", "type"}
	tagFields         = []string{"tags", "tag"}
	statusFields      = []string{"registration", "status"}
	deadlineFields    = []string{"registration deadline", "deadline"}
	capacityFields    = []string{"max participants", "capacity"}
	registeredFields  = []string{"current participants", "registered"}
	imageFields       = []string{"image", "poster", "img"}
	emailFields       = []string{"email", "contact email"}
	phoneFields       = []string{"phone", "contact phone"}
	feeFields         = []string{"fees", "fee", "price"}
	prizeFields       = []string{"prize", "prizes", "rewards"}
	scheduleFields    = []string{"schedule"}
	roundFields       = []string{"rounds"}
	ruleFields        = []string{"rules"}
)
