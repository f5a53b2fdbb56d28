package feed

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/sheet-events/internal/event"
	"github.com/pfrederiksen/sheet-events/internal/sheet"
)

// UntitledEvent is the title given to rows with no title; such rows are dropped
const UntitledEvent = "Untitled Event"

var dashesOnly = regexp.MustCompile(`^-+$`)

// Assemble converts every table row into an event and drops placeholder rows.
//
// IDs are assigned from the row position before filtering, so the first data row
// is always "1" even when it is dropped. The second return value is the number of
// dropped rows.
func Assemble(table *sheet.Table, now time.Time) ([]*event.Event, int) {
	events := make([]*event.Event, 0, table.Len())
	if table.Len() == 0 {
		return events, 0
	}

	cols := table.Columns()
	dropped := 0
	for i, row := range table.Rows {
		evt := assembleRow(cols, row, strconv.Itoa(i+1), now)
		if !keep(evt) {
			dropped++
			continue
		}
		events = append(events, evt)
	}
	return events, dropped
}

func assembleRow(cols *sheet.Columns, row []string, id string, now time.Time) *event.Event {
	category := cols.LookupOr(row, event.DefaultCategory, categoryFields...)
	club := cols.Lookup(row, clubFields...)
	date := event.NormalizeDate(cols.Lookup(row, dateFields...))

	deadline := cols.Lookup(row, deadlineFields...)
	if deadline != "" {
		deadline = event.NormalizeDate(deadline)
	}

	return &event.Event{
		ID:                   id,
		EventCode:            cols.Lookup(row, eventCodeFields...),
		Title:                cols.LookupOr(row, UntitledEvent, titleFields...),
		Date:                 date,
		Time:                 cols.Lookup(row, timeFields...),
		Venue:                cols.Lookup(row, venueFields...),
		Club:                 club,
		Category:             category,
		Description:          cols.Lookup(row, descriptionFields...),
		Tags:                 event.ParseTags(cols.Lookup(row, tagFields...), category),
		Organizer:            cols.LookupOr(row, club, organizerFields...),
		RegistrationStatus:   event.ResolveStatus(cols.Lookup(row, statusFields...), date, now),
		RegistrationDeadline: deadline,
		MaxParticipants:      parseCount(cols.Lookup(row, capacityFields...)),
		CurrentParticipants:  parseCount(cols.Lookup(row, registeredFields...)),
		Schedule:             event.ParseSchedule(cols.Lookup(row, scheduleFields...)),
		Rounds:               event.ParseRounds(cols.Lookup(row, roundFields...)),
		Rules:                event.ParseRules(cols.Lookup(row, ruleFields...)),
		ContactEmail:         cols.Lookup(row, emailFields...),
		ContactPhone:         cols.Lookup(row, phoneFields...),
		Prize:                cols.Lookup(row, prizeFields...),
		Fees:                 cols.Lookup(row, feeFields...),
		ImageURL:             event.NormalizeImageURL(cols.Lookup(row, imageFields...)),
	}
}

// keep reports whether an assembled row is a real event rather than a blank or
// placeholder row
func keep(evt *event.Event) bool {
	title := strings.TrimSpace(evt.Title)
	if title == "" || title == UntitledEvent {
		return false
	}
	if dashesOnly.MatchString(title) {
		return false
	}
	if code := strings.TrimSpace(evt.EventCode); code != "" && dashesOnly.MatchString(code) {
		return false
	}
	return true
}

// parseCount reads a participant count. Spreadsheet numbers such as "120.0" are
// accepted; negative, fractional or non-numeric cells yield nil.
func parseCount(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return nil
		}
		return &n
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return nil
	}
	n := int(f)
	return &n
}
