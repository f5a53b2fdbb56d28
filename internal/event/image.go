package event

import (
	"regexp"
	"strings"
)

// DriveImageBase serves Drive files as directly embeddable images
const DriveImageBase = "https://lh3.googleusercontent.com/d/"

var (
	driveIDParam = regexp.MustCompile(`[?&]id=([\w-]+)`)
	driveIDPath  = regexp.MustCompile(`/file/d/([\w-]+)`)
)

// NormalizeImageURL rewrites Drive share links to a direct image URL.
//
// The file id is taken from an id= query parameter first, then from a /file/d/<id>
// path. Links without a Drive id are kept only when they are absolute http(s) URLs.
// Returns "" when there is no usable image.
func NormalizeImageURL(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}

	if m := driveIDParam.FindStringSubmatch(v); m != nil {
		return DriveImageBase + m[1]
	}
	if m := driveIDPath.FindStringSubmatch(v); m != nil {
		return DriveImageBase + m[1]
	}

	if strings.HasPrefix(v, "http") {
		return v
	}
	return ""
}
