// Package calendar renders events as iCalendar (RFC 5545) documents.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/sheet-events/internal/event"
)

const prodID = "-//sheet-events//sheet-events//EN"

// ErrNoDate is returned for events whose date is not a calendar date
var ErrNoDate = errors.New("event has no usable date")

// GenerateICS generates a single-event iCalendar file.
// stamp is written as DTSTAMP.
func GenerateICS(evt *event.Event, stamp time.Time) (string, error) {
	var ics strings.Builder
	writeHeader(&ics, "")
	if err := writeEvent(&ics, evt, stamp); err != nil {
		return "", err
	}
	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String(), nil
}

// GenerateBulkICS generates one calendar holding every event with a usable date.
// Undated events are skipped. Returns "" when nothing can be exported.
func GenerateBulkICS(events []*event.Event, name string, stamp time.Time) string {
	var body strings.Builder
	count := 0
	for _, evt := range events {
		if writeEvent(&body, evt, stamp) == nil {
			count++
		}
	}
	if count == 0 {
		return ""
	}

	var ics strings.Builder
	writeHeader(&ics, name)
	ics.WriteString(body.String())
	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeHeader(ics *strings.Builder, name string) {
	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:" + prodID + "\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	if name != "" {
		writeProp(ics, "X-WR-CALNAME", escapeICS(name))
	}
}

// writeEvent writes one all-day VEVENT; nothing is written on error
func writeEvent(ics *strings.Builder, evt *event.Event, stamp time.Time) error {
	start := evt.ParsedDate()
	if start.IsZero() {
		return fmt.Errorf("%w: %q", ErrNoDate, evt.Date)
	}

	ics.WriteString("BEGIN:VEVENT\r\n")
	writeProp(ics, "UID", uid(evt))
	writeProp(ics, "DTSTAMP", stamp.UTC().Format("20060102T150405Z"))
	writeProp(ics, "DTSTART;VALUE=DATE", start.Format("20060102"))
	writeProp(ics, "DTEND;VALUE=DATE", start.AddDate(0, 0, 1).Format("20060102"))
	writeProp(ics, "SUMMARY", escapeICS(evt.Title))

	if desc := description(evt); desc != "" {
		writeProp(ics, "DESCRIPTION", escapeICS(desc))
	}
	if evt.Venue != "" {
		writeProp(ics, "LOCATION", escapeICS(evt.Venue))
	}
	if len(evt.Tags) > 0 {
		tags := make([]string, len(evt.Tags))
		for i, tag := range evt.Tags {
			tags[i] = escapeICS(tag)
		}
		writeProp(ics, "CATEGORIES", strings.Join(tags, ","))
	}
	if evt.Organizer != "" {
		writeProp(ics, "ORGANIZER;CN="+quoteParam(evt.Organizer), organizerURI(evt))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")
	ics.WriteString("END:VEVENT\r\n")
	return nil
}

// uid prefers the event code, which is stable across fetches; row ids are not
func uid(evt *event.Event) string {
	key := evt.EventCode
	if key == "" {
		key = evt.ID + "-" + evt.Date
	}
	return strings.ReplaceAll(key, " ", "-") + "@sheet-events"
}

func description(evt *event.Event) string {
	var lines []string
	if evt.Description != "" {
		lines = append(lines, evt.Description)
	}
	if evt.Time != "" {
		lines = append(lines, "Time: "+evt.Time)
	}
	if evt.Club != "" {
		lines = append(lines, "Club: "+evt.Club)
	}
	if evt.Fees != "" {
		lines = append(lines, "Fees: "+evt.Fees)
	}
	if evt.RegistrationDeadline != "" {
		lines = append(lines, "Register by: "+evt.RegistrationDeadline)
	}
	return strings.Join(lines, "\n")
}

func organizerURI(evt *event.Event) string {
	if evt.ContactEmail != "" {
		return "mailto:" + evt.ContactEmail
	}
	return "mailto:noreply@sheet-events.invalid"
}

// quoteParam makes a parameter value safe; DQUOTE is not allowed inside
func quoteParam(s string) string {
	s = strings.ReplaceAll(s, `"`, "'")
	if strings.ContainsAny(s, ":;,") {
		return `"` + s + `"`
	}
	return s
}

// writeProp writes a content line, folded at 75 octets
func writeProp(ics *strings.Builder, name, value string) {
	line := name + ":" + value
	limit := 75
	for len(line) > limit {
		cut := limit
		// never split a UTF-8 sequence
		for cut > 0 && line[cut]&0xC0 == 0x80 {
			cut--
		}
		ics.WriteString(line[:cut])
		ics.WriteString("\r\n ")
		line = line[cut:]
		limit = 74 // continuation lines start with a space
	}
	ics.WriteString(line)
	ics.WriteString("\r\n")
}

// escapeICS escapes special characters for iCalendar text values
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
