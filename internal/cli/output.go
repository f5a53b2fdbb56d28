package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/sheet-events/internal/event"
	"github.com/pfrederiksen/sheet-events/internal/session"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat validates an output format name
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
}

// WriteList writes an event list in the specified format
func WriteList(w io.Writer, env session.Envelope, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, env)
	case FormatText:
		return writeListText(w, env, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteEvent writes one event in the specified format
func WriteEvent(w io.Writer, evt *event.Event, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, evt)
	case FormatText:
		return writeDetailText(w, evt)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeListText outputs one line per event: "#id  date  title  [status]"
func writeListText(w io.Writer, env session.Envelope, verbose bool) error {
	if env.Source == session.OriginFallback {
		fmt.Fprintln(w, "Showing sample events: the live sheet could not be loaded.")
	}

	if env.EventCount == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	for _, evt := range env.Events {
		date := evt.Date
		if date == "" {
			date = "TBA"
		}
		fmt.Fprintf(w, "#%-4s %-10s  %s  [%s]\n", evt.ID, date, evt.Title, evt.RegistrationStatus)
		if verbose {
			if evt.Time != "" {
				fmt.Fprintf(w, "       Time: %s\n", evt.Time)
			}
			if evt.Venue != "" {
				fmt.Fprintf(w, "       Venue: %s\n", evt.Venue)
			}
			fmt.Fprintf(w, "       Category: %s\n", evt.Category)
		}
	}

	label := "events"
	if env.EventCount == 1 {
		label = "event"
	}
	fmt.Fprintf(w, "\nTotal: %d %s\n", env.EventCount, label)
	return nil
}

// writeDetailText renders the full detail view of an event
func writeDetailText(w io.Writer, evt *event.Event) error {
	fmt.Fprintf(w, "%s\n", evt.Title)
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", len([]rune(evt.Title))))

	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%-14s %s\n", label+":", value)
		}
	}

	field("ID", evt.ID)
	field("Code", evt.EventCode)
	field("Date", evt.Date)
	field("Time", evt.Time)
	field("Venue", evt.Venue)
	field("Club", evt.Club)
	field("Organizer", evt.Organizer)
	field("Category", evt.Category)
	field("Tags", strings.Join(evt.Tags, ", "))
	field("Registration", string(evt.RegistrationStatus))
	field("Deadline", evt.RegistrationDeadline)
	if left, ok := evt.Spots(); ok {
		field("Spots left", fmt.Sprintf("%d of %d", left, *evt.MaxParticipants))
	}
	field("Fees", evt.Fees)
	field("Prize", evt.Prize)
	field("Email", evt.ContactEmail)
	field("Phone", evt.ContactPhone)
	field("Image", evt.ImageURL)

	if evt.Description != "" {
		fmt.Fprintf(w, "\n%s\n", evt.Description)
	}

	if len(evt.Schedule) > 0 {
		fmt.Fprintln(w, "\nSchedule:")
		for _, item := range evt.Schedule {
			if item.Time != "" {
				fmt.Fprintf(w, "  %-10s %s\n", item.Time, item.Activity)
			} else {
				fmt.Fprintf(w, "  %s\n", item.Activity)
			}
		}
	}

	if len(evt.Rounds) > 0 {
		fmt.Fprintln(w, "\nRounds:")
		for i, round := range evt.Rounds {
			if round.Description != "" {
				fmt.Fprintf(w, "  %d. %s - %s\n", i+1, round.Name, round.Description)
			} else {
				fmt.Fprintf(w, "  %d. %s\n", i+1, round.Name)
			}
		}
	}

	if len(evt.Rules) > 0 {
		fmt.Fprintln(w, "\nRules:")
		for _, rule := range evt.Rules {
			fmt.Fprintf(w, "  - %s\n", rule)
		}
	}
	return nil
}
