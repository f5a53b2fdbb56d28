// Package fallback provides the event list shown when the live feed yields nothing.
package fallback

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/sheet-events/internal/event"
)

//go:embed events.json
var builtin []byte

// timeNow is replaced in tests
var timeNow = time.Now

// Default returns a fresh copy of the built-in event list
func Default() []*event.Event {
	events, err := decode(builtin)
	if err != nil {
		panic(fmt.Sprintf("fallback: built-in events are invalid: %v", err))
	}
	return events
}

// Load reads a JSON array of events from path. A leading "~/" is expanded to the
// home directory.
func Load(path string) ([]*event.Event, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fallback events: %w", err)
	}

	events, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return events, nil
}

// decode parses an event array and fills the fields every event must carry
func decode(data []byte) ([]*event.Event, error) {
	var events []*event.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}

	out := make([]*event.Event, 0, len(events))
	for i, evt := range events {
		if evt == nil || strings.TrimSpace(evt.Title) == "" {
			return nil, fmt.Errorf("event %d has no title", i+1)
		}
		if evt.ID == "" {
			evt.ID = strconv.Itoa(i + 1)
		}
		if evt.Category == "" {
			evt.Category = event.DefaultCategory
		}
		if len(evt.Tags) == 0 {
			evt.Tags = []string{evt.Category}
		}
		if !evt.RegistrationStatus.Valid() {
			evt.RegistrationStatus = event.ResolveStatus(string(evt.RegistrationStatus), evt.Date, timeNow())
		}
		out = append(out, evt)
	}
	return out, nil
}
