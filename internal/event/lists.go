package event

import (
	"encoding/json"
	"regexp"
	"strings"
)

// lineSeparators splits free-text list cells into entries
var lineSeparators = regexp.MustCompile(`[\n;|]`)

// scheduleSeparator matches the first dash, en-dash, em-dash or colon run that is
// followed by whitespace, so "10:00 AM - Keynote" splits at the dash, not the colon.
var scheduleSeparator = regexp.MustCompile(`^(.*?)\s*[-–—:]+\s+(.+)$`)

// looksLikeJSONArray is the predicate that selects structured decoding
func looksLikeJSONArray(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), "[")
}

// decodeJSONArray decodes raw into out when it looks like a JSON array.
// Returns false when the cell is not JSON or does not match the target shape.
func decodeJSONArray(raw string, out interface{}) bool {
	if !looksLikeJSONArray(raw) {
		return false
	}
	return json.Unmarshal([]byte(strings.TrimSpace(raw)), out) == nil
}

// SplitLines splits a cell on newlines, semicolons and pipes.
// Entries are trimmed and empty entries dropped.
func SplitLines(raw string) []string {
	var lines []string
	for _, part := range lineSeparators.Split(raw, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			lines = append(lines, part)
		}
	}
	return lines
}

// ParseSchedule parses a schedule cell.
// Accepts a JSON array of {time, activity} objects or lines like "10:00 AM - Keynote".
// Returns nil for an empty cell.
func ParseSchedule(raw string) []ScheduleItem {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var decoded []ScheduleItem
	if decodeJSONArray(raw, &decoded) {
		return nilIfEmptySchedule(decoded)
	}

	var items []ScheduleItem
	for _, line := range SplitLines(raw) {
		items = append(items, parseScheduleLine(line))
	}
	return nilIfEmptySchedule(items)
}

func parseScheduleLine(line string) ScheduleItem {
	m := scheduleSeparator.FindStringSubmatch(line)
	if m == nil {
		return ScheduleItem{Activity: line}
	}
	return ScheduleItem{
		Time:     strings.TrimSpace(m[1]),
		Activity: strings.TrimSpace(m[2]),
	}
}

func nilIfEmptySchedule(items []ScheduleItem) []ScheduleItem {
	if len(items) == 0 {
		return nil
	}
	return items
}

// ParseRounds parses a rounds cell.
// Accepts a JSON array of {name, description} objects or one round name per line.
func ParseRounds(raw string) []Round {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var decoded []Round
	if decodeJSONArray(raw, &decoded) {
		if len(decoded) == 0 {
			return nil
		}
		return decoded
	}

	var rounds []Round
	for _, line := range SplitLines(raw) {
		rounds = append(rounds, Round{Name: line})
	}
	return rounds
}

// ParseRules parses a rules cell.
// Accepts a JSON array of strings or one rule per line.
func ParseRules(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var decoded []string
	if decodeJSONArray(raw, &decoded) {
		if len(decoded) == 0 {
			return nil
		}
		return decoded
	}
	return SplitLines(raw)
}

// ParseTags splits a comma-separated tags cell.
// Falls back to the category so an event always carries at least one tag.
func ParseTags(raw, category string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return []string{category}
	}
	return tags
}
