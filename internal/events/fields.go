package events

import (
	"encoding/json"
	"strings"
)

// splitRule turns a plain-text list field into its items.
type splitRule func(raw string) []string

// splitAgendaLines splits on newlines, trims each line and drops blank ones.
func splitAgendaLines(raw string) []string {
	items := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			items = append(items, t)
		}
	}
	return items
}

// splitTagList splits on commas and trims each piece. Blank pieces are kept.
func splitTagList(raw string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		items = append(items, strings.TrimSpace(p))
	}
	return items
}

// parseListField reads raw as a JSON array of strings and falls back to split
// when raw is anything else, including an array holding null.
func parseListField(raw string, split splitRule) []string {
	var elems []*string
	if err := json.Unmarshal([]byte(raw), &elems); err != nil || elems == nil {
		return split(raw)
	}
	items := make([]string, 0, len(elems))
	for _, e := range elems {
		if e == nil {
			return split(raw)
		}
		items = append(items, *e)
	}
	return items
}

// ParseAgenda normalizes a submitted agenda value.
func ParseAgenda(raw string) []string {
	return parseListField(raw, splitAgendaLines)
}

// ParseTags normalizes a submitted tags value.
func ParseTags(raw string) []string {
	return parseListField(raw, splitTagList)
}
