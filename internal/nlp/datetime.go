package nlp

import (
	"regexp"
	"strings"
)

// DateTime holds the raw date and time fragments found in a message.
type DateTime struct {
	Dates []string `json:"dates"`
	Times []string `json:"times"`
}

func (d DateTime) Empty() bool { return len(d.Dates) == 0 && len(d.Times) == 0 }

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(today|tomorrow|yesterday)\b`),
	regexp.MustCompile(`(?i)\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`),
	regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
	regexp.MustCompile(`(?i)\b(next week|this week|next month)\b`),
}

var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d{1,2}:\d{2})\s*(am|pm)?\b`),
	regexp.MustCompile(`(?i)\b(\d{1,2})\s*(am|pm)\b`),
	regexp.MustCompile(`(?i)\b(morning|afternoon|evening|night)\b`),
}

// ExtractDateTime reports date fragments in pattern order and time fragments
// in pattern order, skipping a time that overlaps one already reported.
func ExtractDateTime(text string) DateTime {
	out := DateTime{Dates: []string{}, Times: []string{}}
	if strings.TrimSpace(text) == "" {
		return out
	}

	for _, p := range datePatterns {
		for _, m := range p.FindAllString(text, -1) {
			out.Dates = append(out.Dates, strings.TrimSpace(m))
		}
	}

	var taken [][]int
	for _, p := range timePatterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			if overlapsAny(loc, taken) {
				continue
			}
			taken = append(taken, loc)
			out.Times = append(out.Times, strings.TrimSpace(text[loc[0]:loc[1]]))
		}
	}
	return out
}

func overlapsAny(loc []int, spans [][]int) bool {
	for _, s := range spans {
		if loc[0] < s[1] && s[0] < loc[1] {
			return true
		}
	}
	return false
}
