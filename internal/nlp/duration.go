package nlp

import (
	"regexp"
	"strconv"
)

const DefaultStudyMinutes = 60

// maxExtractedMinutes bounds what ExtractStudyDuration reports: one year.
const maxExtractedMinutes = 366 * 24 * 60

var durationPatterns = []struct {
	re      *regexp.Regexp
	minutes int
}{
	{regexp.MustCompile(`(?i)(\d+)\s*(hours|hour|hrs|hr)`), 60},
	{regexp.MustCompile(`(?i)(\d+)\s*(minutes|minute|mins|min)`), 1},
	{regexp.MustCompile(`(?i)(\d+)\s*(days|day)`), 24 * 60},
	{regexp.MustCompile(`(?i)(\d+)\s*(weeks|week)`), 7 * 24 * 60},
}

// ExtractStudyDuration returns the first duration mentioned in text, in
// minutes. Units are tried hours, minutes, days, weeks. A number too large
// to be a real duration yields the default.
func ExtractStudyDuration(text string) int {
	for _, p := range durationPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n > maxExtractedMinutes/p.minutes {
			return DefaultStudyMinutes
		}
		return n * p.minutes
	}
	return DefaultStudyMinutes
}
