package nlp

import (
	"regexp"
	"strings"
)

var questionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\?`),
	regexp.MustCompile(`(?i)\b(what|how|why|when|where|who|which)\b`),
	regexp.MustCompile(`(?i)\b(can you|could you|would you|do you|did you|will you)\b`),
	regexp.MustCompile(`(?i)\b(is|are|was|were|does|did|will|would|could|should)\b.*\?`),
}

func IsQuestion(text string) bool {
	for _, p := range questionPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Similarity is the Jaccard index of the whitespace separated words of a and b.
func Similarity(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)
	union := len(wa)
	inter := 0
	for w := range wb {
		if _, ok := wa[w]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
