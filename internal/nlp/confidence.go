package nlp

import "math"

// Score rates how much of a message was understood, in [0, 1].
func Score(intent Intent, subject Subject, keywords []string) float64 {
	var c float64
	if intent != IntentUnknown {
		c += 0.3
	}
	if subject != "" {
		c += 0.3
	}
	if n := len(keywords); n > 0 {
		c += math.Min(float64(n)*0.05, 0.4)
	}
	return math.Max(0, math.Min(c, 1.0))
}
