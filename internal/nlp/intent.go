package nlp

import (
	"regexp"
	"strings"
)

// Intent is the closed set of message categories the assistant dispatches on.
type Intent string

const (
	IntentQuestion Intent = "question"
	IntentStudyTip Intent = "study_tip"
	IntentReminder Intent = "reminder"
	IntentSchedule Intent = "schedule"
	IntentNote     Intent = "note"
	IntentGreeting Intent = "greeting"
	IntentGoodbye  Intent = "goodbye"
	IntentGeneral  Intent = "general"
	IntentUnknown  Intent = "unknown"
	// IntentError is only produced when processing a message fails.
	IntentError Intent = "error"
)

var allIntents = []Intent{
	IntentQuestion,
	IntentStudyTip,
	IntentReminder,
	IntentSchedule,
	IntentNote,
	IntentGreeting,
	IntentGoodbye,
	IntentGeneral,
	IntentUnknown,
	IntentError,
}

func Intents() []Intent {
	return append([]Intent(nil), allIntents...)
}

func (i Intent) Valid() bool {
	for _, known := range allIntents {
		if i == known {
			return true
		}
	}
	return false
}

func (i Intent) String() string { return string(i) }

// classifiable reports whether a rule table may map text to i.
func (i Intent) classifiable() bool {
	return i.Valid() && i != IntentGeneral && i != IntentUnknown && i != IntentError
}

type IntentRule struct {
	Intent   Intent
	Patterns []*regexp.Regexp
}

// IntentClassifier maps text to the first rule with a matching pattern.
// Rule order is priority order.
type IntentClassifier struct {
	rules []IntentRule
}

func NewIntentClassifier(rules []IntentRule) *IntentClassifier {
	return &IntentClassifier{rules: append([]IntentRule(nil), rules...)}
}

func (c *IntentClassifier) Classify(text string) Intent {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return IntentUnknown
	}
	for _, rule := range c.rules {
		for _, p := range rule.Patterns {
			if p.MatchString(lower) {
				return rule.Intent
			}
		}
	}
	return IntentGeneral
}
