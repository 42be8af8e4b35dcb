package nlp

import "strings"

// Subject is an academic area; the empty Subject means none was detected.
type Subject string

const (
	SubjectMathematics     Subject = "mathematics"
	SubjectScience         Subject = "science"
	SubjectHistory         Subject = "history"
	SubjectEnglish         Subject = "english"
	SubjectComputerScience Subject = "computer science"
	SubjectStudyTips       Subject = "study tips"
)

func (s Subject) String() string { return string(s) }

type SubjectRule struct {
	Subject  Subject
	Keywords []string
}

type SubjectExtractor struct {
	rules []SubjectRule
}

func NewSubjectExtractor(rules []SubjectRule) *SubjectExtractor {
	copied := make([]SubjectRule, 0, len(rules))
	for _, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				kws = append(kws, k)
			}
		}
		copied = append(copied, SubjectRule{Subject: r.Subject, Keywords: kws})
	}
	return &SubjectExtractor{rules: copied}
}

// Extract returns the first subject whose vocabulary occurs as a substring
// of the lower-cased text.
func (e *SubjectExtractor) Extract(text string) (Subject, bool) {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return "", false
	}
	for _, rule := range e.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Subject, true
			}
		}
	}
	return "", false
}

func (e *SubjectExtractor) Subjects() []Subject {
	out := make([]Subject, 0, len(e.rules))
	for _, r := range e.rules {
		out = append(out, r.Subject)
	}
	return out
}

func (e *SubjectExtractor) Vocabulary(subject Subject) []string {
	for _, r := range e.rules {
		if r.Subject == subject {
			return append([]string(nil), r.Keywords...)
		}
	}
	return nil
}

// ResponseKeywords widens user keywords with the vocabulary of the detected
// subject, deduplicated in first-seen order.
func (e *SubjectExtractor) ResponseKeywords(keywords []string, subject Subject) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	add := func(k string) {
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	for _, k := range keywords {
		add(k)
	}
	if subject != "" {
		for _, k := range e.Vocabulary(subject) {
			add(k)
		}
	}
	return out
}
