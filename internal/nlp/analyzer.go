package nlp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

type AnalysisResult struct {
	Intent          Intent   `json:"intent"`
	Subject         Subject  `json:"subject"`
	HasSubject      bool     `json:"has_subject"`
	Keywords        []string `json:"keywords"`
	Entities        []Entity `json:"entities"`
	Confidence      float64  `json:"confidence"`
	OriginalMessage string   `json:"original_message"`
}

// Analyzer is stateless once built and safe for concurrent use.
type Analyzer struct {
	intents   *IntentClassifier
	subjects  *SubjectExtractor
	extractor Extractor
}

func NewAnalyzer(intents *IntentClassifier, subjects *SubjectExtractor, extractor Extractor) *Analyzer {
	return &Analyzer{intents: intents, subjects: subjects, extractor: extractor}
}

// NewAnalyzerFromTables compiles tables and pairs them with extractor.
func NewAnalyzerFromTables(t *Tables, extractor Extractor) (*Analyzer, error) {
	intents, err := t.IntentClassifier()
	if err != nil {
		return nil, err
	}
	subjects, err := t.SubjectExtractor()
	if err != nil {
		return nil, err
	}
	if extractor == nil {
		extractor = NewBasicExtractor(t.StopwordSet())
	}
	return NewAnalyzer(intents, subjects, extractor), nil
}

func (a *Analyzer) Subjects() *SubjectExtractor { return a.subjects }

func (a *Analyzer) Advanced() bool { return a.extractor.Advanced() }

func (a *Analyzer) Analyze(ctx context.Context, message string) AnalysisResult {
	if strings.TrimSpace(message) == "" {
		return AnalysisResult{
			Intent:          IntentUnknown,
			Keywords:        []string{},
			Entities:        []Entity{},
			Confidence:      0,
			OriginalMessage: message,
		}
	}

	lower := strings.ToLower(strings.TrimSpace(message))
	intent := a.intents.Classify(lower)
	subject, hasSubject := a.subjects.Extract(lower)

	var keywords []string
	var entities []Entity
	if a.extractor.Advanced() {
		// both calls hit the backend
		var g errgroup.Group
		g.Go(guarded(func() { keywords = a.extractor.Keywords(ctx, lower) }))
		g.Go(guarded(func() { entities = a.extractor.Entities(ctx, message) }))
		if err := g.Wait(); err != nil {
			var p *extractorPanic
			if errors.As(err, &p) {
				panic(p.value)
			}
		}
	} else {
		keywords = a.extractor.Keywords(ctx, lower)
		entities = a.extractor.Entities(ctx, message)
	}
	if keywords == nil {
		keywords = []string{}
	}
	if entities == nil {
		entities = []Entity{}
	}

	return AnalysisResult{
		Intent:          intent,
		Subject:         subject,
		HasSubject:      hasSubject,
		Keywords:        keywords,
		Entities:        entities,
		Confidence:      Score(intent, subject, keywords),
		OriginalMessage: message,
	}
}

// extractorPanic carries a panic out of an errgroup goroutine so Analyze
// can raise it again on the caller's goroutine.
type extractorPanic struct{ value any }

func (p *extractorPanic) Error() string { return fmt.Sprintf("extractor panic: %v", p.value) }

func guarded(fn func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &extractorPanic{value: r}
			}
		}()
		fn()
		return nil
	}
}

func (r AnalysisResult) String() string {
	return fmt.Sprintf("intent=%s subject=%q keywords=%v confidence=%.2f", r.Intent, r.Subject, r.Keywords, r.Confidence)
}
