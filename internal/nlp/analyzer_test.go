package nlp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suPer8Hu/study-assistant/internal/logger"
)

func basicAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzerFromTables(DefaultTables(), nil)
	require.NoError(t, err)
	return a
}

func TestAnalyze_EmptyMessage(t *testing.T) {
	a := basicAnalyzer(t)
	for _, in := range []string{"", "   ", "\n\t"} {
		got := a.Analyze(context.Background(), in)
		assert.Equal(t, IntentUnknown, got.Intent)
		assert.False(t, got.HasSubject)
		assert.Empty(t, got.Keywords)
		assert.NotNil(t, got.Keywords)
		assert.Empty(t, got.Entities)
		assert.Equal(t, 0.0, got.Confidence)
		assert.Equal(t, in, got.OriginalMessage)
	}
}

func TestAnalyze_Question(t *testing.T) {
	a := basicAnalyzer(t)

	got := a.Analyze(context.Background(), "What is gravity in Physics?")
	assert.Equal(t, IntentQuestion, got.Intent)
	assert.Equal(t, SubjectScience, got.Subject)
	assert.True(t, got.HasSubject)
	assert.Equal(t, []string{"what", "gravity", "physics"}, got.Keywords)
	assert.InDelta(t, 0.75, got.Confidence, 1e-9)
	assert.Equal(t, "What is gravity in Physics?", got.OriginalMessage)
}

func TestAnalyze_Idempotent(t *testing.T) {
	a := basicAnalyzer(t)
	msgs := []string{"Hello, how are you?", "remind me tomorrow", "history of rome", "x"}
	for _, m := range msgs {
		assert.Equal(t, a.Analyze(context.Background(), m), a.Analyze(context.Background(), m), m)
	}
}

func TestAnalyze_Invariants(t *testing.T) {
	a := basicAnalyzer(t)
	msgs := []string{
		"Give me study tips for calculus and trigonometry and statistics exams next monday morning please",
		"bye!",
		"???",
		"a b c d",
	}
	for _, m := range msgs {
		got := a.Analyze(context.Background(), m)
		assert.True(t, got.Intent.Valid())
		assert.LessOrEqual(t, len(got.Keywords), MaxKeywords)
		for _, k := range got.Keywords {
			assert.Greater(t, len([]rune(k)), 2)
		}
		assert.GreaterOrEqual(t, got.Confidence, 0.0)
		assert.LessOrEqual(t, got.Confidence, 1.0)
	}
}

func TestAnalyze_WithBackend(t *testing.T) {
	tbl := DefaultTables()
	p := &fakeParser{doc: &ParsedDoc{
		Tokens:   []Token{{Text: "Einstein", Lemma: "Einstein", POS: "PROPN"}, {Text: "physics", Lemma: "physics", POS: "NOUN"}},
		Entities: []Span{{Text: "Einstein", Label: "PERSON"}},
	}}
	ext := NewBackendExtractor(p, NewBasicExtractor(tbl.StopwordSet()), logger.Discard())
	a, err := NewAnalyzerFromTables(tbl, ext)
	require.NoError(t, err)

	got := a.Analyze(context.Background(), "Einstein physics")
	assert.Equal(t, []string{"physics"}, got.Keywords)
	require.Len(t, got.Entities, 1)
	assert.Equal(t, "PERSON", got.Entities[0].Label)
	assert.True(t, a.Advanced())
}

func TestAnalyze_BackendPanicReachesCaller(t *testing.T) {
	tbl := DefaultTables()
	p := &fakeParser{panics: "parser blew up"}
	ext := NewBackendExtractor(p, NewBasicExtractor(tbl.StopwordSet()), logger.Discard())
	a, err := NewAnalyzerFromTables(tbl, ext)
	require.NoError(t, err)

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		a.Analyze(context.Background(), "explain photosynthesis")
	}()
	assert.Equal(t, "parser blew up", recovered)
}
