package nlp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suPer8Hu/study-assistant/internal/logger"
)

type fakeParser struct {
	doc     *ParsedDoc
	err     error
	pingErr error
	panics  string
}

func (p *fakeParser) Parse(context.Context, string) (*ParsedDoc, error) {
	if p.panics != "" {
		panic(p.panics)
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.doc, nil
}

func (p *fakeParser) Ping(context.Context) error { return p.pingErr }

func TestBackendKeywords_FiltersAndDedups(t *testing.T) {
	p := &fakeParser{doc: &ParsedDoc{Tokens: []Token{
		{Text: "Students", Lemma: "student", POS: "NOUN"},
		{Text: "are", Lemma: "be", POS: "AUX", IsStop: true},
		{Text: "studying", Lemma: "study", POS: "VERB"},
		{Text: "difficult", Lemma: "difficult", POS: "ADJ"},
		{Text: "student", Lemma: "student", POS: "NOUN"},
		{Text: "the", Lemma: "the", POS: "DET", IsStop: true},
		{Text: "ox", Lemma: "ox", POS: "NOUN"},
		{Text: "quickly", Lemma: "quickly", POS: "ADV"},
		{Text: "...", Lemma: "...", POS: "PUNCT", IsPunct: true},
	}}}
	e := NewBackendExtractor(p, NewBasicExtractor(nil), logger.Discard())

	got := e.Keywords(context.Background(), "students are studying difficult student the ox quickly...")
	assert.Equal(t, []string{"student", "study", "difficult"}, got)
	assert.True(t, e.Advanced())
}

func TestBackendEntities_DescribesLabels(t *testing.T) {
	p := &fakeParser{doc: &ParsedDoc{Entities: []Span{
		{Text: "Einstein", Label: "PERSON"},
		{Text: "Germany", Label: "GPE", Description: "Country"},
		{Text: "zzz", Label: "MADE_UP"},
	}}}
	e := NewBackendExtractor(p, NewBasicExtractor(nil), logger.Discard())

	got := e.Entities(context.Background(), "Einstein Germany zzz")
	require.Len(t, got, 3)
	assert.Equal(t, Entity{Text: "Einstein", Label: "PERSON", Description: "People, including fictional"}, got[0])
	assert.Equal(t, "Country", got[1].Description)
	assert.Equal(t, "", got[2].Description)
}

func TestBackendExtractor_ParseFailureFallsBack(t *testing.T) {
	p := &fakeParser{err: errors.New("connection refused")}
	e := NewBackendExtractor(p, NewBasicExtractor(nil), logger.Discard())

	assert.Equal(t, []string{"photosynthesis", "plants"}, e.Keywords(context.Background(), "photosynthesis in plants"))
	assert.Empty(t, e.Entities(context.Background(), "photosynthesis in plants"))
}

func TestNewExtractor_Selection(t *testing.T) {
	ctx := context.Background()
	log := logger.Discard()

	assert.False(t, NewExtractor(ctx, nil, nil, log).Advanced())
	assert.False(t, NewExtractor(ctx, &fakeParser{pingErr: errors.New("down")}, nil, log).Advanced())
	assert.True(t, NewExtractor(ctx, &fakeParser{doc: &ParsedDoc{}}, nil, log).Advanced())
}
