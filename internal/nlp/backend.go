package nlp

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// Token is one token of a parsed document.
type Token struct {
	Text    string `json:"text"`
	Lemma   string `json:"lemma"`
	POS     string `json:"pos"`
	IsStop  bool   `json:"is_stop"`
	IsPunct bool   `json:"is_punct"`
}

// Span is a named entity of a parsed document.
type Span struct {
	Text        string `json:"text"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

type ParsedDoc struct {
	Tokens   []Token `json:"tokens"`
	Entities []Span  `json:"ents"`
}

// Parser is a linguistic backend able to tag tokens and find entities.
type Parser interface {
	Parse(ctx context.Context, text string) (*ParsedDoc, error)
	Ping(ctx context.Context) error
}

var contentPOS = map[string]struct{}{
	"NOUN": {},
	"ADJ":  {},
	"VERB": {},
}

// BackendExtractor extracts lemmas of content words through a Parser.
// Parse failures fall back to basic extraction for that call.
type BackendExtractor struct {
	parser   Parser
	fallback *BasicExtractor
	log      logrus.FieldLogger
}

func NewBackendExtractor(parser Parser, fallback *BasicExtractor, log logrus.FieldLogger) *BackendExtractor {
	return &BackendExtractor{parser: parser, fallback: fallback, log: log}
}

func (e *BackendExtractor) Keywords(ctx context.Context, text string) []string {
	doc, err := e.parser.Parse(ctx, text)
	if err != nil {
		e.log.WithField("error", err.Error()).Warn("linguistic backend parse failed, using basic keywords")
		return e.fallback.Keywords(ctx, text)
	}

	out := make([]string, 0, MaxKeywords)
	seen := make(map[string]struct{}, MaxKeywords)
	for _, tok := range doc.Tokens {
		if _, ok := contentPOS[strings.ToUpper(tok.POS)]; !ok || tok.IsStop || tok.IsPunct {
			continue
		}
		if utf8.RuneCountInString(tok.Text) <= 2 {
			continue
		}
		lemma := strings.ToLower(strings.TrimSpace(tok.Lemma))
		if lemma == "" {
			lemma = strings.ToLower(tok.Text)
		}
		if _, dup := seen[lemma]; dup {
			continue
		}
		seen[lemma] = struct{}{}
		out = append(out, lemma)
		if len(out) == MaxKeywords {
			break
		}
	}
	return out
}

func (e *BackendExtractor) Entities(ctx context.Context, text string) []Entity {
	doc, err := e.parser.Parse(ctx, text)
	if err != nil {
		e.log.WithField("error", err.Error()).Warn("linguistic backend parse failed, no entities")
		return []Entity{}
	}
	out := make([]Entity, 0, len(doc.Entities))
	for _, span := range doc.Entities {
		desc := span.Description
		if desc == "" {
			desc = ExplainLabel(span.Label)
		}
		out = append(out, Entity{Text: span.Text, Label: span.Label, Description: desc})
	}
	return out
}

func (e *BackendExtractor) Advanced() bool { return true }

// NewExtractor probes parser once and picks the extractor used for the
// lifetime of the process. A nil or unreachable parser yields basic extraction.
func NewExtractor(ctx context.Context, parser Parser, stopwords map[string]struct{}, log logrus.FieldLogger) Extractor {
	basic := NewBasicExtractor(stopwords)
	if parser == nil {
		log.Info("no linguistic backend configured, using basic keyword extraction")
		return basic
	}
	if err := parser.Ping(ctx); err != nil {
		log.WithField("error", err.Error()).Warn("linguistic backend unavailable, using basic keyword extraction")
		return basic
	}
	log.Info("linguistic backend loaded")
	return NewBackendExtractor(parser, basic, log)
}
