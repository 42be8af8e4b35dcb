package nlp

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const MaxKeywords = 10

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Extractor pulls keywords and named entities out of a message.
type Extractor interface {
	Keywords(ctx context.Context, text string) []string
	Entities(ctx context.Context, text string) []Entity
	// Advanced reports whether a linguistic backend is behind the extractor.
	Advanced() bool
}

// Tokenize NFC-normalises and lower-cases text, then splits it into word tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(norm.NFC.String(text)), -1)
}

type BasicExtractor struct {
	stopwords map[string]struct{}
}

func NewBasicExtractor(stopwords map[string]struct{}) *BasicExtractor {
	if stopwords == nil {
		stopwords = DefaultTables().StopwordSet()
	}
	return &BasicExtractor{stopwords: stopwords}
}

func (e *BasicExtractor) Keywords(_ context.Context, text string) []string {
	out := make([]string, 0, MaxKeywords)
	for _, tok := range Tokenize(text) {
		if utf8.RuneCountInString(tok) <= 2 {
			continue
		}
		if _, stop := e.stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
		if len(out) == MaxKeywords {
			break
		}
	}
	return out
}

func (e *BasicExtractor) Entities(context.Context, string) []Entity {
	return []Entity{}
}

func (e *BasicExtractor) Advanced() bool { return false }
