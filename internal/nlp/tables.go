package nlp

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTablesYAML []byte

// Tables is the trigger vocabulary of the analyzer.
type Tables struct {
	Intents   []IntentTable  `yaml:"intents"`
	Subjects  []SubjectTable `yaml:"subjects"`
	Stopwords []string       `yaml:"stopwords"`
}

type IntentTable struct {
	Intent   string   `yaml:"intent"`
	Patterns []string `yaml:"patterns"`
}

type SubjectTable struct {
	Subject  string   `yaml:"subject"`
	Keywords []string `yaml:"keywords"`
}

func ParseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse nlp tables: %w", err)
	}
	if len(t.Intents) == 0 {
		return nil, fmt.Errorf("parse nlp tables: no intents")
	}
	return &t, nil
}

func DefaultTables() *Tables {
	t, err := ParseTables(defaultTablesYAML)
	if err != nil {
		panic(err)
	}
	return t
}

// LoadTables reads a table file, or returns the embedded defaults for an
// empty path.
func LoadTables(path string) (*Tables, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultTables(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read nlp tables: %w", err)
	}
	return ParseTables(data)
}

func (t *Tables) IntentClassifier() (*IntentClassifier, error) {
	rules := make([]IntentRule, 0, len(t.Intents))
	for _, it := range t.Intents {
		intent := Intent(strings.TrimSpace(it.Intent))
		if !intent.classifiable() {
			return nil, fmt.Errorf("nlp tables: intent %q cannot be assigned by rules", it.Intent)
		}
		rule := IntentRule{Intent: intent}
		for _, p := range it.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("nlp tables: intent %s: %w", intent, err)
			}
			rule.Patterns = append(rule.Patterns, re)
		}
		rules = append(rules, rule)
	}
	return NewIntentClassifier(rules), nil
}

func (t *Tables) SubjectExtractor() (*SubjectExtractor, error) {
	rules := make([]SubjectRule, 0, len(t.Subjects))
	for _, st := range t.Subjects {
		name := strings.ToLower(strings.TrimSpace(st.Subject))
		if name == "" {
			return nil, fmt.Errorf("nlp tables: subject without a name")
		}
		rules = append(rules, SubjectRule{Subject: Subject(name), Keywords: st.Keywords})
	}
	return NewSubjectExtractor(rules), nil
}

func (t *Tables) StopwordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(t.Stopwords))
	for _, w := range t.Stopwords {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}
