package knowledge

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/suPer8Hu/study-assistant/internal/logger"
	"github.com/suPer8Hu/study-assistant/internal/nlp"
)

type Analyzer interface {
	Analyze(ctx context.Context, message string) nlp.AnalysisResult
}

// Catalog is the store surface the service reads from.
type Catalog interface {
	Source
	GetByTopic(ctx context.Context, subject, topic string, limit int) ([]Entry, error)
	TopicsBySubject(ctx context.Context, subject string) ([]string, error)
}

type Service struct {
	catalog   Catalog
	analyzer  Analyzer
	schedules ScheduleLister
	log       *logrus.Logger
}

func NewService(catalog Catalog, analyzer Analyzer, log *logrus.Logger) *Service {
	return &Service{catalog: catalog, analyzer: analyzer, log: log}
}

// Search analyzes query, looks its keywords up, and keeps entries of subject
// when one is given.
func (s *Service) Search(ctx context.Context, query, subject string, limit int) ([]Entry, error) {
	analysis := s.analyzer.Analyze(ctx, query)
	if len(analysis.Keywords) == 0 {
		return []Entry{}, nil
	}
	entries, err := s.catalog.SearchByKeywords(ctx, strings.Join(analysis.Keywords, " "), limit)
	if err != nil {
		return nil, err
	}
	if subject == "" {
		return entries, nil
	}
	out := entries[:0]
	for _, e := range entries {
		if strings.EqualFold(e.Subject, subject) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Service) Materials(ctx context.Context, subject, topic string, difficulty Difficulty) ([]Entry, error) {
	var (
		entries []Entry
		err     error
	)
	if topic != "" {
		entries, err = s.catalog.GetByTopic(ctx, subject, topic, 0)
	} else {
		entries, err = s.catalog.GetBySubject(ctx, subject, 0)
	}
	if err != nil {
		return nil, err
	}
	if difficulty == "" {
		return entries, nil
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Difficulty == difficulty {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Service) Subjects(ctx context.Context) ([]string, error) {
	return s.catalog.ListSubjects(ctx)
}

func (s *Service) Topics(ctx context.Context, subject string) ([]string, error) {
	return s.catalog.TopicsBySubject(ctx, subject)
}

type TopicOverview struct {
	Topic     string   `json:"topic"`
	Subtopics []string `json:"subtopics"`
}

type Overview struct {
	Subject      string          `json:"subject"`
	Topics       []TopicOverview `json:"topics"`
	TotalEntries int             `json:"total_entries"`
}

// Overview returns nil when the subject has no entries.
func (s *Service) Overview(ctx context.Context, subject string) (*Overview, error) {
	entries, err := s.catalog.GetBySubject(ctx, subject, 0)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	ov := &Overview{Subject: subject, TotalEntries: len(entries)}
	index := make(map[string]int)
	for _, e := range entries {
		i, ok := index[e.Topic]
		if !ok {
			i = len(ov.Topics)
			index[e.Topic] = i
			ov.Topics = append(ov.Topics, TopicOverview{Topic: e.Topic, Subtopics: []string{}})
		}
		if e.Subtopic != "" {
			ov.Topics[i].Subtopics = append(ov.Topics[i].Subtopics, e.Subtopic)
		}
	}
	return ov, nil
}

type PathStep struct {
	Topic       string     `json:"topic"`
	Subtopic    string     `json:"subtopic"`
	Difficulty  Difficulty `json:"difficulty_level"`
	Description string     `json:"description"`
}

type LearningPath struct {
	Subject      string     `json:"subject"`
	CurrentLevel Difficulty `json:"current_level"`
	Path         []PathStep `json:"path"`
}

// LearningPath lists entries from level upwards. Unknown levels are treated
// as advanced. Returns nil when the subject has no entries.
func (s *Service) LearningPath(ctx context.Context, subject string, level Difficulty) (*LearningPath, error) {
	entries, err := s.catalog.GetBySubject(ctx, subject, 0)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	byLevel := map[Difficulty][]PathStep{}
	for _, e := range entries {
		if !e.Difficulty.Valid() {
			continue
		}
		byLevel[e.Difficulty] = append(byLevel[e.Difficulty], PathStep{
			Topic:       e.Topic,
			Subtopic:    e.Subtopic,
			Difficulty:  e.Difficulty,
			Description: Preview(e.Content, 100),
		})
	}

	var levels []Difficulty
	switch level {
	case Beginner:
		levels = []Difficulty{Beginner, Intermediate, Advanced}
	case Intermediate:
		levels = []Difficulty{Intermediate, Advanced}
	default:
		levels = []Difficulty{Advanced}
	}

	lp := &LearningPath{Subject: subject, CurrentLevel: level, Path: []PathStep{}}
	for _, l := range levels {
		lp.Path = append(lp.Path, byLevel[l]...)
	}
	logger.WithRequestID(s.log, ctx).WithFields(logrus.Fields{
		"subject": subject,
		"level":   level,
		"steps":   len(lp.Path),
	}).Debug("learning path built")
	return lp, nil
}

// Preview cuts s to n runes and appends "...".
func Preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s + "..."
	}
	return string([]rune(s)[:n]) + "..."
}
