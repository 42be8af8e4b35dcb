package knowledge

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/suPer8Hu/study-assistant/internal/logger"
	"github.com/suPer8Hu/study-assistant/internal/study"
)

const (
	SuggestionRelatedTopics = "related_topics"
	SuggestionTips          = "tips"

	suggestionSchedules = 5
	suggestionTopics    = 3
	suggestionTips      = 2
)

type ScheduleLister interface {
	ListSchedules(ctx context.Context, userID uint64, limit int) ([]study.Schedule, error)
}

// Suggestion is either the topics of a subject the user has been studying
// or a handful of general study tips.
type Suggestion struct {
	Subject string   `json:"subject"`
	Type    string   `json:"type"`
	Topics  []string `json:"topics,omitempty"`
	Content []string `json:"content,omitempty"`
}

// WithSchedules lets StudySuggestions look at the user's recent schedules.
func (s *Service) WithSchedules(l ScheduleLister) *Service {
	s.schedules = l
	return s
}

// StudySuggestions returns up to three topics for every subject in the
// user's five latest schedules, in schedule order, followed by study tips
// when the knowledge base has any.
func (s *Service) StudySuggestions(ctx context.Context, userID uint64) ([]Suggestion, error) {
	out := []Suggestion{}

	if s.schedules != nil {
		scheds, err := s.schedules.ListSchedules(ctx, userID, suggestionSchedules)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]struct{}, len(scheds))
		for _, sc := range scheds {
			subject := strings.ToLower(strings.TrimSpace(sc.Subject))
			if _, dup := seen[subject]; dup || subject == "" {
				continue
			}
			seen[subject] = struct{}{}

			entries, err := s.catalog.GetBySubject(ctx, subject, suggestionTopics)
			if err != nil {
				return nil, err
			}
			if len(entries) == 0 {
				continue
			}
			topics := make([]string, 0, len(entries))
			for _, e := range entries {
				topics = append(topics, e.Topic)
			}
			out = append(out, Suggestion{Subject: subject, Type: SuggestionRelatedTopics, Topics: topics})
		}
	}

	tips, err := s.catalog.SearchByKeywords(ctx, "study tips", suggestionTips)
	if err != nil {
		return nil, err
	}
	if len(tips) > 0 {
		content := make([]string, 0, len(tips))
		for _, e := range tips {
			content = append(content, e.Content)
		}
		out = append(out, Suggestion{Subject: "Study Tips", Type: SuggestionTips, Content: content})
	}

	logger.WithRequestID(s.log, ctx).WithFields(logrus.Fields{
		"user_id":     userID,
		"suggestions": len(out),
	}).Debug("study suggestions built")
	return out, nil
}
