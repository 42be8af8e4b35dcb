package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/suPer8Hu/study-assistant/internal/nlp"
)

const suggestionWindow = 10

func (s *Service) Sessions(ctx context.Context, userID uint64, limit int) ([]Session, error) {
	return s.history.ListSessions(ctx, userID, limit)
}

// History returns one session oldest first, or the user's latest turns
// newest first when sessionID is empty.
func (s *Service) History(ctx context.Context, userID uint64, sessionID string, limit int) ([]Turn, error) {
	if sessionID == "" {
		return s.history.UserTurns(ctx, userID, limit)
	}
	return s.history.SessionTurns(ctx, userID, sessionID, limit)
}

func (s *Service) Search(ctx context.Context, userID uint64, term string, limit int) ([]Turn, error) {
	if strings.TrimSpace(term) == "" {
		return []Turn{}, nil
	}
	return s.history.SearchTurns(ctx, userID, term, limit)
}

// Suggestion proposes a follow-up based on the subject the user mentioned
// most in their recent messages. Ties go to the most recently mentioned.
func (s *Service) Suggestion(ctx context.Context, userID uint64) (string, error) {
	turns, err := s.history.UserTurns(ctx, userID, suggestionWindow)
	if err != nil {
		return "", err
	}
	if len(turns) == 0 {
		return suggestStart, nil
	}

	counts := make(map[nlp.Subject]int)
	var order []nlp.Subject
	for _, t := range turns {
		a := s.analyzer.Analyze(ctx, t.Message)
		if a.Subject == "" {
			continue
		}
		if counts[a.Subject] == 0 {
			order = append(order, a.Subject)
		}
		counts[a.Subject]++
	}
	if len(order) == 0 {
		return suggestAnything, nil
	}

	best := order[0]
	for _, subj := range order[1:] {
		if counts[subj] > counts[best] {
			best = subj
		}
	}
	return fmt.Sprintf(suggestInterested, best), nil
}
