package chat

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/suPer8Hu/study-assistant/internal/logger"
	"github.com/suPer8Hu/study-assistant/internal/nlp"
)

type Result struct {
	Response   string      `json:"response"`
	SessionID  string      `json:"session_id"`
	Intent     nlp.Intent  `json:"intent"`
	Subject    nlp.Subject `json:"subject"`
	Confidence float64     `json:"confidence"`
}

type HistoryStore interface {
	ListSessions(ctx context.Context, userID uint64, limit int) ([]Session, error)
	SessionTurns(ctx context.Context, userID uint64, sessionID string, limit int) ([]Turn, error)
	UserTurns(ctx context.Context, userID uint64, limit int) ([]Turn, error)
	SearchTurns(ctx context.Context, userID uint64, term string, limit int) ([]Turn, error)
}

type Service struct {
	analyzer  *nlp.Analyzer
	responder *Responder
	dialogue  *DialogueManager
	history   HistoryStore
	log       *logrus.Logger
}

func NewService(analyzer *nlp.Analyzer, responder *Responder, dialogue *DialogueManager, history HistoryStore, log *logrus.Logger) *Service {
	return &Service{
		analyzer:  analyzer,
		responder: responder,
		dialogue:  dialogue,
		history:   history,
		log:       log,
	}
}

func (s *Service) Analyze(ctx context.Context, message string) nlp.AnalysisResult {
	return s.analyzer.Analyze(ctx, message)
}

// ProcessMessage analyzes message, replies to it and records the turn.
// It never fails: store errors degrade the result and panics become an
// apology with intent "error".
func (s *Service) ProcessMessage(ctx context.Context, userID uint64, message, sessionID string) (res Result) {
	log := logger.WithRequestID(s.log, ctx).WithField("user_id", userID)
	sid := sessionID

	defer func() {
		if rec := recover(); rec != nil {
			log.WithFields(logrus.Fields{
				"panic": fmt.Sprint(rec),
				"stack": string(debug.Stack()),
			}).Error("process message panicked")
			res = Result{Response: apologyReply, SessionID: sid, Intent: nlp.IntentError}
		}
	}()

	analysis := s.analyzer.Analyze(ctx, message)

	handle, err := s.dialogue.BeginOrResume(ctx, userID, sessionID)
	if err != nil {
		log.WithField("error", err.Error()).Warn("no session for message, reply will not be recorded")
		sid = ""
	} else {
		sid = handle.ID()
	}

	reply := s.responder.Respond(ctx, analysis, userID)

	res = Result{
		Response:   reply,
		SessionID:  sid,
		Intent:     analysis.Intent,
		Subject:    analysis.Subject,
		Confidence: analysis.Confidence,
	}

	if handle != nil {
		if _, err := handle.Record(ctx, message, reply, analysis.Intent, analysis.Confidence); err != nil {
			log.WithFields(logrus.Fields{
				"session_id": sid,
				"error":      err.Error(),
			}).Warn("record turn failed")
		}
	}

	log.WithFields(logrus.Fields{
		"session_id": sid,
		"intent":     analysis.Intent,
		"subject":    analysis.Subject,
		"confidence": analysis.Confidence,
	}).Debug("message processed")
	return res
}

func (s *Service) EndSession(ctx context.Context, userID uint64, sessionID string) error {
	return s.dialogue.EndSession(ctx, userID, sessionID)
}
