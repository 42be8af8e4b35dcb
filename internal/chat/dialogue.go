package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/suPer8Hu/study-assistant/internal/common"
	"github.com/suPer8Hu/study-assistant/internal/logger"
	"github.com/suPer8Hu/study-assistant/internal/nlp"
)

var (
	ErrSessionUnavailable = errors.New("chat session unavailable")
	ErrSessionNotFound    = errors.New("chat session not found")
)

type SessionStore interface {
	FindSession(ctx context.Context, id string) (*Session, error)
	CreateSession(ctx context.Context, s *Session) error
	EndSession(ctx context.Context, id string, at time.Time) error
}

// TurnStore appends a turn and increments its session counter atomically.
type TurnStore interface {
	AppendTurn(ctx context.Context, t *Turn) error
	TurnExists(ctx context.Context, id string) (bool, error)
}

// TurnPublisher hands turns to an asynchronous writer.
type TurnPublisher interface {
	PublishTurn(ctx context.Context, t *Turn) error
}

type DialogueManager struct {
	sessions  SessionStore
	turns     TurnStore
	publisher TurnPublisher
	log       *logrus.Logger
	now       func() time.Time
	locks     keyedMutex
}

func NewDialogueManager(sessions SessionStore, turns TurnStore, log *logrus.Logger) *DialogueManager {
	return &DialogueManager{
		sessions: sessions,
		turns:    turns,
		log:      log,
		now:      time.Now,
	}
}

// WithPublisher makes Record hand turns to p instead of writing them.
func (m *DialogueManager) WithPublisher(p TurnPublisher) *DialogueManager {
	m.publisher = p
	return m
}

// BeginOrResume returns the user's open session sessionID, or a new session
// when the id is empty, unknown, owned by another user, ended, or cannot be
// looked up.
func (m *DialogueManager) BeginOrResume(ctx context.Context, userID uint64, sessionID string) (*SessionHandle, error) {
	log := logger.WithRequestID(m.log, ctx).WithFields(logrus.Fields{
		"user_id":    userID,
		"session_id": sessionID,
	})

	if sessionID != "" {
		sess, err := m.sessions.FindSession(ctx, sessionID)
		switch {
		case err == nil && sess.UserID == userID && !sess.Ended():
			return &SessionHandle{m: m, session: *sess}, nil
		case err == nil && sess.UserID != userID:
			log.Warn("session belongs to another user, starting a new one")
		case err == nil:
			log.Debug("session already ended, starting a new one")
		case errors.Is(err, ErrSessionNotFound):
			log.Debug("session not found, starting a new one")
		default:
			log.WithField("error", err.Error()).Warn("session lookup failed, starting a new one")
		}
	}

	id, err := common.NewULID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}
	sess := Session{ID: id, UserID: userID, StartedAt: m.now()}
	if err := m.sessions.CreateSession(ctx, &sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}
	return &SessionHandle{m: m, session: sess}, nil
}

// EndSession closes one of the user's sessions. Ending twice is a no-op.
func (m *DialogueManager) EndSession(ctx context.Context, userID uint64, sessionID string) error {
	sess, err := m.sessions.FindSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.UserID != userID {
		return ErrSessionNotFound
	}
	if sess.Ended() {
		return nil
	}
	return m.sessions.EndSession(ctx, sessionID, m.now())
}

// Persist writes a turn produced elsewhere, such as one read back from the
// turn queue. A turn that is already stored is not written again.
func (m *DialogueManager) Persist(ctx context.Context, t *Turn) error {
	unlock := m.locks.Lock(t.SessionID)
	defer unlock()
	return m.appendTurn(ctx, t)
}

func (m *DialogueManager) appendTurn(ctx context.Context, t *Turn) error {
	err := m.turns.AppendTurn(ctx, t)
	if err == nil {
		return nil
	}
	if exists, xerr := m.turns.TurnExists(ctx, t.ID); xerr == nil && exists {
		return nil
	}
	return err
}

// SessionHandle is a resolved session a caller records turns against.
type SessionHandle struct {
	m       *DialogueManager
	session Session
}

func (h *SessionHandle) ID() string { return h.session.ID }

func (h *SessionHandle) Session() Session { return h.session }

// Record stores one processed message. Turns of a session are recorded in
// call order and each one bumps the session counter exactly once.
func (h *SessionHandle) Record(ctx context.Context, message, response string, intent nlp.Intent, confidence float64) (*Turn, error) {
	m := h.m
	unlock := m.locks.Lock(h.session.ID)
	defer unlock()

	id, err := common.NewULID()
	if err != nil {
		return nil, err
	}
	t := &Turn{
		ID:         id,
		SessionID:  h.session.ID,
		UserID:     h.session.UserID,
		Message:    message,
		Response:   response,
		Intent:     intent.String(),
		Confidence: confidence,
		CreatedAt:  m.now(),
	}

	if m.publisher != nil {
		err := m.publisher.PublishTurn(ctx, t)
		if err == nil {
			return t, nil
		}
		logger.WithRequestID(m.log, ctx).WithFields(logrus.Fields{
			"session_id": t.SessionID,
			"turn_id":    t.ID,
			"error":      err.Error(),
		}).Warn("publish turn failed, writing it inline")
	}

	if err := m.appendTurn(ctx, t); err != nil {
		return nil, err
	}
	h.session.TotalMessages++
	return t, nil
}

// keyedMutex serialises work per key and forgets keys nobody holds.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

type refLock struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*refLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &refLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
