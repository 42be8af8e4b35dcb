package worker

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/suPer8Hu/study-assistant/internal/chat"
	"github.com/suPer8Hu/study-assistant/internal/logger"
	"github.com/suPer8Hu/study-assistant/internal/store/rabbitmq"
)

type settled struct {
	mu      sync.Mutex
	acks    int
	nacks   int
	requeue bool
}

func (s *settled) Ack(uint64, bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acks++
	return nil
}

func (s *settled) Nack(_ uint64, _ bool, requeue bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nacks++
	s.requeue = requeue
	return nil
}

func (s *settled) Reject(_ uint64, requeue bool) error { return s.Nack(0, false, requeue) }

func delivery(ack *settled, headers amqp.Table) amqp.Delivery {
	return amqp.Delivery{Acknowledger: ack, Headers: headers, MessageId: "01HTURN0000000000000000001"}
}

type failingStore struct{ calls int }

func (f *failingStore) Persist(context.Context, *chat.Turn) error {
	f.calls++
	return errors.New("database is locked")
}

type recordingRetrier struct {
	err     error
	retried []amqp.Delivery
}

func (r *recordingRetrier) Retry(_ context.Context, d amqp.Delivery) error {
	if r.err != nil {
		return r.err
	}
	r.retried = append(r.retried, d)
	return nil
}

func openTurnDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open(filepath.Join(t.TempDir(), "worker.db")), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&chat.Session{}, &chat.Turn{}))
	return db
}

func TestTurnHandler_StoresTurnAfterShutdown(t *testing.T) {
	db := openTurnDB(t)
	repo := chat.NewRepo(db)
	log := logger.Discard()
	dm := chat.NewDialogueManager(repo, repo, log)

	session := &chat.Session{ID: "01HSESSION0000000000000001", UserID: 7, StartedAt: time.Now()}
	require.NoError(t, repo.CreateSession(context.Background(), session))

	turn := &chat.Turn{
		ID:        "01HTURN0000000000000000001",
		SessionID: session.ID,
		UserID:    7,
		Message:   "what is gravity?",
		Response:  "Gravity pulls masses together.",
		Intent:    "question",
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ack := &settled{}
	h := &TurnHandler{Store: dm, MaxAttempts: 3, Timeout: 5 * time.Second, Log: log}
	h.Handle(ctx, delivery(ack, nil), turn)

	assert.Equal(t, 1, ack.acks)
	assert.Zero(t, ack.nacks)

	var n int64
	require.NoError(t, db.Model(&chat.Turn{}).Where("session_id = ?", session.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	stored, err := repo.FindSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.TotalMessages)
}

func TestTurnHandler_RetriesThenDeadLetters(t *testing.T) {
	store := &failingStore{}
	retrier := &recordingRetrier{}
	h := &TurnHandler{Store: store, Retrier: retrier, MaxAttempts: 3, Log: logger.Discard()}
	turn := &chat.Turn{ID: "01HTURN0000000000000000001", SessionID: "01HSESSION0000000000000001"}

	first := &settled{}
	h.Handle(context.Background(), delivery(first, nil), turn)
	assert.Equal(t, 1, first.acks)
	assert.Zero(t, first.nacks)
	require.Len(t, retrier.retried, 1)

	second := &settled{}
	h.Handle(context.Background(), delivery(second, amqp.Table{rabbitmq.AttemptHeader: int32(2)}), turn)
	assert.Equal(t, 1, second.acks)
	require.Len(t, retrier.retried, 2)

	last := &settled{}
	h.Handle(context.Background(), delivery(last, amqp.Table{rabbitmq.AttemptHeader: int32(3)}), turn)
	assert.Zero(t, last.acks)
	assert.Equal(t, 1, last.nacks)
	assert.False(t, last.requeue)
	assert.Len(t, retrier.retried, 2)
	assert.Equal(t, 3, store.calls)
}

func TestTurnHandler_RetryPublishFailureDeadLetters(t *testing.T) {
	h := &TurnHandler{
		Store:       &failingStore{},
		Retrier:     &recordingRetrier{err: errors.New("channel closed")},
		MaxAttempts: 3,
		Log:         logger.Discard(),
	}
	ack := &settled{}
	h.Handle(context.Background(), delivery(ack, nil), &chat.Turn{ID: "t", SessionID: "s"})
	assert.Zero(t, ack.acks)
	assert.Equal(t, 1, ack.nacks)
	assert.False(t, ack.requeue)
}

func TestTurnHandler_NoRetrierDeadLetters(t *testing.T) {
	h := &TurnHandler{Store: &failingStore{}, MaxAttempts: 3, Log: logger.Discard()}
	ack := &settled{}
	h.Handle(context.Background(), delivery(ack, nil), &chat.Turn{ID: "t", SessionID: "s"})
	assert.Equal(t, 1, ack.nacks)
	assert.False(t, ack.requeue)
}
