package chat

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/suPer8Hu/study-assistant/internal/knowledge"
	"github.com/suPer8Hu/study-assistant/internal/study"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open(filepath.Join(t.TempDir(), "chat.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&Session{}, &Turn{}, &knowledge.Entry{}, &study.Schedule{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func countTurns(t *testing.T, db *gorm.DB, sessionID string) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&Turn{}).Where("session_id = ?", sessionID).Count(&n).Error; err != nil {
		t.Fatalf("count turns: %v", err)
	}
	return n
}

func loadSession(t *testing.T, db *gorm.DB, id string) Session {
	t.Helper()
	var s Session
	if err := db.First(&s, "id = ?", id).Error; err != nil {
		t.Fatalf("load session %s: %v", id, err)
	}
	return s
}

var errStoreDown = errors.New("store down")

type fakeKnowledge struct {
	byKeywords []knowledge.Entry
	bySubject  []knowledge.Entry
	byContent  []knowledge.Entry
	subjects   []string
	err        error
	panicOn    bool

	lastTerms string
}

func (f *fakeKnowledge) SearchByKeywords(_ context.Context, terms string, _ int) ([]knowledge.Entry, error) {
	if f.panicOn {
		panic("knowledge index corrupted")
	}
	f.lastTerms = terms
	return f.byKeywords, f.err
}

func (f *fakeKnowledge) GetBySubject(context.Context, string, int) ([]knowledge.Entry, error) {
	return f.bySubject, f.err
}

func (f *fakeKnowledge) SearchContent(context.Context, string, int) ([]knowledge.Entry, error) {
	return f.byContent, f.err
}

func (f *fakeKnowledge) ListSubjects(context.Context) ([]string, error) {
	return f.subjects, f.err
}

type fakeSchedules struct {
	items []study.Schedule
	err   error
}

func (f *fakeSchedules) Upcoming(context.Context, uint64, int) ([]study.Schedule, error) {
	return f.items, f.err
}

type failingSessions struct{}

func (failingSessions) FindSession(context.Context, string) (*Session, error) {
	return nil, errStoreDown
}
func (failingSessions) CreateSession(context.Context, *Session) error { return errStoreDown }
func (failingSessions) EndSession(context.Context, string, time.Time) error {
	return errStoreDown
}

type recordingPublisher struct {
	mu    sync.Mutex
	turns []*Turn
	err   error
}

func (p *recordingPublisher) PublishTurn(_ context.Context, t *Turn) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.turns = append(p.turns, t)
	return nil
}
