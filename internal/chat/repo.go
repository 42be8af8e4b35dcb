package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) CreateSession(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *Repo) FindSession(ctx context.Context, id string) (*Session, error) {
	var s Session
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repo) EndSession(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Session{}).
		Where("id = ? AND ended_at IS NULL", id).
		Update("ended_at", at).Error
}

// AppendTurn inserts t and bumps its session's message counter in one
// transaction, so the counter always equals the number of stored turns.
func (r *Repo) AppendTurn(ctx context.Context, t *Turn) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		res := tx.Model(&Session{}).
			Where("id = ?", t.SessionID).
			UpdateColumns(map[string]any{
				"total_messages": gorm.Expr("total_messages + ?", 1),
				"updated_at":     time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSessionNotFound
		}
		return nil
	})
}

func (r *Repo) TurnExists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Turn{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// ListSessions returns the user's sessions, newest first.
func (r *Repo) ListSessions(ctx context.Context, userID uint64, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []Session
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// SessionTurns returns turns of one session in the order they were recorded.
func (r *Repo) SessionTurns(ctx context.Context, userID uint64, sessionID string, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []Turn
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UserTurns returns the user's most recent turns, newest first.
func (r *Repo) UserTurns(ctx context.Context, userID uint64, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []Turn
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *Repo) SearchTurns(ctx context.Context, userID uint64, term string, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	var out []Turn
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND (LOWER(message) LIKE ? OR LOWER(response) LIKE ?)", userID, like, like).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
