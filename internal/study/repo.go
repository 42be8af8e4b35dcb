package study

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("study record not found")

type Repo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db, now: time.Now}
}

func (r *Repo) today() string { return r.now().Format(DateLayout) }

func limitOr(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}

func (r *Repo) CreateSchedule(ctx context.Context, s *Schedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// ListSchedules returns the newest schedules first.
func (r *Repo) ListSchedules(ctx context.Context, userID uint64, limit int) ([]Schedule, error) {
	var out []Schedule
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scheduled_date DESC, scheduled_time DESC").
		Limit(limitOr(limit, 20)).
		Find(&out).Error
	return out, err
}

// Upcoming returns pending schedules from today on, soonest first.
func (r *Repo) Upcoming(ctx context.Context, userID uint64, limit int) ([]Schedule, error) {
	var out []Schedule
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND scheduled_date >= ? AND status = ?", userID, r.today(), StatusPending).
		Order("scheduled_date ASC, scheduled_time ASC").
		Limit(limitOr(limit, 10)).
		Find(&out).Error
	return out, err
}

func (r *Repo) CompleteSchedule(ctx context.Context, userID, id uint64) error {
	res := r.db.WithContext(ctx).
		Model(&Schedule{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", StatusCompleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) CreateReminder(ctx context.Context, rem *Reminder) error {
	return r.db.WithContext(ctx).Create(rem).Error
}

func (r *Repo) ListReminders(ctx context.Context, userID uint64, limit int) ([]Reminder, error) {
	var out []Reminder
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("reminder_date DESC, reminder_time DESC").
		Limit(limitOr(limit, 20)).
		Find(&out).Error
	return out, err
}

func (r *Repo) PendingReminders(ctx context.Context, userID uint64, limit int) ([]Reminder, error) {
	var out []Reminder
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_completed = ? AND reminder_date >= ?", userID, false, r.today()).
		Order("reminder_date ASC, reminder_time ASC").
		Limit(limitOr(limit, 10)).
		Find(&out).Error
	return out, err
}

func (r *Repo) CompleteReminder(ctx context.Context, userID, id uint64) error {
	res := r.db.WithContext(ctx).
		Model(&Reminder{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_completed", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) CreateNote(ctx context.Context, n *Note) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *Repo) ListNotes(ctx context.Context, userID uint64, subject string, limit int) ([]Note, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if subject != "" {
		q = q.Where("subject = ?", subject)
		limit = limitOr(limit, 20)
	} else {
		limit = limitOr(limit, 50)
	}
	var out []Note
	err := q.Order("updated_at DESC, id DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *Repo) SearchNotes(ctx context.Context, userID uint64, term string, limit int) ([]Note, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	var out []Note
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND (LOWER(note_content) LIKE ? OR LOWER(topic) LIKE ? OR LOWER(subject) LIKE ?)", userID, like, like, like).
		Order("updated_at DESC, id DESC").
		Limit(limitOr(limit, 20)).
		Find(&out).Error
	return out, err
}
