package study

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/suPer8Hu/study-assistant/internal/logger"
	"github.com/suPer8Hu/study-assistant/internal/nlp"
)

var (
	ErrInvalidSchedule = errors.New("invalid study schedule")
	ErrInvalidReminder = errors.New("invalid reminder")
	ErrInvalidNote     = errors.New("invalid note")
)

type ScheduleInput struct {
	Subject string `json:"subject" validate:"required,max=64"`
	Topic   string `json:"topic" validate:"required,max=255"`
	Date    string `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	Time    string `json:"scheduled_time" validate:"required,datetime=15:04"`
	// DurationMinutes wins over Duration; free text like "2 hours" is parsed.
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,min=1,max=1440"`
	Duration        string `json:"duration" validate:"max=64"`
	Notes           string `json:"notes" validate:"max=2000"`
}

type ReminderInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
	Date        string `json:"reminder_date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"reminder_time" validate:"required,datetime=15:04"`
}

type NoteInput struct {
	Subject string `json:"subject" validate:"required,max=64"`
	Topic   string `json:"topic" validate:"required,max=255"`
	Content string `json:"note_content" validate:"required"`
}

type Service struct {
	repo     *Repo
	validate *validator.Validate
	log      *logrus.Logger
}

func NewService(repo *Repo, log *logrus.Logger) *Service {
	return &Service{repo: repo, validate: validator.New(), log: log}
}

func (s *Service) Repo() *Repo { return s.repo }

func (s *Service) CreateSchedule(ctx context.Context, userID uint64, in ScheduleInput) (*Schedule, error) {
	in.Subject = strings.ToLower(strings.TrimSpace(in.Subject))
	in.Topic = strings.TrimSpace(in.Topic)
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	minutes := in.DurationMinutes
	if minutes == 0 {
		minutes = nlp.ExtractStudyDuration(in.Duration)
	}
	if err := s.validate.Var(minutes, "min=1,max=1440"); err != nil {
		return nil, fmt.Errorf("%w: duration %d minutes: %v", ErrInvalidSchedule, minutes, err)
	}

	sched := &Schedule{
		UserID:          userID,
		Subject:         in.Subject,
		Topic:           in.Topic,
		ScheduledDate:   in.Date,
		ScheduledTime:   in.Time,
		DurationMinutes: minutes,
		Status:          StatusPending,
		Notes:           in.Notes,
	}
	if err := s.repo.CreateSchedule(ctx, sched); err != nil {
		return nil, err
	}
	logger.WithRequestID(s.log, ctx).WithFields(logrus.Fields{
		"user_id":     userID,
		"schedule_id": sched.ID,
		"date":        sched.ScheduledDate,
	}).Info("study session scheduled")
	return sched, nil
}

func (s *Service) CreateReminder(ctx context.Context, userID uint64, in ReminderInput) (*Reminder, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReminder, err)
	}
	rem := &Reminder{
		UserID:       userID,
		Title:        in.Title,
		Description:  in.Description,
		ReminderDate: in.Date,
		ReminderTime: in.Time,
	}
	if err := s.repo.CreateReminder(ctx, rem); err != nil {
		return nil, err
	}
	return rem, nil
}

func (s *Service) CreateNote(ctx context.Context, userID uint64, in NoteInput) (*Note, error) {
	in.Subject = strings.ToLower(strings.TrimSpace(in.Subject))
	in.Topic = strings.TrimSpace(in.Topic)
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNote, err)
	}
	note := &Note{UserID: userID, Subject: in.Subject, Topic: in.Topic, Content: in.Content}
	if err := s.repo.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Service) Schedules(ctx context.Context, userID uint64, upcoming bool, limit int) ([]Schedule, error) {
	if upcoming {
		return s.repo.Upcoming(ctx, userID, limit)
	}
	return s.repo.ListSchedules(ctx, userID, limit)
}

func (s *Service) Reminders(ctx context.Context, userID uint64, pending bool, limit int) ([]Reminder, error) {
	if pending {
		return s.repo.PendingReminders(ctx, userID, limit)
	}
	return s.repo.ListReminders(ctx, userID, limit)
}

func (s *Service) Notes(ctx context.Context, userID uint64, subject, query string, limit int) ([]Note, error) {
	if q := strings.TrimSpace(query); q != "" {
		return s.repo.SearchNotes(ctx, userID, q, limit)
	}
	return s.repo.ListNotes(ctx, userID, strings.ToLower(strings.TrimSpace(subject)), limit)
}

func (s *Service) CompleteSchedule(ctx context.Context, userID, id uint64) error {
	return s.repo.CompleteSchedule(ctx, userID, id)
}

func (s *Service) CompleteReminder(ctx context.Context, userID, id uint64) error {
	return s.repo.CompleteReminder(ctx, userID, id)
}
