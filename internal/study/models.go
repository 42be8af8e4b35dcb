package study

import "time"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Dates are stored as YYYY-MM-DD and times as HH:MM so ordering and the
// "today or later" filter work as plain string comparisons on every driver.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Schedule struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint64    `gorm:"not null;index:idx_schedule_user_date,priority:1" json:"-"`
	Subject         string    `gorm:"type:varchar(64);not null" json:"subject"`
	Topic           string    `gorm:"type:varchar(255);not null" json:"topic"`
	ScheduledDate   string    `gorm:"type:varchar(10);not null;index:idx_schedule_user_date,priority:2" json:"scheduled_date"`
	ScheduledTime   string    `gorm:"type:varchar(5);not null" json:"scheduled_time"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Status          string    `gorm:"type:varchar(16);index;not null" json:"status"`
	Notes           string    `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Schedule) TableName() string { return "study_schedules" }

type Reminder struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint64    `gorm:"not null;index:idx_reminder_user_date,priority:1" json:"-"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	ReminderDate string    `gorm:"type:varchar(10);not null;index:idx_reminder_user_date,priority:2" json:"reminder_date"`
	ReminderTime string    `gorm:"type:varchar(5);not null" json:"reminder_time"`
	IsCompleted  bool      `gorm:"not null" json:"is_completed"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Reminder) TableName() string { return "reminders" }

type Note struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_note_user_subject,priority:1" json:"-"`
	Subject   string    `gorm:"type:varchar(64);not null;index:idx_note_user_subject,priority:2" json:"subject"`
	Topic     string    `gorm:"type:varchar(255);not null" json:"topic"`
	Content   string    `gorm:"column:note_content;type:text;not null" json:"note_content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

func (Note) TableName() string { return "user_notes" }
