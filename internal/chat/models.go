package chat

import "time"

type Session struct {
	ID            string     `gorm:"type:varchar(26);primaryKey" json:"session_id"`
	UserID        uint64     `gorm:"index:idx_chat_session_user_started,priority:1;not null" json:"-"`
	StartedAt     time.Time  `gorm:"index:idx_chat_session_user_started,priority:2;not null" json:"session_start"`
	EndedAt       *time.Time `json:"session_end"`
	TotalMessages int        `gorm:"not null;default:0" json:"total_messages"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Session) TableName() string { return "chat_sessions" }

func (s *Session) Ended() bool { return s.EndedAt != nil }

// Turn is one message/response pair. Turns are never updated.
type Turn struct {
	ID         string    `gorm:"type:varchar(26);primaryKey" json:"id"`
	SessionID  string    `gorm:"type:varchar(26);not null;index:idx_chat_turn_session_created,priority:1" json:"session_id"`
	UserID     uint64    `gorm:"not null;index:idx_chat_turn_user_created,priority:1" json:"-"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	Response   string    `gorm:"type:text;not null" json:"response"`
	Intent     string    `gorm:"type:varchar(32);index;not null" json:"message_type"`
	Confidence float64   `gorm:"not null" json:"confidence_score"`
	CreatedAt  time.Time `gorm:"index:idx_chat_turn_session_created,priority:2;index:idx_chat_turn_user_created,priority:2" json:"timestamp"`
}

func (Turn) TableName() string { return "chat_turns" }
