package knowledge

import "time"

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	return d == Beginner || d == Intermediate || d == Advanced
}

type Entry struct {
	ID         uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Subject    string     `gorm:"type:varchar(64);index:idx_kb_subject_topic,priority:1;not null" json:"subject"`
	Topic      string     `gorm:"type:varchar(255);index:idx_kb_subject_topic,priority:2;not null" json:"topic"`
	Subtopic   string     `gorm:"type:varchar(255)" json:"subtopic"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	Keywords   string     `gorm:"type:text" json:"keywords"`
	Difficulty Difficulty `gorm:"type:varchar(16);not null" json:"difficulty_level"`
	GradeLevel string     `gorm:"type:varchar(32)" json:"grade_level"`
	IsActive   bool       `gorm:"index;not null" json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Entry) TableName() string { return "knowledge_base" }
