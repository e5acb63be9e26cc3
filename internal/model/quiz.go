package model

import "time"

type QuizQuestion struct {
	ID            uint     `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // zero-based index into Options
}

type Quiz struct {
	BaseModel
	Topic     string         `gorm:"size:50;not null" json:"topic"`
	Title     string         `gorm:"size:200;not null" json:"title"`
	Questions []QuizQuestion `gorm:"type:json;serializer:json" json:"questions"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizAttempt records a completed submission. Answers holds the selected
// option index per question, in question order.
type QuizAttempt struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	QuizID      uint      `gorm:"index;not null" json:"quizId"`
	Answers     []int     `gorm:"type:json;serializer:json" json:"answers"`
	Score       int       `gorm:"not null" json:"score"`
	CompletedAt time.Time `gorm:"autoCreateTime" json:"completedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
