package model

import "time"

// UserProgress is the per-user, per-topic mastery ledger. One row per
// (user, topic) pair, created on first activity and mutated in place:
// chat turns bump it by 5, a quiz completion overwrites it with the score.
type UserProgress struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"uniqueIndex:idx_user_topic;not null" json:"userId"`
	Topic       string    `gorm:"uniqueIndex:idx_user_topic;size:50;not null" json:"topic"`
	Progress    int       `gorm:"not null;default:0" json:"progress"` // 0-100
	LastStudied time.Time `json:"lastStudied"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
