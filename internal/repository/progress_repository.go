package repository

import (
	"context"
	"errors"
	"time"

	"ai_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

// clampProgress keeps a progress value inside the [0,100] ledger range.
func clampProgress(progress int) int {
	if progress > 100 {
		return 100
	}
	if progress < 0 {
		return 0
	}
	return progress
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// FindByUser returns the user's progress records, newest studied first.
func (r *ProgressRepository) FindByUser(ctx context.Context, userID uint) ([]model.UserProgress, error) {
	var records []model.UserProgress
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_studied DESC").
		Find(&records).Error
	return records, err
}

// FindByUserAndTopic returns nil (no error) when no record exists yet.
func (r *ProgressRepository) FindByUserAndTopic(ctx context.Context, userID uint, topic string) (*model.UserProgress, error) {
	var record model.UserProgress
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND topic = ?", userID, topic).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Upsert sets the (user, topic) progress to min(100, progress) and
// refreshes last_studied. This is a SET, not an increment: the chat path
// pre-computes current+5 before calling, the quiz path passes the raw
// score so it overwrites whatever was there.
func (r *ProgressRepository) Upsert(ctx context.Context, userID uint, topic string, progress int) (*model.UserProgress, error) {
	progress = clampProgress(progress)
	now := time.Now()

	existing, err := r.FindByUserAndTopic(ctx, userID, topic)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Progress = progress
		existing.LastStudied = now
		err := r.DB.WithContext(ctx).Model(existing).
			Updates(map[string]interface{}{
				"progress":     progress,
				"last_studied": now,
			}).Error
		if err != nil {
			return nil, err
		}
		return existing, nil
	}

	record := &model.UserProgress{
		UserID:      userID,
		Topic:       topic,
		Progress:    progress,
		LastStudied: now,
	}
	if err := r.DB.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}
