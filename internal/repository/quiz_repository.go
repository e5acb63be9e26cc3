package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const quizCacheTTL = time.Hour

type QuizRepository struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewQuizRepository(db *gorm.DB, rdb *redis.Client) *QuizRepository {
	return &QuizRepository{DB: db, RDB: rdb}
}

func (r *QuizRepository) FindAll(ctx context.Context) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.WithContext(ctx).Find(&quizzes).Error
	return quizzes, err
}

// FindByID serves quiz definitions through a redis read-through cache.
// Quizzes are read-hot and immutable after seeding; cache errors fall
// back to the database silently.
func (r *QuizRepository) FindByID(ctx context.Context, id uint) (*model.Quiz, error) {
	cacheKey := fmt.Sprintf("quiz:%d", id)

	if r.RDB != nil {
		if cached, err := r.RDB.Get(ctx, cacheKey).Result(); err == nil {
			var quiz model.Quiz
			if err := json.Unmarshal([]byte(cached), &quiz); err == nil {
				return &quiz, nil
			}
		}
	}

	var quiz model.Quiz
	if err := r.DB.WithContext(ctx).First(&quiz, id).Error; err != nil {
		return nil, err
	}

	if r.RDB != nil {
		if data, err := json.Marshal(&quiz); err == nil {
			if err := r.RDB.Set(ctx, cacheKey, data, quizCacheTTL).Err(); err != nil {
				logger.Log.Debug("quiz cache write failed", zap.Uint("quizId", id), zap.Error(err))
			}
		}
	}

	return &quiz, nil
}

func (r *QuizRepository) CreateAttempt(ctx context.Context, attempt *model.QuizAttempt) error {
	return r.DB.WithContext(ctx).Create(attempt).Error
}

// FindAttemptsByUser returns the user's attempts, newest first.
func (r *QuizRepository) FindAttemptsByUser(ctx context.Context, userID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&attempts).Error
	return attempts, err
}
