package service

import (
	"context"
	"math"

	"ai_tutor_backend/internal/model"
)

type progressStore interface {
	progressLedger
	FindByUser(ctx context.Context, userID uint) ([]model.UserProgress, error)
}

type attemptReader interface {
	FindAttemptsByUser(ctx context.Context, userID uint) ([]model.QuizAttempt, error)
}

type ProgressService struct {
	progress progressStore
	attempts attemptReader
}

func NewProgressService(progress progressStore, attempts attemptReader) *ProgressService {
	return &ProgressService{progress: progress, attempts: attempts}
}

func (s *ProgressService) List(ctx context.Context, userID uint) ([]model.UserProgress, error) {
	return s.progress.FindByUser(ctx, userID)
}

// UpdateProgress sets the (user, topic) progress directly, clamped to
// [0,100] by the ledger.
func (s *ProgressService) UpdateProgress(ctx context.Context, userID uint, topic string, progress int) (*model.UserProgress, error) {
	return s.progress.Upsert(ctx, userID, topic, progress)
}

type LearningStats struct {
	TopicsLearned int `json:"topicsLearned"`
	AverageScore  int `json:"averageScore"`
	StudyStreak   int `json:"studyStreak"`
}

// Stats summarizes a user's activity. StudyStreak is a placeholder value;
// a real daily-activity streak is not implemented yet.
func (s *ProgressService) Stats(ctx context.Context, userID uint) (*LearningStats, error) {
	records, err := s.progress.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.attempts.FindAttemptsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	averageScore := 0
	if len(attempts) > 0 {
		sum := 0
		for _, a := range attempts {
			sum += a.Score
		}
		averageScore = int(math.Round(float64(sum) / float64(len(attempts))))
	}

	return &LearningStats{
		TopicsLearned: len(records),
		AverageScore:  averageScore,
		StudyStreak:   7,
	}, nil
}
