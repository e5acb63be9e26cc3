package service

import (
	"context"
	"errors"
	"math"

	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/util"

	"gorm.io/gorm"
)

type quizStore interface {
	FindAll(ctx context.Context) ([]model.Quiz, error)
	FindByID(ctx context.Context, id uint) (*model.Quiz, error)
	CreateAttempt(ctx context.Context, attempt *model.QuizAttempt) error
	FindAttemptsByUser(ctx context.Context, userID uint) ([]model.QuizAttempt, error)
}

type QuizService struct {
	quizzes  quizStore
	progress progressLedger
}

func NewQuizService(quizzes quizStore, progress progressLedger) *QuizService {
	return &QuizService{quizzes: quizzes, progress: progress}
}

type QuizResult struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"totalQuestions"`
}

// ScoreQuiz compares answers positionally against the correct option
// indices and returns a rounded percentage. Out-of-range or missing
// entries never match; a quiz with no questions scores 0.
func ScoreQuiz(questions []model.QuizQuestion, answers []int) int {
	if len(questions) == 0 {
		return 0
	}

	correct := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}

	return int(math.Round(float64(correct) / float64(len(questions)) * 100))
}

func (s *QuizService) List(ctx context.Context) ([]model.Quiz, error) {
	return s.quizzes.FindAll(ctx)
}

func (s *QuizService) Get(ctx context.Context, id uint) (*model.Quiz, error) {
	quiz, err := s.quizzes.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

// Submit scores a submission, records the attempt, and overwrites the
// topic progress with the score. Unlike the chat path's +5 bump, a quiz
// score is treated as the authoritative mastery signal and replaces the
// stored value outright.
func (s *QuizService) Submit(ctx context.Context, userID, quizID uint, answers []int) (*QuizResult, error) {
	quiz, err := s.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if len(answers) != len(quiz.Questions) {
		return nil, util.ErrMalformedSubmission
	}

	score := ScoreQuiz(quiz.Questions, answers)

	err = s.quizzes.CreateAttempt(ctx, &model.QuizAttempt{
		UserID:  userID,
		QuizID:  quizID,
		Answers: answers,
		Score:   score,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.progress.Upsert(ctx, userID, quiz.Topic, score); err != nil {
		return nil, err
	}

	return &QuizResult{
		Score:          score,
		TotalQuestions: len(quiz.Questions),
	}, nil
}
