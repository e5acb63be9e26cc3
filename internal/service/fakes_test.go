package service

import (
	"context"
	"os"
	"testing"
	"time"

	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/pkg/logger"
	"ai_tutor_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	monitoring.Init()
	os.Exit(m.Run())
}

type fakeConversationStore struct {
	conversations map[uint]*model.Conversation
	messages      []model.Message
	nextID        uint
	failMessages  error
}

func newFakeConversationStore() *fakeConversationStore {
	return &fakeConversationStore{
		conversations: make(map[uint]*model.Conversation),
		nextID:        1,
	}
}

func (f *fakeConversationStore) Create(_ context.Context, conversation *model.Conversation) error {
	conversation.ID = f.nextID
	f.nextID++
	f.conversations[conversation.ID] = conversation
	return nil
}

func (f *fakeConversationStore) FindByID(_ context.Context, id uint) (*model.Conversation, error) {
	conversation, ok := f.conversations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return conversation, nil
}

func (f *fakeConversationStore) FindByUser(_ context.Context, userID uint) ([]model.Conversation, error) {
	var out []model.Conversation
	for _, c := range f.conversations {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeConversationStore) UpdateTopic(_ context.Context, id uint, topic string) error {
	if c, ok := f.conversations[id]; ok {
		c.Topic = topic
	}
	return nil
}

func (f *fakeConversationStore) CreateMessage(_ context.Context, message *model.Message) error {
	if f.failMessages != nil {
		return f.failMessages
	}
	message.ID = uint(len(f.messages) + 1)
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeConversationStore) FindMessages(_ context.Context, conversationID uint) ([]model.Message, error) {
	var out []model.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

type progressKey struct {
	userID uint
	topic  string
}

// fakeProgressLedger mirrors the repository's SET-with-clamp contract.
type fakeProgressLedger struct {
	records     map[progressKey]*model.UserProgress
	upsertCalls []int
}

func newFakeProgressLedger() *fakeProgressLedger {
	return &fakeProgressLedger{records: make(map[progressKey]*model.UserProgress)}
}

func (f *fakeProgressLedger) FindByUserAndTopic(_ context.Context, userID uint, topic string) (*model.UserProgress, error) {
	record, ok := f.records[progressKey{userID, topic}]
	if !ok {
		return nil, nil
	}
	return record, nil
}

func (f *fakeProgressLedger) Upsert(_ context.Context, userID uint, topic string, progress int) (*model.UserProgress, error) {
	if progress > 100 {
		progress = 100
	}
	if progress < 0 {
		progress = 0
	}
	f.upsertCalls = append(f.upsertCalls, progress)

	key := progressKey{userID, topic}
	if record, ok := f.records[key]; ok {
		record.Progress = progress
		record.LastStudied = time.Now()
		return record, nil
	}

	record := &model.UserProgress{
		UserID:      userID,
		Topic:       topic,
		Progress:    progress,
		LastStudied: time.Now(),
	}
	f.records[key] = record
	return record, nil
}

func (f *fakeProgressLedger) FindByUser(_ context.Context, userID uint) ([]model.UserProgress, error) {
	var out []model.UserProgress
	for key, record := range f.records {
		if key.userID == userID {
			out = append(out, *record)
		}
	}
	return out, nil
}

type fakeQuizStore struct {
	quizzes  map[uint]*model.Quiz
	attempts []model.QuizAttempt
}

func newFakeQuizStore(quizzes ...*model.Quiz) *fakeQuizStore {
	store := &fakeQuizStore{quizzes: make(map[uint]*model.Quiz)}
	for _, q := range quizzes {
		store.quizzes[q.ID] = q
	}
	return store
}

func (f *fakeQuizStore) FindAll(_ context.Context) ([]model.Quiz, error) {
	var out []model.Quiz
	for _, q := range f.quizzes {
		out = append(out, *q)
	}
	return out, nil
}

func (f *fakeQuizStore) FindByID(_ context.Context, id uint) (*model.Quiz, error) {
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return quiz, nil
}

func (f *fakeQuizStore) CreateAttempt(_ context.Context, attempt *model.QuizAttempt) error {
	attempt.ID = uint(len(f.attempts) + 1)
	attempt.CompletedAt = time.Now()
	f.attempts = append(f.attempts, *attempt)
	return nil
}

func (f *fakeQuizStore) FindAttemptsByUser(_ context.Context, userID uint) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for _, a := range f.attempts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeGenerator struct {
	available bool
	text      string
	err       error
	prompts   []string
}

func (f *fakeGenerator) Available() bool {
	return f.available
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}
