package service

import (
	"context"
	"errors"

	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/util"

	"gorm.io/gorm"
)

// conversationStore is the slice of the storage collaborator the tutor
// facade needs. The gorm ConversationRepository satisfies it; tests plug
// in fakes.
type conversationStore interface {
	Create(ctx context.Context, conversation *model.Conversation) error
	FindByID(ctx context.Context, id uint) (*model.Conversation, error)
	FindByUser(ctx context.Context, userID uint) ([]model.Conversation, error)
	UpdateTopic(ctx context.Context, id uint, topic string) error
	CreateMessage(ctx context.Context, message *model.Message) error
	FindMessages(ctx context.Context, conversationID uint) ([]model.Message, error)
}

// progressLedger is the upsert surface of the progress storage.
type progressLedger interface {
	FindByUserAndTopic(ctx context.Context, userID uint, topic string) (*model.UserProgress, error)
	Upsert(ctx context.Context, userID uint, topic string, progress int) (*model.UserProgress, error)
}

// TutorService orchestrates a chat turn: conversation bookkeeping, topic
// classification, reply generation, and the progress bump.
type TutorService struct {
	conversations conversationStore
	progress      progressLedger
	generator     TextGenerator
}

func NewTutorService(conversations conversationStore, progress progressLedger, generator TextGenerator) *TutorService {
	return &TutorService{
		conversations: conversations,
		progress:      progress,
		generator:     generator,
	}
}

type ChatTurnResult struct {
	ConversationID  uint        `json:"conversationId"`
	Message         string      `json:"message"`
	Topic           model.Topic `json:"topic"`
	SuggestedTopics []string    `json:"suggestedTopics"`
}

const chatProgressIncrement = 5

// HandleChatTurn processes one inbound message end to end. The ordering
// is a contract: the user's message is stored before generation is
// attempted (a crash mid-generation must not lose the input), and the
// progress bump happens only after the assistant message is stored.
func (s *TutorService) HandleChatTurn(ctx context.Context, userID uint, message string, conversationID uint) (*ChatTurnResult, error) {
	conversation, err := s.resolveConversation(ctx, userID, message, conversationID)
	if err != nil {
		return nil, err
	}

	err = s.conversations.CreateMessage(ctx, &model.Message{
		ConversationID: conversation.ID,
		Role:           model.RoleUser,
		Content:        message,
	})
	if err != nil {
		return nil, err
	}

	topic := ClassifyTopic(message)
	reply := GenerateReply(ctx, message, topic, s.generator, nil)

	err = s.conversations.CreateMessage(ctx, &model.Message{
		ConversationID: conversation.ID,
		Role:           model.RoleAssistant,
		Content:        reply.Content,
	})
	if err != nil {
		return nil, err
	}

	if conversation.Topic == "" {
		if err := s.conversations.UpdateTopic(ctx, conversation.ID, topic.String()); err != nil {
			return nil, err
		}
	}

	// Read-then-write: concurrent turns for the same (user, topic) are
	// last-write-wins. Accepted limitation.
	current := 0
	record, err := s.progress.FindByUserAndTopic(ctx, userID, topic.String())
	if err != nil {
		return nil, err
	}
	if record != nil {
		current = record.Progress
	}

	next := current + chatProgressIncrement
	if next > 100 {
		next = 100
	}
	if _, err := s.progress.Upsert(ctx, userID, topic.String(), next); err != nil {
		return nil, err
	}

	return &ChatTurnResult{
		ConversationID:  conversation.ID,
		Message:         reply.Content,
		Topic:           reply.Topic,
		SuggestedTopics: reply.SuggestedTopics,
	}, nil
}

func (s *TutorService) resolveConversation(ctx context.Context, userID uint, message string, conversationID uint) (*model.Conversation, error) {
	if conversationID != 0 {
		conversation, err := s.conversations.FindByID(ctx, conversationID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrConversationNotFound
		}
		if err != nil {
			return nil, err
		}
		if conversation.UserID != userID {
			return nil, util.ErrConversationNotFound
		}
		return conversation, nil
	}

	conversation := &model.Conversation{
		UserID: userID,
		Title:  conversationTitle(message),
	}
	if err := s.conversations.Create(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// conversationTitle derives a title from the opening message.
func conversationTitle(message string) string {
	title := message
	if len(title) > 50 {
		title = title[:50]
	}
	return title + "..."
}

func (s *TutorService) Conversations(ctx context.Context, userID uint) ([]model.Conversation, error) {
	return s.conversations.FindByUser(ctx, userID)
}

// Messages returns a conversation's history, enforcing ownership.
func (s *TutorService) Messages(ctx context.Context, userID, conversationID uint) ([]model.Message, error) {
	conversation, err := s.conversations.FindByID(ctx, conversationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	if conversation.UserID != userID {
		return nil, util.ErrConversationNotFound
	}
	return s.conversations.FindMessages(ctx, conversationID)
}
