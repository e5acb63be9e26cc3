package repository

import (
	"context"

	"ai_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type ConversationRepository struct {
	DB *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{DB: db}
}

func (r *ConversationRepository) Create(ctx context.Context, conversation *model.Conversation) error {
	return r.DB.WithContext(ctx).Create(conversation).Error
}

func (r *ConversationRepository) FindByID(ctx context.Context, id uint) (*model.Conversation, error) {
	var conversation model.Conversation
	err := r.DB.WithContext(ctx).First(&conversation, id).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// FindByUser returns the user's conversations, most recently updated first.
func (r *ConversationRepository) FindByUser(ctx context.Context, userID uint) ([]model.Conversation, error) {
	var conversations []model.Conversation
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&conversations).Error
	return conversations, err
}

func (r *ConversationRepository) UpdateTopic(ctx context.Context, id uint, topic string) error {
	return r.DB.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("topic", topic).Error
}

// CreateMessage appends a message and touches the parent conversation so
// the recency ordering of FindByUser stays correct.
func (r *ConversationRepository) CreateMessage(ctx context.Context, message *model.Message) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&model.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP(3)")).Error
	})
}

// FindMessages returns a conversation's messages oldest first.
func (r *ConversationRepository) FindMessages(ctx context.Context, conversationID uint) ([]model.Message, error) {
	var messages []model.Message
	err := r.DB.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
