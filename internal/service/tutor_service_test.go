package service

import (
	"context"
	"errors"
	"testing"

	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleChatTurnNewConversation(t *testing.T) {
	conversations := newFakeConversationStore()
	progress := newFakeProgressLedger()
	svc := NewTutorService(conversations, progress, nil)

	result, err := svc.HandleChatTurn(context.Background(), 7, "What is a Python variable?", 0)
	require.NoError(t, err)

	assert.Equal(t, model.TopicPython, result.Topic)
	assert.Contains(t, result.Message, "Variables in Python")
	assert.Equal(t, []string{"Variables and Data Types", "Functions and Methods", "Loops and Conditionals", "Lists and Dictionaries"}, result.SuggestedTopics)

	// Conversation created, titled from the message, topic recorded.
	conversation, err := conversations.FindByID(context.Background(), result.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, "What is a Python variable?...", conversation.Title)
	assert.Equal(t, string(model.TopicPython), conversation.Topic)

	// Both sides of the turn persisted, user first.
	require.Len(t, conversations.messages, 2)
	assert.Equal(t, model.RoleUser, conversations.messages[0].Role)
	assert.Equal(t, "What is a Python variable?", conversations.messages[0].Content)
	assert.Equal(t, model.RoleAssistant, conversations.messages[1].Role)

	// First activity on the topic: 0 + 5.
	record, err := progress.FindByUserAndTopic(context.Background(), 7, string(model.TopicPython))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 5, record.Progress)
}

func TestHandleChatTurnIncrementsExistingProgress(t *testing.T) {
	conversations := newFakeConversationStore()
	progress := newFakeProgressLedger()
	_, err := progress.Upsert(context.Background(), 7, string(model.TopicPython), 40)
	require.NoError(t, err)

	svc := NewTutorService(conversations, progress, nil)
	_, err = svc.HandleChatTurn(context.Background(), 7, "more python please", 0)
	require.NoError(t, err)

	record, _ := progress.FindByUserAndTopic(context.Background(), 7, string(model.TopicPython))
	assert.Equal(t, 45, record.Progress)
}

func TestHandleChatTurnProgressCapped(t *testing.T) {
	conversations := newFakeConversationStore()
	progress := newFakeProgressLedger()
	_, err := progress.Upsert(context.Background(), 7, string(model.TopicPython), 98)
	require.NoError(t, err)

	svc := NewTutorService(conversations, progress, nil)
	_, err = svc.HandleChatTurn(context.Background(), 7, "python again", 0)
	require.NoError(t, err)

	record, _ := progress.FindByUserAndTopic(context.Background(), 7, string(model.TopicPython))
	assert.Equal(t, 100, record.Progress)
}

func TestHandleChatTurnExistingConversation(t *testing.T) {
	conversations := newFakeConversationStore()
	conversation := &model.Conversation{UserID: 7, Title: "t...", Topic: string(model.TopicPython)}
	require.NoError(t, conversations.Create(context.Background(), conversation))

	svc := NewTutorService(conversations, newFakeProgressLedger(), nil)
	result, err := svc.HandleChatTurn(context.Background(), 7, "and loops?", conversation.ID)
	require.NoError(t, err)

	assert.Equal(t, conversation.ID, result.ConversationID)
}

func TestHandleChatTurnConversationOwnership(t *testing.T) {
	conversations := newFakeConversationStore()
	conversation := &model.Conversation{UserID: 1, Title: "t..."}
	require.NoError(t, conversations.Create(context.Background(), conversation))

	svc := NewTutorService(conversations, newFakeProgressLedger(), nil)

	_, err := svc.HandleChatTurn(context.Background(), 7, "hello", conversation.ID)
	assert.ErrorIs(t, err, util.ErrConversationNotFound)

	_, err = svc.HandleChatTurn(context.Background(), 7, "hello", 999)
	assert.ErrorIs(t, err, util.ErrConversationNotFound)
}

// When message persistence fails nothing downstream runs: no reply is
// stored and progress is untouched.
func TestHandleChatTurnStorageFailureStopsTurn(t *testing.T) {
	conversations := newFakeConversationStore()
	conversations.failMessages = errors.New("storage unavailable")
	progress := newFakeProgressLedger()

	svc := NewTutorService(conversations, progress, nil)
	_, err := svc.HandleChatTurn(context.Background(), 7, "python", 0)
	require.Error(t, err)

	assert.Empty(t, conversations.messages)
	assert.Empty(t, progress.upsertCalls)
}

func TestHandleChatTurnLongMessageTitleTruncated(t *testing.T) {
	conversations := newFakeConversationStore()
	svc := NewTutorService(conversations, newFakeProgressLedger(), nil)

	long := "this is a very long opening message about python that keeps going and going"
	result, err := svc.HandleChatTurn(context.Background(), 7, long, 0)
	require.NoError(t, err)

	conversation, _ := conversations.FindByID(context.Background(), result.ConversationID)
	assert.Equal(t, long[:50]+"...", conversation.Title)
}

func TestMessagesEnforcesOwnership(t *testing.T) {
	conversations := newFakeConversationStore()
	conversation := &model.Conversation{UserID: 1, Title: "t..."}
	require.NoError(t, conversations.Create(context.Background(), conversation))

	svc := NewTutorService(conversations, newFakeProgressLedger(), nil)

	_, err := svc.Messages(context.Background(), 2, conversation.ID)
	assert.ErrorIs(t, err, util.ErrConversationNotFound)

	messages, err := svc.Messages(context.Background(), 1, conversation.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
}
