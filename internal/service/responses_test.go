package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai_tutor_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReplyWithoutGenerator(t *testing.T) {
	for _, topic := range []model.Topic{model.TopicPython, model.TopicWebDev, model.TopicDataScience, model.TopicMath, model.TopicGeneral} {
		reply := GenerateReply(context.Background(), "anything", topic, nil, nil)
		assert.NotEmpty(t, reply.Content)
		assert.Equal(t, topic, reply.Topic)
		assert.Len(t, reply.SuggestedTopics, 4)
	}
}

func TestGenerateReplyCannedSubPatterns(t *testing.T) {
	reply := GenerateReply(context.Background(), "What is a Python variable?", model.TopicPython, nil, nil)
	assert.Contains(t, reply.Content, "Variables in Python")
	assert.Equal(t, []string{"Variables and Data Types", "Functions and Methods", "Loops and Conditionals", "Lists and Dictionaries"}, reply.SuggestedTopics)

	reply = GenerateReply(context.Background(), "how do functions work in code", model.TopicPython, nil, nil)
	assert.Contains(t, reply.Content, "Functions are reusable blocks")

	reply = GenerateReply(context.Background(), "explain a loop", model.TopicPython, nil, nil)
	assert.Contains(t, reply.Content, "Loops let you repeat")

	// No sub-pattern: generic topic overview.
	reply = GenerateReply(context.Background(), "teach me some programming", model.TopicPython, nil, nil)
	assert.Contains(t, reply.Content, "beginner-friendly programming language")

	reply = GenerateReply(context.Background(), "css grid tips", model.TopicWebDev, nil, nil)
	assert.Contains(t, reply.Content, "CSS styles your HTML")
}

func TestGenerateReplyGeneralEchoesMessage(t *testing.T) {
	reply := GenerateReply(context.Background(), "ancient philosophy", model.TopicGeneral, nil, nil)
	assert.Contains(t, reply.Content, `"ancient philosophy"`)
	assert.Contains(t, reply.Content, "knowledge level")
}

func TestGenerateReplyUsesExternalText(t *testing.T) {
	gen := &fakeGenerator{available: true, text: "Closures let a function capture its environment, for example a counter."}

	reply := GenerateReply(context.Background(), "what is a closure", model.TopicPython, gen, nil)

	require.Len(t, gen.prompts, 1)
	assert.Equal(t, gen.text, reply.Content)
	assert.Len(t, reply.SuggestedTopics, 4)
}

func TestGenerateReplyFallsBackOnError(t *testing.T) {
	gen := &fakeGenerator{available: true, err: errors.New("upstream down")}

	reply := GenerateReply(context.Background(), "what is a variable", model.TopicPython, gen, nil)

	assert.Contains(t, reply.Content, "Variables in Python")
}

func TestGenerateReplyFallsBackOnEmptyText(t *testing.T) {
	gen := &fakeGenerator{available: true, text: "   "}

	reply := GenerateReply(context.Background(), "what is a variable", model.TopicPython, gen, nil)

	assert.Contains(t, reply.Content, "Variables in Python")
}

func TestGenerateReplySkipsUnavailableGenerator(t *testing.T) {
	gen := &fakeGenerator{available: false, text: "should not be used"}

	reply := GenerateReply(context.Background(), "what is a variable", model.TopicPython, gen, nil)

	assert.Empty(t, gen.prompts)
	assert.Contains(t, reply.Content, "Variables in Python")
}

func TestBuildTutorPrompt(t *testing.T) {
	prompt := BuildTutorPrompt("What is recursion?", nil)
	assert.Contains(t, prompt, "A beginner student asks")
	assert.Contains(t, prompt, `"What is recursion?"`)
	assert.Contains(t, prompt, "step-by-step explanation")
	assert.Contains(t, prompt, "under 150 words")

	prompt = BuildTutorPrompt("What is recursion?", &ConversationContext{LearningLevel: "advanced", PreferredStyle: "examples"})
	assert.Contains(t, prompt, "A advanced student asks")
	assert.Contains(t, prompt, "practical examples")

	prompt = BuildTutorPrompt("What is recursion?", &ConversationContext{PreferredStyle: "practice"})
	assert.Contains(t, prompt, "practice exercises")
}

func TestFormatExternalReply(t *testing.T) {
	assert.Equal(t, "Here is an example of a list.",
		FormatExternalReply("Assistant: Here is an example of a list."))

	assert.Equal(t, "You should understand slices first.",
		FormatExternalReply("  ai: You should understand slices first."))

	assert.Equal(t, "A tutor concept works like this.",
		FormatExternalReply("TUTOR: A tutor concept works like this."))

	// No instructional vocabulary: framing sentence is prepended.
	formatted := FormatExternalReply("Slices are windows into arrays.")
	assert.True(t, strings.HasPrefix(formatted, "Let me help you understand this concept. "))
	assert.Contains(t, formatted, "Slices are windows into arrays.")

	// Already instructional: left alone.
	assert.Equal(t, "Let's learn about slices.",
		FormatExternalReply("Let's learn about slices."))
}
