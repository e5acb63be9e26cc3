package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai_tutor_backend/internal/config"
	"ai_tutor_backend/pkg/logger"

	"go.uber.org/zap"
)

// aiRequestTimeout bounds each external generation attempt. A timeout is
// treated like any other failure: try the next model, then fall back.
const aiRequestTimeout = 10 * time.Second

// AIService talks to an OpenAI-compatible chat completions API. Candidate
// models are tried in configuration order; the first one that answers with
// non-empty content wins.
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: aiRequestTimeout},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// AIStatus reports whether external generation is configured.
type AIStatus struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

func (s *AIService) Available() bool {
	return s.config.APIKey != ""
}

func (s *AIService) Status() AIStatus {
	if s.Available() {
		return AIStatus{
			Available: true,
			Message:   "External model API is configured and ready for advanced AI tutoring.",
		}
	}
	return AIStatus{
		Available: false,
		Message:   "Using smart educational responses. Configure an AI API key for enhanced tutoring.",
	}
}

// Generate tries each configured model in order and returns the first
// non-empty completion. It returns an error only when every candidate
// fails; the caller degrades to canned content.
func (s *AIService) Generate(ctx context.Context, prompt string) (string, error) {
	if !s.Available() {
		return "", errors.New("AI API key not configured")
	}

	var lastErr error
	for _, model := range s.config.Models {
		text, err := s.complete(ctx, model, prompt)
		if err != nil {
			logger.Log.Debug("model attempt failed",
				zap.String("model", model), zap.Error(err))
			lastErr = err
			continue
		}
		if text != "" {
			return text, nil
		}
	}

	if lastErr == nil {
		lastErr = errors.New("no AI models configured")
	}
	return "", lastErr
}

func (s *AIService) complete(ctx context.Context, model, prompt string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model: model,
		Messages: []AIChatMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, aiRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if result.Error != nil {
		return "", errors.New(result.Error.Message)
	}

	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", errors.New("AI returned no choices")
}
