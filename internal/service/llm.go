package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/wayplan/wayplan/internal/config"
	"github.com/wayplan/wayplan/internal/domain"
)

// Message is a single role/content entry sent to the chat-completions
// endpoint. Order is meaningful and preserved.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompleter is the language-generation collaborator. jsonMode
// constrains the response to a single JSON object instead of free text.
type ChatCompleter interface {
	Complete(ctx context.Context, model string, messages []Message, jsonMode bool) (string, error)
}

type LLMClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewLLMClient(apiKey, baseURL string) *LLMClient {
	return &LLMClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
}

type completionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *LLMClient) Complete(ctx context.Context, model string, messages []Message, jsonMode bool) (string, error) {
	chatReq := completionRequest{
		Model:    model,
		Messages: messages,
	}
	if jsonMode {
		chatReq.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(chatReq)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", fmt.Errorf("%w (%d)", domain.ErrUpstreamAuth, resp.StatusCode)
	case http.StatusTooManyRequests:
		return "", fmt.Errorf("%w (429)", domain.ErrUpstreamRateLimited)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("provider returned %d: %s", resp.StatusCode, upstreamErrorMessage(body))
	}

	var chatResp completionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("provider error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("provider returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}

func upstreamErrorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return string(body)
}
