package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"knowledgegpt-be/pkg/llm"
)

// Provider talks to the Cohere v1 chat endpoint.
type Provider struct {
	apiKey    string
	baseURL   string
	modelName string
	client    *http.Client
}

var _ llm.Provider = (*Provider)(nil)

func NewProvider(apiKey string, modelName string) *Provider {
	if modelName == "" {
		modelName = "command-r"
	}
	return &Provider{
		apiKey:    apiKey,
		baseURL:   "https://api.cohere.com/v1/chat",
		modelName: modelName,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type cohereChatMessage struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

type cohereChatRequest struct {
	Model       string              `json:"model"`
	Message     string              `json:"message"`
	ChatHistory []cohereChatMessage `json:"chat_history,omitempty"`
	Temperature float64             `json:"temperature,omitempty"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
}

type cohereChatResponse struct {
	Text    string `json:"text"`
	Message string `json:"message,omitempty"`
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.3,
	}
	for _, opt := range opts {
		opt(options)
	}

	if len(history) == 0 {
		return "", fmt.Errorf("empty chat history")
	}

	// Cohere separates the current message from the prior history and uses
	// USER/CHATBOT role names.
	last := history[len(history)-1]
	prior := make([]cohereChatMessage, 0, len(history)-1)
	for _, msg := range history[:len(history)-1] {
		role := "USER"
		switch msg.Role {
		case "assistant", "model":
			role = "CHATBOT"
		case "system":
			role = "SYSTEM"
		}
		prior = append(prior, cohereChatMessage{Role: role, Message: msg.Content})
	}

	model := p.modelName
	if options.Model != "" {
		model = options.Model
	}

	payload := cohereChatRequest{
		Model:       model,
		Message:     last.Content,
		ChatHistory: prior,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cohere chat request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cohere chat error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp cohereChatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return chatResp.Text, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
