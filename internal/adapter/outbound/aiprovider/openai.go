package aiprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/creatorkit/server/internal/port/outbound"
)

// OpenAIAdapter completes prompts against any OpenAI-compatible
// /chat/completions endpoint (OpenAI, Gemini's compatibility layer, vLLM).
type OpenAIAdapter struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewOpenAIAdapter creates a new OpenAI-compatible adapter with the given HTTP client.
func NewOpenAIAdapter(client *http.Client, baseURL, apiKey, model string) *OpenAIAdapter {
	return &OpenAIAdapter{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

// Name returns the adapter name.
func (a *OpenAIAdapter) Name() string {
	return "openai"
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// Complete performs a single-turn, non-streaming chat completion.
func (a *OpenAIAdapter) Complete(ctx context.Context, req *outbound.TextRequest) (string, error) {
	body := chatRequest{
		Model:       a.model,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	respBody, err := a.doRequest(ctx, "/chat/completions", body)
	if err != nil {
		return "", err
	}
	defer respBody.Close()

	var resp chatResponse
	if err := json.NewDecoder(respBody).Decode(&resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}

// doRequest performs an HTTP request to the chat API.
func (a *OpenAIAdapter) doRequest(ctx context.Context, path string, body any) (io.ReadCloser, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return resp.Body, nil
}

// Compile-time interface assertions
var _ outbound.TextGenerationPort = (*OpenAIAdapter)(nil)
