package mediaprovider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/creatorkit/server/internal/port/outbound"
)

// OpenAIAdapter renders images with the OpenAI images API.
type OpenAIAdapter struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	size    string
}

// NewOpenAIAdapter creates a new OpenAI image adapter with the given HTTP client.
func NewOpenAIAdapter(client *http.Client, baseURL, apiKey, model, size string) *OpenAIAdapter {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIAdapter{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		size:    size,
	}
}

// Name returns the adapter name.
func (a *OpenAIAdapter) Name() string {
	return "openai-images"
}

// openAIImageRequest represents an OpenAI image generation request.
type openAIImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n,omitempty"`
	Size           string `json:"size,omitempty"`
	ResponseFormat string `json:"response_format,omitempty"`
}

// openAIImageResponse represents an OpenAI image generation response.
type openAIImageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json,omitempty"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// TextToImage renders prompt and returns the decoded image bytes.
func (a *OpenAIAdapter) TextToImage(ctx context.Context, prompt string) ([]byte, error) {
	body, err := json.Marshal(&openAIImageRequest{
		Model:          a.model,
		Prompt:         prompt,
		N:              1,
		Size:           a.size,
		ResponseFormat: "b64_json",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var openAIResp openAIImageResponse
	if err := json.Unmarshal(respBody, &openAIResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if openAIResp.Error != nil {
		return nil, fmt.Errorf("openai error: %s", openAIResp.Error.Message)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API error (status %d)", resp.StatusCode)
	}
	if len(openAIResp.Data) == 0 || openAIResp.Data[0].B64JSON == "" {
		return nil, fmt.Errorf("no image in response")
	}

	img, err := base64.StdEncoding.DecodeString(openAIResp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Compile-time interface check
var _ outbound.ImageGenerationPort = (*OpenAIAdapter)(nil)
