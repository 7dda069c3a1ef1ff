package aiprovider

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"github.com/creatorkit/server/internal/port/outbound"
)

// VertexAdapter completes prompts with a Gemini model on Vertex AI.
// Credentials come from Application Default Credentials.
type VertexAdapter struct {
	client *genai.Client
	model  string
}

// NewVertexAdapter creates a new Vertex AI adapter.
func NewVertexAdapter(ctx context.Context, projectID, location, model string) (*VertexAdapter, error) {
	client, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
	}
	return &VertexAdapter{client: client, model: model}, nil
}

// Name returns the adapter name.
func (a *VertexAdapter) Name() string {
	return "vertex"
}

// Complete generates a single response for req.Prompt.
func (a *VertexAdapter) Complete(ctx context.Context, req *outbound.TextRequest) (string, error) {
	m := a.client.GenerativeModel(a.model)
	m.SetTemperature(float32(req.Temperature))
	if req.MaxTokens > 0 {
		m.SetMaxOutputTokens(int32(req.MaxTokens))
	}

	resp, err := m.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates in response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String(), nil
}

// Close releases the underlying client.
func (a *VertexAdapter) Close() error {
	return a.client.Close()
}

var _ outbound.TextGenerationPort = (*VertexAdapter)(nil)
