package mediaprovider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/creatorkit/server/internal/port/outbound"
)

// ClipDropAdapter renders images with the ClipDrop text-to-image API, which
// answers with the raw PNG body.
type ClipDropAdapter struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewClipDropAdapter creates a new ClipDrop adapter with the given HTTP client.
func NewClipDropAdapter(client *http.Client, baseURL, apiKey string) *ClipDropAdapter {
	if baseURL == "" {
		baseURL = "https://clipdrop-api.co"
	}
	return &ClipDropAdapter{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// Name returns the adapter name.
func (a *ClipDropAdapter) Name() string {
	return "clipdrop"
}

// TextToImage renders prompt and returns the image bytes.
func (a *ClipDropAdapter) TextToImage(ctx context.Context, prompt string) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("prompt", prompt); err != nil {
		return nil, fmt.Errorf("write prompt field: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/text-to-image/v1", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("x-api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(msg))
	}

	img, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("empty image in response")
	}
	return img, nil
}

var _ outbound.ImageGenerationPort = (*ClipDropAdapter)(nil)
