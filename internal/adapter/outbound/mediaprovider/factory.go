package mediaprovider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/creatorkit/server/internal/infra/breaker"
	"github.com/creatorkit/server/internal/port/outbound"
	"github.com/creatorkit/server/internal/shared/config"
	"github.com/creatorkit/server/internal/utils/metrics"
)

// Provider types accepted in image_provider.type.
const (
	TypeClipDrop = "clipdrop"
	TypeOpenAI   = "openai"
)

// New builds the configured image backend behind a circuit breaker.
func New(cfg config.ImageProviderConfig, client *http.Client, m *metrics.Metrics) (outbound.ImageGenerationPort, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("image provider %q: api key is required", cfg.Type)
	}

	var port outbound.ImageGenerationPort
	switch cfg.Type {
	case TypeClipDrop, "":
		port = NewClipDropAdapter(client, cfg.BaseURL, cfg.APIKey)
	case TypeOpenAI:
		port = NewOpenAIAdapter(client, cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Size)
	default:
		return nil, fmt.Errorf("unknown image provider type: %s", cfg.Type)
	}

	cb := breaker.New(port.Name(), breaker.Config{
		FailureThreshold: cfg.FailureThreshold,
		Timeout:          cfg.CircuitTimeout,
	}, m)
	return &guardedImage{next: port, cb: cb}, nil
}

// guardedImage runs every render through a circuit breaker.
type guardedImage struct {
	next outbound.ImageGenerationPort
	cb   *breaker.Breaker
}

func (g *guardedImage) Name() string {
	return g.next.Name()
}

func (g *guardedImage) TextToImage(ctx context.Context, prompt string) ([]byte, error) {
	return breaker.Do(g.cb, "text_to_image", func() ([]byte, error) {
		return g.next.TextToImage(ctx, prompt)
	})
}
