package aiprovider

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/creatorkit/server/internal/infra/breaker"
	"github.com/creatorkit/server/internal/port/outbound"
	"github.com/creatorkit/server/internal/shared/config"
	"github.com/creatorkit/server/internal/utils/metrics"
)

// Provider types accepted in text_provider.type.
const (
	TypeOpenAI = "openai"
	TypeVertex = "vertex"
)

// New builds the configured text backend behind a circuit breaker. The
// returned closer releases client resources and is never nil.
func New(ctx context.Context, cfg config.TextProviderConfig, client *http.Client, m *metrics.Metrics) (outbound.TextGenerationPort, io.Closer, error) {
	var (
		port   outbound.TextGenerationPort
		closer io.Closer = nopCloser{}
	)

	switch cfg.Type {
	case TypeOpenAI, "":
		if cfg.APIKey == "" {
			return nil, nil, fmt.Errorf("text provider %q: api key is required", TypeOpenAI)
		}
		port = NewOpenAIAdapter(client, cfg.BaseURL, cfg.APIKey, cfg.Model)
	case TypeVertex:
		if cfg.ProjectID == "" {
			return nil, nil, fmt.Errorf("text provider %q: project id is required", TypeVertex)
		}
		v, err := NewVertexAdapter(ctx, cfg.ProjectID, cfg.Location, cfg.Model)
		if err != nil {
			return nil, nil, err
		}
		port, closer = v, v
	default:
		return nil, nil, fmt.Errorf("unknown text provider type: %s", cfg.Type)
	}

	cb := breaker.New(port.Name(), breaker.Config{
		FailureThreshold: cfg.FailureThreshold,
		Timeout:          cfg.CircuitTimeout,
	}, m)
	return WithBreaker(port, cb), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
