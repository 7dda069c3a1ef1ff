package aiprovider

import (
	"context"

	"github.com/creatorkit/server/internal/infra/breaker"
	"github.com/creatorkit/server/internal/port/outbound"
)

// guardedText runs every completion through a circuit breaker.
type guardedText struct {
	next outbound.TextGenerationPort
	cb   *breaker.Breaker
}

// WithBreaker wraps next so that repeated upstream failures fail fast.
func WithBreaker(next outbound.TextGenerationPort, cb *breaker.Breaker) outbound.TextGenerationPort {
	return &guardedText{next: next, cb: cb}
}

func (g *guardedText) Name() string {
	return g.next.Name()
}

func (g *guardedText) Complete(ctx context.Context, req *outbound.TextRequest) (string, error) {
	return breaker.Do(g.cb, "complete", func() (string, error) {
		return g.next.Complete(ctx, req)
	})
}
