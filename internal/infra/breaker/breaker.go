// Package breaker wraps upstream provider calls in a circuit breaker and
// records their latency. Calls are never retried.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/creatorkit/server/internal/utils/metrics"
	"github.com/sony/gobreaker/v2"
)

// ErrUnavailable is returned without calling upstream while the circuit is open.
var ErrUnavailable = errors.New("provider temporarily unavailable")

// Config contains breaker configuration.
type Config struct {
	FailureThreshold    uint32
	Timeout             time.Duration
	MaxHalfOpenRequests uint32
}

// DefaultConfig returns the default breaker configuration.
func DefaultConfig() Config {
	return Config{
		FailureThreshold:    5,
		Timeout:             30 * time.Second,
		MaxHalfOpenRequests: 1,
	}
}

// Breaker guards one upstream provider.
type Breaker struct {
	name    string
	cb      *gobreaker.CircuitBreaker[any]
	metrics *metrics.Metrics
}

// New creates a breaker named after the provider. m may be nil.
func New(name string, cfg Config, m *metrics.Metrics) *Breaker {
	def := DefaultConfig()
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxHalfOpenRequests == 0 {
		cfg.MaxHalfOpenRequests = def.MaxHalfOpenRequests
	}

	b := &Breaker{name: name, metrics: m}
	b.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxHalfOpenRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			// A caller hanging up says nothing about upstream health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(_ string, _, to gobreaker.State) {
			if m != nil {
				m.SetCircuitState(name, int(to))
			}
		},
	})
	if m != nil {
		m.SetCircuitState(name, int(gobreaker.StateClosed))
	}
	return b
}

// Name returns the provider name.
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current circuit state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Do runs fn through the breaker and records the call under operation.
func Do[T any](b *Breaker, operation string, fn func() (T, error)) (T, error) {
	start := time.Now()
	res, err := b.cb.Execute(func() (any, error) {
		return fn()
	})

	var zero T
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		b.record(operation, "open", time.Since(start))
		return zero, fmt.Errorf("%s: %w", b.name, ErrUnavailable)
	case err != nil:
		b.record(operation, "error", time.Since(start))
		return zero, err
	}

	b.record(operation, "ok", time.Since(start))
	out, _ := res.(T)
	return out, nil
}

func (b *Breaker) record(operation, status string, d time.Duration) {
	if b.metrics != nil {
		b.metrics.RecordProviderCall(b.name, operation, status, d)
	}
}
