package aiprovider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/creatorkit/server/internal/infra/breaker"
	"github.com/creatorkit/server/internal/port/outbound"
	"github.com/creatorkit/server/internal/shared/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIAdapter_Complete(t *testing.T) {
	t.Run("sends prompt and returns first choice", func(t *testing.T) {
		var got chatRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"An article"},"finish_reason":"stop"}]}`))
		}))
		defer srv.Close()

		a := NewOpenAIAdapter(srv.Client(), srv.URL+"/v1/", "sk-test", "gemini-2.0-flash")
		out, err := a.Complete(context.Background(), &outbound.TextRequest{Prompt: "write", MaxTokens: 800, Temperature: 0.7})

		require.NoError(t, err)
		assert.Equal(t, "An article", out)
		assert.Equal(t, "gemini-2.0-flash", got.Model)
		assert.Equal(t, 800, got.MaxTokens)
		assert.InDelta(t, 0.7, got.Temperature, 1e-9)
		require.Len(t, got.Messages, 1)
		assert.Equal(t, "user", got.Messages[0].Role)
		assert.Equal(t, "write", got.Messages[0].Content)
	})

	t.Run("upstream error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
		}))
		defer srv.Close()

		a := NewOpenAIAdapter(srv.Client(), srv.URL, "k", "m")
		_, err := a.Complete(context.Background(), &outbound.TextRequest{Prompt: "p"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 429")
	})

	t.Run("no choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		a := NewOpenAIAdapter(srv.Client(), srv.URL, "k", "m")
		_, err := a.Complete(context.Background(), &outbound.TextRequest{Prompt: "p"})

		assert.Error(t, err)
	})

	t.Run("canceled context", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		a := NewOpenAIAdapter(srv.Client(), srv.URL, "k", "m")
		_, err := a.Complete(ctx, &outbound.TextRequest{Prompt: "p"})

		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestWithBreaker_FailsFastWhenOpen(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cb := breaker.New("openai", breaker.Config{FailureThreshold: 1, Timeout: time.Minute}, nil)
	port := WithBreaker(NewOpenAIAdapter(srv.Client(), srv.URL, "k", "m"), cb)

	_, err := port.Complete(context.Background(), &outbound.TextRequest{Prompt: "p"})
	require.Error(t, err)
	_, err = port.Complete(context.Background(), &outbound.TextRequest{Prompt: "p"})

	assert.ErrorIs(t, err, breaker.ErrUnavailable)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "openai", port.Name())
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("openai requires api key", func(t *testing.T) {
		_, _, err := New(ctx, config.TextProviderConfig{Type: TypeOpenAI}, http.DefaultClient, nil)
		assert.Error(t, err)
	})

	t.Run("vertex requires project", func(t *testing.T) {
		_, _, err := New(ctx, config.TextProviderConfig{Type: TypeVertex}, http.DefaultClient, nil)
		assert.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, _, err := New(ctx, config.TextProviderConfig{Type: "llama"}, http.DefaultClient, nil)
		assert.Error(t, err)
	})

	t.Run("openai", func(t *testing.T) {
		port, closer, err := New(ctx, config.TextProviderConfig{Type: TypeOpenAI, APIKey: "k", BaseURL: "http://localhost"}, http.DefaultClient, nil)
		require.NoError(t, err)
		assert.Equal(t, "openai", port.Name())
		assert.NoError(t, closer.Close())
	})
}
