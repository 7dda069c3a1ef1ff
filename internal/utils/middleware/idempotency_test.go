package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memIdempotencyStore is an in-memory IdempotencyStorePort.
type memIdempotencyStore struct {
	mu        sync.Mutex
	locks     map[string]bool
	responses map[string][]byte
}

func newMemIdempotencyStore() *memIdempotencyStore {
	return &memIdempotencyStore{locks: map[string]bool{}, responses: map[string][]byte{}}
}

func (s *memIdempotencyStore) Reserve(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[key] {
		return false, nil
	}
	s.locks[key] = true
	return true, nil
}

func (s *memIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, key)
	return nil
}

func (s *memIdempotencyStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.responses[key], nil
}

func (s *memIdempotencyStore) Save(_ context.Context, key string, response []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[key] = response
	return nil
}

func TestIdempotency(t *testing.T) {
	newRouter := func(store *memIdempotencyStore, status int, calls *int) *gin.Engine {
		router := gin.New()
		router.Use(withCaller("user_1"), Idempotency(store, IdempotencyConfig{}))
		router.POST("/api/ai/generate-article", func(c *gin.Context) {
			*calls++
			c.JSON(status, gin.H{"success": status == http.StatusOK, "n": *calls})
		})
		return router
	}
	post := func(router *gin.Engine, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/ai/generate-article", nil)
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("replays the first successful response", func(t *testing.T) {
		calls := 0
		router := newRouter(newMemIdempotencyStore(), http.StatusOK, &calls)

		first := post(router, "abc")
		second := post(router, "abc")

		require.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, 1, calls)
		assert.JSONEq(t, first.Body.String(), second.Body.String())
		assert.Equal(t, "true", second.Header().Get(IdempotencyReplayedHeader))
	})

	t.Run("failed attempts can be retried", func(t *testing.T) {
		calls := 0
		router := newRouter(newMemIdempotencyStore(), http.StatusBadGateway, &calls)

		post(router, "abc")
		post(router, "abc")

		assert.Equal(t, 2, calls)
	})

	t.Run("duplicate while first is running gets conflict", func(t *testing.T) {
		store := newMemIdempotencyStore()
		entered := make(chan struct{})
		release := make(chan struct{})
		router := gin.New()
		router.Use(withCaller("user_1"), Idempotency(store, IdempotencyConfig{}))
		router.POST("/api/ai/generate-article", func(c *gin.Context) {
			close(entered)
			<-release
			c.JSON(http.StatusOK, gin.H{"success": true})
		})

		done := make(chan *httptest.ResponseRecorder)
		go func() { done <- post(router, "held") }()
		<-entered

		second := post(router, "held")
		close(release)
		first := <-done

		assert.Equal(t, http.StatusConflict, second.Code)
		assert.Equal(t, http.StatusOK, first.Code)
		assert.Empty(t, store.locks, "lock is released after completion")
	})

	t.Run("no key bypasses", func(t *testing.T) {
		calls := 0
		router := newRouter(newMemIdempotencyStore(), http.StatusOK, &calls)

		post(router, "")
		post(router, "")

		assert.Equal(t, 2, calls)
	})

	t.Run("keys are scoped per caller", func(t *testing.T) {
		store := newMemIdempotencyStore()
		calls := 0
		handler := func(c *gin.Context) {
			calls++
			c.JSON(http.StatusOK, gin.H{"success": true})
		}
		routerA := gin.New()
		routerA.Use(withCaller("user_a"), Idempotency(store, IdempotencyConfig{}))
		routerA.POST("/api/ai/generate-article", handler)
		routerB := gin.New()
		routerB.Use(withCaller("user_b"), Idempotency(store, IdempotencyConfig{}))
		routerB.POST("/api/ai/generate-article", handler)

		post(routerA, "same")
		post(routerB, "same")

		assert.Equal(t, 2, calls)
	})
}
