package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/utils/requestctx"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRateLimiter is a mock implementation of RateLimiterPort.
type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockRateLimiter) AllowN(ctx context.Context, key string, n int, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, n, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockRateLimiter) GetRemaining(ctx context.Context, key string, limit int, window time.Duration) (int, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Int(0), args.Error(1)
}

// withCaller stands in for the auth middleware.
func withCaller(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(requestctx.WithCaller(c.Request.Context(), &model.Caller{UserID: userID}))
		c.Next()
	}
}

func newRateLimitRouter(limiter *MockRateLimiter, cfg RateLimitConfig) *gin.Engine {
	router := gin.New()
	router.Use(withCaller("user_1"))
	if limiter == nil {
		router.Use(RateLimit(nil, cfg))
	} else {
		router.Use(RateLimit(limiter, cfg))
	}
	router.POST("/api/ai/blog-title", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestRateLimit(t *testing.T) {
	cfg := RateLimitConfig{Limit: 30, Window: time.Minute}

	t.Run("allows and sets headers", func(t *testing.T) {
		limiter := new(MockRateLimiter)
		limiter.On("Allow", mock.Anything, "user:user_1", 30, time.Minute).Return(true, nil)
		limiter.On("GetRemaining", mock.Anything, "user:user_1", 30, time.Minute).Return(29, nil)

		w := httptest.NewRecorder()
		newRateLimitRouter(limiter, cfg).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/ai/blog-title", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "30", w.Header().Get(RateLimitLimit))
		assert.Equal(t, "29", w.Header().Get(RateLimitRemaining))
		limiter.AssertExpectations(t)
	})

	t.Run("rejects over limit", func(t *testing.T) {
		limiter := new(MockRateLimiter)
		limiter.On("Allow", mock.Anything, "user:user_1", 30, time.Minute).Return(false, nil)
		limiter.On("GetRemaining", mock.Anything, "user:user_1", 30, time.Minute).Return(0, nil)
		limited := 0
		cfg := cfg
		cfg.OnLimited = func() { limited++ }

		w := httptest.NewRecorder()
		newRateLimitRouter(limiter, cfg).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/ai/blog-title", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "60", w.Header().Get(RetryAfter))
		assert.Contains(t, w.Body.String(), `"success":false`)
		assert.Equal(t, 1, limited)
	})

	t.Run("limiter error lets request through", func(t *testing.T) {
		limiter := new(MockRateLimiter)
		limiter.On("Allow", mock.Anything, mock.Anything, 30, time.Minute).Return(false, errors.New("redis down"))

		w := httptest.NewRecorder()
		newRateLimitRouter(limiter, cfg).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/ai/blog-title", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("nil limiter disables", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRateLimitRouter(nil, cfg).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/ai/blog-title", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUserOrIPKey(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "10.0.0.1:1234"

	assert.Equal(t, "ip:10.0.0.1", userOrIPKey(c))

	c.Request = c.Request.WithContext(requestctx.WithCaller(c.Request.Context(), &model.Caller{UserID: "u"}))
	assert.Equal(t, "user:u", userOrIPKey(c))
}
