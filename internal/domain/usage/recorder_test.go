package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/port/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockUsageDB is a mock implementation of UsageDatabasePort.
type MockUsageDB struct {
	mock.Mock
}

func (m *MockUsageDB) Get(ctx context.Context, userID string) (*model.UserUsage, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserUsage), args.Error(1)
}

func (m *MockUsageDB) Increment(ctx context.Context, userID, period string, limit int) (int, error) {
	args := m.Called(ctx, userID, period, limit)
	return args.Int(0), args.Error(1)
}

func (m *MockUsageDB) Set(ctx context.Context, userID, period string, count int) error {
	args := m.Called(ctx, userID, period, count)
	return args.Error(0)
}

func newTestRecorder(db *MockUsageDB) *Recorder {
	r := NewRecorder(db, 15, zap.NewNop())
	r.now = func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) }
	return r
}

func TestRecorder_Commit(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db := new(MockUsageDB)
		db.On("Increment", ctx, "user_1", "2026-10", 15).Return(15, nil)

		stored, err := newTestRecorder(db).Commit(ctx, "user_1", 15)

		assert.NoError(t, err)
		assert.Equal(t, 15, stored)
		db.AssertExpectations(t)
	})

	t.Run("limit reached maps to race lost", func(t *testing.T) {
		db := new(MockUsageDB)
		db.On("Increment", ctx, "user_1", "2026-10", 15).Return(0, outbound.ErrUsageLimitReached)

		_, err := newTestRecorder(db).Commit(ctx, "user_1", 15)

		assert.ErrorIs(t, err, ErrQuotaRaceLost)
	})

	t.Run("store error is wrapped", func(t *testing.T) {
		db := new(MockUsageDB)
		storeErr := errors.New("connection reset")
		db.On("Increment", ctx, "user_1", "2026-10", 15).Return(0, storeErr)

		_, err := newTestRecorder(db).Commit(ctx, "user_1", 3)

		assert.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, ErrQuotaRaceLost)
	})

	t.Run("stored count wins over expectation", func(t *testing.T) {
		db := new(MockUsageDB)
		db.On("Increment", ctx, "user_1", "2026-10", 15).Return(1, nil)

		stored, err := newTestRecorder(db).Commit(ctx, "user_1", 15)

		assert.NoError(t, err)
		assert.Equal(t, 1, stored)
	})
}

func TestNewRecorder_DefaultLimit(t *testing.T) {
	r := NewRecorder(new(MockUsageDB), 0, zap.NewNop())
	assert.Equal(t, 15, r.limit)
}
