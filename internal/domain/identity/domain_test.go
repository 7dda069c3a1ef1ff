package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/port/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSessionVerifier is a mock implementation of SessionVerifierPort.
type MockSessionVerifier struct {
	mock.Mock
}

func (m *MockSessionVerifier) Verify(token string) (*outbound.SessionClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.SessionClaims), args.Error(1)
}

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

func newTestDomain(sessions *MockSessionVerifier, usageDB *MockUsageDB) *Domain {
	d := NewIdentityDomain(sessions, usageDB, 15, zap.NewNop())
	d.now = func() time.Time { return time.Date(2026, 10, 17, 8, 30, 0, 0, time.UTC) }
	return d
}

func TestDomain_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("free user with usage this month", func(t *testing.T) {
		sessions := new(MockSessionVerifier)
		usageDB := new(MockUsageDB)
		sessions.On("Verify", "tok").Return(&outbound.SessionClaims{UserID: "user_1", Plan: model.PlanFree}, nil)
		usageDB.On("Get", ctx, "user_1").Return(&model.UserUsage{UserID: "user_1", Period: "2026-10", FreeUsageCount: 14}, nil)

		caller, err := newTestDomain(sessions, usageDB).Resolve(ctx, "tok")

		require.NoError(t, err)
		assert.Equal(t, "user_1", caller.UserID)
		assert.Equal(t, model.PlanFree, caller.Plan)
		assert.Equal(t, 14, caller.FreeUsageCount)
		assert.Equal(t, "2026-10", caller.Period)
		usageDB.AssertExpectations(t)
	})

	t.Run("usage from an earlier month reads as zero", func(t *testing.T) {
		sessions := new(MockSessionVerifier)
		usageDB := new(MockUsageDB)
		sessions.On("Verify", "tok").Return(&outbound.SessionClaims{UserID: "user_1", Plan: model.PlanFree}, nil)
		usageDB.On("Get", ctx, "user_1").Return(&model.UserUsage{UserID: "user_1", Period: "2026-09", FreeUsageCount: 15}, nil)

		caller, err := newTestDomain(sessions, usageDB).Resolve(ctx, "tok")

		require.NoError(t, err)
		assert.Equal(t, 0, caller.FreeUsageCount)
	})

	t.Run("new user has zero usage", func(t *testing.T) {
		sessions := new(MockSessionVerifier)
		usageDB := new(MockUsageDB)
		sessions.On("Verify", "tok").Return(&outbound.SessionClaims{UserID: "user_2", Plan: model.PlanFree}, nil)
		usageDB.On("Get", ctx, "user_2").Return(nil, nil)

		caller, err := newTestDomain(sessions, usageDB).Resolve(ctx, "tok")

		require.NoError(t, err)
		assert.Equal(t, 0, caller.FreeUsageCount)
		usageDB.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("premium skips usage lookup", func(t *testing.T) {
		sessions := new(MockSessionVerifier)
		usageDB := new(MockUsageDB)
		sessions.On("Verify", "tok").Return(&outbound.SessionClaims{UserID: "user_3", Plan: model.PlanPremium}, nil)

		caller, err := newTestDomain(sessions, usageDB).Resolve(ctx, "tok")

		require.NoError(t, err)
		assert.True(t, caller.Plan.IsPremium())
		usageDB.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("invalid token", func(t *testing.T) {
		sessions := new(MockSessionVerifier)
		usageDB := new(MockUsageDB)
		sessions.On("Verify", "bad").Return(nil, outbound.ErrInvalidSession)

		_, err := newTestDomain(sessions, usageDB).Resolve(ctx, "bad")

		assert.ErrorIs(t, err, ErrAuthentication)
		usageDB.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("missing token", func(t *testing.T) {
		sessions := new(MockSessionVerifier)

		_, err := newTestDomain(sessions, new(MockUsageDB)).Resolve(ctx, " ")

		assert.ErrorIs(t, err, ErrAuthentication)
		sessions.AssertNotCalled(t, "Verify", mock.Anything)
	})

	t.Run("usage store failure", func(t *testing.T) {
		sessions := new(MockSessionVerifier)
		usageDB := new(MockUsageDB)
		sessions.On("Verify", "tok").Return(&outbound.SessionClaims{UserID: "user_1", Plan: model.PlanFree}, nil)
		usageDB.On("Get", ctx, "user_1").Return(nil, errors.New("timeout"))

		_, err := newTestDomain(sessions, usageDB).Resolve(ctx, "tok")

		assert.ErrorIs(t, err, ErrUsageLookup)
		assert.NotErrorIs(t, err, ErrAuthentication)
	})
}

func TestDomain_SetUsage(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		usageDB := new(MockUsageDB)
		usageDB.On("Set", ctx, "user_1", "2026-10", 0).Return(nil)

		err := newTestDomain(new(MockSessionVerifier), usageDB).SetUsage(ctx, "user_1", 0)

		assert.NoError(t, err)
		usageDB.AssertExpectations(t)
	})

	t.Run("rejects count above limit", func(t *testing.T) {
		usageDB := new(MockUsageDB)

		err := newTestDomain(new(MockSessionVerifier), usageDB).SetUsage(ctx, "user_1", 16)

		assert.ErrorIs(t, err, ErrInvalidCount)
		usageDB.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
