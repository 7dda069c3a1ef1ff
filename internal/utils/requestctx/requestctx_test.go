package requestctx

import (
	"context"
	"testing"

	"github.com/creatorkit/server/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")

	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "", RequestID(context.Background()))
	assert.Equal(t, "", RequestID(nil)) //nolint:staticcheck
}

func TestCaller(t *testing.T) {
	caller := &model.Caller{UserID: "user_1", Plan: model.PlanPremium}
	ctx := WithCaller(WithRequestID(context.Background(), "req-1"), caller)

	assert.Same(t, caller, Caller(ctx))
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Nil(t, Caller(context.Background()))
}
