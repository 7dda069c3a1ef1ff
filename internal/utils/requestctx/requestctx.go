// Package requestctx carries per-request values through context.Context.
package requestctx

import (
	"context"

	"github.com/creatorkit/server/internal/model"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	callerKey
)

// WithRequestID returns ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request id in ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	s, _ := ctx.Value(requestIDKey).(string)
	return s
}

// WithCaller returns ctx carrying the resolved caller.
func WithCaller(ctx context.Context, caller *model.Caller) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, callerKey, caller)
}

// Caller returns the caller resolved by the auth middleware, or nil.
func Caller(ctx context.Context) *model.Caller {
	if ctx == nil {
		return nil
	}
	c, _ := ctx.Value(callerKey).(*model.Caller)
	return c
}
