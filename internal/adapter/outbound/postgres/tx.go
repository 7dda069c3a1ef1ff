package postgres

import (
	"context"

	"github.com/creatorkit/server/internal/port/outbound"
	"gorm.io/gorm"
)

// txContextKey is used to store the active transaction in a context.
type txContextKeyType struct{}

var txContextKey = txContextKeyType{}

// transactor implements outbound.TransactorPort.
type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a transaction runner. Adapters in this package join
// the transaction when called with the context handed to fn.
func NewTransactor(db *gorm.DB) outbound.TransactorPort {
	return &transactor{db: db}
}

func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txContextKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey, tx))
	})
}

// conn returns the transaction carried by ctx, or db.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
