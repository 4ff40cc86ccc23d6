package persistence

import (
	"context"

	"github.com/ongcompta/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// txContextKey is the context key carrying the active transaction
type txContextKey struct{}

// GormTxManager implements shared.TxManager over a GORM connection.
// The transaction handle travels through the context, so repositories
// called inside InTx join the same transaction transparently.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a transaction manager over the connection
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// InTx runs fn inside a single transaction. Nested calls join the
// transaction already bound to the context instead of opening a new one.
func (m *GormTxManager) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// txFromContext extracts the transaction bound to the context, if any
func txFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// session returns the connection a repository call should run on: the
// transaction bound to the context when inside InTx, the base
// connection otherwise.
func session(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

// Ensure GormTxManager implements TxManager
var _ shared.TxManager = (*GormTxManager)(nil)
