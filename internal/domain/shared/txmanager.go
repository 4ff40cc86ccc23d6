package shared

import "context"

// TxManager runs a function inside a single database transaction.
// Repositories called with the context passed to fn participate in
// that transaction, so an error from fn rolls back every write.
type TxManager interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
