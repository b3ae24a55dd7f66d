package repositories

import (
	"context"
)

// TxFunc is the body of a unit of work. The repositories it receives are
// bound to the surrounding transaction.
type TxFunc func(ctx context.Context, repos Repositories) error

// TransactionManager runs units of work atomically. The transaction is
// committed when fn returns nil and rolled back otherwise.
type TransactionManager interface {
	// WithinTransaction runs fn in a read-write transaction.
	WithinTransaction(ctx context.Context, fn TxFunc) error

	// WithinReadOnlyTransaction runs fn in a transaction that sees one
	// consistent snapshot of committed rows and never writes.
	WithinReadOnlyTransaction(ctx context.Context, fn TxFunc) error
}
