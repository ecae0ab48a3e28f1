package domain

import "context"

// TransactionManager defines the interface for handling database transactions.
type TransactionManager interface {
	// RunInTx executes the given function within a transaction.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
