package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions
type TransactionManager interface {
	// ExecTx executes fn within an exclusive write transaction.
	// The write lock is held before fn runs its first statement, so
	// path checks inside fn cannot race a concurrent writer.
	// A call made while a transaction is already in ctx joins it.
	ExecTx(ctx context.Context, fn TxFn) error
}
