package deposit

import "context"

type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	GetByDepositID(ctx context.Context, depositID string) (*Transaction, error)
	// GetLatestByLoanID returns the newest transaction for a loan, used by the
	// banner derivation and as the settlement guard.
	GetLatestByLoanID(ctx context.Context, loanID uint64) (*Transaction, error)
	// Complete flips pending → completed in one conditional UPDATE; zero rows
	// affected means another confirmation already won.
	Complete(ctx context.Context, depositID string) (int64, error)
}
