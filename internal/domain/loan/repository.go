package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the rest of the transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	ListByUserID(ctx context.Context, userID string) ([]Loan, error)
	// CountActiveByUserIDForUpdate locks the user's open loan rows and counts
	// them, so a concurrent application cannot slip past MaxActiveLoans.
	CountActiveByUserIDForUpdate(ctx context.Context, userID string) (int64, error)
	Save(ctx context.Context, l *Loan) error
	// SettleDeposit flips deposit_paid/deposit_status/status/version in one
	// conditional UPDATE keyed on deposit_status != completed. Returns the
	// number of rows affected; zero means a second writer lost the race.
	SettleDeposit(ctx context.Context, id uint64, method DepositMethod) (int64, error)
}
