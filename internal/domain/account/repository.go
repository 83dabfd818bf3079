package account

import "context"

type Repository interface {
	GetByAccountID(ctx context.Context, accountID string) (*Account, error)
	ListByUserID(ctx context.Context, userID string, status Status) ([]Account, error)
	// Debit subtracts amount in one conditional UPDATE guarded by
	// status = active AND balance >= amount; zero rows affected means the
	// funds were insufficient (or the account is not debitable). No partial
	// debit is possible.
	Debit(ctx context.Context, accountID string, amount float64) (int64, error)
	Credit(ctx context.Context, accountID string, amount float64) error
}
