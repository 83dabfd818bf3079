package accountmock

import (
	"context"

	domain "bankportal-backend/internal/domain/account"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	GetByAccountIDFn func(ctx context.Context, accountID string) (*domain.Account, error)
	ListByUserIDFn   func(ctx context.Context, userID string, status domain.Status) ([]domain.Account, error)
	DebitFn          func(ctx context.Context, accountID string, amount float64) (int64, error)
	CreditFn         func(ctx context.Context, accountID string, amount float64) error
}

func (m *Repo) GetByAccountID(ctx context.Context, accountID string) (*domain.Account, error) {
	if m.GetByAccountIDFn != nil {
		return m.GetByAccountIDFn(ctx, accountID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByUserID(ctx context.Context, userID string, status domain.Status) ([]domain.Account, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID, status)
	}
	return nil, nil
}

func (m *Repo) Debit(ctx context.Context, accountID string, amount float64) (int64, error) {
	if m.DebitFn != nil {
		return m.DebitFn(ctx, accountID, amount)
	}
	return 1, nil
}

func (m *Repo) Credit(ctx context.Context, accountID string, amount float64) error {
	if m.CreditFn != nil {
		return m.CreditFn(ctx, accountID, amount)
	}
	return nil
}
