package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	depositDomain "bankportal-backend/internal/domain/deposit"
)

type DepositRepository struct{ db *gorm.DB }

func NewDepositRepository(db *gorm.DB) *DepositRepository { return &DepositRepository{db: db} }

func (r *DepositRepository) Create(ctx context.Context, tx *depositDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *DepositRepository) GetByDepositID(ctx context.Context, depositID string) (*depositDomain.Transaction, error) {
	var out depositDomain.Transaction
	res := r.db.WithContext(ctx).Where("deposit_id = ?", depositID).First(&out)
	return &out, res.Error
}

func (r *DepositRepository) GetLatestByLoanID(ctx context.Context, loanID uint64) (*depositDomain.Transaction, error) {
	var out depositDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

// Complete flips pending → completed; the status guard in the WHERE clause
// serializes concurrent confirmations, only the first returns one row.
func (r *DepositRepository) Complete(ctx context.Context, depositID string) (int64, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&depositDomain.Transaction{}).
		Where("deposit_id = ? AND status = ?", depositID, depositDomain.StatusPending).
		Updates(map[string]any{
			"status":       depositDomain.StatusCompleted,
			"completed_at": now,
		})
	return res.RowsAffected, res.Error
}
