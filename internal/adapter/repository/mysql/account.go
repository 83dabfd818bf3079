package mysql

import (
	"context"

	"gorm.io/gorm"

	accountDomain "bankportal-backend/internal/domain/account"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) GetByAccountID(ctx context.Context, accountID string) (*accountDomain.Account, error) {
	var out accountDomain.Account
	res := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&out)
	return &out, res.Error
}

func (r *AccountRepository) ListByUserID(ctx context.Context, userID string, status accountDomain.Status) ([]accountDomain.Account, error) {
	var out []accountDomain.Account
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, status).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

// Debit subtracts amount only when the account is active and covered; the
// balance guard rides in the WHERE clause so a partial debit cannot exist.
func (r *AccountRepository) Debit(ctx context.Context, accountID string, amount float64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&accountDomain.Account{}).
		Where("account_id = ? AND status = ? AND balance >= ?",
			accountID, accountDomain.StatusActive, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	return res.RowsAffected, res.Error
}

func (r *AccountRepository) Credit(ctx context.Context, accountID string, amount float64) error {
	res := r.db.WithContext(ctx).Model(&accountDomain.Account{}).
		Where("account_id = ?", accountID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
