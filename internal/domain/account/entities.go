package account

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusActive Status = "active"
	StatusFrozen Status = "frozen"
	StatusClosed Status = "closed"
)

// Account is the funding source debited for deposits and repayments. The
// portal owns the row; account opening/linking flows live elsewhere.
type Account struct {
	ID        uint64         `gorm:"primaryKey;column:id" json:"-"`
	AccountID string         `gorm:"size:32;uniqueIndex:ux_accounts_account_id" json:"account_id"`
	UserID    string         `gorm:"size:32;index:idx_accounts_user" json:"user_id"`
	Balance   float64        `gorm:"type:decimal(18,2)" json:"balance"`
	Status    Status         `gorm:"type:enum('active','frozen','closed');default:'active'" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Account) TableName() string { return "accounts" }
