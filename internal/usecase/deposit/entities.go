package deposit

import (
	"time"

	loanDomain "bankportal-backend/internal/domain/loan"
)

type SettleInput struct {
	LoanID    string                   `json:"loan_id"`
	UserID    string                   `json:"user_id"`
	AccountID string                   `json:"account_id,omitempty"`
	Amount    float64                  `json:"amount"`
	Method    loanDomain.DepositMethod `json:"method"`
	// ExternalRef is the crypto payment reference; required on that path.
	ExternalRef string `json:"external_ref,omitempty"`
}

type SettleResult struct {
	LoanID        string     `json:"loan_id"`
	DepositID     string     `json:"deposit_id"`
	Status        string     `json:"status"`
	DepositPaid   bool       `json:"deposit_paid"`
	DepositStatus string     `json:"deposit_status"`
	DepositDate   *time.Time `json:"deposit_date,omitempty"`
}

type RepayInput struct {
	LoanID    string  `json:"loan_id"`
	UserID    string  `json:"user_id"`
	AccountID string  `json:"account_id"`
	// Amount defaults to the amortized monthly payment when zero.
	Amount float64 `json:"amount,omitempty"`
}

type RepayResult struct {
	LoanID           string  `json:"loan_id"`
	AmountPaid       float64 `json:"amount_paid"`
	RemainingBalance float64 `json:"remaining_balance"`
	EligibleToClose  bool    `json:"eligible_to_close"`
}
