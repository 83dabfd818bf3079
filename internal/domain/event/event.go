package event

import (
	"context"
	"sync"
	"time"

	"bankportal-backend/internal/domain/loan"
)

// LoanChanged is published after a loan's status, deposit_paid, or
// deposit_status commits. Version is the loan's post-commit version so
// subscribers can discard deltas that arrive out of order.
type LoanChanged struct {
	LoanID        string             `json:"loan_id"`
	UserID        string             `json:"user_id"`
	Status        loan.Status        `json:"status"`
	DepositPaid   bool               `json:"deposit_paid"`
	DepositStatus loan.DepositStatus `json:"deposit_status"`
	Version       uint64             `json:"version"`
	CommittedAt   time.Time          `json:"committed_at"`
}

// FromLoan snapshots the publishable fields of a committed loan.
func FromLoan(l *loan.Loan) LoanChanged {
	return LoanChanged{
		LoanID:        l.LoanID,
		UserID:        l.UserID,
		Status:        l.Status,
		DepositPaid:   l.DepositPaid,
		DepositStatus: l.DepositStatus,
		Version:       l.Version,
		CommittedAt:   l.UpdatedAt.UTC(),
	}
}

// UserTopic and LoanTopic key the change feed for dashboard and detail views.
func UserTopic(userID string) string { return "loans:user:" + userID }
func LoanTopic(loanID string) string { return "loans:loan:" + loanID }

// Publisher pushes a committed change to both topics. Callers invoke it only
// after the owning transaction commits; failures are logged, never returned
// to the client.
type Publisher interface {
	PublishLoanChanged(ctx context.Context, ev LoanChanged) error
}

// Tracker enforces per-loan delivery order on the subscriber side: Apply
// returns false for any event at or below the last applied version, so a
// stale delta can never overwrite a newer one.
type Tracker struct {
	mu   sync.Mutex
	seen map[string]uint64
}

func NewTracker() *Tracker { return &Tracker{seen: make(map[string]uint64)} }

func (t *Tracker) Apply(ev LoanChanged) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if last, ok := t.seen[ev.LoanID]; ok && ev.Version <= last {
		return false
	}
	t.seen[ev.LoanID] = ev.Version
	return true
}
