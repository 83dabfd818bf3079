package deposit

import "bankportal-backend/internal/domain/loan"

// Banner is the single deposit notice a dashboard renders for a loan.
type Banner string

const (
	BannerNone      Banner = ""
	BannerRequired  Banner = "deposit_required"
	BannerSubmitted Banner = "deposit_submitted"
	BannerVerified  Banner = "deposit_verified"
)

// DeriveBanner maps loan + latest deposit transaction to exactly one banner.
// Precedence: a verified deposit wins outright; any existing transaction
// overrides "required" regardless of timing races, so a loan never shows
// "pay now" while a submission is in flight. tx may be nil.
func DeriveBanner(l *loan.Loan, tx *Transaction) Banner {
	switch {
	case l.DepositPaid && l.DepositStatus == loan.DepositCompleted:
		return BannerVerified
	case tx != nil && tx.Status == StatusPending && !l.DepositPaid && l.Status == loan.StatusPending:
		return BannerSubmitted
	case tx == nil && l.Status == loan.StatusPending:
		return BannerRequired
	default:
		return BannerNone
	}
}
