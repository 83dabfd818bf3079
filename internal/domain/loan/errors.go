package loan

import "errors"

// Validation errors: caller-correctable, surfaced with the offending field.
var (
	ErrUnknownLoanType     = errors.New("unknown loan type")
	ErrPrincipalOutOfRange = errors.New("principal outside product bounds")
	ErrTermOutOfRange      = errors.New("term outside the selected rate tier")
	ErrInvalidTerm         = errors.New("invalid loan term")
	ErrDepositMismatch     = errors.New("amount does not match the required deposit")
)

// Policy errors: correctable only by an out-of-band action; clients render a
// dedicated treatment, not a plain form error.
var (
	ErrMaxActiveLoans  = errors.New("maximum concurrent active loans reached")
	ErrNoActiveAccount = errors.New("no active account on file")
)

// Concurrency / idempotency errors: stale client state or a lost race.
// Safe to re-fetch and re-render, never retried blindly.
var (
	ErrDepositAlreadySettled  = errors.New("deposit already settled")
	ErrInvalidStateTransition = errors.New("invalid state transition")
)

// Resource errors.
var ErrInsufficientFunds = errors.New("insufficient funds")

var (
	ErrNotFound        = errors.New("loan not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrNotDisbursed    = errors.New("loan is not active for repayment")
)
