package loan

import (
	"fmt"
	"time"
)

// transitions is the full lifecycle DAG:
// pending → under_review → {approved → active → closed} | rejected.
// rejected and closed are terminal; nothing moves backward.
var transitions = map[Status][]Status{
	StatusPending:     {StatusUnderReview, StatusRejected},
	StatusUnderReview: {StatusApproved, StatusActive, StatusRejected},
	StatusApproved:    {StatusActive},
	StatusActive:      {StatusClosed},
	StatusRejected:    {},
	StatusClosed:      {},
}

// CanTransition reports whether from → to is on the DAG. under_review → active
// is the collapsed approve-and-disburse back-office action.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further status writes are permitted.
func Terminal(s Status) bool { return len(transitions[s]) == 0 }

// TransitionTo advances the loan's status, enforcing the DAG and the
// closure guard. On an illegal move it returns ErrInvalidStateTransition
// without touching the record.
func (l *Loan) TransitionTo(to Status, at time.Time) error {
	if !CanTransition(l.Status, to) {
		return fmt.Errorf("%w: %s → %s", ErrInvalidStateTransition, l.Status, to)
	}
	if to == StatusUnderReview && !l.DepositPaid {
		return fmt.Errorf("%w: deposit not paid", ErrInvalidStateTransition)
	}
	if to == StatusClosed && !l.EligibleForClosure() {
		return fmt.Errorf("%w: outstanding balance remains", ErrInvalidStateTransition)
	}
	l.Status = to
	l.StatusUpdatedAt = at.UTC()
	l.Version++
	return nil
}
