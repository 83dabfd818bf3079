package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	loanDomain "bankportal-backend/internal/domain/loan"
)

// respondDomainError maps the error taxonomy onto HTTP. Every branch carries a
// human-readable message naming the next action and a stable machine code so
// policy errors get their dedicated client treatment.
func respondDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, loanDomain.ErrMaxActiveLoans):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:  "max_active_loans",
			Error: "you already have the maximum number of open loans — resolve an existing loan before applying again",
		})
	case errors.Is(err, loanDomain.ErrNoActiveAccount):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:  "no_active_account",
			Error: "no active account on file — open or reactivate an account before applying",
		})
	case errors.Is(err, loanDomain.ErrUnknownLoanType):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    "unknown_loan_type",
			Error:   "the selected loan type is not offered",
			Details: []FieldError{{Field: "loan_type", Message: err.Error()}},
		})
	case errors.Is(err, loanDomain.ErrPrincipalOutOfRange):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    "principal_out_of_range",
			Error:   "the requested amount is outside this product's bounds",
			Details: []FieldError{{Field: "principal", Message: err.Error()}},
		})
	case errors.Is(err, loanDomain.ErrTermOutOfRange):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    "term_out_of_range",
			Error:   "the requested term is not available at the selected rate",
			Details: []FieldError{{Field: "term_months", Message: err.Error()}},
		})
	case errors.Is(err, loanDomain.ErrInvalidTerm):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    "invalid_term",
			Error:   "the loan term must be at least one month",
			Details: []FieldError{{Field: "term_months", Message: err.Error()}},
		})
	case errors.Is(err, loanDomain.ErrDepositMismatch):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    "deposit_mismatch",
			Error:   "the payment must match the required security deposit exactly",
			Details: []FieldError{{Field: "amount", Message: err.Error()}},
		})
	case errors.Is(err, loanDomain.ErrInsufficientFunds):
		return c.JSON(http.StatusPaymentRequired, ErrorResponse{
			Code:  "insufficient_funds",
			Error: "insufficient balance — add funds or pay with crypto",
		})
	case errors.Is(err, loanDomain.ErrDepositAlreadySettled):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:  "deposit_already_settled",
			Error: "this deposit was already submitted or settled — refresh to see the current status",
		})
	case errors.Is(err, loanDomain.ErrInvalidStateTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:  "invalid_state_transition",
			Error: "the loan state changed since you loaded it — refresh and try again",
		})
	case errors.Is(err, loanDomain.ErrNotDisbursed):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:  "loan_not_active",
			Error: "repayments are only accepted on active loans",
		})
	case errors.Is(err, loanDomain.ErrNotFound), errors.Is(err, loanDomain.ErrAccountNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Code: "not_found", Error: "not found"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "internal", Error: "something went wrong — try again shortly"})
	}
}
