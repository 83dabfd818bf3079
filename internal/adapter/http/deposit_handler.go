package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	loanDomain "bankportal-backend/internal/domain/loan"
	deposituc "bankportal-backend/internal/usecase/deposit"
)

type DepositHandler struct{ uc *deposituc.Usecase }

func NewDepositHandler(uc *deposituc.Usecase) *DepositHandler { return &DepositHandler{uc: uc} }

type settleReq struct {
	Method      string  `json:"method"       validate:"required,oneof=balance crypto"`
	AccountID   string  `json:"account_id"   validate:"omitempty,hex32"`
	Amount      float64 `json:"amount"       validate:"gte=0,dec2"`
	ExternalRef string  `json:"external_ref"`
}

func (h *DepositHandler) Settle(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "unauthorized", Error: "missing or invalid X-User-Id"})
	}

	var req settleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if req.Method == string(loanDomain.MethodBalance) && req.AccountID == "" {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "account_id", Message: "is required for balance deposits"}},
		})
	}

	res, err := h.uc.Settle(c.Request().Context(), deposituc.SettleInput{
		LoanID:      c.Param("loan_id"),
		UserID:      uid,
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Method:      loanDomain.DepositMethod(req.Method),
		ExternalRef: req.ExternalRef,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

type repayReq struct {
	AccountID string  `json:"account_id" validate:"required,hex32"`
	Amount    float64 `json:"amount"     validate:"gte=0,dec2"`
}

func (h *DepositHandler) Repay(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "unauthorized", Error: "missing or invalid X-User-Id"})
	}

	var req repayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.uc.Repay(c.Request().Context(), deposituc.RepayInput{
		LoanID:    c.Param("loan_id"),
		UserID:    uid,
		AccountID: req.AccountID,
		Amount:    req.Amount,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
