package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bankportal-backend/internal/usecase/backoffice"
)

type BackofficeHandler struct{ uc *backoffice.Usecase }

func NewBackofficeHandler(uc *backoffice.Usecase) *BackofficeHandler {
	return &BackofficeHandler{uc: uc}
}

func (h *BackofficeHandler) guard(c echo.Context) bool {
	_, ok := adminID(c)
	return ok
}

func (h *BackofficeHandler) Approve(c echo.Context) error {
	if !h.guard(c) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "unauthorized", Error: "missing or invalid X-Admin-Id"})
	}
	res, err := h.uc.Approve(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *BackofficeHandler) Reject(c echo.Context) error {
	if !h.guard(c) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "unauthorized", Error: "missing or invalid X-Admin-Id"})
	}
	res, err := h.uc.Reject(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *BackofficeHandler) Close(c echo.Context) error {
	if !h.guard(c) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "unauthorized", Error: "missing or invalid X-Admin-Id"})
	}
	res, err := h.uc.Close(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *BackofficeHandler) ConfirmDeposit(c echo.Context) error {
	if !h.guard(c) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "unauthorized", Error: "missing or invalid X-Admin-Id"})
	}
	res, err := h.uc.ConfirmDeposit(c.Request().Context(), c.Param("deposit_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
