package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	loanDomain "bankportal-backend/internal/domain/loan"
	loanuc "bankportal-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loanuc.Usecase }

func NewLoanHandler(uc *loanuc.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type collateralReq struct {
	Type           string   `json:"type"            validate:"required"`
	OwnershipType  string   `json:"ownership_type"  validate:"required"`
	EstimatedValue float64  `json:"estimated_value" validate:"gte=0,dec2"`
	Description    string   `json:"description"`
	EvidenceRefs   []string `json:"evidence_refs"`
}

type applyReq struct {
	LoanType       string          `json:"loan_type"        validate:"required"`
	Principal      float64         `json:"principal"        validate:"required,gt=0,dec2"`
	InterestRate   float64         `json:"interest_rate"    validate:"required,gt=0"`
	TermMonths     int             `json:"term_months"      validate:"required,gte=1"`
	Purpose        string          `json:"purpose"`
	IDDocumentRefs []string        `json:"id_document_refs"`
	Collaterals    []collateralReq `json:"collaterals"      validate:"dive"`
}

func (h *LoanHandler) Apply(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "unauthorized", Error: "missing or invalid X-User-Id"})
	}

	var req applyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := loanuc.ApplyInput{
		UserID:         uid,
		LoanType:       loanDomain.LoanType(req.LoanType),
		Principal:      req.Principal,
		InterestRate:   req.InterestRate,
		TermMonths:     req.TermMonths,
		Purpose:        req.Purpose,
		IDDocumentRefs: req.IDDocumentRefs,
	}
	for _, col := range req.Collaterals {
		in.Collaterals = append(in.Collaterals, loanuc.CollateralInput{
			Type:           col.Type,
			OwnershipType:  col.OwnershipType,
			EstimatedValue: col.EstimatedValue,
			Description:    col.Description,
			EvidenceRefs:   col.EvidenceRefs,
		})
	}

	dto, err := h.uc.Apply(c.Request().Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) List(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "unauthorized", Error: "missing or invalid X-User-Id"})
	}
	loans, err := h.uc.List(c.Request().Context(), uid)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": loans})
}

func (h *LoanHandler) Get(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "unauthorized", Error: "missing or invalid X-User-Id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if dto.UserID != uid {
		return c.JSON(http.StatusNotFound, ErrorResponse{Code: "not_found", Error: "not found"})
	}
	return c.JSON(http.StatusOK, dto)
}
