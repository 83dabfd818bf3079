package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"bankportal-backend/internal/domain/catalog"
)

type Handler struct{ catalog catalog.Service }

func NewHandler(cat catalog.Service) *Handler { return &Handler{catalog: cat} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Products lists the loan catalog the application form renders rate tiers from.
func (h *Handler) Products(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"products": h.catalog.Products()})
}
