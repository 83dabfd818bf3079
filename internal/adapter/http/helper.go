package http

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// userID extracts the authenticated user from the identity provider's header.
// The core trusts this without re-validating credentials.
func userID(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Request().Header.Get("X-User-Id"))
	return id, reHex32.MatchString(id)
}

// adminID extracts the back-office operator id for the /admin routes.
func adminID(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Request().Header.Get("X-Admin-Id"))
	return id, reHex32.MatchString(id)
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
