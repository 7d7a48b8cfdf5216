package httpapi

import (
	"errors"
	"net/http"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/common"
	"github.com/labstack/echo/v4"
)

// writeError maps the service error taxonomy onto HTTP statuses. Invisible
// rows arrive here already collapsed into common.ErrorNotFound, so a 404
// never discloses whether the row exists.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, common.ErrorConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	case errors.Is(err, common.ErrPermissionDenied):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "permission denied"})
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
