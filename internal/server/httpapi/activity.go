package httpapi

import (
	"net/http"
	"time"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/policy"
	"github.com/labstack/echo/v4"
)

type activityResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	EntityID  string         `json:"entity_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func activityToResponse(a *models.Activity) activityResponse {
	return activityResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Type:      a.Type,
		EntityID:  a.EntityID,
		Metadata:  a.Metadata,
		CreatedAt: a.CreatedAt,
	}
}

func (s *HTTPServer) listActivity(c echo.Context) error {
	p := policy.PrincipalOrAnonymous(c.Request().Context())

	rows, err := s.activities.ListForUser(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	out := make([]activityResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, activityToResponse(a))
	}
	return c.JSON(http.StatusOK, out)
}
