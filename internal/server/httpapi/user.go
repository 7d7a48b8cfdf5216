package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/policy"
	"github.com/labstack/echo/v4"
)

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// userToResponse strips the password hash; it must never leave the server.
func userToResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type updateUserRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s *HTTPServer) getUser(c echo.Context) error {
	p := policy.PrincipalOrAnonymous(c.Request().Context())

	user, err := s.users.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, userToResponse(user))
}

func (s *HTTPServer) updateUser(c echo.Context) error {
	p := policy.PrincipalOrAnonymous(c.Request().Context())

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	updated := &models.User{
		ID:    c.Param("id"),
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Role:  req.Role,
	}

	user, err := s.users.Update(c.Request().Context(), p, c.Param("id"), updated)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, userToResponse(user))
}
