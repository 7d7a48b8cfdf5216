package httpapi

import (
	"net/http"
	"time"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/policy"
	"github.com/labstack/echo/v4"
)

type favoriteResponse struct {
	UserID    string    `json:"user_id"`
	ListingID string    `json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}

func favoriteToResponse(f *models.Favorite) favoriteResponse {
	return favoriteResponse{
		UserID:    f.UserID,
		ListingID: f.ListingID,
		CreatedAt: f.CreatedAt,
	}
}

func (s *HTTPServer) addFavorite(c echo.Context) error {
	p := policy.PrincipalOrAnonymous(c.Request().Context())

	fav, err := s.favorites.Add(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, favoriteToResponse(fav))
}

func (s *HTTPServer) removeFavorite(c echo.Context) error {
	p := policy.PrincipalOrAnonymous(c.Request().Context())

	if err := s.favorites.Remove(c.Request().Context(), p, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) listFavorites(c echo.Context) error {
	p := policy.PrincipalOrAnonymous(c.Request().Context())

	rows, err := s.favorites.ListForUser(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	out := make([]favoriteResponse, 0, len(rows))
	for _, f := range rows {
		out = append(out, favoriteToResponse(f))
	}
	return c.JSON(http.StatusOK, out)
}
