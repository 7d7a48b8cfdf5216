package httpapi

import (
	"net/http"
	"time"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/policy"
	"github.com/labstack/echo/v4"
)

type listingPayload struct {
	OwnerID      string   `json:"owner_id"`
	Status       string   `json:"status"`
	Title        string   `json:"title"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Price        int64    `json:"price"`
	Mileage      int      `json:"mileage"`
	Transmission string   `json:"transmission"`
	FuelType     string   `json:"fuel_type"`
	Condition    string   `json:"condition"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	IsSold       bool     `json:"is_sold"`
}

func (r listingPayload) toModel() *models.Listing {
	return &models.Listing{
		OwnerID:      r.OwnerID,
		Status:       r.Status,
		Title:        r.Title,
		Make:         r.Make,
		Model:        r.Model,
		Year:         r.Year,
		Price:        r.Price,
		Mileage:      r.Mileage,
		Transmission: r.Transmission,
		FuelType:     r.FuelType,
		Condition:    r.Condition,
		Location:     r.Location,
		Description:  r.Description,
		Images:       r.Images,
		IsSold:       r.IsSold,
	}
}

type listingResponse struct {
	ID           string     `json:"id"`
	OwnerID      string     `json:"owner_id"`
	Status       string     `json:"status"`
	Title        string     `json:"title"`
	Make         string     `json:"make"`
	Model        string     `json:"model"`
	Year         int        `json:"year"`
	Price        int64      `json:"price"`
	Mileage      int        `json:"mileage"`
	Transmission string     `json:"transmission"`
	FuelType     string     `json:"fuel_type"`
	Condition    string     `json:"condition"`
	Location     string     `json:"location"`
	Description  string     `json:"description"`
	Images       []string   `json:"images"`
	IsSold       bool       `json:"is_sold"`
	SoldAt       *time.Time `json:"sold_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func listingToResponse(l *models.Listing) listingResponse {
	return listingResponse{
		ID:           l.ID,
		OwnerID:      l.OwnerID,
		Status:       l.Status,
		Title:        l.Title,
		Make:         l.Make,
		Model:        l.Model,
		Year:         l.Year,
		Price:        l.Price,
		Mileage:      l.Mileage,
		Transmission: l.Transmission,
		FuelType:     l.FuelType,
		Condition:    l.Condition,
		Location:     l.Location,
		Description:  l.Description,
		Images:       l.Images,
		IsSold:       l.IsSold,
		SoldAt:       l.SoldAt,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func (s *HTTPServer) createListing(c echo.Context) error {
	p := policy.PrincipalOrAnonymous(c.Request().Context())

	var req listingPayload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}

	row := req.toModel()
	if row.OwnerID == "" {
		row.OwnerID = p.Identity
	}

	created, err := s.listings.Create(c.Request().Context(), p, row)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, listingToResponse(created))
}

func (s *HTTPServer) getListing(c echo.Context) error {
	p := policy.PrincipalOrAnonymous(c.Request().Context())

	listing, err := s.listings.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, listingToResponse(listing))
}

func (s *HTTPServer) listListings(c echo.Context) error {
	p := policy.PrincipalOrAnonymous(c.Request().Context())

	rows, err := s.listings.List(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err)
	}

	out := make([]listingResponse, 0, len(rows))
	for _, l := range rows {
		out = append(out, listingToResponse(l))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *HTTPServer) updateListing(c echo.Context) error {
	p := policy.PrincipalOrAnonymous(c.Request().Context())

	var req listingPayload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	updated, err := s.listings.Update(c.Request().Context(), p, c.Param("id"), req.toModel())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, listingToResponse(updated))
}

func (s *HTTPServer) deleteListing(c echo.Context) error {
	p := policy.PrincipalOrAnonymous(c.Request().Context())

	if err := s.listings.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
