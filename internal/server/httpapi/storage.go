package httpapi

import (
	"net/http"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/policy"
	"github.com/labstack/echo/v4"
)

type presignPutResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type presignGetResponse struct {
	URL string `json:"url"`
}

func (s *HTTPServer) presignPut(c echo.Context) error {
	p := policy.PrincipalOrAnonymous(c.Request().Context())

	key, url, err := s.storage.GetPresignedPutURL(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, presignPutResponse{Key: key, URL: url})
}

func (s *HTTPServer) presignGet(c echo.Context) error {
	p := policy.PrincipalOrAnonymous(c.Request().Context())

	key := c.QueryParam("key")
	if key == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "key required"})
	}

	url, err := s.storage.GetPresignedGetURL(c.Request().Context(), p, key)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, presignGetResponse{URL: url})
}

func (s *HTTPServer) deleteObject(c echo.Context) error {
	p := policy.PrincipalOrAnonymous(c.Request().Context())

	key := c.QueryParam("key")
	if key == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "key required"})
	}

	if err := s.storage.Delete(c.Request().Context(), p, key); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
