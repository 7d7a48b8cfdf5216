// Package httpapi exposes the marketplace data layer over HTTP using echo.
// Handlers stay thin: they bind payloads, fetch the request principal, call
// a service, and map errors to statuses. All authorization happens below, in
// the policy evaluator.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/logging"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/policy"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type HTTPServer struct {
	address  string
	logger   logging.Logger
	resolver *policy.Resolver

	users      *services.UserService
	listings   *services.ListingService
	favorites  *services.FavoriteService
	activities *services.ActivityService
	storage    *services.StorageService
}

func NewHTTPServer(address string, logger logging.Logger, resolver *policy.Resolver,
	users *services.UserService, listings *services.ListingService, favorites *services.FavoriteService,
	activities *services.ActivityService, storage *services.StorageService) *HTTPServer {
	return &HTTPServer{
		address:    address,
		logger:     logger.With("module", "http_server"),
		resolver:   resolver,
		users:      users,
		listings:   listings,
		favorites:  favorites,
		activities: activities,
		storage:    storage,
	}
}

// newEcho builds the echo instance with all routes registered. Split from Run
// so tests can drive handlers without a listening socket.
func (s *HTTPServer) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(principalMiddleware(s.resolver))

	e.GET("/healthz", s.health)

	g := e.Group("/v1")

	g.POST("/auth/register", s.register)
	g.POST("/auth/login", s.login)
	g.POST("/auth/refresh", s.refresh)

	g.GET("/users/:id", s.getUser)
	g.PUT("/users/:id", s.updateUser)
	g.GET("/users/:id/favorites", s.listFavorites)
	g.GET("/users/:id/activity", s.listActivity)

	g.GET("/listings", s.listListings)
	g.POST("/listings", s.createListing)
	g.GET("/listings/:id", s.getListing)
	g.PUT("/listings/:id", s.updateListing)
	g.DELETE("/listings/:id", s.deleteListing)

	g.POST("/listings/:id/favorite", s.addFavorite)
	g.DELETE("/listings/:id/favorite", s.removeFavorite)

	g.POST("/storage/presign-put", s.presignPut)
	g.GET("/storage/presign-get", s.presignGet)
	g.DELETE("/storage/object", s.deleteObject)

	return e
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	e := s.newEcho()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
