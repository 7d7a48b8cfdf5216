package httpapi

import (
	"net/http"
	"strings"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/policy"
	"github.com/labstack/echo/v4"
)

// principalMiddleware resolves the Bearer credential (if any) into a policy
// principal and stores it on the request context. Resolution never fails a
// request: a missing or bad credential degrades to the anonymous principal,
// and a later write simply gets denied by the evaluator. The one hard error
// is a principal conflict, which means two different identities were bound
// to the same request.
func principalMiddleware(resolver *policy.Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential := bearerToken(c.Request().Header.Get("Authorization"))
			p := resolver.Resolve(c.Request().Context(), credential)

			ctx, err := policy.WithPrincipal(c.Request().Context(), p)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "principal conflict"})
			}
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
