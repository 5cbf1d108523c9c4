package handler

import (
	"github.com/labstack/echo/v4"

	"ridereg/internal/auth"
	"ridereg/internal/errors"
)

// claimsFrom extracts the verified JWT claims stored by the auth middleware.
// Returns nil on unauthenticated routes: the authorization policy treats nil
// claims as a deny.
func claimsFrom(c echo.Context) *auth.Claims {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// respondError maps a domain error to its HTTP representation.
func respondError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
