package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
	"github.com/newsdesk/newsroom-api/internal/core/ports"
)

// TokenVerifier checks a session token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (*ports.TokenClaims, error)
}

// Authenticate extracts the bearer token, verifies it, and injects the
// claims into the request context. A missing or malformed header fails
// before the verifier is consulted.
func Authenticate(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrUnauthenticated
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				return domain.ErrInvalidToken
			}

			c.Set("subject_id", claims.SubjectID)
			c.Set("username", claims.Username)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}
