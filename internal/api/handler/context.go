package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Authenticate middleware
// and performs a fast-fail check before any service call: a non-empty role
// proves the middleware ran.
func ctxClaims(c echo.Context) (subjectID, username string, role domain.Role, err error) {
	role, _ = c.Get("role").(domain.Role)
	if role == "" {
		return "", "", "", domain.ErrUnauthenticated
	}

	subjectID, _ = c.Get("subject_id").(string)
	username, _ = c.Get("username").(string)
	return subjectID, username, role, nil
}
