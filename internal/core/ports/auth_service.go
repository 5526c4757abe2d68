package ports

import (
	"context"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
)

// TokenClaims is the identity carried by a verified session token.
type TokenClaims struct {
	SubjectID string
	Username  string
	Role      domain.Role
}

// AuthService covers registration, login, and stateless token handling.
type AuthService interface {
	// Register creates an account. An empty role defaults to member.
	Register(ctx context.Context, username, email, password string, role domain.Role) (*domain.User, error)
	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Verify checks a token's signature and expiry. Pure function of the
	// token and the shared secret — no I/O.
	Verify(token string) (*TokenClaims, error)
}
