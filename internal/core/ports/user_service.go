package ports

import (
	"context"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
)

// UpdateUserInput carries the optional fields of a profile update.
// A non-empty Password is re-hashed before storage.
type UpdateUserInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// UserPage is a single page of users plus pagination totals.
type UserPage struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService defines account management use-cases (admin surface plus the
// self-lookup used by /users/me).
type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, page, limit int) (*UserPage, error)
	UpdateByID(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByEmail(ctx context.Context, email string) error
	DeleteByUsername(ctx context.Context, username string) error
}
