package ports

import (
	"context"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns a page of users and the total count.
	List(ctx context.Context, page, limit int) ([]*domain.User, int64, error)
	// UpdateByID applies the given field set and returns the modified count.
	UpdateByID(ctx context.Context, id string, update *domain.User) (int64, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
	DeleteByUsername(ctx context.Context, username string) (int64, error)
}
