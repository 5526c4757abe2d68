package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
	"github.com/newsdesk/newsroom-api/internal/core/ports"
)

// UserService implements account management. User mutations do not
// broadcast — only article changes fan out to live connections.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, page, limit int) (*ports.UserPage, error) {
	page, limit, err := normalizePage(page, limit)
	if err != nil {
		return nil, err
	}

	items, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return &ports.UserPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *UserService) UpdateByID(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if input.Role != "" && !input.Role.IsValid() {
		return nil, domain.ErrValidation
	}

	update := &domain.User{
		Username:  input.Username,
		Email:     input.Email,
		Role:      input.Role,
		UpdatedAt: time.Now().UTC(),
	}

	// Passwords are re-hashed on change, never stored in plaintext.
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = string(hash)
	}

	if _, err := s.repo.UpdateByID(ctx, id, update); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

func (s *UserService) DeleteByID(ctx context.Context, id string) error {
	count, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrUserNotFound
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) DeleteByEmail(ctx context.Context, email string) error {
	count, err := s.repo.DeleteByEmail(ctx, email)
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrUserNotFound
	}
	s.log.Info().Str("email", email).Msg("user deleted")
	return nil
}

func (s *UserService) DeleteByUsername(ctx context.Context, username string) error {
	count, err := s.repo.DeleteByUsername(ctx, username)
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrUserNotFound
	}
	s.log.Info().Str("username", username).Msg("user deleted")
	return nil
}
