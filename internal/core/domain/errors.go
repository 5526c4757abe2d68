package domain

import "errors"

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("access forbidden")
	ErrArticleNotFound    = errors.New("article not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)
