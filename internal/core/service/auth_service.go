package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
	"github.com/newsdesk/newsroom-api/internal/core/ports"
)

// LoginThrottle abstracts the failed-login counter (Redis).
type LoginThrottle interface {
	TooManyAttempts(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration, login, and stateless token handling.
// Tokens carry {sub, username, role, iat, exp} and expire after tokenTTL;
// there is no revocation list — invalidation is by expiry only.
type AuthService struct {
	repo      ports.UserRepository
	throttle  LoginThrottle // optional
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, throttle LoginThrottle, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{
		repo:      repo,
		throttle:  throttle,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string, role domain.Role) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrValidation
	}
	if role == "" {
		role = domain.RoleMember
	}
	if !role.IsValid() {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooManyAttempts(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, continuing")
		} else if blocked {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if s.throttle != nil {
			if terr := s.throttle.RecordFailure(ctx, email); terr != nil {
				s.log.Warn().Err(terr).Msg("failed to record login failure")
			}
		}
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		_ = s.throttle.Reset(ctx, email)
	}

	token, err := s.issue(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Verify checks the token signature and expiry against the shared secret.
// Any failure — malformed token, wrong algorithm, bad signature, expiry —
// collapses into ErrInvalidToken.
func (s *AuthService) Verify(token string) (*ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	roleStr, _ := claims["role"].(string)
	role := domain.Role(roleStr)
	if sub == "" || username == "" || !role.IsValid() {
		return nil, domain.ErrInvalidToken
	}

	return &ports.TokenClaims{SubjectID: sub, Username: username, Role: role}, nil
}

func (s *AuthService) issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
