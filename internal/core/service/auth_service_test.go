package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by email
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}, nextID: 1}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.users[u.Email]; ok {
		return nil, domain.ErrUserExists
	}
	created := *u
	created.ID = "user-" + strconv.Itoa(r.nextID)
	r.nextID++
	stored := created
	r.users[u.Email] = &stored
	return &created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, page, limit int) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) UpdateByID(_ context.Context, id string, update *domain.User) (int64, error) {
	for _, u := range r.users {
		if u.ID == id {
			if update.Username != "" {
				u.Username = update.Username
			}
			if update.Email != "" {
				u.Email = update.Email
			}
			if update.PasswordHash != "" {
				u.PasswordHash = update.PasswordHash
			}
			if update.Role != "" {
				u.Role = update.Role
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubUserRepo) DeleteByID(_ context.Context, id string) (int64, error) {
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubUserRepo) DeleteByEmail(_ context.Context, email string) (int64, error) {
	if _, ok := r.users[email]; !ok {
		return 0, nil
	}
	delete(r.users, email)
	return 1, nil
}

func (r *stubUserRepo) DeleteByUsername(_ context.Context, username string) (int64, error) {
	for email, u := range r.users {
		if u.Username == username {
			delete(r.users, email)
			return 1, nil
		}
	}
	return 0, nil
}

type stubThrottle struct {
	blocked  bool
	failures int
	resets   int
}

func (t *stubThrottle) TooManyAttempts(_ context.Context, _ string) (bool, error) {
	return t.blocked, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, _ string) error {
	t.failures++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, _ string) error {
	t.resets++
	return nil
}

const testSecret = "unit-test-secret"

func registerUser(t *testing.T, svc *AuthService, role domain.Role) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "correct-horse", role)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return user
}

func TestAuthService_Register(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, testSecret, time.Hour, zerolog.Nop())

	user := registerUser(t, svc, "")

	if user.Role != domain.RoleMember {
		t.Fatalf("expected default role member, got %s", user.Role)
	}
	if user.PasswordHash == "correct-horse" {
		t.Fatalf("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	_, err := svc.Register(context.Background(), "alice2", "alice@example.com", "another-pass", domain.RoleAuthor)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate email, got %v", err)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, testSecret, time.Hour, zerolog.Nop())

	_, err := svc.Register(context.Background(), "bob", "bob@example.com", "pass-word-1", "superuser")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}
}

func TestAuthService_LoginAndVerify(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{}
	svc := NewAuthService(repo, throttle, testSecret, time.Hour, zerolog.Nop())
	registered := registerUser(t, svc, domain.RoleAuthor)

	token, user, err := svc.Login(context.Background(), "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("login returned wrong user: %s", user.ID)
	}
	if throttle.resets != 1 {
		t.Fatalf("expected throttle reset on success")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.SubjectID != registered.ID || claims.Username != "alice" || claims.Role != domain.RoleAuthor {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{}
	svc := NewAuthService(repo, throttle, testSecret, time.Hour, zerolog.Nop())
	registerUser(t, svc, "")

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures != 1 {
		t.Fatalf("expected one recorded failure, got %d", throttle.failures)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, testSecret, time.Hour, zerolog.Nop())

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{blocked: true}
	svc := NewAuthService(repo, throttle, testSecret, time.Hour, zerolog.Nop())
	registerUser(t, svc, "")

	_, _, err := svc.Login(context.Background(), "alice@example.com", "correct-horse")
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Verify_Garbage(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), nil, testSecret, time.Hour, zerolog.Nop())

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}

func TestAuthService_Verify_WrongSecret(t *testing.T) {
	repo := newStubUserRepo()
	issuer := NewAuthService(repo, nil, testSecret, time.Hour, zerolog.Nop())
	registerUser(t, issuer, "")

	token, _, err := issuer.Login(context.Background(), "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	other := NewAuthService(repo, nil, "different-secret", time.Hour, zerolog.Nop())
	if _, err := other.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken with wrong secret, got %v", err)
	}
}

func TestAuthService_Verify_Expired(t *testing.T) {
	repo := newStubUserRepo()
	seed := NewAuthService(repo, nil, testSecret, time.Hour, zerolog.Nop())
	registerUser(t, seed, "")

	// Construct directly so the TTL is not clamped to the default; a token
	// that expired in the past must be rejected.
	expired := &AuthService{repo: repo, jwtSecret: testSecret, tokenTTL: -time.Minute, log: zerolog.Nop()}

	token, _, err := expired.Login(context.Background(), "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if _, err := seed.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}
