package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shophub/storefront/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	stored := cloneUser(user)
	if stored.ID == "" {
		stored.ID = "user-" + user.Email
	}
	r.users[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func aliceProfile() domain.Profile {
	return domain.Profile{Name: "Alice", Email: "alice@example.com", DOB: "1990-04-01", Password: "pass123"}
}

func TestService_SignUp_Success(t *testing.T) {
	svc := NewService(newStubUserRepo(), "secret", time.Hour)

	user, err := svc.SignUp(context.Background(), aliceProfile())
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.DOB != "1990-04-01" || user.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestService_SignUp_NormalizesEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewService(repo, "secret", time.Hour)

	p := aliceProfile()
	p.Email = "  Alice@Example.COM "
	if _, err := svc.SignUp(context.Background(), p); err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if _, ok := repo.users["alice@example.com"]; !ok {
		t.Fatalf("expected email to be stored lower-cased")
	}
}

func TestService_SignUp_Validation(t *testing.T) {
	svc := NewService(newStubUserRepo(), "secret", time.Hour)

	p := aliceProfile()
	p.Name = ""
	if _, err := svc.SignUp(context.Background(), p); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestService_SignUp_Duplicate(t *testing.T) {
	svc := NewService(newStubUserRepo(), "secret", time.Hour)

	_, _ = svc.SignUp(context.Background(), aliceProfile())
	if _, err := svc.SignUp(context.Background(), aliceProfile()); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestService_SignIn_Success(t *testing.T) {
	svc := NewService(newStubUserRepo(), "secret", time.Hour)
	if _, err := svc.SignUp(context.Background(), aliceProfile()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	token, user, err := svc.SignIn(context.Background(), domain.Credentials{Email: "alice@example.com", Password: "pass123"})
	if err != nil {
		t.Fatalf("signin failed: %v", err)
	}
	if token == "" || user == nil || user.Name != "Alice" {
		t.Fatalf("unexpected result: token=%q user=%+v", token, user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["email"] != "alice@example.com" {
		t.Fatalf("expected email claim, got %v", claims["email"])
	}
}

func TestService_SignIn_InvalidPassword(t *testing.T) {
	svc := NewService(newStubUserRepo(), "secret", time.Hour)
	_, _ = svc.SignUp(context.Background(), aliceProfile())

	_, _, err := svc.SignIn(context.Background(), domain.Credentials{Email: "alice@example.com", Password: "bad"})
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestService_SignIn_UserNotFound(t *testing.T) {
	svc := NewService(newStubUserRepo(), "secret", time.Hour)

	_, _, err := svc.SignIn(context.Background(), domain.Credentials{Email: "ghost@example.com", Password: "pass"})
	if err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
