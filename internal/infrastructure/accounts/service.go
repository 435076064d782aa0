// Package accounts is the stand-in upstream's account store logic. It hashes
// passwords with bcrypt and issues the HS256 tokens the storefront decodes.
package accounts

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shophub/storefront/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// Repository persists accounts by normalised email.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// Service implements sign-up and sign-in.
type Service struct {
	repo      Repository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewService(repo Repository, jwtSecret string, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &Service{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: time.Now}
}

// SignUp stores a new account with a bcrypt password hash.
func (s *Service) SignUp(ctx context.Context, profile domain.Profile) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(profile.Email))
	if profile.Name == "" || email == "" || profile.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(profile.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &domain.User{
		Name:         profile.Name,
		Email:        email,
		DOB:          profile.DOB,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	})
}

// SignIn checks the password and issues an HS256 token.
func (s *Service) SignIn(ctx context.Context, creds domain.Credentials) (string, *domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *Service) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
