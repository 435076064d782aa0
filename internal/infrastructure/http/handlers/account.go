package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shophub/storefront/internal/core/domain"
)

// AccountService is the account logic behind /signup and /signin.
type AccountService interface {
	SignUp(ctx context.Context, profile domain.Profile) (*domain.User, error)
	SignIn(ctx context.Context, creds domain.Credentials) (string, *domain.User, error)
}

// AccountHandler answers with the {success, message, user?} envelope the
// storefront client reads.
type AccountHandler struct {
	accounts AccountService
	log      zerolog.Logger
}

func NewAccountHandler(accounts AccountService, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, log: log}
}

type envelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	User    *envelopeUser `json:"user,omitempty"`
}

type envelopeUser struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, envelope{Success: false, Message: msg})
}

// SignUp handles POST /signup.
func (h *AccountHandler) SignUp(c echo.Context) error {
	var profile domain.Profile
	if err := c.Bind(&profile); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	_, err := h.accounts.SignUp(c.Request().Context(), profile)
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return fail(c, http.StatusConflict, "User already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fail(c, http.StatusBadRequest, "Name, email and password are required")
	case err != nil:
		h.log.Error().Err(err).Str("op", "signup").Msg("account creation failed")
		return fail(c, http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusCreated, envelope{Success: true, Message: "User created successfully"})
}

// SignIn handles POST /signin.
func (h *AccountHandler) SignIn(c echo.Context) error {
	var creds domain.Credentials
	if err := c.Bind(&creds); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	token, user, err := h.accounts.SignIn(c.Request().Context(), creds)
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrInvalidCredentials):
		return fail(c, http.StatusUnauthorized, "Invalid email or password")
	case err != nil:
		h.log.Error().Err(err).Str("op", "signin").Msg("sign-in failed")
		return fail(c, http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, envelope{
		Success: true,
		Message: "Sign in successful",
		User:    &envelopeUser{Token: token, ID: user.ID, Name: user.Name, Email: user.Email},
	})
}
