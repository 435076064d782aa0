package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shophub/storefront/internal/api/metrics"
	"github.com/shophub/storefront/internal/core/domain"
	"github.com/shophub/storefront/internal/core/ports"
)

// SessionHandler exposes sign-in, sign-up and sign-out.
type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// SignIn authenticates against the remote service and holds the session.
//
// @Summary      Sign in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  signInResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /signin [post]
func (h *SessionHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.SignIn(c.Request().Context(), domain.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signin", authResult(err)).Inc()
		return authFailure(c, http.StatusUnauthorized, err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("signin", "success").Inc()
	return c.JSON(http.StatusOK, signInResponse{Message: "Signed in", User: session.User})
}

// SignUp creates a remote account. It does not sign the visitor in.
//
// @Summary      Sign up
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Account details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /signup [post]
func (h *SessionHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.sessions.SignUp(c.Request().Context(), domain.Profile{
		Name:     req.Name,
		Email:    req.Email,
		DOB:      req.DOB,
		Password: req.Password,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", authResult(err)).Inc()
		return authFailure(c, http.StatusBadRequest, err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("signup", "success").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

// SignOut drops the session. It succeeds whether or not one was held.
//
// @Summary      Sign out
// @Tags         session
// @Success      204
// @Router       /signout [post]
func (h *SessionHandler) SignOut(c echo.Context) error {
	h.sessions.SignOut()
	metrics.SignOutsTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Current reports whether a session is held and, if so, its token claims.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	session, ok := h.sessions.Current()
	if !ok {
		return c.JSON(http.StatusOK, sessionResponse{})
	}
	return c.JSON(http.StatusOK, sessionResponse{Authenticated: true, Claims: session.Claims()})
}

// authFailure renders an AuthError with its user-facing message. Any other
// error goes to the central error handler.
func authFailure(c echo.Context, status int, err error) error {
	var ae *domain.AuthError
	if !errors.As(err, &ae) {
		return err
	}
	return c.JSON(status, errorResponse{Error: ae.Message})
}

func authResult(err error) string {
	if errors.Is(err, domain.ErrUpstreamUnavailable) {
		return "error"
	}
	return "rejected"
}
