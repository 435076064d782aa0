package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shophub/storefront/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"auth error", domain.NewAuthError("Invalid email or password", nil), http.StatusUnauthorized, "Invalid email or password"},
		{"invalid product", fmt.Errorf("cart add: %w", domain.ErrInvalidProduct), http.StatusUnprocessableEntity, "cart add: invalid product"},
		{"upstream", fmt.Errorf("x: %w", domain.ErrUpstreamUnavailable), http.StatusBadGateway, domain.GenericAuthMessage},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			want := fmt.Sprintf(`{"error":%q}`, tt.msg)
			if got := rec.Body.String(); got != want+"\n" {
				t.Fatalf("expected %s, got %s", want, got)
			}
		})
	}
}
