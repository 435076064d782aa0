package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
		"sub":   "u1",
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	rec, c, called := runAuth(t, "Bearer "+token)
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if c.Get(ContextUserID) != "u1" || c.Get(ContextEmail) != "alice@example.com" {
		t.Fatalf("claims not injected: %v %v", c.Get(ContextUserID), c.Get(ContextEmail))
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"empty token":    "Bearer ",
		"garbage":        "Bearer not-a-token",
		"wrong secret": "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{
			"sub": "u1", "exp": future,
		}),
		"expired": "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
			"sub": "u1", "exp": time.Now().Add(-time.Hour).Unix(),
		}),
		"no expiry": "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
			"sub": "u1",
		}),
		"no subject": "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
			"exp": future,
		}),
		"wrong algorithm": "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte("secret"), jwt.MapClaims{
			"sub": "u1", "exp": future,
		}),
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec, _, called := runAuth(t, header)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
