package domain

import (
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Credentials are the sign-in inputs.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is the sign-up input. DOB is kept as the YYYY-MM-DD string the
// remote service expects.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	DOB      string `json:"dob"`
	Password string `json:"password"`
}

// Session is the identity blob returned by a successful sign-in. User is kept
// verbatim; Token is lifted out of it for the Authorization header.
type Session struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// NewSession builds a Session from the raw "user" object of a sign-in
// response. A missing token is allowed; the remote service decides whether
// it accepts anonymous catalog requests.
func NewSession(user json.RawMessage) (*Session, error) {
	var ident struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(user, &ident); err != nil {
		return nil, fmt.Errorf("decode session user: %w", err)
	}
	raw := make(json.RawMessage, len(user))
	copy(raw, user)
	return &Session{Token: ident.Token, User: raw}, nil
}

// Claims decodes the token payload without verifying the signature or
// checking expiry. It returns nil when the token is not a JWT.
func (s *Session) Claims() map[string]any {
	if s == nil || s.Token == "" {
		return nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return nil
	}
	return claims
}
