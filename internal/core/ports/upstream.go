package ports

import (
	"context"
	"encoding/json"

	"github.com/shophub/storefront/internal/core/domain"
)

// AuthReply is the envelope returned by the remote /signup and /signin calls.
// User is only present on a successful sign-in.
type AuthReply struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    json.RawMessage `json:"user,omitempty"`
}

// AuthGateway is the remote authentication boundary. Implementations return an
// error only when no envelope could be read (transport or decode failure);
// a readable envelope with success=false is returned as a reply.
type AuthGateway interface {
	SignUp(ctx context.Context, profile domain.Profile) (*AuthReply, error)
	SignIn(ctx context.Context, creds domain.Credentials) (*AuthReply, error)
}

// CatalogGateway is the remote catalog boundary. FetchProducts returns the raw
// response body of a successful request; any other outcome is a
// *domain.CatalogFetchError. An empty token sends no Authorization header.
type CatalogGateway interface {
	FetchProducts(ctx context.Context, token string) ([]byte, error)
}
