package mongo

import (
	"context"
	"strings"
	"testing"
)

func TestOpen_RejectsMalformedURI(t *testing.T) {
	store, err := Open(context.Background(), Config{URI: "postgres://localhost:5432", Database: "storefront"})
	if err == nil {
		_ = store.Close(context.Background())
		t.Fatalf("expected error for non-mongo uri")
	}
	if !strings.HasPrefix(err.Error(), "mongo connect:") {
		t.Fatalf("expected connect error, got %v", err)
	}
}
