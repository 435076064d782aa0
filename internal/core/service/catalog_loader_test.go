package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shophub/storefront/internal/core/domain"
)

type stubCatalogGateway struct {
	fetchFn func(ctx context.Context, token string) ([]byte, error)
	lastTok string
	calls   int
}

func (g *stubCatalogGateway) FetchProducts(ctx context.Context, token string) ([]byte, error) {
	g.calls++
	g.lastTok = token
	return g.fetchFn(ctx, token)
}

func bodyGateway(body string) *stubCatalogGateway {
	return &stubCatalogGateway{fetchFn: func(context.Context, string) ([]byte, error) {
		return []byte(body), nil
	}}
}

var fixedBatch = time.UnixMilli(1700000000000)

func newTestLoader(gw *stubCatalogGateway, sessions *SessionStore) *CatalogLoader {
	if sessions == nil {
		sessions = NewSessionStore(nil, zerolog.Nop())
	}
	l := NewCatalogLoader(gw, sessions, zerolog.Nop())
	l.now = func() time.Time { return fixedBatch }
	return l
}

func TestCatalogLoader_Load_BareSequence(t *testing.T) {
	gw := bodyGateway(`[
		{"_id":"p1","name":"Mouse","price":25.5,"description":"Wireless","image":"https://img/1"},
		{"_id":"p2","name":"Keyboard","price":49}
	]`)
	state := newTestLoader(gw, nil).Load(context.Background())

	if state.Status != domain.CatalogLoaded {
		t.Fatalf("expected loaded, got %s", state.Status)
	}
	if len(state.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(state.Products))
	}
	want := domain.Product{ID: "p1", Name: "Mouse", Price: 25.5, Description: "Wireless", Image: "https://img/1"}
	if state.Products[0] != want {
		t.Fatalf("unexpected first product: %+v", state.Products[0])
	}
	if state.Products[1].Description != domain.DefaultProductDescription || state.Products[1].Image != domain.DefaultProductImage {
		t.Fatalf("expected defaults on second product: %+v", state.Products[1])
	}
	if state.Error != "" {
		t.Fatalf("expected no error, got %q", state.Error)
	}
}

func TestCatalogLoader_Load_ShapesAgree(t *testing.T) {
	records := `[{"_id":"a","name":"A","price":1},{"name":"B","price":"2"},{"_id":"c"}]`

	bare := newTestLoader(bodyGateway(records), nil).Load(context.Background())
	wrapped := newTestLoader(bodyGateway(`{"products":`+records+`}`), nil).Load(context.Background())

	if bare.Status != domain.CatalogLoaded || wrapped.Status != domain.CatalogLoaded {
		t.Fatalf("expected both loads to succeed: %s / %s", bare.Status, wrapped.Status)
	}
	if !reflect.DeepEqual(bare.Products, wrapped.Products) {
		t.Fatalf("shapes disagree:\nbare:    %+v\nwrapped: %+v", bare.Products, wrapped.Products)
	}
}

func TestCatalogLoader_Load_Normalization(t *testing.T) {
	gw := bodyGateway(`{"products":[
		{"name":"NoPrice"},
		{"_id":"s","price":"12.00"},
		{"_id":"n","price":null,"name":""},
		{"_id":"neg","price":-3},
		{"_id":7,"price":3}
	]}`)
	state := newTestLoader(gw, nil).Load(context.Background())

	if state.Status != domain.CatalogLoaded || len(state.Products) != 5 {
		t.Fatalf("unexpected state: %+v", state)
	}
	for _, p := range state.Products {
		if p.Price < 0 {
			t.Errorf("%s: negative price %v", p.ID, p.Price)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("%s: not normalized: %v", p.ID, err)
		}
	}
	if got := state.Products[0].ID; got != "generated-1700000000000-0" {
		t.Errorf("expected synthesized id, got %q", got)
	}
	if state.Products[0].Price != 0 || state.Products[1].Price != 0 || state.Products[2].Price != 0 {
		t.Errorf("missing or non-numeric prices must default to 0: %+v", state.Products[:3])
	}
	if state.Products[2].Name != domain.DefaultProductName {
		t.Errorf("empty name must default, got %q", state.Products[2].Name)
	}
	if state.Products[4].ID != "7" || state.Products[4].Price != 3 {
		t.Errorf("unexpected numeric-id product: %+v", state.Products[4])
	}
}

func TestCatalogLoader_Load_SynthesizedIDsUniqueInBatch(t *testing.T) {
	gw := bodyGateway(`[{},{},{},{"name":"x"}]`)
	state := newTestLoader(gw, nil).Load(context.Background())

	seen := make(map[string]bool)
	for _, p := range state.Products {
		if seen[p.ID] {
			t.Fatalf("duplicate synthesized id %q", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestCatalogLoader_Load_EmptySequenceIsLoaded(t *testing.T) {
	for _, body := range []string{`[]`, `{"products":[]}`} {
		state := newTestLoader(bodyGateway(body), nil).Load(context.Background())
		if state.Status != domain.CatalogLoaded {
			t.Fatalf("%s: expected loaded, got %s", body, state.Status)
		}
		if state.Products == nil || len(state.Products) != 0 {
			t.Fatalf("%s: expected empty non-nil products, got %+v", body, state.Products)
		}
	}
}

func TestCatalogLoader_Load_TransportErrorUsesFallback(t *testing.T) {
	gw := &stubCatalogGateway{fetchFn: func(context.Context, string) ([]byte, error) {
		return nil, &domain.CatalogFetchError{Err: errors.New("dial tcp: connection refused")}
	}}
	var transitions []domain.CatalogStatus
	l := newTestLoader(gw, nil)
	l.OnTransition(func(_, to domain.CatalogStatus) { transitions = append(transitions, to) })

	state := l.Load(context.Background())

	if state.Status != domain.CatalogFallbackLoaded {
		t.Fatalf("expected fallback_loaded, got %s", state.Status)
	}
	if !reflect.DeepEqual(state.Products, domain.FallbackCatalog()) {
		t.Fatalf("expected the sample catalog, got %+v", state.Products)
	}
	if len(state.Products) != 3 {
		t.Fatalf("expected 3 sample products, got %d", len(state.Products))
	}
	if state.Error != "" {
		t.Fatalf("fallback must clear the error, got %q", state.Error)
	}
	want := []domain.CatalogStatus{domain.CatalogFailed, domain.CatalogFallbackLoaded}
	if !reflect.DeepEqual(transitions, want) {
		t.Fatalf("unexpected transitions %v", transitions)
	}
	if gw.calls != 1 {
		t.Fatalf("expected a single fetch attempt, got %d", gw.calls)
	}
}

func TestCatalogLoader_Load_StatusErrorUsesFallback(t *testing.T) {
	gw := &stubCatalogGateway{fetchFn: func(context.Context, string) ([]byte, error) {
		return nil, &domain.CatalogFetchError{StatusCode: 500}
	}}
	state := newTestLoader(gw, nil).Load(context.Background())

	if state.Status != domain.CatalogFallbackLoaded || len(state.Products) != 3 {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestCatalogLoader_Load_MalformedBodyUsesFallback(t *testing.T) {
	state := newTestLoader(bodyGateway(`{"products": [`), nil).Load(context.Background())

	if state.Status != domain.CatalogFallbackLoaded {
		t.Fatalf("expected fallback_loaded, got %s", state.Status)
	}
}

func TestCatalogLoader_Load_UnknownShapeUsesFallback(t *testing.T) {
	for _, body := range []string{`{}`, `{"items":[{"_id":"x"}]}`, `"hello"`, `42`, `{"products":{"_id":"x"}}`} {
		state := newTestLoader(bodyGateway(body), nil).Load(context.Background())
		if state.Status != domain.CatalogFallbackLoaded {
			t.Fatalf("%s: expected fallback_loaded, got %s", body, state.Status)
		}
		if state.Error != "" {
			t.Fatalf("%s: expected no error, got %q", body, state.Error)
		}
	}
}

func TestCatalogLoader_Load_SendsSessionToken(t *testing.T) {
	gw := bodyGateway(`[]`)
	_ = newTestLoader(gw, signedInStore(t, "t1")).Load(context.Background())
	if gw.lastTok != "t1" {
		t.Fatalf("expected token t1, got %q", gw.lastTok)
	}

	anon := bodyGateway(`[]`)
	_ = newTestLoader(anon, nil).Load(context.Background())
	if anon.lastTok != "" {
		t.Fatalf("expected no token without a session, got %q", anon.lastTok)
	}
}

func TestCatalogLoader_Load_FallbackIsFreshCopy(t *testing.T) {
	failing := &stubCatalogGateway{fetchFn: func(context.Context, string) ([]byte, error) {
		return nil, errors.New("boom")
	}}
	l := newTestLoader(failing, nil)

	first := l.Load(context.Background())
	first.Products[0].Name = "mutated"
	second := l.Load(context.Background())

	if second.Products[0].Name != "Smartphone" {
		t.Fatalf("fallback catalog leaked a mutation: %+v", second.Products[0])
	}
}
