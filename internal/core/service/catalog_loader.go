package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shophub/storefront/internal/core/domain"
	"github.com/shophub/storefront/internal/core/ports"
)

// TransitionFunc observes catalog state changes during a load.
type TransitionFunc func(from, to domain.CatalogStatus)

// CatalogLoader fetches and normalizes the catalog once per call. A failed
// fetch never reaches the caller: the load settles on the fallback catalog.
type CatalogLoader struct {
	gateway  ports.CatalogGateway
	sessions ports.SessionReader
	now      func() time.Time
	log      zerolog.Logger
	observe  TransitionFunc
}

func NewCatalogLoader(gateway ports.CatalogGateway, sessions ports.SessionReader, log zerolog.Logger) *CatalogLoader {
	return &CatalogLoader{
		gateway:  gateway,
		sessions: sessions,
		now:      time.Now,
		log:      log,
	}
}

// OnTransition registers fn to be called on every state change.
func (l *CatalogLoader) OnTransition(fn TransitionFunc) {
	l.observe = fn
}

// Load runs a single load cycle and returns its settled state, which is
// always Loaded or FallbackLoaded.
func (l *CatalogLoader) Load(ctx context.Context) domain.CatalogState {
	state := domain.CatalogState{Status: domain.CatalogLoading}

	var token string
	if session, ok := l.sessions.Current(); ok {
		token = session.Token
	}

	started := l.now()
	body, err := l.gateway.FetchProducts(ctx, token)
	if err != nil {
		l.log.Error().Err(err).Str("op", "catalog_load").Msg("catalog fetch failed")
		state = l.transition(state, domain.CatalogFailed, nil)
		state.Error = domain.CatalogErrorMessage
		return l.absorb(state)
	}

	records, shape, err := decodeCatalog(body)
	if err != nil {
		l.log.Error().
			Err(&domain.CatalogFetchError{Err: err}).
			Str("op", "catalog_load").
			Msg("catalog body could not be parsed")
		state = l.transition(state, domain.CatalogFailed, nil)
		state.Error = domain.CatalogErrorMessage
		return l.absorb(state)
	}

	if shape == shapeUnknown {
		// Unrecognised envelopes read as an empty catalog, which the
		// fallback then fills. No error message is recorded.
		l.log.Warn().Str("op", "catalog_load").Int("bytes", len(body)).Msg("unrecognised catalog shape")
		state = l.transition(state, domain.CatalogFailed, nil)
		return l.absorb(state)
	}

	products := normalizeProducts(records, started.UnixMilli())
	l.log.Debug().
		Str("op", "catalog_load").
		Str("shape", shape.String()).
		Int("count", len(products)).
		Dur("elapsed", l.now().Sub(started)).
		Msg("catalog loaded")
	return l.transition(state, domain.CatalogLoaded, products)
}

// absorb replaces a failed, empty load with the fallback catalog. It runs at
// most once per cycle since FallbackLoaded has no outgoing transitions.
func (l *CatalogLoader) absorb(state domain.CatalogState) domain.CatalogState {
	if state.Status != domain.CatalogFailed || len(state.Products) > 0 {
		return state
	}
	next := l.transition(state, domain.CatalogFallbackLoaded, domain.FallbackCatalog())
	next.Error = ""
	l.log.Info().Str("op", "catalog_load").Int("count", len(next.Products)).Msg("fallback catalog applied")
	return next
}

func (l *CatalogLoader) transition(state domain.CatalogState, to domain.CatalogStatus, products []domain.Product) domain.CatalogState {
	if !state.Status.CanTransitionTo(to) {
		l.log.Error().
			Str("from", string(state.Status)).
			Str("to", string(to)).
			Msg("invalid catalog transition ignored")
		return state
	}
	if l.observe != nil {
		l.observe(state.Status, to)
	}
	return domain.CatalogState{Status: to, Products: products, Error: state.Error}
}
