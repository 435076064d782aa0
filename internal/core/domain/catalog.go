package domain

// CatalogStatus is the lifecycle state of a single catalog load.
type CatalogStatus string

const (
	CatalogLoading        CatalogStatus = "loading"
	CatalogLoaded         CatalogStatus = "loaded"
	CatalogFailed         CatalogStatus = "failed"
	CatalogFallbackLoaded CatalogStatus = "fallback_loaded"
)

// CatalogErrorMessage is the user-facing message recorded when a fetch fails.
const CatalogErrorMessage = "Error fetching products. Please try again later."

// CatalogState is the tagged result of one load cycle. Products is only
// meaningful in the Loaded and FallbackLoaded states; Error only in Failed.
type CatalogState struct {
	Status   CatalogStatus `json:"status"`
	Products []Product     `json:"products"`
	Error    string        `json:"error,omitempty"`
}

// Settled reports whether the state is terminal for a view.
func (s CatalogState) Settled() bool {
	return s.Status == CatalogLoaded || s.Status == CatalogFallbackLoaded
}

// validCatalogTransitions mirrors the load cycle: Loading resolves to Loaded
// or Failed, and Failed may be absorbed into FallbackLoaded.
var validCatalogTransitions = map[CatalogStatus][]CatalogStatus{
	CatalogLoading: {CatalogLoaded, CatalogFailed},
	CatalogFailed:  {CatalogFallbackLoaded},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s CatalogStatus) CanTransitionTo(next CatalogStatus) bool {
	for _, allowed := range validCatalogTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
