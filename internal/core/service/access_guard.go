package service

import "github.com/shophub/storefront/internal/core/ports"

// EntryView is where unauthenticated visitors are sent.
const EntryView = "/"

// AccessGuard decides whether a protected view may render. It holds no state
// of its own and re-reads the session on every call.
type AccessGuard struct {
	sessions ports.SessionReader
	entry    string
}

func NewAccessGuard(sessions ports.SessionReader) *AccessGuard {
	return &AccessGuard{sessions: sessions, entry: EntryView}
}

// Guard returns the view to show for a request to view, and whether the
// request was allowed. A missing session is not an error; it resolves to the
// entry view.
func (g *AccessGuard) Guard(view string) (string, bool) {
	if g.sessions.IsAuthenticated() {
		return view, true
	}
	return g.entry, false
}

// Entry returns the redirect target for rejected requests.
func (g *AccessGuard) Entry() string { return g.entry }
