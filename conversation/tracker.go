// Package conversation tracks per-user dialogue state: whether the user is
// mid-creation of an ad or mid-search, plus the current draft. State is an
// explicit tagged variant (Idle | CreatingAd | Searching) rather than a pair
// of independent flags, so a user can never be in two flows at once.
package conversation

import "sync"

// Phase identifies the active flow of a user session.
type Phase int

const (
	// Idle means no active conversation.
	Idle Phase = iota
	// CreatingAd means the user is walking through the ad creation steps.
	CreatingAd
	// Searching means the next text message is a search query.
	Searching
)

type session struct {
	phase Phase
	draft Draft
}

// Tracker owns all user sessions. It is safe for concurrent use; each
// session is addressed by the Telegram user ID. Sessions are not persisted
// across restarts.
type Tracker struct {
	mu       sync.RWMutex
	sessions map[int64]*session
}

// NewTracker constructs an empty in-memory Tracker.
func NewTracker() *Tracker {
	return &Tracker{sessions: make(map[int64]*session)}
}

// BeginAdCreation replaces the user's session with a fresh ad creation flow.
// Any prior draft or search flow is discarded: the last flow started wins.
func (t *Tracker) BeginAdCreation(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[userID] = &session{phase: CreatingAd}
}

// BeginSearch replaces the user's session with a search flow, discarding
// any draft in progress.
func (t *Tracker) BeginSearch(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[userID] = &session{phase: Searching}
}

// Phase returns the user's current phase, Idle when no session exists.
func (t *Tracker) Phase(userID int64) Phase {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if s, ok := t.sessions[userID]; ok {
		return s.phase
	}
	return Idle
}

// Draft returns the draft of a user mid-creation, or a zero draft otherwise.
func (t *Tracker) Draft(userID int64) Draft {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if s, ok := t.sessions[userID]; ok && s.phase == CreatingAd {
		return s.draft
	}
	return Draft{}
}

// SetDraft stores the updated draft. It is a no-op unless the user is still
// mid-creation, so a stale handler cannot resurrect an abandoned flow.
func (t *Tracker) SetDraft(userID int64, d Draft) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.sessions[userID]; ok && s.phase == CreatingAd {
		s.draft = d
	}
}

// Clear removes the user's session entirely.
func (t *Tracker) Clear(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, userID)
}

// InProgress reports whether the user has an active flow. The text router
// uses this to decide between flow handling and menu dispatch.
func (t *Tracker) InProgress(userID int64) bool {
	return t.Phase(userID) != Idle
}
