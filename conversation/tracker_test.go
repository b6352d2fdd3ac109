package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerLastFlowWins(t *testing.T) {
	tr := NewTracker()
	const userID = int64(42)

	tr.BeginAdCreation(userID)
	tr.SetDraft(userID, Draft{Title: "шкаф"})
	assert.Equal(t, CreatingAd, tr.Phase(userID))

	// Starting a search mid-creation discards the draft.
	tr.BeginSearch(userID)
	assert.Equal(t, Searching, tr.Phase(userID))
	assert.Empty(t, tr.Draft(userID).Title)

	// And starting creation again resets to a fresh draft.
	tr.BeginAdCreation(userID)
	assert.Equal(t, CreatingAd, tr.Phase(userID))
	assert.Equal(t, Draft{}, tr.Draft(userID))
}

func TestTrackerSetDraftRequiresCreation(t *testing.T) {
	tr := NewTracker()
	const userID = int64(7)

	// No session: the write is dropped.
	tr.SetDraft(userID, Draft{Title: "stale"})
	assert.Equal(t, Idle, tr.Phase(userID))
	assert.Empty(t, tr.Draft(userID).Title)

	// Searching session: still dropped.
	tr.BeginSearch(userID)
	tr.SetDraft(userID, Draft{Title: "stale"})
	assert.Empty(t, tr.Draft(userID).Title)
}

func TestTrackerClearAndInProgress(t *testing.T) {
	tr := NewTracker()

	assert.False(t, tr.InProgress(1))
	tr.BeginAdCreation(1)
	assert.True(t, tr.InProgress(1))

	tr.Clear(1)
	assert.False(t, tr.InProgress(1))
	assert.Equal(t, Idle, tr.Phase(1))
}

func TestTrackerIsolatesUsers(t *testing.T) {
	tr := NewTracker()

	tr.BeginAdCreation(1)
	tr.SetDraft(1, Draft{Title: "first"})
	tr.BeginSearch(2)

	assert.Equal(t, "first", tr.Draft(1).Title)
	assert.Equal(t, Searching, tr.Phase(2))
	assert.Equal(t, Idle, tr.Phase(3))
}
