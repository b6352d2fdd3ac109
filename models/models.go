// Package models defines the persisted entities of the marketplace:
// users registered on first contact and ads moving through moderation.
package models

import "time"

// AdStatus is the moderation state of an ad.
type AdStatus string

const (
	// StatusPending marks a freshly submitted ad awaiting moderation.
	StatusPending AdStatus = "pending"
	// StatusApproved marks an ad published by the administrator.
	StatusApproved AdStatus = "approved"
	// StatusRejected marks an ad declined by the administrator.
	StatusRejected AdStatus = "rejected"
)

// Decision is the administrator's verdict on a pending ad.
type Decision string

const (
	// DecisionApprove publishes the ad.
	DecisionApprove Decision = "approve"
	// DecisionReject declines the ad.
	DecisionReject Decision = "reject"
)

// Status returns the ad status a decision results in.
func (d Decision) Status() AdStatus {
	if d == DecisionApprove {
		return StatusApproved
	}
	return StatusRejected
}

// Valid reports whether the decision is one of the two known verdicts.
func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// User is a marketplace participant. Rows are created on first observed
// interaction and never mutated or deleted afterwards.
type User struct {
	ID           int64     `db:"user_id"`
	Username     string    `db:"username"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	RegisteredAt time.Time `db:"registered_at"`
}

// Ad is a classified listing. PhotoID is the opaque Telegram file handle,
// empty when the seller skipped the photo step.
type Ad struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Price       float64   `db:"price"`
	Category    string    `db:"category"`
	PhotoID     string    `db:"photo_id"`
	Status      AdStatus  `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}

// HasPhoto reports whether the ad carries a photo reference.
func (a Ad) HasPhoto() bool { return a.PhotoID != "" }

// SearchResult is an approved ad joined with the owner's contact fields.
type SearchResult struct {
	Ad
	OwnerUsername  string `db:"owner_username"`
	OwnerFirstName string `db:"owner_first_name"`
}

// Contact returns the seller contact line: @username when set, otherwise
// the first name.
func (r SearchResult) Contact() string {
	if r.OwnerUsername != "" {
		return "@" + r.OwnerUsername
	}
	return r.OwnerFirstName
}

// Stats aggregates marketplace counters for the administrator.
type Stats struct {
	PendingAds  int64
	ApprovedAds int64
	Users       int64
}
