package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vpyshma/baraholka-bot/models"
)

// ErrAdNotFound is returned when an ad ID matches no row.
var ErrAdNotFound = errors.New("ad not found")

// Ads persists classified listings and their moderation status.
type Ads struct {
	db *sqlx.DB
}

// NewAds constructs the ads repository over a shared handle.
func NewAds(db *sqlx.DB) *Ads {
	return &Ads{db: db}
}

// Create inserts the ad with status pending and returns the assigned ID.
func (r *Ads) Create(ctx context.Context, ad models.Ad) (int64, error) {
	if ad.CreatedAt.IsZero() {
		ad.CreatedAt = time.Now().UTC()
	}
	query := r.db.Rebind(`
		INSERT INTO ads (user_id, title, description, price, category, photo_id, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)
	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		ad.UserID, ad.Title, ad.Description, ad.Price, ad.Category, ad.PhotoID,
		models.StatusPending, ad.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert ad for user %d: %w", ad.UserID, err)
	}
	return id, nil
}

// GetByID fetches a single ad row.
func (r *Ads) GetByID(ctx context.Context, id int64) (models.Ad, error) {
	var ad models.Ad
	query := r.db.Rebind(`
		SELECT id, user_id, title, description, price, category, photo_id, status, created_at
		FROM ads WHERE id = ?`)
	if err := r.db.GetContext(ctx, &ad, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ad{}, ErrAdNotFound
		}
		return models.Ad{}, fmt.Errorf("get ad %d: %w", id, err)
	}
	return ad, nil
}

// SetStatus writes the status unconditionally and reports whether a row
// matched. Re-applying the same status is a harmless rewrite; a missing row
// simply affects nothing.
func (r *Ads) SetStatus(ctx context.Context, id int64, status models.AdStatus) (bool, error) {
	query := r.db.Rebind(`UPDATE ads SET status = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("update ad %d status: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update ad %d status: %w", id, err)
	}
	return affected > 0, nil
}

// OwnerID returns the user ID owning the ad.
func (r *Ads) OwnerID(ctx context.Context, id int64) (int64, error) {
	var owner int64
	query := r.db.Rebind(`SELECT user_id FROM ads WHERE id = ?`)
	if err := r.db.GetContext(ctx, &owner, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrAdNotFound
		}
		return 0, fmt.Errorf("get ad %d owner: %w", id, err)
	}
	return owner, nil
}

// ListByUser returns all ads of one user, newest first.
func (r *Ads) ListByUser(ctx context.Context, userID int64) ([]models.Ad, error) {
	var ads []models.Ad
	query := r.db.Rebind(`
		SELECT id, user_id, title, description, price, category, photo_id, status, created_at
		FROM ads
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`)
	if err := r.db.SelectContext(ctx, &ads, query, userID); err != nil {
		return nil, fmt.Errorf("list ads for user %d: %w", userID, err)
	}
	return ads, nil
}

// SearchApproved returns approved ads whose title, description, or category
// contains the keyword string, joined with the owner's contact fields,
// newest first, capped at limit.
func (r *Ads) SearchApproved(ctx context.Context, keywords string, limit int) ([]models.SearchResult, error) {
	pattern := "%" + keywords + "%"
	var results []models.SearchResult
	query := r.db.Rebind(`
		SELECT a.id, a.user_id, a.title, a.description, a.price, a.category,
		       a.photo_id, a.status, a.created_at,
		       u.username AS owner_username, u.first_name AS owner_first_name
		FROM ads a
		JOIN users u ON u.user_id = a.user_id
		WHERE a.status = ?
		  AND (a.title LIKE ? OR a.description LIKE ? OR a.category LIKE ?)
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT ?`)
	err := r.db.SelectContext(ctx, &results, query,
		models.StatusApproved, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search approved ads: %w", err)
	}
	return results, nil
}

// CountByStatus returns the number of ads currently in the given status.
func (r *Ads) CountByStatus(ctx context.Context, status models.AdStatus) (int64, error) {
	var n int64
	query := r.db.Rebind(`SELECT COUNT(*) FROM ads WHERE status = ?`)
	if err := r.db.GetContext(ctx, &n, query, status); err != nil {
		return 0, fmt.Errorf("count ads by status %s: %w", status, err)
	}
	return n, nil
}
