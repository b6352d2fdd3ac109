// Package storage implements the two-table relational store behind the
// marketplace: users and ads. Repositories share one pooled sqlx handle;
// queries are written with ? bindvars and rebound per driver.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vpyshma/baraholka-bot/models"
)

// Users persists marketplace participants.
type Users struct {
	db *sqlx.DB
}

// NewUsers constructs the users repository over a shared handle.
func NewUsers(db *sqlx.DB) *Users {
	return &Users{db: db}
}

// CreateIfAbsent inserts the user unless a row with the same ID already
// exists. Existing rows are never updated, so the registration snapshot
// from first contact is immutable.
func (r *Users) CreateIfAbsent(ctx context.Context, u models.User) error {
	if u.RegisteredAt.IsZero() {
		u.RegisteredAt = time.Now().UTC()
	}
	query := r.db.Rebind(`
		INSERT INTO users (user_id, username, first_name, last_name, registered_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO NOTHING`)
	if _, err := r.db.ExecContext(ctx, query, u.ID, u.Username, u.FirstName, u.LastName, u.RegisteredAt); err != nil {
		return fmt.Errorf("insert user %d: %w", u.ID, err)
	}
	return nil
}

// GetByID fetches a single user row.
func (r *Users) GetByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	query := r.db.Rebind(`
		SELECT user_id, username, first_name, last_name, registered_at
		FROM users WHERE user_id = ?`)
	if err := r.db.GetContext(ctx, &u, query, id); err != nil {
		return models.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// Count returns the total number of registered users.
func (r *Users) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
