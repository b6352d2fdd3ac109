// Package services holds the marketplace business logic between the
// Telegram handlers and the relational store.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vpyshma/baraholka-bot/core/logger"
	"github.com/vpyshma/baraholka-bot/models"
	"github.com/vpyshma/baraholka-bot/storage"

	"log/slog"
)

// Users registers marketplace participants.
type Users struct {
	repo *storage.Users
}

// NewUsers wires the user service to its repository.
func NewUsers(repo *storage.Users) *Users {
	return &Users{repo: repo}
}

// RegisterIfAbsent records the user on first contact. Calling it again for
// a known ID changes nothing; the stored profile snapshot is immutable.
func (s *Users) RegisterIfAbsent(ctx context.Context, id int64, username, firstName, lastName string) error {
	start := time.Now()
	err := s.repo.CreateIfAbsent(ctx, models.User{
		ID:        id,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		logger.SVCUsers.Error("register failed",
			slog.String("event", "users.register"),
			slog.Int64("user_id", id),
			slog.Duration("duration", logger.Took(start)),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("register user: %w", err)
	}
	logger.SVCUsers.Debug("user registered",
		slog.String("event", "users.register"),
		slog.Int64("user_id", id),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// Count returns the number of registered users.
func (s *Users) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
