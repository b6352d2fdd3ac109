package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vpyshma/baraholka-bot/conversation"
	"github.com/vpyshma/baraholka-bot/core/logger"
	"github.com/vpyshma/baraholka-bot/models"
	"github.com/vpyshma/baraholka-bot/storage"

	"log/slog"
)

// SearchLimit caps the number of search results per query.
const SearchLimit = 20

// ErrDraftIncomplete is returned when a draft reaches submission without
// every required field. Unreachable under the step order, kept defensive.
var ErrDraftIncomplete = errors.New("ad draft is incomplete")

// DecisionResult tells the caller who to notify after a moderation verdict.
type DecisionResult struct {
	AdID    int64
	OwnerID int64
	Status  models.AdStatus
	Found   bool
}

// Ads drives the listing lifecycle: submission, moderation, listing,
// search, and aggregate stats.
type Ads struct {
	ads   *storage.Ads
	users *storage.Users
}

// NewAds wires the ad service to its repositories.
func NewAds(ads *storage.Ads, users *storage.Users) *Ads {
	return &Ads{ads: ads, users: users}
}

// Submit persists a completed draft as a pending ad and returns its ID.
func (s *Ads) Submit(ctx context.Context, ownerID int64, d conversation.Draft) (int64, error) {
	if !d.Complete() {
		return 0, ErrDraftIncomplete
	}
	start := time.Now()
	id, err := s.ads.Create(ctx, models.Ad{
		UserID:      ownerID,
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		PhotoID:     d.PhotoID,
	})
	if err != nil {
		logger.SVCAds.Error("submit failed",
			slog.String("event", "ads.submit"),
			slog.Int64("owner_id", ownerID),
			slog.Duration("duration", logger.Took(start)),
			slog.String("err", err.Error()),
		)
		return 0, fmt.Errorf("submit ad: %w", err)
	}
	logger.SVCAds.Info("ad submitted",
		slog.String("event", "ads.submit"),
		slog.Int64("ad_id", id),
		slog.Int64("owner_id", ownerID),
		slog.Duration("duration", logger.Took(start)),
	)
	return id, nil
}

// Decide applies the administrator's verdict. The status write is
// unconditional and idempotent: re-deciding an already-decided ad rewrites
// the row, last write wins. A missing ad yields Found=false and no side
// effects, so the caller skips every notification.
func (s *Ads) Decide(ctx context.Context, adID int64, decision models.Decision) (DecisionResult, error) {
	if !decision.Valid() {
		return DecisionResult{}, fmt.Errorf("unknown decision %q", decision)
	}
	start := time.Now()
	status := decision.Status()

	matched, err := s.ads.SetStatus(ctx, adID, status)
	if err != nil {
		return DecisionResult{}, fmt.Errorf("decide ad %d: %w", adID, err)
	}
	if !matched {
		logger.SVCAds.Warn("decision on missing ad",
			slog.String("event", "ads.decide"),
			slog.Int64("ad_id", adID),
			slog.String("ad_status", string(status)),
		)
		return DecisionResult{AdID: adID, Status: status}, nil
	}

	owner, err := s.ads.OwnerID(ctx, adID)
	if err != nil {
		if errors.Is(err, storage.ErrAdNotFound) {
			// Row vanished between the update and the lookup; treat as
			// not found so no one is notified.
			return DecisionResult{AdID: adID, Status: status}, nil
		}
		return DecisionResult{}, fmt.Errorf("decide ad %d: %w", adID, err)
	}

	logger.SVCAds.Info("ad decided",
		slog.String("event", "ads.decide"),
		slog.Int64("ad_id", adID),
		slog.Int64("owner_id", owner),
		slog.String("ad_status", string(status)),
		slog.Duration("duration", logger.Took(start)),
	)
	return DecisionResult{AdID: adID, OwnerID: owner, Status: status, Found: true}, nil
}

// ListForUser returns the user's ads, newest first.
func (s *Ads) ListForUser(ctx context.Context, userID int64) ([]models.Ad, error) {
	ads, err := s.ads.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list ads: %w", err)
	}
	return ads, nil
}

// SearchApproved returns up to SearchLimit approved ads matching the
// keyword string in title, description, or category, newest first.
func (s *Ads) SearchApproved(ctx context.Context, keywords string) ([]models.SearchResult, error) {
	start := time.Now()
	results, err := s.ads.SearchApproved(ctx, keywords, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search ads: %w", err)
	}
	logger.SVCAds.Debug("search served",
		slog.String("event", "ads.search"),
		slog.String("query", logger.SanitizeLimit(keywords, 128)),
		slog.Int("results", len(results)),
		slog.Duration("duration", logger.Took(start)),
	)
	return results, nil
}

// Stats aggregates moderation queue and audience counters.
func (s *Ads) Stats(ctx context.Context) (models.Stats, error) {
	pending, err := s.ads.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		return models.Stats{}, fmt.Errorf("stats: %w", err)
	}
	approved, err := s.ads.CountByStatus(ctx, models.StatusApproved)
	if err != nil {
		return models.Stats{}, fmt.Errorf("stats: %w", err)
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		return models.Stats{}, fmt.Errorf("stats: %w", err)
	}
	return models.Stats{PendingAds: pending, ApprovedAds: approved, Users: users}, nil
}
