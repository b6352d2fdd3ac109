package services

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"log/slog"

	"github.com/vpyshma/baraholka-bot/conversation"
	"github.com/vpyshma/baraholka-bot/core/logger"
	"github.com/vpyshma/baraholka-bot/models"
	"github.com/vpyshma/baraholka-bot/storage"
	"github.com/vpyshma/baraholka-bot/storage/storagetest"
)

func TestMain(m *testing.M) {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	logger.L = discard
	logger.SVCUsers = discard
	logger.SVCAds = discard
	os.Exit(m.Run())
}

func newServices(t *testing.T) (*Users, *Ads) {
	t.Helper()
	db := storagetest.Open(t)
	usersRepo := storage.NewUsers(db)
	adsRepo := storage.NewAds(db)
	return NewUsers(usersRepo), NewAds(adsRepo, usersRepo)
}

func completeDraft(title string) conversation.Draft {
	return conversation.Draft{
		Title:       title,
		Description: "описание",
		Price:       1500,
		HasPrice:    true,
		Category:    "🏠 Для дома",
	}
}

func TestSubmitRejectsIncompleteDraft(t *testing.T) {
	_, ads := newServices(t)

	_, err := ads.Submit(context.Background(), 100, conversation.Draft{Title: "только название"})
	assert.ErrorIs(t, err, ErrDraftIncomplete)
}

func TestSubmitAndDecideApprove(t *testing.T) {
	users, ads := newServices(t)
	ctx := context.Background()

	require.NoError(t, users.RegisterIfAbsent(ctx, 100, "ivan", "Иван", ""))

	adID, err := ads.Submit(ctx, 100, completeDraft("Шкаф"))
	require.NoError(t, err)

	res, err := ads.Decide(ctx, adID, models.DecisionApprove)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, int64(100), res.OwnerID)
	assert.Equal(t, models.StatusApproved, res.Status)

	results, err := ads.SearchApproved(ctx, "Шкаф")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, adID, results[0].ID)
	assert.Equal(t, "@ivan", results[0].Contact())
}

func TestDecideRejectHidesFromSearch(t *testing.T) {
	users, ads := newServices(t)
	ctx := context.Background()

	require.NoError(t, users.RegisterIfAbsent(ctx, 100, "ivan", "Иван", ""))
	adID, err := ads.Submit(ctx, 100, completeDraft("Шкаф"))
	require.NoError(t, err)

	res, err := ads.Decide(ctx, adID, models.DecisionReject)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, models.StatusRejected, res.Status)

	results, err := ads.SearchApproved(ctx, "Шкаф")
	require.NoError(t, err)
	assert.Empty(t, results)

	// The owner still sees it in their own list with the final status.
	list, err := ads.ListForUser(ctx, 100)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.StatusRejected, list[0].Status)
}

func TestDecideRepeatedLastWriteWins(t *testing.T) {
	users, ads := newServices(t)
	ctx := context.Background()

	require.NoError(t, users.RegisterIfAbsent(ctx, 100, "ivan", "Иван", ""))
	adID, err := ads.Submit(ctx, 100, completeDraft("Шкаф"))
	require.NoError(t, err)

	_, err = ads.Decide(ctx, adID, models.DecisionApprove)
	require.NoError(t, err)
	res, err := ads.Decide(ctx, adID, models.DecisionReject)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, models.StatusRejected, res.Status)

	results, err := ads.SearchApproved(ctx, "Шкаф")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDecideMissingAd(t *testing.T) {
	_, ads := newServices(t)

	res, err := ads.Decide(context.Background(), 9999, models.DecisionApprove)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Zero(t, res.OwnerID)
}

func TestDecideUnknownVerdict(t *testing.T) {
	_, ads := newServices(t)

	_, err := ads.Decide(context.Background(), 1, models.Decision("ban"))
	assert.Error(t, err)
}

func TestSearchLimitCap(t *testing.T) {
	users, ads := newServices(t)
	ctx := context.Background()

	require.NoError(t, users.RegisterIfAbsent(ctx, 100, "ivan", "Иван", ""))
	for i := 0; i < SearchLimit+5; i++ {
		draft := completeDraft("Шкаф")
		adID, err := ads.Submit(ctx, 100, draft)
		require.NoError(t, err)
		_, err = ads.Decide(ctx, adID, models.DecisionApprove)
		require.NoError(t, err)
	}

	results, err := ads.SearchApproved(ctx, "Шкаф")
	require.NoError(t, err)
	assert.Len(t, results, SearchLimit)
}

func TestStatsCounters(t *testing.T) {
	users, ads := newServices(t)
	ctx := context.Background()

	require.NoError(t, users.RegisterIfAbsent(ctx, 100, "ivan", "Иван", ""))
	require.NoError(t, users.RegisterIfAbsent(ctx, 200, "petr", "Пётр", ""))

	first, err := ads.Submit(ctx, 100, completeDraft("Шкаф"))
	require.NoError(t, err)
	_, err = ads.Submit(ctx, 200, completeDraft("Стол"))
	require.NoError(t, err)
	_, err = ads.Decide(ctx, first, models.DecisionApprove)
	require.NoError(t, err)

	stats, err := ads.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{PendingAds: 1, ApprovedAds: 1, Users: 2}, stats)
}

func TestRegisterIfAbsentKeepsFirstProfile(t *testing.T) {
	users, _ := newServices(t)
	ctx := context.Background()

	require.NoError(t, users.RegisterIfAbsent(ctx, 100, "ivan", "Иван", "Петров"))
	require.NoError(t, users.RegisterIfAbsent(ctx, 100, "renamed", "Другой", ""))

	n, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

// Full lifecycle: a seller walks the dialogue, the draft is submitted,
// approved, and becomes visible to a buyer's search.
func TestAdLifecycleEndToEnd(t *testing.T) {
	users, ads := newServices(t)
	ctx := context.Background()

	require.NoError(t, users.RegisterIfAbsent(ctx, 100, "", "Иван", ""))

	var d conversation.Draft
	var eff conversation.Effect
	for _, input := range []string{"Шкаф IKEA", "Белый, почти новый", "abc"} {
		d, eff = d.AdvanceText(input)
		_ = eff
	}
	assert.Equal(t, conversation.EffectBadPrice, eff)

	d, eff = d.AdvanceText("1500,50")
	require.Equal(t, conversation.EffectAskCategory, eff)
	d, eff = d.AdvanceText("🏠 Для дома")
	require.Equal(t, conversation.EffectAskPhoto, eff)
	d, eff = d.AttachPhoto("photo-abc")
	require.Equal(t, conversation.EffectComplete, eff)

	adID, err := ads.Submit(ctx, 100, d)
	require.NoError(t, err)

	// Invisible until moderated.
	results, err := ads.SearchApproved(ctx, "IKEA")
	require.NoError(t, err)
	assert.Empty(t, results)

	res, err := ads.Decide(ctx, adID, models.DecisionApprove)
	require.NoError(t, err)
	require.True(t, res.Found)

	results, err = ads.SearchApproved(ctx, "IKEA")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1500.50, results[0].Price)
	assert.Equal(t, "photo-abc", results[0].PhotoID)
	assert.Equal(t, "Иван", results[0].Contact())
	assert.WithinDuration(t, time.Now().UTC(), results[0].CreatedAt, time.Minute)
}
