package storage

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpyshma/baraholka-bot/models"
	"github.com/vpyshma/baraholka-bot/storage/storagetest"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	return storagetest.Open(t)
}

func seedUser(t *testing.T, users *Users, id int64, username, firstName string) {
	t.Helper()
	err := users.CreateIfAbsent(context.Background(), models.User{
		ID:        id,
		Username:  username,
		FirstName: firstName,
	})
	require.NoError(t, err)
}

func TestUsersCreateIfAbsentIdempotent(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)
	ctx := context.Background()

	seedUser(t, users, 100, "ivan", "Иван")

	// Second insert with a different profile changes nothing.
	err := users.CreateIfAbsent(ctx, models.User{ID: 100, Username: "other", FirstName: "Другой"})
	require.NoError(t, err)

	u, err := users.GetByID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "ivan", u.Username)
	assert.Equal(t, "Иван", u.FirstName)
	assert.False(t, u.RegisteredAt.IsZero())

	n, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestAdsCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)
	ads := NewAds(db)
	ctx := context.Background()

	seedUser(t, users, 100, "ivan", "Иван")

	id, err := ads.Create(ctx, models.Ad{
		UserID:      100,
		Title:       "Шкаф",
		Description: "Почти новый",
		Price:       1500.50,
		Category:    "🏠 Для дома",
	})
	require.NoError(t, err)
	require.Positive(t, id)

	ad, err := ads.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, ad.Status)
	assert.Equal(t, 1500.50, ad.Price)
	assert.False(t, ad.HasPhoto())
	assert.False(t, ad.CreatedAt.IsZero())

	_, err = ads.GetByID(ctx, id+1)
	assert.ErrorIs(t, err, ErrAdNotFound)
}

func TestAdsSetStatus(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)
	ads := NewAds(db)
	ctx := context.Background()

	seedUser(t, users, 100, "ivan", "Иван")
	id, err := ads.Create(ctx, models.Ad{UserID: 100, Title: "t", Description: "d", Price: 1, Category: "c"})
	require.NoError(t, err)

	matched, err := ads.SetStatus(ctx, id, models.StatusApproved)
	require.NoError(t, err)
	assert.True(t, matched)

	// Re-deciding overwrites: last write wins.
	matched, err = ads.SetStatus(ctx, id, models.StatusRejected)
	require.NoError(t, err)
	assert.True(t, matched)

	ad, err := ads.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, ad.Status)

	matched, err = ads.SetStatus(ctx, id+100, models.StatusApproved)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestAdsOwnerID(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)
	ads := NewAds(db)
	ctx := context.Background()

	seedUser(t, users, 100, "ivan", "Иван")
	id, err := ads.Create(ctx, models.Ad{UserID: 100, Title: "t", Description: "d", Price: 1, Category: "c"})
	require.NoError(t, err)

	owner, err := ads.OwnerID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(100), owner)

	_, err = ads.OwnerID(ctx, id+1)
	assert.ErrorIs(t, err, ErrAdNotFound)
}

func TestAdsListByUserNewestFirst(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)
	ads := NewAds(db)
	ctx := context.Background()

	seedUser(t, users, 100, "ivan", "Иван")
	seedUser(t, users, 200, "petr", "Пётр")

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"первый", "второй", "третий"} {
		_, err := ads.Create(ctx, models.Ad{
			UserID: 100, Title: title, Description: "d", Price: 1, Category: "c",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	_, err := ads.Create(ctx, models.Ad{UserID: 200, Title: "чужой", Description: "d", Price: 1, Category: "c"})
	require.NoError(t, err)

	list, err := ads.ListByUser(ctx, 100)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "третий", list[0].Title)
	assert.Equal(t, "второй", list[1].Title)
	assert.Equal(t, "первый", list[2].Title)

	empty, err := ads.ListByUser(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAdsSearchApproved(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)
	ads := NewAds(db)
	ctx := context.Background()

	seedUser(t, users, 100, "ivan", "Иван")
	seedUser(t, users, 200, "", "Пётр")

	mk := func(userID int64, title, desc, category string, status models.AdStatus, at time.Time) int64 {
		id, err := ads.Create(ctx, models.Ad{
			UserID: userID, Title: title, Description: desc, Price: 10, Category: category, CreatedAt: at,
		})
		require.NoError(t, err)
		matched, err := ads.SetStatus(ctx, id, status)
		require.NoError(t, err)
		require.True(t, matched)
		return id
	}

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mk(100, "шкаф IKEA", "белый", "🏠 Для дома", models.StatusApproved, base)
	mk(200, "стол", "рядом со шкафом", "🏠 Для дома", models.StatusApproved, base.Add(time.Minute))
	mk(100, "шкаф-купе", "зеркальный", "🏠 Для дома", models.StatusPending, base.Add(2*time.Minute))
	mk(100, "велосипед", "горный", "⚽ Другое", models.StatusApproved, base.Add(3*time.Minute))

	results, err := ads.SearchApproved(ctx, "шкаф", 20)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Newest first; pending rows never surface.
	assert.Equal(t, "стол", results[0].Title)
	assert.Equal(t, "шкаф IKEA", results[1].Title)

	// Owner contact fields ride along with the join.
	assert.Equal(t, "Пётр", results[0].OwnerFirstName)
	assert.Equal(t, "Пётр", results[0].Contact())
	assert.Equal(t, "@ivan", results[1].Contact())

	limited, err := ads.SearchApproved(ctx, "шкаф", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "стол", limited[0].Title)

	none, err := ads.SearchApproved(ctx, "лодка", 20)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAdsCountByStatus(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)
	ads := NewAds(db)
	ctx := context.Background()

	seedUser(t, users, 100, "ivan", "Иван")

	for i := 0; i < 3; i++ {
		_, err := ads.Create(ctx, models.Ad{UserID: 100, Title: "t", Description: "d", Price: 1, Category: "c"})
		require.NoError(t, err)
	}
	id, err := ads.Create(ctx, models.Ad{UserID: 100, Title: "t", Description: "d", Price: 1, Category: "c"})
	require.NoError(t, err)
	_, err = ads.SetStatus(ctx, id, models.StatusApproved)
	require.NoError(t, err)

	pending, err := ads.CountByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pending)

	approved, err := ads.CountByStatus(ctx, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, int64(1), approved)

	rejected, err := ads.CountByStatus(ctx, models.StatusRejected)
	require.NoError(t, err)
	assert.Zero(t, rejected)
}
