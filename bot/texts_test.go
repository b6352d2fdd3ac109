package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vpyshma/baraholka-bot/models"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "1500", formatPrice(1500))
	assert.Equal(t, "1500.5", formatPrice(1500.50))
	assert.Equal(t, "0.99", formatPrice(0.99))
}

func TestOwnAdCard(t *testing.T) {
	ad := models.Ad{
		ID:          7,
		Title:       "Шкаф",
		Description: "Почти новый",
		Price:       1500,
		Category:    "🏠 Для дома",
		Status:      models.StatusPending,
		CreatedAt:   time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}
	card := ownAdCard(ad)
	assert.Contains(t, card, "Объявление №7")
	assert.Contains(t, card, "Шкаф")
	assert.Contains(t, card, "1500 руб.")
	assert.Contains(t, card, "2026-08-30")
	assert.Contains(t, card, "⏳ pending")
}

func TestSearchResultCardContact(t *testing.T) {
	r := models.SearchResult{
		Ad: models.Ad{ID: 3, Title: "Стол", Description: "д", Price: 10, Category: "к"},
	}
	r.OwnerFirstName = "Пётр"
	assert.Contains(t, searchResultCard(r), "👤 Пётр")

	r.OwnerUsername = "petr"
	assert.Contains(t, searchResultCard(r), "👤 @petr")
}

func TestModerationCard(t *testing.T) {
	ad := models.Ad{Title: "Шкаф", Description: "д", Price: 99.5, Category: "к"}

	card := moderationCard(12, ad, "ivan", "Иван")
	assert.Contains(t, card, "ID: 12")
	assert.Contains(t, card, "@ivan (Иван)")
	assert.Contains(t, card, "99.5 руб.")

	// Without a username the placeholder shows.
	card = moderationCard(12, ad, "", "Иван")
	assert.Contains(t, card, "@нет (Иван)")
}

func TestDecisionMessages(t *testing.T) {
	assert.Equal(t, "✅ Объявление №5 одобрено!", decisionEditMsg(5, models.StatusApproved))
	assert.Equal(t, "✅ Объявление №5 отклонено!", decisionEditMsg(5, models.StatusRejected))
	assert.Contains(t, ownerDecisionMsg(5, models.StatusApproved), "одобрено и опубликовано")
	assert.Contains(t, ownerDecisionMsg(5, models.StatusRejected), "отклонено модератором")
	assert.Contains(t, decisionMissingMsg(5), "№5 не найдено")
}

func TestStatsMsg(t *testing.T) {
	msg := statsMsg(models.Stats{PendingAds: 2, ApprovedAds: 10, Users: 33})
	assert.Contains(t, msg, "Пользователей: 33")
	assert.Contains(t, msg, "Ожидают модерации: 2")
	assert.Contains(t, msg, "Опубликовано: 10")
}

func TestModerationKeyboardPayload(t *testing.T) {
	rm := moderationKeyboard(77)
	rows := rm.InlineKeyboard
	assert.Len(t, rows, 1)
	assert.Len(t, rows[0], 2)
	assert.Equal(t, cbApprove, rows[0][0].Unique)
	assert.Equal(t, cbReject, rows[0][1].Unique)
	assert.Equal(t, "77", rows[0][0].Data)
	assert.Equal(t, "77", rows[0][1].Data)
}
