package bot

import (
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/vpyshma/baraholka-bot/conversation"
	"github.com/vpyshma/baraholka-bot/core/telegram/keyboard"
)

// Callback keys for moderation buttons. The payload is the ad ID.
const (
	cbApprove = "approve"
	cbReject  = "reject"
)

// categoryRows is the suggested category set shown during ad creation.
// Selection is advisory: free text is accepted too.
var categoryRows = [][]string{
	{"👕 Одежда", "👟 Обувь"},
	{"📱 Электроника", "🏠 Для дома"},
	{"🎮 Хобби", "📚 Книги"},
	{"🚗 Авто", "⚽ Другое"},
}

func mainMenuKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{btnAddAd, btnMyAds},
		[]string{btnSearch, btnHelp},
	)
}

func categoryKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(categoryRows...)
}

func skipKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{conversation.SkipKeyword})
}

func moderationKeyboard(adID int64) *tele.ReplyMarkup {
	payload := strconv.FormatInt(adID, 10)
	return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "✅ Одобрить", Unique: cbApprove, Data: payload},
		{Text: "❌ Отклонить", Unique: cbReject, Data: payload},
	})
}
