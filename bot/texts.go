package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vpyshma/baraholka-bot/models"
)

// Menu button labels. They double as command aliases in the registry, so a
// tap on the reply keyboard dispatches like the command itself.
const (
	btnAddAd  = "📦 Добавить объявление"
	btnMyAds  = "📋 Мои объявления"
	btnSearch = "🔍 Поиск объявлений"
	btnHelp   = "ℹ️ Помощь"
)

const (
	msgWelcome = "👋 Добро пожаловать в барахолку Верхней Пышмы!\n\n" +
		"Здесь вы можете:\n" +
		"• 📦 Продавать вещи\n" +
		"• 🔍 Покупать товары\n" +
		"• 💰 Находить выгодные предложения\n\n" +
		"Выберите действие:"

	msgAskTitle       = "📝 Создаем новое объявление!\n\nВведите название товара:"
	msgAskDescription = "📝 Введите описание товара:"
	msgAskPrice       = "💰 Введите цену товара (только цифры):"
	msgBadPrice       = "❌ Пожалуйста, введите корректную цену (только цифры):"
	msgAskCategory    = "📂 Выберите категорию товара:"
	msgAskPhoto       = "📸 Пришлите фото товара (или отправьте 'пропустить' чтобы продолжить без фото):"
	msgBadPhotoStep   = "❌ Пожалуйста, отправьте фото или 'пропустить'"

	msgSubmitted = "✅ Объявление отправлено на модерацию!\n" +
		"Обычно это занимает несколько часов.\n\n" +
		"Вы получите уведомление, когда объявление будет опубликовано."
	msgDraftIncomplete = "❌ Ошибка при создании объявления. Попробуйте снова."

	msgNoAds = "📭 У вас пока нет объявлений."

	msgAskSearch = "🔍 Введите ключевые слова для поиска:\n" +
		"(название товара, категория и т.д.)"
	msgNothingFound = "😔 По вашему запросу ничего не найдено."

	msgChooseAction = "Выберите действие из меню:"
	msgNoRights     = "❌ У вас нет прав для этой команды."
	msgStoreFailure = "⚠️ Что-то пошло не так. Попробуйте позже."

	msgHelp = "ℹ️ Помощь по использованию барахолки\n\n" +
		"Добавить объявление:\n" +
		"1. Нажмите '📦 Добавить объявление'\n" +
		"2. Следуйте инструкциям бота\n" +
		"3. Дождитесь модерации\n\n" +
		"Поиск товаров:\n" +
		"1. Нажмите '🔍 Поиск объявлений'\n" +
		"2. Введите ключевые слова\n" +
		"3. Выберите подходящее объявление\n\n" +
		"Правила:\n" +
		"• Запрещена продажа запрещенных товаров\n" +
		"• Будьте вежливы с другими пользователями\n" +
		"• Описывайте товар честно\n\n" +
		"По вопросам работы бота обращайтесь к администратору."
)

var statusEmoji = map[models.AdStatus]string{
	models.StatusPending:  "⏳",
	models.StatusApproved: "✅",
	models.StatusRejected: "❌",
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func ownAdCard(ad models.Ad) string {
	emoji, ok := statusEmoji[ad.Status]
	if !ok {
		emoji = "❓"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📦 Объявление №%d\n", ad.ID)
	fmt.Fprintf(&b, "📌 %s\n", ad.Title)
	fmt.Fprintf(&b, "📝 %s\n", ad.Description)
	fmt.Fprintf(&b, "💰 %s руб.\n", formatPrice(ad.Price))
	fmt.Fprintf(&b, "📂 %s\n", ad.Category)
	fmt.Fprintf(&b, "📅 %s\n", formatDate(ad.CreatedAt))
	fmt.Fprintf(&b, "Статус: %s %s", emoji, ad.Status)
	return b.String()
}

func searchResultCard(r models.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📦 %s\n", r.Title)
	fmt.Fprintf(&b, "📝 %s\n", r.Description)
	fmt.Fprintf(&b, "💰 %s руб.\n", formatPrice(r.Price))
	fmt.Fprintf(&b, "📂 %s\n", r.Category)
	fmt.Fprintf(&b, "👤 %s\n", r.Contact())
	fmt.Fprintf(&b, "📅 %s\n", formatDate(r.CreatedAt))
	fmt.Fprintf(&b, "ID: %d", r.ID)
	return b.String()
}

func searchFoundMsg(n int) string {
	return fmt.Sprintf("🔍 Найдено объявлений: %d", n)
}

func moderationCard(adID int64, ad models.Ad, username, firstName string) string {
	contact := "нет"
	if username != "" {
		contact = username
	}
	var b strings.Builder
	b.WriteString("🆕 Новое объявление на модерацию!\n\n")
	fmt.Fprintf(&b, "📌 ID: %d\n", adID)
	fmt.Fprintf(&b, "👤 Пользователь: @%s (%s)\n", contact, firstName)
	fmt.Fprintf(&b, "📦 Товар: %s\n", ad.Title)
	fmt.Fprintf(&b, "📝 Описание: %s\n", ad.Description)
	fmt.Fprintf(&b, "💰 Цена: %s руб.\n", formatPrice(ad.Price))
	fmt.Fprintf(&b, "📂 Категория: %s", ad.Category)
	return b.String()
}

func decisionEditMsg(adID int64, status models.AdStatus) string {
	verdict := "отклонено"
	if status == models.StatusApproved {
		verdict = "одобрено"
	}
	return fmt.Sprintf("✅ Объявление №%d %s!", adID, verdict)
}

func decisionMissingMsg(adID int64) string {
	return fmt.Sprintf("⚠️ Объявление №%d не найдено.", adID)
}

func ownerDecisionMsg(adID int64, status models.AdStatus) string {
	if status == models.StatusApproved {
		return fmt.Sprintf("✅ Ваше объявление №%d было одобрено и опубликовано!", adID)
	}
	return fmt.Sprintf("❌ Ваше объявление №%d было отклонено модератором.", adID)
}

func statsMsg(s models.Stats) string {
	var b strings.Builder
	b.WriteString("📊 Статистика барахолки\n\n")
	fmt.Fprintf(&b, "👥 Пользователей: %d\n", s.Users)
	fmt.Fprintf(&b, "⏳ Ожидают модерации: %d\n", s.PendingAds)
	fmt.Fprintf(&b, "✅ Опубликовано: %d", s.ApprovedAds)
	return b.String()
}
