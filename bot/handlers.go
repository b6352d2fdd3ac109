// Package bot wires the marketplace domain onto the Telegram core: command
// and callback registration, the ad creation dialogue, search, and the
// moderation flow between sellers and the administrator.
package bot

import (
	"errors"

	tele "gopkg.in/telebot.v4"

	"github.com/vpyshma/baraholka-bot/conversation"
	"github.com/vpyshma/baraholka-bot/core/logger"
	"github.com/vpyshma/baraholka-bot/core/telegram/callbacks"
	tghelpers "github.com/vpyshma/baraholka-bot/core/telegram/helpers"
	"github.com/vpyshma/baraholka-bot/core/telegram/keyboard"
	"github.com/vpyshma/baraholka-bot/models"
	"github.com/vpyshma/baraholka-bot/services"

	"log/slog"
)

type handlers struct {
	adminID int64
	tracker *conversation.Tracker
	users   *services.Users
	ads     *services.Ads
}

// InProgress reports whether the user has an active flow (router contract).
func (h *handlers) InProgress(userID int64) bool {
	return h.tracker.InProgress(userID)
}

func (h *handlers) handleStart(c tele.Context) error {
	sender := c.Sender()
	ctx := tghelpers.BuildContext(c)
	if err := h.users.RegisterIfAbsent(ctx, sender.ID, sender.Username, sender.FirstName, sender.LastName); err != nil {
		// Registration failure is not worth blocking the welcome; the
		// next interaction retries the idempotent insert.
		logger.Warn(ctx, "tg", "start.register_failed",
			slog.Int64("user_id", sender.ID),
			slog.String("err", err.Error()),
		)
	}
	return tghelpers.SendText(c, msgWelcome, mainMenuKeyboard())
}

func (h *handlers) handleHelp(c tele.Context) error {
	return tghelpers.SendText(c, msgHelp)
}

func (h *handlers) handleStats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	stats, err := h.ads.Stats(ctx)
	if err != nil {
		logger.Error(ctx, "tg", "stats.failed", slog.String("err", err.Error()))
		return tghelpers.SendText(c, msgStoreFailure)
	}
	return tghelpers.SendText(c, statsMsg(stats))
}

func (h *handlers) handleAddAd(c tele.Context) error {
	h.tracker.BeginAdCreation(c.Sender().ID)
	return tghelpers.SendText(c, msgAskTitle, keyboard.RemoveKeyboard())
}

func (h *handlers) handleMyAds(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	ads, err := h.ads.ListForUser(ctx, c.Sender().ID)
	if err != nil {
		logger.Error(ctx, "tg", "my_ads.failed", slog.String("err", err.Error()))
		return tghelpers.SendText(c, msgStoreFailure)
	}
	if len(ads) == 0 {
		return tghelpers.SendText(c, msgNoAds)
	}
	for _, ad := range ads {
		if err := tghelpers.SendText(c, ownAdCard(ad)); err != nil {
			return err
		}
	}
	return nil
}

func (h *handlers) handleSearchPrompt(c tele.Context) error {
	h.tracker.BeginSearch(c.Sender().ID)
	return tghelpers.SendText(c, msgAskSearch, keyboard.RemoveKeyboard())
}

// HandleText receives free text while the user has an active flow.
func (h *handlers) HandleText(c tele.Context) error {
	userID := c.Sender().ID
	switch h.tracker.Phase(userID) {
	case conversation.CreatingAd:
		return h.advanceDraft(c, userID, c.Text())
	case conversation.Searching:
		return h.runSearch(c, userID, c.Text())
	}
	return tghelpers.SendText(c, msgChooseAction)
}

// HandlePhoto accepts a photo only as the terminal creation step; any other
// photo is dropped without a reply.
func (h *handlers) HandlePhoto(c tele.Context) error {
	userID := c.Sender().ID
	if h.tracker.Phase(userID) != conversation.CreatingAd {
		return nil
	}
	photo := c.Message().Photo
	if photo == nil {
		return nil
	}
	draft, effect := h.tracker.Draft(userID).AttachPhoto(photo.FileID)
	if effect != conversation.EffectComplete {
		return nil
	}
	return h.submitDraft(c, userID, draft)
}

func (h *handlers) advanceDraft(c tele.Context, userID int64, text string) error {
	draft, effect := h.tracker.Draft(userID).AdvanceText(text)
	h.tracker.SetDraft(userID, draft)

	switch effect {
	case conversation.EffectAskDescription:
		return tghelpers.SendText(c, msgAskDescription)
	case conversation.EffectAskPrice:
		return tghelpers.SendText(c, msgAskPrice)
	case conversation.EffectBadPrice:
		return tghelpers.SendText(c, msgBadPrice)
	case conversation.EffectAskCategory:
		return tghelpers.SendText(c, msgAskCategory, categoryKeyboard())
	case conversation.EffectAskPhoto:
		return tghelpers.SendText(c, msgAskPhoto, skipKeyboard())
	case conversation.EffectBadPhotoStep:
		return tghelpers.SendText(c, msgBadPhotoStep)
	case conversation.EffectComplete:
		return h.submitDraft(c, userID, draft)
	}
	return nil
}

func (h *handlers) submitDraft(c tele.Context, userID int64, draft conversation.Draft) error {
	ctx := tghelpers.BuildContext(c)

	// The ads table references users; make sure the row exists even if the
	// user somehow never hit /start (e.g. after a database reset).
	sender := c.Sender()
	if err := h.users.RegisterIfAbsent(ctx, sender.ID, sender.Username, sender.FirstName, sender.LastName); err != nil {
		return tghelpers.SendText(c, msgStoreFailure)
	}

	adID, err := h.ads.Submit(ctx, userID, draft)
	if err != nil {
		if errors.Is(err, services.ErrDraftIncomplete) {
			h.tracker.Clear(userID)
			return tghelpers.SendText(c, msgDraftIncomplete, mainMenuKeyboard())
		}
		// Store failure: abandon the operation, keep the draft so the
		// user can retry the last step.
		logger.Error(ctx, "tg", "submit.failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, msgStoreFailure)
	}

	h.tracker.Clear(userID)
	h.notifyAdmin(c, adID, draft)
	return tghelpers.SendText(c, msgSubmitted, mainMenuKeyboard())
}

// notifyAdmin delivers the moderation card with the approve/reject pair.
// Delivery failures surface in the sender logs only: the ad is already
// committed and the flow must not unwind.
func (h *handlers) notifyAdmin(c tele.Context, adID int64, draft conversation.Draft) {
	sender := c.Sender()
	ad := models.Ad{
		Title:       draft.Title,
		Description: draft.Description,
		Price:       draft.Price,
		Category:    draft.Category,
		PhotoID:     draft.PhotoID,
	}
	card := moderationCard(adID, ad, sender.Username, sender.FirstName)
	markup := moderationKeyboard(adID)
	admin := &tele.User{ID: h.adminID}

	var err error
	if ad.HasPhoto() {
		err = tghelpers.SendPhotoTo(c, admin, ad.PhotoID, card, markup)
	} else {
		err = tghelpers.SendTextTo(c, admin, card, markup)
	}
	if err != nil {
		ctx := tghelpers.BuildContext(c)
		logger.Error(ctx, "tg", "moderation.notify_failed",
			slog.Int64("ad_id", adID),
			slog.String("err", err.Error()),
		)
	}
}

func (h *handlers) runSearch(c tele.Context, userID int64, query string) error {
	h.tracker.Clear(userID)

	ctx := tghelpers.BuildContext(c)
	results, err := h.ads.SearchApproved(ctx, query)
	if err != nil {
		logger.Error(ctx, "tg", "search.failed", slog.String("err", err.Error()))
		return tghelpers.SendText(c, msgStoreFailure)
	}
	if len(results) == 0 {
		return tghelpers.SendText(c, msgNothingFound)
	}

	if err := tghelpers.SendText(c, searchFoundMsg(len(results))); err != nil {
		return err
	}
	for _, r := range results {
		card := searchResultCard(r)
		if r.HasPhoto() {
			err = tghelpers.SendPhoto(c, r.PhotoID, card)
		} else {
			err = tghelpers.SendText(c, card)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// decideHandler builds the callback handler for one moderation verdict.
func (h *handlers) decideHandler(decision models.Decision) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Sender().ID != h.adminID {
			return c.Respond(&tele.CallbackResponse{Text: msgNoRights})
		}

		adID, err := callbacks.PayloadInt64(c)
		if err != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
		}

		ctx := tghelpers.BuildContext(c)
		res, err := h.ads.Decide(ctx, adID, decision)
		if err != nil {
			logger.Error(ctx, "tg", "moderation.decide_failed",
				slog.Int64("ad_id", adID),
				slog.String("err", err.Error()),
			)
			return tghelpers.EditText(c, msgStoreFailure)
		}
		if !res.Found {
			return tghelpers.EditText(c, decisionMissingMsg(adID))
		}

		owner := &tele.User{ID: res.OwnerID}
		if err := tghelpers.SendTextTo(c, owner, ownerDecisionMsg(adID, res.Status)); err != nil {
			logger.Warn(ctx, "tg", "moderation.owner_notify_failed",
				slog.Int64("ad_id", adID),
				slog.Int64("owner_id", res.OwnerID),
				slog.String("err", err.Error()),
			)
		}
		return tghelpers.EditText(c, decisionEditMsg(adID, res.Status))
	}
}

// UnknownText replies with the menu hint when no flow or command matches.
func (h *handlers) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendText(c, msgChooseAction, mainMenuKeyboard())
	}
}

// UnknownCallback answers unmapped callback presses.
func (h *handlers) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
	}
}

func (h *handlers) adminReject(c tele.Context) error {
	return tghelpers.SendText(c, msgNoRights)
}
