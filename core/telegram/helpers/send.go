package helpers

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/vpyshma/baraholka-bot/core/logger"
	"github.com/vpyshma/baraholka-bot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the asynchronous sender used by helper functions.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

func currentDispatcher() *sender.Dispatcher {
	return globalDispatcher.Load()
}

func sendAsync(c tele.Context, action, endpoint string, run func() error) error {
	disp := currentDispatcher()
	if disp == nil {
		return run()
	}

	ctx := BuildContext(c)
	if err := disp.Enqueue(ctx, action, endpoint, run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			logger.Warn(ctx, "tg.sender", "queue.fallback",
				slog.String("action", action),
				slog.String("endpoint", endpoint),
				slog.String("err", err.Error()),
			)
			return run()
		}
		return err
	}
	return nil
}

// SendText sends plain text to the current recipient, with an optional
// reply keyboard.
func SendText(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	return sendAsync(c, "send.text", "sendMessage", func() error {
		if rm != nil {
			return c.Send(text, rm)
		}
		return c.Send(text)
	})
}

// SendPhoto sends a photo by its Telegram file ID with a caption and an
// optional keyboard.
func SendPhoto(c tele.Context, fileID, caption string, markup ...*tele.ReplyMarkup) error {
	photo := &tele.Photo{File: tele.File{FileID: fileID}, Caption: caption}
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	return sendAsync(c, "send.photo", "sendPhoto", func() error {
		if rm != nil {
			return c.Send(photo, rm)
		}
		return c.Send(photo)
	})
}

// SendTextTo delivers text to an arbitrary recipient, e.g. the moderation
// admin or an ad owner. Delivery rides the async dispatcher: failures are
// logged there and never reach the triggering flow.
func SendTextTo(c tele.Context, to tele.Recipient, text string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	bot := c.Bot()
	return sendAsync(c, "send.text_to", "sendMessage", func() error {
		if rm != nil {
			_, err := bot.Send(to, text, rm)
			return err
		}
		_, err := bot.Send(to, text)
		return err
	})
}

// SendPhotoTo delivers a photo with caption to an arbitrary recipient.
func SendPhotoTo(c tele.Context, to tele.Recipient, fileID, caption string, markup ...*tele.ReplyMarkup) error {
	photo := &tele.Photo{File: tele.File{FileID: fileID}, Caption: caption}
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	bot := c.Bot()
	return sendAsync(c, "send.photo_to", "sendPhoto", func() error {
		if rm != nil {
			_, err := bot.Send(to, photo, rm)
			return err
		}
		_, err := bot.Send(to, photo)
		return err
	})
}

// EditText edits the triggering message in place. Media messages carry the
// text as a caption, and Telegram rejects editMessageText on them, so those
// go through editMessageCaption instead. Edits run synchronously: callers
// react to the result (e.g. moderation confirmations).
func EditText(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	if msg := c.Message(); msg != nil && msg.Photo != nil {
		if rm != nil {
			return c.EditCaption(text, rm)
		}
		return c.EditCaption(text)
	}
	if rm != nil {
		return c.EditOrSend(text, rm)
	}
	return c.EditOrSend(text)
}
