package helpers

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

// editCapture records which edit endpoint EditText picked for the
// triggering message.
type editCapture struct {
	tele.Context
	msg      *tele.Message
	captions []string
	texts    []interface{}
}

func (c *editCapture) Message() *tele.Message { return c.msg }

func (c *editCapture) EditCaption(caption string, opts ...interface{}) error {
	c.captions = append(c.captions, caption)
	return nil
}

func (c *editCapture) EditOrSend(what interface{}, opts ...interface{}) error {
	c.texts = append(c.texts, what)
	return nil
}

func TestEditTextUsesCaptionOnMediaMessages(t *testing.T) {
	c := &editCapture{msg: &tele.Message{Photo: &tele.Photo{File: tele.File{FileID: "f1"}}}}

	if err := EditText(c, "одобрено"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if len(c.captions) != 1 || c.captions[0] != "одобрено" {
		t.Fatalf("caption edits = %v", c.captions)
	}
	if len(c.texts) != 0 {
		t.Fatalf("text edit on a media message: %v", c.texts)
	}
}

func TestEditTextUsesTextOnPlainMessages(t *testing.T) {
	c := &editCapture{msg: &tele.Message{Text: "card"}}

	if err := EditText(c, "одобрено"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if len(c.texts) != 1 || c.texts[0] != "одобрено" {
		t.Fatalf("text edits = %v", c.texts)
	}
	if len(c.captions) != 0 {
		t.Fatalf("caption edit on a plain message: %v", c.captions)
	}
}

func TestEditTextNilMessageFallsBack(t *testing.T) {
	c := &editCapture{}

	if err := EditText(c, "одобрено"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if len(c.texts) != 1 {
		t.Fatalf("expected EditOrSend fallback, got texts=%v captions=%v", c.texts, c.captions)
	}
}
