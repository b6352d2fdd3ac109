package conversation

import (
	"strconv"
	"strings"
)

// SkipKeyword lets the seller finish the flow without a photo. Matched
// case-insensitively.
const SkipKeyword = "пропустить"

// Draft is a partially filled ad. Fields are filled strictly in order:
// title, description, price, category, photo-or-skip. A field is only
// accepted once all prior fields are present, which makes emptiness of the
// earlier fields the step marker.
type Draft struct {
	Title       string
	Description string
	Price       float64
	HasPrice    bool
	Category    string
	PhotoID     string
}

// Effect tells the caller what to do after a draft transition. The
// transition itself never talks to storage or transport.
type Effect int

const (
	// EffectNone means the input was ignored and nothing should be sent.
	EffectNone Effect = iota
	// EffectAskDescription follows the title step.
	EffectAskDescription
	// EffectAskPrice follows the description step.
	EffectAskPrice
	// EffectBadPrice re-prompts for a price; the draft is unchanged.
	EffectBadPrice
	// EffectAskCategory follows a successful price parse.
	EffectAskCategory
	// EffectAskPhoto follows the category step.
	EffectAskPhoto
	// EffectBadPhotoStep re-prompts for a photo or the skip keyword.
	EffectBadPhotoStep
	// EffectComplete means the draft is ready to be persisted.
	EffectComplete
)

// AdvanceText applies one text input to the first missing field and returns
// the new draft plus the effect to perform. Price accepts both '.' and ','
// as the decimal separator; a parse failure leaves the draft untouched.
// Negative prices and categories outside the suggested set are accepted
// as-is: the selection keyboard is a hint, not validation.
func (d Draft) AdvanceText(text string) (Draft, Effect) {
	switch {
	case d.Title == "":
		d.Title = text
		return d, EffectAskDescription
	case d.Description == "":
		d.Description = text
		return d, EffectAskPrice
	case !d.HasPrice:
		price, ok := ParsePrice(text)
		if !ok {
			return d, EffectBadPrice
		}
		d.Price = price
		d.HasPrice = true
		return d, EffectAskCategory
	case d.Category == "":
		d.Category = text
		return d, EffectAskPhoto
	default:
		if strings.EqualFold(strings.TrimSpace(text), SkipKeyword) {
			return d, EffectComplete
		}
		return d, EffectBadPhotoStep
	}
}

// AttachPhoto stores the photo reference and completes the draft. The photo
// is the terminal step, so it is only accepted once the category is set;
// earlier photos are silently ignored.
func (d Draft) AttachPhoto(photoID string) (Draft, Effect) {
	if d.Category == "" {
		return d, EffectNone
	}
	d.PhotoID = photoID
	return d, EffectComplete
}

// Complete reports whether every required field is present. The photo is
// optional. Under the step order above an incomplete draft can never reach
// EffectComplete, but submission keeps this as a defensive check.
func (d Draft) Complete() bool {
	return d.Title != "" && d.Description != "" && d.HasPrice && d.Category != ""
}

// ParsePrice parses a decimal price accepting ',' as a separator alias.
func ParsePrice(text string) (float64, bool) {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	price, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}
