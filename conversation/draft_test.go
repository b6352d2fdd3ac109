package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftAdvanceStepOrder(t *testing.T) {
	var d Draft

	d, eff := d.AdvanceText("Шкаф IKEA")
	assert.Equal(t, EffectAskDescription, eff)
	assert.Equal(t, "Шкаф IKEA", d.Title)

	d, eff = d.AdvanceText("Почти новый, самовывоз")
	assert.Equal(t, EffectAskPrice, eff)

	d, eff = d.AdvanceText("1500")
	assert.Equal(t, EffectAskCategory, eff)
	assert.Equal(t, 1500.0, d.Price)
	assert.True(t, d.HasPrice)

	d, eff = d.AdvanceText("🏠 Для дома")
	assert.Equal(t, EffectAskPhoto, eff)

	d, eff = d.AdvanceText("пропустить")
	assert.Equal(t, EffectComplete, eff)
	assert.Empty(t, d.PhotoID)
	assert.True(t, d.Complete())
}

func TestDraftBadPriceKeepsStep(t *testing.T) {
	d := Draft{Title: "t", Description: "d"}

	d, eff := d.AdvanceText("дорого")
	assert.Equal(t, EffectBadPrice, eff)
	assert.False(t, d.HasPrice)

	// The step does not move, a correct retry is accepted.
	d, eff = d.AdvanceText("1500,50")
	require.Equal(t, EffectAskCategory, eff)
	assert.Equal(t, 1500.50, d.Price)
}

func TestDraftSkipKeywordVariants(t *testing.T) {
	base := Draft{Title: "t", Description: "d", Price: 1, HasPrice: true, Category: "c"}

	for _, text := range []string{"пропустить", "Пропустить", "  пропустить  "} {
		_, eff := base.AdvanceText(text)
		assert.Equal(t, EffectComplete, eff, "input %q", text)
	}

	_, eff := base.AdvanceText("вот фото")
	assert.Equal(t, EffectBadPhotoStep, eff)
}

func TestDraftAttachPhoto(t *testing.T) {
	d := Draft{Title: "t", Description: "d", Price: 1, HasPrice: true, Category: "c"}

	d, eff := d.AttachPhoto("file-id-1")
	require.Equal(t, EffectComplete, eff)
	assert.Equal(t, "file-id-1", d.PhotoID)

	// A photo before the category step is ignored.
	early := Draft{Title: "t"}
	early, eff = early.AttachPhoto("file-id-2")
	assert.Equal(t, EffectNone, eff)
	assert.Empty(t, early.PhotoID)
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1500", 1500, true},
		{"1500.50", 1500.50, true},
		{"1500,50", 1500.50, true},
		{" 99 ", 99, true},
		{"-5", -5, true},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParsePrice(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}
