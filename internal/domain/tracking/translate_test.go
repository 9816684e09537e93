package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty input", "", ""},
		{"no match passes through", "Custom carrier remark 42", "Custom carrier remark 42"},
		{"single phrase", "Delivered", "تم التوصيل"},
		{"case insensitive", "OUT FOR DELIVERY", "الشحنة خرجت للتوصيل"},
		{"longer phrase wins over sub-phrase", "Delivery attempt failed", "فشلت محاولة التوصيل"},
		{"untranslated remainder kept", "In transit via Riyadh hub", "الشحنة في الطريق via Riyadh hub"},
		{"multiple phrases in one string", "Picked up, in transit", "تم استلام الشحنة, الشحنة في الطريق"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TranslateDescription(tt.input))
		})
	}
}

func TestTranslateDescription_NeverEmptyForNonEmptyInput(t *testing.T) {
	inputs := []string{"x", "??", "shipment created", "عبارة عربية بالفعل"}
	for _, input := range inputs {
		assert.NotEmpty(t, TranslateDescription(input))
	}
}

func TestTranslateDescription_MultibyteInput(t *testing.T) {
	// Ⱥ is one of the characters whose full Unicode lowering grows the rune
	// (2 bytes to 3), so the fold must not shift byte offsets.
	assert.Equal(t, "ȺȺȺȺȺ تم التوصيل", TranslateDescription("ȺȺȺȺȺ delivered"))
	assert.Equal(t, "شحنة İstanbul: الشحنة في الطريق", TranslateDescription("شحنة İstanbul: in transit"))
	assert.NotPanics(t, func() {
		TranslateDescription("Ⱥ DELIVERED Ⱥ IN TRANSIT Ⱥ")
	})
}

func TestReplaceFold(t *testing.T) {
	assert.Equal(t, "b b b", replaceFold("A a a", "a", "b")[0:5])
	assert.Equal(t, "b Ⱥ b", replaceFold("A Ⱥ a", "a", "b"))
	assert.Equal(t, "unchanged", replaceFold("unchanged", "", "x"))
	assert.Equal(t, "unchanged", replaceFold("unchanged", "zz", "x"))
}

func TestLowerASCII(t *testing.T) {
	assert.Equal(t, "abc", lowerASCII("AbC"))
	assert.Equal(t, "ȺȺ x", lowerASCII("ȺȺ X"), "non-ASCII runes pass through unfolded")
	input := "Ⱥ MIXED شحنة"
	assert.Len(t, lowerASCII(input), len(input))
}
