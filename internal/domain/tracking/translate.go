package tracking

import "strings"

// phrasePair is one English operational phrase and its Arabic equivalent.
type phrasePair struct {
	en string
	ar string
}

// phraseTable holds the carrier's recurring operational phrases. Replacements
// are applied in order, longer phrases before their sub-phrases, so that e.g.
// "delivery attempt failed" is not shadowed by "delivery". The translation is
// lossy: untranslated remainders pass through unchanged.
var phraseTable = []phrasePair{
	{"shipment has been created", "تم إنشاء الشحنة"},
	{"delivery attempt failed", "فشلت محاولة التوصيل"},
	{"arrived at sorting facility", "وصلت الشحنة إلى مركز الفرز"},
	{"arrived at destination facility", "وصلت الشحنة إلى مركز التوزيع"},
	{"returned to sender", "تمت إعادة الشحنة إلى المرسل"},
	{"delivered to recipient", "تم تسليم الشحنة إلى المستلم"},
	{"picked up by courier", "استلم المندوب الشحنة"},
	{"out for delivery", "الشحنة خرجت للتوصيل"},
	{"address is incorrect", "العنوان غير صحيح"},
	{"recipient not available", "المستلم غير متواجد"},
	{"customs clearance", "التخليص الجمركي"},
	{"shipment created", "تم إنشاء الشحنة"},
	{"in transit", "الشحنة في الطريق"},
	{"picked up", "تم استلام الشحنة"},
	{"delivered", "تم التوصيل"},
	{"cancelled", "تم الإلغاء"},
	{"delayed", "تأخرت الشحنة"},
}

// TranslateDescription applies the phrase translation table to a carrier
// free-text description as ordered case-insensitive substring replacements.
// It never fails: input that matches nothing is returned as-is, so callers
// always get some string to render.
func TranslateDescription(description string) string {
	if description == "" {
		return description
	}

	result := description
	for _, pair := range phraseTable {
		result = replaceFold(result, pair.en, pair.ar)
	}
	return result
}

// replaceFold replaces every case-insensitive occurrence of old in s with new.
// Folding is ASCII-only: full Unicode lowering can change byte lengths and
// desynchronize indexes between the folded copy and the original. The phrase
// table is pure ASCII, so nothing is lost by the narrower fold.
func replaceFold(s, old, new string) string {
	if old == "" {
		return s
	}

	var b strings.Builder
	lowered := lowerASCII(s)
	loweredOld := lowerASCII(old)
	for {
		idx := strings.Index(lowered, loweredOld)
		if idx < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:idx])
		b.WriteString(new)
		s = s[idx+len(old):]
		lowered = lowered[idx+len(loweredOld):]
	}
}

// lowerASCII lowercases only the ASCII letters of s. Every byte keeps its
// position, so len(lowerASCII(s)) == len(s) and indexes found in the folded
// copy are valid in the original.
func lowerASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}

	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
