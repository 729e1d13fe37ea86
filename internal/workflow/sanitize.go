package workflow

import "strings"

// Text normalization shared by validation and duplicate detection.
// Operator-entered fields arrive with stray control characters, inconsistent
// whitespace and unbounded length; everything is cleaned once here.

// SanitizeText removes control characters, collapses whitespace, trims, and
// caps the result at maxLen runes.
func SanitizeText(v string, maxLen int) string {
	var b strings.Builder
	b.Grow(len(v))
	for _, r := range v {
		if r < 0x20 || r == 0x7F {
			continue
		}
		b.WriteRune(r)
	}
	s := strings.Join(strings.Fields(b.String()), " ")
	runes := []rune(s)
	if maxLen > 0 && len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return s
}

// NormalizePhone keeps a leading + and digits only. A lone "+" is treated as
// empty so it can never count as a phone match in duplicate detection.
func NormalizePhone(v string) string {
	raw := SanitizeText(v, 64)
	var b strings.Builder
	for _, r := range raw {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "+" {
		return ""
	}
	return cleaned
}

// normalizeKey lowercases a sanitized value for case-insensitive comparison.
func normalizeKey(v string) string {
	return strings.ToLower(SanitizeText(v, 240))
}
