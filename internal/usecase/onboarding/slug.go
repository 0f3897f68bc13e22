package onboarding

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slugify gera "barbearia-do-ze" a partir de "Barbearia do Zé".
func Slugify(s string) string {
	var b strings.Builder
	dash := false

	for _, r := range norm.NFD.String(strings.ToLower(strings.TrimSpace(s))) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
