package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeAccountToken reduces an account display name to a comparison
// token: NFKC-normalized, lower-cased, with spacing and punctuation removed.
// "신한 은행-123" and "신한은행123" produce the same token.
func NormalizeAccountToken(value string) string {
	if value == "" {
		return ""
	}

	folded := strings.ToLower(norm.NFKC.String(value))

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
