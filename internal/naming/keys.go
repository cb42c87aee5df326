package naming

import (
	"strings"
	"unicode"
)

// CanonicalKey converts an arbitrary identifier (camelCase template output
// names, hyphenated resource names) into an upper-snake-case environment
// variable name. A run of uppercase letters is kept as one word, so
// "storageAccountID" becomes STORAGE_ACCOUNT_ID and "APIKey" becomes API_KEY.
// The function is idempotent: feeding its own output back returns it
// unchanged.
func CanonicalKey(raw string) string {
	runes := []rune(raw)
	var b strings.Builder
	b.Grow(len(runes) + 4)

	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			b.WriteRune('_')
		case unicode.IsUpper(r):
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				// lower/digit to upper boundary: storageAccount -> STORAGE_ACCOUNT
				b.WriteRune('_')
			} else if i > 0 && unicode.IsUpper(runes[i-1]) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				// end of an uppercase run: APIKey -> API_KEY
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			if unicode.IsLetter(r) && i > 0 && unicode.IsDigit(runes[i-1]) {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToUpper(r))
		}
	}

	// Collapse separator runs and trim the ends.
	var out strings.Builder
	out.Grow(b.Len())
	prevSep := true
	for _, r := range b.String() {
		if r == '_' {
			if !prevSep {
				out.WriteRune('_')
			}
			prevSep = true
			continue
		}
		out.WriteRune(r)
		prevSep = false
	}
	return strings.TrimRight(out.String(), "_")
}
