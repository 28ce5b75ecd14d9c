package model

import "strings"

// labelCasing holds words the registration form spells in full caps: the
// provider's opaque account identifier and the SMART brand itself. Applied
// after title-casing, so "paymentAccountId" labels as "Payment Account ID".
var labelCasing = map[string]string{
	"Id":    "ID",
	"Url":   "URL",
	"Smart": "SMART",
}

// DefaultLabeler converts a property name into a human-friendly label,
// splitting on underscores, dashes, and camelCase boundaries. It is the
// fallback for schema properties without a title.
func DefaultLabeler(name string) string {
	var labels []string
	for _, word := range splitWords(name) {
		word = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		if cased, ok := labelCasing[word]; ok {
			word = cased
		}
		labels = append(labels, word)
	}
	return strings.Join(labels, " ")
}

// splitWords breaks a property name into its words: separators end a word,
// and so do lower-to-upper, letter-to-digit, and digit-to-letter transitions
// ("address1" -> "address", "1").
func splitWords(name string) []string {
	var words []string
	var current strings.Builder
	var prev rune

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case prev != 0 && wordBoundary(prev, r):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
		prev = r
	}
	flush()
	return words
}

func wordBoundary(prev, r rune) bool {
	switch {
	case isLower(prev) && isUpper(r):
		return true
	case isLetter(prev) && isDigit(r):
		return true
	case isDigit(prev) && isLetter(r):
		return true
	}
	return false
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }
