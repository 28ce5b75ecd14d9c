package wizard

import (
	"regexp"
	"strings"
)

var phoneShape = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)

// FormatPhone applies the progressive US phone mask to raw input, returning
// the masked value. Formatting keys off the digit count alone so pasted and
// typed input behave identically. More than ten digits is a hard cap: the
// previous value is returned untouched rather than truncating.
//
// The mask builds up as digits arrive: three digits gain parentheses, a
// fourth digit adds the space, and the sixth digit introduces the hyphen.
func FormatPhone(previous, input string) string {
	digits := digitsOf(input)
	if len(digits) > 10 {
		return previous
	}
	if len(digits) < 3 {
		return digits
	}
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(digits[:3])
	b.WriteByte(')')
	if len(digits) > 3 {
		b.WriteByte(' ')
	}
	b.WriteString(digits[3:])
	formatted := b.String()
	if len(digits) >= 6 {
		formatted = formatted[:9] + "-" + formatted[9:]
	}
	return formatted
}

// ValidPhone reports whether value exactly matches the canonical
// "(DDD) DDD-DDDD" shape.
func ValidPhone(value string) bool {
	return phoneShape.MatchString(value)
}

func digitsOf(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
