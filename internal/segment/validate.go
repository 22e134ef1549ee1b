package segment

import (
	"strconv"
	"unicode/utf8"

	"github.com/tartampluch/go-dateentry/internal/config"
)

// ValidSegment checks a partial or complete raw value against its segment.
// Empty is always valid. Day and month are range-checked on their own only;
// whether day 31 exists in the chosen month is decided by Result.
// A lone "0" is accepted as the first digit of "01".."09".
func ValidSegment(c Code, value string) bool {
	if value == "" {
		return true
	}
	if !isDigits(value) || utf8.RuneCountInString(value) > c.Width() {
		return false
	}

	switch c {
	case Day:
		return inRange(value, config.MinDay, config.MaxDay)
	case Month:
		return inRange(value, config.MinMonth, config.MaxMonth)
	}
	return true
}

// Complete reports whether value fills its segment.
func Complete(c Code, value string) bool {
	return utf8.RuneCountInString(value) == c.Width()
}

func inRange(value string, lo, hi int) bool {
	n, err := strconv.Atoi(value)
	if err != nil {
		return false
	}
	if n == 0 && len(value) == 1 {
		return true
	}
	return n >= lo && n <= hi
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isDigits(s string) bool {
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return true
}
