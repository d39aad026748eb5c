package otp

import (
	"regexp"
	"strings"
	"unicode"
)

// codePattern matches "123456" and "123 456" as a standalone token. The
// boundaries are spelled out because \b and \s only know ASCII in RE2, and
// mail bodies converted from HTML often carry non-breaking spaces.
var codePattern = regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(\p{Nd}{3}[\s\p{Zs}]?\p{Nd}{3})(?:[^\p{L}\p{N}_]|$)`)

// ExtractCode returns the first 6-digit code found in text, formatted as "NNN NNN".
// Any six digits qualify, so prices or dates earlier in the text win over the real code.
func ExtractCode(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	m := codePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	digits := []rune(strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, m[1]))

	if len(digits) != 6 {
		return "", false
	}

	return string(digits[:3]) + " " + string(digits[3:]), true
}
