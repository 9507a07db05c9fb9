// Package markdown escapes text for Telegram MarkdownV2 and provides the
// plain-text downgrade used when MarkdownV2 delivery fails.
package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

// reserved is the MarkdownV2 reserved character set. Every occurrence must be
// backslash-escaped in message text outside of entities.
const reserved = "_*[]()~`>#+-.=|{}!"

var escapePattern = regexp.MustCompile("([_*\\[\\]()~`>#+\\-.=|{}!])")

// Escape backslash-prefixes every reserved character in text.
//
// Escape is intentionally not idempotent: applying it to already-escaped text
// double-escapes the backslashes. Callers escape each raw fragment exactly once.
func Escape(text string) string {
	return escapePattern.ReplaceAllString(text, `\$1`)
}

// EscapeAny stringifies v with fmt.Sprint before escaping. Strings pass
// through unchanged to Escape.
func EscapeAny(v any) string {
	if s, ok := v.(string); ok {
		return Escape(s)
	}
	return Escape(fmt.Sprint(v))
}

// delimiters are stripped outright by ToPlain after unescaping.
var delimiters = []string{"*", "`", "~", "[", "]", "(", ")"}

// ToPlain converts a MarkdownV2 string to a best-effort plain rendition:
// single-backslash escapes of the reserved set are reversed, then remaining
// markup delimiter characters are removed. Text that legitimately contained
// those characters comes out mangled; this is a degradation path, not an
// inverse of Escape.
func ToPlain(markup string) string {
	plain := markup
	for _, c := range reserved {
		plain = strings.ReplaceAll(plain, `\`+string(c), string(c))
	}
	for _, d := range delimiters {
		plain = strings.ReplaceAll(plain, d, "")
	}
	return plain
}
