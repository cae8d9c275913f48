package corpus

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minQuoteRunes = 18
	maxQuoteRunes = 240
)

// IsQuizWorthy decides whether a message text can be used verbatim as a quote question
func IsQuizWorthy(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	if _, isReaction := ClassifyReaction(t); isReaction {
		return false
	}

	// skip pure emoji and short replies
	n := utf8.RuneCountInString(t)
	if n < minQuoteRunes {
		return false
	}
	// "ok!!!", "😂😂😂" and friends
	if !strings.ContainsFunc(t, isAlnum) {
		return false
	}
	// must fit on a card
	return n <= maxQuoteRunes
}

// isAlnum matches word characters except underscore
func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// isWordRune matches word characters including underscore
func isWordRune(r rune) bool {
	return r == '_' || isAlnum(r)
}
