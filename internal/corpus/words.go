package corpus

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const minWordRunes = 5

var wordRun = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// ExtractWords lowercases text and returns every maximal word run of at least five characters
func ExtractWords(text string) []string {
	runs := wordRun.FindAllString(strings.ToLower(text), -1)
	words := runs[:0]
	for _, w := range runs {
		if utf8.RuneCountInString(w) >= minWordRunes {
			words = append(words, w)
		}
	}
	return words
}
