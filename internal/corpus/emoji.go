package corpus

import "unicode"

// emojiSkip is punctuation that should never be counted as an emoji
var emojiSkip = map[rune]bool{
	'.': true, ',': true, '!': true, '?': true, ':': true, ';': true,
	'\'': true, '"': true, '“': true, '”': true, '‘': true, '’': true,
	'…': true,
	'(': true, ')': true, '[': true, ']': true, '{': true, '}': true,
	'<': true, '>': true, '-': true, '—': true, '_': true,
	'/': true, '\\': true, '|': true, '@': true, '#': true, '$': true, '%': true,
	'^': true, '&': true, '*': true, '+': true, '=': true, '~': true, '`': true,
}

const (
	zeroWidthJoiner = '\u200d'
	keycapCombiner  = '\u20e3'
)

func isVariationSelector(r rune) bool { return r >= 0xFE00 && r <= 0xFE0F }

func isSkinTone(r rune) bool { return r >= 0x1F3FB && r <= 0x1F3FF }

// isInvisible reports modifiers that cannot stand on their own
func isInvisible(r rune) bool {
	return isVariationSelector(r) || isSkinTone(r) || r == zeroWidthJoiner
}

// ExtractEmojiClusters picks emoji-like clusters out of text in order.
//
// This is a lexical heuristic, not grapheme segmentation: every code point that is not
// whitespace, a word character or common punctuation starts a cluster, which then absorbs
// variation selectors, skin tones, keycaps and ZWJ-joined code points so that sequences
// like 👍🏼 or 👩‍❤️‍👨 are counted as one unit.
func ExtractEmojiClusters(text string) []string {
	runes := []rune(text)
	var out []string

	for i := 0; i < len(runes); {
		r := runes[i]
		if unicode.IsSpace(r) || isWordRune(r) || emojiSkip[r] {
			i++
			continue
		}

		j := i + 1
		for j < len(runes) {
			next := runes[j]
			if isVariationSelector(next) || isSkinTone(next) || next == keycapCombiner {
				j++
				continue
			}
			if next == zeroWidthJoiner && j+1 < len(runes) {
				j += 2
				continue
			}
			break
		}

		cluster := runes[i:j]
		i = j
		if allInvisible(cluster) {
			continue
		}
		out = append(out, string(cluster))
	}

	return out
}

func allInvisible(cluster []rune) bool {
	for _, r := range cluster {
		if !isInvisible(r) {
			return false
		}
	}
	return true
}
