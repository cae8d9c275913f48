package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmojiClusters(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "plain text", text: "hello, world! (really) - ok?", want: nil},
		{name: "repeated emoji", text: "lol \U0001F525\U0001F525 nice", want: []string{"\U0001F525", "\U0001F525"}},
		{name: "skin tone stays attached", text: "\U0001F44D\U0001F3FC", want: []string{"\U0001F44D\U0001F3FC"}},
		{name: "variation selector stays attached", text: "\u2640\ufe0f", want: []string{"\u2640\ufe0f"}},
		{
			name: "zwj sequence is one unit",
			text: "us \U0001F469\u200d\u2764\ufe0f\u200d\U0001F468!",
			want: []string{"\U0001F469\u200d\u2764\ufe0f\u200d\U0001F468"},
		},
		{name: "lone variation selector is dropped", text: "a \ufe0f b", want: nil},
		{name: "trailing joiner is dropped", text: "\U0001F525\u200d", want: []string{"\U0001F525"}},
		{name: "keycap digit is split from its base", text: "1\ufe0f\u20e3", want: []string{"\ufe0f\u20e3"}},
		{name: "curly quotes and ellipsis skipped", text: "“wait…” ‘ok’ — fine", want: nil},
		{name: "other symbols count", text: "5 \u2605 review", want: []string{"\u2605"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEmojiClusters(tt.text))
		})
	}
}

func TestExtractWords(t *testing.T) {
	got := ExtractWords("Basically, I BASICALLY think so_cool 12345 café! a-b-c-d-e amazing.")
	assert.Equal(t, []string{"basically", "basically", "think", "so_cool", "12345", "amazing"}, got)

	assert.Empty(t, ExtractWords("tiny word list"))
	assert.Empty(t, ExtractWords(""))
}
