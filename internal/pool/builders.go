package pool

import (
	"math/rand/v2"
	"unicode/utf8"

	"quizbank/internal/models"
)

// stopWords are common long words that make boring questions
var stopWords = map[string]bool{
	"about": true, "after": true, "again": true, "because": true, "before": true,
	"could": true, "first": true, "going": true, "gonna": true, "great": true,
	"hello": true, "there": true, "these": true, "thing": true, "think": true,
	"those": true, "today": true, "tomorrow": true, "wanna": true, "would": true,
	"where": true, "which": true, "their": true, "youre": true, "yours": true,
	"yourselves": true,
}

// IsStopWord reports whether w is excluded from the word pool
func IsStopWord(w string) bool {
	return stopWords[w]
}

func limit(entries []models.CounterEntry, n int) []models.CounterEntry {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}

// BuildEmojiPool returns the emoji worth asking about, shuffled.
//
// Candidates are walked from most to least used overall, and the walk stops at the first
// one below the total threshold: everything after it is rarer still.
func BuildEmojiPool(stats *models.Stats, th Thresholds, rnd *rand.Rand) []string {
	a, b := stats.Counters(models.StatEmoji)
	combined := a.Plus(b)

	var pool []string
	for _, e := range limit(combined.MostCommon(), emojiScanLimit) {
		if e.Count < th.EmojiMinTotal {
			break
		}
		w, ok := WinnerMargin(stats.A.Sender, stats.B.Sender, a.Get(e.Key), b.Get(e.Key))
		if !ok || w.Count < th.EmojiMinWinnerCount || w.Margin < th.EmojiMinWinMargin {
			continue
		}
		pool = append(pool, e.Key)
		if len(pool) >= th.EmojiPoolLimit {
			break
		}
	}

	Shuffle(rnd, pool)
	return pool
}

// BuildReactionPool returns the reaction kinds worth asking about, shuffled.
// The domain is tiny, so every candidate is checked.
func BuildReactionPool(stats *models.Stats, th Thresholds, rnd *rand.Rand) []string {
	a, b := stats.Counters(models.StatReaction)
	combined := a.Plus(b)

	var pool []string
	for _, e := range combined.MostCommon() {
		if e.Count < th.ReactionMinTotal {
			continue
		}
		w, ok := WinnerMargin(stats.A.Sender, stats.B.Sender, a.Get(e.Key), b.Get(e.Key))
		if !ok || w.Margin < th.ReactionMinWinMargin {
			continue
		}
		pool = append(pool, e.Key)
	}

	Shuffle(rnd, pool)
	return pool
}

// BuildWordPool returns the words worth asking about, shuffled. Like the emoji pool it
// stops at the first candidate below the total threshold.
func BuildWordPool(stats *models.Stats, th Thresholds, rnd *rand.Rand) []string {
	a, b := stats.Counters(models.StatWord)
	combined := a.Plus(b)

	var pool []string
	for _, e := range limit(combined.MostCommon(), wordScanLimit) {
		if e.Count < th.WordMinTotal {
			break
		}
		if utf8.RuneCountInString(e.Key) < 5 || IsStopWord(e.Key) {
			continue
		}
		w, ok := WinnerMargin(stats.A.Sender, stats.B.Sender, a.Get(e.Key), b.Get(e.Key))
		if !ok || w.Count < th.WordMinWinnerCount || w.Margin < th.WordMinWinMargin {
			continue
		}
		pool = append(pool, e.Key)
		if len(pool) >= th.WordPoolLimit {
			break
		}
	}

	Shuffle(rnd, pool)
	return pool
}

// NewStatPool merges emoji and reaction targets into one tagged pool, shuffled once.
// Emoji usually outnumber reactions, so they come up more often; there is no weighting.
func NewStatPool(rnd *rand.Rand, emojis, reactions []string) *Exhausting[string] {
	items := make([]string, 0, len(emojis)+len(reactions))
	for _, e := range emojis {
		items = append(items, models.StatTag(models.StatEmoji, e))
	}
	for _, r := range reactions {
		items = append(items, models.StatTag(models.StatReaction, r))
	}
	return NewShuffled(rnd, items)
}

// Resolve turns a tagged target back into a stat item with its winner. It fails for
// malformed tags and for targets that are tied.
func Resolve(stats *models.Stats, tag string) (models.StatItem, bool) {
	kind, key, ok := models.ParseStatTag(tag)
	if !ok || key == "" {
		return models.StatItem{}, false
	}
	a, b := stats.Counters(kind)
	w, ok := WinnerMargin(stats.A.Sender, stats.B.Sender, a.Get(key), b.Get(key))
	if !ok {
		return models.StatItem{}, false
	}
	return models.StatItem{
		Kind:        kind,
		Key:         key,
		Winner:      w.Sender,
		WinnerCount: w.Count,
		Margin:      w.Margin,
	}, true
}
