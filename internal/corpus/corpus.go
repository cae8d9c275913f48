package corpus

import (
	"strings"

	"quizbank/internal/models"
)

// Corpus is the outcome of one pass over a message export: the eligible quotes and the
// lifetime counters of both participants
type Corpus struct {
	Source    string
	Quotes    []models.Message
	Stats     *models.Stats
	Rows      int
	Skipped   int
	Reactions int

	ids models.Identities
}

// NewCorpus creates an empty corpus for the two participants
func NewCorpus(ids models.Identities) *Corpus {
	return &Corpus{
		Stats: models.NewStats(ids.A.Name, ids.B.Name),
		ids:   ids,
	}
}

// Observe accounts one message. Every message from a participant feeds the counters;
// only eligible non-reaction messages become quotes. It returns false when the sender
// is not a participant.
func (c *Corpus) Observe(sender models.Sender, text, timestamp string) bool {
	if !c.ids.Known(sender) {
		return false
	}
	stats := c.Stats.For(sender)

	t := strings.TrimSpace(text)
	if t == "" {
		return true
	}

	// reactions never reach the emoji, word or quote pools
	if kind, ok := ClassifyReaction(t); ok {
		stats.Reactions.Inc(string(kind))
		c.Reactions++
		return true
	}

	for _, e := range ExtractEmojiClusters(t) {
		stats.Emojis.Inc(e)
	}
	for _, w := range ExtractWords(t) {
		stats.Words.Inc(w)
	}

	if IsQuizWorthy(t) {
		c.Quotes = append(c.Quotes, models.Message{
			Sender:       sender,
			Text:         t,
			RawTimestamp: strings.TrimSpace(timestamp),
		})
	}
	return true
}

// Identities returns the participants the corpus was built for
func (c *Corpus) Identities() models.Identities {
	return c.ids
}
