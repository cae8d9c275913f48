package service

import (
	"fmt"

	"quizbank/internal/corpus"
	"quizbank/internal/models"
	"quizbank/internal/pool"
)

const (
	statTimestamp = "All-time stat"
	wordTimestamp = "Lifetime stats"
)

// assembler fills the question slots of each day from the three pools
type assembler struct {
	counts *models.Stats
	quotes *pool.Exhausting[models.Message]
	stats  *pool.Exhausting[string]
	words  *pool.Exhausting[string]
}

// day fills up to perDay slots: a quote, a stat item, a word item, then more quotes.
// Stat and word slots fall back to a quote when they cannot produce a question.
func (a *assembler) day(date string, perDay int) []models.Question {
	questions := make([]models.Question, 0, perDay)
	add := func(q models.Question, ok bool) {
		if !ok {
			return
		}
		q.ID = fmt.Sprintf("%s-%d", date, len(questions)+1)
		questions = append(questions, q)
	}

	if perDay >= 1 {
		add(a.quote())
	}
	if perDay >= 2 {
		add(a.orQuote(a.statQuestion()))
	}
	if perDay >= 3 {
		add(a.orQuote(a.wordQuestion()))
	}
	for len(questions) < perDay {
		q, ok := a.quote()
		if !ok {
			break
		}
		add(q, true)
	}
	return questions
}

func (a *assembler) orQuote(q models.Question, ok bool) (models.Question, bool) {
	if ok {
		return q, true
	}
	return a.quote()
}

func (a *assembler) quote() (models.Question, bool) {
	m, ok := a.quotes.Next()
	if !ok {
		return models.Question{}, false
	}
	return models.Question{Text: m.Text, Answer: m.Sender, Timestamp: m.RawTimestamp}, true
}

func (a *assembler) statQuestion() (models.Question, bool) {
	tag, ok := a.stats.Next()
	if !ok {
		return models.Question{}, false
	}
	item, ok := pool.Resolve(a.counts, tag)
	if !ok {
		return models.Question{}, false
	}
	return StatQuestion(item)
}

func (a *assembler) wordQuestion() (models.Question, bool) {
	word, ok := a.words.Next()
	if !ok {
		return models.Question{}, false
	}
	item, ok := pool.Resolve(a.counts, models.StatTag(models.StatWord, word))
	if !ok {
		return models.Question{}, false
	}
	return StatQuestion(item)
}

// StatQuestion phrases a resolved stat item as a question
func StatQuestion(item models.StatItem) (models.Question, bool) {
	var text, ts string
	switch item.Kind {
	case models.StatEmoji:
		text = fmt.Sprintf("Who uses the '%s' emoji the most?", item.Key)
		ts = statTimestamp
	case models.StatReaction:
		kind := corpus.ReactionKind(item.Key)
		text = fmt.Sprintf("Who %s the most messages? (%s)", kind.Verb(), kind)
		ts = statTimestamp
	case models.StatWord:
		text = fmt.Sprintf("Who has used the word '%s' more in our texts?", item.Key)
		ts = wordTimestamp
	default:
		return models.Question{}, false
	}
	return models.Question{Text: text, Answer: item.Winner, Timestamp: ts}, true
}
