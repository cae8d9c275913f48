package pool

import "quizbank/internal/models"

// Winner is the sender with the strictly larger count for a target
type Winner struct {
	Sender models.Sender
	Count  int
	Margin int
}

// WinnerMargin compares the counts of a and b. Ties have no winner; this is the only
// tie-break rule used anywhere in the bank.
func WinnerMargin(a, b models.Sender, countA, countB int) (Winner, bool) {
	switch {
	case countA > countB:
		return Winner{Sender: a, Count: countA, Margin: countA - countB}, true
	case countB > countA:
		return Winner{Sender: b, Count: countB, Margin: countB - countA}, true
	}
	return Winner{}, false
}
