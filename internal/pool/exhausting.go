package pool

import "math/rand/v2"

// State of an Exhausting pool
type State int

const (
	// StateEmpty pools never produce items and never reshuffle
	StateEmpty State = iota
	// StateHasItems pools have items left in the current pass
	StateHasItems
	// StateExhausted pools have served every item once in the current pass
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateHasItems:
		return "has-items"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Exhausting serves every item once per pass. When a pass is used up the items are
// reshuffled with the shared random source and a new pass starts, so repeats only
// happen after every item was served and their order differs between passes.
type Exhausting[T any] struct {
	rnd    *rand.Rand
	items  []T
	cursor int
	passes int
}

// NewExhausting creates a pool over a copy of items in their given order
func NewExhausting[T any](rnd *rand.Rand, items []T) *Exhausting[T] {
	owned := make([]T, len(items))
	copy(owned, items)
	return &Exhausting[T]{rnd: rnd, items: owned, passes: 1}
}

// NewShuffled creates a pool over a shuffled copy of items
func NewShuffled[T any](rnd *rand.Rand, items []T) *Exhausting[T] {
	p := NewExhausting(rnd, items)
	Shuffle(rnd, p.items)
	return p
}

// State reports the current state
func (p *Exhausting[T]) State() State {
	switch {
	case len(p.items) == 0:
		return StateEmpty
	case p.cursor >= len(p.items):
		return StateExhausted
	default:
		return StateHasItems
	}
}

// Next returns the next item. It returns false only for an empty pool.
func (p *Exhausting[T]) Next() (T, bool) {
	var zero T
	switch p.State() {
	case StateEmpty:
		return zero, false
	case StateExhausted:
		Shuffle(p.rnd, p.items)
		p.cursor = 0
		p.passes++
	}

	item := p.items[p.cursor]
	p.cursor++
	return item, true
}

// Len returns the number of distinct items
func (p *Exhausting[T]) Len() int {
	return len(p.items)
}

// Remaining returns how many items are left before the next reshuffle
func (p *Exhausting[T]) Remaining() int {
	return len(p.items) - p.cursor
}

// Passes returns the number of the current pass, starting at 1
func (p *Exhausting[T]) Passes() int {
	return p.passes
}
