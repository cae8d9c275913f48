package models

import (
	"sort"
	"strings"
)

// CounterEntry is a key and its count
type CounterEntry struct {
	Key   string
	Count int
}

// Counter counts string keys and remembers the order in which keys were first seen,
// so that frequency ordering breaks ties deterministically
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter creates an empty counter
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Inc adds one to key
func (c *Counter) Inc(key string) {
	c.Add(key, 1)
}

// Add adds n to key. Non-positive increments are ignored; counts never go down.
func (c *Counter) Add(key string, n int) {
	if n <= 0 {
		return
	}
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

// Get returns the count for key, zero when unseen
func (c *Counter) Get(key string) int {
	if c == nil {
		return 0
	}
	return c.counts[key]
}

// Len returns the number of distinct keys
func (c *Counter) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Total returns the sum of all counts
func (c *Counter) Total() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Keys returns the keys in first-seen order
func (c *Counter) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	return keys
}

// Plus returns a new counter holding c + other. Keys of c come first,
// followed by keys only seen in other.
func (c *Counter) Plus(other *Counter) *Counter {
	sum := NewCounter()
	for _, key := range c.Keys() {
		sum.Add(key, c.counts[key])
	}
	for _, key := range other.Keys() {
		sum.Add(key, other.counts[key])
	}
	return sum
}

// MostCommon returns all entries ordered by count descending, ties in first-seen order
func (c *Counter) MostCommon() []CounterEntry {
	entries := make([]CounterEntry, 0, c.Len())
	for _, key := range c.Keys() {
		entries = append(entries, CounterEntry{Key: key, Count: c.counts[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}
