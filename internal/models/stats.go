package models

// UserStats holds the lifetime counters for one sender
type UserStats struct {
	Sender    Sender
	Emojis    *Counter
	Reactions *Counter
	Words     *Counter
}

// NewUserStats creates empty counters for a sender
func NewUserStats(sender Sender) *UserStats {
	return &UserStats{
		Sender:    sender,
		Emojis:    NewCounter(),
		Reactions: NewCounter(),
		Words:     NewCounter(),
	}
}

// Stats pairs the counters of both participants
type Stats struct {
	A *UserStats
	B *UserStats
}

// NewStats creates empty stats for the two participants
func NewStats(a, b Sender) *Stats {
	return &Stats{A: NewUserStats(a), B: NewUserStats(b)}
}

// For returns the counters of sender, or nil if sender is not a participant
func (s *Stats) For(sender Sender) *UserStats {
	switch sender {
	case s.A.Sender:
		return s.A
	case s.B.Sender:
		return s.B
	}
	return nil
}

// Counters returns the per-sender counters of one statistic kind
func (s *Stats) Counters(kind StatKind) (a, b *Counter) {
	switch kind {
	case StatEmoji:
		return s.A.Emojis, s.B.Emojis
	case StatReaction:
		return s.A.Reactions, s.B.Reactions
	case StatWord:
		return s.A.Words, s.B.Words
	}
	return nil, nil
}
