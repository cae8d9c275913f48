package pool

// Only ask about an emoji, reaction or word when it was used enough and one sender
// clearly wins.
const (
	EmojiMinTotal       = 4
	EmojiMinWinMargin   = 2
	EmojiMinWinnerCount = 3
	EmojiPoolLimit      = 250

	WordMinTotal       = 10
	WordMinWinMargin   = 3
	WordMinWinnerCount = 7
	WordPoolLimit      = 450

	ReactionMinTotal     = 8
	ReactionMinWinMargin = 2
)

// candidates considered before giving up on a frequency-sorted list
const (
	emojiScanLimit = 5000
	wordScanLimit  = 20000
)

// Thresholds tunes the stat pool builders
type Thresholds struct {
	EmojiMinTotal       int `yaml:"emoji_min_total"`
	EmojiMinWinMargin   int `yaml:"emoji_min_win_margin"`
	EmojiMinWinnerCount int `yaml:"emoji_min_winner_count"`
	EmojiPoolLimit      int `yaml:"emoji_pool_limit"`

	WordMinTotal       int `yaml:"word_min_total"`
	WordMinWinMargin   int `yaml:"word_min_win_margin"`
	WordMinWinnerCount int `yaml:"word_min_winner_count"`
	WordPoolLimit      int `yaml:"word_pool_limit"`

	ReactionMinTotal     int `yaml:"reaction_min_total"`
	ReactionMinWinMargin int `yaml:"reaction_min_win_margin"`
}

// DefaultThresholds returns the stock thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		EmojiMinTotal:        EmojiMinTotal,
		EmojiMinWinMargin:    EmojiMinWinMargin,
		EmojiMinWinnerCount:  EmojiMinWinnerCount,
		EmojiPoolLimit:       EmojiPoolLimit,
		WordMinTotal:         WordMinTotal,
		WordMinWinMargin:     WordMinWinMargin,
		WordMinWinnerCount:   WordMinWinnerCount,
		WordPoolLimit:        WordPoolLimit,
		ReactionMinTotal:     ReactionMinTotal,
		ReactionMinWinMargin: ReactionMinWinMargin,
	}
}
