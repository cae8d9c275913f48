package models

// Question is one daily quiz card
type Question struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Answer    Sender `json:"answer"`
	Timestamp string `json:"timestamp"`
}

// QuizBank is the generated artifact consumed by the quiz client
type QuizBank struct {
	GeneratedAt string                `json:"generatedAt"`
	Source      string                `json:"source"`
	StartDate   string                `json:"startDate"`
	DaysCount   int                   `json:"daysCount"`
	PerDay      int                   `json:"perDay"`
	Days        map[string][]Question `json:"days"`
}

// QuestionCount returns the number of questions across all days
func (b *QuizBank) QuestionCount() int {
	n := 0
	for _, qs := range b.Days {
		n += len(qs)
	}
	return n
}

// BuildReport summarizes one quiz bank build
type BuildReport struct {
	Source         string
	StartDate      string
	Days           int
	PerDay         int
	EligibleQuotes int
	QuoteSlots     int
	EmojiItems     int
	ReactionItems  int
	WordItems      int
	Questions      int
	ShortDays      int
	Warnings       []string
}

// BankSummary describes a published quiz bank
type BankSummary struct {
	ID          int64
	UUID        string
	Source      string
	StartDate   string
	DaysCount   int
	PerDay      int
	GeneratedAt string
	Questions   int
}
