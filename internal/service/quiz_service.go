package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"quizbank/internal/corpus"
	"quizbank/internal/models"
	"quizbank/internal/pool"
)

// DateLayout is the ISO date format used for day keys and the start date
const DateLayout = "2006-01-02"

const generatedAtLayout = "2006-01-02T15:04:05Z"

var (
	// ErrInvalidStartDate is returned for a start date that is not YYYY-MM-DD
	ErrInvalidStartDate = errors.New("invalid start date")
	// ErrInvalidOptions is returned for negative day or slot counts
	ErrInvalidOptions = errors.New("invalid build options")
)

// ParseStartDate parses a YYYY-MM-DD date
func ParseStartDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidStartDate, s)
	}
	return d, nil
}

// Today returns the current local date as a start date
func Today() time.Time {
	d, _ := ParseStartDate(time.Now().Format(DateLayout))
	return d
}

// BuildOptions parameterizes one quiz bank build
type BuildOptions struct {
	StartDate time.Time
	Days      int
	PerDay    int
	Seed      string
}

// QuizService assembles daily quiz banks from a loaded corpus
type QuizService struct {
	logger     *zap.Logger
	thresholds pool.Thresholds
	now        func() time.Time
}

// NewQuizService creates a new quiz service
func NewQuizService(logger *zap.Logger, thresholds pool.Thresholds) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{
		logger:     logger,
		thresholds: thresholds,
		now:        time.Now,
	}
}

// SetClock replaces the clock used for generatedAt
func (s *QuizService) SetClock(now func() time.Time) {
	s.now = now
}

// Build assembles the quiz bank. All randomness comes from one generator seeded with
// the seed and the build parameters, so equal inputs give equal banks.
func (s *QuizService) Build(c *corpus.Corpus, opts BuildOptions) (*models.QuizBank, *models.BuildReport, error) {
	if opts.Days < 0 || opts.PerDay < 0 {
		return nil, nil, fmt.Errorf("%w: days=%d per-day=%d", ErrInvalidOptions, opts.Days, opts.PerDay)
	}

	start := opts.StartDate.Format(DateLayout)
	report := &models.BuildReport{
		Source:         c.Source,
		StartDate:      start,
		Days:           opts.Days,
		PerDay:         opts.PerDay,
		EligibleQuotes: len(c.Quotes),
		QuoteSlots:     opts.Days * (1 + max(0, opts.PerDay-3)),
	}
	if report.EligibleQuotes < report.QuoteSlots {
		msg := fmt.Sprintf("only %d eligible quote messages for %d quote slots; repeats may occur",
			report.EligibleQuotes, report.QuoteSlots)
		report.Warnings = append(report.Warnings, msg)
		s.logger.Warn("Quote pool smaller than requested slots",
			zap.Int("eligible_quotes", report.EligibleQuotes),
			zap.Int("quote_slots", report.QuoteSlots))
	}

	rnd := pool.NewRand(pool.SeedPhrase(opts.Seed, start, opts.Days, opts.PerDay))

	// construction order is part of the reproducibility contract
	quotes := pool.NewShuffled(rnd, c.Quotes)
	emojis := pool.BuildEmojiPool(c.Stats, s.thresholds, rnd)
	reactions := pool.BuildReactionPool(c.Stats, s.thresholds, rnd)
	stats := pool.NewStatPool(rnd, emojis, reactions)
	words := pool.NewExhausting(rnd, pool.BuildWordPool(c.Stats, s.thresholds, rnd))

	report.EmojiItems = len(emojis)
	report.ReactionItems = len(reactions)
	report.WordItems = words.Len()

	a := &assembler{counts: c.Stats, quotes: quotes, stats: stats, words: words}
	days := make(map[string][]models.Question, opts.Days)
	for i := 0; i < opts.Days; i++ {
		date := opts.StartDate.AddDate(0, 0, i).Format(DateLayout)
		questions := a.day(date, opts.PerDay)
		days[date] = questions

		report.Questions += len(questions)
		if len(questions) < opts.PerDay {
			report.ShortDays++
		}
	}

	bank := &models.QuizBank{
		GeneratedAt: s.now().UTC().Format(generatedAtLayout),
		Source:      c.Source,
		StartDate:   start,
		DaysCount:   opts.Days,
		PerDay:      opts.PerDay,
		Days:        days,
	}

	s.logger.Info("Quiz bank assembled",
		zap.String("start_date", start),
		zap.Int("days", opts.Days),
		zap.Int("per_day", opts.PerDay),
		zap.Int("questions", report.Questions),
		zap.Int("emoji_items", report.EmojiItems),
		zap.Int("reaction_items", report.ReactionItems),
		zap.Int("word_items", report.WordItems),
		zap.Int("short_days", report.ShortDays))

	return bank, report, nil
}

// Write encodes the bank to outputPath, creating parent directories as needed
func (s *QuizService) Write(bank *models.QuizBank, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := EncodeBank(file, bank); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	s.logger.Info("Wrote quiz bank", zap.String("path", outputPath))
	return nil
}

// EncodeBank writes the bank as indented JSON with non-ASCII text kept as-is
func EncodeBank(w io.Writer, bank *models.QuizBank) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(bank); err != nil {
		return fmt.Errorf("failed to encode quiz bank: %w", err)
	}
	return nil
}

// ReadBank decodes a bank previously written by Write
func ReadBank(path string) (*models.QuizBank, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open quiz bank: %w", err)
	}
	defer file.Close()

	var bank models.QuizBank
	if err := json.NewDecoder(file).Decode(&bank); err != nil {
		return nil, fmt.Errorf("failed to decode quiz bank: %w", err)
	}
	if _, err := ParseStartDate(bank.StartDate); err != nil {
		return nil, err
	}
	return &bank, nil
}
