package corpus

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"quizbank/internal/models"
)

// Format is the layout of an input file
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
)

// ErrUnknownFormat is returned for an unsupported --format value
var ErrUnknownFormat = errors.New("unknown input format")

// exportDateLayout matches "02/11/2026 9:05:03 PM" style export dates
const exportDateLayout = "1/2/2006 3:04:05 PM"

var cleanTimestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DetectFormat picks the format from the file extension
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return FormatJSONL
	}
	return FormatCSV
}

// ParseFormat resolves a user supplied format name; "" and "auto" detect from path
func ParseFormat(name, path string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return DetectFormat(path), nil
	case "csv":
		return FormatCSV, nil
	case "jsonl", "ndjson":
		return FormatJSONL, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ParseExportDate parses the Date column of the CSV export
func ParseExportDate(s string) (time.Time, error) {
	return time.Parse(exportDateLayout, strings.TrimSpace(s))
}

func parseCleanTimestamp(s string) bool {
	for _, layout := range cleanTimestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// Loader reads message exports into a Corpus
type Loader struct {
	ids    models.Identities
	logger *zap.Logger
}

// NewLoader creates a loader for the given participants
func NewLoader(ids models.Identities, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{ids: ids, logger: logger}
}

// Load reads the file at path in the given format
func (l *Loader) Load(path string, format Format) (*Corpus, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	c, err := l.Read(file, format)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	c.Source = filepath.Base(path)

	l.logger.Info("Corpus loaded",
		zap.String("source", c.Source),
		zap.String("format", string(format)),
		zap.Int("rows", c.Rows),
		zap.Int("skipped", c.Skipped),
		zap.Int("reactions", c.Reactions),
		zap.Int("quotes", len(c.Quotes)))
	return c, nil
}

// Read scans r in one pass, feeding both the counters and the quote list
func (l *Loader) Read(r io.Reader, format Format) (*Corpus, error) {
	c := NewCorpus(l.ids)

	var err error
	switch format {
	case FormatCSV:
		err = l.readCSV(r, c)
	case FormatJSONL:
		err = l.readJSONL(r, c)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (l *Loader) skip(c *Corpus, line int, reason string) {
	c.Skipped++
	l.logger.Debug("Skipping row", zap.Int("line", line), zap.String("reason", reason))
}
