package service

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"quizbank/internal/corpus"
	"quizbank/internal/models"
)

// CleanResult summarizes one export clean
type CleanResult struct {
	Rows    int
	Written int
	Skipped int
}

// CleanService converts the raw CSV export into the cleaned JSONL format
type CleanService struct {
	ids    models.Identities
	logger *zap.Logger
}

// NewCleanService creates a new clean service
func NewCleanService(ids models.Identities, logger *zap.Logger) *CleanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CleanService{ids: ids, logger: logger}
}

// CleanFile reads the export at inputPath and writes JSONL to outputPath
func (s *CleanService) CleanFile(inputPath, outputPath string) (CleanResult, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return CleanResult{}, fmt.Errorf("failed to open export: %w", err)
	}
	defer in.Close()

	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return CleanResult{}, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return CleanResult{}, fmt.Errorf("failed to create output file: %w", err)
	}

	result, err := s.Clean(in, out)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close output file: %w", closeErr)
	}
	if err != nil {
		return result, err
	}

	s.logger.Info("Export cleaned",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Int("rows", result.Rows),
		zap.Int("written", result.Written),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// Clean writes one JSON line per export row with a parsable date. Senders are
// normalized loosely, so rows from unknown senders are kept under their raw identity.
func (s *CleanService) Clean(r io.Reader, w io.Writer) (CleanResult, error) {
	var result CleanResult
	bw := bufio.NewWriter(w)
	encoder := json.NewEncoder(bw)
	encoder.SetEscapeHTML(false)

	err := corpus.ScanExport(r, func(row corpus.ExportRow) error {
		result.Rows++
		if row.Err != nil {
			result.Skipped++
			s.logger.Debug("Skipping malformed row", zap.Int("line", row.Line), zap.Error(row.Err))
			return nil
		}

		msg, ok := s.cleanRow(row)
		if !ok {
			result.Skipped++
			s.logger.Debug("Skipping row with unparsable date", zap.Int("line", row.Line))
			return nil
		}
		if err := encoder.Encode(msg); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row.Line, err)
		}
		result.Written++
		return nil
	})
	if err != nil {
		return result, err
	}
	if err := bw.Flush(); err != nil {
		return result, fmt.Errorf("failed to flush output: %w", err)
	}
	return result, nil
}

func (s *CleanService) cleanRow(row corpus.ExportRow) (models.CleanMessage, bool) {
	dt, err := corpus.ParseExportDate(row.Date)
	if err != nil {
		return models.CleanMessage{}, false
	}
	return models.CleanMessage{
		Date:          dt.Format("2006-01-02"),
		Time:          dt.Format("15:04:05"),
		User:          string(s.ids.NormalizeLoose(row.Sender)),
		Text:          row.Text,
		DatetimeLocal: dt.Format("2006-01-02T15:04:05"),
	}, true
}
