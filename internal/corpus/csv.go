package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// column names of the export
const (
	colDate   = "Date"
	colSender = "Sender"
	colText   = "Text"
)

// ExportRow is one data row of the CSV export. Malformed rows carry Err and no fields.
type ExportRow struct {
	Line   int
	Date   string
	Sender string
	Text   string
	Err    error
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		cols[strings.TrimSpace(name)] = i
	}
	return cols
}

func field(cols map[string]int, record []string, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// ScanExport calls fn for every data row of a CSV export, in file order. Rows the CSV
// parser rejects are passed with Err set; fn decides whether to skip them.
func ScanExport(r io.Reader, fn func(row ExportRow) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := indexColumns(header)

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}

		row := ExportRow{Line: line}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return fmt.Errorf("failed to read CSV row %d: %w", line, err)
			}
			row.Err = parseErr
		} else {
			row.Date = field(cols, record, colDate)
			row.Sender = field(cols, record, colSender)
			row.Text = field(cols, record, colText)
		}

		if err := fn(row); err != nil {
			return err
		}
	}
}

func (l *Loader) readCSV(r io.Reader, c *Corpus) error {
	return ScanExport(r, func(row ExportRow) error {
		c.Rows++
		if row.Err != nil {
			l.skip(c, row.Line, row.Err.Error())
			return nil
		}

		sender := l.ids.Normalize(row.Sender)
		if !l.ids.Known(sender) {
			l.skip(c, row.Line, "unknown sender")
			return nil
		}
		if _, err := ParseExportDate(row.Date); err != nil {
			l.skip(c, row.Line, "unparsable date")
			return nil
		}

		c.Observe(sender, row.Text, row.Date)
		return nil
	})
}
