package corpus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"quizbank/internal/models"
)

const maxJSONLLine = 16 * 1024 * 1024

func (l *Loader) readJSONL(r io.Reader, c *Corpus) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxJSONLLine)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		c.Rows++

		var msg models.CleanMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			l.skip(c, line, "malformed JSON")
			continue
		}

		sender := l.ids.Normalize(msg.User)
		if !l.ids.Known(sender) {
			l.skip(c, line, "unknown sender")
			continue
		}
		ts := msg.Timestamp()
		if !parseCleanTimestamp(ts) {
			l.skip(c, line, "unparsable date")
			continue
		}

		c.Observe(sender, msg.Text, ts)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to scan JSONL: %w", err)
	}
	return nil
}
