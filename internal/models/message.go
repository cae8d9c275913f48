package models

// Sender is the canonical identity of one of the two participants
type Sender string

// Message represents one normalized row of the message export
type Message struct {
	Sender       Sender
	Text         string
	RawTimestamp string
	IsReaction   bool
}

// CleanMessage is one line of the cleaned JSONL export
type CleanMessage struct {
	Date          string `json:"date"`
	Time          string `json:"time"`
	User          string `json:"user"`
	Text          string `json:"text"`
	DatetimeLocal string `json:"datetime_local"`
}

// Timestamp returns the display timestamp of a cleaned line, preferring
// "<date> <time>" and falling back to datetime_local
func (m CleanMessage) Timestamp() string {
	ts := m.Date + " " + m.Time
	if ts = trimSpace(ts); ts != "" {
		return ts
	}
	return trimSpace(m.DatetimeLocal)
}
