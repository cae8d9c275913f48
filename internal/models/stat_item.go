package models

import "strings"

// StatKind identifies which counter a stat item refers to
type StatKind string

const (
	StatEmoji    StatKind = "emoji"
	StatReaction StatKind = "reaction"
	StatWord     StatKind = "word"
)

// StatItem is a quizzable target with a clear winner
type StatItem struct {
	Kind        StatKind
	Key         string
	Winner      Sender
	WinnerCount int
	Margin      int
}

// StatTag encodes a target as "<kind>:<key>"
func StatTag(kind StatKind, key string) string {
	return string(kind) + ":" + key
}

// ParseStatTag splits a tag produced by StatTag
func ParseStatTag(tag string) (StatKind, string, bool) {
	kind, key, ok := strings.Cut(tag, ":")
	if !ok {
		return "", "", false
	}
	switch StatKind(kind) {
	case StatEmoji, StatReaction, StatWord:
		return StatKind(kind), key, true
	}
	return "", "", false
}
