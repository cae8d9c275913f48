package models

import "strings"

// Participant describes how raw export identifiers map to one canonical sender
type Participant struct {
	Name        Sender   `yaml:"name"`
	EmailPrefix string   `yaml:"email_prefix"`
	Phones      []string `yaml:"phones"`
}

// matches reports whether the trimmed raw identifier belongs to the participant
func (p Participant) matches(raw string) bool {
	if p.Name == "" {
		return false
	}
	lower := strings.ToLower(raw)
	if p.EmailPrefix != "" && strings.HasPrefix(lower, strings.ToLower(p.EmailPrefix)) {
		return true
	}
	compact := strings.ReplaceAll(raw, " ", "")
	for _, phone := range p.Phones {
		if compact == strings.ReplaceAll(phone, " ", "") {
			return true
		}
	}
	return lower == strings.ToLower(string(p.Name))
}

// Identities holds the two participants of the conversation
type Identities struct {
	A Participant `yaml:"a"`
	B Participant `yaml:"b"`
}

// Normalize maps a raw sender to a canonical sender. Unknown identifiers are
// lowercased and returned as-is; callers check Known before using them.
func (ids Identities) Normalize(raw string) Sender {
	s := strings.TrimSpace(raw)
	if ids.A.matches(s) {
		return ids.A.Name
	}
	if ids.B.matches(s) {
		return ids.B.Name
	}
	return Sender(strings.ToLower(s))
}

// NormalizeLoose is Normalize with extra fallbacks for the cleaned export:
// email addresses collapse to their local part and phone numbers stay verbatim
func (ids Identities) NormalizeLoose(raw string) Sender {
	s := strings.TrimSpace(raw)
	if ids.A.matches(s) {
		return ids.A.Name
	}
	if ids.B.matches(s) {
		return ids.B.Name
	}
	if local, _, ok := strings.Cut(s, "@"); ok {
		return Sender(strings.ToLower(local))
	}
	if strings.HasPrefix(s, "+") {
		return Sender(s)
	}
	return Sender(strings.ToLower(s))
}

// Known reports whether sender is one of the two participants
func (ids Identities) Known(sender Sender) bool {
	return sender != "" && (sender == ids.A.Name || sender == ids.B.Name)
}
