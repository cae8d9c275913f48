package corpus

import "strings"

// ReactionKind is the tapback type reported by a system reaction line
type ReactionKind string

const (
	ReactionLoved      ReactionKind = "Loved"
	ReactionLaughed    ReactionKind = "Laughed"
	ReactionLiked      ReactionKind = "Liked"
	ReactionEmphasized ReactionKind = "Emphasized"
	ReactionDisliked   ReactionKind = "Disliked"
)

// reactionPrefixes lists, per kind, the prefixes of the system line in both quote styles.
// Order matters: the first match wins.
var reactionPrefixes = []struct {
	kind     ReactionKind
	prefixes []string
}{
	{ReactionLoved, []string{"Loved “", "Loved \""}},
	{ReactionLaughed, []string{"Laughed at “", "Laughed at \""}},
	{ReactionLiked, []string{"Liked “", "Liked \""}},
	{ReactionEmphasized, []string{"Emphasized “", "Emphasized \""}},
	{ReactionDisliked, []string{"Disliked “", "Disliked \""}},
}

// ReactionKinds returns every kind the classifier can report
func ReactionKinds() []ReactionKind {
	kinds := make([]ReactionKind, 0, len(reactionPrefixes))
	for _, rp := range reactionPrefixes {
		kinds = append(kinds, rp.kind)
	}
	return kinds
}

// ClassifyReaction reports whether text is a system reaction line and which kind it is
func ClassifyReaction(text string) (ReactionKind, bool) {
	t := strings.TrimSpace(text)
	for _, rp := range reactionPrefixes {
		for _, p := range rp.prefixes {
			if strings.HasPrefix(t, p) {
				return rp.kind, true
			}
		}
	}
	return "", false
}

// Verb returns the past-tense phrase used in questions about this reaction
func (k ReactionKind) Verb() string {
	switch k {
	case ReactionLaughed:
		return "laughed at"
	default:
		return strings.ToLower(string(k))
	}
}
