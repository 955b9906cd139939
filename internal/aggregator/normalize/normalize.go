package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases, trims, collapses whitespace and strips diacritics so
// provider spellings of the same name compare equal. Display strings are
// never folded in place; callers fold copies for comparison only.
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if out, _, err := transform.String(diacriticFolder, s); err == nil {
		s = out
	}
	return strings.Join(strings.Fields(s), " ")
}

// SplitTeams splits a "<home> - <away>" label into its two team tokens,
// tolerating the en-dash some providers use. Labels that do not split into
// exactly two parts (e.g. hyphenated team names) report ok=false and are
// compared as whole strings instead.
func SplitTeams(match string) (home, away string, ok bool) {
	m := strings.ReplaceAll(match, "–", "-")
	parts := strings.Split(m, "-")
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

// Normalizer canonicalizes text fields for comparison, applying the alias
// tables on top of folding.
type Normalizer struct {
	aliases *Aliases
}

func New(aliases *Aliases) *Normalizer {
	if aliases == nil {
		aliases = &Aliases{}
	}
	return &Normalizer{aliases: aliases}
}

// Team canonicalizes a single team name or team query.
func (n *Normalizer) Team(s string) string {
	return n.aliases.applyTeams(Fold(s))
}

// MatchText canonicalizes a composite "<home> - <away>" label.
func (n *Normalizer) MatchText(s string) string {
	return n.aliases.applyTeams(Fold(s))
}

// Competition canonicalizes a competition or league label.
func (n *Normalizer) Competition(s string) string {
	return n.aliases.applyCompetitions(Fold(s))
}
