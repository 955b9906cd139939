package normalize

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Aliases maps colloquial or abbreviated names to canonical forms for team
// and competition text. The tables live in a YAML data file so new aliases
// need no code change.
type Aliases struct {
	Teams        map[string]string `yaml:"teams"`
	Competitions map[string]string `yaml:"competitions"`

	teamOrder []string
	compOrder []string
}

// LoadAliases reads the alias tables from a YAML file.
func LoadAliases(path string) (*Aliases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read aliases file: %w", err)
	}
	var a Aliases
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse aliases file: %w", err)
	}
	a.buildOrder()
	return &a, nil
}

// NewAliases builds alias tables from in-memory maps (tests, defaults).
func NewAliases(teams, competitions map[string]string) *Aliases {
	a := &Aliases{Teams: teams, Competitions: competitions}
	a.buildOrder()
	return a
}

// buildOrder fixes a deterministic replacement order: longest alias first
// so "man united" wins over "man", ties broken alphabetically.
func (a *Aliases) buildOrder() {
	a.teamOrder = orderedKeys(a.Teams)
	a.compOrder = orderedKeys(a.Competitions)
}

func orderedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

func (a *Aliases) applyTeams(text string) string {
	if a == nil {
		return text
	}
	return applyTable(text, a.teamOrder, a.Teams)
}

func (a *Aliases) applyCompetitions(text string) string {
	if a == nil {
		return text
	}
	return applyTable(text, a.compOrder, a.Competitions)
}

// applyTable does plain substring replacement of every alias token found in
// the already-folded text.
func applyTable(text string, order []string, table map[string]string) string {
	for _, alias := range order {
		canonical := table[alias]
		if alias == canonical {
			continue
		}
		if strings.Contains(text, alias) {
			text = strings.ReplaceAll(text, alias, canonical)
		}
	}
	return text
}
