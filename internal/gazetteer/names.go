package gazetteer

import (
	"slices"
	"sort"
	"strings"

	"gazetteer-service/internal/domain"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MatchMode selects how FindByName compares the query to names.
type MatchMode int

const (
	// MatchExact is case-sensitive equality with the ancient or modern name.
	MatchExact MatchMode = iota
	// MatchCaseInsensitive is equality after Unicode case folding.
	MatchCaseInsensitive
	// MatchPrefix and MatchSubstring compare case-folded names.
	MatchPrefix
	MatchSubstring
)

func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchCaseInsensitive:
		return "ci"
	case MatchPrefix:
		return "prefix"
	case MatchSubstring:
		return "substring"
	default:
		return "unknown"
	}
}

// ParseMatchMode maps the textual forms used by the HTTP API and CLI.
// An empty string means MatchCaseInsensitive.
func ParseMatchMode(s string) (MatchMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact":
		return MatchExact, true
	case "", "ci", "case-insensitive", "caseinsensitive":
		return MatchCaseInsensitive, true
	case "prefix":
		return MatchPrefix, true
	case "substring", "contains":
		return MatchSubstring, true
	default:
		return 0, false
	}
}

// nameIndex maps folded ancient and modern names to record positions.
type nameIndex struct {
	byKey map[string][]int
	keys  []string // sorted, for prefix search
}

// fold normalizes a name for case-insensitive comparison.
// A Caser is stateful, so one is created per call.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

func newNameIndex(records []domain.Settlement) nameIndex {
	idx := nameIndex{byKey: make(map[string][]int, 2*len(records))}

	add := func(key string, pos int) {
		ps := idx.byKey[key]
		if len(ps) > 0 && ps[len(ps)-1] == pos {
			return
		}
		if len(ps) == 0 {
			idx.keys = append(idx.keys, key)
		}
		idx.byKey[key] = append(ps, pos)
	}

	for i, s := range records {
		add(fold(s.AncientName), i)
		add(fold(s.ModernName), i)
	}

	sort.Strings(idx.keys)
	return idx
}

// FindByName returns all settlements whose ancient or modern name matches text.
//
// Names are not unique, so the result may hold several records; it is in load
// order with each record at most once. A blank text or an unknown mode is a
// *domain.InvalidArgumentError; no match is an empty slice.
func (g *Gazetteer) FindByName(text string, mode MatchMode) ([]domain.Settlement, error) {
	const op = "find by name"

	query := strings.TrimSpace(text)
	if query == "" {
		return nil, &domain.InvalidArgumentError{Op: op, Arg: "text", Value: text, Reason: "must not be blank"}
	}
	key := fold(query)

	var positions []int
	switch mode {
	case MatchExact:
		for _, i := range g.names.byKey[key] {
			s := g.records[i]
			if s.AncientName == query || s.ModernName == query {
				positions = append(positions, i)
			}
		}
	case MatchCaseInsensitive:
		positions = g.names.byKey[key]
	case MatchPrefix:
		start := sort.SearchStrings(g.names.keys, key)
		for _, k := range g.names.keys[start:] {
			if !strings.HasPrefix(k, key) {
				break
			}
			positions = append(positions, g.names.byKey[k]...)
		}
		positions = sortedUnique(positions)
	case MatchSubstring:
		for _, k := range g.names.keys {
			if strings.Contains(k, key) {
				positions = append(positions, g.names.byKey[k]...)
			}
		}
		positions = sortedUnique(positions)
	default:
		return nil, &domain.InvalidArgumentError{Op: op, Arg: "mode", Value: int(mode), Reason: "unknown match mode"}
	}

	return g.collect(positions), nil
}

func sortedUnique(ps []int) []int {
	slices.Sort(ps)
	return slices.Compact(ps)
}
