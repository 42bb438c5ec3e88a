package gazetteer

import (
	"strings"

	"gazetteer-service/internal/domain"
)

// DefaultDuplicateRadiusKm is the proximity threshold used when none is given.
const DefaultDuplicateRadiusKm = 50.0

// Ordered longest first so the longest matching suffix is removed.
var demonymSuffixes = []string{"iots", "ians", "ites", "ian", "ese", "ite", "iot", "s"}

// DuplicateCandidates reports groups of records that look like the same place
// entered twice: similar names (equal stems once a demonym suffix is removed,
// or one folded name a prefix or substring of the other) lying within
// maxDistanceKm of the group's first record.
//
// Only groups with two or more members are returned, ordered by their first
// member's load position. The gazetteer itself is not changed; distinct places
// sharing a name, like the two Naxos records, are far apart and not grouped.
func (g *Gazetteer) DuplicateCandidates(maxDistanceKm float64) ([][]domain.Settlement, error) {
	if !(maxDistanceKm > 0) {
		return nil, &domain.InvalidArgumentError{
			Op: "duplicate candidates", Arg: "maxDistanceKm", Value: maxDistanceKm, Reason: "must be positive",
		}
	}

	folded := make([]string, len(g.records))
	stems := make([]string, len(g.records))
	for i, s := range g.records {
		folded[i] = fold(s.AncientName)
		stems[i] = stem(folded[i])
	}

	used := make([]bool, len(g.records))
	var groups [][]domain.Settlement

	for i := range g.records {
		if used[i] {
			continue
		}

		members := []int{i}
		for j := i + 1; j < len(g.records); j++ {
			if used[j] {
				continue
			}
			if !similarNames(folded[i], stems[i], folded[j], stems[j]) {
				continue
			}
			if Distance(g.records[i].Coordinates(), g.records[j].Coordinates()) >= maxDistanceKm {
				continue
			}
			members = append(members, j)
			used[j] = true
		}

		if len(members) > 1 {
			used[i] = true
			groups = append(groups, g.collect(members))
		}
	}

	return groups, nil
}

func stem(name string) string {
	for _, suffix := range demonymSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok {
			return base
		}
	}
	return name
}

func similarNames(a, stemA, b, stemB string) bool {
	return stemA == stemB ||
		strings.HasPrefix(a, b) || strings.HasPrefix(b, a) ||
		strings.Contains(a, b) || strings.Contains(b, a)
}
