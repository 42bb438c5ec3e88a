// Package gazetteer holds a validated, read-only collection of settlements and
// answers name, type and spatial lookups over it.
//
// A Gazetteer is built once from a batch of candidates and never mutated
// afterwards, so every query method is safe for concurrent use without locking.
package gazetteer

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"gazetteer-service/internal/domain"

	"github.com/tidwall/rtree"
)

// Gazetteer is the query surface over one validated batch of settlements.
type Gazetteer struct {
	records []domain.Settlement
	byID    map[domain.Identity]int

	names     nameIndex
	byType    map[string][]int
	typeOrder []string

	spatial rtree.RTreeG[int]

	fingerprint string
}

// TypeCount is a settlement type tag and the number of records carrying it.
type TypeCount struct {
	Type  string
	Count int
}

// New validates candidates and builds a Gazetteer.
//
// Validation is strict: if any candidate violates a record invariant, New
// returns a *domain.ValidationError listing every offending candidate and no
// Gazetteer. Load order is preserved and is the tie-break order for all queries.
func New(candidates []domain.Candidate) (*Gazetteer, error) {
	records, err := domain.ValidateStrict(candidates)
	if err != nil {
		return nil, err
	}

	g := &Gazetteer{
		records: records,
		byID:    make(map[domain.Identity]int, len(records)),
		names:   newNameIndex(records),
		byType:  make(map[string][]int),
	}

	for i, s := range records {
		g.byID[s.ID()] = i

		if _, ok := g.byType[s.Type]; !ok {
			g.typeOrder = append(g.typeOrder, s.Type)
		}
		g.byType[s.Type] = append(g.byType[s.Type], i)

		pt := point(s.Latitude, s.Longitude)
		g.spatial.Insert(pt, pt, i)
	}

	g.fingerprint = fingerprint(records)
	return g, nil
}

// fingerprint hashes every record field in load order.
func fingerprint(records []domain.Settlement) string {
	h := sha256.New()
	var buf []byte
	for _, s := range records {
		buf = buf[:0]
		buf = strconv.AppendQuote(buf, s.AncientName)
		buf = strconv.AppendQuote(buf, s.ModernName)
		buf = strconv.AppendFloat(buf, s.Latitude, 'g', -1, 64)
		buf = append(buf, ',')
		buf = strconv.AppendFloat(buf, s.Longitude, 'g', -1, 64)
		buf = strconv.AppendQuote(buf, s.Type)
		buf = append(buf, '\n')
		h.Write(buf)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Fingerprint identifies the catalog content. Gazetteers built from the same
// records in the same order share a fingerprint.
func (g *Gazetteer) Fingerprint() string { return g.fingerprint }

// All returns every settlement in load order. The slice is a copy.
func (g *Gazetteer) All() []domain.Settlement {
	out := make([]domain.Settlement, len(g.records))
	copy(out, g.records)
	return out
}

func (g *Gazetteer) Len() int { return len(g.records) }

// Get looks a settlement up by its composite identity.
func (g *Gazetteer) Get(id domain.Identity) (domain.Settlement, bool) {
	i, ok := g.byID[id]
	if !ok {
		return domain.Settlement{}, false
	}
	return g.records[i], true
}

// FindByType returns all settlements whose type equals tag exactly (case-sensitive).
func (g *Gazetteer) FindByType(tag string) []domain.Settlement {
	return g.collect(g.byType[tag])
}

// Types lists the distinct type tags in order of first appearance.
func (g *Gazetteer) Types() []TypeCount {
	out := make([]TypeCount, 0, len(g.typeOrder))
	for _, t := range g.typeOrder {
		out = append(out, TypeCount{Type: t, Count: len(g.byType[t])})
	}
	return out
}

// collect materializes positions, which must be ascending, into settlements.
func (g *Gazetteer) collect(positions []int) []domain.Settlement {
	out := make([]domain.Settlement, 0, len(positions))
	for _, i := range positions {
		out = append(out, g.records[i])
	}
	return out
}
