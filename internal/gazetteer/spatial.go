package gazetteer

import (
	"cmp"
	"math"
	"slices"

	"gazetteer-service/internal/domain"
)

// Neighbor is a settlement together with its great-circle distance from a query point.
type Neighbor struct {
	Settlement domain.Settlement
	DistanceKm float64
}

// point builds an R-tree key. Axis 0 is latitude, axis 1 longitude.
func point(lat, lng float64) [2]float64 { return [2]float64{lat, lng} }

// FindWithinBoundingBox returns every settlement inside the closed box, in load order.
//
// The box does not wrap the antimeridian: minLng must not exceed maxLng.
func (g *Gazetteer) FindWithinBoundingBox(minLat, minLng, maxLat, maxLng float64) ([]domain.Settlement, error) {
	const op = "find within bounding box"

	if err := checkRange(op, "latitude", minLat, maxLat, 90); err != nil {
		return nil, err
	}
	if err := checkRange(op, "longitude", minLng, maxLng, 180); err != nil {
		return nil, err
	}

	var positions []int
	g.spatial.Search(point(minLat, minLng), point(maxLat, maxLng), func(_, _ [2]float64, i int) bool {
		positions = append(positions, i)
		return true
	})
	slices.Sort(positions)

	return g.collect(positions), nil
}

func checkRange(op, axis string, lo, hi, limit float64) error {
	switch {
	case math.IsNaN(lo) || math.IsNaN(hi):
		return &domain.InvalidRangeError{Op: op, Axis: axis, Min: lo, Max: hi, Reason: "bound is not a number"}
	case lo > hi:
		return &domain.InvalidRangeError{Op: op, Axis: axis, Min: lo, Max: hi, Reason: "min is greater than max"}
	case lo < -limit || hi > limit:
		return &domain.InvalidRangeError{Op: op, Axis: axis, Min: lo, Max: hi, Reason: "bound outside valid degrees"}
	}
	return nil
}

// FindNearest returns up to k settlements ordered by ascending haversine
// distance from (lat, lng). Equal distances keep load order.
//
// k <= 0 and an invalid query point are *domain.InvalidArgumentError.
// A k larger than Len returns every settlement.
func (g *Gazetteer) FindNearest(lat, lng float64, k int) ([]Neighbor, error) {
	const op = "find nearest"

	if k <= 0 {
		return nil, &domain.InvalidArgumentError{Op: op, Arg: "k", Value: k, Reason: "must be positive"}
	}
	origin := domain.Coordinates{Lon: lng, Lat: lat}
	if !origin.Valid() {
		return nil, &domain.InvalidArgumentError{Op: op, Arg: "point", Value: [2]float64{lat, lng}, Reason: "coordinates out of range"}
	}

	// A full scan is cheap at gazetteer scale and keeps tie-breaking exact.
	all := make([]Neighbor, 0, len(g.records))
	for _, s := range g.records {
		all = append(all, Neighbor{Settlement: s, DistanceKm: Distance(origin, s.Coordinates())})
	}
	slices.SortStableFunc(all, func(a, b Neighbor) int {
		return cmp.Compare(a.DistanceKm, b.DistanceKm)
	})

	if k > len(all) {
		k = len(all)
	}
	return all[:k], nil
}
