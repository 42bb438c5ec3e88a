package services

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"

	"gazetteer-service/internal/domain"
	"gazetteer-service/internal/gazetteer"
	"gazetteer-service/internal/platform/obs"
	"gazetteer-service/internal/ports"
)

// NearestFinder answers nearest-neighbour queries against a gazetteer,
// consulting an optional cache first. Identical concurrent lookups share one computation.
//
// Cache entries are scoped to the gazetteer's Fingerprint. A hit may have been
// filled by a nearby point in the same geohash cell, so distances are recomputed
// for the actual query point before returning.
//
// The cache is never authoritative: read and write failures are logged and counted,
// and the gazetteer answers instead.
type NearestFinder struct {
	g     *gazetteer.Gazetteer
	cache ports.NearestCache
	group singleflight.Group
}

// NewNearestFinder wraps g. cache may be nil.
func NewNearestFinder(g *gazetteer.Gazetteer, cache ports.NearestCache) *NearestFinder {
	return &NearestFinder{g: g, cache: cache}
}

func (f *NearestFinder) Find(ctx context.Context, lat, lng float64, k int) (_ []gazetteer.Neighbor, err error) {
	start := time.Now()
	var n int
	defer func() { obs.Observe("nearest", start, n, err) }()

	// Invalid arguments and empty gazetteers never reach the cache.
	valid := k > 0 && domain.Coordinates{Lon: lng, Lat: lat}.Valid()
	if !valid || f.g.Len() == 0 {
		res, err := f.g.FindNearest(lat, lng, k)
		n = len(res)
		return res, err
	}
	if k > f.g.Len() {
		k = f.g.Len()
	}

	key := fmt.Sprintf("%v:%v:%d", lat, lng, k)
	v, err, shared := f.group.Do(key, func() (any, error) {
		return f.lookup(ctx, lat, lng, k)
	})
	if err != nil {
		return nil, err
	}

	res := v.([]gazetteer.Neighbor)
	if shared {
		slog.DebugContext(ctx, "nearest lookup shared", "lat", lat, "lng", lng, "k", k)
		res = slices.Clone(res)
	}
	n = len(res)
	return res, nil
}

func (f *NearestFinder) lookup(ctx context.Context, lat, lng float64, k int) ([]gazetteer.Neighbor, error) {
	catalog := f.g.Fingerprint()

	if f.cache != nil {
		cached, ok, err := f.cache.Get(ctx, catalog, lat, lng, k)
		switch {
		case err != nil:
			obs.CacheErrorsTotal.Inc()
			slog.WarnContext(ctx, "nearest cache read failed", "err", err)
		case ok:
			obs.CacheHitsTotal.Inc()
			return remeasure(lat, lng, cached), nil
		default:
			obs.CacheMissesTotal.Inc()
		}
	}

	res, err := f.g.FindNearest(lat, lng, k)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		if err := f.cache.Put(ctx, catalog, lat, lng, k, res); err != nil {
			obs.CacheErrorsTotal.Inc()
			slog.WarnContext(ctx, "nearest cache write failed", "err", err)
		}
	}

	return res, nil
}

// remeasure recomputes each distance from (lat, lng) and restores ascending order.
func remeasure(lat, lng float64, neighbors []gazetteer.Neighbor) []gazetteer.Neighbor {
	origin := domain.Coordinates{Lon: lng, Lat: lat}
	out := make([]gazetteer.Neighbor, len(neighbors))
	for i, nb := range neighbors {
		out[i] = gazetteer.Neighbor{Settlement: nb.Settlement, DistanceKm: gazetteer.Distance(origin, nb.Settlement.Coordinates())}
	}
	slices.SortStableFunc(out, func(a, b gazetteer.Neighbor) int {
		return cmp.Compare(a.DistanceKm, b.DistanceKm)
	})
	return out
}
