package ports

import (
	"context"
	"gazetteer-service/internal/gazetteer"
)

// Optional look-aside cache for nearest-neighbour results.
// catalog is the producing gazetteer's Fingerprint; entries never cross catalogs.
// A miss is (nil, false, nil); errors are reported but never authoritative.
type NearestCache interface {
	Get(ctx context.Context, catalog string, lat, lng float64, k int) ([]gazetteer.Neighbor, bool, error)
	Put(ctx context.Context, catalog string, lat, lng float64, k int, neighbors []gazetteer.Neighbor) error
}
