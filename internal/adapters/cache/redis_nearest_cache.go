package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mmcloughlin/geohash"
	"github.com/redis/go-redis/v9"

	"gazetteer-service/internal/domain"
	"gazetteer-service/internal/gazetteer"
)

// Geohash precision of cache keys; 12 characters is a cell of a few centimetres.
const keyPrecision = 12

// Redis backed cache for nearest-neighbour results.
// Entries expire after TTL; a zero TTL keeps them until evicted.
type RedisNearestCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisNearestCache(client *redis.Client, ttl time.Duration) *RedisNearestCache {
	return &RedisNearestCache{Client: client, TTL: ttl}
}

type cachedNeighbor struct {
	AncientName string  `json:"ancient_name"`
	ModernName  string  `json:"modern_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Type        string  `json:"type"`
	DistanceKm  float64 `json:"distance_km"`
}

// Key returns the cache key for a nearest query against the catalog with the given fingerprint.
func Key(catalog string, lat, lng float64, k int) string {
	return "nearest:" + catalog + ":" + geohash.EncodeWithPrecision(lat, lng, keyPrecision) + ":" + strconv.Itoa(k)
}

func (c *RedisNearestCache) Get(ctx context.Context, catalog string, lat, lng float64, k int) ([]gazetteer.Neighbor, bool, error) {
	if c.Client == nil {
		return nil, false, errors.New("nearest cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, Key(catalog, lat, lng, k)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("nearest cache: get: %w", err)
	}

	var entries []cachedNeighbor
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, fmt.Errorf("nearest cache: decode entry: %w", err)
	}

	out := make([]gazetteer.Neighbor, 0, len(entries))
	for _, e := range entries {
		out = append(out, gazetteer.Neighbor{
			Settlement: domain.Settlement{
				AncientName: e.AncientName,
				ModernName:  e.ModernName,
				Latitude:    e.Latitude,
				Longitude:   e.Longitude,
				Type:        e.Type,
			},
			DistanceKm: e.DistanceKm,
		})
	}

	return out, true, nil
}

func (c *RedisNearestCache) Put(ctx context.Context, catalog string, lat, lng float64, k int, neighbors []gazetteer.Neighbor) error {
	if c.Client == nil {
		return errors.New("nearest cache: client is nil")
	}

	entries := make([]cachedNeighbor, 0, len(neighbors))
	for _, n := range neighbors {
		entries = append(entries, cachedNeighbor{
			AncientName: n.Settlement.AncientName,
			ModernName:  n.Settlement.ModernName,
			Latitude:    n.Settlement.Latitude,
			Longitude:   n.Settlement.Longitude,
			Type:        n.Settlement.Type,
			DistanceKm:  n.DistanceKm,
		})
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("nearest cache: encode entry: %w", err)
	}

	if err := c.Client.Set(ctx, Key(catalog, lat, lng, k), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("nearest cache: set: %w", err)
	}

	return nil
}
