package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"KuskoDento/cache"
)

const (
	// CacheExpiry applies to every cached record and listing.
	CacheExpiry = 7 * 24 * time.Hour
)

func recordCacheKey(collection, id string) string {
	return fmt.Sprintf("%s_cache:%s", collection, id)
}

func listCacheKey(collection string) string {
	return fmt.Sprintf("%s_cache:all", collection)
}

func decodeAll[T any](raws []json.RawMessage) ([]T, error) {
	records := make([]T, 0, len(raws))
	for _, raw := range raws {
		var record T
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

func decodeOne[T any](raw json.RawMessage) (*T, error) {
	var record T
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return &record, nil
}

// fromCache returns the decoded value stored under key, or nil on a miss or
// a payload that no longer decodes.
func fromCache[T any](ctx context.Context, c *cache.Cache, key string) *T {
	cached, err := c.Get(ctx, key)
	if err != nil || cached == "" {
		return nil
	}
	var value T
	if err := json.Unmarshal([]byte(cached), &value); err != nil {
		return nil
	}
	return &value
}

// toCache stores value under key. Cache writes are best effort: a failure is
// logged and the caller proceeds with the store result.
func toCache(ctx context.Context, c *cache.Cache, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.Set(ctx, key, payload, CacheExpiry); err != nil {
		log.Printf("Failed to cache %s: %v", key, err)
	}
}
