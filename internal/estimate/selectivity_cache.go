package estimate

import (
	"context"
	"log"
	"time"
)

// SpecificationCache is the subset of speccache.Cache this package
// depends on, declared locally to avoid importing internal/speccache
// (which would be a needless dependency for callers that never cache).
type SpecificationCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// LoadSelectivityCached behaves like LoadSelectivity, but consults cache
// before calling getProperty and populates it on a cache miss. A caller
// using speccache.Noop gets identical behavior to LoadSelectivity.
func LoadSelectivityCached(ctx context.Context, cache SpecificationCache, getProperty func(key string) (string, bool), key string) (PIE, bool, error) {
	if raw, hit, err := cache.Get(ctx, key); err == nil && hit {
		pie, err := ParseSpec(key, raw)
		if err != nil {
			return PIE{}, false, err
		}
		return pie, true, nil
	} else if err != nil {
		log.Printf("[WARN] estimate: specification cache read failed for %q: %v", key, err)
	}

	raw, present := getProperty(key)
	if !present {
		log.Printf("[WARN] estimate: %v", &MissingSpecificationError{Key: key})
		return PIE{}, false, nil
	}
	pie, err := ParseSpec(key, raw)
	if err != nil {
		return PIE{}, false, err
	}
	if err := cache.Set(ctx, key, raw, 0); err != nil {
		log.Printf("[WARN] estimate: specification cache write failed for %q: %v", key, err)
	}
	return pie, true, nil
}
