package estimate_test

import (
	"context"
	"testing"
	"time"

	"github.com/flowstage/xplat-exec-core/internal/estimate"
)

type fakeCache struct {
	entries map[string]string
	gets    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	c.gets++
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.sets++
	c.entries[key] = value
	return nil
}

func TestLoadSelectivityCachedMissThenHitAvoidsSecondLookup(t *testing.T) {
	cache := newFakeCache()
	lookups := 0
	lookup := func(string) (string, bool) {
		lookups++
		return `{"type":"juel","p":0.9,"lower":0.3,"upper":0.5,"coeff":0}`, true
	}

	pie, ok, err := estimate.LoadSelectivityCached(context.Background(), cache, lookup, "op.dedup.selectivity")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true")
	}
	if lookups != 1 || cache.sets != 1 {
		t.Fatalf("expected one underlying lookup and one cache write, got lookups=%d sets=%d", lookups, cache.sets)
	}

	pie2, ok, err := estimate.LoadSelectivityCached(context.Background(), cache, lookup, "op.dedup.selectivity")
	if err != nil {
		t.Fatalf("unexpected error on cached read: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true on cached read")
	}
	if lookups != 1 {
		t.Fatalf("expected cache hit to avoid a second underlying lookup, got lookups=%d", lookups)
	}
	if !pie.Equal(pie2) {
		t.Fatalf("cached read produced a different PIE: %+v vs %+v", pie, pie2)
	}
}

func TestLoadSelectivityCachedMissingKeyIsSoft(t *testing.T) {
	cache := newFakeCache()
	lookup := func(string) (string, bool) { return "", false }

	_, ok, err := estimate.LoadSelectivityCached(context.Background(), cache, lookup, "missing.key")
	if err != nil {
		t.Fatalf("missing key should not be an error, got %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for a missing key")
	}
	if cache.sets != 0 {
		t.Fatal("a missing key must not populate the cache")
	}
}

func TestLoadSelectivityCachedMalformedIsHardError(t *testing.T) {
	cache := newFakeCache()
	lookup := func(string) (string, bool) { return `{"type":"bogus"}`, true }

	_, ok, err := estimate.LoadSelectivityCached(context.Background(), cache, lookup, "some.key")
	if err == nil {
		t.Fatal("expected an error for a malformed specification")
	}
	if ok {
		t.Fatal("expected ok=false alongside the error")
	}
	if cache.sets != 0 {
		t.Fatal("a parse failure must not populate the cache")
	}
}

func TestLoadSelectivityCachedHitSkipsUnderlyingLookup(t *testing.T) {
	cache := newFakeCache()
	cache.entries["k"] = `{"type":"juel","p":0.2,"lower":0.1,"upper":0.3,"coeff":0}`
	lookup := func(string) (string, bool) {
		t.Fatal("underlying lookup must not be called on a cache hit")
		return "", false
	}

	_, ok, err := estimate.LoadSelectivityCached(context.Background(), cache, lookup, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true")
	}
}
