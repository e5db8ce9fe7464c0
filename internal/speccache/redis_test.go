package speccache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/flowstage/xplat-exec-core/internal/speccache"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func TestRedisCacheMissThenHit(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	cache := speccache.NewRedisCache(client)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "op.dedup.selectivity")
	if err != nil {
		t.Fatalf("unexpected error on miss: %v", err)
	}
	if ok {
		t.Fatal("expected a miss before any Set")
	}

	raw := `{"type":"juel","p":0.9,"lower":0.3,"upper":0.5,"coeff":0}`
	if err := cache.Set(ctx, "op.dedup.selectivity", raw, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := cache.Get(ctx, "op.dedup.selectivity")
	if err != nil {
		t.Fatalf("unexpected error on hit: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit after Set")
	}
	if got != raw {
		t.Fatalf("got %q, want %q", got, raw)
	}
}

func TestRedisCacheKeysAreIndependent(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	cache := speccache.NewRedisCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "a", `{"type":"juel","p":1,"lower":0,"upper":1}`, 0); err != nil {
		t.Fatalf("Set a: %v", err)
	}
	_, ok, err := cache.Get(ctx, "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected key b to still miss after only setting key a")
	}
}
