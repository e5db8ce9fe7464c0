// Package speccache provides an optional cache for the raw selectivity
// specification strings read from configuration, keyed by configuration
// key. Design Notes §9 treats the original "load-profile-estimator cache"
// as an open question: this package exposes the hook but defaults to an
// always-miss implementation, so behavior is unchanged unless a caller
// opts into a real cache.
package speccache

import (
	"context"
	"time"
)

// Cache looks up and stores raw selectivity specification strings by
// configuration key, so repeated lookups of the same key need not
// round-trip to the underlying configuration provider. Parsing the
// cached string into a PIE is always the caller's responsibility
// (internal/estimate.ParseSpec) -- this package knows nothing about the
// specification format.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Noop is a Cache that never stores anything and always misses. It is the
// default used when a scheduler driver is not given an explicit cache.
type Noop struct{}

// Get always reports a miss.
func (Noop) Get(context.Context, string) (string, bool, error) {
	return "", false, nil
}

// Set discards value.
func (Noop) Set(context.Context, string, string, time.Duration) error { return nil }
