// Package cache provides response caching for enumeration and layout
// results.
//
// Enumeration and layout are pure functions of their inputs, so results may
// be memoized indefinitely; cache keys hash the full input tuple. Three
// backends are provided:
//
//   - [FileCache]: directory-backed cache for CLI usage
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: no-op cache for tests and --no-cache
//
// Values are opaque byte slices; callers serialize their own payloads.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArrangementKeyOpts identifies an enumeration result.
type ArrangementKeyOpts struct {
	N    int    `json:"n"`
	R    int    `json:"r"`
	Mode string `json:"mode"`
}

// PlanKeyOpts identifies a layout computation.
type PlanKeyOpts struct {
	Kind     string  `json:"kind"`
	Count    int     `json:"count"`
	CardsPer int     `json:"cards_per"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// ComparisonKeyOpts identifies a four-mode comparison build.
type ComparisonKeyOpts struct {
	N      int     `json:"n"`
	R      int     `json:"r"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ArtifactKeyOpts identifies a rendered artifact. A plan is pure geometry,
// so the plan hash alone cannot tell two selections with identical layouts
// apart; the selection identity and title must be part of the key.
type ArtifactKeyOpts struct {
	N        int    `json:"n"`
	R        int    `json:"r"`
	Mode     string `json:"mode"`
	Compare  bool   `json:"compare"`
	Title    string `json:"title"`
	PlanHash string `json:"plan_hash"`
	Format   string `json:"format"`
}

// Keyer generates cache keys for the cacheable operations.
type Keyer interface {
	// ArrangementKey generates a key for enumeration results.
	ArrangementKey(opts ArrangementKeyOpts) string

	// PlanKey generates a key for layout plans.
	PlanKey(opts PlanKeyOpts) string

	// ComparisonKey generates a key for comparison builds.
	ComparisonKey(opts ComparisonKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator. Keys are prefixed by operation
// and hash the full option struct, so any input change misses cleanly.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArrangementKey generates a key for enumeration results.
func (k *DefaultKeyer) ArrangementKey(opts ArrangementKeyOpts) string {
	return hashKey("arrangements", opts)
}

// PlanKey generates a key for layout plans.
func (k *DefaultKeyer) PlanKey(opts PlanKeyOpts) string {
	return hashKey("plan", opts)
}

// ComparisonKey generates a key for comparison builds.
func (k *DefaultKeyer) ComparisonKey(opts ComparisonKeyOpts) string {
	return hashKey("comparison", opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return hashKey("artifact", opts)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g. when
// one Redis instance serves several deployments.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArrangementKey generates a prefixed key for enumeration results.
func (k *ScopedKeyer) ArrangementKey(opts ArrangementKeyOpts) string {
	return k.prefix + k.inner.ArrangementKey(opts)
}

// PlanKey generates a prefixed key for layout plans.
func (k *ScopedKeyer) PlanKey(opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(opts)
}

// ComparisonKey generates a prefixed key for comparison builds.
func (k *ScopedKeyer) ComparisonKey(opts ComparisonKeyOpts) string {
	return k.prefix + k.inner.ComparisonKey(opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(opts)
}
