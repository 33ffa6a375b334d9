package cache

import "time"

// TTLs per payload class. Enumeration and layout are pure functions of their
// inputs, so long TTLs are safe; they bound disk growth, not staleness.
const (
	// TTLArrangements applies to cached enumeration results.
	TTLArrangements = 7 * 24 * time.Hour

	// TTLPlan applies to cached layout plans.
	TTLPlan = 7 * 24 * time.Hour

	// TTLComparison applies to cached comparison builds.
	TTLComparison = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered outputs, which are larger and cheaper
	// to regenerate from a cached plan.
	TTLArtifact = 24 * time.Hour
)
