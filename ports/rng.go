package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// Stream creates a deterministic RNG stream for a specific stage/pair/worker.
	// Permutation workers each get their own stream so iterations stay statistically
	// independent without shared mutable state, and the same seed reproduces the
	// same streams across runs.
	Stream(ctx context.Context, stageName, pairKey string, worker int, baseSeed int64) (*rand.Rand, error)
}
