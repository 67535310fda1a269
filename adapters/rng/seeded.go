package rng

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"

	"gocirc/ports"
)

// SeededSource implements ports.RNGPort with deterministic, name-scoped
// streams. Two streams with different names never share state, so concurrent
// consumers stay statistically independent while the whole run remains
// reproducible from one base seed.
type SeededSource struct {
	baseSeed int64
}

// New creates a seeded source around a base seed.
func New(baseSeed int64) *SeededSource {
	return &SeededSource{baseSeed: baseSeed}
}

// SeededStream creates a deterministic RNG for a named operation.
func (s *SeededSource) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(mix(name, s.baseSeed+seed))), nil
}

// Stream creates a deterministic RNG stream for a stage/pair/worker tuple.
func (s *SeededSource) Stream(ctx context.Context, stageName, pairKey string, worker int, baseSeed int64) (*rand.Rand, error) {
	name := fmt.Sprintf("%s/%s/w%d", stageName, pairKey, worker)
	return rand.New(rand.NewSource(mix(name, s.baseSeed+baseSeed))), nil
}

func mix(name string, seed int64) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(h.Sum64()) ^ seed
}

var _ ports.RNGPort = (*SeededSource)(nil)
