// Package entropy provides the randomness seam for the engine and
// market simulator. Every stochastic decision flows through a Source
// so that tests and playtest runs can be made deterministic.
package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
)

// Source is the randomness contract consumed by the engine and the
// market simulator.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// NormFloat64 returns a standard normal value.
	NormFloat64() float64
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded returns a deterministic Source. Same seed, same stream.
func NewSeeded(seed int64) Source {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

// NewCrypto returns a Source seeded from crypto/rand, for production
// runs where reproducibility is not wanted.
func NewCrypto() Source {
	return &lockedRand{rng: rand.New(rand.NewSource(cryptoSeed()))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

func (l *lockedRand) NormFloat64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.NormFloat64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}

// Uniform returns a value in [lo, hi) drawn from src.
func Uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Chance reports a Bernoulli trial with probability p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}

func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// Degenerate but non-fatal; the stream is still usable.
		return 1
	}
	// Keep 63 bits so the seed is non-negative.
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
}
