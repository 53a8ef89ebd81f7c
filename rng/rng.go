// Package rng provides the random source used to draw on-site disorder.
package rng

import (
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"
)

// A Source draws scalar samples. Every draw advances the source state.
type Source interface {
	// Gaussian draws from a normal distribution.
	Gaussian(mean, stdev float64) float64

	// Uniform draws from [center - width/2, center + width/2).
	Uniform(center, width float64) float64
}

// Stream is a seeded, reproducible Source. A Stream is not safe for
// concurrent use; wrap it with NewLocked to share it.
type Stream struct {
	seed uint64
	src  *rand.PCG
}

// NewStream creates a Stream. Two streams with the same seed produce the
// same draws when called in the same order.
func NewStream(seed uint64) *Stream {
	return &Stream{
		seed: seed,
		src:  rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}
}

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() uint64 {
	return s.seed
}

// Gaussian draws from N(mean, stdev^2).
func (s *Stream) Gaussian(mean, stdev float64) float64 {
	return distuv.Normal{Mu: mean, Sigma: stdev, Src: s.src}.Rand()
}

// Uniform draws from [center - width/2, center + width/2).
func (s *Stream) Uniform(center, width float64) float64 {
	return distuv.Uniform{
		Min: center - width/2,
		Max: center + width/2,
		Src: s.src,
	}.Rand()
}

// Locked serializes access to a shared Source.
type Locked struct {
	mu  sync.Mutex
	src Source
}

// NewLocked wraps src.
func NewLocked(src Source) *Locked {
	return &Locked{src: src}
}

// Gaussian draws from the wrapped source.
func (l *Locked) Gaussian(mean, stdev float64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.src.Gaussian(mean, stdev)
}

// Uniform draws from the wrapped source.
func (l *Locked) Uniform(center, width float64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.src.Uniform(center, width)
}
