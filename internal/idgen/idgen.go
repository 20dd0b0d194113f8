// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

// Package idgen mints time-sortable 64-bit identifiers.
//
// An ID packs the milliseconds elapsed since Epoch into its high 42 bits and
// a per-millisecond counter into its low 22 bits. The counter restarts at a
// random offset whenever the clock moves to a new millisecond, so ids are not
// trivially enumerable, and otherwise increments by one.
//
// Generators are lock-free: the last issued value lives in a single atomic
// word that is advanced with compare-and-swap. When more than 2^21 ids are
// requested in one millisecond, or the wall clock steps backwards, the
// generator keeps incrementing past the current millisecond. Ids stay unique
// and ordered within the process; the embedded timestamp runs ahead of the
// wall clock by at most the size of the burst and converges once the clock
// catches up.
package idgen

import (
	"math/rand/v2"
	"sync/atomic"
	"time"
)

const (
	timeBits    = 42
	counterBits = 22

	counterMask = 1<<counterBits - 1
	// seedMask keeps the random counter start in the lower half of the
	// counter space so a burst has at least 2^21 values before it spills
	// into the next millisecond.
	seedMask = counterMask >> 1
	timeMask = 1<<timeBits - 1
)

// Epoch is the zero point of the timestamp component.
var Epoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// Generator issues IDs. The zero value is not usable; call New.
type Generator struct {
	last   atomic.Uint64
	now    func() time.Time
	random func() uint32
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithRandom replaces the source used to seed the counter each millisecond.
// The function must be safe for concurrent use.
func WithRandom(random func() uint32) Option {
	return func(g *Generator) {
		g.random = random
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		now:    time.Now,
		random: rand.Uint32,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next returns a new ID. It never blocks on a lock and never fails.
func (g *Generator) Next() ID {
	for {
		last := g.last.Load()
		next := g.millis() << counterBits
		if next > last {
			next |= uint64(g.random() & seedMask)
		} else {
			next = last + 1
		}
		if g.last.CompareAndSwap(last, next) {
			idsGenerated.Inc()
			return ID(next)
		}
	}
}

func (g *Generator) millis() uint64 {
	ms := g.now().Sub(Epoch).Milliseconds()
	if ms < 0 {
		return 0
	}
	return uint64(ms) & timeMask
}

// Default is the process-wide generator used by Next.
var Default = New()

// Next returns a new ID from Default.
func Next() ID {
	return Default.Next()
}
