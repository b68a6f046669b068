// Copyright ©2024 The CGT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ttable provides a concurrent position-to-canonical-form cache
// for external game implementations. It decouples the evaluation cache
// from the game package's own canonical-form interning: the core
// arithmetic in dyadic, nus, and game never needs a table, only external
// games recursively evaluating a position tree do.
package ttable

import (
	"iter"
	"sync"
	"sync/atomic"

	"gonum.org/v1/cgt/game"
)

// Position is the contract an external game position implements to be
// evaluated by a Table: enumerate its left and right moves, each itself a
// Position of the same type.
type Position[P any] interface {
	LeftMoves() iter.Seq[P]
	RightMoves() iter.Seq[P]
}

// Decomposer is an optional interface a Position may implement when it
// can be split into independent sub-positions whose canonical forms sum
// to its own; a Table prefers this shortcut over full move enumeration.
type Decomposer[P any] interface {
	Decompositions() []P
}

// Reducer is an optional interface a Position may implement when its
// canonical form is already known in closed form, bypassing move
// enumeration entirely.
type Reducer interface {
	Reduction() (game.CanonicalForm, bool)
}

// Cache is the contract game-specific search layers program against: a
// position-to-canonical-form mapping whose hits are purely a performance
// optimisation, plus a way to discard everything when memory must be
// bounded. *Table is the provided implementation.
type Cache[P any] interface {
	CanonicalFormOf(pos P) game.CanonicalForm
	Cleanup()
}

// Options configures a Table. The zero value is a sane default: an
// unbounded cache.
type Options struct {
	// Capacity, if positive, bounds the number of entries the Table
	// retains before pruning by discarding everything (see Cleanup);
	// hits are a performance optimisation, never required for
	// correctness, so this coarse prune-on-overflow strategy is sound.
	Capacity int
}

// inflight is one in-progress evaluation; waiters block on done and then
// read val.
type inflight struct {
	done chan struct{}
	val  game.CanonicalForm
}

// Table caches position evaluations under single-flight: concurrent
// lookups of the same absent key perform the expensive evaluation at
// most once. Reads of distinct keys never block each other.
//
// The in-flight set is keyed on the position value itself, not on any
// derived rendering of it: two distinct positions are always two keys,
// even when they print identically.
type Table[P interface {
	comparable
	Position[P]
}] struct {
	cache    atomic.Pointer[sync.Map]
	mu       sync.Mutex
	flights  map[P]*inflight
	capacity int
	size     atomic.Int64
	hits     atomic.Int64
	misses   atomic.Int64
}

// New constructs an empty Table.
func New[P interface {
	comparable
	Position[P]
}](opts Options) *Table[P] {
	t := &Table[P]{
		flights:  make(map[P]*inflight),
		capacity: opts.Capacity,
	}
	t.cache.Store(&sync.Map{})
	return t
}

// Stats reports cumulative cache hit and miss counts, the Table's only
// form of observability: library code reports through return
// values/fields, never log lines.
type Stats struct {
	Hits   int64
	Misses int64
}

// Stats returns the current hit/miss counters.
func (t *Table[P]) Stats() Stats {
	return Stats{Hits: t.hits.Load(), Misses: t.misses.Load()}
}

// CanonicalFormOf returns the canonical form of pos, computing and
// caching it if absent. Concurrent callers requesting the same absent
// position block on one evaluation rather than duplicating the work.
func (t *Table[P]) CanonicalFormOf(pos P) game.CanonicalForm {
	m := t.cache.Load()
	if v, ok := m.Load(pos); ok {
		t.hits.Add(1)
		return v.(game.CanonicalForm)
	}

	t.mu.Lock()
	if fl, ok := t.flights[pos]; ok {
		t.mu.Unlock()
		<-fl.done
		return fl.val
	}
	fl := &inflight{done: make(chan struct{})}
	t.flights[pos] = fl
	t.mu.Unlock()

	// Re-check under the flight: another evaluator may have stored the
	// entry between the cache miss and winning the flight slot.
	if v, ok := m.Load(pos); ok {
		fl.val = v.(game.CanonicalForm)
	} else {
		t.misses.Add(1)
		fl.val = t.evaluate(pos)
		m.Store(pos, fl.val)
		if n := t.size.Add(1); t.capacity > 0 && n > int64(t.capacity) {
			t.Cleanup()
		}
	}
	close(fl.done)

	t.mu.Lock()
	delete(t.flights, pos)
	t.mu.Unlock()
	return fl.val
}

func (t *Table[P]) evaluate(pos P) game.CanonicalForm {
	if red, ok := any(pos).(Reducer); ok {
		if cf, ok := red.Reduction(); ok {
			return cf
		}
	}
	if dec, ok := any(pos).(Decomposer[P]); ok {
		if subs := dec.Decompositions(); subs != nil {
			terms := make([]game.CanonicalForm, len(subs))
			for i, sub := range subs {
				terms[i] = t.CanonicalFormOf(sub)
			}
			return game.Sum(terms...)
		}
	}

	var left, right []game.CanonicalForm
	for lm := range pos.LeftMoves() {
		left = append(left, t.CanonicalFormOf(lm))
	}
	for rm := range pos.RightMoves() {
		right = append(right, t.CanonicalFormOf(rm))
	}
	return game.NewFromMoves(game.Moves{Left: left, Right: right})
}

// Cleanup discards every cached entry, for long-running searches that
// want to bound memory. It does not invalidate evaluations already in
// flight.
func (t *Table[P]) Cleanup() {
	t.cache.Store(&sync.Map{})
	t.size.Store(0)
}
