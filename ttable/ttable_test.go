// Copyright ©2024 The CGT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ttable

import (
	"fmt"
	"iter"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"gonum.org/v1/cgt/game"
)

// heapPos is a tiny impartial game (a Nim heap) used to exercise Table
// without depending on any concrete rule-set game package.
type heapPos struct {
	n     int
	evals *atomic.Int64
}

func (h heapPos) LeftMoves() iter.Seq[heapPos]  { return h.moves() }
func (h heapPos) RightMoves() iter.Seq[heapPos] { return h.moves() }

func (h heapPos) moves() iter.Seq[heapPos] {
	return func(yield func(heapPos) bool) {
		if h.evals != nil {
			h.evals.Add(1)
		}
		for i := 0; i < h.n; i++ {
			if !yield(heapPos{n: i, evals: h.evals}) {
				return
			}
		}
	}
}

func TestCanonicalFormOfComputesNimHeap(t *testing.T) {
	tbl := New[heapPos](Options{})
	got := tbl.CanonicalFormOf(heapPos{n: 3})
	want, err := game.Parse("*3")
	require.NoError(t, err)
	assert.True(t, game.Equal(got, want), "got %s, want %s", got, want)
}

func TestCanonicalFormOfCachesHits(t *testing.T) {
	tbl := New[heapPos](Options{})
	pos := heapPos{n: 4}
	first := tbl.CanonicalFormOf(pos)
	second := tbl.CanonicalFormOf(pos)
	assert.True(t, game.Equal(first, second))
	// The recursive lookups of heaps 0..3 count too: the first call misses
	// on heaps 0..4 (5 misses) and hits 16 times while evaluating them; the
	// second call is one more hit.
	assert.Equal(t, int64(5), tbl.Stats().Misses)
	assert.Equal(t, int64(17), tbl.Stats().Hits)
}

func TestCleanupDiscardsEntries(t *testing.T) {
	tbl := New[heapPos](Options{})
	tbl.CanonicalFormOf(heapPos{n: 2})
	// Heaps 2, 0 and 1 each miss once.
	assert.Equal(t, int64(3), tbl.Stats().Misses)
	tbl.Cleanup()
	tbl.CanonicalFormOf(heapPos{n: 2})
	assert.Equal(t, int64(6), tbl.Stats().Misses)
}

// singleFlightPos is a position whose left-move enumeration counts one
// evaluation and then blocks until released, so concurrent requesters of
// the same absent key can arrive while the first evaluation is still in
// flight. It is a leaf (no moves) once released, which is all
// the single-flight property needs to exercise.
type singleFlightPos struct {
	id      int
	evals   *atomic.Int64
	release <-chan struct{}
}

func (p singleFlightPos) LeftMoves() iter.Seq[singleFlightPos] {
	return func(yield func(singleFlightPos) bool) {
		if p.release != nil {
			p.evals.Add(1)
			<-p.release
		}
	}
}

func (p singleFlightPos) RightMoves() iter.Seq[singleFlightPos] {
	return func(yield func(singleFlightPos) bool) {}
}

func TestCanonicalFormOfSingleFlightsConcurrentMisses(t *testing.T) {
	var evals atomic.Int64
	release := make(chan struct{})
	root := singleFlightPos{id: 1, evals: &evals, release: release}

	tbl := New[singleFlightPos](Options{})

	const callers = 8
	var eg errgroup.Group
	for i := 0; i < callers; i++ {
		eg.Go(func() error {
			tbl.CanonicalFormOf(root)
			return nil
		})
	}

	close(release)
	_ = eg.Wait()

	assert.Equal(t, int64(1), evals.Load(), "root position must be evaluated exactly once across concurrent callers")
}

func TestCanonicalFormOfDistinctKeysDoNotBlockEachOther(t *testing.T) {
	tbl := New[heapPos](Options{})
	var eg errgroup.Group
	results := make([]game.CanonicalForm, 6)
	for i := range results {
		i := i
		eg.Go(func() error {
			results[i] = tbl.CanonicalFormOf(heapPos{n: i})
			return nil
		})
	}
	_ = eg.Wait()
	for i, r := range results {
		want, err := game.Parse(fmt.Sprintf("*%d", i))
		require.NoError(t, err)
		assert.True(t, game.Equal(r, want), "heap %d: got %s want %s", i, r, want)
	}
}

type reductionPos struct {
	value string
}

func (r reductionPos) LeftMoves() iter.Seq[reductionPos]  { return func(func(reductionPos) bool) {} }
func (r reductionPos) RightMoves() iter.Seq[reductionPos] { return func(func(reductionPos) bool) {} }
func (r reductionPos) Reduction() (game.CanonicalForm, bool) {
	cf, err := game.Parse(r.value)
	if err != nil {
		return game.CanonicalForm{}, false
	}
	return cf, true
}

func TestCanonicalFormOfPrefersReduction(t *testing.T) {
	tbl := New[reductionPos](Options{})
	got := tbl.CanonicalFormOf(reductionPos{value: "42"})
	assert.True(t, game.Equal(got, game.NewInteger(42)))
}

// decompositionRegistry maps a decomposedPosWrapper's id to its parts.
// Position types handed to a Table must be comparable (they are map
// keys), which rules out a slice field directly on the struct; tests that
// need a composite position key it by id instead and look children up
// here.
var decompositionRegistry = map[string][]decomposedPosWrapper{
	"2+*": {{reduction: "2"}, {reduction: "*"}},
}

func TestCanonicalFormOfSumsDecompositions(t *testing.T) {
	decTbl := New[decomposedPosWrapper](Options{})
	got := decTbl.CanonicalFormOf(decomposedPosWrapper{id: "2+*"})
	want, err := game.Parse("2*")
	require.NoError(t, err)
	assert.True(t, game.Equal(got, want), "got %s want %s", got, want)
}

// decomposedPosWrapper implements both Reducer and Decomposer over the
// same Position type parameter so a single Table can exercise both
// optional interfaces.
type decomposedPosWrapper struct {
	id        string
	reduction string
}

func (d decomposedPosWrapper) LeftMoves() iter.Seq[decomposedPosWrapper] {
	return func(func(decomposedPosWrapper) bool) {}
}
func (d decomposedPosWrapper) RightMoves() iter.Seq[decomposedPosWrapper] {
	return func(func(decomposedPosWrapper) bool) {}
}

func (d decomposedPosWrapper) Reduction() (game.CanonicalForm, bool) {
	if d.reduction == "" {
		return game.CanonicalForm{}, false
	}
	cf, err := game.Parse(d.reduction)
	return cf, err == nil
}

func (d decomposedPosWrapper) Decompositions() []decomposedPosWrapper {
	return decompositionRegistry[d.id]
}

var _ Cache[heapPos] = (*Table[heapPos])(nil)

// lossyPos is a Nim heap whose String renders every position identically,
// the way sparse board renderers in real rule-set games often do.
// Distinct positions must remain distinct cache and flight keys even so.
type lossyPos struct {
	n       int
	release <-chan struct{}
}

func (p lossyPos) String() string { return "board" }

func (p lossyPos) LeftMoves() iter.Seq[lossyPos]  { return p.moves() }
func (p lossyPos) RightMoves() iter.Seq[lossyPos] { return p.moves() }

func (p lossyPos) moves() iter.Seq[lossyPos] {
	return func(yield func(lossyPos) bool) {
		if p.release != nil {
			<-p.release
		}
		for i := 0; i < p.n; i++ {
			if !yield(lossyPos{n: i}) {
				return
			}
		}
	}
}

func TestDistinctPositionsWithEqualStringsDoNotCollide(t *testing.T) {
	tbl := New[lossyPos](Options{})
	release := make(chan struct{})
	slow := lossyPos{n: 3, release: release}
	fast := lossyPos{n: 1}

	var eg errgroup.Group
	var slowCF game.CanonicalForm
	eg.Go(func() error {
		slowCF = tbl.CanonicalFormOf(slow)
		return nil
	})
	fastCF := tbl.CanonicalFormOf(fast)
	close(release)
	_ = eg.Wait()

	wantFast, err := game.Parse("*")
	require.NoError(t, err)
	wantSlow, err := game.Parse("*3")
	require.NoError(t, err)
	assert.True(t, game.Equal(fastCF, wantFast), "fast: got %s", fastCF)
	assert.True(t, game.Equal(slowCF, wantSlow), "slow: got %s", slowCF)
}
