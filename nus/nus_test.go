// Copyright ©2024 The CGT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/cgt/dyadic"
	"gonum.org/v1/cgt/nimber"
)

func TestPredicates(t *testing.T) {
	assert.True(t, NewInteger(0).IsZero())
	assert.True(t, NewInteger(3).IsInteger())
	assert.True(t, NewNimber(nimber.Nimber(2)).IsNimber())
	assert.False(t, NewNimber(nimber.Nimber(2)).IsNumber())
	assert.False(t, New(dyadic.FromInt(3), 1, 0).IsNumber())
}

func TestStringAbbreviations(t *testing.T) {
	cases := []struct {
		n    Nus
		want string
	}{
		{NewInteger(0), "0"},
		{NewInteger(8), "8"},
		{New(dyadic.FromInt(0), 1, 0), "^"},
		{New(dyadic.FromInt(0), -1, 0), "v"},
		{New(dyadic.FromInt(0), 3, 0), "^3"},
		{New(dyadic.FromInt(0), -3, 0), "v3"},
		{NewNimber(1), "*"},
		{NewNimber(4), "*4"},
		{New(dyadic.New(1, 1), 1, 1), "1/2^*"},
		{New(dyadic.FromInt(-3), 0, 0), "-3"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.n.String(), "for %+v", c.n)
	}
}

func TestParseRoundTrip(t *testing.T) {
	cases := []string{"0", "8", "^", "v", "^3", "v3", "*", "*4", "13^3*4", "123v58*34", "-3"}
	for _, s := range cases {
		n, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, n.String(), s)
	}
}

func TestParseDefaultsBareMagnitudeToOne(t *testing.T) {
	n, err := Parse("^*")
	require.NoError(t, err)
	assert.Equal(t, int32(1), n.Up)
	assert.Equal(t, nimber.Nimber(1), n.Nimber)
}

func TestParseRejectsEmpty(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	_, err := Parse("3^*foo")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestAddNeg(t *testing.T) {
	a := New(dyadic.FromInt(2), 1, 1)
	b := New(dyadic.FromInt(3), -1, 1)
	sum := Add(a, b)
	assert.Equal(t, int64(5), mustInt(t, sum.Number))
	assert.Equal(t, int32(0), sum.Up)
	assert.Equal(t, nimber.Nimber(0), sum.Nimber)

	neg := Neg(a)
	assert.Equal(t, int64(-2), mustInt(t, neg.Number))
	assert.Equal(t, int32(-1), neg.Up)
	assert.Equal(t, nimber.Nimber(1), neg.Nimber)
}

func mustInt(t *testing.T, n dyadic.Number) int64 {
	t.Helper()
	i, ok := n.ToInt()
	require.True(t, ok)
	return i
}

func TestToMovesInteger(t *testing.T) {
	left, right := NewInteger(3).ToMoves()
	require.Len(t, left, 1)
	require.Len(t, right, 0)
	assert.Equal(t, NewInteger(2), left[0])

	left, right = NewInteger(-2).ToMoves()
	require.Len(t, right, 1)
	require.Len(t, left, 0)
	assert.Equal(t, NewInteger(-1), right[0])

	left, right = NewInteger(0).ToMoves()
	assert.Nil(t, left)
	assert.Nil(t, right)
}

func TestToMovesUpStar(t *testing.T) {
	// up-star: {0,*|0}
	up := New(dyadic.FromInt(0), 1, 1)
	left, right := up.ToMoves()
	require.Len(t, left, 2)
	require.Len(t, right, 1)
	assert.Equal(t, NewInteger(0), left[0])
	assert.Equal(t, NewNimber(1), left[1])
	assert.Equal(t, NewInteger(0), right[0])
}

func TestToMovesNimber(t *testing.T) {
	left, right := NewNimber(3).ToMoves()
	require.Len(t, left, 3)
	require.Len(t, right, 3)
	for i := 0; i < 3; i++ {
		assert.Equal(t, NewNimber(nimber.Nimber(i)), left[i])
		assert.Equal(t, NewNimber(nimber.Nimber(i)), right[i])
	}
}

// TestMoveIteratorsMatchToMoves checks the lazy iterators yield exactly
// the slices ToMoves returns, across every ToMoves case.
func TestMoveIteratorsMatchToMoves(t *testing.T) {
	cases := []Nus{
		NewInteger(0),
		NewInteger(4),
		NewInteger(-4),
		NewNumber(dyadic.New(3, 2)),
		NewNimber(nimber.Nimber(5)),
		New(dyadic.FromInt(1), 1, 1),
		New(dyadic.FromInt(1), -1, 1),
		New(dyadic.FromInt(0), 3, 2),
		New(dyadic.FromInt(0), -2, 0),
	}
	for _, n := range cases {
		left, right := n.ToMoves()
		var gotLeft, gotRight []Nus
		for m := range n.LeftMoves() {
			gotLeft = append(gotLeft, m)
		}
		for m := range n.RightMoves() {
			gotRight = append(gotRight, m)
		}
		assert.Equal(t, left, gotLeft, "left moves of %v", n)
		assert.Equal(t, right, gotRight, "right moves of %v", n)
	}
}
