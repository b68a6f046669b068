// Copyright ©2024 The CGT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/cgt/dyadic"
	"gonum.org/v1/cgt/nimber"
)

func parseT(t *testing.T, s string) CanonicalForm {
	t.Helper()
	cf, err := Parse(s)
	require.NoError(t, err, s)
	return cf
}

// Scenario 1: "{1,2|}" canonicalizes to 3; its Moves are {2|}.
func TestScenarioDominatedLeftOptions(t *testing.T) {
	cf := parseT(t, "{1,2|}")
	assert.Equal(t, "3", cf.String())
	m := cf.ToMoves()
	require.Len(t, m.Left, 1)
	assert.Equal(t, "2", m.Left[0].String())
	assert.Empty(t, m.Right)
}

// Scenario 2: "{42|*}" is already canonical and is not a NUS.
func TestScenarioNotANus(t *testing.T) {
	cf := parseT(t, "{42|*}")
	assert.Equal(t, "{42|*}", cf.String())
	assert.False(t, cf.IsNumberUpStar())
}

// Scenario 3: the integer 8.
func TestScenarioIntegerEight(t *testing.T) {
	cf := NewInteger(8)
	assert.Equal(t, "8", cf.String())
	assert.Equal(t, "{7|}", cf.ToMoves().String())
	assert.Equal(t, "{{{{{{{{{|}|}|}|}|}|}|}|}|}", cf.DeepString())
}

// Scenario 4: Nus(0, -3, *0) prints "v3".
func TestScenarioNusDownThree(t *testing.T) {
	n := parseT(t, "v3")
	assert.Equal(t, "v3", n.String())
}

// Scenario 5: Moves "{1|*}" has temperature 1.
func TestScenarioTemperatureOfOneOrStar(t *testing.T) {
	cf := parseT(t, "{1|*}")
	assert.Equal(t, dyadic.FromInt(1), cf.Temperature())
}

// Scenario 6: cool({2|-1}, 3/2) == "1/2*".
func TestScenarioCool(t *testing.T) {
	cf := parseT(t, "{2|-1}")
	cooled := cf.Cool(dyadic.New(3, 1))
	assert.Equal(t, "1/2*", cooled.String())
}

// Scenario 7: atomic weight of "{^2|*}" equals 1.
func TestScenarioAtomicWeight(t *testing.T) {
	moves := parseT(t, "{^2|*}")
	aw := moves.AtomicWeight()
	assert.Equal(t, NewInteger(1), aw)
}

// Scenario 8: reduced form of "{{2|0}, 1*|*}" prints "{1|0}".
func TestScenarioReduced(t *testing.T) {
	cf := parseT(t, "{{2|0},1*|*}")
	assert.Equal(t, "{1|0}", cf.Reduced().String())
}

// Scenario 9: temper("{2|0}") == Odd; temper("{2|1,{*|0}}") == None.
func TestScenarioTemper(t *testing.T) {
	temper, ok := parseT(t, "{2|0}").Temper()
	require.True(t, ok)
	assert.Equal(t, TemperOdd, temper)

	_, ok = parseT(t, "{2|1,{*|0}}").Temper()
	assert.False(t, ok)
}

// Scenario 10: for g = "{{3|2}|0}", left_stop = 2, right_stop = 0.
func TestScenarioStops(t *testing.T) {
	g := parseT(t, "{{3|2}|0}")
	assert.Equal(t, dyadic.FromInt(2), g.LeftStop())
	assert.Equal(t, dyadic.FromInt(0), g.RightStop())
}

func TestEqualReflexiveAndLeqReflexive(t *testing.T) {
	g := parseT(t, "{1|*}")
	assert.True(t, Equal(g, g))
	assert.True(t, Leq(g, g))
}

func TestAddInverseIsZero(t *testing.T) {
	g := parseT(t, "{1|*}")
	sum := Add(g, Neg(g))
	assert.True(t, Equal(sum, Zero), "got %s", sum)
}

func TestAddCommutativeAndAssociative(t *testing.T) {
	g := NewInteger(3)
	h := parseT(t, "*")
	k := parseT(t, "^")
	general := parseT(t, "{1|*}")
	assert.True(t, Equal(Add(g, h), Add(h, g)))
	assert.True(t, Equal(Add(g, general), Add(general, g)))
	assert.True(t, Equal(Add(Add(g, h), k), Add(g, Add(h, k))))
	assert.True(t, Equal(Add(Add(general, h), k), Add(general, Add(h, k))))
}

func TestZeroIncomparableToStar(t *testing.T) {
	star := parseT(t, "*")
	assert.False(t, Leq(Zero, star) && Leq(star, Zero))
	assert.False(t, Less(Zero, star))
	assert.False(t, Less(star, Zero))
}

func TestThermographOfNumberHasMastNAndNonpositiveTemperature(t *testing.T) {
	g := NewInteger(5)
	th := g.Thermograph()
	assert.Equal(t, "5", th.Mast().String())
	assert.False(t, dyadic.Less(dyadic.FromInt(0), g.Temperature()))
}

func TestReducedIsIdempotent(t *testing.T) {
	g := parseT(t, "{{2|0},1*|*}")
	once := g.Reduced()
	twice := once.Reduced()
	assert.True(t, Equal(once, twice))
}

func TestParseRoundTripMoves(t *testing.T) {
	cases := []string{"{42|*}", "{2|0}", "{{3|2}|0}"}
	for _, s := range cases {
		cf := parseT(t, s)
		assert.Equal(t, s, cf.String(), s)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("{1|")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestCoolAcrossTemperatures(t *testing.T) {
	cases := []struct {
		temp string
		want string
	}{
		{"0", "{2|-1}"},
		{"1/2", "{3/2|-1/2}"},
		{"1", "{1|0}"},
		{"3/2", "1/2*"},
		{"2", "1/2"},
		{"3", "1/2"},
		{"42", "1/2"},
	}
	g := parseT(t, "{2|-1}")
	for _, c := range cases {
		temp, err := dyadic.Parse(c.temp)
		require.NoError(t, err, c.temp)
		assert.Equal(t, c.want, g.Cool(temp).String(), "cool by %s", c.temp)
	}
}

func TestHeatOfNumberIsIdentity(t *testing.T) {
	g := NewInteger(42)
	assert.True(t, Equal(g, g.Heat(NewInteger(1))))
}

// TestCoolHeatRoundTrip freezes a game at one degree above its
// temperature and reheats the cooled remainder: the frozen part plus the
// heated particle reconstructs the original game.
func TestCoolHeatRoundTrip(t *testing.T) {
	g := parseT(t, "{2|-1}")
	temp := dyadic.New(3, 1) // 3/2
	cooled := g.Cool(temp)
	frozen := g.Cool(dyadic.Add(temp, dyadic.FromInt(1)))
	particle := Sub(cooled, frozen)
	heated := particle.Heat(NewDyadic(temp))
	assert.Equal(t, "{3/2|-3/2}", heated.String())
	assert.True(t, Equal(g, Add(frozen, heated)))
}

func TestAtomicWeight(t *testing.T) {
	cases := []struct {
		g    string
		want string
	}{
		{"*3", "0"},
		{"^", "1"},
		{"v", "-1"},
		{"v2", "-2"},
		{"{^2|v}", "1/2"},
		{"{^2|v2}", "*"},
		{"{^3|v3}", "{1|-1}"},
		{"{^2|*}", "1"},
		{"{^2,{^|*}|*}", "1"},
		{"{*|v2}", "-1"},
	}
	for _, c := range cases {
		g := parseT(t, c.g)
		want := parseT(t, c.want)
		assert.Equal(t, want.String(), g.AtomicWeight().String(), "atomic weight of %s", c.g)
	}
}

func TestFarStar(t *testing.T) {
	assert.Equal(t, nimber.Nimber(4), parseT(t, "*3").FarStar())
	assert.Equal(t, nimber.Nimber(1), NewInteger(2).FarStar())
}

// TestCanonicalSidesSortedAndDeduped checks the canonicalization
// postcondition: both option lists come out sorted under the structural
// order with no adjacent (hence no) duplicates.
func TestCanonicalSidesSortedAndDeduped(t *testing.T) {
	g := parseT(t, "{{3|2},*,{3|2},5|0,{1|-1},0}")
	m := g.ToMoves()
	for _, side := range [][]CanonicalForm{m.Left, m.Right} {
		for i := 1; i < len(side); i++ {
			c := structuralCmp(side[i-1], side[i])
			assert.Less(t, c, 0, "side not strictly sorted at %d in %s", i, g)
		}
	}
}

func TestPartialCmp(t *testing.T) {
	cmp, ok := PartialCmp(Zero, NewInteger(1))
	require.True(t, ok)
	assert.Equal(t, -1, cmp)

	cmp, ok = PartialCmp(NewInteger(1), Zero)
	require.True(t, ok)
	assert.Equal(t, 1, cmp)

	cmp, ok = PartialCmp(Zero, Zero)
	require.True(t, ok)
	assert.Equal(t, 0, cmp)

	_, ok = PartialCmp(Zero, parseT(t, "*"))
	assert.False(t, ok)
}

func TestLeqTransitive(t *testing.T) {
	// * <= ^2 <= ^3 composes; * is confused with a single ^ but not with
	// double-up or above.
	star, up2, up3 := parseT(t, "*"), parseT(t, "^2"), parseT(t, "^3")
	require.True(t, Leq(star, up2))
	require.True(t, Leq(up2, up3))
	assert.True(t, Leq(star, up3))
	assert.True(t, Less(parseT(t, "v"), parseT(t, "^")))
}
