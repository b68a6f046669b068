// Copyright ©2024 The CGT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package game implements the canonical form of a short partizan
// combinatorial game: either a Number-Up-Star triple, or an irreducible
// list of left and right options that no NUS triple captures. Canonical
// forms carry the game-theoretic partial order, sums, negation, and the
// derived quantities (temperature, mean, atomic weight, reduced form)
// built on top of a position's thermograph.
package game

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/cgt/dyadic"
	"gonum.org/v1/cgt/nimber"
	"gonum.org/v1/cgt/nus"
	"gonum.org/v1/cgt/rational"
	"gonum.org/v1/cgt/thermograph"
)

// ErrMalformed is returned by Parse when the input does not match the
// "{a,b,...|c,d,...}" or Nus grammar.
var ErrMalformed = errors.New("game: malformed input")

type formKind uint8

const (
	kindNus formKind = iota
	kindMoves
)

// CanonicalForm is the canonical value of a short partizan game: either a
// Number-Up-Star triple, or a canonicalized list of left/right options.
type CanonicalForm struct {
	kind  formKind
	nus   nus.Nus
	moves Moves
}

// Zero is the canonical form of the empty game.
var Zero = NewInteger(0)

// NewInteger constructs the canonical form of an integer.
func NewInteger(n int64) CanonicalForm { return NewNus(nus.NewInteger(n)) }

// NewDyadic constructs the canonical form of a pure dyadic number.
func NewDyadic(d dyadic.Number) CanonicalForm { return NewNus(nus.NewNumber(d)) }

// NewNimber constructs the canonical form of r + *k.
func NewNimber(r dyadic.Number, k nimber.Nimber) CanonicalForm {
	return NewNus(nus.Nus{Number: r, Nimber: k})
}

// NewNus constructs the canonical form of a Number-Up-Star triple.
func NewNus(n nus.Nus) CanonicalForm { return CanonicalForm{kind: kindNus, nus: n} }

// NewFromMoves reduces an arbitrary, not-necessarily-canonical option list
// to its canonical form: duplicates are removed, reversible options are
// bypassed, dominated options are eliminated, and the result collapses to
// a NUS triple whenever the reduced list permits it.
func NewFromMoves(m Moves) CanonicalForm {
	m.eliminateDuplicates()
	m = m.canonicalize()
	return constructFromCanonicalMoves(m)
}

// constructFromCanonicalMoves assumes m is already duplicate-free and
// canonicalized; it only sorts into a deterministic order and folds into a
// NUS if possible.
func constructFromCanonicalMoves(m Moves) CanonicalForm {
	cmpCF := func(a, b CanonicalForm) int { return structuralCmp(a, b) }
	slices.SortStableFunc(m.Left, cmpCF)
	slices.SortStableFunc(m.Right, cmpCF)
	if n, ok := m.ToNus(); ok {
		return NewNus(n)
	}
	return CanonicalForm{kind: kindMoves, moves: m}
}

// ToMoves returns the left and right options of c.
func (c CanonicalForm) ToMoves() Moves {
	if c.kind == kindMoves {
		return c.moves
	}
	left, right := c.nus.ToMoves()
	return nusSliceToMoves(left, right)
}

func nusSliceToMoves(left, right []nus.Nus) Moves {
	l := make([]CanonicalForm, len(left))
	for i, n := range left {
		l[i] = NewNus(n)
	}
	r := make([]CanonicalForm, len(right))
	for i, n := range right {
		r[i] = NewNus(n)
	}
	return Moves{Left: l, Right: r}
}

// ToLeftMoves returns the left options of c.
func (c CanonicalForm) ToLeftMoves() []CanonicalForm {
	if c.kind == kindMoves {
		return c.moves.Left
	}
	left, _ := c.nus.ToMoves()
	out := make([]CanonicalForm, len(left))
	for i, n := range left {
		out[i] = NewNus(n)
	}
	return out
}

// ToRightMoves returns the right options of c.
func (c CanonicalForm) ToRightMoves() []CanonicalForm {
	if c.kind == kindMoves {
		return c.moves.Right
	}
	_, right := c.nus.ToMoves()
	out := make([]CanonicalForm, len(right))
	for i, n := range right {
		out[i] = NewNus(n)
	}
	return out
}

// IsNumberUpStar reports whether c is represented as a NUS triple.
func (c CanonicalForm) IsNumberUpStar() bool { return c.kind == kindNus }

// IsNumber reports whether c is only a number.
func (c CanonicalForm) IsNumber() bool { return c.kind == kindNus && c.nus.IsNumber() }

// IsNimber reports whether c is only a nimber.
func (c CanonicalForm) IsNimber() bool { return c.kind == kindNus && c.nus.IsNimber() }

// ToNus converts c to a Nus if it is represented as one.
func (c CanonicalForm) ToNus() (nus.Nus, bool) {
	if c.kind == kindNus {
		return c.nus, true
	}
	return nus.Nus{}, false
}

// ToNumber converts c to a dyadic number if it is only a number.
func (c CanonicalForm) ToNumber() (dyadic.Number, bool) {
	if n, ok := c.ToNus(); ok && n.IsNumber() {
		return n.Number, true
	}
	return dyadic.Number{}, false
}

// Equal reports structural equality of a and b: two CanonicalForms are
// equal exactly when their representations (NUS fields, or their full
// option trees) are identical. This is distinct from the game-theoretic
// order implemented by Leq.
func Equal(a, b CanonicalForm) bool {
	if a.kind != b.kind {
		return false
	}
	if a.kind == kindNus {
		return a.nus == b.nus
	}
	if len(a.moves.Left) != len(b.moves.Left) || len(a.moves.Right) != len(b.moves.Right) {
		return false
	}
	for i := range a.moves.Left {
		if !Equal(a.moves.Left[i], b.moves.Left[i]) {
			return false
		}
	}
	for i := range a.moves.Right {
		if !Equal(a.moves.Right[i], b.moves.Right[i]) {
			return false
		}
	}
	return true
}

// structuralCmp imposes a total, representation-based order used only for
// sorting and deduplicating option lists. It carries no game-theoretic
// meaning; use Leq for that.
func structuralCmp(a, b CanonicalForm) int {
	if a.kind != b.kind {
		if a.kind == kindNus {
			return -1
		}
		return 1
	}
	if a.kind == kindNus {
		return nusCmp(a.nus, b.nus)
	}
	if c := cfSliceCmp(a.moves.Left, b.moves.Left); c != 0 {
		return c
	}
	return cfSliceCmp(a.moves.Right, b.moves.Right)
}

func nusCmp(a, b nus.Nus) int {
	if c := dyadic.Cmp(a.Number, b.Number); c != 0 {
		return c
	}
	switch {
	case a.Up < b.Up:
		return -1
	case a.Up > b.Up:
		return 1
	}
	switch {
	case a.Nimber < b.Nimber:
		return -1
	case a.Nimber > b.Nimber:
		return 1
	}
	return 0
}

func cfSliceCmp(a, b []CanonicalForm) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := structuralCmp(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Neg returns -g.
func Neg(g CanonicalForm) CanonicalForm {
	if g.kind == kindNus {
		return NewNus(nus.Neg(g.nus))
	}
	left := make([]CanonicalForm, len(g.moves.Right))
	for i, r := range g.moves.Right {
		left[i] = Neg(r)
	}
	right := make([]CanonicalForm, len(g.moves.Left))
	for i, l := range g.moves.Left {
		right[i] = Neg(l)
	}
	return constructFromCanonicalMoves(Moves{Left: left, Right: right})
}

// Add returns the canonical form of g+h, using the number translation
// theorem to avoid exploding the option tree when one side is a plain
// number.
func Add(g, h CanonicalForm) CanonicalForm {
	if g.kind == kindNus && h.kind == kindNus {
		return NewNus(nus.Add(g.nus, h.nus))
	}

	var left, right []CanonicalForm
	if !g.IsNumber() {
		gm := g.ToMoves()
		for _, gl := range gm.Left {
			left = append(left, Add(gl, h))
		}
		for _, gr := range gm.Right {
			right = append(right, Add(gr, h))
		}
	}
	if !h.IsNumber() {
		hm := h.ToMoves()
		for _, hl := range hm.Left {
			left = append(left, Add(g, hl))
		}
		for _, hr := range hm.Right {
			right = append(right, Add(g, hr))
		}
	}
	return NewFromMoves(Moves{Left: left, Right: right})
}

// Sub returns g-h.
func Sub(g, h CanonicalForm) CanonicalForm { return Add(g, Neg(h)) }

// Sum folds gs under Add, starting from Zero.
func Sum(gs ...CanonicalForm) CanonicalForm {
	acc := Zero
	for _, g := range gs {
		acc = Add(acc, g)
	}
	return acc
}

// Leq reports whether lhs <= rhs in the game-theoretic partial order: Left
// moving first in lhs-rhs cannot do better than a tie. Two games may be
// incomparable, in which case both Leq(a,b) and Leq(b,a) are false.
func Leq(lhs, rhs CanonicalForm) bool {
	if Equal(lhs, rhs) {
		return true
	}

	if lhsNus, ok1 := lhs.ToNus(); ok1 {
		if rhsNus, ok2 := rhs.ToNus(); ok2 {
			switch c := dyadic.Cmp(lhsNus.Number, rhsNus.Number); {
			case c < 0:
				return true
			case c > 0:
				return false
			default:
				if lhsNus.Up < rhsNus.Up-1 {
					return true
				} else if lhsNus.Up < rhsNus.Up {
					return nimber.Add(lhsNus.Nimber, rhsNus.Nimber) != 1
				}
				return false
			}
		}
	}

	if !lhs.IsNumber() {
		for _, l := range lhs.ToMoves().Left {
			if Leq(rhs, l) {
				return false
			}
		}
	}
	if !rhs.IsNumber() {
		for _, r := range rhs.ToMoves().Right {
			if Leq(r, lhs) {
				return false
			}
		}
	}
	return true
}

// Geq reports whether lhs >= rhs in the game-theoretic partial order.
func Geq(lhs, rhs CanonicalForm) bool { return Leq(rhs, lhs) }

// Less reports whether lhs < rhs: lhs <= rhs and the reverse does not hold.
func Less(lhs, rhs CanonicalForm) bool { return Leq(lhs, rhs) && !Leq(rhs, lhs) }

// PartialCmp compares a and b in the game-theoretic partial order. It
// returns -1, 0, or +1 with ok=true when the games are comparable, and
// ok=false when they are confused with one another (e.g. 0 and *).
func PartialCmp(a, b CanonicalForm) (cmp int, ok bool) {
	leq, geq := Leq(a, b), Leq(b, a)
	switch {
	case leq && geq:
		return 0, true
	case leq:
		return -1, true
	case geq:
		return 1, true
	default:
		return 0, false
	}
}

// Temperature computes the temperature of c, short-circuiting the
// thermograph computation when c is a NUS.
func (c CanonicalForm) Temperature() dyadic.Number {
	if n, ok := c.ToNus(); ok {
		if n.IsNumber() {
			return dyadic.New(-1, n.Number.DenExp())
		}
		return dyadic.FromInt(0)
	}
	return c.moves.Thermograph().Temperature()
}

// Thermograph builds the thermograph of c.
func (c CanonicalForm) Thermograph() thermograph.Thermograph {
	if c.kind == kindMoves {
		return c.moves.Thermograph()
	}
	n := c.nus
	if n.IsNumber() {
		if i, ok := n.Number.ToInt(); ok {
			return thermograph.WithMast(rational.New(i, 1))
		}
	}
	if n.Up == 0 || (n.Nimber == 1 && abs32(n.Up) == 1) {
		nb := nimber.Nimber(0)
		if n.Nimber != 0 {
			nb = 1
		}
		newGame := NewNus(nus.Nus{Number: n.Number, Nimber: nb})
		return newGame.ToMoves().Thermograph()
	}
	newGame := NewNus(nus.Nus{Number: n.Number, Up: sign32(n.Up)})
	return newGame.ToMoves().Thermograph()
}

func sign32(x int32) int32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

// LeftStop is the number reached when Left plays first.
func (c CanonicalForm) LeftStop() dyadic.Number {
	if num, ok := c.ToNumber(); ok {
		return num
	}
	var best dyadic.Number
	first := true
	for _, l := range c.ToMoves().Left {
		v := l.RightStop()
		if first || dyadic.Less(best, v) {
			best, first = v, false
		}
	}
	return best
}

// RightStop is the number reached when Right plays first.
func (c CanonicalForm) RightStop() dyadic.Number {
	if num, ok := c.ToNumber(); ok {
		return num
	}
	var best dyadic.Number
	first := true
	for _, r := range c.ToMoves().Right {
		v := r.LeftStop()
		if first || dyadic.Less(best, v) {
			best, first = v, false
		}
	}
	return best
}

// ConfusionInterval is the (LeftStop, RightStop) pair.
func (c CanonicalForm) ConfusionInterval() (dyadic.Number, dyadic.Number) {
	return c.LeftStop(), c.RightStop()
}

// Mean returns the mean value of c: the result of cooling c by any
// temperature above its own.
func (c CanonicalForm) Mean() dyadic.Number {
	if n, ok := c.ToNus(); ok {
		return n.Number
	}
	mast := c.moves.Thermograph().Mast()
	v, ok := mast.BigRat()
	if !ok {
		panic("game: thermograph mast is not finite")
	}
	return dyadic.FromBigRat(v)
}

// Cool returns c cooled by temperature: G_t = {G^L_t - t | G^R_t + t},
// unless c is already an integer (Cool returns c), or t is strictly above
// c's own temperature (Cool returns the canonical form of c's mean).
func (c CanonicalForm) Cool(temperature dyadic.Number) CanonicalForm {
	if n, ok := c.ToNus(); ok && n.IsInteger() {
		return c
	}
	if dyadic.Less(c.Temperature(), temperature) {
		return NewDyadic(c.Mean())
	}
	temperatureGame := NewDyadic(temperature)
	m := c.ToMoves()
	left := make([]CanonicalForm, len(m.Left))
	for i, l := range m.Left {
		left[i] = Sub(l.Cool(temperature), temperatureGame)
	}
	right := make([]CanonicalForm, len(m.Right))
	for i, r := range m.Right {
		right[i] = Add(r.Cool(temperature), temperatureGame)
	}
	return NewFromMoves(Moves{Left: left, Right: right})
}

// Heat returns the inverse of Cool: integral_to-temperature of c is c
// itself if c is a number, else {integral G^L + temperature | integral
// G^R - temperature}.
func (c CanonicalForm) Heat(temperature CanonicalForm) CanonicalForm {
	if n, ok := c.ToNus(); ok && n.IsNumber() {
		return c
	}
	m := c.ToMoves()
	left := make([]CanonicalForm, len(m.Left))
	for i, l := range m.Left {
		left[i] = Add(l.Heat(temperature), temperature)
	}
	right := make([]CanonicalForm, len(m.Right))
	for i, r := range m.Right {
		right[i] = Sub(r.Heat(temperature), temperature)
	}
	return NewFromMoves(Moves{Left: left, Right: right})
}

// FarStar returns a nimber *N such that no position reachable from c,
// including c itself, has the value *N.
func (c CanonicalForm) FarStar() nimber.Nimber {
	if n, ok := c.ToNus(); ok && n.IsNimber() {
		return nimber.Nimber(n.Nimber.Value() + 1)
	}
	m := c.ToMoves()
	best := nimber.Nimber(0)
	has := false
	for _, mv := range m.Left {
		if fs := mv.FarStar(); !has || best < fs {
			best, has = fs, true
		}
	}
	for _, mv := range m.Right {
		if fs := mv.FarStar(); !has || best < fs {
			best, has = fs, true
		}
	}
	if !has {
		return nimber.Nimber(1)
	}
	return best
}

// AtomicWeight returns the atomic weight ("uppitiness") of c.
func (c CanonicalForm) AtomicWeight() CanonicalForm {
	if n, ok := c.ToNus(); ok {
		return NewInteger(int64(n.Up))
	}

	m := c.ToMoves()
	newLeft := make([]CanonicalForm, len(m.Left))
	for i, l := range m.Left {
		newLeft[i] = Sub(l.AtomicWeight(), NewInteger(2))
	}
	newRight := make([]CanonicalForm, len(m.Right))
	for i, r := range m.Right {
		newRight[i] = Add(r.AtomicWeight(), NewInteger(2))
	}
	newGame := NewFromMoves(Moves{
		Left:  append([]CanonicalForm(nil), newLeft...),
		Right: append([]CanonicalForm(nil), newRight...),
	})

	newNus, ok := newGame.ToNus()
	if !ok || !newNus.IsInteger() {
		return newGame
	}

	farStar := NewNimber(dyadic.FromInt(0), c.FarStar())
	lessThanFarStar := Leq(c, farStar)
	greaterThanFarStar := Leq(farStar, c)

	switch {
	case lessThanFarStar && !greaterThanFarStar:
		maxLeast := int64(0)
		has := false
		for _, l := range newLeft {
			least := l.RightStop().Ceil()
			if Leq(NewInteger(least), l) {
				least++
			}
			if !has || least > maxLeast {
				maxLeast, has = least, true
			}
		}
		return NewInteger(maxLeast)
	case !lessThanFarStar && greaterThanFarStar:
		minGreatest := int64(0)
		has := false
		for _, r := range newRight {
			greatest := r.LeftStop().Round()
			if Leq(r, NewInteger(greatest)) {
				greatest--
			}
			if !has || greatest < minGreatest {
				minGreatest, has = greatest, true
			}
		}
		return NewInteger(minGreatest)
	default:
		return newGame
	}
}

// StarProjection maps c to its image under "remove the star part that
// only toggles between 0 and *": see The Reduced Canonical Form Of a
// Game, p. 411.
func (c CanonicalForm) StarProjection() CanonicalForm {
	if n, ok := c.ToNus(); ok && (n.Nimber == 0 || n.Nimber == 1) && n.Up == 0 {
		return NewDyadic(n.Number)
	}
	m := c.ToMoves()
	left := make([]CanonicalForm, len(m.Left))
	for i, l := range m.Left {
		left[i] = l.StarProjection()
	}
	right := make([]CanonicalForm, len(m.Right))
	for i, r := range m.Right {
		right[i] = r.StarProjection()
	}
	return NewFromMoves(Moves{Left: left, Right: right})
}

// Reduced returns c's reduced canonical form: \bar{G}, identifying any two
// games whose difference is infinitesimal.
func (c CanonicalForm) Reduced() CanonicalForm {
	return c.Heat(NewNus(nus.Nus{Nimber: 1})).StarProjection()
}

// Temper classifies a game as even- or odd-tempered: G is even-tempered if
// it is a number or every option is odd-tempered; odd-tempered if every
// option is even-tempered. Not every game has a temper.
type Temper uint8

const (
	// TemperEven: G is a number, or every option of G is odd-tempered.
	TemperEven Temper = iota
	// TemperOdd: G is not a number and every option of G is even-tempered.
	TemperOdd
)

// Temper returns c's temper, if it has one.
func (c CanonicalForm) Temper() (Temper, bool) {
	if n, ok := c.ToNus(); ok && n.IsNumber() {
		return TemperEven, true
	}

	m := c.ToMoves()
	allEven := true
	for _, mv := range m.Left {
		if t, ok := mv.Temper(); !ok || t != TemperEven {
			allEven = false
			break
		}
	}
	if allEven {
		for _, mv := range m.Right {
			if t, ok := mv.Temper(); !ok || t != TemperEven {
				allEven = false
				break
			}
		}
	}
	if allEven {
		return TemperOdd, true
	}

	allOdd := true
	for _, mv := range m.Left {
		if t, ok := mv.Temper(); !ok || t != TemperOdd {
			allOdd = false
			break
		}
	}
	if allOdd {
		for _, mv := range m.Right {
			if t, ok := mv.Temper(); !ok || t != TemperOdd {
				allOdd = false
				break
			}
		}
	}
	if allOdd {
		return TemperEven, true
	}

	return 0, false
}

// String renders c: a NUS prints compactly (see the nus package), a Moves
// value as "{G^L|G^R}" with each option printed compactly in turn.
func (c CanonicalForm) String() string {
	if c.kind == kindNus {
		return c.nus.String()
	}
	return c.moves.String()
}

// DeepString renders c using "{G^L|G^R}" notation, recursively unwrapping
// every NUS option instead of printing it compactly.
func (c CanonicalForm) DeepString() string {
	return c.ToMoves().DeepString()
}

// Parse reads a CanonicalForm in either Nus notation or
// "{a,b,...|c,d,...}" notation.
func Parse(s string) (CanonicalForm, error) {
	c, rest, err := ParsePrefix(s)
	if err != nil {
		return CanonicalForm{}, err
	}
	if strings.TrimSpace(rest) != "" {
		return CanonicalForm{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return c, nil
}

// ParsePrefix parses a leading CanonicalForm off s, trying Nus notation
// before falling back to the braces grammar, and returns the remainder.
func ParsePrefix(s string) (CanonicalForm, string, error) {
	trimmed := strings.TrimLeft(s, " \t\n\r")
	if n, rest, err := nus.ParsePrefix(trimmed); err == nil {
		return NewNus(n), rest, nil
	}
	m, rest, err := ParseMovesPrefix(trimmed)
	if err != nil {
		return CanonicalForm{}, s, err
	}
	return NewFromMoves(m), rest, nil
}

// ParseMovesPrefix parses a leading "{a,b,...|c,d,...}" off s.
func ParseMovesPrefix(s string) (Moves, string, error) {
	s = strings.TrimLeft(s, " \t\n\r")
	if len(s) == 0 || s[0] != '{' {
		return Moves{}, s, fmt.Errorf("%w: expected '{'", ErrMalformed)
	}
	rest := s[1:]

	left, rest, err := parseCFList(rest)
	if err != nil {
		return Moves{}, s, err
	}
	rest = strings.TrimLeft(rest, " \t\n\r")
	if len(rest) == 0 || rest[0] != '|' {
		return Moves{}, s, fmt.Errorf("%w: expected '|'", ErrMalformed)
	}
	rest = rest[1:]

	right, rest, err := parseCFList(rest)
	if err != nil {
		return Moves{}, s, err
	}
	rest = strings.TrimLeft(rest, " \t\n\r")
	if len(rest) == 0 || rest[0] != '}' {
		return Moves{}, s, fmt.Errorf("%w: expected '}'", ErrMalformed)
	}
	rest = rest[1:]

	return Moves{Left: left, Right: right}, rest, nil
}

// parseCFList parses a comma-separated, possibly-empty list of
// CanonicalForms off s, stopping at the first token it cannot parse.
func parseCFList(s string) ([]CanonicalForm, string, error) {
	var out []CanonicalForm
	rest := s
	for {
		trimmed := strings.TrimLeft(rest, " \t\n\r")
		cf, r, err := ParsePrefix(trimmed)
		if err != nil {
			return out, rest, nil
		}
		out = append(out, cf)
		rest = strings.TrimLeft(r, " \t\n\r")
		if len(rest) > 0 && rest[0] == ',' {
			rest = rest[1:]
			continue
		}
		return out, rest, nil
	}
}
