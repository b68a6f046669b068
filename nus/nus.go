// Copyright ©2024 The CGT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nus implements the Number-Up-Star triple: the compact
// representation number + up_multiple·↑ + nimber that covers the vast
// majority of short game values that arise in practice (every number,
// every nimber, and every infinitesimal within one "up" of a number).
package nus

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"gonum.org/v1/cgt/dyadic"
	"gonum.org/v1/cgt/nimber"
)

// ErrMalformed is returned by Parse on input that matches none of the
// three optional sub-pieces (number, up/down, star) of the grammar.
var ErrMalformed = errors.New("nus: malformed input")

// Nus is number + up_multiple·↑ + nimber.
type Nus struct {
	Number dyadic.Number
	Up     int32
	Nimber nimber.Nimber
}

// New builds the general triple.
func New(number dyadic.Number, up int32, nb nimber.Nimber) Nus {
	return Nus{Number: number, Up: up, Nimber: nb}
}

// NewInteger builds the Nus for an integer game.
func NewInteger(n int64) Nus {
	return Nus{Number: dyadic.FromInt(n)}
}

// NewNumber builds the Nus for a pure number.
func NewNumber(n dyadic.Number) Nus {
	return Nus{Number: n}
}

// NewNimber builds the Nus for a pure nimber *k.
func NewNimber(nb nimber.Nimber) Nus {
	return Nus{Nimber: nb}
}

// IsNumber reports whether n has no up/down and no nimber component.
func (n Nus) IsNumber() bool { return n.Up == 0 && n.Nimber == 0 }

// IsInteger reports whether n is a pure integer number.
func (n Nus) IsInteger() bool { return n.IsNumber() && n.Number.IsInteger() }

// IsNimber reports whether n is a pure nimber (zero number, no up/down).
func (n Nus) IsNimber() bool { return n.Number.IsInteger() && n.Number.Numerator() == 0 && n.Up == 0 }

// IsZero reports whether n denotes the zero game.
func (n Nus) IsZero() bool { return n.IsNimber() && n.Nimber == 0 }

// Add returns a+b, componentwise.
func Add(a, b Nus) Nus {
	return Nus{
		Number: dyadic.Add(a.Number, b.Number),
		Up:     a.Up + b.Up,
		Nimber: nimber.Add(a.Nimber, b.Nimber),
	}
}

// Neg returns -n: negate the number and the up-multiple, keep the nimber
// (a nimber is its own negative).
func Neg(n Nus) Nus {
	return Nus{Number: dyadic.Neg(n.Number), Up: -n.Up, Nimber: n.Nimber}
}

// prevUp computes the "one step towards zero" up-multiple and the nimber
// that must accompany it, per the up-parity recurrence used throughout
// ToMoves: sign = sgn(up), prevUp = up-sign,
// prevNimber = nimber XOR parity(up) XOR parity(prevUp).
func prevUp(n Nus) (prevUp int32, prevNimber nimber.Nimber) {
	sign := int32(1)
	if n.Up < 0 {
		sign = -1
	}
	prevUp = n.Up - sign
	parity := nimber.Nimber(n.Up & 1)
	prevParity := nimber.Nimber(prevUp & 1)
	prevNimber = nimber.Add(nimber.Add(n.Nimber, parity), prevParity)
	return prevUp, prevNimber
}

// ToMoves returns the canonical left and right moves of the game this Nus
// denotes, by eight exhaustive cases: zero, positive integer, negative
// integer, non-integer number, number plus nimber, n^*, nv*, and the
// general non-zero up-multiple (spec §4.4).
func (n Nus) ToMoves() (left, right []Nus) {
	if n.IsNumber() {
		if n.Number.Numerator() == 0 && n.Number.IsInteger() {
			return nil, nil
		}
		if integer, ok := n.Number.ToInt(); ok {
			sign := int64(1)
			if integer < 0 {
				sign = -1
			}
			prev := NewInteger(integer - sign)
			if integer >= 0 {
				return []Nus{prev}, nil
			}
			return nil, []Nus{prev}
		}
		leftMove := NewNumber(n.Number.Step(-1))
		rightMove := NewNumber(n.Number.Step(1))
		return []Nus{leftMove}, []Nus{rightMove}
	}

	if n.Up == 0 {
		// Number + nimber *k, k >= 1: both sides are {number+*0, ..., number+*(k-1)}.
		k := n.Nimber.Value()
		left = make([]Nus, 0, k)
		right = make([]Nus, 0, k)
		for i := uint32(0); i < k; i++ {
			opt := Nus{Number: n.Number, Nimber: nimber.Nimber(i)}
			left = append(left, opt)
			right = append(right, opt)
		}
		return left, right
	}

	numberMove := NewNumber(n.Number)
	pUp, pNimber := prevUp(n)

	switch {
	case n.Up == 1 && n.Nimber == 1:
		// n^*: left = {n, n+*}, right = {n}.
		starMove := Nus{Number: n.Number, Nimber: 1}
		return []Nus{numberMove, starMove}, []Nus{numberMove}
	case n.Up == -1 && n.Nimber == 1:
		// nv*: left = {n}, right = {n, n+*}.
		starMove := Nus{Number: n.Number, Nimber: 1}
		return []Nus{numberMove}, []Nus{numberMove, starMove}
	case n.Up > 0:
		prev := Nus{Number: n.Number, Up: pUp, Nimber: pNimber}
		return []Nus{numberMove}, []Nus{prev}
	default:
		prev := Nus{Number: n.Number, Up: pUp, Nimber: pNimber}
		return []Nus{prev}, []Nus{numberMove}
	}
}

// LeftMoves returns the left moves of n as a lazily-pulled sequence,
// yielding the same items as the left return of ToMoves.
func (n Nus) LeftMoves() iter.Seq[Nus] {
	left, _ := n.ToMoves()
	return func(yield func(Nus) bool) {
		for _, m := range left {
			if !yield(m) {
				return
			}
		}
	}
}

// RightMoves is the right-side analogue of LeftMoves.
func (n Nus) RightMoves() iter.Seq[Nus] {
	_, right := n.ToMoves()
	return func(yield func(Nus) bool) {
		for _, m := range right {
			if !yield(m) {
				return
			}
		}
	}
}

// String renders n in the grammar documented on Parse: the dyadic part
// (if nonzero), then ^k/vk (k=1 abbreviates to ^/v), then *m (m=1
// abbreviates to *). The zero game prints as "0".
func (n Nus) String() string {
	if n.IsZero() {
		return "0"
	}
	var b strings.Builder
	if !(n.Number.IsInteger() && n.Number.Numerator() == 0) {
		b.WriteString(n.Number.String())
	}
	switch {
	case n.Up == 1:
		b.WriteByte('^')
	case n.Up == -1:
		b.WriteByte('v')
	case n.Up > 0:
		fmt.Fprintf(&b, "^%d", n.Up)
	case n.Up < 0:
		fmt.Fprintf(&b, "v%d", -n.Up)
	}
	switch {
	case n.Nimber == 1:
		b.WriteByte('*')
	case n.Nimber != 0:
		fmt.Fprintf(&b, "*%d", uint32(n.Nimber))
	}
	return b.String()
}

// Parse reads a Nus in the grammar
//
//	nus ::= [ number ] [ ("^"|"v") [digits] ] [ "*" [digits] ]
//
// with the semantic constraint that a totally empty input does not parse
// to zero: at least one of the three sub-pieces must actually be present.
// Whitespace between pieces is permitted. A bare "^", "v", or "*" default
// their magnitude to 1.
func Parse(s string) (Nus, error) {
	n, rest, err := ParsePrefix(s)
	if err != nil {
		return Nus{}, err
	}
	if strings.TrimSpace(rest) != "" {
		return Nus{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return n, nil
}

// ParsePrefix parses a leading Nus off s, returning the remainder. It is
// used by the game package's CanonicalForm parser, which tries a Nus
// before falling back to the braces grammar.
func ParsePrefix(s string) (Nus, string, error) {
	orig := s
	rest := s

	sawPiece := false
	number := dyadic.FromInt(0)
	if n, r, err := dyadic.ParsePrefix(rest); err == nil {
		number = n
		rest = r
		sawPiece = true
	}

	rest = strings.TrimLeft(rest, " \t\n\r")

	var up int32
	if len(rest) > 0 && (rest[0] == '^' || rest[0] == 'v') {
		sign := int32(1)
		if rest[0] == 'v' {
			sign = -1
		}
		rest = rest[1:]
		mag, r, ok := parseUintMagnitude(rest)
		if ok {
			up = sign * mag
			rest = r
		} else {
			up = sign
		}
		sawPiece = true
	}

	rest = strings.TrimLeft(rest, " \t\n\r")

	var star uint32
	if len(rest) > 0 && rest[0] == '*' {
		rest = rest[1:]
		mag, r, ok := parseUintMagnitude(rest)
		if ok {
			star = uint32(mag)
			rest = r
		} else {
			star = 1
		}
		sawPiece = true
	}

	if !sawPiece {
		return Nus{}, orig, fmt.Errorf("%w: %q", ErrMalformed, orig)
	}
	return Nus{Number: number, Up: up, Nimber: nimber.Nimber(star)}, rest, nil
}

func parseUintMagnitude(s string) (int32, string, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s, false
	}
	v, err := strconv.ParseInt(s[:i], 10, 32)
	if err != nil {
		return 0, s, false
	}
	return int32(v), s[i:], true
}
