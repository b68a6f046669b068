// Copyright ©2024 The CGT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dyadic provides exact arithmetic over dyadic rational numbers,
// values of the form numerator / 2^denExp. Dyadic rationals are the
// numeric backbone of short combinatorial game values: every number that
// arises as a game's left or right stop, mean, or NUS number component is
// dyadic.
package dyadic

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ErrMalformed is returned by Parse when the input does not match the
// dyadic-number grammar (see Parse).
var ErrMalformed = errors.New("dyadic: malformed input")

// Number is a dyadic rational numerator / 2^denExp.
//
// The zero Number is 0/1, i.e. the integer zero.
//
// Invariant: denExp == 0, or numerator is odd. Every constructor and
// arithmetic operation below restores this invariant before returning.
type Number struct {
	numerator int64
	denExp    uint
}

// New constructs and normalizes numerator / 2^denExp.
func New(numerator int64, denExp uint) Number {
	return Number{numerator: numerator, denExp: denExp}.normalized()
}

// FromInt constructs the dyadic value of an integer.
func FromInt(n int64) Number {
	return Number{numerator: n}
}

// Numerator returns the normalized numerator.
func (n Number) Numerator() int64 { return n.numerator }

// DenExp returns the normalized denominator exponent; the denominator
// itself is 1<<DenExp.
func (n Number) DenExp() uint { return n.denExp }

// Denominator returns 2^DenExp.
func (n Number) Denominator() uint64 { return uint64(1) << n.denExp }

func (n Number) normalized() Number {
	for n.denExp != 0 && n.numerator%2 == 0 {
		n.numerator >>= 1
		n.denExp--
	}
	return n
}

// IsInteger reports whether n has denominator 1.
func (n Number) IsInteger() bool { return n.denExp == 0 }

// ToInt returns (n, true) when n is an integer, else (0, false).
func (n Number) ToInt() (int64, bool) {
	if n.denExp == 0 {
		return n.numerator, true
	}
	return 0, false
}

// Add returns a+b, aligning denominator exponents to the larger one.
func Add(a, b Number) Number {
	var numerator int64
	var denExp uint
	if a.denExp >= b.denExp {
		denExp = a.denExp
		numerator = a.numerator + (b.numerator << (a.denExp - b.denExp))
	} else {
		denExp = b.denExp
		numerator = b.numerator + (a.numerator << (b.denExp - a.denExp))
	}
	return Number{numerator: numerator, denExp: denExp}.normalized()
}

// Neg returns -n.
func Neg(n Number) Number {
	return Number{numerator: -n.numerator, denExp: n.denExp}
}

// Sub returns a-b.
func Sub(a, b Number) Number {
	return Add(a, Neg(b))
}

// Step returns "the next dyadic at the same denominator": it adds delta to
// the numerator and keeps denExp unchanged. It is NOT the same as adding
// delta as a dyadic value (delta is not scaled by the denominator).
func (n Number) Step(delta int64) Number {
	return Number{numerator: n.numerator + delta, denExp: n.denExp}.normalized()
}

// Mean returns the arithmetic mean of a and b. The dyadics are closed
// under halving, so the result is always exactly representable.
func Mean(a, b Number) Number {
	s := addUnnormalized(a, b)
	s.denExp++
	return s.normalized()
}

func addUnnormalized(a, b Number) Number {
	if a.denExp >= b.denExp {
		return Number{numerator: a.numerator + (b.numerator << (a.denExp - b.denExp)), denExp: a.denExp}
	}
	return Number{numerator: b.numerator + (a.numerator << (b.denExp - a.denExp)), denExp: b.denExp}
}

// Cmp returns -1, 0, or +1 as a is less than, equal to, or greater than b.
func Cmp(a, b Number) int {
	var la, lb int64
	if a.denExp <= b.denExp {
		la = a.numerator << (b.denExp - a.denExp)
		lb = b.numerator
	} else {
		la = a.numerator
		lb = b.numerator << (a.denExp - b.denExp)
	}
	switch {
	case la < lb:
		return -1
	case la > lb:
		return 1
	default:
		return 0
	}
}

// Less reports whether a < b.
func Less(a, b Number) bool { return Cmp(a, b) < 0 }

// Equal reports whether a == b.
func Equal(a, b Number) bool { return Cmp(a, b) == 0 }

// String renders n in integer form when possible, else "numerator/denominator".
func (n Number) String() string {
	if i, ok := n.ToInt(); ok {
		return strconv.FormatInt(i, 10)
	}
	return fmt.Sprintf("%d/%d", n.numerator, n.Denominator())
}

// Parse reads an optionally-signed decimal numerator, optionally followed
// by "/" and a positive power of two denominator, e.g. "3", "-7", "3/8".
// The denominator, if present, must be an exact power of two; any other
// trailing text is an error.
func Parse(s string) (Number, error) {
	n, rest, err := parsePrefix(s)
	if err != nil {
		return Number{}, err
	}
	if strings.TrimSpace(rest) != "" {
		return Number{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return n, nil
}

// parsePrefix parses a leading dyadic number off s and returns the value
// together with whatever remains unconsumed. It is exported as ParsePrefix
// for the other cgt packages that embed a dyadic number inside a larger
// grammar (Nus, CanonicalForm).
func parsePrefix(s string) (Number, string, error) {
	orig := s
	s = strings.TrimLeft(s, " \t\n\r")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return Number{}, orig, fmt.Errorf("%w: %q", ErrMalformed, orig)
	}
	numStr := s[:i]
	numerator, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return Number{}, orig, fmt.Errorf("%w: %q: %v", ErrMalformed, orig, err)
	}
	rest := s[i:]
	if strings.HasPrefix(rest, "/") {
		j := 1
		dstart := j
		for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
			j++
		}
		if j == dstart {
			return Number{}, orig, fmt.Errorf("%w: %q", ErrMalformed, orig)
		}
		denStr := rest[dstart:j]
		den, err := strconv.ParseUint(denStr, 10, 64)
		if err != nil {
			return Number{}, orig, fmt.Errorf("%w: %q: %v", ErrMalformed, orig, err)
		}
		exp, ok := log2(den)
		if !ok {
			return Number{}, orig, fmt.Errorf("%w: denominator %d is not a power of two", ErrMalformed, den)
		}
		return New(numerator, exp), rest[j:], nil
	}
	return New(numerator, 0), rest, nil
}

// ParsePrefix exposes parsePrefix for the nus and game parsers, which embed
// a dyadic number as one piece of a larger grammar.
func ParsePrefix(s string) (Number, string, error) {
	return parsePrefix(s)
}

// Ceil returns the smallest integer >= n.
func (n Number) Ceil() int64 {
	f := n.floorInt()
	if f<<n.denExp == n.numerator {
		return f
	}
	return f + 1
}

// Round returns the nearest integer to n, with ties (exact halves) rounded
// away from zero.
func (n Number) Round() int64 {
	if i, ok := n.ToInt(); ok {
		return i
	}
	f := n.floorInt()
	frac := Sub(n, FromInt(f))
	switch c := Cmp(frac, New(1, 1)); {
	case c > 0:
		return f + 1
	case c == 0 && f >= 0:
		return f + 1
	default:
		return f
	}
}

// floorInt returns the largest integer <= n.
func (n Number) floorInt() int64 {
	den := int64(1) << n.denExp
	q := n.numerator / den
	if n.numerator%den != 0 && n.numerator < 0 {
		q--
	}
	return q
}

// FromBigRat converts an exact big.Rat to a Number. It panics if the
// rational's denominator is not an exact power of two: every finite
// thermograph coordinate this module produces is dyadic by construction,
// so a non-dyadic value reaching here indicates a bug upstream, not a
// condition callers should recover from.
func FromBigRat(v *big.Rat) Number {
	den := v.Denom().Uint64()
	exp, ok := log2(den)
	if !ok {
		panic(fmt.Sprintf("dyadic: %v is not dyadic", v))
	}
	if !v.Num().IsInt64() {
		panic(fmt.Sprintf("dyadic: %v numerator overflows int64", v))
	}
	return New(v.Num().Int64(), exp)
}

func log2(n uint64) (uint, bool) {
	if n == 0 || n&(n-1) != 0 {
		return 0, false
	}
	var exp uint
	for n > 1 {
		n >>= 1
		exp++
	}
	return exp, true
}
