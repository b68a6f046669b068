// Copyright ©2024 The CGT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rational provides a signed rational extended with ±∞, used as
// the coordinate type of trajectories and thermographs. It is not a
// general-purpose numeric type: arithmetic is defined only for the
// combinations that actually arise while walking a thermograph, and it
// panics (a programmer error, not a recoverable failure) on the rest, per
// the "do not guess" rule for nonsense combinations such as ∞-∞.
package rational

import (
	"fmt"
	"math/big"
)

// kind tags which of the three cases a Rational holds.
type kind uint8

const (
	finite kind = iota
	negInf
	posInf
)

// Rational is NegInf, a finite value, or PosInf.
//
// The zero Rational is the finite value 0.
type Rational struct {
	k   kind
	val big.Rat
}

// NegInf is the unique negative-infinite value.
var NegInf = Rational{k: negInf}

// PosInf is the unique positive-infinite value.
var PosInf = Rational{k: posInf}

// Zero is the finite rational 0.
var Zero = FromInt(0)

// FromInt builds a finite rational from an integer.
func FromInt(n int64) Rational {
	var r Rational
	r.val.SetInt64(n)
	return r
}

// New builds the finite rational numerator/denominator. It panics if
// denominator is zero.
func New(numerator, denominator int64) Rational {
	if denominator == 0 {
		panic("rational: zero denominator")
	}
	var r Rational
	r.val.SetFrac64(numerator, denominator)
	return r
}

// FromBigRat builds a finite rational from an exact big.Rat.
func FromBigRat(v *big.Rat) Rational {
	var r Rational
	r.val.Set(v)
	return r
}

// IsInfinite reports whether r is NegInf or PosInf.
func (r Rational) IsInfinite() bool { return r.k != finite }

// IsFinite reports whether r holds a finite value.
func (r Rational) IsFinite() bool { return r.k == finite }

// BigRat returns the underlying exact value and true when r is finite,
// else (nil, false).
func (r Rational) BigRat() (*big.Rat, bool) {
	if r.k != finite {
		return nil, false
	}
	v := new(big.Rat).Set(&r.val)
	return v, true
}

// Sign returns -1, 0, or 1 for negative, zero, or positive r; PosInf and
// NegInf report 1 and -1 respectively.
func (r Rational) Sign() int {
	switch r.k {
	case negInf:
		return -1
	case posInf:
		return 1
	default:
		return r.val.Sign()
	}
}

// Cmp returns -1, 0, +1 as a<b, a==b, a>b, extending the ordering so that
// NegInf < every finite value < PosInf.
func Cmp(a, b Rational) int {
	if a.k != finite || b.k != finite {
		ra, rb := rank(a), rank(b)
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		default:
			return 0
		}
	}
	return a.val.Cmp(&b.val)
}

func rank(r Rational) int {
	switch r.k {
	case negInf:
		return -1
	case posInf:
		return 1
	default:
		return 0
	}
}

// Less reports whether a < b.
func Less(a, b Rational) bool { return Cmp(a, b) < 0 }

// Equal reports whether a == b.
func Equal(a, b Rational) bool { return Cmp(a, b) == 0 }

// Equal reports whether r == other. It gives Rational an Equal method so
// go-cmp compares values semantically instead of across the unexported
// big.Rat field.
func (r Rational) Equal(other Rational) bool { return Equal(r, other) }

// Add returns a+b. Defined for finite+finite and finite±∞; ∞+∞ of like
// sign returns that infinity. -∞ + +∞ is a nonsense combination and
// panics: no algorithm in this module should ever construct it.
func Add(a, b Rational) Rational {
	if a.k == finite && b.k == finite {
		var r Rational
		r.val.Add(&a.val, &b.val)
		return r
	}
	if a.k == finite {
		return b
	}
	if b.k == finite {
		return a
	}
	if a.k == b.k {
		return a
	}
	panic(fmt.Sprintf("rational: nonsense addition %v + %v", a, b))
}

// Sub returns a-b. Defined only for finite-finite: the thermograph
// machinery never subtracts infinities from one another.
func Sub(a, b Rational) Rational {
	if a.k != finite || b.k != finite {
		panic(fmt.Sprintf("rational: nonsense subtraction %v - %v", a, b))
	}
	var r Rational
	r.val.Sub(&a.val, &b.val)
	return r
}

// Neg returns -r, swapping the two infinities.
func Neg(r Rational) Rational {
	switch r.k {
	case negInf:
		return PosInf
	case posInf:
		return NegInf
	default:
		var out Rational
		out.val.Neg(&r.val)
		return out
	}
}

// Mul returns a*b. finite*finite multiplies normally; finite*∞ uses the
// finite operand's sign to pick the resulting infinity (a zero finite
// operand against an infinity is a nonsense combination and panics, as is
// ∞*∞, neither of which thermograph construction needs).
func Mul(a, b Rational) Rational {
	if a.k == finite && b.k == finite {
		var r Rational
		r.val.Mul(&a.val, &b.val)
		return r
	}
	if a.k != finite && b.k != finite {
		panic(fmt.Sprintf("rational: nonsense multiplication %v * %v", a, b))
	}
	finiteVal, inf := a, b
	if a.k != finite {
		finiteVal, inf = b, a
	}
	sign := finiteVal.val.Sign()
	if sign == 0 {
		panic(fmt.Sprintf("rational: nonsense multiplication %v * %v", a, b))
	}
	if sign > 0 {
		return inf
	}
	return Neg(inf)
}

// Div returns a/b. Defined only for finite/finite.
func Div(a, b Rational) Rational {
	if a.k != finite || b.k != finite {
		panic(fmt.Sprintf("rational: nonsense division %v / %v", a, b))
	}
	if b.val.Sign() == 0 {
		panic("rational: division by zero")
	}
	var r Rational
	r.val.Quo(&a.val, &b.val)
	return r
}

// String renders NegInf/PosInf as "-∞"/"∞" and finite values via big.Rat's
// RatString (integer form when the denominator is 1, else "num/den").
func (r Rational) String() string {
	switch r.k {
	case negInf:
		return "-∞"
	case posInf:
		return "∞"
	default:
		return r.val.RatString()
	}
}
