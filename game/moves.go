// Copyright ©2024 The CGT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package game

import (
	"strings"

	"gonum.org/v1/cgt/dyadic"
	"gonum.org/v1/cgt/internal/xsort"
	"gonum.org/v1/cgt/nimber"
	"gonum.org/v1/cgt/nus"
	"gonum.org/v1/cgt/rational"
	"gonum.org/v1/cgt/thermograph"
	"gonum.org/v1/cgt/trajectory"
)

// Moves holds the left and right options of a position before (or after)
// canonicalization.
type Moves struct {
	Left  []CanonicalForm
	Right []CanonicalForm
}

func (m *Moves) eliminateDuplicates() {
	m.Left = xsort.SortAndDedup(m.Left, structuralLess, Equal)
	m.Right = xsort.SortAndDedup(m.Right, structuralLess, Equal)
}

func structuralLess(a, b CanonicalForm) bool { return structuralCmp(a, b) < 0 }

// CanonicalForm reduces m to its canonical game value. It is an alias for
// [NewFromMoves].
func (m Moves) CanonicalForm() CanonicalForm { return NewFromMoves(m) }

// ToNus attempts to recognize m as a Number-Up-Star triple, mirroring the
// nine exhaustive cases a canonicalized option list can fall into.
func (m Moves) ToNus() (nus.Nus, bool) {
	numLo := len(m.Left)
	numRo := len(m.Right)

	switch {
	case numLo == 0 && numRo == 0:
		// {|}
		return nus.Nus{}, true
	case numLo == 0:
		// n-1 = {|n}
		rn, _ := m.Right[0].ToNus()
		return nus.Nus{Number: dyadic.Sub(rn.Number, dyadic.FromInt(1))}, true
	case numRo == 0:
		// n+1 = {n|}
		ln, _ := m.Left[0].ToNus()
		return nus.Nus{Number: dyadic.Add(ln.Number, dyadic.FromInt(1))}, true
	}

	if numLo == 1 && numRo == 1 {
		// {n|m}, n < m: mean of its two number options.
		if leftNumber, ok := m.Left[0].ToNumber(); ok {
			if rightNumber, ok2 := m.Right[0].ToNumber(); ok2 && dyadic.Less(leftNumber, rightNumber) {
				return nus.Nus{Number: dyadic.Mean(leftNumber, rightNumber)}, true
			}
		}
	}

	if numLo == 2 && numRo == 1 {
		// {n,n*|n}
		if leftNumber, ok := m.Left[0].ToNumber(); ok && Equal(m.Left[0], m.Right[0]) {
			if leftNus, ok2 := m.Left[1].ToNus(); ok2 && dyadic.Equal(leftNumber, leftNus.Number) &&
				leftNus.Up == 0 && leftNus.Nimber == 1 {
				return nus.Nus{Number: leftNumber, Up: 1, Nimber: 1}, true
			}
		}
	}

	if numLo == 1 && numRo == 2 {
		// Inverse of the previous case.
		if rightNumber, ok := m.Right[0].ToNumber(); ok && Equal(m.Left[0], m.Right[0]) {
			if rightNus, ok2 := m.Right[1].ToNus(); ok2 && dyadic.Equal(rightNumber, rightNus.Number) &&
				rightNus.Up == 0 && rightNus.Nimber == 1 {
				return nus.Nus{Number: rightNumber, Up: -1, Nimber: 1}, true
			}
		}
	}

	if numLo == 1 && numRo == 1 {
		// n + {0|G}, G a number-up-star with up_multiple >= 0.
		if leftNumber, ok := m.Left[0].ToNumber(); ok {
			if rightNus, ok2 := m.Right[0].ToNus(); ok2 && !rightNus.IsNumber() &&
				dyadic.Equal(leftNumber, rightNus.Number) && rightNus.Up >= 0 {
				return nus.Nus{Number: rightNus.Number, Up: rightNus.Up + 1, Nimber: nimber.Add(rightNus.Nimber, 1)}, true
			}
		}
	}

	if numLo == 1 && numRo == 1 {
		// Inverse of the previous case.
		if leftNus, ok := m.Left[0].ToNus(); ok {
			if rightNumber, ok2 := m.Right[0].ToNumber(); ok2 && !leftNus.IsNumber() &&
				dyadic.Equal(rightNumber, leftNus.Number) && leftNus.Up <= 0 {
				return nus.Nus{Number: leftNus.Number, Up: leftNus.Up - 1, Nimber: nimber.Add(leftNus.Nimber, 1)}, true
			}
		}
	}

	if numLo >= 1 && numLo == numRo {
		// n + *k
		if leftNumber, ok := m.Left[0].ToNumber(); ok && Equal(m.Left[0], m.Right[0]) {
			isNimberSum := true
			for i := 0; i < numLo; i++ {
				l, r := m.Left[i], m.Right[i]
				ln, lok := l.ToNus()
				rn, rok := r.ToNus()
				if !Equal(l, r) || !lok || !l.IsNumberUpStar() || !rok ||
					!dyadic.Equal(ln.Number, rn.Number) {
					isNimberSum = false
					break
				}
				if ln.Up != 0 || ln.Nimber != nimber.Nimber(i) {
					isNimberSum = false
					break
				}
			}
			if isNimberSum {
				return nus.Nus{Number: leftNumber, Nimber: nimber.Nimber(numLo)}, true
			}
		}
	}

	return nus.Nus{}, false
}

// eliminateDominatedMoves drops every option that is dominated by another
// option on the same side. With eliminateSmaller true this keeps the
// largest (left-option) moves; with it false, the smallest (right-option)
// moves.
func eliminateDominatedMoves(moves []CanonicalForm, eliminateSmaller bool) []CanonicalForm {
	keep := make([]bool, len(moves))
	for i := range keep {
		keep[i] = true
	}
	for i := range moves {
		if !keep[i] {
			continue
		}
		for j := 0; j < i; j++ {
			if !keep[i] {
				break
			}
			if !keep[j] {
				continue
			}
			moveI, moveJ := moves[i], moves[j]
			removeI := (eliminateSmaller && Leq(moveI, moveJ)) || (!eliminateSmaller && Leq(moveJ, moveI))
			removeJ := (eliminateSmaller && Leq(moveJ, moveI)) || (!eliminateSmaller && Leq(moveI, moveJ))
			if removeI {
				keep[i] = false
			}
			if removeJ {
				keep[j] = false
			}
		}
	}
	out := make([]CanonicalForm, 0, len(moves))
	for i, k := range keep {
		if k {
			out = append(out, moves[i])
		}
	}
	return out
}

// leqArrays reports whether no right_moves entry is <= game and no left
// option of game dominates via geqArrays. It underlies reversible-move
// detection.
func leqArrays(game CanonicalForm, leftMoves, rightMoves []*CanonicalForm) bool {
	for _, r := range rightMoves {
		if r != nil && Leq(*r, game) {
			return false
		}
	}
	for _, l := range game.ToLeftMoves() {
		if geqArrays(l, leftMoves, rightMoves) {
			return false
		}
	}
	return true
}

func geqArrays(game CanonicalForm, leftMoves, rightMoves []*CanonicalForm) bool {
	for _, l := range leftMoves {
		if l != nil && Leq(game, *l) {
			return false
		}
	}
	for _, r := range game.ToRightMoves() {
		if leqArrays(r, leftMoves, rightMoves) {
			return false
		}
	}
	return true
}

func containsCF(s []*CanonicalForm, v CanonicalForm) bool {
	for _, p := range s {
		if p != nil && Equal(*p, v) {
			return true
		}
	}
	return false
}

func toPtrSlice(s []CanonicalForm) []*CanonicalForm {
	out := make([]*CanonicalForm, len(s))
	for i := range s {
		v := s[i]
		out[i] = &v
	}
	return out
}

func flattenPtrSlice(s []*CanonicalForm) []CanonicalForm {
	out := make([]CanonicalForm, 0, len(s))
	for _, p := range s {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// bypassReversibleMovesL replaces every left option that is reversible
// through one of its own right options with that option's left options,
// splicing in place and deduplicating against moves already present.
func bypassReversibleMovesL(left, right []CanonicalForm) []CanonicalForm {
	leftMoves := toPtrSlice(left)
	rightMoves := toPtrSlice(right)

	i := 0
	for i < len(leftMoves) {
		gl := leftMoves[i]
		if gl == nil {
			i++
			continue
		}
		for _, glr := range gl.ToRightMoves() {
			if !leqArrays(glr, leftMoves, rightMoves) {
				continue
			}
			glrMoves := glr.ToLeftMoves()
			newLeft := make([]*CanonicalForm, len(leftMoves)+len(glrMoves)-1)
			copy(newLeft[:i], leftMoves[:i])
			copy(newLeft[i:len(leftMoves)-1], leftMoves[i+1:])
			for k, glrl := range glrMoves {
				glrl := glrl
				if containsCF(leftMoves, glrl) {
					newLeft[len(leftMoves)-1+k] = nil
				} else {
					newLeft[len(leftMoves)-1+k] = &glrl
				}
			}
			leftMoves = newLeft
			i--
			break
		}
		i++
	}
	return flattenPtrSlice(leftMoves)
}

// bypassReversibleMovesR is the right-side mirror of bypassReversibleMovesL.
func bypassReversibleMovesR(left, right []CanonicalForm) []CanonicalForm {
	leftMoves := toPtrSlice(left)
	rightMoves := toPtrSlice(right)

	i := 0
	for i < len(rightMoves) {
		gr := rightMoves[i]
		if gr == nil {
			i++
			continue
		}
		for _, grl := range gr.ToLeftMoves() {
			if !geqArrays(grl, leftMoves, rightMoves) {
				continue
			}
			grlMoves := grl.ToRightMoves()
			newRight := make([]*CanonicalForm, len(rightMoves)+len(grlMoves)-1)
			copy(newRight[:i], rightMoves[:i])
			copy(newRight[i:len(rightMoves)-1], rightMoves[i+1:])
			for k, grlr := range grlMoves {
				grlr := grlr
				if containsCF(rightMoves, grlr) {
					newRight[len(rightMoves)-1+k] = nil
				} else {
					newRight[len(rightMoves)-1+k] = &grlr
				}
			}
			rightMoves = newRight
			i--
			break
		}
		i++
	}
	return flattenPtrSlice(rightMoves)
}

func (m Moves) canonicalize() Moves {
	afterL := Moves{Left: bypassReversibleMovesL(m.Left, m.Right), Right: m.Right}
	afterR := Moves{Left: afterL.Left, Right: bypassReversibleMovesR(afterL.Left, afterL.Right)}
	return Moves{
		Left:  eliminateDominatedMoves(afterR.Left, true),
		Right: eliminateDominatedMoves(afterR.Right, false),
	}
}

// Thermograph builds the thermograph of m by taking the thermographic
// intersection of the left and right scaffolds formed from each option's
// own thermograph.
func (m Moves) Thermograph() thermograph.Thermograph {
	leftScaffold := trajectory.NewConstant(rational.NegInf)
	rightScaffold := trajectory.NewConstant(rational.PosInf)

	for _, l := range m.Left {
		leftScaffold = leftScaffold.Max(l.Thermograph().RightWall)
	}
	for _, r := range m.Right {
		rightScaffold = rightScaffold.Min(r.Thermograph().LeftWall)
	}

	leftScaffold.Tilt(rational.FromInt(-1))
	rightScaffold.Tilt(rational.FromInt(1))

	return thermograph.ThermographicIntersection(leftScaffold, rightScaffold)
}

// PrintDeep writes m to b using "{G^L|G^R}" notation, recursively unwrapping
// every option's own NUS representation instead of printing it compactly.
func (m Moves) PrintDeep(b *strings.Builder) {
	b.WriteByte('{')
	for idx, l := range m.Left {
		if idx != 0 {
			b.WriteByte(',')
		}
		l.ToMoves().PrintDeep(b)
	}
	b.WriteByte('|')
	for idx, r := range m.Right {
		if idx != 0 {
			b.WriteByte(',')
		}
		r.ToMoves().PrintDeep(b)
	}
	b.WriteByte('}')
}

// DeepString renders m via PrintDeep.
func (m Moves) DeepString() string {
	var b strings.Builder
	m.PrintDeep(&b)
	return b.String()
}

// String renders m using "{G^L|G^R}" notation, printing each option with
// its own compact String (NUS options print compactly, not unwrapped).
func (m Moves) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for idx, l := range m.Left {
		if idx != 0 {
			b.WriteByte(',')
		}
		b.WriteString(l.String())
	}
	b.WriteByte('|')
	for idx, r := range m.Right {
		if idx != 0 {
			b.WriteByte(',')
		}
		b.WriteString(r.String())
	}
	b.WriteByte('}')
	return b.String()
}
