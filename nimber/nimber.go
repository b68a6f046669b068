// Copyright ©2024 The CGT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nimber provides the nim-value group: non-negative integers under
// exclusive-or addition, as used in the Sprague-Grundy theory of impartial
// games and as the star-component of a Number-Up-Star triple.
package nimber

import "strconv"

// Nimber is a nim-value *k. The group operation is bitwise XOR; every
// element is its own inverse.
type Nimber uint32

// Zero is the identity nimber, *0.
const Zero Nimber = 0

// Value returns the underlying integer k of *k.
func (n Nimber) Value() uint32 { return uint32(n) }

// Add returns a+b under XOR.
func Add(a, b Nimber) Nimber { return a ^ b }

// Neg returns -n. Every nimber is its own negative.
func Neg(n Nimber) Nimber { return n }

// Sub is the same as Add: XOR is its own inverse operation.
func Sub(a, b Nimber) Nimber { return Add(a, b) }

// Less provides a total order on nimbers, used only for table-keying and
// deterministic sorting of move lists; it carries no game-theoretic
// meaning (nimbers are not ordered with respect to game value).
func Less(a, b Nimber) bool { return a < b }

// String renders the nimber as "*k", or "0" for the zero nimber (to match
// the identity element's role as the empty game when embedded in a Nus's
// text form).
func (n Nimber) String() string {
	if n == 0 {
		return "0"
	}
	return "*" + strconv.FormatUint(uint64(n), 10)
}
