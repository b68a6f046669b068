// Copyright ©2024 The CGT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nimber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddIsXor(t *testing.T) {
	assert.Equal(t, Nimber(6), Add(Nimber(3), Nimber(5)))
	assert.Equal(t, Zero, Add(Nimber(7), Nimber(7)))
}

func TestSelfInverse(t *testing.T) {
	for k := range uint32(10) {
		n := Nimber(k)
		assert.Equal(t, n, Neg(n))
		assert.Equal(t, Zero, Add(n, n))
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "0", Zero.String())
	assert.Equal(t, "*1", Nimber(1).String())
	assert.Equal(t, "*4", Nimber(4).String())
}
