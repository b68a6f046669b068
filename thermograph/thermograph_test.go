// Copyright ©2024 The CGT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermograph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gonum.org/v1/cgt/dyadic"
	"gonum.org/v1/cgt/rational"
	"gonum.org/v1/cgt/trajectory"
)

func TestWithMastTemperatureAndMast(t *testing.T) {
	th := WithMast(rational.FromInt(2))
	assert.Equal(t, dyadic.FromInt(-1), th.Temperature())
	assert.True(t, rational.Equal(rational.FromInt(2), th.Mast()))
}

func TestThermographicIntersectionConstantLeftShortCircuits(t *testing.T) {
	left := trajectory.NewConstant(rational.PosInf)
	right := trajectory.NewConstant(rational.FromInt(3))
	th := ThermographicIntersection(left, right)
	assert.Equal(t, left, th.LeftWall)
	assert.Equal(t, right, th.RightWall)
}

func TestThermographicIntersectionConstantRightShortCircuits(t *testing.T) {
	left := trajectory.NewConstant(rational.FromInt(-3))
	right := trajectory.NewConstant(rational.NegInf)
	th := ThermographicIntersection(left, right)
	assert.Equal(t, left, th.LeftWall)
	assert.Equal(t, right, th.RightWall)
}

func TestWithTrajectoriesOfZeroGame(t *testing.T) {
	// the empty-options zero game: left wall starts at -inf, right at +inf.
	th := WithTrajectories(nil, nil)
	assert.Equal(t, dyadic.FromInt(-1), th.Temperature())
}
