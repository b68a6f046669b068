// Copyright ©2024 The CGT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package thermograph implements the thermograph: a pair of piecewise
// linear walls tracing a game's value as the "temperature" of play rises,
// from which temperature, mast (mean), and cooling/heating derive.
package thermograph

import (
	"gonum.org/v1/cgt/dyadic"
	"gonum.org/v1/cgt/rational"
	"gonum.org/v1/cgt/trajectory"
)

// Thermograph is a pair of walls. Above the temperature they coincide
// into a vertical mast; below, they diverge.
type Thermograph struct {
	LeftWall  trajectory.Trajectory
	RightWall trajectory.Trajectory
}

// WithMast returns the thermograph whose walls are both the constant
// trajectory at mast.
func WithMast(mast rational.Rational) Thermograph {
	t := trajectory.NewConstant(mast)
	return Thermograph{LeftWall: t, RightWall: t}
}

// WithTrajectories builds a thermograph from the already-collected right
// walls of a game's Left options and left walls of its Right options
// (scaffolds), tilting each by ∓1 before intersecting them.
func WithTrajectories(leftMoveWalls, rightMoveWalls []trajectory.Trajectory) Thermograph {
	leftScaffold := trajectory.NewConstant(rational.NegInf)
	for _, w := range leftMoveWalls {
		leftScaffold = leftScaffold.Max(w)
	}
	leftScaffold.Tilt(rational.FromInt(-1))

	rightScaffold := trajectory.NewConstant(rational.PosInf)
	for _, w := range rightMoveWalls {
		rightScaffold = rightScaffold.Min(w)
	}
	rightScaffold.Tilt(rational.FromInt(1))

	return ThermographicIntersection(leftScaffold, rightScaffold)
}

func isConstant(t trajectory.Trajectory, v rational.Rational) bool {
	return len(t.CriticalPoints) == 0 && len(t.Slopes) == 1 && rational.Equal(t.Slopes[0], rational.Zero) &&
		len(t.XIntercepts) == 1 && rational.Equal(t.XIntercepts[0], v)
}

// ThermographicIntersection builds the bounded walls from two already
// tilted scaffolds (Left tilted by -1, Right tilted by +1). See spec §4.6
// for the hill/cave state machine this implements.
func ThermographicIntersection(leftScaffold, rightScaffold trajectory.Trajectory) Thermograph {
	if isConstant(leftScaffold, rational.PosInf) || isConstant(rightScaffold, rational.NegInf) {
		return Thermograph{LeftWall: leftScaffold, RightWall: rightScaffold}
	}

	var leftCPs, leftSlopes, leftXIntercepts []rational.Rational
	var rightCPs, rightSlopes, rightXIntercepts []rational.Rational

	negOne := rational.FromInt(-1)
	zero := rational.Zero

	lsAtBase := leftScaffold.ValueAt(negOne)
	rsAtBase := rightScaffold.ValueAt(negOne)

	var previousCaveValue rational.Rational
	haveCaveValue := false

	if rational.Less(lsAtBase, rsAtBase) ||
		(rational.Equal(lsAtBase, rsAtBase) &&
			rational.Less(leftScaffold.Slopes[len(leftScaffold.Slopes)-1], rightScaffold.Slopes[len(rightScaffold.Slopes)-1])) {
		switch {
		case rational.Less(zero, lsAtBase):
			previousCaveValue, haveCaveValue = lsAtBase, true
		case rational.Less(rsAtBase, zero):
			previousCaveValue, haveCaveValue = rsAtBase, true
		default:
			previousCaveValue, haveCaveValue = zero, true
		}
	}

	nextCPLeft := len(leftScaffold.CriticalPoints) - 1
	nextCPRight := len(rightScaffold.CriticalPoints) - 1

	for nextCPLeft >= -1 || nextCPRight >= -1 {
		var currentOwner int
		var current rational.Rational

		switch {
		case nextCPLeft == -1 && nextCPRight == -1:
			currentOwner = 0
			current = rational.PosInf
		case nextCPLeft == -1:
			currentOwner = 1
			current = rightScaffold.CriticalPoints[nextCPRight]
		case nextCPRight == -1:
			currentOwner = -1
			current = leftScaffold.CriticalPoints[nextCPLeft]
		default:
			currentOwner = rational.Cmp(leftScaffold.CriticalPoints[nextCPLeft], rightScaffold.CriticalPoints[nextCPRight])
			if currentOwner <= 0 {
				current = leftScaffold.CriticalPoints[nextCPLeft]
			} else {
				current = rightScaffold.CriticalPoints[nextCPRight]
			}
		}

		nowInHillRegion := leftScaffold.CompareToAt(rightScaffold, current) >= 0

		if !haveCaveValue && !nowInHillRegion {
			lSlope := leftScaffold.Slopes[nextCPLeft+1]
			lXInt := leftScaffold.XIntercepts[nextCPLeft+1]
			rSlope := rightScaffold.Slopes[nextCPRight+1]
			rXInt := rightScaffold.XIntercepts[nextCPRight+1]
			crossover := trajectory.IntersectionPoint(lSlope, lXInt, rSlope, rXInt)

			trajectory.ExtendTrajectory(&leftCPs, &leftSlopes, &leftXIntercepts, true, crossover, lSlope, lXInt)
			trajectory.ExtendTrajectory(&rightCPs, &rightSlopes, &rightXIntercepts, true, crossover, rSlope, rXInt)

			var caveSlope, caveIntercept rational.Rational
			switch {
			case rational.Less(leftScaffold.ValueAt(crossover), leftScaffold.ValueAt(current)):
				caveSlope, caveIntercept = lSlope, lXInt
				previousCaveValue, haveCaveValue = leftScaffold.ValueAt(current), true
			case rational.Less(rightScaffold.ValueAt(current), rightScaffold.ValueAt(crossover)):
				caveSlope, caveIntercept = rSlope, rXInt
				previousCaveValue, haveCaveValue = rightScaffold.ValueAt(current), true
			default:
				caveSlope, caveIntercept = zero, leftScaffold.ValueAt(crossover)
				previousCaveValue, haveCaveValue = caveIntercept, true
			}

			trajectory.ExtendTrajectory(&leftCPs, &leftSlopes, &leftXIntercepts, true, current, caveSlope, caveIntercept)
			trajectory.ExtendTrajectory(&rightCPs, &rightSlopes, &rightXIntercepts, true, current, caveSlope, caveIntercept)
		} else if haveCaveValue {
			lSlope := leftScaffold.Slopes[nextCPLeft+1]
			lXInt := leftScaffold.XIntercepts[nextCPLeft+1]
			rSlope := rightScaffold.Slopes[nextCPRight+1]
			rXInt := rightScaffold.XIntercepts[nextCPRight+1]

			var leftCrossing rational.Rational
			haveLeftCrossing := false
			if rational.Less(previousCaveValue, leftScaffold.ValueAt(current)) {
				leftCrossing = rational.Div(rational.Sub(previousCaveValue, lXInt), lSlope)
				haveLeftCrossing = true
			}
			var rightCrossing rational.Rational
			haveRightCrossing := false
			if rational.Less(rightScaffold.ValueAt(current), previousCaveValue) {
				rightCrossing = rational.Div(rational.Sub(previousCaveValue, rXInt), rSlope)
				haveRightCrossing = true
			}

			switch {
			case haveLeftCrossing && (!haveRightCrossing || rational.Cmp(leftCrossing, rightCrossing) <= 0):
				// Case (i): left scaffold moves past the previous cave value first.
				trajectory.ExtendTrajectory(&leftCPs, &leftSlopes, &leftXIntercepts, true, leftCrossing, zero, previousCaveValue)
				trajectory.ExtendTrajectory(&rightCPs, &rightSlopes, &rightXIntercepts, true, leftCrossing, zero, previousCaveValue)

				trajectory.ExtendTrajectory(&leftCPs, &leftSlopes, &leftXIntercepts, true, current, lSlope, lXInt)

				var newRightCP rational.Rational
				if nowInHillRegion {
					newRightCP = trajectory.IntersectionPoint(lSlope, lXInt, rSlope, rXInt)
				} else {
					previousCaveValue, haveCaveValue = leftScaffold.ValueAt(current), true
					newRightCP = current
				}
				trajectory.ExtendTrajectory(&rightCPs, &rightSlopes, &rightXIntercepts, true, newRightCP, lSlope, lXInt)
			case haveRightCrossing:
				// Case (ii): right scaffold moves past the previous cave value first.
				// The right wall's truncated mast ends at the left scaffold's own
				// crossing, which must exist whenever this case is reached.
				if !haveLeftCrossing {
					panic("thermograph: no left scaffold crossing in cave case (ii)")
				}
				trajectory.ExtendTrajectory(&leftCPs, &leftSlopes, &leftXIntercepts, true, rightCrossing, zero, previousCaveValue)
				trajectory.ExtendTrajectory(&rightCPs, &rightSlopes, &rightXIntercepts, true, leftCrossing, zero, previousCaveValue)

				trajectory.ExtendTrajectory(&rightCPs, &rightSlopes, &rightXIntercepts, true, current, rSlope, rXInt)

				var newLeftCP rational.Rational
				if nowInHillRegion {
					newLeftCP = trajectory.IntersectionPoint(lSlope, lXInt, rSlope, rXInt)
				} else {
					previousCaveValue, haveCaveValue = rightScaffold.ValueAt(current), true
					newLeftCP = current
				}
				trajectory.ExtendTrajectory(&leftCPs, &leftSlopes, &leftXIntercepts, true, newLeftCP, rSlope, rXInt)
			default:
				// Case (iii): the previous cave value remains bracketed.
				trajectory.ExtendTrajectory(&leftCPs, &leftSlopes, &leftXIntercepts, true, current, zero, previousCaveValue)
				trajectory.ExtendTrajectory(&rightCPs, &rightSlopes, &rightXIntercepts, true, current, zero, previousCaveValue)
			}
		}

		if nowInHillRegion {
			if currentOwner <= 0 {
				trajectory.ExtendTrajectory(&leftCPs, &leftSlopes, &leftXIntercepts, true, current,
					leftScaffold.Slopes[nextCPLeft+1], leftScaffold.XIntercepts[nextCPLeft+1])
			}
			if currentOwner >= 0 {
				trajectory.ExtendTrajectory(&rightCPs, &rightSlopes, &rightXIntercepts, true, current,
					rightScaffold.Slopes[nextCPRight+1], rightScaffold.XIntercepts[nextCPRight+1])
			}
			haveCaveValue = false
		}

		if currentOwner <= 0 {
			nextCPLeft--
		}
		if currentOwner >= 0 {
			nextCPRight--
		}
	}

	leftCPs = leftCPs[:len(leftCPs)-1]
	reverse(leftCPs)
	reverse(leftSlopes)
	reverse(leftXIntercepts)

	rightCPs = rightCPs[:len(rightCPs)-1]
	reverse(rightCPs)
	reverse(rightSlopes)
	reverse(rightXIntercepts)

	return Thermograph{
		LeftWall:  trajectory.Trajectory{CriticalPoints: leftCPs, Slopes: leftSlopes, XIntercepts: leftXIntercepts},
		RightWall: trajectory.Trajectory{CriticalPoints: rightCPs, Slopes: rightSlopes, XIntercepts: rightXIntercepts},
	}
}

func dyadicToRational(d dyadic.Number) rational.Rational {
	return rational.New(d.Numerator(), int64(d.Denominator()))
}

func reverse(s []rational.Rational) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func leftTemperature(t Thermograph) rational.Rational {
	if len(t.LeftWall.CriticalPoints) == 0 {
		return rational.FromInt(-1)
	}
	return t.LeftWall.CriticalPoints[0]
}

func rightTemperature(t Thermograph) rational.Rational {
	if len(t.RightWall.CriticalPoints) == 0 {
		return rational.FromInt(-1)
	}
	return t.RightWall.CriticalPoints[0]
}

// Temperature returns the y-value at which the two walls merge into the
// mast: the greater of the two walls' first critical points, falling back
// to -1 when neither has one. Every finite thermograph this module
// produces merges at a dyadic temperature.
func (t Thermograph) Temperature() dyadic.Number {
	left := leftTemperature(t)
	right := rightTemperature(t)

	if rational.Cmp(t.LeftWall.ValueAt(left), t.RightWall.ValueAt(right)) > 0 {
		panic("thermograph: left wall above right wall at temperature")
	}

	merge := left
	if rational.Cmp(right, left) > 0 {
		merge = right
	}
	v, ok := merge.BigRat()
	if !ok {
		panic("thermograph: infinite temperature")
	}
	return dyadic.FromBigRat(v)
}

// Mast returns the x-intercept of the mast. Two degenerate one-sided
// cases (an all-+∞ left wall, an all--∞ right wall) fall through to ±∞ or
// the single remaining wall's value; the two-sided finite case evaluates
// the left wall at the temperature.
func (t Thermograph) Mast() rational.Rational {
	temperature := dyadicToRational(t.Temperature())

	switch {
	case isConstant(t.LeftWall, rational.PosInf):
		if rational.Equal(t.RightWall.Slopes[0], rational.Zero) {
			return t.RightWall.ValueAt(temperature)
		}
		return rational.PosInf
	case isConstant(t.RightWall, rational.NegInf):
		if rational.Equal(t.LeftWall.Slopes[0], rational.Zero) {
			return t.LeftWall.ValueAt(temperature)
		}
		return rational.NegInf
	default:
		return t.LeftWall.ValueAt(temperature)
	}
}
