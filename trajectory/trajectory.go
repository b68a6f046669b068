// Copyright ©2024 The CGT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trajectory implements continuous piecewise-linear functions on
// the half-open interval y ∈ [-1, +∞), the scaffolding from which
// thermographs are built.
package trajectory

import (
	"fmt"
	"strings"

	"gonum.org/v1/cgt/rational"
)

// Trajectory is a continuous piecewise-linear function of y with rational
// slopes, defined on [-1, +∞).
//
// CriticalPoints is strictly decreasing and every entry lies in (-1, +∞).
// Slopes and XIntercepts both have len(CriticalPoints)+1 entries, ordered
// top-down: index 0 is the topmost (y greater than every critical point)
// piece. XIntercepts[i] is the value at y=0 of the line carrying
// Slopes[i]; pieces must join continuously at each critical point.
type Trajectory struct {
	CriticalPoints []rational.Rational
	Slopes         []rational.Rational
	XIntercepts    []rational.Rational
}

// NewConstant returns the trajectory with constant value r at every y.
func NewConstant(r rational.Rational) Trajectory {
	return Trajectory{
		Slopes:      []rational.Rational{rational.Zero},
		XIntercepts: []rational.Rational{r},
	}
}

// New validates and builds a trajectory from a mast value (the x-intercept
// above the topmost critical point), critical points, and slopes.
// Reports ok=false when the lengths disagree, when CriticalPoints is not
// strictly decreasing, or when any critical point is <= -1.
func New(mast rational.Rational, criticalPoints, slopes []rational.Rational) (Trajectory, bool) {
	if len(slopes) != len(criticalPoints)+1 {
		return Trajectory{}, false
	}
	for i := 1; i < len(criticalPoints); i++ {
		if rational.Cmp(criticalPoints[i-1], criticalPoints[i]) <= 0 {
			return Trajectory{}, false
		}
	}
	negOne := rational.FromInt(-1)
	for _, c := range criticalPoints {
		if rational.Cmp(c, negOne) <= 0 {
			return Trajectory{}, false
		}
	}

	xIntercepts := make([]rational.Rational, len(slopes))
	if len(criticalPoints) == 0 {
		xIntercepts[0] = mast
	} else {
		value := mast
		for i := range criticalPoints {
			if i > 0 {
				value = rational.Sub(value, rational.Mul(rational.Sub(criticalPoints[i-1], criticalPoints[i]), slopes[i]))
			}
			xIntercepts[i] = rational.Sub(value, rational.Mul(criticalPoints[i], slopes[i]))
		}
		last := len(criticalPoints)
		xIntercepts[last] = rational.Sub(value, rational.Mul(criticalPoints[last-1], slopes[last]))
	}

	return Trajectory{CriticalPoints: criticalPoints, Slopes: slopes, XIntercepts: xIntercepts}, true
}

// IsInfinite reports whether the topmost x-intercept is ±∞.
func (t Trajectory) IsInfinite() bool {
	return t.XIntercepts[0].IsInfinite()
}

// MastXIntercept returns the x-intercept of the topmost (mast) piece.
func (t Trajectory) MastXIntercept() rational.Rational {
	return t.XIntercepts[0]
}

// Tilt adds r to every slope. Tilt is a no-op on an infinite trajectory
// (its mast has no well-defined finite slope to tilt).
func (t *Trajectory) Tilt(r rational.Rational) {
	if t.IsInfinite() {
		return
	}
	for i := range t.Slopes {
		t.Slopes[i] = rational.Add(t.Slopes[i], r)
	}
}

// ValueAt evaluates the trajectory at height y.
func (t Trajectory) ValueAt(y rational.Rational) rational.Rational {
	i := 0
	for i < len(t.CriticalPoints) && rational.Less(y, t.CriticalPoints[i]) {
		i++
	}
	if y.IsInfinite() && rational.Equal(t.Slopes[i], rational.Zero) {
		return t.XIntercepts[i]
	}
	return rational.Add(rational.Mul(y, t.Slopes[i]), t.XIntercepts[i])
}

// CompareToAt compares this trajectory's value against other's at height
// y, returning -1/0/+1. At y=+∞ the comparison is by top slope, falling
// back to top x-intercept on a tie, avoiding the 0·∞ evaluation. CompareToAt
// panics (a programmer error) if y < -1.
func (t Trajectory) CompareToAt(other Trajectory, y rational.Rational) int {
	if rational.Less(y, rational.FromInt(-1)) {
		panic("trajectory: y < -1")
	}
	if rational.Equal(y, rational.PosInf) {
		if rational.Equal(t.Slopes[0], other.Slopes[0]) {
			return rational.Cmp(t.XIntercepts[0], other.XIntercepts[0])
		}
		return rational.Cmp(t.Slopes[0], other.Slopes[0])
	}
	return rational.Cmp(t.ValueAt(y), other.ValueAt(y))
}

// IntersectionPoint returns the y-coordinate where the two lines
// (slope1, xIntercept1) and (slope2, xIntercept2) meet. The caller must
// ensure slope1 != slope2.
func IntersectionPoint(slope1, xIntercept1, slope2, xIntercept2 rational.Rational) rational.Rational {
	return rational.Div(rational.Sub(xIntercept2, xIntercept1), rational.Sub(slope1, slope2))
}

// extendTrajectory appends a piece to the bottom of an under-construction
// trajectory, collapsing the no-op cases: a new critical point equal to
// -1 or to the trajectory's current bottom, and a new slope equal to the
// current bottom slope (in which case only the critical point is raised,
// when upwards).
func extendTrajectory(upwards bool, cps, slopes, xIntercepts *[]rational.Rational, newCP, newSlope, newXIntercept rational.Rational) {
	switch {
	case rational.Equal(newCP, rational.FromInt(-1)) || (len(*cps) > 0 && rational.Equal((*cps)[len(*cps)-1], newCP)):
		return
	case len(*slopes) > 0 && rational.Equal((*slopes)[len(*slopes)-1], newSlope):
		if upwards {
			(*cps)[len(*cps)-1] = newCP
		}
	default:
		*cps = append(*cps, newCP)
		*slopes = append(*slopes, newSlope)
		*xIntercepts = append(*xIntercepts, newXIntercept)
	}
}

// Max returns the pointwise supremum of t and other.
func (t Trajectory) Max(other Trajectory) Trajectory {
	return t.minmax(other, true)
}

// Min returns the pointwise infimum of t and other.
func (t Trajectory) Min(other Trajectory) Trajectory {
	return t.minmax(other, false)
}

// minmax implements both Max (max=true) and Min (max=false) by a single
// top-down scan over the merged critical points of t and other (from the
// highest critical point down to y=-1), tracking which trajectory
// dominates above the current level and inserting a crossing critical
// point whenever dominance flips. See spec §4.5.
func (t Trajectory) minmax(other Trajectory, max bool) Trajectory {
	sign := 1
	if max {
		sign = -1
	}

	nextSelf, nextOther := 0, 0
	var newCPs, newSlopes, newXIntercepts []rational.Rational

	dominantAtPrev := 0
	if !t.IsInfinite() && !other.IsInfinite() {
		dominantAtPrev = sign * rational.Cmp(t.Slopes[0], other.Slopes[0])
	}
	if dominantAtPrev == 0 {
		dominantAtPrev = sign * rational.Cmp(t.XIntercepts[0], other.XIntercepts[0])
	}

	for {
		var currentOwner int
		var current rational.Rational

		if nextSelf == len(t.CriticalPoints) && nextOther == len(other.CriticalPoints) {
			currentOwner = 0
			current = rational.FromInt(-1)
		} else if nextSelf == len(t.CriticalPoints) {
			currentOwner = 1
			current = other.CriticalPoints[nextOther]
		} else if nextOther == len(other.CriticalPoints) {
			currentOwner = -1
			current = t.CriticalPoints[nextSelf]
		} else {
			currentOwner = rational.Cmp(other.CriticalPoints[nextOther], t.CriticalPoints[nextSelf])
			if currentOwner <= 0 {
				current = t.CriticalPoints[nextSelf]
			} else {
				current = other.CriticalPoints[nextOther]
			}
		}

		dominantAtCurrent := sign * rational.Cmp(t.ValueAt(current), other.ValueAt(current))

		if (dominantAtCurrent < 0 && dominantAtPrev > 0) || (dominantAtCurrent > 0 && dominantAtPrev < 0) {
			crossover := IntersectionPoint(t.Slopes[nextSelf], t.XIntercepts[nextSelf], other.Slopes[nextOther], other.XIntercepts[nextOther])
			newCPs = append(newCPs, crossover)
			if dominantAtPrev < 0 {
				newSlopes = append(newSlopes, t.Slopes[nextSelf])
				newXIntercepts = append(newXIntercepts, t.XIntercepts[nextSelf])
			} else {
				newSlopes = append(newSlopes, other.Slopes[nextOther])
				newXIntercepts = append(newXIntercepts, other.XIntercepts[nextOther])
			}
		}

		if rational.Equal(current, rational.FromInt(-1)) {
			break
		}

		switch {
		case dominantAtCurrent < 0 && currentOwner <= 0:
			newCPs = append(newCPs, current)
			newSlopes = append(newSlopes, t.Slopes[nextSelf])
			newXIntercepts = append(newXIntercepts, t.XIntercepts[nextSelf])
		case dominantAtCurrent > 0 && currentOwner >= 0:
			newCPs = append(newCPs, current)
			newSlopes = append(newSlopes, other.Slopes[nextOther])
			newXIntercepts = append(newXIntercepts, other.XIntercepts[nextOther])
		case dominantAtCurrent == 0:
			dominantSlopeAbove := sign * rational.Cmp(t.Slopes[nextSelf], other.Slopes[nextOther])
			var slopeAbove rational.Rational
			if dominantSlopeAbove < 0 {
				slopeAbove = t.Slopes[nextSelf]
			} else {
				slopeAbove = other.Slopes[nextOther]
			}

			selfBelow := t.Slopes[nextSelf]
			if currentOwner <= 0 {
				selfBelow = t.Slopes[nextSelf+1]
			}
			otherBelow := other.Slopes[nextOther]
			if currentOwner >= 0 {
				otherBelow = other.Slopes[nextOther+1]
			}

			var slopeBelow rational.Rational
			if max {
				slopeBelow = minRational(selfBelow, otherBelow)
			} else {
				slopeBelow = maxRational(selfBelow, otherBelow)
			}

			if !rational.Equal(slopeAbove, slopeBelow) {
				newCPs = append(newCPs, current)
				newSlopes = append(newSlopes, slopeAbove)
				if dominantSlopeAbove < 0 {
					newXIntercepts = append(newXIntercepts, t.XIntercepts[nextSelf])
				} else {
					newXIntercepts = append(newXIntercepts, other.XIntercepts[nextOther])
				}
			}
		}

		if currentOwner <= 0 {
			nextSelf++
		}
		if currentOwner >= 0 {
			nextOther++
		}
		dominantAtPrev = dominantAtCurrent
	}

	negOne := rational.FromInt(-1)
	dominantAtTail := sign * rational.Cmp(t.ValueAt(negOne), other.ValueAt(negOne))
	if dominantAtTail == 0 {
		dominantAtTail = sign * rational.Cmp(t.Slopes[len(t.Slopes)-1], other.Slopes[len(other.Slopes)-1])
	}
	if dominantAtTail < 0 {
		newSlopes = append(newSlopes, t.Slopes[len(t.Slopes)-1])
		newXIntercepts = append(newXIntercepts, t.XIntercepts[len(t.XIntercepts)-1])
	} else {
		newSlopes = append(newSlopes, other.Slopes[len(other.Slopes)-1])
		newXIntercepts = append(newXIntercepts, other.XIntercepts[len(other.XIntercepts)-1])
	}

	return Trajectory{CriticalPoints: newCPs, Slopes: newSlopes, XIntercepts: newXIntercepts}
}

func minRational(a, b rational.Rational) rational.Rational {
	if rational.Less(a, b) {
		return a
	}
	return b
}

func maxRational(a, b rational.Rational) rational.Rational {
	if rational.Less(a, b) {
		return b
	}
	return a
}

// String renders the trajectory as "Trajectory(mast, [critical points], [slopes])".
func (t Trajectory) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Trajectory(%v, [", t.MastXIntercept())
	for i, c := range t.CriticalPoints {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", c)
	}
	b.WriteString("], [")
	for i, s := range t.Slopes {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", s)
	}
	b.WriteString("])")
	return b.String()
}

// ExtendTrajectory is the exported hook thermograph construction uses to
// append a piece to an under-construction trajectory from outside this
// package, implementing the same collapsing rules as the internal helper
// used by Max/Min.
func ExtendTrajectory(cps, slopes, xIntercepts *[]rational.Rational, upwards bool, newCP, newSlope, newXIntercept rational.Rational) {
	extendTrajectory(upwards, cps, slopes, xIntercepts, newCP, newSlope, newXIntercept)
}
