// Package lp solves small 2-D linear programs of the form
//
//	maximize   c . x
//	subject to A_i . x <= b_i   for i = 1..n
//
// using Seidel's incremental algorithm specialised to the plane.
//
// The feasible region is intersected with a large axis-aligned box before
// the incremental pass starts, which keeps every intermediate sub-problem
// bounded; a result that ends up sitting on that box's boundary is reported
// back as Unbounded, since the caller's real constraint set did not
// constrain that direction.
package lp

import (
	"errors"
	"math"
)

// ErrInfeasible is returned when no point satisfies every constraint.
var ErrInfeasible = errors.New("lp: infeasible region")

// ErrUnbounded is returned when the objective is unbounded over the
// feasible region.
var ErrUnbounded = errors.New("lp: unbounded region")

// Constraint is one half-plane A.x <= B.
type Constraint struct {
	A [2]float64
	B float64
}

const (
	boundingBoxHalfWidth = 1e9
	epsilon              = 1e-9
)

// Solve2D finds argmax c.x subject to every constraint in cs, in O(n)
// expected time for random constraint order (no such shuffle is performed
// here; advertisements carry a handful of constraints, so the worst case is
// immaterial).
func Solve2D(cs []Constraint, c [2]float64) ([2]float64, error) {
	box := []Constraint{
		{A: [2]float64{1, 0}, B: boundingBoxHalfWidth},
		{A: [2]float64{-1, 0}, B: boundingBoxHalfWidth},
		{A: [2]float64{0, 1}, B: boundingBoxHalfWidth},
		{A: [2]float64{0, -1}, B: boundingBoxHalfWidth},
	}

	x := boxCorner(c)
	accepted := box

	for _, h := range cs {
		if satisfies(h, x) {
			accepted = append(accepted, h)
			continue
		}
		next, err := lineRestrictedOptimum(accepted, h, c)
		if err != nil {
			return [2]float64{}, err
		}
		x = next
		accepted = append(accepted, h)
	}

	if math.Abs(x[0]) >= boundingBoxHalfWidth-1 || math.Abs(x[1]) >= boundingBoxHalfWidth-1 {
		return [2]float64{}, ErrUnbounded
	}
	return x, nil
}

func boxCorner(c [2]float64) [2]float64 {
	x := boundingBoxHalfWidth
	y := boundingBoxHalfWidth
	if c[0] < 0 {
		x = -x
	}
	if c[1] < 0 {
		y = -y
	}
	return [2]float64{x, y}
}

func satisfies(h Constraint, x [2]float64) bool {
	return h.A[0]*x[0]+h.A[1]*x[1] <= h.B+epsilon
}

// lineRestrictedOptimum solves the 1-D LP obtained by restricting to the
// boundary line of h, maximizing c.x subject to every constraint in prior.
func lineRestrictedOptimum(prior []Constraint, h Constraint, c [2]float64) ([2]float64, error) {
	a, b, cb := h.A[0], h.A[1], h.B
	norm2 := a*a + b*b
	if norm2 < epsilon*epsilon {
		// Degenerate constraint (0 <= B); cannot define a line.
		return [2]float64{}, ErrInfeasible
	}
	p0 := [2]float64{a * cb / norm2, b * cb / norm2}
	d := [2]float64{-b, a}

	tlo, thi := math.Inf(-1), math.Inf(1)
	for _, pc := range prior {
		denom := pc.A[0]*d[0] + pc.A[1]*d[1]
		rhs := pc.B - (pc.A[0]*p0[0] + pc.A[1]*p0[1])
		switch {
		case math.Abs(denom) < epsilon:
			if rhs < -epsilon {
				return [2]float64{}, ErrInfeasible
			}
		case denom > 0:
			if t := rhs / denom; t < thi {
				thi = t
			}
		default:
			if t := rhs / denom; t > tlo {
				tlo = t
			}
		}
	}
	if tlo > thi+epsilon {
		return [2]float64{}, ErrInfeasible
	}

	objAlongLine := c[0]*d[0] + c[1]*d[1]
	var t float64
	switch {
	case objAlongLine > epsilon:
		if math.IsInf(thi, 1) {
			return [2]float64{}, ErrUnbounded
		}
		t = thi
	case objAlongLine < -epsilon:
		if math.IsInf(tlo, -1) {
			return [2]float64{}, ErrUnbounded
		}
		t = tlo
	default:
		t = tlo
		if math.IsInf(t, -1) {
			t = thi
		}
		if math.IsInf(t, 0) {
			t = 0
		}
	}
	return [2]float64{p0[0] + t*d[0], p0[1] + t*d[1]}, nil
}
