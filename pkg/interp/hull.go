package interp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/commelec/agent-core/pkg/expr"
	"github.com/commelec/agent-core/pkg/interp/lp"
)

// Hull computes the smallest axis-aligned box containing s.
func (in *Interpreter) Hull(s expr.SetExpr, bindings Bindings) (Box, error) {
	return in.hull(s, bindings, 0)
}

func (in *Interpreter) hull(s expr.SetExpr, bindings Bindings, depth int) (Box, error) {
	depth++
	if depth > MaxNestingDepth {
		return Box{}, &MaxNestingDepthError{}
	}
	switch n := s.(type) {
	case *expr.Singleton:
		vals, err := in.evalRealSlice(n.Coords, bindings, depth)
		if err != nil {
			return Box{}, err
		}
		p := pointFromSlice(vals)
		return Box{Min: p, Max: p}, nil
	case *expr.Ball:
		center, err := in.evalRealSlice(n.Center, bindings, depth)
		if err != nil {
			return Box{}, err
		}
		r, err := in.evalReal(n.Radius, bindings, depth)
		if err != nil {
			return Box{}, err
		}
		c := pointFromSlice(center)
		return Box{Min: Point2D{c[0] - r, c[1] - r}, Max: Point2D{c[0] + r, c[1] + r}}, nil
	case *expr.Rectangle:
		var lo, hi Point2D
		for i, b := range n.Bounds {
			if i >= 2 {
				break
			}
			v1, err := in.evalReal(b.A, bindings, depth)
			if err != nil {
				return Box{}, err
			}
			v2, err := in.evalReal(b.B, bindings, depth)
			if err != nil {
				return Box{}, err
			}
			lo[i], hi[i] = minMax(v1, v2)
		}
		return Box{Min: lo, Max: hi}, nil
	case *expr.ConvexPolytope:
		hs, err := in.evalPolytope(n, bindings, depth)
		if err != nil {
			return Box{}, err
		}
		return boundingBoxOfHalfspaces(hs)
	case *expr.Intersection:
		return in.hullIntersection(n, bindings, depth)
	case *expr.SetName:
		return in.hull(n.Child, bindings, depth)
	case *expr.SetReference:
		target, ok := in.Refs.Set[n.Name]
		if !ok {
			return Box{}, &UnknownReferenceError{Name: n.Name}
		}
		return in.hull(target, bindings, depth)
	default:
		return Box{}, &UnknownNodeTypeError{Operation: "hull", Kind: "SetExpr"}
	}
}

func pointFromSlice(vals []float64) Point2D {
	var p Point2D
	for i := 0; i < len(vals) && i < 2; i++ {
		p[i] = vals[i]
	}
	return p
}

// boundingBoxOfHalfspaces solves four linear programs (min/max along each
// axis) subject to the given half-space constraints.
// Each row is unit-normalized with gonum/mat before being handed to the LP
// solver, so the epsilon-inflated feasibility tests in pkg/interp/lp compare
// against a consistent scale regardless of how the advertisement's author
// scaled its polytope's coefficients.
func boundingBoxOfHalfspaces(hs []HalfSpace) (Box, error) {
	cs := make([]lp.Constraint, len(hs))
	for i, h := range hs {
		row := mat.NewVecDense(2, []float64{h.A[0], h.A[1]})
		norm := mat.Norm(row, 2)
		if norm < 1e-15 {
			cs[i] = lp.Constraint{A: h.A, B: h.B}
			continue
		}
		cs[i] = lp.Constraint{A: [2]float64{h.A[0] / norm, h.A[1] / norm}, B: h.B / norm}
	}

	xmax, err := lp.Solve2D(cs, [2]float64{1, 0})
	if err != nil {
		return Box{}, wrapLPError(err)
	}
	xmin, err := lp.Solve2D(cs, [2]float64{-1, 0})
	if err != nil {
		return Box{}, wrapLPError(err)
	}
	ymax, err := lp.Solve2D(cs, [2]float64{0, 1})
	if err != nil {
		return Box{}, wrapLPError(err)
	}
	ymin, err := lp.Solve2D(cs, [2]float64{0, -1})
	if err != nil {
		return Box{}, wrapLPError(err)
	}
	return Box{
		Min: Point2D{xmin[0], ymin[1]},
		Max: Point2D{xmax[0], ymax[1]},
	}, nil
}

// wrapLPError keeps lp.ErrInfeasible/lp.ErrUnbounded discriminable via
// errors.Is while adding the hull context.
func wrapLPError(err error) error {
	return fmt.Errorf("interp: computing bounding box: %w", err)
}

// hullIntersection special-cases Intersection: ConvexPolytope children have
// their half-space
// constraints merged (since a single polytope may itself be unbounded),
// while every other child's hull is intersected directly; if any polytope
// was present, the merged box of the non-polytope children is folded back
// in as four extra constraints before solving the final bounding box by LP.
func (in *Interpreter) hullIntersection(n *expr.Intersection, bindings Bindings, depth int) (Box, error) {
	var mergedA [][2]float64
	var mergedB []float64
	haveBox := false
	var boxResult Box

	for _, child := range n.Children {
		if poly, ok := child.(*expr.ConvexPolytope); ok {
			hs, err := in.evalPolytope(poly, bindings, depth)
			if err != nil {
				return Box{}, err
			}
			for _, h := range hs {
				mergedA = append(mergedA, h.A)
				mergedB = append(mergedB, h.B)
			}
			continue
		}
		b, err := in.hull(child, bindings, depth)
		if err != nil {
			return Box{}, err
		}
		if !haveBox {
			boxResult = b
			haveBox = true
		} else {
			boxResult = intersectBox(boxResult, b)
		}
	}

	if len(mergedA) == 0 {
		if !haveBox {
			return Box{}, &EvaluationError{Msg: "intersection has no children"}
		}
		return boxResult, nil
	}

	if haveBox {
		mergedA = append(mergedA,
			[2]float64{1, 0}, [2]float64{-1, 0}, [2]float64{0, 1}, [2]float64{0, -1})
		mergedB = append(mergedB, boxResult.Max[0], -boxResult.Min[0], boxResult.Max[1], -boxResult.Min[1])
	}

	hs := make([]HalfSpace, len(mergedA))
	for i := range mergedA {
		hs[i] = HalfSpace{A: mergedA[i], B: mergedB[i]}
	}
	return boundingBoxOfHalfspaces(hs)
}

func intersectBox(a, b Box) Box {
	return Box{
		Min: Point2D{math.Max(a.Min[0], b.Min[0]), math.Max(a.Min[1], b.Min[1])},
		Max: Point2D{math.Min(a.Max[0], b.Max[0]), math.Min(a.Max[1], b.Max[1])},
	}
}
