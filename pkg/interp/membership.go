package interp

import "github.com/commelec/agent-core/pkg/expr"

// approxTolerance matches dykstraTau (projection.go): the membership test
// that follows a Dykstra-based projection must accept points up to that same
// convergence slack, per the "membership-projection fixed point" invariant
// ("up to a tolerance equal to the Dykstra threshold").
const approxTolerance = dykstraTau

// Contains tests whether point belongs to s.
func (in *Interpreter) Contains(s expr.SetExpr, point Point2D, bindings Bindings) (bool, error) {
	return in.membership(s, point, bindings, 0)
}

func (in *Interpreter) membership(s expr.SetExpr, point Point2D, bindings Bindings, depth int) (bool, error) {
	depth++
	if depth > MaxNestingDepth {
		return false, &MaxNestingDepthError{}
	}
	switch n := s.(type) {
	case *expr.Singleton:
		vals, err := in.evalRealSlice(n.Coords, bindings, depth)
		if err != nil {
			return false, err
		}
		return approxEqualPoint(vals, point), nil
	case *expr.Ball:
		center, err := in.evalRealSlice(n.Center, bindings, depth)
		if err != nil {
			return false, err
		}
		r, err := in.evalReal(n.Radius, bindings, depth)
		if err != nil {
			return false, err
		}
		sum := 0.0
		for i := 0; i < len(center) && i < 2; i++ {
			d := point[i] - center[i]
			sum += d * d
		}
		// The tolerance keeps membership consistent with what Project can
		// deliver: a Dykstra-projected point converges to within
		// approxTolerance of the boundary, not onto it.
		rr := r + approxTolerance
		return sum <= rr*rr, nil
	case *expr.Rectangle:
		for i, b := range n.Bounds {
			v1, err := in.evalReal(b.A, bindings, depth)
			if err != nil {
				return false, err
			}
			v2, err := in.evalReal(b.B, bindings, depth)
			if err != nil {
				return false, err
			}
			lo, hi := minMax(v1, v2)
			if i < 2 && (point[i] < lo-approxTolerance || point[i] > hi+approxTolerance) {
				return false, nil
			}
		}
		return true, nil
	case *expr.ConvexPolytope:
		halfspaces, err := in.evalPolytope(n, bindings, depth)
		if err != nil {
			return false, err
		}
		return halfspacesContain(halfspaces, point), nil
	case *expr.Intersection:
		for _, c := range n.Children {
			ok, err := in.membership(c, point, bindings, depth)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case *expr.SetName:
		return in.membership(n.Child, point, bindings, depth)
	case *expr.SetReference:
		target, ok := in.Refs.Set[n.Name]
		if !ok {
			return false, &UnknownReferenceError{Name: n.Name}
		}
		return in.membership(target, point, bindings, depth)
	default:
		return false, &UnknownNodeTypeError{Operation: "membership", Kind: "SetExpr"}
	}
}

func halfspacesContain(hs []HalfSpace, point Point2D) bool {
	for _, h := range hs {
		if h.A[0]*point[0]+h.A[1]*point[1] > h.B+approxTolerance {
			return false
		}
	}
	return true
}

func approxEqualPoint(vals []float64, point Point2D) bool {
	for i := 0; i < len(vals) && i < 2; i++ {
		d := vals[i] - point[i]
		if d < 0 {
			d = -d
		}
		if d > approxTolerance {
			return false
		}
	}
	return true
}

func (in *Interpreter) evalPolytope(n *expr.ConvexPolytope, bindings Bindings, depth int) ([]HalfSpace, error) {
	hs := make([]HalfSpace, len(n.A))
	for i, row := range n.A {
		if len(row) != 2 {
			return nil, &EvaluationError{Msg: "convex polytope rows must have exactly 2 columns in the P,Q plane"}
		}
		a0, err := in.evalReal(row[0], bindings, depth)
		if err != nil {
			return nil, err
		}
		a1, err := in.evalReal(row[1], bindings, depth)
		if err != nil {
			return nil, err
		}
		b, err := in.evalReal(n.B[i], bindings, depth)
		if err != nil {
			return nil, err
		}
		hs[i] = HalfSpace{A: Point2D{a0, a1}, B: b}
	}
	return hs, nil
}
