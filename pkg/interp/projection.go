package interp

import (
	"math"

	"github.com/commelec/agent-core/pkg/expr"
)

const (
	dykstraTau     = 1.0e-3
	dykstraMaxIter = 1000
)

// Project finds the closest point of s to point. Singleton, Ball and
// Rectangle project in closed form; ConvexPolytope and Intersection go
// through Dykstra's alternating-projection algorithm (Han, 1988).
func (in *Interpreter) Project(s expr.SetExpr, point Point2D, bindings Bindings) (Point2D, error) {
	return in.proj(s, point, bindings, 0)
}

func (in *Interpreter) proj(s expr.SetExpr, point Point2D, bindings Bindings, depth int) (Point2D, error) {
	depth++
	if depth > MaxNestingDepth {
		return Point2D{}, &MaxNestingDepthError{}
	}
	switch n := s.(type) {
	case *expr.Singleton:
		vals, err := in.evalRealSlice(n.Coords, bindings, depth)
		if err != nil {
			return Point2D{}, err
		}
		return pointFromSlice(vals), nil
	case *expr.Ball:
		ok, err := in.membership(n, point, bindings, depth)
		if err != nil {
			return Point2D{}, err
		}
		if ok {
			return point, nil
		}
		center, err := in.evalRealSlice(n.Center, bindings, depth)
		if err != nil {
			return Point2D{}, err
		}
		r, err := in.evalReal(n.Radius, bindings, depth)
		if err != nil {
			return Point2D{}, err
		}
		c := pointFromSlice(center)
		dx, dy := point[0]-c[0], point[1]-c[1]
		norm := math.Hypot(dx, dy)
		if norm == 0 {
			return Point2D{c[0] + r, c[1]}, nil
		}
		return Point2D{c[0] + r*dx/norm, c[1] + r*dy/norm}, nil
	case *expr.Rectangle:
		var out Point2D
		for i, b := range n.Bounds {
			if i >= 2 {
				break
			}
			v1, err := in.evalReal(b.A, bindings, depth)
			if err != nil {
				return Point2D{}, err
			}
			v2, err := in.evalReal(b.B, bindings, depth)
			if err != nil {
				return Point2D{}, err
			}
			lo, hi := minMax(v1, v2)
			out[i] = clamp(point[i], lo, hi)
		}
		return out, nil
	case *expr.ConvexPolytope:
		ok, err := in.membership(n, point, bindings, depth)
		if err != nil {
			return Point2D{}, err
		}
		if ok {
			return point, nil
		}
		hs, err := in.evalPolytope(n, bindings, depth)
		if err != nil {
			return Point2D{}, err
		}
		return dykstra(len(hs), func(i int, x Point2D) (Point2D, error) {
			return projHalfspace(hs[i], x), nil
		}, point)
	case *expr.Intersection:
		ok, err := in.membership(n, point, bindings, depth)
		if err != nil {
			return Point2D{}, err
		}
		if ok {
			return point, nil
		}
		children := n.Children
		return dykstra(len(children), func(i int, x Point2D) (Point2D, error) {
			return in.proj(children[i], x, bindings, depth)
		}, point)
	case *expr.SetName:
		return in.proj(n.Child, point, bindings, depth)
	case *expr.SetReference:
		target, ok := in.Refs.Set[n.Name]
		if !ok {
			return Point2D{}, &UnknownReferenceError{Name: n.Name}
		}
		return in.proj(target, point, bindings, depth)
	default:
		return Point2D{}, &UnknownNodeTypeError{Operation: "project", Kind: "SetExpr"}
	}
}

func projHalfspace(h HalfSpace, point Point2D) Point2D {
	val := h.A[0]*point[0] + h.A[1]*point[1]
	if val <= h.B+approxTolerance {
		return point
	}
	norm2 := h.A[0]*h.A[0] + h.A[1]*h.A[1]
	if norm2 == 0 {
		return point
	}
	scale := (val - h.B) / norm2
	return Point2D{point[0] - h.A[0]*scale, point[1] - h.A[1]*scale}
}

// dykstra runs Dykstra's alternating-projection algorithm (Han, 1988) over m
// sets, each projected through projFn, starting from start. It is shared by
// the ConvexPolytope (sets = half-spaces) and Intersection (sets = child
// SetExprs) cases.
func dykstra(m int, projFn func(i int, x Point2D) (Point2D, error), start Point2D) (Point2D, error) {
	x := make([]Point2D, m+1)
	y := make([]Point2D, m+1)
	x[m] = start
	result := start

	for iter := 0; iter < dykstraMaxIter; iter++ {
		x[0] = x[m]
		for i := 1; i <= m; i++ {
			z := Point2D{x[i-1][0] + y[i][0], x[i-1][1] + y[i][1]}
			xi, err := projFn(i-1, z)
			if err != nil {
				return Point2D{}, err
			}
			x[i] = xi
			y[i] = Point2D{z[0] - xi[0], z[1] - xi[1]}
		}
		d := math.Hypot(x[m][0]-result[0], x[m][1]-result[1])
		if d < dykstraTau {
			return x[m], nil
		}
		result = x[m]
	}
	return Point2D{}, &NoConvergenceError{Msg: "Dykstra's algorithm did not converge"}
}
