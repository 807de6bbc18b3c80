// Package interp implements the operations a control loop performs on a
// decoded advertisement every tick: pointwise evaluation, partial
// differentiation, membership testing, axis-aligned bounding-box ("hull")
// computation and projection of a point onto a set.
//
// An Interpreter is built once per advertisement and is immutable
// thereafter: all per-call mutable state (recursion depth, variable
// bindings) is threaded through as explicit function parameters rather than
// struct fields, so a single Interpreter can safely serve concurrent
// read-only calls.
package interp

import (
	"github.com/commelec/agent-core/pkg/expr"
	"github.com/commelec/agent-core/pkg/expr/builder"
	"github.com/commelec/agent-core/pkg/wire"
)

// MaxNestingDepth bounds recursive descent through References/Names so that
// a cyclic advertisement cannot hang or crash the evaluator. The resolver
// (pkg/expr/builder) does not detect cycles statically; this counter is
// what actually catches them.
const MaxNestingDepth = 10000

// Bindings supplies the free-variable values (typically "P" and "Q") an
// expression tree is evaluated against.
type Bindings map[string]float64

// Point2D is a point in the plane, the ambient space every SetExpr in this
// codebase operates over.
type Point2D [2]float64

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Point2D
}

// HalfSpace is {x : A.x <= B}, the alternate representation a
// ConvexPolytope is projected/bounded through.
type HalfSpace struct {
	A Point2D
	B float64
}

// Interpreter binds an advertisement's three expression trees together with
// the name->node tables built by builder.Resolve, and exposes the five
// top-level operations. It holds no mutable state of its own.
type Interpreter struct {
	Adv  *wire.Advertisement
	Refs *builder.RefTable
}

// New resolves adv's reference tables and returns an Interpreter ready to
// evaluate/differentiate/test/hull/project against it.
func New(adv *wire.Advertisement) (*Interpreter, error) {
	refs, err := builder.Resolve(adv.PQProfile, adv.BeliefFunction, adv.CostFunction)
	if err != nil {
		return nil, err
	}
	return &Interpreter{Adv: adv, Refs: refs}, nil
}

func (in *Interpreter) evalRealSlice(es []expr.RealExpr, bindings Bindings, depth int) ([]float64, error) {
	out := make([]float64, len(es))
	for i, e := range es {
		v, err := in.evalReal(e, bindings, depth)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func minMax(a, b float64) (lo, hi float64) {
	if a <= b {
		return a, b
	}
	return b, a
}
