package builder

import (
	"fmt"

	"github.com/commelec/agent-core/pkg/expr"
)

// RefTable holds the name->node lookups built by a single pass over an
// advertisement's three expression trees. It does not detect reference
// cycles; those are caught at evaluation time by a bounded nesting-depth
// counter (pkg/interp).
type RefTable struct {
	Real map[string]expr.RealExpr
	Set  map[string]expr.SetExpr
}

// ErrDuplicateName is returned when two Name (or SetName) nodes in the same
// advertisement register the same name.
type ErrDuplicateName struct {
	Name string
}

func (e *ErrDuplicateName) Error() string {
	return fmt.Sprintf("duplicate name %q in advertisement", e.Name)
}

// Resolve walks pqProfile, beliefFunction and costFunction exactly once,
// registering every Name/SetName node it finds.
func Resolve(pqProfile, beliefFunction expr.SetExpr, costFunction expr.RealExpr) (*RefTable, error) {
	t := &RefTable{
		Real: make(map[string]expr.RealExpr),
		Set:  make(map[string]expr.SetExpr),
	}
	if costFunction != nil {
		if err := t.walkReal(costFunction); err != nil {
			return nil, err
		}
	}
	if pqProfile != nil {
		if err := t.walkSet(pqProfile); err != nil {
			return nil, err
		}
	}
	if beliefFunction != nil {
		if err := t.walkSet(beliefFunction); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *RefTable) walkReal(e expr.RealExpr) error {
	switch n := e.(type) {
	case *expr.Name:
		if _, exists := t.Real[n.Name]; exists {
			return &ErrDuplicateName{Name: n.Name}
		}
		t.Real[n.Name] = n.Child
		return t.walkReal(n.Child)
	case *expr.UnaryOp:
		return t.walkReal(n.Arg)
	case *expr.BinaryOp:
		if err := t.walkReal(n.A); err != nil {
			return err
		}
		return t.walkReal(n.B)
	case *expr.ListOp:
		for _, a := range n.Args {
			if err := t.walkReal(a); err != nil {
				return err
			}
		}
		return nil
	case *expr.CaseDistinction:
		for _, c := range n.Cases {
			if err := t.walkSet(c.Set); err != nil {
				return err
			}
			if err := t.walkReal(c.Expression); err != nil {
				return err
			}
		}
		return nil
	case *expr.Real, *expr.Variable, *expr.Reference, *expr.Polynomial, nil:
		return nil
	default:
		return nil
	}
}

func (t *RefTable) walkSet(s expr.SetExpr) error {
	switch n := s.(type) {
	case *expr.SetName:
		if _, exists := t.Set[n.Name]; exists {
			return &ErrDuplicateName{Name: n.Name}
		}
		t.Set[n.Name] = n.Child
		return t.walkSet(n.Child)
	case *expr.Singleton:
		for _, c := range n.Coords {
			if err := t.walkReal(c); err != nil {
				return err
			}
		}
		return nil
	case *expr.Ball:
		for _, c := range n.Center {
			if err := t.walkReal(c); err != nil {
				return err
			}
		}
		return t.walkReal(n.Radius)
	case *expr.Rectangle:
		for _, b := range n.Bounds {
			if err := t.walkReal(b.A); err != nil {
				return err
			}
			if err := t.walkReal(b.B); err != nil {
				return err
			}
		}
		return nil
	case *expr.ConvexPolytope:
		for _, row := range n.A {
			for _, e := range row {
				if err := t.walkReal(e); err != nil {
					return err
				}
			}
		}
		for _, e := range n.B {
			if err := t.walkReal(e); err != nil {
				return err
			}
		}
		return nil
	case *expr.Intersection:
		for _, c := range n.Children {
			if err := t.walkSet(c); err != nil {
				return err
			}
		}
		return nil
	case *expr.SetCaseDistinction:
		for _, c := range n.Cases {
			if err := t.walkSet(c.Set); err != nil {
				return err
			}
			if err := t.walkSet(c.Expression); err != nil {
				return err
			}
		}
		return nil
	case *expr.SetReference, nil:
		return nil
	default:
		return nil
	}
}
