package interp

import (
	"testing"

	"github.com/commelec/agent-core/pkg/expr"
	"github.com/commelec/agent-core/pkg/expr/builder"
)

func TestBallMembership(t *testing.T) {
	set := builder.BallOf([]expr.RealExpr{builder.R(1), builder.R(1)}, builder.R(2))
	in := mustInterp(t, set, nil, builder.R(0))

	cases := []struct {
		p    Point2D
		want bool
	}{
		{Point2D{1, 1}, true},
		{Point2D{3, 1}, true},
		{Point2D{3.1, 1}, false},
	}
	for _, c := range cases {
		got, err := in.Contains(set, c.p, Bindings{})
		if err != nil {
			t.Fatalf("Contains(%v): %v", c.p, err)
		}
		if got != c.want {
			t.Errorf("contains(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestIntersectionMembershipRequiresEveryChild(t *testing.T) {
	a := builder.Rect(builder.Interval(builder.R(0), builder.R(10)), builder.Interval(builder.R(0), builder.R(10)))
	b := builder.BallOf([]expr.RealExpr{builder.R(0), builder.R(0)}, builder.R(3))
	set := builder.Intersect(a, b)
	in := mustInterp(t, set, nil, builder.R(0))

	got, err := in.Contains(set, Point2D{5, 5}, Bindings{})
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if got {
		t.Error("expected point outside the ball's radius to be rejected by the intersection")
	}
}

// Scenario F: a self-referencing cost function decodes fine but raises on
// evaluation once the nesting-depth guard trips.
func TestCyclicReferenceRaisesOnEvaluate(t *testing.T) {
	cyclic := &expr.Name{Name: "a", Child: &expr.Reference{Name: "a"}}
	in := mustInterp(t, nil, nil, cyclic)

	_, err := in.Evaluate(cyclic, Bindings{})
	if err == nil {
		t.Fatal("expected an error from a self-referencing expression, got nil")
	}
	if _, ok := err.(*MaxNestingDepthError); !ok {
		t.Fatalf("expected *MaxNestingDepthError, got %T (%v)", err, err)
	}
}

func TestMembershipUnknownReference(t *testing.T) {
	set := &expr.SetReference{Name: "missing"}
	in := mustInterp(t, nil, nil, builder.R(0))
	_, err := in.Contains(set, Point2D{0, 0}, Bindings{})
	if _, ok := err.(*UnknownReferenceError); !ok {
		t.Fatalf("expected *UnknownReferenceError, got %T (%v)", err, err)
	}
}
