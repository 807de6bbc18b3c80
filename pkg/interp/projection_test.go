package interp

import (
	"math"
	"testing"

	"github.com/commelec/agent-core/pkg/expr"
	"github.com/commelec/agent-core/pkg/expr/builder"
)

// looseApproxEq allows for Dykstra's 1e-3 convergence tolerance, unlike the
// tighter approxEq used for exact closed-form results elsewhere in this
// package.
func looseApproxEq(a, b float64) bool { return math.Abs(a-b) < 5e-2 }

// Polytope {(x, y) : x <= 1, y <= 1, x + y >= 0}
func scenarioEPolytope() expr.SetExpr {
	return builder.Polytope(
		[][]expr.RealExpr{
			builder.Row(builder.R(1), builder.R(0)),
			builder.Row(builder.R(0), builder.R(1)),
			builder.Row(builder.R(-1), builder.R(-1)),
		},
		[]expr.RealExpr{builder.R(1), builder.R(1), builder.R(0)},
	)
}

func TestProjectionScenarioE(t *testing.T) {
	set := scenarioEPolytope()
	in := mustInterp(t, set, nil, builder.R(0))

	cases := []struct {
		p    Point2D
		want Point2D
	}{
		{Point2D{2, 2}, Point2D{1, 1}},
		// (-1,-1) projects onto the hyperplane x + y = 0 at its foot of
		// perpendicular, the origin, which satisfies the other constraints.
		{Point2D{-1, -1}, Point2D{0, 0}},
	}
	for _, c := range cases {
		got, err := in.Project(set, c.p, Bindings{})
		if err != nil {
			t.Fatalf("Project(%v): %v", c.p, err)
		}
		if !looseApproxEq(got[0], c.want[0]) || !looseApproxEq(got[1], c.want[1]) {
			t.Errorf("project(Set, %v) = %v, want %v", c.p, got, c.want)
		}
	}
}

// Invariant 3: membership-projection fixed point.
func TestMembershipProjectionFixedPoint(t *testing.T) {
	sets := []expr.SetExpr{
		builder.BallOf([]expr.RealExpr{builder.R(0), builder.R(0)}, builder.R(5)),
		builder.Rect(builder.Interval(builder.R(-1), builder.R(1)), builder.Interval(builder.R(-2), builder.R(2))),
		scenarioEPolytope(),
		builder.BatteryPQProfile(-5, 10, 12),
	}
	points := []Point2D{{10, 10}, {-10, -10}, {0, 0}, {3, -7}}

	for si, set := range sets {
		in := mustInterp(t, set, nil, builder.R(0))
		for _, p := range points {
			proj, err := in.Project(set, p, Bindings{})
			if err != nil {
				t.Fatalf("set %d: Project(%v): %v", si, p, err)
			}
			ok, err := in.Contains(set, proj, Bindings{})
			if err != nil {
				t.Fatalf("set %d: Contains(%v): %v", si, proj, err)
			}
			if !ok {
				t.Errorf("set %d: contains(set, project(set, %v)=%v) = false, want true", si, p, proj)
			}
		}
	}
}

// Invariant 5: intersection projection idempotence.
func TestProjectionIdempotence(t *testing.T) {
	set := builder.Intersect(
		builder.BallOf([]expr.RealExpr{builder.R(0), builder.R(0)}, builder.R(5)),
		scenarioEPolytope(),
	)
	in := mustInterp(t, set, nil, builder.R(0))

	for _, p := range []Point2D{{10, 10}, {-5, -5}, {2, 2}} {
		once, err := in.Project(set, p, Bindings{})
		if err != nil {
			t.Fatalf("Project(%v): %v", p, err)
		}
		twice, err := in.Project(set, once, Bindings{})
		if err != nil {
			t.Fatalf("Project(%v) second pass: %v", once, err)
		}
		if !looseApproxEq(once[0], twice[0]) || !looseApproxEq(once[1], twice[1]) {
			t.Errorf("project not idempotent at %v: once=%v twice=%v", p, once, twice)
		}
	}
}
