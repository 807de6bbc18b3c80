package interp

import (
	"math"
	"testing"

	"github.com/commelec/agent-core/pkg/expr"
	"github.com/commelec/agent-core/pkg/expr/builder"
)

const eps = 1e-6

func approxEq(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

// Set = Intersection(Ball(center=(0,0), radius=5), Polytope({x <= 3}))
// hull = [-5, 3] x [-5, 5]
func TestHullOfCroppedDisk(t *testing.T) {
	disk := builder.BallOf([]expr.RealExpr{builder.R(0), builder.R(0)}, builder.R(5))
	halfplane := builder.Polytope(
		[][]expr.RealExpr{builder.Row(builder.R(1), builder.R(0))},
		[]expr.RealExpr{builder.R(3)},
	)
	set := builder.Intersect(disk, halfplane)

	in := mustInterp(t, set, nil, builder.R(0))
	box, err := in.Hull(set, Bindings{})
	if err != nil {
		t.Fatalf("Hull: %v", err)
	}
	want := Box{Min: Point2D{-5, -5}, Max: Point2D{3, 5}}
	if !approxEq(box.Min[0], want.Min[0]) || !approxEq(box.Min[1], want.Min[1]) ||
		!approxEq(box.Max[0], want.Max[0]) || !approxEq(box.Max[1], want.Max[1]) {
		t.Errorf("hull = %+v, want %+v", box, want)
	}
}

func TestHullContainsEverySampledPoint(t *testing.T) {
	set := builder.BatteryPQProfile(-5, 10, 12)
	in := mustInterp(t, set, nil, builder.R(0))
	box, err := in.Hull(set, Bindings{})
	if err != nil {
		t.Fatalf("Hull: %v", err)
	}
	samples := []Point2D{{2, 0}, {-5, 0}, {10, 0}, {0, 12}, {0, -12}, {7, 3}}
	for _, p := range samples {
		ok, err := in.Contains(set, p, Bindings{})
		if err != nil {
			t.Fatalf("Contains(%v): %v", p, err)
		}
		if !ok {
			continue
		}
		if p[0] < box.Min[0]-eps || p[0] > box.Max[0]+eps || p[1] < box.Min[1]-eps || p[1] > box.Max[1]+eps {
			t.Errorf("hull %+v does not contain member point %v", box, p)
		}
	}
}

// Scenario A: battery PQ profile hull = [-5, 10] x [-12, 12]
func TestBatteryScenarioAHull(t *testing.T) {
	set := builder.BatteryPQProfile(-5, 10, 12)
	in := mustInterp(t, set, nil, builder.R(0))
	box, err := in.Hull(set, Bindings{})
	if err != nil {
		t.Fatalf("Hull: %v", err)
	}
	want := Box{Min: Point2D{-5, -12}, Max: Point2D{10, 12}}
	if !approxEq(box.Min[0], want.Min[0]) || !approxEq(box.Min[1], want.Min[1]) ||
		!approxEq(box.Max[0], want.Max[0]) || !approxEq(box.Max[1], want.Max[1]) {
		t.Errorf("hull = %+v, want %+v", box, want)
	}
}

func TestBatteryScenarioAMembership(t *testing.T) {
	set := builder.BatteryPQProfile(-5, 10, 12)
	in := mustInterp(t, set, nil, builder.R(0))

	cases := []struct {
		p    Point2D
		want bool
	}{
		{Point2D{2, 0}, true},
		{Point2D{11, 0}, false},
		{Point2D{0, 13}, false},
	}
	for _, c := range cases {
		got, err := in.Contains(set, c.p, Bindings{})
		if err != nil {
			t.Fatalf("Contains(%v): %v", c.p, err)
		}
		if got != c.want {
			t.Errorf("contains(pqProfile, %v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestBatteryScenarioACostFunction(t *testing.T) {
	cost := builder.BatteryCostQuadratic(1, 1)
	in := mustInterp(t, nil, nil, cost)
	got, err := in.Evaluate(cost, Bindings{"P": 2, "Q": 0})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	want := 0.5*4 + 0.5*2
	if !approxEq(got, want) {
		t.Errorf("cost = %v, want %v", got, want)
	}
}
