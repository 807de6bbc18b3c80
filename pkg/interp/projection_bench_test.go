package interp

import (
	"testing"

	"github.com/commelec/agent-core/pkg/expr"
	"github.com/commelec/agent-core/pkg/expr/builder"
	"github.com/commelec/agent-core/pkg/wire"
)

func BenchmarkProjectIntersection(b *testing.B) {
	set := builder.Intersect(
		builder.BallOf([]expr.RealExpr{builder.R(0), builder.R(0)}, builder.R(5)),
		scenarioEPolytope(),
	)
	adv := &wire.Advertisement{PQProfile: set, CostFunction: builder.R(0)}
	in, err := New(adv)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := in.Project(set, Point2D{10, 10}, Bindings{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHullBatteryProfile(b *testing.B) {
	set := builder.BatteryPQProfile(-5, 10, 12)
	adv := &wire.Advertisement{PQProfile: set, CostFunction: builder.R(0)}
	in, err := New(adv)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := in.Hull(set, Bindings{}); err != nil {
			b.Fatal(err)
		}
	}
}
