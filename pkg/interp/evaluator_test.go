package interp

import (
	"math"
	"testing"

	"github.com/commelec/agent-core/pkg/expr"
	"github.com/commelec/agent-core/pkg/expr/builder"
	"github.com/commelec/agent-core/pkg/wire"
)

func mustInterp(t *testing.T, pq, bf expr.SetExpr, cf expr.RealExpr) *Interpreter {
	t.Helper()
	adv := &wire.Advertisement{PQProfile: pq, BeliefFunction: bf, CostFunction: cf}
	in, err := New(adv)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return in
}

// P^2 + 3*P*Q^3
func polyCase() expr.RealExpr {
	return builder.Poly([]string{"P", "Q"}, 4,
		builder.PolyTerm{Exponents: []uint32{2, 0}, Coeff: 1},
		builder.PolyTerm{Exponents: []uint32{1, 3}, Coeff: 3},
	)
}

func TestPolynomialEvaluation(t *testing.T) {
	e := polyCase()
	in := mustInterp(t, nil, nil, e)
	got, err := in.Evaluate(e, Bindings{"P": 3, "Q": 5})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	want := 9.0 + 3*3*125.0
	if got != want {
		t.Errorf("evaluate(e, {P:3,Q:5}) = %v, want %v", got, want)
	}
}

func TestPolynomialPartialDerivative(t *testing.T) {
	e := polyCase()
	in := mustInterp(t, nil, nil, e)
	got, err := in.Partial(e, "P", Bindings{"P": 2, "Q": 3})
	if err != nil {
		t.Fatalf("Partial: %v", err)
	}
	want := 2*2.0 + 3*27.0
	if got != want {
		t.Errorf("partial(e, P, {P:2,Q:3}) = %v, want %v", got, want)
	}
}

func TestDerivativeMatchesFiniteDifference(t *testing.T) {
	cases := []expr.RealExpr{
		polyCase(),
		builder.Mul(builder.SinOf(builder.Var("P")), builder.CosOf(builder.Var("Q"))),
		builder.Pow(builder.Var("P"), builder.R(3)),
		builder.Div(builder.R(1), builder.Var("P")),
		builder.ExpOf(builder.Var("P")),
		builder.Sq(builder.Var("P")),
	}
	const h = 1e-6
	points := []Bindings{{"P": 1.3, "Q": 0.7}, {"P": 2.1, "Q": -0.4}}

	for ci, e := range cases {
		in := mustInterp(t, nil, nil, e)
		for _, p := range points {
			analytic, err := in.Partial(e, "P", p)
			if err != nil {
				t.Fatalf("case %d: Partial: %v", ci, err)
			}
			plus := Bindings{"P": p["P"] + h, "Q": p["Q"]}
			minus := Bindings{"P": p["P"] - h, "Q": p["Q"]}
			fp, err := in.Evaluate(e, plus)
			if err != nil {
				t.Fatalf("case %d: Evaluate(+h): %v", ci, err)
			}
			fm, err := in.Evaluate(e, minus)
			if err != nil {
				t.Fatalf("case %d: Evaluate(-h): %v", ci, err)
			}
			numeric := (fp - fm) / (2 * h)
			tol := 1e-3 * (1 + math.Abs(analytic))
			if math.Abs(analytic-numeric) > tol {
				t.Errorf("case %d at %v: analytic=%v numeric=%v (tol %v)", ci, p, analytic, numeric, tol)
			}
		}
	}
}

func TestRoundDerivativeIsIdentity(t *testing.T) {
	e := builder.RoundOf(builder.Var("P"))
	in := mustInterp(t, nil, nil, e)
	got, err := in.Partial(e, "P", Bindings{"P": 2.4})
	if err != nil {
		t.Fatalf("Partial: %v", err)
	}
	if got != 1 {
		t.Errorf("partial(round(P), P) = %v, want 1 (identity pass-through)", got)
	}
}

func TestSquareDerivativeChainRule(t *testing.T) {
	// d/dP (2P)^2 = 2 * (2P) * 2 = 8P
	e := builder.Sq(builder.Mul(builder.R(2), builder.Var("P")))
	in := mustInterp(t, nil, nil, e)
	got, err := in.Partial(e, "P", Bindings{"P": 5})
	if err != nil {
		t.Fatalf("Partial: %v", err)
	}
	want := 8 * 5.0
	if got != want {
		t.Errorf("partial = %v, want %v", got, want)
	}
}

func TestUnknownVariableError(t *testing.T) {
	e := builder.Var("Z")
	in := mustInterp(t, nil, nil, e)
	_, err := in.Evaluate(e, Bindings{"P": 1})
	if _, ok := err.(*UnknownVariableError); !ok {
		t.Fatalf("expected *UnknownVariableError, got %T (%v)", err, err)
	}
}

func TestCaseDistinctionFirstMatchWins(t *testing.T) {
	e := &expr.CaseDistinction{
		Vars: []string{"P"},
		Cases: []expr.RealCase{
			{Set: builder.BallOf([]expr.RealExpr{builder.R(0)}, builder.R(10)), Expression: builder.R(1)},
			{Set: builder.BallOf([]expr.RealExpr{builder.R(0)}, builder.R(1)), Expression: builder.R(2)},
		},
	}
	in := mustInterp(t, nil, nil, e)
	got, err := in.Evaluate(e, Bindings{"P": 0.5})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got != 1 {
		t.Errorf("expected first matching case to win, got %v", got)
	}
}

func TestCaseDistinctionUnhandled(t *testing.T) {
	e := &expr.CaseDistinction{
		Vars: []string{"P"},
		Cases: []expr.RealCase{
			{Set: builder.Point(builder.R(100)), Expression: builder.R(1)},
		},
	}
	in := mustInterp(t, nil, nil, e)
	_, err := in.Evaluate(e, Bindings{"P": 0.5})
	if _, ok := err.(*UnhandledCaseError); !ok {
		t.Fatalf("expected *UnhandledCaseError, got %T (%v)", err, err)
	}
}
