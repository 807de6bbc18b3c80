package lang

import (
	"testing"

	"github.com/commelec/agent-core/pkg/interp"
	"github.com/commelec/agent-core/pkg/wire"
)

func evalString(t *testing.T, src string, bindings interp.Bindings) float64 {
	t.Helper()
	e, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	adv := &wire.Advertisement{CostFunction: e}
	in, err := interp.New(adv)
	if err != nil {
		t.Fatalf("interp.New: %v", err)
	}
	v, err := in.Evaluate(e, bindings)
	if err != nil {
		t.Fatalf("Evaluate(%q): %v", src, err)
	}
	return v
}

func TestParseArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"2 ^ 3", 8},
		{"-P", -4},
		{"P * P + Q", 18},
		{"max(P, Q)", 4},
		{"min(P, Q)", 2},
		{"sqrt(P)", 2},
	}
	bindings := interp.Bindings{"P": 4, "Q": 2}
	for _, c := range cases {
		got := evalString(t, c.src, bindings)
		if got != c.want {
			t.Errorf("%q = %v, want %v", c.src, got, c.want)
		}
	}
}

func TestParseUnknownFunction(t *testing.T) {
	_, err := Parse("bogus(P)")
	if err == nil {
		t.Fatal("expected error for unknown function")
	}
}
