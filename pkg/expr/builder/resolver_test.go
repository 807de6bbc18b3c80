package builder

import (
	"testing"

	"github.com/commelec/agent-core/pkg/expr"
)

func TestResolveRegistersNamedNodes(t *testing.T) {
	bf := PVBeliefFunction(0.6, 0.25)
	refs, err := Resolve(nil, bf, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, ok := refs.Real["a"]; !ok {
		t.Error(`expected the belief function's Name("a") node to be registered`)
	}
}

func TestResolveDuplicateName(t *testing.T) {
	cf := Add(Named("x", R(1)), Named("x", R(2)))
	_, err := Resolve(nil, nil, cf)
	if _, ok := err.(*ErrDuplicateName); !ok {
		t.Fatalf("expected *ErrDuplicateName, got %T (%v)", err, err)
	}
}

func TestResolveSeparatesRealAndSetNamespaces(t *testing.T) {
	pq := NamedSet("shared", BallOf([]expr.RealExpr{R(0), R(0)}, R(1)))
	cf := Named("shared", R(3))
	refs, err := Resolve(pq, nil, cf)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, ok := refs.Real["shared"]; !ok {
		t.Error("real namespace missing entry")
	}
	if _, ok := refs.Set["shared"]; !ok {
		t.Error("set namespace missing entry")
	}
}
