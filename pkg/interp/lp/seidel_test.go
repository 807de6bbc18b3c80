package lp

import (
	"math"
	"testing"
)

func approxEq(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestSolve2DUnitSquare(t *testing.T) {
	cs := []Constraint{
		{A: [2]float64{1, 0}, B: 1},
		{A: [2]float64{-1, 0}, B: 0},
		{A: [2]float64{0, 1}, B: 1},
		{A: [2]float64{0, -1}, B: 0},
	}
	cases := []struct {
		c    [2]float64
		want [2]float64
	}{
		{[2]float64{1, 0}, [2]float64{1, 0}},
		{[2]float64{0, 1}, [2]float64{0, 1}},
		{[2]float64{-1, -1}, [2]float64{0, 0}},
	}
	for _, c := range cases {
		got, err := Solve2D(cs, c.c)
		if err != nil {
			t.Fatalf("Solve2D(%v): %v", c.c, err)
		}
		if !approxEq(got[0], c.want[0]) || !approxEq(got[1], c.want[1]) {
			t.Errorf("Solve2D(%v) = %v, want %v", c.c, got, c.want)
		}
	}
}

func TestSolve2DInfeasible(t *testing.T) {
	cs := []Constraint{
		{A: [2]float64{1, 0}, B: -1},
		{A: [2]float64{-1, 0}, B: -1},
	}
	_, err := Solve2D(cs, [2]float64{1, 0})
	if err != ErrInfeasible {
		t.Fatalf("Solve2D: got %v, want ErrInfeasible", err)
	}
}

func TestSolve2DUnbounded(t *testing.T) {
	cs := []Constraint{
		{A: [2]float64{0, 1}, B: 1},
	}
	_, err := Solve2D(cs, [2]float64{1, 0})
	if err != ErrUnbounded {
		t.Fatalf("Solve2D: got %v, want ErrUnbounded", err)
	}
}

func BenchmarkSolve2D(b *testing.B) {
	cs := []Constraint{
		{A: [2]float64{1, 0}, B: 1},
		{A: [2]float64{-1, 0}, B: 1},
		{A: [2]float64{0, 1}, B: 1},
		{A: [2]float64{0, -1}, B: 1},
		{A: [2]float64{1, 1}, B: 1.5},
		{A: [2]float64{-1, 1}, B: 1.5},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Solve2D(cs, [2]float64{1, 1}); err != nil {
			b.Fatal(err)
		}
	}
}
