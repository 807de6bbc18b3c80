// Package builder provides value constructors and free functions for
// assembling expr.RealExpr / expr.SetExpr trees at runtime. Advertisements
// are small and built once per control tick, so plain runtime construction
// is all that is needed.
package builder

import "github.com/commelec/agent-core/pkg/expr"

// R wraps a float64 literal as a RealExpr.
func R(x float64) expr.RealExpr { return &expr.Real{X: x} }

// Var references a free variable, typically "P" or "Q".
func Var(name string) expr.RealExpr { return &expr.Variable{Name: name} }

// Ref points at a Name-registered node elsewhere in the advertisement.
func Ref(name string) expr.RealExpr { return &expr.Reference{Name: name} }

// Named registers child under name, returning a transparent wrapper.
func Named(name string, child expr.RealExpr) expr.RealExpr {
	return &expr.Name{Name: name, Child: child}
}

func unary(op expr.UnaryOpKind, arg expr.RealExpr) expr.RealExpr {
	return &expr.UnaryOp{Op: op, Arg: arg}
}

// Neg negates its argument.
func Neg(x expr.RealExpr) expr.RealExpr { return unary(expr.Negate, x) }

// ExpOf is e^x.
func ExpOf(x expr.RealExpr) expr.RealExpr { return unary(expr.Exp, x) }

// SinOf is sin(x).
func SinOf(x expr.RealExpr) expr.RealExpr { return unary(expr.Sin, x) }

// CosOf is cos(x).
func CosOf(x expr.RealExpr) expr.RealExpr { return unary(expr.Cos, x) }

// TanOf is tan(x).
func TanOf(x expr.RealExpr) expr.RealExpr { return unary(expr.Tan, x) }

// Sq is x^2, evaluated without calling Pow.
func Sq(x expr.RealExpr) expr.RealExpr { return unary(expr.Square, x) }

// SqrtOf is sqrt(x).
func SqrtOf(x expr.RealExpr) expr.RealExpr { return unary(expr.Sqrt, x) }

// Log10Of is log10(x).
func Log10Of(x expr.RealExpr) expr.RealExpr { return unary(expr.Log10, x) }

// LnOf is the natural logarithm of x.
func LnOf(x expr.RealExpr) expr.RealExpr { return unary(expr.Ln, x) }

// Inv is 1/x.
func Inv(x expr.RealExpr) expr.RealExpr { return unary(expr.MultInv, x) }

// RoundOf rounds x to the nearest integer.
func RoundOf(x expr.RealExpr) expr.RealExpr { return unary(expr.Round, x) }

// FloorOf is floor(x).
func FloorOf(x expr.RealExpr) expr.RealExpr { return unary(expr.Floor, x) }

// CeilOf is ceil(x).
func CeilOf(x expr.RealExpr) expr.RealExpr { return unary(expr.Ceil, x) }

// AbsOf is |x|.
func AbsOf(x expr.RealExpr) expr.RealExpr { return unary(expr.Abs, x) }

// SignOf is -1/0/1 depending on the sign of x.
func SignOf(x expr.RealExpr) expr.RealExpr { return unary(expr.Sign, x) }

func binary(op expr.BinaryOpKind, a, b expr.RealExpr) expr.RealExpr {
	return &expr.BinaryOp{Op: op, A: a, B: b}
}

// Add is a + b.
func Add(a, b expr.RealExpr) expr.RealExpr { return binary(expr.Sum, a, b) }

// Mul is a * b.
func Mul(a, b expr.RealExpr) expr.RealExpr { return binary(expr.Prod, a, b) }

// Pow is a ^ b.
func Pow(a, b expr.RealExpr) expr.RealExpr { return binary(expr.Pow, a, b) }

// MinOf is min(a, b).
func MinOf(a, b expr.RealExpr) expr.RealExpr { return binary(expr.Min, a, b) }

// MaxOf is max(a, b).
func MaxOf(a, b expr.RealExpr) expr.RealExpr { return binary(expr.Max, a, b) }

// LessEq is 1.0 if a <= b, else 0.0.
func LessEq(a, b expr.RealExpr) expr.RealExpr { return binary(expr.LessEqThan, a, b) }

// GreaterThan is 1.0 if a > b, else 0.0.
func GreaterThan(a, b expr.RealExpr) expr.RealExpr { return binary(expr.GreaterThan, a, b) }

// Sub is syntactic sugar for a + (-b); no dedicated subtraction node exists
// in the wire schema.
func Sub(a, b expr.RealExpr) expr.RealExpr { return Add(a, Neg(b)) }

// Div is syntactic sugar for a * (1/b).
func Div(a, b expr.RealExpr) expr.RealExpr { return Mul(a, Inv(b)) }

// SumAll is the variadic ListOp(Sum, ...).
func SumAll(args ...expr.RealExpr) expr.RealExpr {
	return &expr.ListOp{Op: expr.ListSum, Args: args}
}

// ProdAll is the variadic ListOp(Prod, ...).
func ProdAll(args ...expr.RealExpr) expr.RealExpr {
	return &expr.ListOp{Op: expr.ListProd, Args: args}
}

// Case builds one branch of a CaseDistinction.
func Case(set expr.SetExpr, e expr.RealExpr) expr.RealCase {
	return expr.RealCase{Set: set, Expression: e}
}

// Cases builds a CaseDistinction over the named vars (usually {"P", "Q"}).
func Cases(vars []string, cases ...expr.RealCase) expr.RealExpr {
	return &expr.CaseDistinction{Vars: vars, Cases: cases}
}

// --- SetExpr constructors ---

// Point is a Singleton of the given coordinates.
func Point(coords ...expr.RealExpr) expr.SetExpr {
	return &expr.Singleton{Coords: coords}
}

// BallOf is a closed Euclidean ball.
func BallOf(center []expr.RealExpr, radius expr.RealExpr) expr.SetExpr {
	return &expr.Ball{Center: center, Radius: radius}
}

// Interval is one Bound of a Rectangle.
func Interval(a, b expr.RealExpr) expr.Bound { return expr.Bound{A: a, B: b} }

// Rect builds an axis-aligned Rectangle from its per-dimension bounds.
func Rect(bounds ...expr.Bound) expr.SetExpr {
	return &expr.Rectangle{Bounds: bounds}
}

// Row is one row of a ConvexPolytope's A matrix.
func Row(coeffs ...expr.RealExpr) []expr.RealExpr { return coeffs }

// Polytope builds {x : A*x <= b}; A must have one row per entry of b, and
// every row must have the same length.
func Polytope(a [][]expr.RealExpr, b []expr.RealExpr) expr.SetExpr {
	return &expr.ConvexPolytope{A: a, B: b}
}

// Intersect is the set-theoretic intersection of its children.
func Intersect(children ...expr.SetExpr) expr.SetExpr {
	return &expr.Intersection{Children: children}
}

// NamedSet registers child under name, returning a transparent wrapper.
func NamedSet(name string, child expr.SetExpr) expr.SetExpr {
	return &expr.SetName{Name: name, Child: child}
}

// RefSet points at a SetName-registered node elsewhere in the advertisement.
func RefSet(name string) expr.SetExpr { return &expr.SetReference{Name: name} }
