package interp

import (
	"math"

	"github.com/commelec/agent-core/pkg/expr"
)

// Evaluate computes the value of e under bindings with IEEE-754 double
// semantics. NaN and infinities propagate untouched.
func (in *Interpreter) Evaluate(e expr.RealExpr, bindings Bindings) (float64, error) {
	return in.evalReal(e, bindings, 0)
}

func (in *Interpreter) evalReal(e expr.RealExpr, bindings Bindings, depth int) (float64, error) {
	depth++
	if depth > MaxNestingDepth {
		return 0, &MaxNestingDepthError{}
	}
	switch n := e.(type) {
	case *expr.Real:
		return n.X, nil
	case *expr.Variable:
		v, ok := bindings[n.Name]
		if !ok {
			return 0, &UnknownVariableError{Name: n.Name}
		}
		return v, nil
	case *expr.Reference:
		target, ok := in.Refs.Real[n.Name]
		if !ok {
			return 0, &UnknownReferenceError{Name: n.Name}
		}
		return in.evalReal(target, bindings, depth)
	case *expr.Name:
		return in.evalReal(n.Child, bindings, depth)
	case *expr.UnaryOp:
		x, err := in.evalReal(n.Arg, bindings, depth)
		if err != nil {
			return 0, err
		}
		return evalUnary(n.Op, x), nil
	case *expr.BinaryOp:
		a, err := in.evalReal(n.A, bindings, depth)
		if err != nil {
			return 0, err
		}
		b, err := in.evalReal(n.B, bindings, depth)
		if err != nil {
			return 0, err
		}
		return evalBinary(n.Op, a, b), nil
	case *expr.ListOp:
		return in.evalList(n, bindings, depth)
	case *expr.Polynomial:
		return in.evalPolynomial(n, bindings, -1)
	case *expr.CaseDistinction:
		return in.evalCaseDistinction(n, bindings, depth)
	default:
		return 0, &UnknownNodeTypeError{Operation: "evaluate", Kind: "RealExpr"}
	}
}

// sgn treats NaN as neither positive nor negative (both comparisons are
// false, so the result is 0 rather than NaN).
func sgn(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func evalUnary(op expr.UnaryOpKind, x float64) float64 {
	switch op {
	case expr.Negate:
		return -x
	case expr.Exp:
		return math.Exp(x)
	case expr.Sin:
		return math.Sin(x)
	case expr.Cos:
		return math.Cos(x)
	case expr.Tan:
		return math.Tan(x)
	case expr.Square:
		return x * x
	case expr.Sqrt:
		return math.Sqrt(x)
	case expr.Log10:
		return math.Log10(x)
	case expr.Ln:
		return math.Log(x)
	case expr.MultInv:
		return 1.0 / x
	case expr.Round:
		return math.Round(x)
	case expr.Floor:
		return math.Floor(x)
	case expr.Ceil:
		return math.Ceil(x)
	case expr.Abs:
		return math.Abs(x)
	case expr.Sign:
		return sgn(x)
	default:
		return math.NaN()
	}
}

func evalBinary(op expr.BinaryOpKind, a, b float64) float64 {
	switch op {
	case expr.Sum:
		return a + b
	case expr.Prod:
		return a * b
	case expr.Pow:
		return math.Pow(a, b)
	case expr.Min:
		return math.Min(a, b)
	case expr.Max:
		return math.Max(a, b)
	case expr.LessEqThan:
		if a <= b {
			return 1
		}
		return 0
	case expr.GreaterThan:
		if a > b {
			return 1
		}
		return 0
	default:
		return math.NaN()
	}
}

func (in *Interpreter) evalList(n *expr.ListOp, bindings Bindings, depth int) (float64, error) {
	if n.Op == expr.ListSum {
		acc := 0.0
		for _, a := range n.Args {
			v, err := in.evalReal(a, bindings, depth)
			if err != nil {
				return 0, err
			}
			acc += v
		}
		return acc, nil
	}
	acc := 1.0
	for _, a := range n.Args {
		v, err := in.evalReal(a, bindings, depth)
		if err != nil {
			return 0, err
		}
		acc *= v
	}
	return acc, nil
}

// evalPolynomial evaluates n, or its partial derivative with respect to
// n.Variables[dVar] when dVar >= 0, by decoding each coefficient's offset
// into its exponent vector in base MaxVarDegree+1.
func (in *Interpreter) evalPolynomial(n *expr.Polynomial, bindings Bindings, dVar int) (float64, error) {
	point := make([]float64, len(n.Variables))
	for i, v := range n.Variables {
		x, ok := bindings[v]
		if !ok {
			return 0, &UnknownVariableError{Name: v}
		}
		point[i] = x
	}
	d := n.MaxVarDegree + 1

	result := 0.0
	for _, coeff := range n.Coefficients {
		monom := 1.0
		offset := coeff.Offset
		pow := uint32(1)
		skip := false
		for i := range n.Variables {
			rem := (offset / pow) % d
			if dVar == i {
				if rem == 0 {
					skip = true
					break
				}
				if rem > 1 {
					monom *= float64(rem) * math.Pow(point[i], float64(rem-1))
				}
			} else {
				monom *= math.Pow(point[i], float64(rem))
			}
			pow *= d
		}
		if skip {
			continue
		}
		result += coeff.Value * monom
	}
	return result, nil
}

func (in *Interpreter) evalCaseDistinction(n *expr.CaseDistinction, bindings Bindings, depth int) (float64, error) {
	point, err := casePoint(n.Vars, bindings)
	if err != nil {
		return 0, err
	}
	for _, c := range n.Cases {
		ok, err := in.membership(c.Set, point, bindings, depth)
		if err != nil {
			return 0, err
		}
		if ok {
			return in.evalReal(c.Expression, bindings, depth)
		}
	}
	return 0, &UnhandledCaseError{}
}

func casePoint(vars []string, bindings Bindings) (Point2D, error) {
	var p Point2D
	for i, v := range vars {
		x, ok := bindings[v]
		if !ok {
			return Point2D{}, &EvaluationError{Msg: "variable " + v + " specified in case distinction not found in bindings"}
		}
		if i < 2 {
			p[i] = x
		}
	}
	return p, nil
}
