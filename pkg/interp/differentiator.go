package interp

import (
	"math"

	"github.com/commelec/agent-core/pkg/expr"
)

// Partial computes the partial derivative of e with respect to diffVar at
// bindings, applying symbolic differentiation rules while descending the
// tree.
func (in *Interpreter) Partial(e expr.RealExpr, diffVar string, bindings Bindings) (float64, error) {
	return in.evalPartial(e, diffVar, bindings, 0)
}

func (in *Interpreter) evalPartial(e expr.RealExpr, diffVar string, bindings Bindings, depth int) (float64, error) {
	depth++
	if depth > MaxNestingDepth {
		return 0, &MaxNestingDepthError{}
	}
	switch n := e.(type) {
	case *expr.Real:
		return 0, nil
	case *expr.Variable:
		if _, ok := bindings[n.Name]; !ok {
			return 0, &UnknownVariableError{Name: n.Name}
		}
		if n.Name == diffVar {
			return 1, nil
		}
		return 0, nil
	case *expr.Reference:
		target, ok := in.Refs.Real[n.Name]
		if !ok {
			return 0, &UnknownReferenceError{Name: n.Name}
		}
		return in.evalPartial(target, diffVar, bindings, depth)
	case *expr.Name:
		return in.evalPartial(n.Child, diffVar, bindings, depth)
	case *expr.UnaryOp:
		return in.partialUnary(n, diffVar, bindings, depth)
	case *expr.BinaryOp:
		return in.partialBinary(n, diffVar, bindings, depth)
	case *expr.ListOp:
		return in.partialList(n, diffVar, bindings, depth)
	case *expr.Polynomial:
		return in.partialPolynomial(n, diffVar, bindings)
	case *expr.CaseDistinction:
		return in.partialCaseDistinction(n, diffVar, bindings, depth)
	default:
		return 0, &UnknownNodeTypeError{Operation: "differentiate", Kind: "RealExpr"}
	}
}

// partialUnary applies the chain rule per operator. Round/Floor/Ceil are
// treated as the identity function (their derivative is the argument's own
// derivative): rounding appears inside belief functions, and downstream
// optimizers need a smooth surrogate there instead of a rejection.
func (in *Interpreter) partialUnary(n *expr.UnaryOp, diffVar string, bindings Bindings, depth int) (float64, error) {
	darg, err := in.evalPartial(n.Arg, diffVar, bindings, depth)
	if err != nil {
		return 0, err
	}
	needsValue := func() (float64, error) { return in.evalReal(n.Arg, bindings, depth) }

	switch n.Op {
	case expr.Negate:
		return -darg, nil
	case expr.Exp:
		x, err := needsValue()
		if err != nil {
			return 0, err
		}
		return math.Exp(x) * darg, nil
	case expr.Sin:
		x, err := needsValue()
		if err != nil {
			return 0, err
		}
		return math.Cos(x) * darg, nil
	case expr.Cos:
		x, err := needsValue()
		if err != nil {
			return 0, err
		}
		return -math.Sin(x) * darg, nil
	case expr.Tan:
		x, err := needsValue()
		if err != nil {
			return 0, err
		}
		c := math.Cos(x)
		return darg / (c * c), nil
	case expr.Square:
		x, err := needsValue()
		if err != nil {
			return 0, err
		}
		return 2.0 * x * darg, nil
	case expr.Sqrt:
		x, err := needsValue()
		if err != nil {
			return 0, err
		}
		return darg / (2.0 * math.Sqrt(x)), nil
	case expr.Log10:
		x, err := needsValue()
		if err != nil {
			return 0, err
		}
		return math.Log10E / x * darg, nil
	case expr.Ln:
		x, err := needsValue()
		if err != nil {
			return 0, err
		}
		return darg / x, nil
	case expr.MultInv:
		x, err := needsValue()
		if err != nil {
			return 0, err
		}
		return -darg / (x * x), nil
	case expr.Round, expr.Floor, expr.Ceil:
		return darg, nil
	case expr.Abs:
		x, err := needsValue()
		if err != nil {
			return 0, err
		}
		return sgn(x) * darg, nil
	case expr.Sign:
		return 0, nil
	default:
		return 0, &UnknownNodeTypeError{Operation: "differentiate", Kind: "UnaryOp"}
	}
}

func (in *Interpreter) partialBinary(n *expr.BinaryOp, diffVar string, bindings Bindings, depth int) (float64, error) {
	switch n.Op {
	case expr.Sum:
		da, err := in.evalPartial(n.A, diffVar, bindings, depth)
		if err != nil {
			return 0, err
		}
		db, err := in.evalPartial(n.B, diffVar, bindings, depth)
		if err != nil {
			return 0, err
		}
		return da + db, nil
	case expr.Prod:
		a, err := in.evalReal(n.A, bindings, depth)
		if err != nil {
			return 0, err
		}
		b, err := in.evalReal(n.B, bindings, depth)
		if err != nil {
			return 0, err
		}
		da, err := in.evalPartial(n.A, diffVar, bindings, depth)
		if err != nil {
			return 0, err
		}
		db, err := in.evalPartial(n.B, diffVar, bindings, depth)
		if err != nil {
			return 0, err
		}
		return a*db + b*da, nil
	case expr.LessEqThan, expr.GreaterThan:
		return 0, nil
	case expr.Min:
		a, err := in.evalReal(n.A, bindings, depth)
		if err != nil {
			return 0, err
		}
		b, err := in.evalReal(n.B, bindings, depth)
		if err != nil {
			return 0, err
		}
		if a <= b {
			return in.evalPartial(n.A, diffVar, bindings, depth)
		}
		return in.evalPartial(n.B, diffVar, bindings, depth)
	case expr.Max:
		a, err := in.evalReal(n.A, bindings, depth)
		if err != nil {
			return 0, err
		}
		b, err := in.evalReal(n.B, bindings, depth)
		if err != nil {
			return 0, err
		}
		if a >= b {
			return in.evalPartial(n.A, diffVar, bindings, depth)
		}
		return in.evalPartial(n.B, diffVar, bindings, depth)
	case expr.Pow:
		base, err := in.evalReal(n.A, bindings, depth)
		if err != nil {
			return 0, err
		}
		expon, err := in.evalReal(n.B, bindings, depth)
		if err != nil {
			return 0, err
		}
		da, err := in.evalPartial(n.A, diffVar, bindings, depth)
		if err != nil {
			return 0, err
		}
		db, err := in.evalPartial(n.B, diffVar, bindings, depth)
		if err != nil {
			return 0, err
		}
		return math.Pow(base, expon-1.0) * (expon*da + base*math.Log(base)*db), nil
	default:
		return 0, &UnknownNodeTypeError{Operation: "differentiate", Kind: "BinaryOp"}
	}
}

func (in *Interpreter) partialList(n *expr.ListOp, diffVar string, bindings Bindings, depth int) (float64, error) {
	if n.Op == expr.ListSum {
		acc := 0.0
		for _, a := range n.Args {
			d, err := in.evalPartial(a, diffVar, bindings, depth)
			if err != nil {
				return 0, err
			}
			acc += d
		}
		return acc, nil
	}

	vals, err := in.evalRealSlice(n.Args, bindings, depth)
	if err != nil {
		return 0, err
	}
	acc := 0.0
	for i, a := range n.Args {
		d, err := in.evalPartial(a, diffVar, bindings, depth)
		if err != nil {
			return 0, err
		}
		term := d
		for j, v := range vals {
			if j != i {
				term *= v
			}
		}
		acc += term
	}
	return acc, nil
}

func (in *Interpreter) partialPolynomial(n *expr.Polynomial, diffVar string, bindings Bindings) (float64, error) {
	for i, v := range n.Variables {
		if v == diffVar {
			return in.evalPolynomial(n, bindings, i)
		}
	}
	return 0, nil
}

func (in *Interpreter) partialCaseDistinction(n *expr.CaseDistinction, diffVar string, bindings Bindings, depth int) (float64, error) {
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
			return in.evalPartial(c.Expression, diffVar, bindings, depth)
		}
	}
	return 0, &UnhandledCaseError{}
}
