// Package expr defines the in-memory representation of the real- and
// set-valued expression language that an advertisement's PQ profile, belief
// function and cost function are built from.
package expr

// RealExpr is the sum type of real-valued expression nodes. Each variant is a
// distinct struct; RealExpr is the closed interface all of them implement.
type RealExpr interface {
	isRealExpr()
	// Accept dispatches to the matching Visit method of v, for traversals
	// that want to remain agnostic of the concrete node type (debug
	// printing, structural validation). Evaluation, differentiation and
	// membership testing use a direct type switch instead, since they need
	// typed results.
	Accept(v RealVisitor) interface{}
}

// SetExpr is the sum type of set-valued expression nodes.
type SetExpr interface {
	isSetExpr()
	Accept(v SetVisitor) interface{}
}

// UnaryOpKind enumerates the unary operators.
type UnaryOpKind int

const (
	Negate UnaryOpKind = iota
	Exp
	Sin
	Cos
	Tan
	Square
	Sqrt
	Log10
	Ln
	MultInv
	Round
	Floor
	Ceil
	Abs
	Sign
)

func (k UnaryOpKind) String() string {
	switch k {
	case Negate:
		return "Negate"
	case Exp:
		return "Exp"
	case Sin:
		return "Sin"
	case Cos:
		return "Cos"
	case Tan:
		return "Tan"
	case Square:
		return "Square"
	case Sqrt:
		return "Sqrt"
	case Log10:
		return "Log10"
	case Ln:
		return "Ln"
	case MultInv:
		return "MultInv"
	case Round:
		return "Round"
	case Floor:
		return "Floor"
	case Ceil:
		return "Ceil"
	case Abs:
		return "Abs"
	case Sign:
		return "Sign"
	default:
		return "UnknownUnaryOp"
	}
}

// BinaryOpKind enumerates the binary operators. LessEqThan and GreaterThan
// evaluate to 1.0 or 0.0.
type BinaryOpKind int

const (
	Sum BinaryOpKind = iota
	Prod
	Pow
	Min
	Max
	LessEqThan
	GreaterThan
)

func (k BinaryOpKind) String() string {
	switch k {
	case Sum:
		return "Sum"
	case Prod:
		return "Prod"
	case Pow:
		return "Pow"
	case Min:
		return "Min"
	case Max:
		return "Max"
	case LessEqThan:
		return "LessEqThan"
	case GreaterThan:
		return "GreaterThan"
	default:
		return "UnknownBinaryOp"
	}
}

// ListOpKind enumerates the variadic operators.
type ListOpKind int

const (
	ListSum ListOpKind = iota
	ListProd
)

func (k ListOpKind) String() string {
	if k == ListSum {
		return "Sum"
	}
	return "Prod"
}

// Real is a literal double-precision constant.
type Real struct {
	X float64
}

// Variable is a free variable bound externally by the caller's bindings map,
// typically "P" or "Q".
type Variable struct {
	Name string
}

// Reference points at a Name-wrapped node elsewhere in the same advertisement.
type Reference struct {
	Name string
}

// Name transparently wraps Child and registers it under Name so that other
// nodes in the advertisement can point at it via Reference.
type Name struct {
	Name  string
	Child RealExpr
}

// UnaryOp applies Op to Arg.
type UnaryOp struct {
	Op  UnaryOpKind
	Arg RealExpr
}

// BinaryOp applies Op to A and B.
type BinaryOp struct {
	Op   BinaryOpKind
	A, B RealExpr
}

// ListOp applies a variadic Sum or Prod to Args.
type ListOp struct {
	Op   ListOpKind
	Args []RealExpr
}

// PolyCoefficient is one monomial of a Polynomial, keyed by its base-d offset
// encoding of the exponent vector: offset = sum of e_i * d^i, where d is the
// enclosing Polynomial's MaxVarDegree+1.
type PolyCoefficient struct {
	Offset uint32
	Value  float64
}

// Polynomial is a compact multivariate polynomial. Variables must be sorted
// and distinct. Offsets are decoded in base MaxVarDegree+1, so no single
// exponent may exceed MaxVarDegree.
type Polynomial struct {
	Variables    []string
	MaxVarDegree uint32
	Coefficients []PolyCoefficient
}

// RealCase is one branch of a CaseDistinction: Expression is evaluated when
// Set contains the point formed from the enclosing CaseDistinction's Vars.
type RealCase struct {
	Set        SetExpr
	Expression RealExpr
}

// CaseDistinction evaluates to the first case in Cases whose Set contains the
// point (bindings[Vars[0]], bindings[Vars[1]], ...). Cases may overlap; order
// is significant. No case matching is a hard error; there is no default.
type CaseDistinction struct {
	Vars  []string
	Cases []RealCase
}

func (*Real) isRealExpr()            {}
func (*Variable) isRealExpr()        {}
func (*Reference) isRealExpr()       {}
func (*Name) isRealExpr()            {}
func (*UnaryOp) isRealExpr()         {}
func (*BinaryOp) isRealExpr()        {}
func (*ListOp) isRealExpr()          {}
func (*Polynomial) isRealExpr()      {}
func (*CaseDistinction) isRealExpr() {}

func (n *Real) Accept(v RealVisitor) interface{}            { return v.VisitReal(n) }
func (n *Variable) Accept(v RealVisitor) interface{}        { return v.VisitVariable(n) }
func (n *Reference) Accept(v RealVisitor) interface{}       { return v.VisitReference(n) }
func (n *Name) Accept(v RealVisitor) interface{}            { return v.VisitName(n) }
func (n *UnaryOp) Accept(v RealVisitor) interface{}         { return v.VisitUnaryOp(n) }
func (n *BinaryOp) Accept(v RealVisitor) interface{}        { return v.VisitBinaryOp(n) }
func (n *ListOp) Accept(v RealVisitor) interface{}          { return v.VisitListOp(n) }
func (n *Polynomial) Accept(v RealVisitor) interface{}      { return v.VisitPolynomial(n) }
func (n *CaseDistinction) Accept(v RealVisitor) interface{} { return v.VisitCaseDistinction(n) }
