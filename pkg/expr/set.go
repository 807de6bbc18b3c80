package expr

// Singleton is a set containing exactly one point, of dimension len(Coords).
type Singleton struct {
	Coords []RealExpr
}

// Ball is a closed Euclidean ball.
type Ball struct {
	Center []RealExpr
	Radius RealExpr
}

// Bound is one dimension's [min(A,B), max(A,B)] interval of a Rectangle.
type Bound struct {
	A, B RealExpr
}

// Rectangle is an axis-aligned box, one Bound per dimension.
type Rectangle struct {
	Bounds []Bound
}

// ConvexPolytope is the half-space representation {x : A*x <= b}. A is
// row-major; every row has the same length (the ambient dimension).
type ConvexPolytope struct {
	A [][]RealExpr
	B []RealExpr
}

// Intersection is the set-theoretic intersection of its Children.
type Intersection struct {
	Children []SetExpr
}

// SetName transparently wraps Child and registers it under Name, mirroring
// expr.Name but for the SetExpr sum type.
type SetName struct {
	Name  string
	Child SetExpr
}

// SetReference points at a SetName-wrapped node elsewhere in the same
// advertisement.
type SetReference struct {
	Name string
}

// SetCase is one branch of a SetCaseDistinction.
type SetCase struct {
	Set        SetExpr
	Expression SetExpr
}

// SetCaseDistinction is the SetExpr analogue of CaseDistinction: the first
// case whose Set contains the point wins, and its Expression is the result.
// This variant is referenced only indirectly: it is never itself the direct
// target of a membership/hull/projection query, and must first be resolved
// to the active case's Expression.
type SetCaseDistinction struct {
	Vars  []string
	Cases []SetCase
}

func (*Singleton) isSetExpr()          {}
func (*Ball) isSetExpr()               {}
func (*Rectangle) isSetExpr()          {}
func (*ConvexPolytope) isSetExpr()     {}
func (*Intersection) isSetExpr()       {}
func (*SetName) isSetExpr()            {}
func (*SetReference) isSetExpr()       {}
func (*SetCaseDistinction) isSetExpr() {}

func (n *Singleton) Accept(v SetVisitor) interface{}      { return v.VisitSingleton(n) }
func (n *Ball) Accept(v SetVisitor) interface{}           { return v.VisitBall(n) }
func (n *Rectangle) Accept(v SetVisitor) interface{}      { return v.VisitRectangle(n) }
func (n *ConvexPolytope) Accept(v SetVisitor) interface{} { return v.VisitConvexPolytope(n) }
func (n *Intersection) Accept(v SetVisitor) interface{}   { return v.VisitIntersection(n) }
func (n *SetName) Accept(v SetVisitor) interface{}        { return v.VisitSetName(n) }
func (n *SetReference) Accept(v SetVisitor) interface{}   { return v.VisitSetReference(n) }
func (n *SetCaseDistinction) Accept(v SetVisitor) interface{} {
	return v.VisitSetCaseDistinction(n)
}
