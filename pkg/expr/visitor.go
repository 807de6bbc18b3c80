package expr

// RealVisitor has one method per node type; the return type is left as
// interface{} so structural passes (debug printing, reference collection)
// can remain generic. Numeric passes
// (evaluation, differentiation) live in pkg/interp and use a type switch
// instead, since they need typed (float64, error) results rather than
// interface{}.
type RealVisitor interface {
	VisitReal(*Real) interface{}
	VisitVariable(*Variable) interface{}
	VisitReference(*Reference) interface{}
	VisitName(*Name) interface{}
	VisitUnaryOp(*UnaryOp) interface{}
	VisitBinaryOp(*BinaryOp) interface{}
	VisitListOp(*ListOp) interface{}
	VisitPolynomial(*Polynomial) interface{}
	VisitCaseDistinction(*CaseDistinction) interface{}
}

// SetVisitor is the SetExpr analogue of RealVisitor.
type SetVisitor interface {
	VisitSingleton(*Singleton) interface{}
	VisitBall(*Ball) interface{}
	VisitRectangle(*Rectangle) interface{}
	VisitConvexPolytope(*ConvexPolytope) interface{}
	VisitIntersection(*Intersection) interface{}
	VisitSetName(*SetName) interface{}
	VisitSetReference(*SetReference) interface{}
	VisitSetCaseDistinction(*SetCaseDistinction) interface{}
}

// BaseRealVisitor provides default recursive-descent traversal for every
// RealExpr node. Children are visited through the base visitor itself, so
// methods overridden by an embedding type are not called for child nodes.
type BaseRealVisitor struct{}

var _ RealVisitor = (*BaseRealVisitor)(nil)

func (v *BaseRealVisitor) VisitReal(n *Real) interface{}     { return nil }
func (v *BaseRealVisitor) VisitVariable(n *Variable) interface{} { return nil }
func (v *BaseRealVisitor) VisitReference(n *Reference) interface{} { return nil }
func (v *BaseRealVisitor) VisitName(n *Name) interface{} {
	if n.Child != nil {
		n.Child.Accept(v)
	}
	return nil
}
func (v *BaseRealVisitor) VisitUnaryOp(n *UnaryOp) interface{} {
	if n.Arg != nil {
		n.Arg.Accept(v)
	}
	return nil
}
func (v *BaseRealVisitor) VisitBinaryOp(n *BinaryOp) interface{} {
	if n.A != nil {
		n.A.Accept(v)
	}
	if n.B != nil {
		n.B.Accept(v)
	}
	return nil
}
func (v *BaseRealVisitor) VisitListOp(n *ListOp) interface{} {
	for _, a := range n.Args {
		a.Accept(v)
	}
	return nil
}
func (v *BaseRealVisitor) VisitPolynomial(n *Polynomial) interface{} { return nil }
func (v *BaseRealVisitor) VisitCaseDistinction(n *CaseDistinction) interface{} {
	for _, c := range n.Cases {
		if c.Set != nil {
			c.Set.Accept(&BaseSetVisitor{})
		}
		if c.Expression != nil {
			c.Expression.Accept(v)
		}
	}
	return nil
}

// BaseSetVisitor is the SetExpr analogue of BaseRealVisitor.
type BaseSetVisitor struct{}

var _ SetVisitor = (*BaseSetVisitor)(nil)

func (v *BaseSetVisitor) VisitSingleton(n *Singleton) interface{} {
	for _, c := range n.Coords {
		c.Accept(&BaseRealVisitor{})
	}
	return nil
}
func (v *BaseSetVisitor) VisitBall(n *Ball) interface{} {
	for _, c := range n.Center {
		c.Accept(&BaseRealVisitor{})
	}
	if n.Radius != nil {
		n.Radius.Accept(&BaseRealVisitor{})
	}
	return nil
}
func (v *BaseSetVisitor) VisitRectangle(n *Rectangle) interface{} {
	for _, b := range n.Bounds {
		b.A.Accept(&BaseRealVisitor{})
		b.B.Accept(&BaseRealVisitor{})
	}
	return nil
}
func (v *BaseSetVisitor) VisitConvexPolytope(n *ConvexPolytope) interface{} {
	for _, row := range n.A {
		for _, e := range row {
			e.Accept(&BaseRealVisitor{})
		}
	}
	for _, e := range n.B {
		e.Accept(&BaseRealVisitor{})
	}
	return nil
}
func (v *BaseSetVisitor) VisitIntersection(n *Intersection) interface{} {
	for _, c := range n.Children {
		c.Accept(v)
	}
	return nil
}
func (v *BaseSetVisitor) VisitSetName(n *SetName) interface{} {
	if n.Child != nil {
		n.Child.Accept(v)
	}
	return nil
}
func (v *BaseSetVisitor) VisitSetReference(n *SetReference) interface{} { return nil }
func (v *BaseSetVisitor) VisitSetCaseDistinction(n *SetCaseDistinction) interface{} {
	for _, c := range n.Cases {
		if c.Set != nil {
			c.Set.Accept(v)
		}
		if c.Expression != nil {
			c.Expression.Accept(v)
		}
	}
	return nil
}
