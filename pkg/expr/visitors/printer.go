// Package visitors provides expr.RealVisitor/expr.SetVisitor implementations used for
// diagnostics rather than evaluation (the evaluator, differentiator and
// geometry operators live in pkg/interp and dispatch with a type switch).
package visitors

import (
	"fmt"
	"strings"

	"github.com/commelec/agent-core/pkg/expr"
)

// DebugPrinter renders a RealExpr/SetExpr tree as indented text, for error
// messages and test failure output.
type DebugPrinter struct {
	expr.BaseRealVisitor
	expr.BaseSetVisitor

	output strings.Builder
	indent int
}

var (
	_ expr.RealVisitor = (*DebugPrinter)(nil)
	_ expr.SetVisitor  = (*DebugPrinter)(nil)
)

// NewDebugPrinter creates a new debug printer.
func NewDebugPrinter() *DebugPrinter {
	return &DebugPrinter{}
}

// String returns the formatted output accumulated so far.
func (d *DebugPrinter) String() string {
	return d.output.String()
}

func (d *DebugPrinter) print(format string, args ...interface{}) {
	d.output.WriteString(strings.Repeat("  ", d.indent))
	d.output.WriteString(fmt.Sprintf(format, args...))
	d.output.WriteString("\n")
}

// PrintReal renders a RealExpr tree.
func (d *DebugPrinter) PrintReal(e expr.RealExpr) string {
	d.output.Reset()
	d.indent = 0
	if e != nil {
		e.Accept(d)
	}
	return d.output.String()
}

// PrintSet renders a SetExpr tree.
func (d *DebugPrinter) PrintSet(s expr.SetExpr) string {
	d.output.Reset()
	d.indent = 0
	if s != nil {
		s.Accept(d)
	}
	return d.output.String()
}

func (d *DebugPrinter) VisitReal(n *expr.Real) interface{} {
	d.print("Real(%g)", n.X)
	return nil
}

func (d *DebugPrinter) VisitVariable(n *expr.Variable) interface{} {
	d.print("Variable(%s)", n.Name)
	return nil
}

func (d *DebugPrinter) VisitReference(n *expr.Reference) interface{} {
	d.print("Reference(%s)", n.Name)
	return nil
}

func (d *DebugPrinter) VisitName(n *expr.Name) interface{} {
	d.print("Name(%s):", n.Name)
	d.indent++
	if n.Child != nil {
		n.Child.Accept(d)
	}
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitUnaryOp(n *expr.UnaryOp) interface{} {
	d.print("UnaryOp(%s):", n.Op)
	d.indent++
	if n.Arg != nil {
		n.Arg.Accept(d)
	}
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitBinaryOp(n *expr.BinaryOp) interface{} {
	d.print("BinaryOp(%s):", n.Op)
	d.indent++
	if n.A != nil {
		n.A.Accept(d)
	}
	if n.B != nil {
		n.B.Accept(d)
	}
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitListOp(n *expr.ListOp) interface{} {
	d.print("ListOp(%s):", n.Op)
	d.indent++
	for _, a := range n.Args {
		a.Accept(d)
	}
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitPolynomial(n *expr.Polynomial) interface{} {
	d.print("Polynomial(vars=%v, maxDegree=%d, terms=%d)", n.Variables, n.MaxVarDegree, len(n.Coefficients))
	return nil
}

func (d *DebugPrinter) VisitCaseDistinction(n *expr.CaseDistinction) interface{} {
	d.print("CaseDistinction(vars=%v):", n.Vars)
	d.indent++
	for i, c := range n.Cases {
		d.print("case %d, set:", i)
		d.indent++
		if c.Set != nil {
			c.Set.Accept(d)
		}
		d.indent--
		d.print("case %d, expression:", i)
		d.indent++
		if c.Expression != nil {
			c.Expression.Accept(d)
		}
		d.indent--
	}
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitSingleton(n *expr.Singleton) interface{} {
	d.print("Singleton(dim=%d)", len(n.Coords))
	return nil
}

func (d *DebugPrinter) VisitBall(n *expr.Ball) interface{} {
	d.print("Ball(dim=%d)", len(n.Center))
	return nil
}

func (d *DebugPrinter) VisitRectangle(n *expr.Rectangle) interface{} {
	d.print("Rectangle(dim=%d)", len(n.Bounds))
	return nil
}

func (d *DebugPrinter) VisitConvexPolytope(n *expr.ConvexPolytope) interface{} {
	d.print("ConvexPolytope(rows=%d)", len(n.A))
	return nil
}

func (d *DebugPrinter) VisitIntersection(n *expr.Intersection) interface{} {
	d.print("Intersection(children=%d):", len(n.Children))
	d.indent++
	for _, c := range n.Children {
		c.Accept(d)
	}
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitSetName(n *expr.SetName) interface{} {
	d.print("SetName(%s):", n.Name)
	d.indent++
	if n.Child != nil {
		n.Child.Accept(d)
	}
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitSetReference(n *expr.SetReference) interface{} {
	d.print("SetReference(%s)", n.Name)
	return nil
}

func (d *DebugPrinter) VisitSetCaseDistinction(n *expr.SetCaseDistinction) interface{} {
	d.print("SetCaseDistinction(vars=%v, cases=%d)", n.Vars, len(n.Cases))
	return nil
}
