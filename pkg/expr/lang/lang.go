// Package lang is a small textual expression language for building
// expr.RealExpr trees without constructing Go struct literals by hand:
// precedence-climbing Expr/Term/Factor productions over arithmetic with
// named variables and a fixed function set.
//
// It exists for tests and commelec-build's --cost-expr override; it is not
// used anywhere an advertisement's wire encoding is produced from untrusted
// input.
package lang

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/commelec/agent-core/pkg/expr"
	"github.com/commelec/agent-core/pkg/expr/builder"
)

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Number", Pattern: `\d+(\.\d+)?`},
	{Name: "Op", Pattern: `(\*\*|[+\-*/^(),])`},
})

// Expr is the top-level production: a sum of Terms.
type Expr struct {
	Left *Term      `@@`
	Ops  []*OpTerm  `@@*`
}

// OpTerm is one "+ Term" or "- Term" continuation.
type OpTerm struct {
	Op   string `@("+" | "-")`
	Term *Term  `@@`
}

// Term is a product of Factors.
type Term struct {
	Left *Factor      `@@`
	Ops  []*OpFactor  `@@*`
}

// OpFactor is one "* Factor" or "/ Factor" continuation.
type OpFactor struct {
	Op     string  `@("*" | "/")`
	Factor *Factor `@@`
}

// Factor is a Power, possibly preceded by a unary minus.
type Factor struct {
	Negate bool   `@"-"?`
	Power  *Power `@@`
}

// Power is an Atom optionally raised to another Power (right-associative).
type Power struct {
	Base *Atom  `@@`
	Exp  *Power `("^" @@)?`
}

// Atom is a number literal, a variable/function-call identifier, or a
// parenthesized sub-expression.
type Atom struct {
	Number *float64 `  @Number`
	Call   *Call    `| @@`
	Sub    *Expr    `| "(" @@ ")"`
}

// Call is either a bare variable reference ("P") or a function application
// ("sin(P)", "max(P, Q)").
type Call struct {
	Name string  `@Ident`
	Args []*Expr `("(" (@@ ("," @@)*)? ")")?`
}

var parser = participle.MustBuild[Expr](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse compiles source into a RealExpr tree.
func Parse(source string) (expr.RealExpr, error) {
	e, err := parser.ParseString("", source)
	if err != nil {
		return nil, fmt.Errorf("lang: %w", err)
	}
	return buildExpr(e)
}

func buildExpr(e *Expr) (expr.RealExpr, error) {
	acc, err := buildTerm(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		rhs, err := buildTerm(op.Term)
		if err != nil {
			return nil, err
		}
		if op.Op == "+" {
			acc = builder.Add(acc, rhs)
		} else {
			acc = builder.Sub(acc, rhs)
		}
	}
	return acc, nil
}

func buildTerm(t *Term) (expr.RealExpr, error) {
	acc, err := buildFactor(t.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range t.Ops {
		rhs, err := buildFactor(op.Factor)
		if err != nil {
			return nil, err
		}
		if op.Op == "*" {
			acc = builder.Mul(acc, rhs)
		} else {
			acc = builder.Div(acc, rhs)
		}
	}
	return acc, nil
}

func buildFactor(f *Factor) (expr.RealExpr, error) {
	p, err := buildPower(f.Power)
	if err != nil {
		return nil, err
	}
	if f.Negate {
		return builder.Neg(p), nil
	}
	return p, nil
}

func buildPower(p *Power) (expr.RealExpr, error) {
	base, err := buildAtom(p.Base)
	if err != nil {
		return nil, err
	}
	if p.Exp == nil {
		return base, nil
	}
	exp, err := buildPower(p.Exp)
	if err != nil {
		return nil, err
	}
	return builder.Pow(base, exp), nil
}

var unaryFuncs = map[string]func(expr.RealExpr) expr.RealExpr{
	"sin":   builder.SinOf,
	"cos":   builder.CosOf,
	"tan":   builder.TanOf,
	"exp":   builder.ExpOf,
	"ln":    builder.LnOf,
	"log10": builder.Log10Of,
	"sqrt":  builder.SqrtOf,
	"abs":   builder.AbsOf,
	"sign":  builder.SignOf,
	"round": builder.RoundOf,
	"floor": builder.FloorOf,
	"ceil":  builder.CeilOf,
}

var binaryFuncs = map[string]func(a, b expr.RealExpr) expr.RealExpr{
	"min": builder.MinOf,
	"max": builder.MaxOf,
}

func buildAtom(a *Atom) (expr.RealExpr, error) {
	switch {
	case a.Number != nil:
		return builder.R(*a.Number), nil
	case a.Sub != nil:
		return buildExpr(a.Sub)
	case a.Call != nil:
		return buildCall(a.Call)
	default:
		return nil, fmt.Errorf("lang: empty atom")
	}
}

func buildCall(c *Call) (expr.RealExpr, error) {
	if c.Args == nil {
		return builder.Var(c.Name), nil
	}
	args := make([]expr.RealExpr, len(c.Args))
	for i, a := range c.Args {
		v, err := buildExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if fn, ok := unaryFuncs[c.Name]; ok && len(args) == 1 {
		return fn(args[0]), nil
	}
	if fn, ok := binaryFuncs[c.Name]; ok && len(args) == 2 {
		return fn(args[0], args[1]), nil
	}
	return nil, fmt.Errorf("lang: unknown function %q with %d argument(s)", c.Name, len(args))
}
