package wire

import (
	"encoding/binary"
	"math"

	"github.com/commelec/agent-core/pkg/expr"
)

// decoder reads a trusted-length byte slice and tracks two budgets: the
// number of bytes consumed so far (against traversalLimit) and the current
// recursion depth (against maxDepth). Every read returns an explicit error
// instead of panicking, since decode input is attacker-controlled.
type decoder struct {
	buf            []byte
	pos            int
	traversalLimit int
	maxDepth       int
	depth          int
}

func (d *decoder) checkBudget(n int) error {
	if d.pos+n > len(d.buf) {
		return ErrMalformedMessage
	}
	if d.pos+n > d.traversalLimit {
		return ErrTraversalLimitExceeded
	}
	return nil
}

func (d *decoder) u8() (byte, error) {
	if err := d.checkBudget(1); err != nil {
		return 0, err
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) u32() (uint32, error) {
	if err := d.checkBudget(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return v, nil
}

func (d *decoder) f64() (float64, error) {
	if err := d.checkBudget(8); err != nil {
		return 0, err
	}
	bits := binary.LittleEndian.Uint64(d.buf[d.pos:])
	d.pos += 8
	return math.Float64frombits(bits), nil
}

func (d *decoder) str() (string, error) {
	n, err := d.u32()
	if err != nil {
		return "", err
	}
	if err := d.checkBudget(int(n)); err != nil {
		return "", err
	}
	s := string(d.buf[d.pos : d.pos+int(n)])
	d.pos += int(n)
	return s, nil
}

func (d *decoder) strs() ([]string, error) {
	n, err := d.u32()
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i := range out {
		if out[i], err = d.str(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *decoder) enter() error {
	d.depth++
	if d.depth > d.maxDepth {
		return ErrNestingTooDeep
	}
	return nil
}

func (d *decoder) leave() { d.depth-- }

func (d *decoder) real() (expr.RealExpr, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	tag, err := d.u8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagReal:
		x, err := d.f64()
		if err != nil {
			return nil, err
		}
		return &expr.Real{X: x}, nil
	case tagVariable:
		name, err := d.str()
		if err != nil {
			return nil, err
		}
		return &expr.Variable{Name: name}, nil
	case tagReference:
		name, err := d.str()
		if err != nil {
			return nil, err
		}
		return &expr.Reference{Name: name}, nil
	case tagName:
		name, err := d.str()
		if err != nil {
			return nil, err
		}
		child, err := d.real()
		if err != nil {
			return nil, err
		}
		return &expr.Name{Name: name, Child: child}, nil
	case tagUnaryOp:
		op, err := d.u8()
		if err != nil {
			return nil, err
		}
		arg, err := d.real()
		if err != nil {
			return nil, err
		}
		return &expr.UnaryOp{Op: expr.UnaryOpKind(op), Arg: arg}, nil
	case tagBinaryOp:
		op, err := d.u8()
		if err != nil {
			return nil, err
		}
		a, err := d.real()
		if err != nil {
			return nil, err
		}
		b, err := d.real()
		if err != nil {
			return nil, err
		}
		return &expr.BinaryOp{Op: expr.BinaryOpKind(op), A: a, B: b}, nil
	case tagListOp:
		op, err := d.u8()
		if err != nil {
			return nil, err
		}
		n, err := d.u32()
		if err != nil {
			return nil, err
		}
		args := make([]expr.RealExpr, n)
		for i := range args {
			if args[i], err = d.real(); err != nil {
				return nil, err
			}
		}
		return &expr.ListOp{Op: expr.ListOpKind(op), Args: args}, nil
	case tagPolynomial:
		vars, err := d.strs()
		if err != nil {
			return nil, err
		}
		maxDeg, err := d.u32()
		if err != nil {
			return nil, err
		}
		n, err := d.u32()
		if err != nil {
			return nil, err
		}
		coeffs := make([]expr.PolyCoefficient, n)
		for i := range coeffs {
			if coeffs[i].Offset, err = d.u32(); err != nil {
				return nil, err
			}
			if coeffs[i].Value, err = d.f64(); err != nil {
				return nil, err
			}
		}
		return &expr.Polynomial{Variables: vars, MaxVarDegree: maxDeg, Coefficients: coeffs}, nil
	case tagCaseDistinction:
		vars, err := d.strs()
		if err != nil {
			return nil, err
		}
		n, err := d.u32()
		if err != nil {
			return nil, err
		}
		cases := make([]expr.RealCase, n)
		for i := range cases {
			if cases[i].Set, err = d.set(); err != nil {
				return nil, err
			}
			if cases[i].Expression, err = d.real(); err != nil {
				return nil, err
			}
		}
		return &expr.CaseDistinction{Vars: vars, Cases: cases}, nil
	default:
		return nil, ErrMalformedMessage
	}
}

func (d *decoder) set() (expr.SetExpr, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	tag, err := d.u8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagSingleton:
		n, err := d.u32()
		if err != nil {
			return nil, err
		}
		coords := make([]expr.RealExpr, n)
		for i := range coords {
			if coords[i], err = d.real(); err != nil {
				return nil, err
			}
		}
		return &expr.Singleton{Coords: coords}, nil
	case tagBall:
		n, err := d.u32()
		if err != nil {
			return nil, err
		}
		center := make([]expr.RealExpr, n)
		for i := range center {
			if center[i], err = d.real(); err != nil {
				return nil, err
			}
		}
		radius, err := d.real()
		if err != nil {
			return nil, err
		}
		return &expr.Ball{Center: center, Radius: radius}, nil
	case tagRectangle:
		n, err := d.u32()
		if err != nil {
			return nil, err
		}
		bounds := make([]expr.Bound, n)
		for i := range bounds {
			if bounds[i].A, err = d.real(); err != nil {
				return nil, err
			}
			if bounds[i].B, err = d.real(); err != nil {
				return nil, err
			}
		}
		return &expr.Rectangle{Bounds: bounds}, nil
	case tagConvexPolytope:
		n, err := d.u32()
		if err != nil {
			return nil, err
		}
		a := make([][]expr.RealExpr, n)
		for i := range a {
			m, err := d.u32()
			if err != nil {
				return nil, err
			}
			row := make([]expr.RealExpr, m)
			for j := range row {
				if row[j], err = d.real(); err != nil {
					return nil, err
				}
			}
			a[i] = row
		}
		nb, err := d.u32()
		if err != nil {
			return nil, err
		}
		b := make([]expr.RealExpr, nb)
		for i := range b {
			if b[i], err = d.real(); err != nil {
				return nil, err
			}
		}
		return &expr.ConvexPolytope{A: a, B: b}, nil
	case tagIntersection:
		n, err := d.u32()
		if err != nil {
			return nil, err
		}
		children := make([]expr.SetExpr, n)
		for i := range children {
			if children[i], err = d.set(); err != nil {
				return nil, err
			}
		}
		return &expr.Intersection{Children: children}, nil
	case tagSetName:
		name, err := d.str()
		if err != nil {
			return nil, err
		}
		child, err := d.set()
		if err != nil {
			return nil, err
		}
		return &expr.SetName{Name: name, Child: child}, nil
	case tagSetReference:
		name, err := d.str()
		if err != nil {
			return nil, err
		}
		return &expr.SetReference{Name: name}, nil
	case tagSetCaseDistinction:
		vars, err := d.strs()
		if err != nil {
			return nil, err
		}
		n, err := d.u32()
		if err != nil {
			return nil, err
		}
		cases := make([]expr.SetCase, n)
		for i := range cases {
			if cases[i].Set, err = d.set(); err != nil {
				return nil, err
			}
			if cases[i].Expression, err = d.set(); err != nil {
				return nil, err
			}
		}
		return &expr.SetCaseDistinction{Vars: vars, Cases: cases}, nil
	default:
		return nil, ErrMalformedMessage
	}
}

// decodeBody parses a raw (already unpacked) message body produced by
// encodeBody.
func decodeBody(buf []byte, traversalLimitWords, maxNestingDepth int) (*Message, error) {
	d := &decoder{
		buf:            buf,
		traversalLimit: traversalLimitWords * 8,
		maxDepth:       maxNestingDepth,
	}
	agentID, err := d.u32()
	if err != nil {
		return nil, err
	}
	kind, err := d.u8()
	if err != nil {
		return nil, err
	}
	msg := &Message{AgentID: agentID}
	switch kind {
	case kindRequest:
		req := &Request{}
		hasSetpoint, err := d.u8()
		if err != nil {
			return nil, err
		}
		if hasSetpoint != 0 {
			p, err := d.f64()
			if err != nil {
				return nil, err
			}
			q, err := d.f64()
			if err != nil {
				return nil, err
			}
			req.Setpoint = &[2]float64{p, q}
		}
		msg.Request = req
	case kindAdvertisement:
		pq, err := d.set()
		if err != nil {
			return nil, err
		}
		bf, err := d.set()
		if err != nil {
			return nil, err
		}
		cf, err := d.real()
		if err != nil {
			return nil, err
		}
		hasSetpoint, err := d.u8()
		if err != nil {
			return nil, err
		}
		adv := &Advertisement{PQProfile: pq, BeliefFunction: bf, CostFunction: cf}
		if hasSetpoint != 0 {
			p, err := d.f64()
			if err != nil {
				return nil, err
			}
			q, err := d.f64()
			if err != nil {
				return nil, err
			}
			adv.ImplementedSetpoint = &[2]float64{p, q}
		}
		msg.Advertisement = adv
	default:
		return nil, ErrMalformedMessage
	}
	return msg, nil
}
