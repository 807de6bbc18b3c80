package wire

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/commelec/agent-core/pkg/expr"
)

// Node tag bytes. One byte per RealExpr/SetExpr variant, written ahead of
// each node's payload so the decoder can dispatch without a schema file —
// the Go-native analogue of the .capnp union discriminant.
const (
	tagReal byte = iota
	tagVariable
	tagReference
	tagName
	tagUnaryOp
	tagBinaryOp
	tagListOp
	tagPolynomial
	tagCaseDistinction
)

const (
	tagSingleton byte = iota
	tagBall
	tagRectangle
	tagConvexPolytope
	tagIntersection
	tagSetName
	tagSetReference
	tagSetCaseDistinction
)

const (
	kindRequest      byte = 0
	kindAdvertisement byte = 1
)

type encoder struct {
	buf bytes.Buffer
}

func (e *encoder) u8(b byte)     { e.buf.WriteByte(b) }
func (e *encoder) u32(v uint32)  { binary.Write(&e.buf, binary.LittleEndian, v) }
func (e *encoder) f64(v float64) { binary.Write(&e.buf, binary.LittleEndian, math.Float64bits(v)) }
func (e *encoder) str(s string) {
	e.u32(uint32(len(s)))
	e.buf.WriteString(s)
}
func (e *encoder) strs(ss []string) {
	e.u32(uint32(len(ss)))
	for _, s := range ss {
		e.str(s)
	}
}

func (e *encoder) real(n expr.RealExpr) {
	switch v := n.(type) {
	case nil:
		panic("wire: nil RealExpr")
	case *expr.Real:
		e.u8(tagReal)
		e.f64(v.X)
	case *expr.Variable:
		e.u8(tagVariable)
		e.str(v.Name)
	case *expr.Reference:
		e.u8(tagReference)
		e.str(v.Name)
	case *expr.Name:
		e.u8(tagName)
		e.str(v.Name)
		e.real(v.Child)
	case *expr.UnaryOp:
		e.u8(tagUnaryOp)
		e.u8(byte(v.Op))
		e.real(v.Arg)
	case *expr.BinaryOp:
		e.u8(tagBinaryOp)
		e.u8(byte(v.Op))
		e.real(v.A)
		e.real(v.B)
	case *expr.ListOp:
		e.u8(tagListOp)
		e.u8(byte(v.Op))
		e.u32(uint32(len(v.Args)))
		for _, a := range v.Args {
			e.real(a)
		}
	case *expr.Polynomial:
		e.u8(tagPolynomial)
		e.strs(v.Variables)
		e.u32(v.MaxVarDegree)
		e.u32(uint32(len(v.Coefficients)))
		for _, c := range v.Coefficients {
			e.u32(c.Offset)
			e.f64(c.Value)
		}
	case *expr.CaseDistinction:
		e.u8(tagCaseDistinction)
		e.strs(v.Vars)
		e.u32(uint32(len(v.Cases)))
		for _, c := range v.Cases {
			e.set(c.Set)
			e.real(c.Expression)
		}
	default:
		panic("wire: unknown RealExpr variant")
	}
}

func (e *encoder) set(n expr.SetExpr) {
	switch v := n.(type) {
	case nil:
		panic("wire: nil SetExpr")
	case *expr.Singleton:
		e.u8(tagSingleton)
		e.u32(uint32(len(v.Coords)))
		for _, c := range v.Coords {
			e.real(c)
		}
	case *expr.Ball:
		e.u8(tagBall)
		e.u32(uint32(len(v.Center)))
		for _, c := range v.Center {
			e.real(c)
		}
		e.real(v.Radius)
	case *expr.Rectangle:
		e.u8(tagRectangle)
		e.u32(uint32(len(v.Bounds)))
		for _, b := range v.Bounds {
			e.real(b.A)
			e.real(b.B)
		}
	case *expr.ConvexPolytope:
		e.u8(tagConvexPolytope)
		e.u32(uint32(len(v.A)))
		for _, row := range v.A {
			e.u32(uint32(len(row)))
			for _, c := range row {
				e.real(c)
			}
		}
		e.u32(uint32(len(v.B)))
		for _, b := range v.B {
			e.real(b)
		}
	case *expr.Intersection:
		e.u8(tagIntersection)
		e.u32(uint32(len(v.Children)))
		for _, c := range v.Children {
			e.set(c)
		}
	case *expr.SetName:
		e.u8(tagSetName)
		e.str(v.Name)
		e.set(v.Child)
	case *expr.SetReference:
		e.u8(tagSetReference)
		e.str(v.Name)
	case *expr.SetCaseDistinction:
		e.u8(tagSetCaseDistinction)
		e.strs(v.Vars)
		e.u32(uint32(len(v.Cases)))
		for _, c := range v.Cases {
			e.set(c.Set)
			e.set(c.Expression)
		}
	default:
		panic("wire: unknown SetExpr variant")
	}
}

// encodeBody writes the unpacked message body (agentId + discriminated
// payload) with no segment framing; segment table and alignment are applied
// by the caller (marshal.go), matching Cap'n Proto's layering of "message
// structure" beneath "segment framing".
func encodeBody(msg *Message) ([]byte, error) {
	if msg.Advertisement == nil && msg.Request == nil {
		return nil, ErrEmptyMessage
	}
	e := &encoder{}
	e.u32(msg.AgentID)
	if msg.Request != nil {
		e.u8(kindRequest)
		if msg.Request.Setpoint == nil {
			e.u8(0)
		} else {
			e.u8(1)
			e.f64(msg.Request.Setpoint[0])
			e.f64(msg.Request.Setpoint[1])
		}
	} else {
		e.u8(kindAdvertisement)
		adv := msg.Advertisement
		e.set(adv.PQProfile)
		e.set(adv.BeliefFunction)
		e.real(adv.CostFunction)
		if adv.ImplementedSetpoint == nil {
			e.u8(0)
		} else {
			e.u8(1)
			e.f64(adv.ImplementedSetpoint[0])
			e.f64(adv.ImplementedSetpoint[1])
		}
	}
	return e.buf.Bytes(), nil
}
