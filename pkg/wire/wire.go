// Package wire implements the compact binary encoding of the protocol: a
// Message envelope carrying either an Advertisement or a Request, serialized
// as a sequence of 8-byte-aligned segments preceded by a segment table, in
// either the packed (zero-word run-length compressed) or unpacked form
// established by the Cap'n Proto 0.5.x wire format. Both variants decode to
// the same in-memory tree; the codec choice is a single Mode parameter.
package wire

import (
	"errors"
	"fmt"

	"github.com/commelec/agent-core/pkg/expr"
)

// Mode selects which of the two wire variants Encode, Decode and DeepCopy
// use. MarshalBinary/UnmarshalBinary always use Packed.
type Mode int

const (
	// Packed applies the zero-word RLE compression pass; the default
	// on-the-wire form.
	Packed Mode = iota
	// Unpacked is the canonical, uncompressed form.
	Unpacked
)

// Request is the grid agent's half of the exchange. Setpoint is the (P, Q)
// operating point the grid agent asks the resource to implement; nil means
// the grid agent is only soliciting a fresh advertisement.
type Request struct {
	Setpoint *[2]float64
}

// Advertisement is the agent-side flexibility model: a PQ profile (the set
// of setpoints the agent can accept), a belief function (predicted P,Q given
// a chosen setpoint) and a cost function over the PQ plane.
type Advertisement struct {
	PQProfile      expr.SetExpr
	BeliefFunction expr.SetExpr
	CostFunction   expr.RealExpr
	// ImplementedSetpoint is the (P, Q) the agent actually realized on its
	// last control tick. nil means the field was never set, distinct from
	// the zero setpoint (0, 0); the validator's presence check depends on
	// telling the two apart.
	ImplementedSetpoint *[2]float64
}

// Message is the top-level envelope: exactly one of Advertisement or Request
// is non-nil.
type Message struct {
	AgentID       uint32
	Advertisement *Advertisement
	Request       *Request
}

// Errors returned by the codec.
var (
	// ErrMalformedMessage signals a truncated or corrupt segment table, an
	// unrecognised tag byte, or a packed stream that unpacks inconsistently.
	ErrMalformedMessage = errors.New("wire: malformed message")
	// ErrTraversalLimitExceeded is returned when decoding would read more
	// words than the configured traversal limit allows.
	ErrTraversalLimitExceeded = errors.New("wire: traversal limit exceeded")
	// ErrNestingTooDeep is returned when a tree exceeds maxNestingDepth
	// during decode, guarding against unbounded recursion on hostile input.
	ErrNestingTooDeep = errors.New("wire: nesting too deep")
	// ErrEmptyMessage is returned when neither Advertisement nor Request is
	// set on encode.
	ErrEmptyMessage = errors.New("wire: message carries neither advertisement nor request")
)

// DefaultTraversalLimitWords bounds decode work to 8 MiB of words (1Mi
// 8-byte words), matching Cap'n Proto's own conservative default.
const DefaultTraversalLimitWords = 8 * 1024 * 1024 / 8

// DefaultMaxNestingDepth bounds recursive tree descent during decode.
const DefaultMaxNestingDepth = 64

// wrapErr annotates err with the operation name it occurred under.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("wire: %s: %w", op, err)
}
