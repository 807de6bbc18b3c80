package wire

import "github.com/commelec/agent-core/pkg/expr"

// Cursor is a view into a decoded Message whose methods only read, in the
// manner of the reader objects Cap'n Proto exposes after a message is
// parsed. It does not copy: Advertisement and Request return the message's
// own pointers. The interpreter and the validator work on the Message and
// Advertisement directly rather than through a Cursor.
type Cursor struct {
	msg *Message
}

// NewCursor wraps a decoded Message for read-only access.
func NewCursor(msg *Message) *Cursor { return &Cursor{msg: msg} }

// AgentID returns the message's sender id.
func (c *Cursor) AgentID() uint32 { return c.msg.AgentID }

// IsAdvertisement reports whether the message carries an Advertisement.
func (c *Cursor) IsAdvertisement() bool { return c.msg.Advertisement != nil }

// IsRequest reports whether the message carries a Request.
func (c *Cursor) IsRequest() bool { return c.msg.Request != nil }

// Advertisement returns the carried advertisement, or nil if this message is
// a Request.
func (c *Cursor) Advertisement() *Advertisement { return c.msg.Advertisement }

// Request returns the carried request, or nil if this message is an
// Advertisement.
func (c *Cursor) Request() *Request { return c.msg.Request }

// PQProfile returns the advertisement's PQ profile, or nil.
func (c *Cursor) PQProfile() expr.SetExpr {
	if c.msg.Advertisement == nil {
		return nil
	}
	return c.msg.Advertisement.PQProfile
}

// BeliefFunction returns the advertisement's belief function, or nil.
func (c *Cursor) BeliefFunction() expr.SetExpr {
	if c.msg.Advertisement == nil {
		return nil
	}
	return c.msg.Advertisement.BeliefFunction
}

// CostFunction returns the advertisement's cost function, or nil.
func (c *Cursor) CostFunction() expr.RealExpr {
	if c.msg.Advertisement == nil {
		return nil
	}
	return c.msg.Advertisement.CostFunction
}

// DeepCopy re-serializes msg and re-parses the result, forcing the same
// structural validation decode performs on a message received over the
// wire. The validator uses this to sanity-check advertisements it built
// in-process before treating them as trusted.
func DeepCopy(msg *Message, mode Mode, opts DecodeOptions) (*Message, error) {
	data, err := Encode(msg, mode)
	if err != nil {
		return nil, wrapErr("deepcopy", err)
	}
	return Decode(data, mode, opts)
}
