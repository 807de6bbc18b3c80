package wire

import "encoding/binary"

// segmentTable is always a single segment: Cap'n Proto allows a tree to span
// several segments so a message can outgrow one contiguous allocation, but
// an advertisement is built once in memory and is small, so one segment
// (8-byte table + body) is sufficient.
func buildSegmentTable(bodyWords uint32) []byte {
	hdr := make([]byte, 8)
	binary.LittleEndian.PutUint32(hdr[0:4], 0) // segmentCount - 1
	binary.LittleEndian.PutUint32(hdr[4:8], bodyWords)
	return hdr
}

func padToWord(b []byte) []byte {
	if rem := len(b) % 8; rem != 0 {
		b = append(b, make([]byte, 8-rem)...)
	}
	return b
}

// Encode serializes msg in the given Mode.
func Encode(msg *Message, mode Mode) ([]byte, error) {
	body, err := encodeBody(msg)
	if err != nil {
		return nil, wrapErr("encode", err)
	}
	body = padToWord(body)
	raw := append(buildSegmentTable(uint32(len(body)/8)), body...)
	if mode == Unpacked {
		return raw, nil
	}
	return pack(raw), nil
}

// DecodeOptions bounds the resources a Decode call may spend on hostile
// input. Zero values fall back to the package defaults.
type DecodeOptions struct {
	TraversalLimitWords int
	MaxNestingDepth     int
}

func (o DecodeOptions) withDefaults() DecodeOptions {
	if o.TraversalLimitWords <= 0 {
		o.TraversalLimitWords = DefaultTraversalLimitWords
	}
	if o.MaxNestingDepth <= 0 {
		o.MaxNestingDepth = DefaultMaxNestingDepth
	}
	return o
}

// Decode parses data, which must have been produced by Encode with the same
// Mode, into a Message.
func Decode(data []byte, mode Mode, opts DecodeOptions) (*Message, error) {
	opts = opts.withDefaults()
	raw := data
	if mode == Packed {
		var err error
		raw, err = unpack(data, opts.TraversalLimitWords)
		if err != nil {
			return nil, wrapErr("decode", err)
		}
	}
	if len(raw) < 8 {
		return nil, wrapErr("decode", ErrMalformedMessage)
	}
	segCountMinus1 := binary.LittleEndian.Uint32(raw[0:4])
	bodyWords := binary.LittleEndian.Uint32(raw[4:8])
	if segCountMinus1 != 0 {
		// Multi-segment messages never occur on this wire; a non-zero
		// count here means the input was not produced by this codec.
		return nil, wrapErr("decode", ErrMalformedMessage)
	}
	bodyEnd := 8 + int(bodyWords)*8
	if bodyEnd > len(raw) {
		return nil, wrapErr("decode", ErrMalformedMessage)
	}
	msg, err := decodeBody(raw[8:bodyEnd], opts.TraversalLimitWords, opts.MaxNestingDepth)
	if err != nil {
		return nil, wrapErr("decode", err)
	}
	return msg, nil
}

// MarshalBinary implements encoding.BinaryMarshaler, defaulting to the
// packed wire variant.
func (m *Message) MarshalBinary() ([]byte, error) {
	return Encode(m, Packed)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, defaulting to the
// packed wire variant with the package's default resource limits. Callers
// needing the unpacked variant or custom limits should call Decode directly.
func (m *Message) UnmarshalBinary(data []byte) error {
	decoded, err := Decode(data, Packed, DecodeOptions{})
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}
