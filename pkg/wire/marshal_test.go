package wire

import (
	"errors"
	"reflect"
	"testing"

	"github.com/commelec/agent-core/pkg/expr"
)

func sampleAdvertisement() *Message {
	return &Message{
		AgentID: 42,
		Advertisement: &Advertisement{
			PQProfile: &expr.Intersection{
				Children: []expr.SetExpr{
					&expr.Ball{Center: []expr.RealExpr{&expr.Real{X: 0}, &expr.Real{X: 0}}, Radius: &expr.Real{X: 12}},
					&expr.ConvexPolytope{
						A: [][]expr.RealExpr{{&expr.Real{X: 1}, &expr.Real{X: 0}}, {&expr.Real{X: -1}, &expr.Real{X: 0}}},
						B: []expr.RealExpr{&expr.Real{X: 10}, &expr.Real{X: 5}},
					},
				},
			},
			BeliefFunction: &expr.Singleton{Coords: []expr.RealExpr{&expr.Reference{Name: "P"}, &expr.Reference{Name: "Q"}}},
			CostFunction: &expr.Polynomial{
				Variables:    []string{"P", "Q"},
				MaxVarDegree: 4,
				Coefficients: []expr.PolyCoefficient{{Offset: 2, Value: 1}, {Offset: 16, Value: 3}},
			},
			ImplementedSetpoint: &[2]float64{2, 0},
		},
	}
}

func sampleRequest() *Message {
	return &Message{AgentID: 7, Request: &Request{Setpoint: &[2]float64{1.5, -2.25}}}
}

func TestRoundTripPacked(t *testing.T) {
	for _, msg := range []*Message{sampleAdvertisement(), sampleRequest()} {
		data, err := Encode(msg, Packed)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		got, err := Decode(data, Packed, DecodeOptions{})
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !reflect.DeepEqual(msg, got) {
			t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, msg)
		}
	}
}

func TestRoundTripUnpacked(t *testing.T) {
	for _, msg := range []*Message{sampleAdvertisement(), sampleRequest()} {
		data, err := Encode(msg, Unpacked)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		got, err := Decode(data, Unpacked, DecodeOptions{})
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !reflect.DeepEqual(msg, got) {
			t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, msg)
		}
	}
}

func TestMarshalBinaryUnmarshalBinary(t *testing.T) {
	msg := sampleAdvertisement()
	data, err := msg.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	var got Message
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if !reflect.DeepEqual(msg, &got) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, msg)
	}
}

func TestImplementedSetpointNilVsZero(t *testing.T) {
	absent := &Message{AgentID: 1, Advertisement: &Advertisement{
		PQProfile: &expr.Singleton{Coords: []expr.RealExpr{&expr.Real{X: 0}}},
		BeliefFunction: &expr.Singleton{Coords: []expr.RealExpr{&expr.Real{X: 0}}},
		CostFunction: &expr.Real{X: 0},
	}}
	data, err := Encode(absent, Packed)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data, Packed, DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Advertisement.ImplementedSetpoint != nil {
		t.Errorf("expected nil ImplementedSetpoint to survive round trip, got %v", *got.Advertisement.ImplementedSetpoint)
	}
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	data, err := Encode(sampleAdvertisement(), Unpacked)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	_, err = Decode(data[:len(data)-4], Unpacked, DecodeOptions{})
	if err == nil {
		t.Fatal("expected an error decoding truncated input")
	}
}

func TestDecodeEnforcesNestingDepth(t *testing.T) {
	msg := sampleAdvertisement()
	data, err := Encode(msg, Packed)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	_, err = Decode(data, Packed, DecodeOptions{MaxNestingDepth: 1})
	if !errors.Is(err, ErrNestingTooDeep) {
		t.Fatalf("Decode: got %v, want ErrNestingTooDeep", err)
	}
}

func TestDeepCopy(t *testing.T) {
	msg := sampleAdvertisement()
	copied, err := DeepCopy(msg, Packed, DecodeOptions{})
	if err != nil {
		t.Fatalf("DeepCopy: %v", err)
	}
	if !reflect.DeepEqual(msg, copied) {
		t.Errorf("DeepCopy mismatch:\n got  %+v\n want %+v", copied, msg)
	}
}
