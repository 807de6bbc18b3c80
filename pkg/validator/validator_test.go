package validator

import (
	"io"
	"log/slog"
	"testing"

	"github.com/commelec/agent-core/pkg/expr/builder"
	"github.com/commelec/agent-core/pkg/wire"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestValidateBatteryAdvertisement(t *testing.T) {
	cost := builder.BatteryCostQuadratic(1, 1)
	adv := builder.BuildBatteryAdvertisement(-5, 5, 5, cost, 2, 0)
	msg := &wire.Message{AgentID: 1, Advertisement: adv}

	result, err := Validate(msg, wire.Packed, discardLogger())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.PQProfileBox.Min[0] < -5.0001 || result.PQProfileBox.Max[0] > 5.0001 {
		t.Errorf("PQ profile box out of expected P range: %+v", result.PQProfileBox)
	}
	if result.CostFnSamples != CostFunctionEvaluations {
		t.Errorf("CostFnSamples = %d, want %d", result.CostFnSamples, CostFunctionEvaluations)
	}
}

func TestValidatePVAdvertisement(t *testing.T) {
	adv := builder.BuildPVAdvertisement(10, 10, 2, 0.5, 1, 0.1, 3, 1)
	msg := &wire.Message{AgentID: 2, Advertisement: adv}

	result, err := Validate(msg, wire.Unpacked, discardLogger())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.BeliefFnSamples != BeliefFunctionEvaluations {
		t.Errorf("BeliefFnSamples = %d, want %d", result.BeliefFnSamples, BeliefFunctionEvaluations)
	}
}

func TestValidateMissingPQProfile(t *testing.T) {
	adv := builder.BuildBatteryAdvertisement(-5, 5, 5, builder.BatteryCostQuadratic(1, 1), 0, 0)
	adv.PQProfile = nil
	msg := &wire.Message{AgentID: 1, Advertisement: adv}

	_, err := Validate(msg, wire.Packed, discardLogger())
	if _, ok := err.(*UninitializedPQProfile); !ok {
		t.Fatalf("expected *UninitializedPQProfile, got %T (%v)", err, err)
	}
}

func TestValidateMissingImplementedSetpoint(t *testing.T) {
	adv := builder.BuildBatteryAdvertisement(-5, 5, 5, builder.BatteryCostQuadratic(1, 1), 0, 0)
	adv.ImplementedSetpoint = nil
	msg := &wire.Message{AgentID: 1, Advertisement: adv}

	_, err := Validate(msg, wire.Packed, discardLogger())
	if _, ok := err.(*UninitializedImplementedSetpoint); !ok {
		t.Fatalf("expected *UninitializedImplementedSetpoint, got %T (%v)", err, err)
	}
}

func TestValidateRequestOnlyMessageRejected(t *testing.T) {
	msg := &wire.Message{AgentID: 1, Request: &wire.Request{Setpoint: &[2]float64{1, 2}}}

	_, err := Validate(msg, wire.Packed, discardLogger())
	if err == nil {
		t.Fatal("expected error validating a request-only message, got nil")
	}
}
