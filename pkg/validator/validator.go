// Package validator implements the advertisement acceptance procedure:
// decode the wire message, deep-copy it as a structural re-validation step,
// check the required fields are present, compute the bounding box of the PQ
// profile, then exercise the cost function and belief function on a batch
// of random points drawn from that profile.
package validator

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/commelec/agent-core/pkg/expr"
	"github.com/commelec/agent-core/pkg/interp"
	"github.com/commelec/agent-core/pkg/wire"
)

// CostFunctionEvaluations and BeliefFunctionEvaluations are the per-run
// sample counts for the two acceptance-sampling passes.
const (
	CostFunctionEvaluations   = 100
	BeliefFunctionEvaluations = 100
	maxRejectionSamplingTries = 10000
)

// ErrRejectionSamplingExhausted is returned when sampleSetpoint cannot find
// a point inside the PQ profile within maxRejectionSamplingTries attempts.
// A PQ profile with zero area would otherwise spin the sampler forever.
type ErrRejectionSamplingExhausted struct{ Tries int }

func (e *ErrRejectionSamplingExhausted) Error() string {
	return fmt.Sprintf("validator: could not sample a point inside the PQ profile after %d tries; profile may have zero area", e.Tries)
}

// InvalidAdvertisement is the base error kind every validation failure in
// this package wraps.
type InvalidAdvertisement struct {
	Msg string
}

func (e *InvalidAdvertisement) Error() string { return "validator: " + e.Msg }

// UninitializedPQProfile is returned when the advertisement has no PQ
// profile set.
type UninitializedPQProfile struct{}

func (e *UninitializedPQProfile) Error() string { return "validator: PQ profile is not set" }

// UninitializedBeliefFunction is returned when the advertisement has no
// belief function set.
type UninitializedBeliefFunction struct{}

func (e *UninitializedBeliefFunction) Error() string { return "validator: belief function is not set" }

// UninitializedCostFunction is returned when the advertisement has no cost
// function set.
type UninitializedCostFunction struct{}

func (e *UninitializedCostFunction) Error() string { return "validator: cost function is not set" }

// UninitializedImplementedSetpoint is returned when the implemented
// setpoint is absent, per the nil-vs-zero distinction of wire.Advertisement.
type UninitializedImplementedSetpoint struct{}

func (e *UninitializedImplementedSetpoint) Error() string {
	return "validator: implemented setpoint is not set"
}

// Result carries the diagnostics collected by Validate: the PQ profile's
// bounding box and the union of every sampled point's belief-function
// bounding box, for logging/inspection by a caller.
type Result struct {
	PQProfileBox    interp.Box
	BeliefUnionBox  interp.Box
	CostFnSamples   int
	BeliefFnSamples int
}

// Validate runs the full five-step procedure against an already-decoded
// message: structural re-validation via DeepCopy, field presence checks,
// PQ-profile hull computation, cost/belief function sampling, and
// belief-hull merging. log receives step-by-step progress narration; pass
// slog.Default() if no particular logger is wanted.
func Validate(msg *wire.Message, mode wire.Mode, log *slog.Logger) (*Result, error) {
	log.Info("commelec advertisement validation procedure starting")

	if msg.Advertisement == nil {
		return nil, &InvalidAdvertisement{Msg: "message does not carry an advertisement"}
	}
	// The presence checks run before the re-encode below: the codec requires
	// all three trees to be present, so a partially-built in-process
	// advertisement must be rejected here rather than fed to Encode.
	if err := checkDefinitions(msg.Advertisement); err != nil {
		return nil, err
	}
	log.Info("PQ profile, cost function and belief function are defined, and implemented setpoint is set")

	// A deep copy forces the codec to round-trip the tree, catching any
	// structural inconsistency the first decode missed.
	copied, err := wire.DeepCopy(msg, mode, wire.DecodeOptions{})
	if err != nil {
		return nil, fmt.Errorf("validator: deep copy re-validation: %w", err)
	}
	adv := copied.Advertisement

	in, err := interp.New(adv)
	if err != nil {
		return nil, fmt.Errorf("validator: building interpreter: %w", err)
	}

	pqBox, err := in.Hull(adv.PQProfile, interp.Bindings{})
	if err != nil {
		return nil, fmt.Errorf("validator: PQ profile appears unbounded: %w", err)
	}

	log.Info("evaluating cost function on random points in the PQ profile", "count", CostFunctionEvaluations)
	for i := 0; i < CostFunctionEvaluations; i++ {
		p, err := sampleSetpoint(in, adv.PQProfile, pqBox)
		if err != nil {
			return nil, err
		}
		if _, err := in.Evaluate(adv.CostFunction, interp.Bindings{"P": p[0], "Q": p[1]}); err != nil {
			return nil, fmt.Errorf("validator: evaluating cost function: %w", err)
		}
	}

	log.Info("evaluating belief function on random points and merging bounding boxes", "count", BeliefFunctionEvaluations)
	var beliefUnion interp.Box
	haveUnion := false
	for i := 0; i < BeliefFunctionEvaluations; i++ {
		p, err := sampleSetpoint(in, adv.PQProfile, pqBox)
		if err != nil {
			return nil, err
		}
		bindings := interp.Bindings{"P": p[0], "Q": p[1]}
		box, err := in.Hull(adv.BeliefFunction, bindings)
		if err != nil {
			return nil, fmt.Errorf("validator: evaluating belief function: %w", err)
		}
		if !haveUnion {
			beliefUnion = box
			haveUnion = true
		} else {
			beliefUnion = mergeBox(beliefUnion, box)
		}
	}

	log.Info("end of validation procedure")
	return &Result{
		PQProfileBox:    pqBox,
		BeliefUnionBox:  beliefUnion,
		CostFnSamples:   CostFunctionEvaluations,
		BeliefFnSamples: BeliefFunctionEvaluations,
	}, nil
}

func checkDefinitions(adv *wire.Advertisement) error {
	if adv.PQProfile == nil {
		return &UninitializedPQProfile{}
	}
	if adv.CostFunction == nil {
		return &UninitializedCostFunction{}
	}
	if adv.BeliefFunction == nil {
		return &UninitializedBeliefFunction{}
	}
	if adv.ImplementedSetpoint == nil {
		return &UninitializedImplementedSetpoint{}
	}
	return nil
}

// sampleSetpoint draws a uniform random point from box and accepts it once
// it also lies in profile: sample the bounding box, reject if outside the
// actual (possibly non-rectangular) profile, retry.
func sampleSetpoint(in *interp.Interpreter, profile expr.SetExpr, box interp.Box) (interp.Point2D, error) {
	for i := 0; i < maxRejectionSamplingTries; i++ {
		p := interp.Point2D{
			uniform(box.Min[0], box.Max[0]),
			uniform(box.Min[1], box.Max[1]),
		}
		ok, err := in.Contains(profile, p, interp.Bindings{})
		if err != nil {
			return interp.Point2D{}, fmt.Errorf("validator: testing PQ profile membership: %w", err)
		}
		if ok {
			return p, nil
		}
	}
	return interp.Point2D{}, &ErrRejectionSamplingExhausted{Tries: maxRejectionSamplingTries}
}

func uniform(lo, hi float64) float64 {
	if lo >= hi {
		return lo
	}
	return lo + rand.Float64()*(hi-lo)
}

func mergeBox(a, b interp.Box) interp.Box {
	return interp.Box{
		Min: interp.Point2D{min2(a.Min[0], b.Min[0]), min2(a.Min[1], b.Min[1])},
		Max: interp.Point2D{max2(a.Max[0], b.Max[0]), max2(a.Max[1], b.Max[1])},
	}
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
