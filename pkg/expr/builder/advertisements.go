package builder

import (
	"github.com/commelec/agent-core/pkg/expr"
	"github.com/commelec/agent-core/pkg/wire"
)

// PolyTerm is one monomial supplied to Poly: Exponents[i] is the exponent of
// Vars[i] in this term.
type PolyTerm struct {
	Exponents []uint32
	Coeff     float64
}

// Poly builds a Polynomial node from a sparse list of terms, packing each
// term's exponent vector into an offset in base maxVarDegree+1 so callers
// never have to compute offsets by hand.
func Poly(vars []string, maxVarDegree uint32, terms ...PolyTerm) expr.RealExpr {
	coeffs := make([]expr.PolyCoefficient, 0, len(terms))
	for _, t := range terms {
		var offset uint32 = 0
		mult := uint32(1)
		for i := range vars {
			var e uint32
			if i < len(t.Exponents) {
				e = t.Exponents[i]
			}
			offset += e * mult
			mult *= maxVarDegree + 1
		}
		coeffs = append(coeffs, expr.PolyCoefficient{Offset: offset, Value: t.Coeff})
	}
	return &expr.Polynomial{Variables: vars, MaxVarDegree: maxVarDegree, Coefficients: coeffs}
}

// BatteryPQProfile is the intersection of the disk of radius Srated and the
// band Pmin <= P <= Pmax.
func BatteryPQProfile(pmin, pmax, srated float64) expr.SetExpr {
	disk := BallOf([]expr.RealExpr{R(0), R(0)}, R(srated))
	band := Polytope(
		[][]expr.RealExpr{
			Row(R(1), R(0)),
			Row(R(-1), R(0)),
		},
		[]expr.RealExpr{R(pmax), R(-pmin)},
	)
	return Intersect(disk, band)
}

// IdentityBeliefFunction is Singleton(Variable("P"), Variable("Q")), the
// "no additional information beyond the setpoint itself" belief function
// used by the battery advertisement.
func IdentityBeliefFunction() expr.SetExpr {
	return Point(Var("P"), Var("Q"))
}

// BatteryCostCubic is the cubic cost-function form
// coeffPcubed*P^3 + coeffPsquared*P^2 + coeffP*P. Some deployments price
// battery wear with the cubic term; others use BatteryCostQuadratic.
func BatteryCostCubic(coeffP, coeffPsquared, coeffPcubed float64) expr.RealExpr {
	return Poly([]string{"P"}, 4,
		PolyTerm{Exponents: []uint32{3}, Coeff: coeffPcubed},
		PolyTerm{Exponents: []uint32{2}, Coeff: coeffPsquared},
		PolyTerm{Exponents: []uint32{1}, Coeff: coeffP},
	)
}

// BatteryCostQuadratic is the quadratic cost-function form
// 0.5*P^2 + coeffP/(2*coeffPsquared)*P.
func BatteryCostQuadratic(coeffP, coeffPsquared float64) expr.RealExpr {
	return Poly([]string{"P"}, 3,
		PolyTerm{Exponents: []uint32{2}, Coeff: 0.5},
		PolyTerm{Exponents: []uint32{1}, Coeff: coeffP / (2 * coeffPsquared)},
	)
}

// BatteryAdvertisement assembles the full (pqProfile, beliefFunction,
// costFunction) triple of a battery agent. costFunction is typically the
// result of BatteryCostCubic or BatteryCostQuadratic.
func BatteryAdvertisement(pmin, pmax, srated float64, costFunction expr.RealExpr) (pqProfile, beliefFunction expr.SetExpr, cost expr.RealExpr) {
	return BatteryPQProfile(pmin, pmax, srated), IdentityBeliefFunction(), costFunction
}

// PVPQProfile is the intersection of the tanPhi-parameterized triangle and
// the disk of radius Srated.
func PVPQProfile(pmax, srated, tanPhi float64) expr.SetExpr {
	triangle := Polytope(
		[][]expr.RealExpr{
			Row(R(1), R(0)),
			Row(R(-tanPhi), R(1)),
			Row(R(-tanPhi), R(-1)),
		},
		[]expr.RealExpr{R(pmax), R(0), R(0)},
	)
	disk := BallOf([]expr.RealExpr{R(0), R(0)}, R(srated))
	return Intersect(triangle, disk)
}

// PVBeliefFunction is the curtailment-aware rectangle belief function with
// corners (p1, q1) and (p2, q2):
//
//	p1 := P
//	q1 := Q
//	p2 := max(0, P - Pdelta)
//	q2 := sign(Q) * min(|Q|, p2 * tanPhi)
func PVBeliefFunction(pdelta, tanPhi float64) expr.SetExpr {
	p2 := Named("a", MaxOf(R(0), Add(Var("P"), R(-pdelta))))
	q2 := Mul(SignOf(Var("Q")), MinOf(AbsOf(Var("Q")), Mul(Ref("a"), R(tanPhi))))
	return Rect(
		Interval(Var("P"), p2),
		Interval(Var("Q"), q2),
	)
}

// PVCostFunction is -a_pv*P + b_pv*Q^2.
func PVCostFunction(aPV, bPV float64) expr.RealExpr {
	return Poly([]string{"P", "Q"}, 3,
		PolyTerm{Exponents: []uint32{1, 0}, Coeff: -aPV},
		PolyTerm{Exponents: []uint32{0, 2}, Coeff: bPV},
	)
}

// PVAdvertisement assembles the full (pqProfile, beliefFunction,
// costFunction) triple of a PV agent.
func PVAdvertisement(pmax, srated, pdelta, tanPhi, aPV, bPV float64) (pqProfile, beliefFunction expr.SetExpr, cost expr.RealExpr) {
	return PVPQProfile(pmax, srated, tanPhi), PVBeliefFunction(pdelta, tanPhi), PVCostFunction(aPV, bPV)
}

// BuildBatteryAdvertisement assembles a ready-to-send wire.Advertisement for
// a battery agent. pimp/qimp are the setpoint the agent last implemented.
func BuildBatteryAdvertisement(pmin, pmax, srated float64, cost expr.RealExpr, pimp, qimp float64) *wire.Advertisement {
	pq, bf, cf := BatteryAdvertisement(pmin, pmax, srated, cost)
	return &wire.Advertisement{
		PQProfile:           pq,
		BeliefFunction:      bf,
		CostFunction:        cf,
		ImplementedSetpoint: &[2]float64{pimp, qimp},
	}
}

// BuildPVAdvertisement assembles a ready-to-send wire.Advertisement for a PV
// agent.
func BuildPVAdvertisement(pmax, srated, pdelta, tanPhi, aPV, bPV, pimp, qimp float64) *wire.Advertisement {
	pq, bf, cf := PVAdvertisement(pmax, srated, pdelta, tanPhi, aPV, bPV)
	return &wire.Advertisement{
		PQProfile:           pq,
		BeliefFunction:      bf,
		CostFunction:        cf,
		ImplementedSetpoint: &[2]float64{pimp, qimp},
	}
}
