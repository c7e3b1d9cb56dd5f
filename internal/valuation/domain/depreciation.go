package valuation

import "fmt"

// ConditionPenalty is the Ross-Heidecke state penalty for a conservation class.
type ConditionPenalty struct {
	Code string
	Pct  float64
}

// DefaultConditionPenalties holds the penalty table used when no override is
// configured. The numeric values follow the usual approximation of the
// Heidecke states; they are replaceable configuration, not canon.
func DefaultConditionPenalties() map[Classification]ConditionPenalty {
	return map[Classification]ConditionPenalty{
		ClassificationExcellent: {Code: "A", Pct: 0.0},
		ClassificationGood:      {Code: "B", Pct: 2.5},
		ClassificationMedium:    {Code: "D", Pct: 8.0},
		ClassificationPoor:      {Code: "F", Pct: 18.0},
		ClassificationVeryPoor:  {Code: "H", Pct: 30.0},
	}
}

// fallbackPenalty applies when the classification is missing from the table.
var fallbackPenalty = ConditionPenalty{Code: "C", Pct: 5.0}

// maxDepreciationPct caps total depreciation so a structure always retains at
// least 5% of replacement value (land/residual floor).
const maxDepreciationPct = 95.0

// DepreciationResult is the outcome of the Ross-Heidecke model.
type DepreciationResult struct {
	DepreciationPct float64
	Coefficient     float64
	ConditionCode   string
}

// DepreciationModel computes Ross-Heidecke depreciation with a configurable
// condition penalty table.
type DepreciationModel struct {
	penalties map[Classification]ConditionPenalty
}

// NewDepreciationModel constructs the model. A nil or empty table falls back
// to the defaults.
func NewDepreciationModel(penalties map[Classification]ConditionPenalty) *DepreciationModel {
	if len(penalties) == 0 {
		penalties = DefaultConditionPenalties()
	}
	return &DepreciationModel{penalties: penalties}
}

// Depreciate combines the quadratic Ross aging curve with the condition
// penalty. Depreciation reaches 100% at full life consumption before the
// clamp to [0,95].
func (m *DepreciationModel) Depreciate(ageYears, usefulLifeYears float64, classification Classification) (DepreciationResult, error) {
	if ageYears < 0 {
		return DepreciationResult{}, fmt.Errorf("%w: %.2f", ErrInvalidAge, ageYears)
	}
	if usefulLifeYears <= 0 {
		return DepreciationResult{}, fmt.Errorf("%w: %.2f", ErrInvalidUsefulLife, usefulLifeYears)
	}

	lifeFraction := ageYears / usefulLifeYears
	if lifeFraction > 1 {
		lifeFraction = 1
	}
	ageDeprecPct := 50 * (lifeFraction + lifeFraction*lifeFraction)

	penalty, ok := m.penalties[classification]
	if !ok {
		penalty = fallbackPenalty
	}

	pct := ageDeprecPct + penalty.Pct
	if pct < 0 {
		pct = 0
	}
	if pct > maxDepreciationPct {
		pct = maxDepreciationPct
	}

	return DepreciationResult{
		DepreciationPct: pct,
		Coefficient:     (100 - pct) / 100,
		ConditionCode:   penalty.Code,
	}, nil
}

// CostResult is the replacement-cost valuation derived from depreciation.
type CostResult struct {
	Depreciation DepreciationResult
	UnitCost     float64
	FinalValue   float64
}

// CostValue applies the residual coefficient to new-construction cost.
func CostValue(grossArea, newConstructionUnitCost float64, depreciation DepreciationResult) (CostResult, error) {
	if grossArea <= 0 {
		return CostResult{}, fmt.Errorf("%w: gross area %.2f", ErrInvalidArea, grossArea)
	}
	if newConstructionUnitCost <= 0 {
		return CostResult{}, fmt.Errorf("%w: unit cost %.2f", ErrInvalidBasePrice, newConstructionUnitCost)
	}
	return CostResult{
		Depreciation: depreciation,
		UnitCost:     newConstructionUnitCost,
		FinalValue:   grossArea * newConstructionUnitCost * depreciation.Coefficient,
	}, nil
}
