package valuation

import "fmt"

// ComparativeResult is the homogenized market valuation.
type ComparativeResult struct {
	FinalValue     float64
	UnitValue      float64
	CombinedFactor float64
}

// ComparativeValue homogenizes a reference unit price with location, quality
// and condition factors. Factor ranges are advisory for the caller's sliders
// and deliberately not clamped here.
func ComparativeValue(grossArea, basePrice, locationFactor, qualityFactor, conditionFactor float64) (ComparativeResult, error) {
	if grossArea <= 0 {
		return ComparativeResult{}, fmt.Errorf("%w: gross area %.2f", ErrInvalidArea, grossArea)
	}
	if basePrice <= 0 {
		return ComparativeResult{}, fmt.Errorf("%w: %.2f", ErrInvalidBasePrice, basePrice)
	}

	combined := locationFactor * qualityFactor * conditionFactor
	unit := basePrice * combined
	return ComparativeResult{
		FinalValue:     grossArea * unit,
		UnitValue:      unit,
		CombinedFactor: combined,
	}, nil
}
