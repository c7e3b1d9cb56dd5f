package valuation

import "fmt"

// IncomeResult is the income-capitalization valuation.
type IncomeResult struct {
	FinalValue float64
	AnnualRent float64
}

// IncomeValue capitalizes monthly rent at the given yield. A yield at or
// below zero is rejected rather than dividing through silently.
func IncomeValue(monthlyRent, yieldRate float64) (IncomeResult, error) {
	if monthlyRent < 0 {
		return IncomeResult{}, fmt.Errorf("%w: %.2f", ErrInvalidRent, monthlyRent)
	}
	if yieldRate <= 0 {
		return IncomeResult{}, fmt.Errorf("%w: %.4f", ErrInvalidYield, yieldRate)
	}

	annual := monthlyRent * 12
	return IncomeResult{
		FinalValue: annual / yieldRate,
		AnnualRent: annual,
	}, nil
}
