package valuation

// MethodFailure records a method that was selected but could not compute.
// A failed method never blocks the remaining methods.
type MethodFailure struct {
	Method Method
	Reason string
}

// ValuationConclusion aggregates the method results of one appraisal.
// Built once per appraisal and never mutated; a recomputation replaces it.
type ValuationConclusion struct {
	PropertyType PropertyType
	Selection    MethodSelection
	Condition    *ConditionAssessment

	Comparative *ComparativeResult
	Cost        *CostResult
	Income      *IncomeResult
	Failures    []MethodFailure

	HeadlineMethod Method
	HeadlineValue  float64
}

// BuildConclusion applies the headline precedence rule over the computed
// methods: comparative wins when present and nonzero, otherwise cost; for
// rustic properties the income result overrides both. The rule is
// deliberately asymmetric and type-conditional.
func BuildConclusion(
	propertyType PropertyType,
	selection MethodSelection,
	condition *ConditionAssessment,
	comparative *ComparativeResult,
	cost *CostResult,
	income *IncomeResult,
	failures []MethodFailure,
) (ValuationConclusion, error) {
	if comparative == nil && cost == nil && income == nil {
		return ValuationConclusion{}, ErrNoMethodResults
	}

	conclusion := ValuationConclusion{
		PropertyType: propertyType,
		Selection:    selection,
		Condition:    condition,
		Comparative:  comparative,
		Cost:         cost,
		Income:       income,
		Failures:     failures,
	}

	switch {
	case comparative != nil && comparative.FinalValue != 0:
		conclusion.HeadlineMethod = MethodComparative
		conclusion.HeadlineValue = comparative.FinalValue
	case cost != nil:
		conclusion.HeadlineMethod = MethodCost
		conclusion.HeadlineValue = cost.FinalValue
	case income != nil:
		conclusion.HeadlineMethod = MethodIncome
		conclusion.HeadlineValue = income.FinalValue
	case comparative != nil:
		// Only a zero comparative result remains.
		conclusion.HeadlineMethod = MethodComparative
		conclusion.HeadlineValue = comparative.FinalValue
	}

	if propertyType == PropertyRustic && income != nil {
		conclusion.HeadlineMethod = MethodIncome
		conclusion.HeadlineValue = income.FinalValue
	}

	if conclusion.HeadlineMethod == "" {
		return ValuationConclusion{}, ErrNoMethodResults
	}
	return conclusion, nil
}
