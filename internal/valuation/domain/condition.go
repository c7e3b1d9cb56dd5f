package valuation

import "fmt"

// Classification is the NRAU conservation class derived from the condition index.
type Classification string

const (
	ClassificationExcellent Classification = "excellent"
	ClassificationGood      Classification = "good"
	ClassificationMedium    Classification = "medium"
	ClassificationPoor      Classification = "poor"
	ClassificationVeryPoor  Classification = "very_poor"
	// ClassificationNA marks the degenerate case with no ratings supplied.
	ClassificationNA Classification = "n/a"
)

// Structural component names rated during inspection.
const (
	ComponentStructure   = "structure"
	ComponentRoof        = "roof"
	ComponentFacades     = "facades"
	ComponentSharedWalls = "shared_walls"
	ComponentFrames      = "frames"
	ComponentUtilities   = "utilities"
)

// componentWeights is the NRAU weight table. Components outside the table
// still count, with weight 1.
var componentWeights = map[string]float64{
	ComponentStructure:   6,
	ComponentRoof:        5,
	ComponentFacades:     3,
	ComponentSharedWalls: 3,
	ComponentFrames:      2,
	ComponentUtilities:   3,
}

// ConditionAssessment is the scored outcome of an inspection.
type ConditionAssessment struct {
	Index          float64
	Classification Classification
}

// ScoreCondition computes the weighted NRAU index and its classification.
// An empty ratings map yields index 0 and classification n/a rather than an
// error. Ratings must be within [1,5].
func ScoreCondition(ratings map[string]int) (ConditionAssessment, error) {
	var weightedSum, weightSum float64
	for component, rating := range ratings {
		if rating < 1 || rating > 5 {
			return ConditionAssessment{}, fmt.Errorf("%w: %s=%d", ErrInvalidRating, component, rating)
		}
		weight, ok := componentWeights[component]
		if !ok {
			weight = 1
		}
		weightedSum += float64(rating) * weight
		weightSum += weight
	}
	if weightSum == 0 {
		return ConditionAssessment{Index: 0, Classification: ClassificationNA}, nil
	}
	index := weightedSum / weightSum
	return ConditionAssessment{Index: index, Classification: classify(index)}, nil
}

// classify maps an index in [1,5] to a conservation class. Bands are
// contiguous with inclusive lower bounds.
func classify(index float64) Classification {
	switch {
	case index >= 4.5:
		return ClassificationExcellent
	case index >= 3.5:
		return ClassificationGood
	case index >= 2.5:
		return ClassificationMedium
	case index >= 1.5:
		return ClassificationPoor
	default:
		return ClassificationVeryPoor
	}
}
