package valuation

import (
	"errors"
	"math"
	"testing"
)

func TestComparativeValue_Identity(t *testing.T) {
	result, err := ComparativeValue(100, 3500, 1.0, 1.0, 1.0)
	if err != nil {
		t.Fatalf("comparative: %v", err)
	}
	if result.FinalValue != 350000 {
		t.Fatalf("expected 350000, got %v", result.FinalValue)
	}
	if result.UnitValue != 3500 {
		t.Fatalf("expected unit 3500, got %v", result.UnitValue)
	}
	if result.CombinedFactor != 1.0 {
		t.Fatalf("expected factor 1.0, got %v", result.CombinedFactor)
	}
}

func TestComparativeValue_FactorsMultiply(t *testing.T) {
	result, err := ComparativeValue(100, 3500, 1.2, 0.9, 0.8)
	if err != nil {
		t.Fatalf("comparative: %v", err)
	}
	expectedFactor := 1.2 * 0.9 * 0.8
	if math.Abs(result.CombinedFactor-expectedFactor) > 1e-9 {
		t.Fatalf("expected factor %v, got %v", expectedFactor, result.CombinedFactor)
	}
	if math.Abs(result.FinalValue-100*3500*expectedFactor) > 1e-6 {
		t.Fatalf("expected %v, got %v", 100*3500*expectedFactor, result.FinalValue)
	}
}

func TestComparativeValue_FactorsNotClamped(t *testing.T) {
	// Slider ranges are advisory; an out-of-range factor passes through.
	result, err := ComparativeValue(100, 1000, 2.0, 1.0, 1.0)
	if err != nil {
		t.Fatalf("comparative: %v", err)
	}
	if result.CombinedFactor != 2.0 {
		t.Fatalf("expected factor 2.0, got %v", result.CombinedFactor)
	}
}

func TestComparativeValue_InvalidInputs(t *testing.T) {
	if _, err := ComparativeValue(0, 3500, 1, 1, 1); !errors.Is(err, ErrInvalidArea) {
		t.Fatalf("expected invalid area, got %v", err)
	}
	if _, err := ComparativeValue(100, 0, 1, 1, 1); !errors.Is(err, ErrInvalidBasePrice) {
		t.Fatalf("expected invalid base price, got %v", err)
	}
}
