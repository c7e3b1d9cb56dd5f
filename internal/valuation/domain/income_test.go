package valuation

import (
	"errors"
	"testing"
)

func TestIncomeValue(t *testing.T) {
	result, err := IncomeValue(500, 0.05)
	if err != nil {
		t.Fatalf("income: %v", err)
	}
	if result.AnnualRent != 6000 {
		t.Fatalf("expected annual rent 6000, got %v", result.AnnualRent)
	}
	if result.FinalValue != 120000 {
		t.Fatalf("expected 120000, got %v", result.FinalValue)
	}
}

func TestIncomeValue_ZeroRent(t *testing.T) {
	result, err := IncomeValue(0, 0.05)
	if err != nil {
		t.Fatalf("income: %v", err)
	}
	if result.FinalValue != 0 {
		t.Fatalf("expected 0, got %v", result.FinalValue)
	}
}

func TestIncomeValue_InvalidYield(t *testing.T) {
	if _, err := IncomeValue(500, 0); !errors.Is(err, ErrInvalidYield) {
		t.Fatalf("expected invalid yield for 0, got %v", err)
	}
	if _, err := IncomeValue(500, -0.05); !errors.Is(err, ErrInvalidYield) {
		t.Fatalf("expected invalid yield for negative, got %v", err)
	}
}

func TestIncomeValue_NegativeRent(t *testing.T) {
	if _, err := IncomeValue(-1, 0.05); !errors.Is(err, ErrInvalidRent) {
		t.Fatalf("expected invalid rent, got %v", err)
	}
}
