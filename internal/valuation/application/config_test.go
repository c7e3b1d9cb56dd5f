package application

import (
	"os"
	"path/filepath"
	"testing"

	valuation "appraisal-cloud/internal/valuation/domain"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UsefulLifeYears != 80 {
		t.Fatalf("expected useful life 80, got %v", cfg.UsefulLifeYears)
	}
	if cfg.DefaultYield != 0.05 {
		t.Fatalf("expected yield 0.05, got %v", cfg.DefaultYield)
	}
	if cfg.Currency != "EUR" {
		t.Fatalf("expected EUR, got %s", cfg.Currency)
	}
}

func TestLoadConfig_YAMLOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appraisal.yaml")
	content := []byte(`
useful_life_years: 60
unit_construction_cost: 1500
default_yield: 0.04
currency: EUR
condition_penalties:
  good:
    pct: 3.0
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("APPRAISAL_CONFIG", path)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UsefulLifeYears != 60 {
		t.Fatalf("expected useful life 60, got %v", cfg.UsefulLifeYears)
	}

	table := cfg.PenaltyTable()
	good := table[valuation.ClassificationGood]
	if good.Pct != 3.0 {
		t.Fatalf("expected overridden penalty 3.0, got %v", good.Pct)
	}
	// Code falls back to the default table when the override omits it.
	if good.Code != "B" {
		t.Fatalf("expected code B kept, got %s", good.Code)
	}
	if table[valuation.ClassificationPoor].Pct != 18.0 {
		t.Fatalf("expected untouched default 18.0, got %v", table[valuation.ClassificationPoor].Pct)
	}
}

func TestLoadConfig_RejectsNonPositiveYield(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appraisal.yaml")
	if err := os.WriteFile(path, []byte("default_yield: -0.01\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("APPRAISAL_CONFIG", path)

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for non-positive yield")
	}
}
