package application

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	valuation "appraisal-cloud/internal/valuation/domain"
)

// PenaltyConfig overrides one Ross-Heidecke condition penalty.
type PenaltyConfig struct {
	Code string  `yaml:"code"`
	Pct  float64 `yaml:"pct"`
}

// Config holds the engine constants. The penalty numbers are stated as an
// approximation in the reference tables, so they live here instead of being
// hardcoded in the model.
type Config struct {
	ConditionPenalties   map[string]PenaltyConfig `yaml:"condition_penalties"`
	UsefulLifeYears      float64                  `yaml:"useful_life_years"`
	UnitConstructionCost float64                  `yaml:"unit_construction_cost"`
	DefaultYield         float64                  `yaml:"default_yield"`
	Currency             string                   `yaml:"currency"`
}

// LoadConfig loads engine config from yaml or env.
func LoadConfig() (Config, error) {
	cfg := Config{
		UsefulLifeYears:      getenvFloatDefault("APPRAISAL_USEFUL_LIFE_YEARS", 80),
		UnitConstructionCost: getenvFloatDefault("APPRAISAL_UNIT_CONSTRUCTION_COST", 1200),
		DefaultYield:         getenvFloatDefault("APPRAISAL_DEFAULT_YIELD", 0.05),
		Currency:             getenvDefault("APPRAISAL_CURRENCY", "EUR"),
	}

	if path := os.Getenv("APPRAISAL_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.UsefulLifeYears <= 0 {
		return cfg, errors.New("appraisal config: useful life must be positive")
	}
	if cfg.UnitConstructionCost <= 0 {
		return cfg, errors.New("appraisal config: unit construction cost must be positive")
	}
	if cfg.DefaultYield <= 0 {
		return cfg, errors.New("appraisal config: default yield must be positive")
	}
	return cfg, nil
}

// PenaltyTable merges configured overrides over the default penalty table.
func (c Config) PenaltyTable() map[valuation.Classification]valuation.ConditionPenalty {
	table := valuation.DefaultConditionPenalties()
	for class, override := range c.ConditionPenalties {
		entry := valuation.ConditionPenalty{Code: override.Code, Pct: override.Pct}
		if entry.Code == "" {
			if existing, ok := table[valuation.Classification(class)]; ok {
				entry.Code = existing.Code
			}
		}
		table[valuation.Classification(class)] = entry
	}
	return table
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvFloatDefault(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
