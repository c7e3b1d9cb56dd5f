package application

import (
	"context"
	"errors"
	"log"
	"time"

	"appraisal-cloud/internal/observability/metrics"
	valuation "appraisal-cloud/internal/valuation/domain"
)

// ComparativeInput carries the market-comparative method inputs.
type ComparativeInput struct {
	BasePrice       float64
	LocationFactor  float64
	QualityFactor   float64
	ConditionFactor float64
}

// CostInput carries the cost/depreciation method inputs. Zero useful life or
// unit cost fall back to the configured defaults.
type CostInput struct {
	AgeYears        float64
	UsefulLifeYears float64
	UnitCost        float64
}

// IncomeInput carries the income-capitalization method inputs. A zero yield
// falls back to the configured default.
type IncomeInput struct {
	MonthlyRent float64
	YieldRate   float64
}

// AppraisalRequest is the explicit per-request context: everything the
// engine needs travels in here, nothing ambient.
type AppraisalRequest struct {
	Record           valuation.PropertyRecord
	Norm             string
	Purpose          string
	EnabledMethods   []valuation.Method
	ConditionRatings map[string]int

	Comparative *ComparativeInput
	Cost        *CostInput
	Income      *IncomeInput

	Address   string
	Latitude  float64
	Longitude float64
}

// Coordinates is the resolved property position.
type Coordinates struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
	Source      string
}

// Coordinate sources.
const (
	CoordinateSourceManual  = "manual"
	CoordinateSourceGeocode = "geocode"
)

// Appraisal is the computed outcome handed to callers and the report.
type Appraisal struct {
	ID          int64
	Record      valuation.PropertyRecord
	Norm        string
	Purpose     string
	Conclusion  valuation.ValuationConclusion
	Coordinates Coordinates
	Currency    string
	CreatedAt   time.Time
}

// HistoryEntry is one append-only history record.
type HistoryEntry struct {
	ID          int64
	CreatedAt   time.Time
	ArticleID   string
	Norm        string
	MarketValue float64
	GrossArea   float64
	UsableArea  float64
	Method      string
	Currency    string
}

// HistoryRepository appends and lists appraisal history, newest first.
type HistoryRepository interface {
	Append(ctx context.Context, entry HistoryEntry) (int64, error)
	List(ctx context.Context, limit int) ([]HistoryEntry, error)
}

// Location is a geocoding lookup result.
type Location struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// GeocodeResolver turns a free-text address into coordinates.
type GeocodeResolver interface {
	Resolve(ctx context.Context, address string) (Location, error)
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// AppraisalService orchestrates one appraisal: area gate, condition scoring,
// the selected valuation methods and the conclusion.
type AppraisalService struct {
	history      HistoryRepository
	geocoder     GeocodeResolver
	depreciation *valuation.DepreciationModel
	cfg          Config
	clock        Clock
	logger       *log.Logger
}

// NewAppraisalService constructs the service. The geocoder is optional; the
// history repository is not.
func NewAppraisalService(history HistoryRepository, geocoder GeocodeResolver, cfg Config, clock Clock, logger *log.Logger) (*AppraisalService, error) {
	if history == nil {
		return nil, errors.New("appraisal service: nil history repository")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &AppraisalService{
		history:      history,
		geocoder:     geocoder,
		depreciation: valuation.NewDepreciationModel(cfg.PenaltyTable()),
		cfg:          cfg,
		clock:        clock,
		logger:       logger,
	}, nil
}

// Appraise runs the full appraisal and appends it to the history.
func (s *AppraisalService) Appraise(ctx context.Context, req AppraisalRequest) (Appraisal, error) {
	appraisal, err := s.Compute(ctx, req)
	if err != nil {
		return Appraisal{}, err
	}

	id, err := s.history.Append(ctx, HistoryEntry{
		CreatedAt:   appraisal.CreatedAt,
		ArticleID:   req.Record.ArticleID,
		Norm:        req.Norm,
		MarketValue: appraisal.Conclusion.HeadlineValue,
		GrossArea:   req.Record.GrossArea,
		UsableArea:  req.Record.UsableArea,
		Method:      string(appraisal.Conclusion.HeadlineMethod),
		Currency:    s.cfg.Currency,
	})
	if err != nil {
		return Appraisal{}, err
	}
	appraisal.ID = id
	return appraisal, nil
}

// Compute runs the valuation without touching the history, for report
// rendering and dry runs. Validation failures on the record block everything;
// a failing method blocks only itself and is reported on the conclusion.
func (s *AppraisalService) Compute(ctx context.Context, req AppraisalRequest) (Appraisal, error) {
	if err := req.Record.Validate(); err != nil {
		return Appraisal{}, err
	}

	selection, err := valuation.SelectMethods(req.Record.Type)
	if err != nil {
		return Appraisal{}, err
	}
	selection = restrictMethods(selection, req.EnabledMethods)

	var condition *valuation.ConditionAssessment
	if req.Record.Type != valuation.PropertyRustic && len(req.ConditionRatings) > 0 {
		assessment, err := valuation.ScoreCondition(req.ConditionRatings)
		if err != nil {
			return Appraisal{}, err
		}
		condition = &assessment
	}

	var comparative *valuation.ComparativeResult
	var cost *valuation.CostResult
	var income *valuation.IncomeResult
	var failures []valuation.MethodFailure

	if selection.Applies(valuation.MethodComparative) && req.Comparative != nil {
		result, err := valuation.ComparativeValue(
			req.Record.GrossArea,
			req.Comparative.BasePrice,
			req.Comparative.LocationFactor,
			req.Comparative.QualityFactor,
			req.Comparative.ConditionFactor,
		)
		if err != nil {
			failures = append(failures, valuation.MethodFailure{Method: valuation.MethodComparative, Reason: err.Error()})
		} else {
			comparative = &result
		}
	}

	if selection.Applies(valuation.MethodCost) && req.Cost != nil {
		cost = s.computeCost(req, condition, &failures)
	}

	if selection.Applies(valuation.MethodIncome) && req.Income != nil {
		yield := req.Income.YieldRate
		if yield == 0 {
			yield = s.cfg.DefaultYield
		}
		result, err := valuation.IncomeValue(req.Income.MonthlyRent, yield)
		if err != nil {
			failures = append(failures, valuation.MethodFailure{Method: valuation.MethodIncome, Reason: err.Error()})
		} else {
			income = &result
		}
	}

	conclusion, err := valuation.BuildConclusion(req.Record.Type, selection, condition, comparative, cost, income, failures)
	if err != nil {
		return Appraisal{}, err
	}

	return Appraisal{
		Record:      req.Record,
		Norm:        req.Norm,
		Purpose:     req.Purpose,
		Conclusion:  conclusion,
		Coordinates: s.resolveCoordinates(ctx, req),
		Currency:    s.cfg.Currency,
		CreatedAt:   s.clock.Now(),
	}, nil
}

// History lists past appraisals, newest first.
func (s *AppraisalService) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	return s.history.List(ctx, limit)
}

func (s *AppraisalService) computeCost(req AppraisalRequest, condition *valuation.ConditionAssessment, failures *[]valuation.MethodFailure) *valuation.CostResult {
	usefulLife := req.Cost.UsefulLifeYears
	if usefulLife == 0 {
		usefulLife = s.cfg.UsefulLifeYears
	}
	unitCost := req.Cost.UnitCost
	if unitCost == 0 {
		unitCost = s.cfg.UnitConstructionCost
	}
	classification := valuation.ClassificationNA
	if condition != nil {
		classification = condition.Classification
	}

	depreciation, err := s.depreciation.Depreciate(req.Cost.AgeYears, usefulLife, classification)
	if err != nil {
		*failures = append(*failures, valuation.MethodFailure{Method: valuation.MethodCost, Reason: err.Error()})
		return nil
	}
	result, err := valuation.CostValue(req.Record.GrossArea, unitCost, depreciation)
	if err != nil {
		*failures = append(*failures, valuation.MethodFailure{Method: valuation.MethodCost, Reason: err.Error()})
		return nil
	}
	return &result
}

// resolveCoordinates prefers a geocoded position but never fails the
// appraisal: lookup errors degrade to the manually entered coordinates.
func (s *AppraisalService) resolveCoordinates(ctx context.Context, req AppraisalRequest) Coordinates {
	manual := Coordinates{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Source:    CoordinateSourceManual,
	}
	if s.geocoder == nil || req.Address == "" {
		return manual
	}
	location, err := s.geocoder.Resolve(ctx, req.Address)
	if err != nil {
		metrics.IncGeocodeLookup(metrics.GeocodeResultDegraded)
		if s.logger != nil {
			s.logger.Printf("geocode lookup failed, using manual coordinates: %v", err)
		}
		return manual
	}
	metrics.IncGeocodeLookup(metrics.GeocodeResultHit)
	return Coordinates{
		Latitude:    location.Latitude,
		Longitude:   location.Longitude,
		DisplayName: location.DisplayName,
		Source:      CoordinateSourceGeocode,
	}
}

func restrictMethods(selection valuation.MethodSelection, enabled []valuation.Method) valuation.MethodSelection {
	if len(enabled) == 0 {
		return selection
	}
	allowed := make(map[valuation.Method]struct{}, len(enabled))
	for _, method := range enabled {
		allowed[method] = struct{}{}
	}
	var methods []valuation.Method
	for _, method := range selection.Methods {
		if _, ok := allowed[method]; ok {
			methods = append(methods, method)
		}
	}
	return valuation.MethodSelection{Methods: methods, Rationale: selection.Rationale}
}
