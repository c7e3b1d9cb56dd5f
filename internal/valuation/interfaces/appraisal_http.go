package interfaces

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"appraisal-cloud/internal/audit"
	"appraisal-cloud/internal/auth"
	"appraisal-cloud/internal/observability/metrics"
	"appraisal-cloud/internal/valuation/application"
	valuation "appraisal-cloud/internal/valuation/domain"
)

// AppraisalHandler handles appraisal APIs.
type AppraisalHandler struct {
	service     *application.AppraisalService
	auditLogger audit.Logger
}

// NewAppraisalHandler constructs a handler.
func NewAppraisalHandler(service *application.AppraisalService, auditLogger audit.Logger) (*AppraisalHandler, error) {
	if service == nil {
		return nil, errors.New("appraisal handler: nil service")
	}
	return &AppraisalHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles appraisal routes.
func (h *AppraisalHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/api/v1/appraisals" && r.Method == http.MethodPost {
		h.handleCreate(w, r)
		return
	}
	if path == "/api/v1/appraisals" && r.Method == http.MethodGet {
		h.handleHistory(w, r)
		return
	}
	if path == "/api/v1/appraisals/report.pdf" && r.Method == http.MethodPost {
		h.handleReportPDF(w, r)
		return
	}
	if path == "/api/v1/exports/appraisals.xlsx" && r.Method == http.MethodGet {
		h.handleExportXLSX(w, r)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

type comparativeDTO struct {
	BasePrice       float64 `json:"base_price"`
	LocationFactor  float64 `json:"location_factor"`
	QualityFactor   float64 `json:"quality_factor"`
	ConditionFactor float64 `json:"condition_factor"`
}

type costDTO struct {
	AgeYears        float64 `json:"age_years"`
	UsefulLifeYears float64 `json:"useful_life_years"`
	UnitCost        float64 `json:"unit_cost"`
}

type incomeDTO struct {
	MonthlyRent float64 `json:"monthly_rent"`
	YieldRate   float64 `json:"yield_rate"`
}

type appraisalDTO struct {
	ArticleID        string         `json:"article_id"`
	PropertyType     string         `json:"property_type"`
	GrossArea        float64        `json:"gross_area"`
	UsableArea       float64        `json:"usable_area"`
	ConstructionYear int            `json:"construction_year"`
	Typology         string         `json:"typology"`
	Norm             string         `json:"norm"`
	Purpose          string         `json:"purpose"`
	EnabledMethods   []string       `json:"enabled_methods"`
	ConditionRatings map[string]int `json:"condition_ratings"`

	Comparative *comparativeDTO `json:"comparative"`
	Cost        *costDTO        `json:"cost"`
	Income      *incomeDTO      `json:"income"`

	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	PhotoBase64 string  `json:"photo_base64"`
}

func (dto appraisalDTO) toRequest() (application.AppraisalRequest, error) {
	propertyType, err := valuation.ParsePropertyType(dto.PropertyType)
	if err != nil {
		return application.AppraisalRequest{}, err
	}
	var enabled []valuation.Method
	for _, name := range dto.EnabledMethods {
		method, err := valuation.ParseMethod(name)
		if err != nil {
			return application.AppraisalRequest{}, err
		}
		enabled = append(enabled, method)
	}
	req := application.AppraisalRequest{
		Record: valuation.PropertyRecord{
			ArticleID:        dto.ArticleID,
			Type:             propertyType,
			GrossArea:        dto.GrossArea,
			UsableArea:       dto.UsableArea,
			ConstructionYear: dto.ConstructionYear,
			Typology:         dto.Typology,
		},
		Norm:             dto.Norm,
		Purpose:          dto.Purpose,
		EnabledMethods:   enabled,
		ConditionRatings: dto.ConditionRatings,
		Address:          dto.Address,
		Latitude:         dto.Latitude,
		Longitude:        dto.Longitude,
	}
	if dto.Comparative != nil {
		req.Comparative = &application.ComparativeInput{
			BasePrice:       dto.Comparative.BasePrice,
			LocationFactor:  dto.Comparative.LocationFactor,
			QualityFactor:   dto.Comparative.QualityFactor,
			ConditionFactor: dto.Comparative.ConditionFactor,
		}
	}
	if dto.Cost != nil {
		req.Cost = &application.CostInput{
			AgeYears:        dto.Cost.AgeYears,
			UsefulLifeYears: dto.Cost.UsefulLifeYears,
			UnitCost:        dto.Cost.UnitCost,
		}
	}
	if dto.Income != nil {
		req.Income = &application.IncomeInput{
			MonthlyRent: dto.Income.MonthlyRent,
			YieldRate:   dto.Income.YieldRate,
		}
	}
	return req, nil
}

func (h *AppraisalHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveAppraisal(result, time.Since(start))
	}()

	var dto appraisalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		result = metrics.ResultError
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	req, err := dto.toRequest()
	if err != nil {
		result = metrics.ResultError
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	appraisal, err := h.service.Appraise(r.Context(), req)
	if err != nil {
		result = metrics.ResultError
		respondServiceError(w, err)
		return
	}
	for _, failure := range appraisal.Conclusion.Failures {
		metrics.IncMethodFailure(string(failure.Method))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(appraisalResponse(appraisal))
	h.logAudit(r, strconv.FormatInt(appraisal.ID, 10), "appraisal.create", map[string]any{
		"article_id":     appraisal.Record.ArticleID,
		"property_type":  string(appraisal.Record.Type),
		"headline_value": appraisal.Conclusion.HeadlineValue,
	})
}

func (h *AppraisalHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}
	entries, err := h.service.History(r.Context(), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(historyResponse(entries))
}

func (h *AppraisalHandler) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportExport("pdf", result, time.Since(start))
	}()

	var dto appraisalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		result = metrics.ResultError
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	req, err := dto.toRequest()
	if err != nil {
		result = metrics.ResultError
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var photo []byte
	if dto.PhotoBase64 != "" {
		photo, err = base64.StdEncoding.DecodeString(dto.PhotoBase64)
		if err != nil {
			result = metrics.ResultError
			http.Error(w, "invalid photo encoding", http.StatusBadRequest)
			return
		}
	}

	appraisal, err := h.service.Compute(r.Context(), req)
	if err != nil {
		result = metrics.ResultError
		respondServiceError(w, err)
		return
	}
	data, err := BuildAppraisalPDF(appraisal, photo)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export pdf error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, appraisal.Record.ArticleID, "appraisal.report", map[string]any{"format": "pdf"})
}

func (h *AppraisalHandler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportExport("xlsx", result, time.Since(start))
	}()

	entries, err := h.service.History(r.Context(), 0)
	if err != nil {
		result = metrics.ResultError
		respondServiceError(w, err)
		return
	}
	data, err := BuildHistoryXLSX(entries)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export xlsx error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, "history", "appraisal.export", map[string]any{"format": "xlsx", "rows": len(entries)})
}

func appraisalResponse(appraisal application.Appraisal) map[string]any {
	conclusion := appraisal.Conclusion
	resp := map[string]any{
		"appraisal_id":    appraisal.ID,
		"article_id":      appraisal.Record.ArticleID,
		"property_type":   string(appraisal.Record.Type),
		"norm":            appraisal.Norm,
		"purpose":         appraisal.Purpose,
		"currency":        appraisal.Currency,
		"created_at":      appraisal.CreatedAt.Format(time.RFC3339),
		"headline_method": string(conclusion.HeadlineMethod),
		"headline_value":  conclusion.HeadlineValue,
		"rationale":       conclusion.Selection.Rationale,
		"coordinates": map[string]any{
			"latitude":     appraisal.Coordinates.Latitude,
			"longitude":    appraisal.Coordinates.Longitude,
			"display_name": appraisal.Coordinates.DisplayName,
			"source":       appraisal.Coordinates.Source,
		},
	}
	if condition := conclusion.Condition; condition != nil {
		resp["condition"] = map[string]any{
			"index":          condition.Index,
			"classification": string(condition.Classification),
		}
	}
	if comparative := conclusion.Comparative; comparative != nil {
		resp["comparative"] = map[string]any{
			"final_value":     comparative.FinalValue,
			"unit_value":      comparative.UnitValue,
			"combined_factor": comparative.CombinedFactor,
		}
	}
	if cost := conclusion.Cost; cost != nil {
		resp["cost"] = map[string]any{
			"final_value":      cost.FinalValue,
			"unit_cost":        cost.UnitCost,
			"depreciation_pct": cost.Depreciation.DepreciationPct,
			"coefficient":      cost.Depreciation.Coefficient,
			"condition_code":   cost.Depreciation.ConditionCode,
		}
	}
	if income := conclusion.Income; income != nil {
		resp["income"] = map[string]any{
			"final_value": income.FinalValue,
			"annual_rent": income.AnnualRent,
		}
	}
	if len(conclusion.Failures) > 0 {
		failures := make([]map[string]any, 0, len(conclusion.Failures))
		for _, failure := range conclusion.Failures {
			failures = append(failures, map[string]any{
				"method": string(failure.Method),
				"reason": failure.Reason,
			})
		}
		resp["failures"] = failures
	}
	return resp
}

func historyResponse(entries []application.HistoryEntry) []map[string]any {
	list := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		list = append(list, map[string]any{
			"id":           entry.ID,
			"created_at":   entry.CreatedAt.Format(time.RFC3339),
			"article_id":   entry.ArticleID,
			"norm":         entry.Norm,
			"market_value": entry.MarketValue,
			"gross_area":   entry.GrossArea,
			"usable_area":  entry.UsableArea,
			"method":       entry.Method,
			"currency":     entry.Currency,
		})
	}
	return list
}

func (h *AppraisalHandler) logAudit(r *http.Request, resourceID, action string, meta map[string]any) {
	if h.auditLogger == nil {
		return
	}
	payload, _ := json.Marshal(meta)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		Actor:         auth.SubjectFromContext(r.Context()),
		Role:          string(auth.RoleFromContext(r.Context())),
		Action:        action,
		ResourceType:  "appraisal",
		ResourceID:    resourceID,
		Metadata:      payload,
		PayloadDigest: audit.DigestJSON(payload),
		IP:            audit.ClientIP(r),
		UserAgent:     r.UserAgent(),
	})
}

func respondServiceError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	for _, sentinel := range []error{
		valuation.ErrAreaInconsistency,
		valuation.ErrInvalidArea,
		valuation.ErrInvalidRating,
		valuation.ErrInvalidAge,
		valuation.ErrInvalidUsefulLife,
		valuation.ErrInvalidBasePrice,
		valuation.ErrInvalidRent,
		valuation.ErrInvalidYield,
		valuation.ErrUnknownPropertyType,
		valuation.ErrNoMethodResults,
	} {
		if errors.Is(err, sentinel) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
