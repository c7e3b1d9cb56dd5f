package interfaces

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"appraisal-cloud/internal/valuation/application"
)

type stubHistoryRepo struct {
	entries []application.HistoryEntry
	nextID  int64
}

func (s *stubHistoryRepo) Append(_ context.Context, entry application.HistoryEntry) (int64, error) {
	s.nextID++
	entry.ID = s.nextID
	s.entries = append([]application.HistoryEntry{entry}, s.entries...)
	return s.nextID, nil
}

func (s *stubHistoryRepo) List(_ context.Context, limit int) ([]application.HistoryEntry, error) {
	if limit <= 0 || limit > len(s.entries) {
		limit = len(s.entries)
	}
	return s.entries[:limit], nil
}

func newTestHandler(t *testing.T) (*AppraisalHandler, *stubHistoryRepo) {
	t.Helper()
	repo := &stubHistoryRepo{}
	cfg := application.Config{
		UsefulLifeYears:      80,
		UnitConstructionCost: 1200,
		DefaultYield:         0.05,
		Currency:             "EUR",
	}
	service, err := application.NewAppraisalService(repo, nil, cfg, nil, nil)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	handler, err := NewAppraisalHandler(service, nil)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	return handler, repo
}

func TestAppraisalHandler_CreateUrban(t *testing.T) {
	handler, repo := newTestHandler(t)

	body := `{
		"article_id": "U-1234",
		"property_type": "urban",
		"gross_area": 100,
		"usable_area": 100,
		"norm": "RICS",
		"comparative": {"base_price": 3500, "location_factor": 1.0, "quality_factor": 1.0, "condition_factor": 1.0}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appraisals", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["headline_method"] != "comparative" {
		t.Fatalf("expected comparative headline, got %v", payload["headline_method"])
	}
	value, _ := payload["headline_value"].(float64)
	if math.Abs(value-350000) > 1e-6 {
		t.Fatalf("expected headline 350000, got %v", value)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected one history entry, got %d", len(repo.entries))
	}
	if repo.entries[0].MarketValue != 350000 {
		t.Fatalf("history value mismatch: %v", repo.entries[0].MarketValue)
	}
}

func TestAppraisalHandler_AreaGateRejected(t *testing.T) {
	handler, repo := newTestHandler(t)

	body := `{
		"article_id": "U-1234",
		"property_type": "urban",
		"gross_area": 100,
		"usable_area": 130,
		"comparative": {"base_price": 3500, "location_factor": 1.0, "quality_factor": 1.0, "condition_factor": 1.0}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appraisals", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	msg := resp.Body.String()
	if !strings.Contains(msg, "130.00") || !strings.Contains(msg, "100.00") {
		t.Fatalf("expected both areas in message, got %q", msg)
	}
	if len(repo.entries) != 0 {
		t.Fatalf("rejected appraisal must not reach history")
	}
}

func TestAppraisalHandler_UnknownPropertyType(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := `{"article_id": "X-1", "property_type": "industrial", "gross_area": 100, "usable_area": 100}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appraisals", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAppraisalHandler_History(t *testing.T) {
	handler, repo := newTestHandler(t)
	seed := `{
		"article_id": "U-9",
		"property_type": "urban",
		"gross_area": 100,
		"usable_area": 95,
		"comparative": {"base_price": 2000, "location_factor": 1.0, "quality_factor": 1.0, "condition_factor": 1.0}
	}`
	createReq := httptest.NewRequest(http.MethodPost, "/api/v1/appraisals", strings.NewReader(seed))
	createResp := httptest.NewRecorder()
	handler.ServeHTTP(createResp, createReq)
	if createResp.Code != http.StatusOK {
		t.Fatalf("seed create failed: %d", createResp.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appraisals", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(list) != len(repo.entries) {
		t.Fatalf("expected %d entries, got %d", len(repo.entries), len(list))
	}
	if list[0]["article_id"] != "U-9" {
		t.Fatalf("expected article U-9, got %v", list[0]["article_id"])
	}
}

func TestAppraisalHandler_ReportPDFDoesNotAppendHistory(t *testing.T) {
	handler, repo := newTestHandler(t)

	body := `{
		"article_id": "U-1234",
		"property_type": "urban",
		"gross_area": 100,
		"usable_area": 100,
		"comparative": {"base_price": 3500, "location_factor": 1.0, "quality_factor": 1.0, "condition_factor": 1.0}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appraisals/report.pdf", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("pdf content-type mismatch: %s", resp.Header().Get("Content-Type"))
	}
	if resp.Body.Len() == 0 {
		t.Fatalf("expected pdf bytes")
	}
	if len(repo.entries) != 0 {
		t.Fatalf("report rendering must not append history")
	}
}

func TestAppraisalHandler_ExportXLSX(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/appraisals.xlsx", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Header().Get("Content-Type") != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("xlsx content-type mismatch")
	}
	if resp.Body.Len() == 0 {
		t.Fatalf("expected xlsx bytes")
	}
}

func TestAppraisalHandler_UnknownRoute(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/appraisals", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
