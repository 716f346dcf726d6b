package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	householdmodels "aguasur/internal/household/models"
	householdstore "aguasur/internal/household/store"
	"aguasur/internal/report/service"
	"aguasur/internal/report/store"
	tankstore "aguasur/internal/tank/store"
	"aguasur/pkg/domain"
)

func newReportRouter(t *testing.T) (http.Handler, *householdstore.InMemoryStore) {
	t.Helper()
	households := householdstore.NewMemory()
	svc := service.New(store.NewMemory(), households, tankstore.NewMemory(), nil)
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return r, households
}

func seedHousehold(t *testing.T, households *householdstore.InMemoryStore) *householdmodels.Household {
	t.Helper()
	h, err := householdmodels.NewHousehold(domain.NewHouseholdID(), "Calle Sur 42", 4, uuid.New().String(), 1100, false, "cerro-alto", nil, time.Now().UTC())
	if err != nil {
		t.Fatalf("failed to build household fixture: %v", err)
	}
	if err := households.Save(context.Background(), h); err != nil {
		t.Fatalf("failed to save household fixture: %v", err)
	}
	return h
}

func postReport(t *testing.T, router http.Handler, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/reports", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeReport(t *testing.T, rec *httptest.ResponseRecorder) (id uuid.UUID, status, urgency string) {
	t.Helper()
	var resp struct {
		ID      uuid.UUID `json:"id"`
		Status  string    `json:"status"`
		Urgency string    `json:"urgency"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode report body: %v", err)
	}
	return resp.ID, resp.Status, resp.Urgency
}

func TestCreateAndFetchReport(t *testing.T) {
	router, households := newReportRouter(t)
	h := seedHousehold(t, households)

	rec := postReport(t, router, map[string]any{
		"household_id": h.ID.String(),
		"category":     "leak",
		"description":  "pipe dripping at the street valve",
		"urgency":      "high",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating report, got %d: %s", rec.Code, rec.Body.String())
	}
	id, status, urgency := decodeReport(t, rec)
	if status != "pending" {
		t.Fatalf("expected report to start pending, got %q", status)
	}
	if urgency != "high" {
		t.Fatalf("expected high urgency, got %q", urgency)
	}

	req := httptest.NewRequest(http.MethodGet, "/reports/"+id.String(), nil)
	fetch := httptest.NewRecorder()
	router.ServeHTTP(fetch, req)
	if fetch.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching report, got %d", fetch.Code)
	}
}

func TestWaterRunningOutUrgencyFloor(t *testing.T) {
	router, households := newReportRouter(t)
	h := seedHousehold(t, households)

	rec := postReport(t, router, map[string]any{
		"household_id": h.ID.String(),
		"category":     "water_running_out",
		"description":  "tank nearly dry",
		"urgency":      "low",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating report, got %d: %s", rec.Code, rec.Body.String())
	}
	_, _, urgency := decodeReport(t, rec)
	if urgency != "medium" {
		t.Fatalf("expected water shortage urgency raised to medium, got %q", urgency)
	}
}

func TestCreateReportForUnknownHousehold(t *testing.T) {
	router, _ := newReportRouter(t)

	rec := postReport(t, router, map[string]any{
		"household_id": uuid.New().String(),
		"category":     "leak",
		"description":  "pipe dripping",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown household, got %d", rec.Code)
	}
}

func TestResolveReport(t *testing.T) {
	router, households := newReportRouter(t)
	h := seedHousehold(t, households)

	rec := postReport(t, router, map[string]any{
		"household_id": h.ID.String(),
		"category":     "tank_damaged",
		"description":  "crack in the lid",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating report, got %d", rec.Code)
	}
	id, _, _ := decodeReport(t, rec)

	body, _ := json.Marshal(map[string]any{"notes": "lid replaced"})
	req := httptest.NewRequest(http.MethodPost, "/reports/"+id.String()+"/resolve", bytes.NewReader(body))
	resolve := httptest.NewRecorder()
	router.ServeHTTP(resolve, req)
	if resolve.Code != http.StatusOK {
		t.Fatalf("expected 200 resolving report, got %d: %s", resolve.Code, resolve.Body.String())
	}

	var resp struct {
		Status     string  `json:"status"`
		ResolvedAt *string `json:"resolved_at"`
		Notes      string  `json:"resolution_notes"`
	}
	if err := json.NewDecoder(resolve.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "resolved" {
		t.Fatalf("expected resolved status, got %q", resp.Status)
	}
	if resp.ResolvedAt == nil {
		t.Fatalf("expected resolution timestamp to be stamped")
	}
	if resp.Notes != "lid replaced" {
		t.Fatalf("expected resolution notes to be kept, got %q", resp.Notes)
	}
}

func TestChangeStatusRejectsUnknownValue(t *testing.T) {
	router, households := newReportRouter(t)
	h := seedHousehold(t, households)

	rec := postReport(t, router, map[string]any{
		"household_id": h.ID.String(),
		"category":     "other",
		"description":  "general query",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating report, got %d", rec.Code)
	}
	id, _, _ := decodeReport(t, rec)

	body, _ := json.Marshal(map[string]any{"status": "shelved"})
	req := httptest.NewRequest(http.MethodPut, "/reports/"+id.String()+"/status", bytes.NewReader(body))
	change := httptest.NewRecorder()
	router.ServeHTTP(change, req)
	if change.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", change.Code)
	}
}

func TestEscalateReport(t *testing.T) {
	router, households := newReportRouter(t)
	h := seedHousehold(t, households)

	rec := postReport(t, router, map[string]any{
		"household_id": h.ID.String(),
		"category":     "water_contaminated",
		"description":  "cloudy water",
		"urgency":      "medium",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating report, got %d", rec.Code)
	}
	id, _, _ := decodeReport(t, rec)

	req := httptest.NewRequest(http.MethodPost, "/reports/"+id.String()+"/escalate", nil)
	escalate := httptest.NewRecorder()
	router.ServeHTTP(escalate, req)
	if escalate.Code != http.StatusOK {
		t.Fatalf("expected 200 escalating report, got %d: %s", escalate.Code, escalate.Body.String())
	}
	_, _, urgency := decodeReport(t, escalate)
	if urgency != "high" {
		t.Fatalf("expected urgency escalated to high, got %q", urgency)
	}
}
