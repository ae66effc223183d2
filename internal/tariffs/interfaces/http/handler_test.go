package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tariff-simulator/internal/audit"
	"tariff-simulator/internal/auth"
	"tariff-simulator/internal/rating/domain"
	tariffapp "tariff-simulator/internal/tariffs/application"
	"tariff-simulator/internal/tariffs/infrastructure/memory"
)

func newTestHandler(t *testing.T, seed ...rating.Tariff) (*Handler, *audit.MemoryLogger) {
	t.Helper()
	service, err := tariffapp.NewService(memory.NewTariffRepository(seed...))
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	logger := audit.NewMemoryLogger()
	handler, err := NewHandler(service, logger)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	return handler, logger
}

func asOperator(req *http.Request) *http.Request {
	ctx := auth.WithIdentity(context.Background(), "ops-1", auth.RoleOperator)
	return req.WithContext(ctx)
}

func TestTariffHandlerCreateAndList(t *testing.T) {
	handler, logger := newTestHandler(t)

	body := `{"company_name":" Beta Energía ","energy_prices":[0.15,0.12,0.1,0,0,0],"power_prices":[0.1,0.05,0,0,0,0],"fixed_term_monthly":3}`
	req := asOperator(httptest.NewRequest(http.MethodPost, "/api/v1/tariffs", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created rating.Tariff
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.CompanyName != "Beta Energía" {
		t.Fatalf("unexpected tariff: %+v", created)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/tariffs", nil)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var list []rating.Tariff
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].EnergyPrices[1] != 0.12 {
		t.Fatalf("unexpected list: %+v", list)
	}

	entries := logger.Entries()
	if len(entries) != 1 || entries[0].Action != "tariff.create" || entries[0].Actor != "ops-1" || entries[0].ResourceID != created.ID {
		t.Fatalf("unexpected audit entries: %+v", entries)
	}
}

func TestTariffHandlerListEmptyIsArray(t *testing.T) {
	handler, _ := newTestHandler(t)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/tariffs", nil))
	if strings.TrimSpace(resp.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", resp.Body.String())
	}
}

func TestTariffHandlerValidation(t *testing.T) {
	handler, _ := newTestHandler(t)

	cases := map[string]string{
		"invalid json":   `{"company_name":`,
		"no company":     `{"company_name":"  "}`,
		"negative price": `{"company_name":"Acme","energy_prices":[-0.1,0,0,0,0,0]}`,
	}
	for name, body := range cases {
		req := asOperator(httptest.NewRequest(http.MethodPost, "/api/v1/tariffs", strings.NewReader(body)))
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, resp.Code)
		}
	}
}

func TestTariffHandlerDuplicate(t *testing.T) {
	handler, _ := newTestHandler(t, rating.Tariff{ID: "t-1", CompanyName: "Acme"})
	req := asOperator(httptest.NewRequest(http.MethodPost, "/api/v1/tariffs", strings.NewReader(`{"id":"t-1","company_name":"Other"}`)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestTariffHandlerUpdateAndDelete(t *testing.T) {
	handler, logger := newTestHandler(t, rating.Tariff{ID: "t-1", CompanyName: "Acme", FixedTermMonthly: 2})

	req := asOperator(httptest.NewRequest(http.MethodPut, "/api/v1/tariffs/t-1", strings.NewReader(`{"company_name":"Acme Plus","fixed_term_monthly":4}`)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/tariffs/t-1", nil))
	var got rating.Tariff
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.CompanyName != "Acme Plus" || got.FixedTermMonthly != 4 {
		t.Fatalf("update not applied: %+v", got)
	}

	req = asOperator(httptest.NewRequest(http.MethodPut, "/api/v1/tariffs/t-1", strings.NewReader(`{"id":"t-2","company_name":"x"}`)))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for mismatched id, got %d", resp.Code)
	}

	req = asOperator(httptest.NewRequest(http.MethodDelete, "/api/v1/tariffs/t-1", nil))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}

	req = asOperator(httptest.NewRequest(http.MethodDelete, "/api/v1/tariffs/t-1", nil))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	entries := logger.Entries()
	if len(entries) != 2 || entries[0].Action != "tariff.update" || entries[1].Action != "tariff.delete" {
		t.Fatalf("unexpected audit entries: %+v", entries)
	}
}

func TestTariffHandlerUnknownRoutes(t *testing.T) {
	handler, _ := newTestHandler(t)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/tariffs/a/b", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPatch, "/api/v1/tariffs", nil))
	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
}
