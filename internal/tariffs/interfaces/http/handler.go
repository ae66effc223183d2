package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tariff-simulator/internal/audit"
	"tariff-simulator/internal/rating/domain"
	tariffapp "tariff-simulator/internal/tariffs/application"
	"tariff-simulator/internal/tariffs/domain"
)

const basePath = "/api/v1/tariffs"

// Handler serves tariff catalog endpoints.
type Handler struct {
	service     *tariffapp.Service
	auditLogger audit.Logger
}

// NewHandler constructs a Handler.
func NewHandler(service *tariffapp.Service, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("tariff handler: nil service")
	}
	return &Handler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes tariff requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == basePath || r.URL.Path == basePath+"/" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleCreate(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	if !strings.HasPrefix(r.URL.Path, basePath+"/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, basePath+"/")
	if id == "" || strings.Contains(id, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, id)
	case http.MethodPut:
		h.handleUpdate(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListTariffs(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []rating.Tariff{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	tariff, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(tariff)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req rating.Tariff
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
	h.logAudit(r, created.ID, "tariff.create", map[string]any{"company_name": created.CompanyName})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req rating.Tariff
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.ID != "" && req.ID != id {
		http.Error(w, "id does not match path", http.StatusBadRequest)
		return
	}
	updated, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(updated)
	h.logAudit(r, id, "tariff.update", map[string]any{"company_name": updated.CompanyName})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	h.logAudit(r, id, "tariff.delete", nil)
}

func (h *Handler) logAudit(r *http.Request, tariffID, action string, meta map[string]any) {
	if h.auditLogger == nil {
		return
	}
	var payload []byte
	if meta != nil {
		payload, _ = json.Marshal(meta)
	}
	entry := audit.FromRequest(r, action, "tariff", tariffID)
	entry.Metadata = payload
	_ = h.auditLogger.Log(r.Context(), entry)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tariffs.ErrTariffNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, tariffs.ErrDuplicateTariff):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, tariffs.ErrEmptyTariffID),
		errors.Is(err, rating.ErrEmptyCompanyName),
		errors.Is(err, rating.ErrNegativePrice):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
