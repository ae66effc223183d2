package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"tariff-simulator/internal/audit"
	"tariff-simulator/internal/auth"
	"tariff-simulator/internal/ingestion/infrastructure/decoder"
	"tariff-simulator/internal/observability/metrics"
	simapp "tariff-simulator/internal/simulation/application"
	"tariff-simulator/internal/simulation/domain"
	"tariff-simulator/internal/simulation/interfaces"
)

const (
	simulationsPath = "/api/v1/simulations"
	usersPath       = "/api/v1/users/"

	// DefaultMaxUploadBytes caps an uploaded export when no limit is configured.
	DefaultMaxUploadBytes int64 = 10 << 20

	codeBadRequest     = "BAD_REQUEST"
	codeUploadTooLarge = "UPLOAD_TOO_LARGE"
)

// Handler serves simulation and history endpoints.
type Handler struct {
	service        *simapp.Service
	auditLogger    audit.Logger
	maxUploadBytes int64
}

// NewHandler constructs a Handler. maxUploadBytes <= 0 selects the default.
func NewHandler(service *simapp.Service, auditLogger audit.Logger, maxUploadBytes int64) (*Handler, error) {
	if service == nil {
		return nil, errors.New("simulation handler: nil service")
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{service: service, auditLogger: auditLogger, maxUploadBytes: maxUploadBytes}, nil
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error       errorDetail `json:"error"`
	HelpMessage string      `json:"help_message,omitempty"`
}

// ServeHTTP routes simulation requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, usersPath) {
		h.routeUser(w, r)
		return
	}
	if r.URL.Path == simulationsPath || r.URL.Path == simulationsPath+"/" {
		switch r.Method {
		case http.MethodPost:
			h.handleCreate(w, r)
		case http.MethodGet:
			h.handleList(w, r, auth.SubjectFromContext(r.Context()))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	if !strings.HasPrefix(r.URL.Path, simulationsPath+"/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, simulationsPath+"/"), "/")
	id, err := uuid.Parse(parts[0])
	if err != nil {
		http.Error(w, "invalid simulation id", http.StatusBadRequest)
		return
	}
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, id)
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	if len(parts) == 2 && r.Method == http.MethodGet {
		switch parts[1] {
		case "export.pdf":
			h.handleExport(w, r, id, "pdf")
			return
		case "export.xlsx":
			h.handleExport(w, r, id, "xlsx")
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

// routeUser serves /api/v1/users/{userID}/simulations for admins.
func (h *Handler) routeUser(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, usersPath), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "simulations" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !auth.RoleFromContext(r.Context()).IsAdmin() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	h.handleList(w, r, parts[0])
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID := auth.SubjectFromContext(r.Context())
	if userID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, errorResponse{Error: errorDetail{Code: codeUploadTooLarge, Message: err.Error()}})
			return
		}
		writeError(w, http.StatusBadRequest, errorResponse{Error: errorDetail{Code: codeBadRequest, Message: "expected multipart form with a file field"}})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, errorResponse{Error: errorDetail{Code: codeBadRequest, Message: "file is required"}})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, errorResponse{Error: errorDetail{Code: codeBadRequest, Message: "could not read file"}})
		return
	}

	// An unrecognised kind is left empty and surfaces as a decode failure.
	kind, _ := decoder.KindFromUpload(header.Filename, header.Header.Get("Content-Type"))
	record, err := h.service.Simulate(r.Context(), simapp.Upload{
		UserID:          userID,
		FileName:        header.Filename,
		Kind:            kind,
		Data:            data,
		CurrentPlanName: strings.TrimSpace(r.FormValue("current_plan")),
	})
	if err != nil {
		var failure *simapp.Failure
		if errors.As(err, &failure) {
			writeError(w, http.StatusUnprocessableEntity, errorResponse{
				Error:       errorDetail{Code: failure.Code, Message: failure.Error()},
				HelpMessage: failure.HelpMessage,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(record)
	h.logAudit(r, record, "simulation.create", map[string]any{
		"file_name":   record.FileName,
		"best_option": record.Result.Summary.BestOption.Name,
		"savings":     record.Result.Summary.BestOption.Savings,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request, userID string) {
	if userID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	list, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if list == nil {
		list = []simulation.Record{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	record, err := h.service.Get(r.Context(), id, callerFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(record)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	record, err := h.service.Delete(r.Context(), id, callerFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	h.logAudit(r, record, "simulation.delete", map[string]any{"file_name": record.FileName})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request, id uuid.UUID, format string) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportExport(format, result, time.Since(start))
	}()

	record, err := h.service.Get(r.Context(), id, callerFrom(r))
	if err != nil {
		result = metrics.ResultError
		respondError(w, err)
		return
	}

	var (
		data        []byte
		contentType string
	)
	switch format {
	case "pdf":
		data, err = interfaces.BuildReportPDF(record)
		contentType = "application/pdf"
	default:
		data, err = interfaces.BuildReportXLSX(record)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export "+format+" error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="simulation-`+record.ID.String()+`.`+format+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, record, "simulation.export", map[string]any{"format": format})
}

func (h *Handler) logAudit(r *http.Request, record *simulation.Record, action string, meta map[string]any) {
	if h.auditLogger == nil || record == nil {
		return
	}
	payload, _ := json.Marshal(meta)
	entry := audit.FromRequest(r, action, "simulation", record.ID.String())
	entry.OwnerID = record.UserID
	entry.Metadata = payload
	_ = h.auditLogger.Log(r.Context(), entry)
}

func callerFrom(r *http.Request) simapp.Caller {
	user, _ := auth.UserFromContext(r.Context())
	return simapp.Caller{UserID: user.ID, Admin: user.Role.IsAdmin()}
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, simulation.ErrRecordNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, simulation.ErrForbidden):
		// Another user's record is reported as absent.
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, simulation.ErrEmptyUserID):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, body errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
