package contact

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campusfind/lostfound-api/pkg/logging"
)

// MailStatus reports whether an outbound mail relay is configured.
type MailStatus interface {
	Available() bool
}

// Handler handles HTTP requests for the contact pipeline
type Handler struct {
	service   *Service
	repo      Repository
	mail      MailStatus
	logger    *logging.Logger
	env       string
	startedAt time.Time
}

// NewHandler creates a new contact handler
func NewHandler(service *Service, repo Repository, mail MailStatus, env string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service:   service,
		repo:      repo,
		mail:      mail,
		logger:    logger,
		env:       env,
		startedAt: time.Now(),
	}
}

type envelope struct {
	Success    bool      `json:"success"`
	Data       any       `json:"data,omitempty"`
	Pagination *PageInfo `json:"pagination,omitempty"`
	Message    string    `json:"message,omitempty"`
	Error      string    `json:"error,omitempty"`
	Details    any       `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, code int, msg string, details any) {
	writeJSON(w, code, envelope{Success: false, Error: msg, Details: details})
}

// devDetails exposes the raw diagnostic only outside production-like modes.
func (h *Handler) devDetails(err error) any {
	if h.env == "development" {
		return err.Error()
	}
	return nil
}

// Submit handles POST /contact requests
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode contact request", "error", err)
		fail(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, err := h.service.Submit(r.Context(), req)
	if err != nil {
		var verrs ValidationErrors
		switch {
		case errors.As(err, &verrs):
			fail(w, http.StatusBadRequest, "Validation failed", verrs.Fields())
		case errors.Is(err, ErrDuplicateReference):
			fail(w, http.StatusBadRequest, "Duplicate submission detected. Please wait a moment and try again.", nil)
		default:
			h.logger.Error("failed to process contact submission", "error", err)
			fail(w, http.StatusInternalServerError, "Failed to send message. Please try again later.", h.devDetails(err))
		}
		return
	}

	msg := "Message received successfully! (Email confirmation skipped)"
	if result.EmailsSent {
		msg = "Message sent successfully! We've emailed you a confirmation."
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: msg, Data: result})
}

// List handles GET /contact requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		Status: q.Get("status"),
		Search: q.Get("search"),
		Page:   1,
		Limit:  10,
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		if limit > 100 {
			limit = 100
		}
		filter.Limit = limit
	}

	messages, pageInfo, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list contact messages", "error", err)
		fail(w, http.StatusInternalServerError, "Failed to fetch contacts", h.devDetails(err))
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: messages, Pagination: &pageInfo})
}

// GetByID handles GET /contact/{id} requests
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	msg, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			fail(w, http.StatusNotFound, "Contact not found", nil)
			return
		}
		h.logger.Error("failed to fetch contact message", "error", err, "id", id)
		fail(w, http.StatusInternalServerError, "Failed to fetch contact", h.devDetails(err))
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: msg})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /contact/{id} requests
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	status := Status(req.Status)
	if !status.Valid() {
		fail(w, http.StatusBadRequest, "Valid status is required: new, read, replied, or resolved", nil)
		return
	}

	msg, err := h.repo.UpdateStatus(r.Context(), id, status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			fail(w, http.StatusNotFound, "Contact not found", nil)
		case errors.Is(err, ErrInvalidStatus):
			fail(w, http.StatusBadRequest, "Valid status is required: new, read, replied, or resolved", nil)
		default:
			h.logger.Error("failed to update contact status", "error", err, "id", id)
			fail(w, http.StatusInternalServerError, "Failed to update contact", h.devDetails(err))
		}
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    msg,
		Message: "Contact status updated to " + req.Status,
	})
}

// GetStats handles GET /contact/stats requests
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to aggregate contact stats", "error", err)
		fail(w, http.StatusInternalServerError, "Failed to fetch statistics", h.devDetails(err))
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: stats})
}

type healthResponse struct {
	Status      string  `json:"status"`
	Service     string  `json:"service"`
	Database    string  `json:"database"`
	Email       string  `json:"email"`
	Error       string  `json:"error,omitempty"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Environment string  `json:"environment"`
}

// Health handles GET /contact/health requests
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Service:     "Campus Lost & Found Contact API",
		Email:       "Not Configured",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Uptime:      time.Since(h.startedAt).Seconds(),
		Environment: h.env,
	}
	if h.mail != nil && h.mail.Available() {
		resp.Email = "Configured"
	}

	if err := h.repo.Ping(r.Context()); err != nil {
		resp.Status = "Error"
		resp.Database = "Disconnected"
		resp.Error = err.Error()
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	resp.Status = "OK"
	resp.Database = "Connected"
	writeJSON(w, http.StatusOK, resp)
}
