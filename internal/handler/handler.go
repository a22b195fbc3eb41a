// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the event catalog.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Shivanand-hulikatti/eventease/internal/logger"
	"github.com/Shivanand-hulikatti/eventease/internal/model"
	"github.com/Shivanand-hulikatti/eventease/internal/service"
	"github.com/go-chi/chi/v5"
)

const (
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidID          = "invalid_id"
	codeInvalidInput       = "invalid_input"
	codeEventNotFound      = "event_not_found"
	codeEventFull          = "event_full"
	codeEventInactive      = "event_inactive"
	codeEventPast          = "event_past"
	codeInternalError      = "internal_error"
)

// Catalog is the subset of the event catalog the HTTP layer consumes.
type Catalog interface {
	ListEvents(ctx context.Context) ([]model.Event, error)
	GetEventByID(ctx context.Context, id int) (*model.Event, error)
	GetEventsByCategory(ctx context.Context, category string) ([]model.Event, error)
	ListCategories(ctx context.Context) ([]string, error)
	RegisterForEvent(ctx context.Context, eventID int, contact string) (*model.Registration, error)
	ListRegistrations(ctx context.Context, eventID int) ([]model.Registration, error)
}

// EventHandler holds all HTTP handlers for the event catalog API.
type EventHandler struct {
	catalog Catalog
	logger  *logger.Logger
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(catalog Catalog, log *logger.Logger) *EventHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &EventHandler{catalog: catalog, logger: log}
}

// Routes mounts the event endpoints on r.
func (h *EventHandler) Routes(r chi.Router) {
	r.Get("/", h.ListEvents)
	r.Get("/categories", h.ListCategories)
	r.Get("/{id}", h.GetEvent)
	r.Post("/{id}/register", h.Register)
	r.Get("/{id}/registrations", h.ListRegistrations)
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg, Code: code})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func eventID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("event id %q is not an integer", raw)
	}
	return id, nil
}

// writeCatalogError maps catalog errors onto HTTP statuses. Faults are
// logged and reported without detail.
func (h *EventHandler) writeCatalogError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, codeInvalidInput, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, codeEventNotFound, "event not found")
	case errors.Is(err, service.ErrEventFull):
		writeError(w, http.StatusConflict, codeEventFull, "event is fully booked")
	case errors.Is(err, service.ErrEventInactive):
		writeError(w, http.StatusConflict, codeEventInactive, "event is not accepting registrations")
	case errors.Is(err, service.ErrEventPast):
		writeError(w, http.StatusConflict, codeEventPast, "event has already taken place")
	default:
		h.logger.Error("API", fmt.Sprintf("%s: %v", action, err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "failed to "+action)
	}
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// ListEvents handles GET /events
// Returns every event, or the active events of ?category= when given.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	var (
		events []model.Event
		err    error
	)
	if category, ok := r.URL.Query()["category"]; ok {
		events, err = h.catalog.GetEventsByCategory(r.Context(), category[0])
	} else {
		events, err = h.catalog.ListEvents(r.Context())
	}
	if err != nil {
		h.writeCatalogError(w, err, "list events")
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// ListCategories handles GET /events/categories
func (h *EventHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		h.writeCatalogError(w, err, "list categories")
		return
	}
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// GetEvent handles GET /events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
		return
	}

	event, err := h.catalog.GetEventByID(r.Context(), id)
	if err != nil {
		h.writeCatalogError(w, err, "get event")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Register handles POST /events/{id}/register
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
		return
	}

	var req model.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body: "+err.Error())
		return
	}

	reg, err := h.catalog.RegisterForEvent(r.Context(), id, req.AttendeeContact)
	if err != nil {
		h.writeCatalogError(w, err, "register for event")
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

// ListRegistrations handles GET /events/{id}/registrations
func (h *EventHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
		return
	}

	regs, err := h.catalog.ListRegistrations(r.Context(), id)
	if err != nil {
		h.writeCatalogError(w, err, "list registrations")
		return
	}
	if regs == nil {
		regs = []model.Registration{}
	}
	writeJSON(w, http.StatusOK, regs)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
