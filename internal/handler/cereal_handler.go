package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"cereal-api/internal/model"
	"cereal-api/internal/service"

	"github.com/rs/zerolog"
)

// CerealHandler handles cereal-related HTTP requests.
type CerealHandler struct {
	service service.CerealService
	logger  zerolog.Logger
}

// NewCerealHandler creates a new cereal handler.
func NewCerealHandler(service service.CerealService, logger zerolog.Logger) *CerealHandler {
	return &CerealHandler{
		service: service,
		logger:  logger.With().Str("handler", "cereal").Logger(),
	}
}

// List handles GET /cereals requests with optional filter and sort
// parameters (column, value, operator, sort_by).
func (h *CerealHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	q := r.URL.Query()
	params := service.ListParams{
		Column:   q.Get("column"),
		Value:    q.Get("value"),
		Operator: q.Get("operator"),
		SortBy:   q.Get("sort_by"),
	}

	cereals, err := h.service.List(r.Context(), params)
	if err != nil {
		status := statusForError(err)
		message := "failed to retrieve cereals"
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			message = domainErr.Message
		}
		writeError(w, status, message, h.logger)
		return
	}

	if cereals == nil {
		cereals = []model.Cereal{}
	}

	writeJSON(w, http.StatusOK, cereals)
}

// GetByID handles GET /cereals/{id} requests.
func (h *CerealHandler) GetByID(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cereal ID format", h.logger)
		return
	}

	cereal, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		status := statusForError(err)
		message := "failed to retrieve cereal"
		if status == http.StatusNotFound {
			message = "cereal not found"
		}
		writeError(w, status, message, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cereal)
}

// CreateOrUpdate handles POST /cereals requests. A payload without an ID is
// inserted; a payload with an ID overwrites the identified record.
func (h *CerealHandler) CreateOrUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.CerealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	cereal, err := h.service.CreateOrUpdate(r.Context(), &req)
	if err != nil {
		status := statusForError(err)
		message := "failed to save cereal"
		if status == http.StatusNotFound {
			message = "cereal not found"
		}
		writeError(w, status, message, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cereal)
}

// DeleteByName handles DELETE /cereals/{name} requests.
func (h *CerealHandler) DeleteByName(w http.ResponseWriter, r *http.Request, name string) {
	if err := h.service.DeleteByName(r.Context(), name); err != nil {
		status := statusForError(err)
		message := "failed to delete cereal"
		if status == http.StatusNotFound {
			message = "cereal not found"
		}
		writeError(w, status, message, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Cereal '" + name + "' deleted successfully",
	})
}
