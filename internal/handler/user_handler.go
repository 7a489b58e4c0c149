package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"cereal-api/internal/model"
	"cereal-api/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles registration HTTP requests.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// Register handles POST /register requests.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.Register(r.Context(), &req); err != nil {
		status := statusForError(err)
		message := "failed to register user"
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			message = domainErr.Message
		}
		writeError(w, status, message, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully"})
}
