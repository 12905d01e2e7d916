package history

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/css-prep/backend/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type Handler struct {
	store    *Store
	validate *validator.Validate
	log      zerolog.Logger
}

func NewHandler(store *Store, log zerolog.Logger) *Handler {
	return &Handler{store: store, validate: validator.New(), log: log}
}

// RegisterRoutes registers history and settings endpoints on the API subrouter.
func (h *Handler) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/sessions", h.ListSessions).Methods("GET")
	api.HandleFunc("/sessions", h.ClearSessions).Methods("DELETE")
	api.HandleFunc("/settings/reset", h.ResetAll).Methods("POST")
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.Load(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list sessions")
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load quiz sessions"})
		return
	}

	writeJSON(w, http.StatusOK, models.NewHistoryListResponse(sessions))
}

func (h *Handler) ClearSessions(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("clear sessions")
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to clear quiz sessions"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "All quiz session data has been removed."})
}

func (h *Handler) ResetAll(w http.ResponseWriter, r *http.Request) {
	var req models.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "confirmation is required"})
		return
	}

	err := h.store.ResetAll(r.Context(), req.Confirmation)
	if errors.Is(err, ErrInvalidConfirmation) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: `Type "` + ResetPhrase + `" to confirm`})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("reset application")
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to reset application data"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "All application data has been cleared."})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
