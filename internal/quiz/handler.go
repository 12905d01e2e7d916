package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/css-prep/backend/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type Handler struct {
	registry *Registry
	validate *validator.Validate
	log      zerolog.Logger
}

func NewHandler(registry *Registry, log zerolog.Logger) *Handler {
	return &Handler{registry: registry, validate: validator.New(), log: log}
}

// RegisterRoutes registers quiz session endpoints on the API subrouter.
func (h *Handler) RegisterRoutes(api *mux.Router) {
	const base = "/quiz/{slug:[a-z0-9-]+}"
	api.HandleFunc(base, h.GetSession).Methods("GET")
	api.HandleFunc(base+"/load", h.load((*Controller).Load)).Methods("POST")
	api.HandleFunc(base+"/retry", h.load((*Controller).Retry)).Methods("POST")
	api.HandleFunc(base+"/next", h.load((*Controller).Next)).Methods("POST")
	api.HandleFunc(base+"/answers/{questionID:[0-9]+}", h.SetAnswer).Methods("PUT")
	api.HandleFunc(base+"/score", h.Score).Methods("POST")
	api.HandleFunc(base+"/reveal", h.Reveal).Methods("POST")
}

// controller returns the slug's controller, creating it. Only loads call it.
func (h *Handler) controller(r *http.Request) *Controller {
	return h.registry.Get(mux.Vars(r)["slug"])
}

// lookup returns the slug's controller if a load has created one.
func (h *Handler) lookup(r *http.Request) (*Controller, bool) {
	return h.registry.Lookup(mux.Vars(r)["slug"])
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	c, ok := h.lookup(r)
	if !ok {
		writeJSON(w, http.StatusOK, IdleView(SubjectName(mux.Vars(r)["slug"])))
		return
	}
	writeJSON(w, http.StatusOK, c.View())
}

func (h *Handler) load(fn func(*Controller, context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := h.controller(r)
		if err := fn(c, r.Context()); err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c.View())
	}
}

func (h *Handler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.Atoi(mux.Vars(r)["questionID"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question ID"})
		return
	}

	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "option_index must be a non-negative integer"})
		return
	}

	c, ok := h.lookup(r)
	if !ok {
		h.writeError(w, ErrNoQuestionSet)
		return
	}
	if err := c.SetAnswer(questionID, *req.OptionIndex); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.View())
}

func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	c, ok := h.lookup(r)
	if !ok {
		h.writeError(w, ErrNoQuestionSet)
		return
	}
	if _, err := c.Score(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.View())
}

func (h *Handler) Reveal(w http.ResponseWriter, r *http.Request) {
	var req models.RevealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	c, ok := h.lookup(r)
	if !ok {
		h.writeError(w, ErrNotReviewing)
		return
	}
	if err := c.ShowCorrectAnswers(req.Show); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.View())
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrGenerationFailed):
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: GenerationFailedMessage})
	case errors.Is(err, ErrSuperseded):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "A newer request replaced this one"})
	case errors.Is(err, ErrNoQuestionSet):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "No questions loaded"})
	case errors.Is(err, ErrNotReviewing):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Quiz has not been scored yet"})
	case errors.Is(err, ErrUnknownQuestion), errors.Is(err, ErrInvalidOption):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	default:
		h.log.Error().Err(err).Msg("quiz request failed")
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
