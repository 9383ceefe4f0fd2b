package rank

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bussp-service/internal/users"
	"bussp-service/pkg/jwt"
)

// UserRankRequest is the body for POST /rank/user.
type UserRankRequest struct {
	Email string `json:"email"`
}

// UserRankResponse carries a user's 1-based leaderboard position.
type UserRankResponse struct {
	Position int `json:"position"`
}

// GlobalResponse is the body for GET /rank/global.
type GlobalResponse struct {
	Users []users.User `json:"users"`
}

// Handler exposes ranking HTTP endpoints.
type Handler struct{ svc *Service }

// NewHandler wires a handler to the rank service.
func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// Routes returns a chi.Router with all ranking routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(jwt.RequireAuth)

	r.Post("/user", h.UserRank)
	r.Get("/global", h.Global)

	return r
}

func (h *Handler) UserRank(w http.ResponseWriter, r *http.Request) {
	var req UserRankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	pos, err := h.svc.UserRank(r.Context(), req.Email)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, users.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, UserRankResponse{Position: pos})
}

func (h *Handler) Global(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Global(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, GlobalResponse{Users: list})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
