package history

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bussp-service/pkg/jwt"
)

// Request is the body for POST /history/.
type Request struct {
	Email string `json:"email"`
}

// Response is the user's trip history.
type Response struct {
	Trips []Entry `json:"trips"`
}

// Handler exposes history HTTP endpoints.
type Handler struct{ svc *Service }

// NewHandler wires a handler to the history service.
func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// Routes returns a chi.Router with all history routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(jwt.RequireAuth)

	r.Post("/", h.ForUser)

	return r
}

func (h *Handler) ForUser(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	if req.Email == "" {
		req.Email = jwt.GetClaims(r.Context()).Email
	}

	entries, err := h.svc.ForUser(r.Context(), req.Email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Response{Trips: entries})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
