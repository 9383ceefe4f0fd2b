package routes

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bussp-service/pkg/jwt"
)

// PositionsRequest is the body for POST /routes/positions.
type PositionsRequest struct {
	Routes []Route `json:"routes"`
}

// PositionsResponse carries current vehicle positions.
type PositionsResponse struct {
	Buses []Position `json:"buses"`
}

// SearchResponse carries resolved routes for a query.
type SearchResponse struct {
	Routes []Route `json:"routes"`
}

// ShapesRequest is the body for POST /routes/shapes.
type ShapesRequest struct {
	Routes []RouteID `json:"routes"`
}

// ShapesResponse carries GTFS geometry per route.
type ShapesResponse struct {
	Shapes []Shape `json:"shapes"`
}

// Handler exposes route HTTP endpoints.
type Handler struct{ svc *Service }

// NewHandler wires a handler to the route service.
func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// Routes returns a chi.Router with all route endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(jwt.RequireAuth)

	r.Get("/search", h.Search)
	r.Post("/positions", h.Positions)
	r.Post("/shapes", h.Shapes)

	return r
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter q is required"})
		return
	}

	rts, err := h.svc.Search(r.Context(), query)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Routes: rts})
}

func (h *Handler) Positions(w http.ResponseWriter, r *http.Request) {
	var req PositionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	positions, err := h.svc.Positions(r.Context(), req.Routes)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, PositionsResponse{Buses: positions})
}

func (h *Handler) Shapes(w http.ResponseWriter, r *http.Request) {
	var req ShapesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	shapes, err := h.svc.Shapes(r.Context(), req.Routes)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ShapesResponse{Shapes: shapes})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
