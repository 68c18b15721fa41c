package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"movie-collections/internal/core/domain/membership"
	"movie-collections/internal/core/ports"
	"movie-collections/internal/observability"
)

// Handler maps HTTP requests onto the core services. It owns boundary
// validation and the error-to-status mapping; the core never sees a
// request object.
type Handler struct {
	memberships ports.MembershipService
	listings    ports.ListingService
	activities  ports.ActivityService
	logger      *slog.Logger
}

func NewHandler(memberships ports.MembershipService, listings ports.ListingService, activities ports.ActivityService, logger *slog.Logger) *Handler {
	return &Handler{
		memberships: memberships,
		listings:    listings,
		activities:  activities,
		logger:      logger,
	}
}

// ToggleAdd handles POST /favorites/{id} and POST /watch-later/{id}.
func (h *Handler) ToggleAdd(kind membership.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.toggle(w, r, kind, h.memberships.ToggleAdd)
	}
}

// ToggleRemove handles DELETE /favorites/{id} and DELETE /watch-later/{id}.
func (h *Handler) ToggleRemove(kind membership.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.toggle(w, r, kind, h.memberships.ToggleRemove)
	}
}

type toggleFunc func(ctx context.Context, user, movieID string, kind membership.Kind) (membership.ToggleStatus, error)

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, kind membership.Kind, op toggleFunc) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}

	movieID := r.PathValue("id")
	if movieID == "" {
		h.respondError(w, http.StatusBadRequest, errors.New("missing movie id"))
		return
	}

	status, err := op(r.Context(), user, movieID, kind)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	observability.RecordToggle(string(kind), string(status))
	h.respondJSON(w, http.StatusOK, toggleResponse{Status: status})
}

// ListFavorites handles GET /favorites?page=
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}
	page, err := parsePage(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.listings.ListFavorites(r.Context(), user, page)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, pageResponse{Items: result.Items, TotalPages: result.TotalPages})
}

// ListWatchLater handles GET /watch-later?page=&query=&minYear=&maxYear=&genres=
func (h *Handler) ListWatchLater(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}
	page, err := parsePage(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	filter, err := parseFilter(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.listings.ListWatchLater(r.Context(), user, page, filter)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, pageResponse{Items: result.Items, TotalPages: result.TotalPages})
}

// ListCatalog handles GET /movies?page=&query=&minYear=&maxYear=&genres=
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}
	page, err := parsePage(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	filter, err := parseFilter(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.listings.ListCatalog(r.Context(), user, page, filter)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, pageResponse{Items: result.Items, TotalPages: result.TotalPages})
}

// Activities handles GET /activities.
func (h *Handler) Activities(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}

	feed, err := h.activities.Recent(r.Context(), user, 0)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, activitiesResponse{Activities: feed})
}

// Genres handles GET /genres.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.listings.Genres(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, genresResponse{Genres: genres})
}

func (h *Handler) user(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, ok := r.Context().Value(userIDKey).(string)
	if !ok || user == "" {
		h.respondError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return "", false
	}
	return user, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, membership.ErrUnauthorized):
		h.respondError(w, http.StatusUnauthorized, err)
	case errors.Is(err, membership.ErrInvalidInput):
		h.respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, membership.ErrStoreUnavailable):
		h.logger.Error("store unavailable", "error", err)
		h.respondError(w, http.StatusServiceUnavailable, errors.New("service temporarily unavailable"))
	default:
		h.logger.Error("unexpected error", "error", err)
		h.respondError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}
