package rest

import (
	"net/http"

	"movie-collections/internal/core/domain/membership"
)

// NewRouter initializes the HTTP router and registers routes.
func NewRouter(h *Handler, authH *AuthHandler, jwtSecret string, mws ...Middleware) http.Handler {
	mux := http.NewServeMux()

	// Auth Routes (Public)
	mux.HandleFunc("POST /signup", authH.SignUp)
	mux.HandleFunc("POST /login", authH.Login)

	// Protected Routes
	auth := AuthMiddleware(jwtSecret)

	mux.Handle("POST /favorites/{id}", auth(h.ToggleAdd(membership.KindFavorite)))
	mux.Handle("DELETE /favorites/{id}", auth(h.ToggleRemove(membership.KindFavorite)))
	mux.Handle("GET /favorites", auth(http.HandlerFunc(h.ListFavorites)))

	mux.Handle("POST /watch-later/{id}", auth(h.ToggleAdd(membership.KindWatchLater)))
	mux.Handle("DELETE /watch-later/{id}", auth(h.ToggleRemove(membership.KindWatchLater)))
	mux.Handle("GET /watch-later", auth(http.HandlerFunc(h.ListWatchLater)))

	mux.Handle("GET /movies", auth(http.HandlerFunc(h.ListCatalog)))
	mux.Handle("GET /activities", auth(http.HandlerFunc(h.Activities)))
	mux.Handle("GET /genres", auth(http.HandlerFunc(h.Genres)))

	// Wrap with middleware
	return Chain(mux, mws...)
}
