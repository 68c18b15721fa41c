package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"movie-collections/internal/core/ports"
)

// AuthHandler exposes signup and login. Identity verification lives
// entirely in this adapter; the core only ever receives the verified
// user string.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// SignUp handles POST /signup.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAuthError(w, http.StatusBadRequest, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		respondAuthError(w, http.StatusBadRequest, errors.New("email and password are required"))
		return
	}

	if err := h.service.SignUp(r.Context(), req.Email, req.Password); err != nil {
		respondAuthError(w, http.StatusInternalServerError, errors.New("signup failed"))
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAuthError(w, http.StatusBadRequest, err)
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(w, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
}

func respondAuthError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
