package handlers

import (
	"net/http"

	"blogHub/internal/auth"
	"blogHub/internal/service"
)

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.AuthService.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "User registered successfully", result, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.AuthService.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "Login successful", result, http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req service.RefreshRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.AuthService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.AuthService.Me(r.Context(), auth.ActorFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}
