package handlers

import (
	"net/http"

	"task-management/backend/services"
)

type AuthorityHandler struct {
	service *services.AuthorityService
}

func NewAuthorityHandler(service *services.AuthorityService) *AuthorityHandler {
	return &AuthorityHandler{service: service}
}

type authorityRequest struct {
	Authority string `json:"authority"`
}

func (h *AuthorityHandler) CreateAuthority(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, adminOnly) {
		return
	}
	var req authorityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	authority, err := h.service.CreateAuthority(r.Context(), req.Authority)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, authority)
}

func (h *AuthorityHandler) GetAuthority(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, adminOnly) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	authority, err := h.service.GetAuthority(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authority)
}

func (h *AuthorityHandler) UpdateAuthority(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, adminOnly) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req authorityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	authority, err := h.service.UpdateAuthority(r.Context(), id, req.Authority)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authority)
}

func (h *AuthorityHandler) DeleteAuthority(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, adminOnly) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.service.DeleteAuthority(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
