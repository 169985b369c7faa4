package handlers

import (
	"net/http"

	"task-management/backend/services"
)

type DepartmentHandler struct {
	service *services.DepartmentService
}

func NewDepartmentHandler(service *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{service: service}
}

type departmentRequest struct {
	DepartmentName string `json:"departmentName"`
}

func (h *DepartmentHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, groupManagers) {
		return
	}
	var req departmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	department, err := h.service.CreateDepartment(r.Context(), req.DepartmentName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, department)
}

func (h *DepartmentHandler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, groupManagers) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	department, err := h.service.GetDepartment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, department)
}

func (h *DepartmentHandler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, groupManagers) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req departmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	department, err := h.service.UpdateDepartment(r.Context(), id, req.DepartmentName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, department)
}

func (h *DepartmentHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, groupManagers) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.service.DeleteDepartment(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DepartmentHandler) DepartmentProjects(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, groupManagers) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	projects, err := h.service.Projects(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *DepartmentHandler) DepartmentUsers(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, groupManagers) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	users, err := h.service.Users(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
