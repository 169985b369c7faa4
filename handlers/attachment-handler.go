package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"

	"task-management/backend/errs"
	"task-management/backend/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxUploadMemory = 32 << 20

type AttachmentHandler struct {
	service *services.AttachmentService
}

func NewAttachmentHandler(service *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

func formTaskID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(r.FormValue("taskId"))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("taskId %q: %w", r.FormValue("taskId"), errs.ErrInvalidID)
	}
	return id, nil
}

func openUpload(header *multipart.FileHeader) (services.FileUpload, multipart.File, error) {
	file, err := header.Open()
	if err != nil {
		return services.FileUpload{}, nil, fmt.Errorf("open %s: %v: %w", header.Filename, err, errs.ErrAttachmentIO)
	}
	return services.FileUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	}, file, nil
}

// UploadFiles accepts multipart fields taskId, description and one or more files.
func (h *AttachmentHandler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, teamMembers) {
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	taskID, err := formTaskID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var uploads []services.FileUpload
	for _, header := range r.MultipartForm.File["files"] {
		upload, file, err := openUpload(header)
		if err != nil {
			writeError(w, r, err)
			return
		}
		defer file.Close()
		uploads = append(uploads, upload)
	}

	stored, err := h.service.Upload(r.Context(), taskID, r.FormValue("description"), uploads)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

// GetFile streams the stored content under its uploaded file name.
func (h *AttachmentHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, teamMembers) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	file, err := h.service.GetAttachment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.service.WriteContent(file, &buf); err != nil {
		writeError(w, r, err)
		return
	}

	contentType := file.FileType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// UpdateFile accepts multipart fields taskId, description and an optional file.
func (h *AttachmentHandler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, teamMembers) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	taskID, err := formTaskID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var replacement *services.FileUpload
	if headers := r.MultipartForm.File["file"]; len(headers) > 0 {
		upload, file, err := openUpload(headers[0])
		if err != nil {
			writeError(w, r, err)
			return
		}
		defer file.Close()
		replacement = &upload
	}

	updated, err := h.service.UpdateAttachment(r.Context(), id, taskID, r.FormValue("description"), replacement)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *AttachmentHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, teamMembers) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.service.DeleteAttachment(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
