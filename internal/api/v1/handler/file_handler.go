package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"lecturer/internal/api/v1/dto"
	"lecturer/internal/service"
	"lecturer/internal/storage"
	"lecturer/internal/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultUploadFolder = "uploads"
	maxSignedURLSeconds = int64(storage.MaxSignedURLExpiry / time.Second)
)

// FileHandler exposes the storage facade directly
type FileHandler struct {
	storage        service.FileStorage
	validate       *validator.Validate
	maxUploadBytes int64
	logger         zerolog.Logger
}

func NewFileHandler(files service.FileStorage, validate *validator.Validate, maxUploadBytes int64, logger zerolog.Logger) *FileHandler {
	return &FileHandler{storage: files, validate: validate, maxUploadBytes: maxUploadBytes, logger: logger}
}

// RegisterRoutes mounts file routes. uploadLimit wraps the upload endpoint.
func (h *FileHandler) RegisterRoutes(r chi.Router, uploadLimit func(http.Handler) http.Handler) {
	r.With(uploadLimit).Post("/files", h.upload)
	r.Delete("/files", h.delete)
	r.Get("/files/signed-url", h.signedURL)
}

// uploadFolder normalizes the client supplied folder. ok is false for paths escaping the root.
func uploadFolder(folder string) (string, bool) {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		return defaultUploadFolder, true
	}
	for _, seg := range strings.Split(folder, "/") {
		if seg == ".." || seg == "." {
			return "", false
		}
	}
	return path.Clean(folder), true
}

// upload godoc
// @Summary Upload a file
// @Description Uploads a file to object storage and returns its public URL.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param folder formData string false "Key prefix (default uploads)"
// @Success 201 {object} dto.FileUploadResponseDTO
// @Failure 400 {object} dto.ErrorResponseDTO
// @Failure 413 {object} dto.ErrorResponseDTO
// @Failure 429 {object} dto.ErrorResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /files [post]
func (h *FileHandler) upload(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	file, header, status, err := formFile(w, r, "file", h.maxUploadBytes)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	defer file.Close()

	folder, ok := uploadFolder(r.FormValue("folder"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid folder")
		return
	}
	key := fmt.Sprintf("%s/%s-%s", folder, uuid.NewString(), util.SanitizeFilename(header.Filename))

	url, err := h.storage.UploadFile(r.Context(), file, key, contentTypeOf(header))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.FileUploadResponseDTO{URL: url, Key: key})
}

// delete godoc
// @Summary Delete a file
// @Description Deletes an object by key, or by the public URL returned on upload.
// @Tags files
// @Accept json
// @Param body body dto.FileDeleteDTO true "Object to delete"
// @Success 204
// @Failure 400 {object} dto.ErrorResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /files [delete]
func (h *FileHandler) delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	var req dto.FileDeleteDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	key := req.Key
	if key == "" {
		key = h.storage.ExtractKeyFromURL(req.URL)
	}
	if key == "" {
		writeError(w, http.StatusBadRequest, "Could not determine object key")
		return
	}

	if err := h.storage.DeleteFile(r.Context(), key); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// signedURL godoc
// @Summary Get a signed download URL
// @Tags files
// @Produce json
// @Param key query string true "Object key"
// @Param expiresIn query int false "Validity in seconds (default 3600, 0 is signed as 1)"
// @Success 200 {object} dto.SignedURLResponseDTO
// @Failure 400 {object} dto.ErrorResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /files/signed-url [get]
func (h *FileHandler) signedURL(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	expiresIn := int64(storage.DefaultSignedURLExpiry / time.Second)
	if v := r.URL.Query().Get("expiresIn"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 || n > maxSignedURLSeconds {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("expiresIn must be an integer between 0 and %d", maxSignedURLSeconds))
			return
		}
		expiresIn = n
	}

	// Report the window that is actually signed.
	expiry := storage.SignedURLExpiry(time.Duration(expiresIn) * time.Second)
	url, err := h.storage.GetSignedURL(r.Context(), key, expiry)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SignedURLResponseDTO{URL: url, ExpiresIn: int64(expiry / time.Second)})
}
