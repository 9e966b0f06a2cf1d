package handler

import (
	"net/http"
	"strings"
	"time"

	"lecturer/internal/api/v1/dto"
	"lecturer/internal/model"
	"lecturer/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// MaterialHandler handles course material endpoints
type MaterialHandler struct {
	materialService service.MaterialService
	maxUploadBytes  int64
	logger          zerolog.Logger
}

func NewMaterialHandler(materialService service.MaterialService, maxUploadBytes int64, logger zerolog.Logger) *MaterialHandler {
	return &MaterialHandler{materialService: materialService, maxUploadBytes: maxUploadBytes, logger: logger}
}

// RegisterRoutes mounts material routes. uploadLimit wraps the upload endpoint.
func (h *MaterialHandler) RegisterRoutes(r chi.Router, uploadLimit func(http.Handler) http.Handler) {
	r.With(uploadLimit).Post("/courses/{courseId}/materials", h.uploadMaterial)
	r.Get("/courses/{courseId}/materials", h.listMaterials)
	r.Get("/materials/{materialId}/download", h.downloadMaterial)
	r.Delete("/materials/{materialId}", h.deleteMaterial)
}

func toMaterialResponse(m *model.Material) dto.MaterialResponseDTO {
	return dto.MaterialResponseDTO{
		ID:          m.ID,
		CourseID:    m.CourseID,
		Title:       m.Title,
		FileURL:     m.FileURL,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		CreatedAt:   m.CreatedAt,
	}
}

// uploadMaterial godoc
// @Summary Upload course material
// @Description Stores a file under the course and records it.
// @Tags materials
// @Accept multipart/form-data
// @Produce json
// @Param courseId path string true "Course ID"
// @Param file formData file true "Material file"
// @Param title formData string false "Display title (defaults to the file name)"
// @Success 201 {object} dto.MaterialResponseDTO
// @Failure 400 {object} dto.ErrorResponseDTO
// @Failure 404 {object} dto.ErrorResponseDTO
// @Failure 413 {object} dto.ErrorResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /courses/{courseId}/materials [post]
func (h *MaterialHandler) uploadMaterial(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	courseID, ok := uuidParam(w, r, "courseId", service.ErrCourseNotFound.Error())
	if !ok {
		return
	}
	file, header, status, err := formFile(w, r, "file", h.maxUploadBytes)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	defer file.Close()

	m, err := h.materialService.Upload(r.Context(), service.UploadMaterialInput{
		CourseID:    courseID,
		UserID:      userID,
		Title:       strings.TrimSpace(r.FormValue("title")),
		Filename:    header.Filename,
		ContentType: contentTypeOf(header),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMaterialResponse(m))
}

// listMaterials godoc
// @Summary List course materials
// @Tags materials
// @Produce json
// @Param courseId path string true "Course ID"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset (default 0)"
// @Success 200 {array} dto.MaterialResponseDTO
// @Failure 400 {object} dto.ErrorResponseDTO
// @Failure 404 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /courses/{courseId}/materials [get]
func (h *MaterialHandler) listMaterials(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	courseID, ok := uuidParam(w, r, "courseId", service.ErrCourseNotFound.Error())
	if !ok {
		return
	}
	limit, offset, err := pagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	materials, err := h.materialService.GetMaterialsByCourseID(r.Context(), courseID, userID, limit, offset)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	resp := make([]dto.MaterialResponseDTO, 0, len(materials))
	for i := range materials {
		resp = append(resp, toMaterialResponse(&materials[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// downloadMaterial godoc
// @Summary Get a material download link
// @Description Returns a signed URL valid for 15 minutes.
// @Tags materials
// @Produce json
// @Param materialId path string true "Material ID"
// @Success 200 {object} dto.MaterialDownloadDTO
// @Failure 404 {object} dto.ErrorResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /materials/{materialId}/download [get]
func (h *MaterialHandler) downloadMaterial(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	materialID, ok := uuidParam(w, r, "materialId", service.ErrMaterialNotFound.Error())
	if !ok {
		return
	}
	url, err := h.materialService.GetDownloadURL(r.Context(), materialID, userID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MaterialDownloadDTO{
		URL:       url,
		ExpiresIn: int64(service.DownloadURLExpiry / time.Second),
	})
}

// deleteMaterial godoc
// @Summary Delete a material
// @Description Deletes the stored file, then the record. The record is kept if the file cannot be deleted.
// @Tags materials
// @Param materialId path string true "Material ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /materials/{materialId} [delete]
func (h *MaterialHandler) deleteMaterial(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	materialID, ok := uuidParam(w, r, "materialId", service.ErrMaterialNotFound.Error())
	if !ok {
		return
	}
	if err := h.materialService.DeleteMaterial(r.Context(), materialID, userID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
