package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"lecturer/internal/api/v1/dto"
	"lecturer/internal/model"
	"lecturer/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// LecturerHandler serves the authenticated lecturer's own profile
type LecturerHandler struct {
	lecturerService service.LecturerService
	validate        *validator.Validate
	maxUploadBytes  int64
	logger          zerolog.Logger
}

func NewLecturerHandler(lecturerService service.LecturerService, validate *validator.Validate, maxUploadBytes int64, logger zerolog.Logger) *LecturerHandler {
	return &LecturerHandler{
		lecturerService: lecturerService,
		validate:        validate,
		maxUploadBytes:  maxUploadBytes,
		logger:          logger,
	}
}

func (h *LecturerHandler) RegisterRoutes(r chi.Router, uploadLimit func(http.Handler) http.Handler) {
	r.Post("/lecturers/me", h.createLecturer)
	r.Get("/lecturers/me", h.getLecturer)
	r.With(uploadLimit).Put("/lecturers/me/avatar", h.updateAvatar)
}

// writeLecturer serializes l through LecturerSchema so internal fields never leave the service.
func (h *LecturerHandler) writeLecturer(w http.ResponseWriter, status int, l *model.Lecturer) {
	body, err := dto.LecturerSchema.Serialize(map[string]any{
		"user_id":    l.UserID,
		"name":       l.Name,
		"email":      l.Email,
		"department": l.Department,
		"avatar_url": l.AvatarURL,
		"payroll_id": l.PayrollID,
		"created_at": l.CreatedAt,
		"updated_at": l.UpdatedAt,
	})
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", l.UserID).Msg("Failed to serialize lecturer")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, status, body)
}

// createLecturer godoc
// @Summary Create the lecturer profile
// @Description Registers the authenticated subject as a lecturer.
// @Tags lecturers
// @Accept json
// @Produce json
// @Param lecturer body dto.LecturerCreateDTO true "Lecturer profile"
// @Success 201 {object} dto.Lecturer
// @Failure 400 {object} dto.ErrorResponseDTO
// @Failure 409 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /lecturers/me [post]
func (h *LecturerHandler) createLecturer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req dto.LecturerCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	created, err := h.lecturerService.Create(r.Context(), &model.Lecturer{
		UserID:     userID,
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		PayrollID:  req.PayrollID,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	h.writeLecturer(w, http.StatusCreated, created)
}

// getLecturer godoc
// @Summary Get the lecturer profile
// @Tags lecturers
// @Produce json
// @Success 200 {object} dto.Lecturer
// @Failure 404 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /lecturers/me [get]
func (h *LecturerHandler) getLecturer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	l, err := h.lecturerService.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	h.writeLecturer(w, http.StatusOK, l)
}

// updateAvatar godoc
// @Summary Replace the avatar
// @Tags lecturers
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} dto.Lecturer
// @Failure 400 {object} dto.ErrorResponseDTO
// @Failure 404 {object} dto.ErrorResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /lecturers/me/avatar [put]
func (h *LecturerHandler) updateAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	file, header, status, err := formFile(w, r, "file", h.maxUploadBytes)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	defer file.Close()

	contentType := contentTypeOf(header)
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, http.StatusBadRequest, "Avatar must be an image")
		return
	}
	l, err := h.lecturerService.UpdateAvatar(r.Context(), userID, header.Filename, contentType, file)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	h.writeLecturer(w, http.StatusOK, l)
}
