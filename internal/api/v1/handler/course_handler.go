package handler

import (
	"encoding/json"
	"net/http"

	"lecturer/internal/api/v1/dto"
	"lecturer/internal/model"
	"lecturer/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CourseHandler handles course-related endpoints
type CourseHandler struct {
	courseService service.CourseService
	validate      *validator.Validate
	logger        zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, validate *validator.Validate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{courseService: courseService, validate: validate, logger: logger}
}

// RegisterRoutes mounts course routes
func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Post("/courses", h.createCourse)
	r.Get("/courses", h.listCourses)
	r.Get("/courses/{courseId}", h.getCourse)
	r.Put("/courses/{courseId}", h.updateCourse)
	r.Delete("/courses/{courseId}", h.deleteCourse)
}

func toCourseResponse(c *model.Course) dto.CourseResponseDTO {
	return dto.CourseResponseDTO{
		CourseID:    c.CourseID,
		UserID:      c.UserID,
		Title:       c.Title,
		Description: c.Description,
		IsDefault:   c.IsDefault,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// createCourse godoc
// @Summary Create a new course
// @Description Creates a new course associated with the authenticated lecturer.
// @Tags courses
// @Accept json
// @Produce json
// @Param course body dto.CourseCreateDTO true "Course creation request"
// @Success 201 {object} dto.CourseResponseDTO
// @Failure 400 {object} dto.ErrorResponseDTO
// @Failure 401 {object} dto.ErrorResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /courses [post]
func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req dto.CourseCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	isDefault := false
	if req.IsDefault != nil {
		isDefault = *req.IsDefault
	}
	created, err := h.courseService.CreateCourse(r.Context(), &model.Course{
		UserID:      userID,
		Title:       req.Title,
		Description: description,
		IsDefault:   isDefault,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCourseResponse(created))
}

// listCourses godoc
// @Summary List courses
// @Description Lists the authenticated lecturer's courses ordered by title.
// @Tags courses
// @Produce json
// @Success 200 {array} dto.CourseResponseDTO
// @Failure 401 {object} dto.ErrorResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /courses [get]
func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	courses, err := h.courseService.GetCourses(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	resp := make([]dto.CourseResponseDTO, 0, len(courses))
	for i := range courses {
		resp = append(resp, toCourseResponse(&courses[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// getCourse godoc
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 404 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /courses/{courseId} [get]
func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	courseID, ok := uuidParam(w, r, "courseId", service.ErrCourseNotFound.Error())
	if !ok {
		return
	}
	course, err := h.courseService.GetCourse(r.Context(), courseID, userID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toCourseResponse(course))
}

// updateCourse godoc
// @Summary Update a course
// @Description Updates title and description. Default courses cannot be changed.
// @Tags courses
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param course body dto.CourseUpdateDTO true "Course update request"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 400 {object} dto.ErrorResponseDTO
// @Failure 403 {object} dto.ErrorResponseDTO
// @Failure 404 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /courses/{courseId} [put]
func (h *CourseHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req dto.CourseUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	courseID, ok := uuidParam(w, r, "courseId", service.ErrCourseNotFound.Error())
	if !ok {
		return
	}
	course, err := h.courseService.GetCourse(r.Context(), courseID, userID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	updated, err := h.courseService.UpdateCourse(r.Context(), course)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toCourseResponse(updated))
}

// deleteCourse godoc
// @Summary Delete a course
// @Description Deletes a course with its materials and their stored files.
// @Tags courses
// @Param courseId path string true "Course ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponseDTO
// @Failure 404 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /courses/{courseId} [delete]
func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	courseID, ok := uuidParam(w, r, "courseId", service.ErrCourseNotFound.Error())
	if !ok {
		return
	}
	if err := h.courseService.DeleteCourse(r.Context(), courseID, userID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
