package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"lecturer/internal/api/v1/dto"
	"lecturer/internal/health"
	"lecturer/internal/middleware"
	"lecturer/internal/service"
	"lecturer/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	multipartMemory  = 10 << 20
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponseDTO{Status: "error", Message: message})
}

// writeServiceError maps domain and facade errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var storageErr *storage.Error
	var unavailable *health.UnavailableError
	switch {
	case errors.As(err, &unavailable):
		writeJSON(w, http.StatusServiceUnavailable, unavailable.Status)
	case errors.As(err, &storageErr):
		writeError(w, http.StatusInternalServerError, storageErr.Error())
	case errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrMaterialNotFound),
		errors.Is(err, service.ErrLecturerNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDefaultCourseLocked):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrLecturerExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidFileURL):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Error().Err(err).Msg("Unhandled service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// requireUser returns the authenticated subject or writes a 401.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized: User ID not found in context")
		return "", false
	}
	return userID, true
}

// pagination reads limit and offset query params.
func pagination(r *http.Request) (limit, offset int, err error) {
	limit, offset = defaultPageLimit, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 {
			return 0, 0, errors.New("limit must be a positive integer")
		}
		if limit > maxPageLimit {
			limit = maxPageLimit
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil || offset < 0 {
			return 0, 0, errors.New("offset must be a non-negative integer")
		}
	}
	return limit, offset, nil
}

// uuidParam reads a UUID path parameter. Malformed IDs cannot exist, so they are reported as 404.
func uuidParam(w http.ResponseWriter, r *http.Request, name, notFound string) (string, bool) {
	id := chi.URLParam(r, name)
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusNotFound, notFound)
		return "", false
	}
	return id, true
}
