package service

import "errors"

var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrMaterialNotFound    = errors.New("material not found")
	ErrLecturerNotFound    = errors.New("lecturer not found")
	ErrLecturerExists      = errors.New("lecturer profile already exists")
	ErrDefaultCourseLocked = errors.New("default courses cannot be modified")
	ErrInvalidFileURL      = errors.New("stored file URL has no object key")
)
