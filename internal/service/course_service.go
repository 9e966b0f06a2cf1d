package service

import (
	"context"
	"fmt"

	"lecturer/internal/model"
	"lecturer/internal/repository"

	"github.com/rs/zerolog"
)

const cleanupPageSize = 100

// CourseService defines the interface for course operations
type CourseService interface {
	CreateCourse(ctx context.Context, c *model.Course) (*model.Course, error)
	// GetCourse returns the course if it exists and belongs to userID
	GetCourse(ctx context.Context, courseID, userID string) (*model.Course, error)
	GetCourses(ctx context.Context, userID string) ([]model.Course, error)
	// UpdateCourse updates an existing course
	UpdateCourse(ctx context.Context, c *model.Course) (*model.Course, error)
	// DeleteCourse deletes a course, its materials and their stored files
	DeleteCourse(ctx context.Context, courseID, userID string) error
}

// courseService is the implementation of CourseService
type courseService struct {
	repo         repository.CourseRepository
	materialRepo repository.MaterialRepository
	storage      FileStorage
	logger       zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(repo repository.CourseRepository, materialRepo repository.MaterialRepository, storage FileStorage, logger zerolog.Logger) CourseService {
	return &courseService{
		repo:         repo,
		materialRepo: materialRepo,
		storage:      storage,
		logger:       logger.With().Str("service", "CourseService").Logger(),
	}
}

// CreateCourse creates a new course record
func (s *courseService) CreateCourse(ctx context.Context, c *model.Course) (*model.Course, error) {
	if err := s.repo.CreateCourse(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("user_id", c.UserID).Msg("Failed to create course")
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return c, nil
}

func (s *courseService) GetCourse(ctx context.Context, courseID, userID string) (*model.Course, error) {
	course, err := s.repo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve course: %w", err)
	}
	// Someone else's course is reported as missing
	if course == nil || course.UserID != userID {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

func (s *courseService) GetCourses(ctx context.Context, userID string) ([]model.Course, error) {
	courses, err := s.repo.GetCoursesByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list courses")
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// UpdateCourse updates an existing course record
func (s *courseService) UpdateCourse(ctx context.Context, c *model.Course) (*model.Course, error) {
	existing, err := s.GetCourse(ctx, c.CourseID, c.UserID)
	if err != nil {
		return nil, err
	}
	if existing.IsDefault {
		return nil, ErrDefaultCourseLocked
	}
	c.IsDefault = existing.IsDefault

	if err := s.repo.UpdateCourse(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("course_id", c.CourseID).Msg("Failed to update course")
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return c, nil
}

// DeleteCourse deletes a course by its ID
func (s *courseService) DeleteCourse(ctx context.Context, courseID, userID string) error {
	existing, err := s.GetCourse(ctx, courseID, userID)
	if err != nil {
		return err
	}
	if existing.IsDefault {
		return ErrDefaultCourseLocked
	}

	s.deleteMaterialFiles(ctx, courseID)

	if err := s.repo.DeleteCourse(ctx, courseID); err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to delete course from database")
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}

// deleteMaterialFiles removes stored files for every material of the course.
// Failures are logged; the rows are removed by the course delete either way.
func (s *courseService) deleteMaterialFiles(ctx context.Context, courseID string) {
	for offset := 0; ; offset += cleanupPageSize {
		materials, err := s.materialRepo.GetMaterialsByCourseID(ctx, courseID, cleanupPageSize, offset)
		if err != nil {
			s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to list materials for cleanup")
			return
		}
		for _, m := range materials {
			key := s.storage.ExtractKeyFromURL(m.FileURL)
			if key == "" {
				continue
			}
			if err := s.storage.DeleteFile(ctx, key); err != nil {
				s.logger.Warn().Err(err).Str("material_id", m.ID).Msg("Failed to delete material file during course cleanup")
			}
		}
		if len(materials) < cleanupPageSize {
			return
		}
	}
}
