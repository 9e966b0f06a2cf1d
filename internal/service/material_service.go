package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"lecturer/internal/model"
	"lecturer/internal/pubsub"
	"lecturer/internal/repository"
	"lecturer/internal/util"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DownloadURLExpiry is how long a material download link stays valid.
const DownloadURLExpiry = 15 * time.Minute

// UploadMaterialInput carries an incoming material file.
type UploadMaterialInput struct {
	CourseID    string
	UserID      string
	Title       string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MaterialService defines course material operations
type MaterialService interface {
	Upload(ctx context.Context, in UploadMaterialInput) (*model.Material, error)
	GetMaterialsByCourseID(ctx context.Context, courseID, userID string, limit, offset int) ([]model.Material, error)
	// GetDownloadURL returns a short-lived signed URL for the material's file
	GetDownloadURL(ctx context.Context, materialID, userID string) (string, error)
	DeleteMaterial(ctx context.Context, materialID, userID string) error
}

type materialService struct {
	repo          repository.MaterialRepository
	courses       CourseService
	storage       FileStorage
	publisher     pubsub.Publisher
	uploadedTopic string
	logger        zerolog.Logger
}

func NewMaterialService(
	repo repository.MaterialRepository,
	courses CourseService,
	storage FileStorage,
	publisher pubsub.Publisher,
	uploadedTopic string,
	logger zerolog.Logger,
) MaterialService {
	return &materialService{
		repo:          repo,
		courses:       courses,
		storage:       storage,
		publisher:     publisher,
		uploadedTopic: uploadedTopic,
		logger:        logger.With().Str("service", "MaterialService").Logger(),
	}
}

// MaterialKey builds the object key for a material file.
func MaterialKey(courseID, filename string) string {
	return fmt.Sprintf("courses/%s/materials/%s-%s", courseID, uuid.NewString(), util.SanitizeFilename(filename))
}

// Upload stores the file, records the material and announces it.
func (s *materialService) Upload(ctx context.Context, in UploadMaterialInput) (*model.Material, error) {
	if _, err := s.courses.GetCourse(ctx, in.CourseID, in.UserID); err != nil {
		return nil, err
	}

	key := MaterialKey(in.CourseID, in.Filename)
	fileURL, err := s.storage.UploadFile(ctx, in.Body, key, in.ContentType)
	if err != nil {
		return nil, err
	}

	title := in.Title
	if title == "" {
		title = util.SanitizeFilename(in.Filename)
	}
	m := &model.Material{
		CourseID:    in.CourseID,
		UserID:      in.UserID,
		Title:       title,
		FileURL:     fileURL,
		ContentType: in.ContentType,
		SizeBytes:   in.Size,
	}
	if err := s.repo.CreateMaterial(ctx, m); err != nil {
		s.logger.Error().Err(err).Str("course_id", in.CourseID).Str("key", key).Msg("Failed to record material, removing uploaded file")
		if delErr := s.storage.DeleteFile(ctx, key); delErr != nil {
			s.logger.Warn().Err(delErr).Str("key", key).Msg("Failed to remove orphaned material file")
		}
		return nil, fmt.Errorf("failed to create material: %w", err)
	}

	s.publishUploaded(ctx, m, key)
	return m, nil
}

// publishUploaded is fire and forget; the material stays even if the event is lost.
func (s *materialService) publishUploaded(ctx context.Context, m *model.Material, key string) {
	payload := struct {
		MaterialID  string `json:"material_id"`
		CourseID    string `json:"course_id"`
		UserID      string `json:"user_id"`
		StorageKey  string `json:"storage_key"`
		ContentType string `json:"content_type"`
		SizeBytes   int64  `json:"size_bytes"`
	}{
		MaterialID:  m.ID,
		CourseID:    m.CourseID,
		UserID:      m.UserID,
		StorageKey:  key,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error().Err(err).Str("material_id", m.ID).Msg("Failed to marshal material.uploaded payload")
		return
	}
	if _, err := s.publisher.Publish(ctx, s.uploadedTopic, data); err != nil {
		s.logger.Error().Err(err).Str("topic", s.uploadedTopic).Str("material_id", m.ID).Msg("Failed to publish material.uploaded event")
	}
}

func (s *materialService) GetMaterialsByCourseID(ctx context.Context, courseID, userID string, limit, offset int) ([]model.Material, error) {
	if _, err := s.courses.GetCourse(ctx, courseID, userID); err != nil {
		return nil, err
	}
	materials, err := s.repo.GetMaterialsByCourseID(ctx, courseID, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to list materials")
		return nil, err
	}
	return materials, nil
}

func (s *materialService) getOwned(ctx context.Context, materialID, userID string) (*model.Material, error) {
	m, err := s.repo.GetMaterialByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.UserID != userID {
		return nil, ErrMaterialNotFound
	}
	return m, nil
}

func (s *materialService) GetDownloadURL(ctx context.Context, materialID, userID string) (string, error) {
	m, err := s.getOwned(ctx, materialID, userID)
	if err != nil {
		return "", err
	}
	key := s.storage.ExtractKeyFromURL(m.FileURL)
	if key == "" {
		return "", ErrInvalidFileURL
	}
	return s.storage.GetSignedURL(ctx, key, DownloadURLExpiry)
}

// DeleteMaterial removes the stored file first; the row is kept if that fails.
func (s *materialService) DeleteMaterial(ctx context.Context, materialID, userID string) error {
	m, err := s.getOwned(ctx, materialID, userID)
	if err != nil {
		return err
	}

	if key := s.storage.ExtractKeyFromURL(m.FileURL); key != "" {
		if err := s.storage.DeleteFile(ctx, key); err != nil {
			return err
		}
	} else {
		s.logger.Warn().Str("material_id", materialID).Msg("Material has no recognizable object key, deleting record only")
	}

	if err := s.repo.DeleteMaterial(ctx, materialID); err != nil {
		s.logger.Error().Err(err).Str("material_id", materialID).Msg("Failed to delete material record")
		return err
	}
	return nil
}
