package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"lecturer/internal/model"
	"lecturer/internal/repository"
	"lecturer/internal/util"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type LecturerService interface {
	Create(ctx context.Context, l *model.Lecturer) (*model.Lecturer, error)
	Get(ctx context.Context, userID string) (*model.Lecturer, error)
	// UpdateAvatar uploads a new avatar and replaces the stored URL
	UpdateAvatar(ctx context.Context, userID, filename, contentType string, body io.Reader) (*model.Lecturer, error)
}

type lecturerService struct {
	repo    repository.LecturerRepository
	storage FileStorage
	logger  zerolog.Logger
}

func NewLecturerService(repo repository.LecturerRepository, storage FileStorage, logger zerolog.Logger) LecturerService {
	return &lecturerService{
		repo:    repo,
		storage: storage,
		logger:  logger.With().Str("service", "LecturerService").Logger(),
	}
}

func (s *lecturerService) Create(ctx context.Context, l *model.Lecturer) (*model.Lecturer, error) {
	if err := s.repo.CreateLecturer(ctx, l); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrLecturerExists
		}
		return nil, err
	}
	return l, nil
}

func (s *lecturerService) Get(ctx context.Context, userID string) (*model.Lecturer, error) {
	l, err := s.repo.GetLecturerByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrLecturerNotFound
	}
	return l, nil
}

func (s *lecturerService) UpdateAvatar(ctx context.Context, userID, filename, contentType string, body io.Reader) (*model.Lecturer, error) {
	l, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s/%s-%s", userID, uuid.NewString(), util.SanitizeFilename(filename))
	url, err := s.storage.UploadFile(ctx, body, key, contentType)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateAvatarURL(ctx, userID, url); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("key", key).Msg("Failed to record avatar, removing uploaded file")
		if delErr := s.storage.DeleteFile(ctx, key); delErr != nil {
			s.logger.Warn().Err(delErr).Str("key", key).Msg("Failed to remove orphaned avatar file")
		}
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	if l.AvatarURL != "" {
		if old := s.storage.ExtractKeyFromURL(l.AvatarURL); old != "" {
			if err := s.storage.DeleteFile(ctx, old); err != nil {
				s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to delete previous avatar")
			}
		}
	}

	l.AvatarURL = url
	return l, nil
}
