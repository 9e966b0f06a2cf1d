// Package storage is the object storage facade used by the lecturer API.
// Every call goes to S3; nothing about stored objects is cached here.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// DefaultSignedURLExpiry is used by callers that do not ask for a specific validity window.
const DefaultSignedURLExpiry = 3600 * time.Second

// Bounds of a presigned URL's validity. SigV4 signs whole seconds and rejects anything past a week.
const (
	MinSignedURLExpiry = time.Second
	MaxSignedURLExpiry = 7 * 24 * time.Hour
)

const urlMarker = ".amazonaws.com/"

// Config identifies the bucket every operation targets.
type Config struct {
	Bucket string
	Region string
}

type uploadAPI interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type objectAPI interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Storage wraps an S3 client for a single bucket.
type S3Storage struct {
	uploader  uploadAPI
	objects   objectAPI
	presigner presignAPI
	bucket    string
	region    string
	logger    zerolog.Logger
}

// New builds the facade on top of a shared S3 client.
func New(client *s3.Client, cfg Config, logger zerolog.Logger) *S3Storage {
	return newS3Storage(manager.NewUploader(client), client, s3.NewPresignClient(client), cfg, logger)
}

func newS3Storage(uploader uploadAPI, objects objectAPI, presigner presignAPI, cfg Config, logger zerolog.Logger) *S3Storage {
	return &S3Storage{
		uploader:  uploader,
		objects:   objects,
		presigner: presigner,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		logger:    logger.With().Str("service", "S3Storage").Logger(),
	}
}

// Bucket returns the configured bucket name.
func (s *S3Storage) Bucket() string {
	return s.bucket
}

// PublicURL builds the virtual-hosted URL of key. The key is used verbatim.
func (s *S3Storage) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// UploadFile streams body to key and returns the object's public URL.
// The managed uploader switches to multipart for large bodies, so body is never fully buffered.
// Existing objects under key are overwritten.
func (s *S3Storage) UploadFile(ctx context.Context, body io.Reader, key, contentType string) (string, error) {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Str("content_type", contentType).Msg("Failed to upload file")
		return "", newError(OpUpload, key, err)
	}

	url := s.PublicURL(key)
	s.logger.Info().Str("key", key).Str("url", url).Msg("File uploaded successfully")
	return url, nil
}

// DeleteFile removes key from the bucket. S3 does not report missing keys, so deleting
// an object that does not exist normally succeeds.
func (s *S3Storage) DeleteFile(ctx context.Context, key string) error {
	_, err := s.objects.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to delete file")
		return newError(OpDelete, key, err)
	}

	s.logger.Info().Str("key", key).Msg("File deleted successfully")
	return nil
}

// ExtractKeyFromURL returns everything after the first ".amazonaws.com/" in rawURL,
// or "" when the marker is missing. It never fails.
func (s *S3Storage) ExtractKeyFromURL(rawURL string) string {
	_, key, found := strings.Cut(rawURL, urlMarker)
	if !found {
		s.logger.Error().Str("url", rawURL).Msg("Failed to extract key from URL")
		return ""
	}
	return key
}

// SignedURLExpiry is the validity GetSignedURL actually signs for d: rounded up to a whole
// second and kept within [MinSignedURLExpiry, MaxSignedURLExpiry].
func SignedURLExpiry(d time.Duration) time.Duration {
	if rem := d % time.Second; rem > 0 {
		d += time.Second - rem
	}
	if d < MinSignedURLExpiry {
		return MinSignedURLExpiry
	}
	if d > MaxSignedURLExpiry {
		return MaxSignedURLExpiry
	}
	return d
}

// GetSignedURL presigns a GET for key that stays valid for SignedURLExpiry(expiresIn).
func (s *S3Storage) GetSignedURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	expiresIn = SignedURLExpiry(expiresIn)
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Dur("expires_in", expiresIn).Msg("Failed to generate signed URL")
		return "", newError(OpSignedURL, key, err)
	}
	return req.URL, nil
}
