package router

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"lecturer/internal/api/v1/handler"
	"lecturer/internal/config"
	"lecturer/internal/database"
	"lecturer/internal/health"
	"lecturer/internal/middleware"
	"lecturer/internal/pubsub"
	"lecturer/internal/repository"
	"lecturer/internal/service"
	"lecturer/internal/storage"

	_ "lecturer/docs/swagger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Resources are the shared clients behind the router. main closes them after the server drains.
type Resources struct {
	DB        *sql.DB
	Publisher pubsub.Publisher
}

// Close releases the publisher and then the database pool.
func (r *Resources) Close() error {
	var errs []error
	if r.Publisher != nil {
		errs = append(errs, r.Publisher.Close())
	}
	if r.DB != nil {
		errs = append(errs, r.DB.Close())
	}
	return errors.Join(errs...)
}

func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (http.Handler, *Resources, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("App environment loaded")

	// 1. Open DB connection (connection pooling)
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	// 2. Initialize S3 client
	s3Client, err := newS3Client(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	if cfg.S3Bucket == "" {
		logger.Warn().Msg("AWS_S3_BUCKET_NAME not set, storage operations will fail")
	}
	store := storage.New(s3Client, storage.Config{Bucket: cfg.S3Bucket, Region: cfg.S3Region}, logger)

	// 3. Initialize Pub/Sub publisher
	publisher, err := pubsub.New(ctx, cfg, logger)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	resources := &Resources{DB: db, Publisher: publisher}

	// 4. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 5. Initialize repositories & services & handlers
	courseRepo := repository.NewCourseRepo(db, logger)
	materialRepo := repository.NewMaterialRepository(db)
	lecturerRepo := repository.NewLecturerRepo(db)

	courseSvc := service.NewCourseService(courseRepo, materialRepo, store, logger)
	materialSvc := service.NewMaterialService(materialRepo, courseSvc, store, publisher, cfg.MaterialUploadedTopic, logger)
	lecturerSvc := service.NewLecturerService(lecturerRepo, store, logger)

	healthHandler := handler.NewHealthHandler(health.New(db, logger), logger)
	fileHandler := handler.NewFileHandler(store, validate, cfg.MaxUploadBytes(), logger)
	courseHandler := handler.NewCourseHandler(courseSvc, validate, logger)
	materialHandler := handler.NewMaterialHandler(materialSvc, cfg.MaxUploadBytes(), logger)
	lecturerHandler := handler.NewLecturerHandler(lecturerSvc, validate, cfg.MaxUploadBytes(), logger)

	// 6. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, logger)
	uploadLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// 7. Create router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)

	healthHandler.RegisterRoutes(r)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/v1", func(r chi.Router) {
		r.Use(authMiddleware)
		fileHandler.RegisterRoutes(r, uploadLimiter.PerUser)
		lecturerHandler.RegisterRoutes(r, uploadLimiter.PerUser)
		courseHandler.RegisterRoutes(r)
		materialHandler.RegisterRoutes(r, uploadLimiter.PerUser)
	})

	// Redirect /api/* to /v1/* for backward compatibility
	r.HandleFunc("/api/*", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/")
		http.Redirect(w, r, "/v1/"+rest, http.StatusMovedPermanently)
	})

	logger.Info().Msg("Router initialized")
	return r, resources, nil
}

// newS3Client builds the S3 client from static credentials. AWS_S3_ENDPOINT points it at an
// S3-compatible stack instead of AWS.
func newS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// removeDisableGzip is a workaround for S3 signature errors with some S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
