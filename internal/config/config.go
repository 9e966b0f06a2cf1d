package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL"`

	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`
	AutoMigrate        bool   `envconfig:"AUTO_MIGRATE" default:"false"`
	JWTSecret          string `envconfig:"JWT_SECRET" required:"true"`

	// Object storage. Missing values fall back to empty strings rather than failing startup.
	S3Region    string `envconfig:"AWS_REGION" default:"ap-south-1"`
	S3AccessKey string `envconfig:"AWS_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"AWS_S3_BUCKET_NAME"`
	S3Endpoint  string `envconfig:"AWS_S3_ENDPOINT"`

	// Pub/Sub is disabled when the project ID is empty
	GCPProjectID          string `envconfig:"GCP_PROJECT_ID"`
	MaterialUploadedTopic string `envconfig:"MATERIAL_UPLOADED_TOPIC" default:"material-uploaded"`
	PubSubEmulatorHost    string `envconfig:"PUBSUB_EMULATOR_HOST"`

	MaxUploadSizeMB int      `envconfig:"MAX_UPLOAD_SIZE_MB" default:"50"`
	RateLimitRPS    float64  `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst  int      `envconfig:"RATE_LIMIT_BURST" default:"10"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	for i, origin := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs against local infrastructure.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// MaxUploadBytes is the request body limit for multipart uploads.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadSizeMB) << 20
}
