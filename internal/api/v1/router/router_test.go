package router

import (
	"context"
	"testing"

	"lecturer/internal/config"

	awsmiddleware "github.com/aws/smithy-go/middleware"
)

func TestNewS3ClientRegion(t *testing.T) {
	client, err := newS3Client(context.Background(), &config.Config{
		S3Region:    "ap-south-1",
		S3AccessKey: "AKIDEXAMPLE",
		S3SecretKey: "secret",
	})
	if err != nil {
		t.Fatalf("newS3Client returned error: %v", err)
	}
	if got := client.Options().Region; got != "ap-south-1" {
		t.Errorf("expected region ap-south-1, got %q", got)
	}
	if client.Options().BaseEndpoint != nil {
		t.Error("expected no endpoint override")
	}
}

func TestNewS3ClientEndpointOverride(t *testing.T) {
	client, err := newS3Client(context.Background(), &config.Config{
		S3Region:   "ap-south-1",
		S3Endpoint: "http://localhost:4566",
	})
	if err != nil {
		t.Fatalf("newS3Client returned error: %v", err)
	}
	opts := client.Options()
	if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://localhost:4566" || !opts.UsePathStyle {
		t.Errorf("endpoint override not applied: %v %v", opts.BaseEndpoint, opts.UsePathStyle)
	}
}

func TestRemoveDisableGzipWithoutMiddleware(t *testing.T) {
	stack := awsmiddleware.NewStack("test", nil)
	if err := removeDisableGzip()(stack); err != nil {
		t.Errorf("expected no error on a stack without the middleware, got %v", err)
	}
}

func TestResourcesCloseNil(t *testing.T) {
	if err := (&Resources{}).Close(); err != nil {
		t.Errorf("Close on empty resources returned %v", err)
	}
}
