package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
)

type fakeUploader struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	f.input = input
	if input.Body != nil {
		b, err := io.ReadAll(input.Body)
		if err != nil {
			return nil, err
		}
		f.body = b
	}
	if f.err != nil {
		return nil, f.err
	}
	return &manager.UploadOutput{Key: input.Key}, nil
}

type fakeObjects struct {
	deleted []string
	err     error
}

func (f *fakeObjects) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = append(f.deleted, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

var testConfig = Config{Bucket: "lecturer-media", Region: "ap-south-1"}

// offlinePresigner signs locally with static credentials; presigning needs no network.
func offlinePresigner() *s3.PresignClient {
	client := s3.New(s3.Options{
		Region:      testConfig.Region,
		Credentials: credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
	})
	return s3.NewPresignClient(client)
}

func newTestStorage(up *fakeUploader, obj *fakeObjects) *S3Storage {
	return newS3Storage(up, obj, offlinePresigner(), testConfig, zerolog.Nop())
}

func TestUploadFileReturnsPublicURL(t *testing.T) {
	up := &fakeUploader{}
	s := newTestStorage(up, &fakeObjects{})

	got, err := s.UploadFile(context.Background(), strings.NewReader("%PDF-1.7"), "courses/123/syllabus.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("UploadFile returned error: %v", err)
	}

	want := "https://lecturer-media.s3.ap-south-1.amazonaws.com/courses/123/syllabus.pdf"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if aws.ToString(up.input.Bucket) != "lecturer-media" {
		t.Errorf("expected bucket lecturer-media, got %q", aws.ToString(up.input.Bucket))
	}
	if aws.ToString(up.input.ContentType) != "application/pdf" {
		t.Errorf("expected content type application/pdf, got %q", aws.ToString(up.input.ContentType))
	}
	if string(up.body) != "%PDF-1.7" {
		t.Errorf("unexpected uploaded body %q", up.body)
	}
}

func TestUploadFileKeepsKeyVerbatim(t *testing.T) {
	keys := []string{
		"a.txt",
		"courses/9/materials/week 1 notes.pdf",
		"avatars/üser/photo+1.png",
		"deep/nested/path/with-dashes_and.dots.tar.gz",
	}
	s := newTestStorage(&fakeUploader{}, &fakeObjects{})
	for _, key := range keys {
		got, err := s.UploadFile(context.Background(), bytes.NewReader(nil), key, "application/octet-stream")
		if err != nil {
			t.Fatalf("UploadFile(%q) returned error: %v", key, err)
		}
		if !strings.Contains(got, "lecturer-media") || !strings.HasSuffix(got, "/"+key) {
			t.Errorf("URL %q does not carry bucket and key %q", got, key)
		}
		if back := s.ExtractKeyFromURL(got); back != key {
			t.Errorf("round trip: expected %q, got %q", key, back)
		}
	}
}

func TestUploadFileWrapsBackendError(t *testing.T) {
	cause := &smithy.GenericAPIError{Code: "AccessDenied", Message: "Access Denied"}
	s := newTestStorage(&fakeUploader{err: cause}, &fakeObjects{})

	_, err := s.UploadFile(context.Background(), strings.NewReader("x"), "k", "text/plain")
	var se *Error
	if !errors.As(err, &se) {
		t.Fatalf("expected *storage.Error, got %T (%v)", err, err)
	}
	if se.Op != OpUpload || se.Key != "k" {
		t.Errorf("unexpected op/key: %q %q", se.Op, se.Key)
	}
	if se.Code != "AccessDenied" {
		t.Errorf("expected code AccessDenied, got %q", se.Code)
	}
	if !strings.Contains(se.Error(), "Access Denied") {
		t.Errorf("expected original message in %q", se.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected error to unwrap to the backend error")
	}
}

func TestDeleteFile(t *testing.T) {
	obj := &fakeObjects{}
	s := newTestStorage(&fakeUploader{}, obj)

	if err := s.DeleteFile(context.Background(), "courses/123/syllabus.pdf"); err != nil {
		t.Fatalf("DeleteFile returned error: %v", err)
	}
	if len(obj.deleted) != 1 || obj.deleted[0] != "courses/123/syllabus.pdf" {
		t.Fatalf("unexpected deleted keys: %v", obj.deleted)
	}
}

func TestDeleteFileWrapsBackendError(t *testing.T) {
	s := newTestStorage(&fakeUploader{}, &fakeObjects{err: errors.New("connection reset")})

	err := s.DeleteFile(context.Background(), "gone.pdf")
	var se *Error
	if !errors.As(err, &se) {
		t.Fatalf("expected *storage.Error, got %T", err)
	}
	if se.Op != OpDelete || se.Message != "connection reset" || se.Code != "" {
		t.Errorf("unexpected error contents: %+v", se)
	}
}

func TestExtractKeyFromURL(t *testing.T) {
	s := newTestStorage(&fakeUploader{}, &fakeObjects{})
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"public url", "https://lecturer-media.s3.ap-south-1.amazonaws.com/courses/123/syllabus.pdf", "courses/123/syllabus.pdf"},
		{"first marker wins", "https://b.s3.r.amazonaws.com/x.amazonaws.com/y", "x.amazonaws.com/y"},
		{"no marker", "https://cdn.example.com/courses/123/syllabus.pdf", ""},
		{"empty", "", ""},
		{"not a url", "::::", ""},
		{"marker only", "https://b.s3.r.amazonaws.com/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ExtractKeyFromURL(tt.url); got != tt.want {
				t.Errorf("ExtractKeyFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestGetSignedURL(t *testing.T) {
	s := newTestStorage(&fakeUploader{}, &fakeObjects{})
	key := "courses/123/syllabus.pdf"

	for _, expires := range []time.Duration{0, time.Second, DefaultSignedURLExpiry, 24 * time.Hour} {
		got, err := s.GetSignedURL(context.Background(), key, expires)
		if err != nil {
			t.Fatalf("GetSignedURL(%v) returned error: %v", expires, err)
		}
		u, err := url.Parse(got)
		if err != nil {
			t.Fatalf("signed URL %q does not parse: %v", got, err)
		}
		if u.Scheme != "https" || u.Host == "" {
			t.Errorf("unexpected signed URL %q", got)
		}
		if !strings.Contains(got, key) {
			t.Errorf("signed URL %q does not contain key", got)
		}
		if u.Query().Get("X-Amz-Signature") == "" {
			t.Errorf("signed URL %q carries no signature", got)
		}
	}
}

func TestGetSignedURLCarriesExpiry(t *testing.T) {
	s := newTestStorage(&fakeUploader{}, &fakeObjects{})

	got, err := s.GetSignedURL(context.Background(), "k.pdf", DefaultSignedURLExpiry)
	if err != nil {
		t.Fatalf("GetSignedURL returned error: %v", err)
	}
	u, _ := url.Parse(got)
	if exp := u.Query().Get("X-Amz-Expires"); exp != "3600" {
		t.Errorf("expected X-Amz-Expires=3600, got %q", exp)
	}

	tests := []struct {
		expiresIn time.Duration
		want      string
	}{
		{0, "1"},
		{-time.Minute, "1"},
		{1500 * time.Millisecond, "2"},
		{time.Second, "1"},
		{8 * 24 * time.Hour, "604800"},
	}
	for _, tt := range tests {
		got, err := s.GetSignedURL(context.Background(), "k.pdf", tt.expiresIn)
		if err != nil {
			t.Fatalf("GetSignedURL(%v) returned error: %v", tt.expiresIn, err)
		}
		u, err := url.Parse(got)
		if err != nil {
			t.Fatalf("signed URL %q does not parse: %v", got, err)
		}
		if exp := u.Query().Get("X-Amz-Expires"); exp != tt.want {
			t.Errorf("GetSignedURL(%v): expected X-Amz-Expires=%s, got %q", tt.expiresIn, tt.want, exp)
		}
	}
}

func TestSignedURLExpiry(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, time.Second},
		{time.Nanosecond, time.Second},
		{1500 * time.Millisecond, 2 * time.Second},
		{time.Hour, time.Hour},
		{MaxSignedURLExpiry + time.Second, MaxSignedURLExpiry},
	}
	for _, tt := range tests {
		if got := SignedURLExpiry(tt.in); got != tt.want {
			t.Errorf("SignedURLExpiry(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
