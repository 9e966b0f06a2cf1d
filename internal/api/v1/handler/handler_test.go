package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lecturer/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var (
	testLogger   = zerolog.Nop()
	testValidate = validator.New()
)

const testCourseID = "3b241101-e2bb-4255-8caf-4136c566a962"

func passthrough(next http.Handler) http.Handler { return next }

// newTestRouter mounts routes behind a stub that authenticates every request as userID.
func newTestRouter(userID string, register func(r chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if userID != "" {
				req = req.WithContext(middleware.WithUserID(req.Context(), userID))
			}
			next.ServeHTTP(w, req)
		})
	})
	register(r)
	return r
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// multipartRequest builds a request with one file part and optional extra fields.
func multipartRequest(t *testing.T, method, target, filename, contentType, content string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	io.WriteString(part, content)
	mw.Close()

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "error" {
		t.Errorf("expected status error, got %v", body)
	}
	return body
}

const fakeBucketURL = "https://lecturer-media.s3.ap-south-1.amazonaws.com/"

type fakeStorage struct {
	uploaded map[string]string
	deleted  []string
	err      error
	lastSign time.Duration
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploaded: map[string]string{}}
}

func (s *fakeStorage) UploadFile(_ context.Context, body io.Reader, key, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	data, _ := io.ReadAll(body)
	s.uploaded[key] = contentType + ":" + string(data)
	return fakeBucketURL + key, nil
}

func (s *fakeStorage) DeleteFile(_ context.Context, key string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) ExtractKeyFromURL(url string) string {
	if !strings.HasPrefix(url, fakeBucketURL) {
		return ""
	}
	return strings.TrimPrefix(url, fakeBucketURL)
}

func (s *fakeStorage) GetSignedURL(_ context.Context, key string, expiresIn time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.lastSign = expiresIn
	return fakeBucketURL + key + "?X-Amz-Signature=abc", nil
}
