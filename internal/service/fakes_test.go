package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"lecturer/internal/model"
	"lecturer/internal/repository"
)

type fakeCourseRepo struct {
	courses map[string]*model.Course
	nextID  int
	err     error
	deleted []string
}

func newFakeCourseRepo(courses ...model.Course) *fakeCourseRepo {
	r := &fakeCourseRepo{courses: map[string]*model.Course{}}
	for i := range courses {
		c := courses[i]
		r.courses[c.CourseID] = &c
	}
	return r
}

func (r *fakeCourseRepo) GetCoursesByUserID(_ context.Context, userID string) ([]model.Course, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []model.Course{}
	for _, c := range r.courses {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) CreateCourse(_ context.Context, c *model.Course) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	c.CourseID = fmt.Sprintf("course-%d", r.nextID)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	r.courses[c.CourseID] = &cp
	return nil
}

func (r *fakeCourseRepo) GetCourseByID(_ context.Context, courseID string) (*model.Course, error) {
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.courses[courseID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCourseRepo) UpdateCourse(_ context.Context, c *model.Course) error {
	cp := *c
	r.courses[c.CourseID] = &cp
	return nil
}

func (r *fakeCourseRepo) DeleteCourse(_ context.Context, courseID string) error {
	delete(r.courses, courseID)
	r.deleted = append(r.deleted, courseID)
	return nil
}

type fakeMaterialRepo struct {
	materials map[string]*model.Material
	order     []string
	nextID    int
	createErr error
	deleted   []string
}

func newFakeMaterialRepo(materials ...model.Material) *fakeMaterialRepo {
	r := &fakeMaterialRepo{materials: map[string]*model.Material{}}
	for i := range materials {
		m := materials[i]
		r.materials[m.ID] = &m
		r.order = append(r.order, m.ID)
	}
	return r
}

func (r *fakeMaterialRepo) CreateMaterial(_ context.Context, m *model.Material) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	m.ID = fmt.Sprintf("material-%d", r.nextID)
	m.CreatedAt = time.Now()
	cp := *m
	r.materials[m.ID] = &cp
	r.order = append(r.order, m.ID)
	return nil
}

func (r *fakeMaterialRepo) GetMaterialByID(_ context.Context, id string) (*model.Material, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMaterialRepo) GetMaterialsByCourseID(_ context.Context, courseID string, limit, offset int) ([]model.Material, error) {
	var all []model.Material
	for _, id := range r.order {
		if m, ok := r.materials[id]; ok && m.CourseID == courseID {
			all = append(all, *m)
		}
	}
	if offset >= len(all) {
		return []model.Material{}, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeMaterialRepo) DeleteMaterial(_ context.Context, id string) error {
	delete(r.materials, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeLecturerRepo struct {
	lecturers map[string]*model.Lecturer
	updateErr error
}

func (r *fakeLecturerRepo) CreateLecturer(_ context.Context, l *model.Lecturer) error {
	if _, ok := r.lecturers[l.UserID]; ok {
		return fmt.Errorf("insert lecturer: %w", repository.ErrDuplicate)
	}
	l.CreatedAt = time.Now()
	cp := *l
	r.lecturers[l.UserID] = &cp
	return nil
}

func (r *fakeLecturerRepo) GetLecturerByID(_ context.Context, userID string) (*model.Lecturer, error) {
	l, ok := r.lecturers[userID]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLecturerRepo) UpdateAvatarURL(_ context.Context, userID, avatarURL string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.lecturers[userID].AvatarURL = avatarURL
	return nil
}

const fakeBucketURL = "https://lecturer-media.s3.ap-south-1.amazonaws.com/"

// fakeStorage mimics the S3 facade: public URLs under fakeBucketURL, keys recovered after the host.
type fakeStorage struct {
	objects   map[string][]byte
	deleted   []string
	uploadErr error
	deleteErr error
	signed    []time.Duration
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) UploadFile(_ context.Context, body io.Reader, key, _ string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.objects[key] = data
	return fakeBucketURL + key, nil
}

func (s *fakeStorage) DeleteFile(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, key)
	return nil
}

func (s *fakeStorage) ExtractKeyFromURL(url string) string {
	_, key, ok := strings.Cut(url, ".amazonaws.com/")
	if !ok {
		return ""
	}
	return key
}

func (s *fakeStorage) GetSignedURL(_ context.Context, key string, expiresIn time.Duration) (string, error) {
	s.signed = append(s.signed, expiresIn)
	return fmt.Sprintf("%s%s?X-Amz-Expires=%d", fakeBucketURL, key, int(expiresIn.Seconds())), nil
}

type published struct {
	topic   string
	payload []byte
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []published
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, topic string, payload []byte) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	p.messages = append(p.messages, published{topic: topic, payload: payload})
	return "msg-1", nil
}

func (p *fakePublisher) Close() error { return nil }

var errBoom = errors.New("boom")
