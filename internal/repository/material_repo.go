package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lecturer/internal/model"
)

type MaterialRepository interface {
	CreateMaterial(ctx context.Context, m *model.Material) error
	GetMaterialByID(ctx context.Context, materialID string) (*model.Material, error)
	GetMaterialsByCourseID(ctx context.Context, courseID string, limit, offset int) ([]model.Material, error)
	DeleteMaterial(ctx context.Context, materialID string) error
}

type materialRepository struct {
	db *sql.DB
}

func NewMaterialRepository(db *sql.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) CreateMaterial(ctx context.Context, m *model.Material) error {
	query := `
		INSERT INTO course_materials (course_id, user_id, title, file_url, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowContext(ctx, query, m.CourseID, m.UserID, m.Title, m.FileURL, m.ContentType, m.SizeBytes).
		Scan(&m.ID, &m.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert material: %w", err)
	}
	return nil
}

func (r *materialRepository) GetMaterialByID(ctx context.Context, materialID string) (*model.Material, error) {
	query := `
		SELECT id, course_id, user_id, title, file_url, content_type, size_bytes, created_at
		FROM course_materials
		WHERE id = $1
	`
	var m model.Material
	err := r.db.QueryRowContext(ctx, query, materialID).Scan(
		&m.ID, &m.CourseID, &m.UserID, &m.Title, &m.FileURL, &m.ContentType, &m.SizeBytes, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return &m, nil
}

func (r *materialRepository) GetMaterialsByCourseID(ctx context.Context, courseID string, limit, offset int) ([]model.Material, error) {
	query := `
		SELECT id, course_id, user_id, title, file_url, content_type, size_bytes, created_at
		FROM course_materials
		WHERE course_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, courseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query materials by course: %w", err)
	}
	defer rows.Close()

	materials := []model.Material{}
	for rows.Next() {
		var m model.Material
		if err := rows.Scan(
			&m.ID,
			&m.CourseID,
			&m.UserID,
			&m.Title,
			&m.FileURL,
			&m.ContentType,
			&m.SizeBytes,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan material row: %w", err)
		}
		materials = append(materials, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return materials, nil
}

func (r *materialRepository) DeleteMaterial(ctx context.Context, materialID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM course_materials WHERE id = $1`, materialID); err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	return nil
}
