package repository

import (
	"context"
	"database/sql"
	"errors"

	"lecturer/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("record already exists")

type LecturerRepository interface {
	CreateLecturer(ctx context.Context, l *model.Lecturer) error
	GetLecturerByID(ctx context.Context, userID string) (*model.Lecturer, error)
	UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error
}

type lecturerRepo struct {
	db *sql.DB
}

func NewLecturerRepo(db *sql.DB) LecturerRepository {
	return &lecturerRepo{db: db}
}

func (r *lecturerRepo) CreateLecturer(ctx context.Context, l *model.Lecturer) error {
	query := `INSERT INTO lecturers (user_id, name, email, department, avatar_url, payroll_id)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING user_id, name, email, department, avatar_url, payroll_id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, l.UserID, l.Name, l.Email, l.Department, l.AvatarURL, l.PayrollID).
		Scan(&l.UserID, &l.Name, &l.Email, &l.Department, &l.AvatarURL, &l.PayrollID, &l.CreatedAt, &l.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *lecturerRepo) GetLecturerByID(ctx context.Context, userID string) (*model.Lecturer, error) {
	var l model.Lecturer
	query := `SELECT user_id, name, email, department, avatar_url, payroll_id, created_at, updated_at
              FROM lecturers WHERE user_id = $1`
	row := r.db.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&l.UserID, &l.Name, &l.Email, &l.Department, &l.AvatarURL, &l.PayrollID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *lecturerRepo) UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE lecturers SET avatar_url = $1, updated_at = NOW() WHERE user_id = $2`,
		avatarURL, userID)
	return err
}

// isUniqueViolation checks whether an error is a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
