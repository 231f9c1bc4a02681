package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
	"github.com/yigit/lockersys/internal/pkg/dberrors"
	"github.com/yigit/lockersys/internal/pkg/logger"
)

// studentCodeIndex is the case-insensitive unique index on student_code
const studentCodeIndex = "idx_students_code"

var studentColumns = []string{"id", "name", "email", "phone", "student_code", "course", "semester", "status", "created_at", "updated_at"}

// StudentRepository handles student database operations
type StudentRepository struct {
	base
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{base: newBase(db)}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.StudentID, &s.Course, &s.Semester, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Create inserts a new student
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns(studentColumns...).
		Values(s.ID, s.Name, s.Email, s.Phone, s.StudentID, s.Course, s.Semester, s.Status, s.CreatedAt, s.UpdatedAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, studentCodeIndex) {
			return apperrors.ErrStudentCodeExists
		}
		logger.Error().Err(err).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	return s, nil
}

// List returns one page of students, newest first, and the total count
func (r *StudentRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Student, int64, error) {
	total, err := r.count(ctx, "students", nil)
	if err != nil {
		return nil, 0, err
	}

	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("created_at DESC", "seq DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, 0, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, total, nil
}

// Update overwrites every mutable column of a student
func (r *StudentRepository) Update(ctx context.Context, s *models.Student) error {
	found, err := r.exec(ctx, r.sb.Update("students").
		SetMap(map[string]interface{}{
			"name":         s.Name,
			"email":        s.Email,
			"phone":        s.Phone,
			"student_code": s.StudentID,
			"course":       s.Course,
			"semester":     s.Semester,
			"status":       s.Status,
			"updated_at":   s.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": s.ID}), "update student")
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, studentCodeIndex) {
			return apperrors.ErrStudentCodeExists
		}
		logger.Error().Err(err).Str("studentID", s.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}
	if !found {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student by ID
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	found, err := r.exec(ctx, r.sb.Delete("students").Where(squirrel.Eq{"id": id}), "delete student")
	if err != nil {
		logger.Error().Err(err).Str("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}
	if !found {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Count returns the number of students
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, "students", nil)
}
