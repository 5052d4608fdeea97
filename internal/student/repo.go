package student

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// Repository persists students in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const studentColumns = `id, student_id, last_name, first_name, middle_name, year_level, course, status, photo_url, created_at, updated_at`

func scanStudent(row interface{ Scan(...any) error }) (Student, error) {
	var s Student
	err := row.Scan(&s.ID, &s.StudentID, &s.LastName, &s.FirstName, &s.MiddleName, &s.YearLevel, &s.Course, &s.Status, &s.PhotoURL, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// List returns all students ordered by last then first name.
func (r *Repository) List(ctx context.Context) ([]Student, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+studentColumns+`
		FROM students
		ORDER BY last_name, first_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Get returns a student by internal id.
func (r *Repository) Get(ctx context.Context, id string) (Student, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+studentColumns+` FROM students WHERE id = $1
	`, id)
	s, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Student{}, ErrNotFound
	}
	return s, err
}

// GetByStudentID returns a student by business key. A nil pointer with nil
// error means no such student; the scan path relies on this.
func (r *Repository) GetByStudentID(ctx context.Context, studentID string) (*Student, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+studentColumns+` FROM students WHERE student_id = $1
	`, studentID)
	s, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student; the business key must be unused.
func (r *Repository) Create(ctx context.Context, s Student) (Student, error) {
	if err := s.ValidateNew(); err != nil {
		return Student{}, err
	}
	if existing, err := r.GetByStudentID(ctx, s.StudentID); err != nil {
		return Student{}, err
	} else if existing != nil {
		return Student{}, ErrDuplicateID
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = StatusActive
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO students (id, student_id, last_name, first_name, middle_name, year_level, course, status, photo_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at
	`, s.ID, s.StudentID, s.LastName, s.FirstName, s.MiddleName, s.YearLevel, s.Course, s.Status, s.PhotoURL)
	if err := row.Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return Student{}, err
	}
	return s, nil
}

// Update rewrites a student. Changing the business key to one already held
// by another student is a conflict.
func (r *Repository) Update(ctx context.Context, s Student) (Student, error) {
	current, err := r.Get(ctx, s.ID)
	if err != nil {
		return Student{}, err
	}
	if s.Status == "" {
		s.Status = current.Status
	}
	if err := s.ValidateNew(); err != nil {
		return Student{}, err
	}
	if s.StudentID != current.StudentID {
		if existing, err := r.GetByStudentID(ctx, s.StudentID); err != nil {
			return Student{}, err
		} else if existing != nil {
			return Student{}, ErrDuplicateID
		}
	}
	row := r.db.QueryRowContext(ctx, `
		UPDATE students
		SET student_id = $2, last_name = $3, first_name = $4, middle_name = $5,
		    year_level = $6, course = $7, status = $8, photo_url = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING `+studentColumns+`
	`, s.ID, s.StudentID, s.LastName, s.FirstName, s.MiddleName, s.YearLevel, s.Course, s.Status, s.PhotoURL)
	updated, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Student{}, ErrNotFound
	}
	return updated, err
}

// SetPhotoURL stores the uploaded photo location.
func (r *Repository) SetPhotoURL(ctx context.Context, id, photoURL string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE students SET photo_url = $2, updated_at = NOW() WHERE id = $1
	`, id, photoURL)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a student. Time records referencing the business key are
// kept; views render them as "Unknown Student".
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
