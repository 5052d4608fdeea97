package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository persists time records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const recordColumns = `id, student_id, ts, type, date, seq, created_at, updated_at`

func scanRecord(row interface{ Scan(...any) error }) (TimeRecord, error) {
	var r TimeRecord
	err := row.Scan(&r.ID, &r.StudentID, &r.Timestamp, &r.Type, &r.Date, &r.Seq, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// ListByStudentAndDate returns one student's records for a calendar day,
// ordered by (ts, seq) ascending.
func (r *Repository) ListByStudentAndDate(ctx context.Context, studentID, date string) ([]TimeRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM time_records
		WHERE student_id = $1 AND date = $2
		ORDER BY ts ASC, seq ASC
	`, studentID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ListByDate returns every record for one calendar day.
func (r *Repository) ListByDate(ctx context.Context, date string) ([]TimeRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM time_records
		WHERE date = $1
		ORDER BY ts ASC, seq ASC
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ListByDateRange returns records with date between from and to inclusive.
// Date keys are zero-padded YYYY-MM-DD so string comparison is chronological.
func (r *Repository) ListByDateRange(ctx context.Context, from, to string) ([]TimeRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM time_records
		WHERE date >= $1 AND date <= $2
		ORDER BY ts ASC, seq ASC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// List returns records with basic filters, newest first, for the records view.
func (r *Repository) List(ctx context.Context, date, studentID string, limit, offset int) ([]TimeRecord, error) {
	if limit <= 0 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + recordColumns + ` FROM time_records`
	args := []any{}
	clauses := []string{}
	if date != "" {
		clauses = append(clauses, "date = $"+itoa(len(args)+1))
		args = append(args, date)
	}
	if studentID != "" {
		clauses = append(clauses, "student_id = $"+itoa(len(args)+1))
		args = append(args, studentID)
	}
	if len(clauses) > 0 {
		query += " WHERE " + joinClauses(clauses, " AND ")
	}
	query += " ORDER BY ts DESC, seq DESC LIMIT $" + itoa(len(args)+1) + " OFFSET $" + itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// Insert writes a new record. The id is generated when absent; seq comes
// from the store's sequence and fixes insertion order.
func (r *Repository) Insert(ctx context.Context, rec TimeRecord) (TimeRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO time_records (id, student_id, ts, type, date)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING seq, created_at, updated_at
	`, rec.ID, rec.StudentID, rec.Timestamp, rec.Type, rec.Date)
	if err := row.Scan(&rec.Seq, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return TimeRecord{}, err
	}
	return rec, nil
}

// Get returns a single record by id.
func (r *Repository) Get(ctx context.Context, id string) (TimeRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+` FROM time_records WHERE id = $1
	`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return TimeRecord{}, ErrRecordNotFound
	}
	return rec, err
}

// Update rewrites an existing record's timestamp, type and date.
func (r *Repository) Update(ctx context.Context, rec TimeRecord) (TimeRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE time_records
		SET ts = $2, type = $3, date = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+recordColumns+`
	`, rec.ID, rec.Timestamp, rec.Type, rec.Date)
	updated, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return TimeRecord{}, ErrRecordNotFound
	}
	return updated, err
}

// Delete removes a record by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func collectRecords(rows *sql.Rows) ([]TimeRecord, error) {
	var res []TimeRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

func itoa(i int) string { return fmt.Sprintf("%d", i) }

func joinClauses(parts []string, sep string) string {
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for i := 1; i < len(parts); i++ {
		out += sep + parts[i]
	}
	return out
}
