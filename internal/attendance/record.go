package attendance

import (
	"errors"
	"time"
)

// RecordType distinguishes check-in from check-out scans.
type RecordType string

const (
	TypeIn  RecordType = "in"
	TypeOut RecordType = "out"
)

// Valid reports whether t is one of the two known record types.
func (t RecordType) Valid() bool {
	return t == TypeIn || t == TypeOut
}

// Flip returns the opposite record type.
func (t RecordType) Flip() RecordType {
	if t == TypeIn {
		return TypeOut
	}
	return TypeIn
}

// DateLayout is the calendar-day key format used for range queries.
const DateLayout = "2006-01-02"

// TimeRecord is one check-in or check-out event for a student.
// Seq is assigned by the store in insertion order and breaks ties
// between records carrying the same timestamp.
type TimeRecord struct {
	ID        string     `json:"id"`
	StudentID string     `json:"student_id"`
	Timestamp time.Time  `json:"timestamp"`
	Type      RecordType `json:"type"`
	Date      string     `json:"date"`
	Seq       int64      `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

var (
	// ErrStudentNotFound means no student carries the scanned business key.
	ErrStudentNotFound = errors.New("student not found")
	// ErrStudentNotEligible means the student exists but is inactive.
	ErrStudentNotEligible = errors.New("student is inactive")
	// ErrRecordNotFound means an edit/delete target does not exist.
	ErrRecordNotFound = errors.New("time record not found")
	// ErrInvalidRecord means a record has a missing type or timestamp,
	// or a date that disagrees with its timestamp.
	ErrInvalidRecord = errors.New("invalid time record")
	// ErrScanCooldown means the same student was scanned again too quickly.
	ErrScanCooldown = errors.New("scan repeated too soon")
	// ErrScanBusy means another scan for the same student and day holds the lock.
	ErrScanBusy = errors.New("concurrent scan in progress")
)

// DateOf returns the calendar-day key of ts in loc.
func DateOf(ts time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return ts.In(loc).Format(DateLayout)
}

// Validate checks the fields the pairing core depends on. The date must
// equal the calendar date of the timestamp in loc; this holds for every
// record the scan service creates and is re-checked on admin edits.
func (r TimeRecord) Validate(loc *time.Location) error {
	if !r.Type.Valid() {
		return ErrInvalidRecord
	}
	if r.Timestamp.IsZero() {
		return ErrInvalidRecord
	}
	if r.Date != DateOf(r.Timestamp, loc) {
		return ErrInvalidRecord
	}
	return nil
}
