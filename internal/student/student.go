package student

import (
	"errors"
	"time"
)

// Status marks whether a student may check in and out.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Student is a registered student. StudentID is the business key encoded in
// the printed QR code; ID is the internal record identifier.
type Student struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	LastName   string    `json:"last_name"`
	FirstName  string    `json:"first_name"`
	MiddleName string    `json:"middle_name"`
	YearLevel  string    `json:"year_level"`
	Course     string    `json:"course"`
	Status     Status    `json:"status"`
	PhotoURL   string    `json:"photo_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DisplayName renders "Last, First" for feeds and reports.
func (s Student) DisplayName() string {
	return s.LastName + ", " + s.FirstName
}

// Active reports whether the student may check in/out.
func (s Student) Active() bool {
	return s.Status == StatusActive
}

var (
	// ErrNotFound means no student matches the given id or business key.
	ErrNotFound = errors.New("student not found")
	// ErrDuplicateID means the business key is already taken.
	ErrDuplicateID = errors.New("student id already exists")
	// ErrMissingFields means a create/update request lacks required fields.
	ErrMissingFields = errors.New("student id, last name, first name, year level and course are required")
)

// ValidateNew checks the fields required at creation.
func (s Student) ValidateNew() error {
	if s.StudentID == "" || s.LastName == "" || s.FirstName == "" || s.YearLevel == "" || s.Course == "" {
		return ErrMissingFields
	}
	if s.Status != "" && s.Status != StatusActive && s.Status != StatusInactive {
		return errors.New("status must be active or inactive")
	}
	return nil
}
