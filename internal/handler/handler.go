// Package handler wires the HTTP surface: scans, student and record CRUD,
// staff accounts, reports and exports.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Johnskie78/ccsa/internal/admin"
	"github.com/Johnskie78/ccsa/internal/attendance"
	"github.com/Johnskie78/ccsa/internal/cloudinary"
	"github.com/Johnskie78/ccsa/internal/config"
	"github.com/Johnskie78/ccsa/internal/student"
)

// Handler carries the repositories and services behind the API.
type Handler struct {
	cfg      config.App
	loc      *time.Location
	students *student.Repository
	records  *attendance.Repository
	admins   *admin.Repository
	scans    *attendance.Service
	cloud    *cloudinary.Client // nil when Cloudinary not configured
}

// New creates a handler.
func New(cfg config.App, loc *time.Location, students *student.Repository, records *attendance.Repository, admins *admin.Repository, scans *attendance.Service, cloud *cloudinary.Client) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		cfg:      cfg,
		loc:      loc,
		students: students,
		records:  records,
		admins:   admins,
		scans:    scans,
		cloud:    cloud,
	}
}

// Directory adapts the student repository to the scan service's lookup.
type Directory struct {
	Repo *student.Repository
}

// Lookup resolves a business key to a scan subject; nil means not found.
func (d Directory) Lookup(ctx context.Context, studentID string) (*attendance.Subject, error) {
	s, err := d.Repo.GetByStudentID(ctx, studentID)
	if err != nil || s == nil {
		return nil, err
	}
	return &attendance.Subject{
		StudentID:   s.StudentID,
		DisplayName: s.DisplayName(),
		Active:      s.Active(),
	}, nil
}

// errStatus maps domain errors to HTTP status codes. Unknown errors are
// internal failures the caller logs and reports generically.
func errStatus(err error) int {
	switch {
	case errors.Is(err, attendance.ErrStudentNotFound),
		errors.Is(err, attendance.ErrRecordNotFound),
		errors.Is(err, student.ErrNotFound),
		errors.Is(err, admin.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, attendance.ErrStudentNotEligible),
		errors.Is(err, attendance.ErrInvalidRecord),
		errors.Is(err, student.ErrMissingFields):
		return http.StatusUnprocessableEntity
	case errors.Is(err, student.ErrDuplicateID),
		errors.Is(err, admin.ErrDuplicateUsername),
		errors.Is(err, admin.ErrDuplicateEmail),
		errors.Is(err, attendance.ErrScanBusy):
		return http.StatusConflict
	case errors.Is(err, attendance.ErrScanCooldown):
		return http.StatusTooManyRequests
	case errors.Is(err, admin.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// today returns the current calendar-day key in the configured zone.
func (h *Handler) today() string {
	return attendance.DateOf(time.Now(), h.loc)
}
