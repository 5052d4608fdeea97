package attendance

import (
	"context"
	"errors"
	"log"
	"time"
)

// RecordStore is the slice of the repository the scan path needs.
type RecordStore interface {
	ListByStudentAndDate(ctx context.Context, studentID, date string) ([]TimeRecord, error)
	Insert(ctx context.Context, rec TimeRecord) (TimeRecord, error)
}

// Subject is the minimal student view the scan path checks eligibility on.
type Subject struct {
	StudentID   string
	DisplayName string
	Active      bool
}

// StudentDirectory resolves a scanned business key to a subject.
// A nil result means no such student.
type StudentDirectory interface {
	Lookup(ctx context.Context, studentID string) (*Subject, error)
}

// DayLocker serializes the read-classify-write sequence per (student, day).
type DayLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Service processes QR scans: it checks eligibility, classifies the scan as
// check-in or check-out from the day's existing records, and persists the
// resulting time record.
type Service struct {
	records  RecordStore
	students StudentDirectory
	locks    DayLocker
	recent   *RecentScans
	loc      *time.Location
	cooldown time.Duration
	lockTTL  time.Duration
	now      func() time.Time
}

// NewService creates a scan service. locks may be nil, in which case the
// read-then-write race noted for concurrent scans is accepted unserialized.
func NewService(records RecordStore, students StudentDirectory, locks DayLocker, recent *RecentScans, loc *time.Location, cooldown, lockTTL time.Duration) *Service {
	if loc == nil {
		loc = time.Local
	}
	if lockTTL <= 0 {
		lockTTL = 5 * time.Second
	}
	return &Service{
		records:  records,
		students: students,
		locks:    locks,
		recent:   recent,
		loc:      loc,
		cooldown: cooldown,
		lockTTL:  lockTTL,
		now:      time.Now,
	}
}

// Recent exposes the scan feed buffer, when configured.
func (s *Service) Recent() *RecentScans { return s.recent }

// Scan handles one QR scan of a student business key. It rejects unknown or
// inactive students before classification and returns the persisted record.
func (s *Service) Scan(ctx context.Context, studentID string) (TimeRecord, error) {
	subject, err := s.students.Lookup(ctx, studentID)
	if err != nil {
		return TimeRecord{}, err
	}
	if subject == nil {
		scansTotal.WithLabelValues("rejected").Inc()
		return TimeRecord{}, ErrStudentNotFound
	}
	if !subject.Active {
		scansTotal.WithLabelValues("rejected").Inc()
		return TimeRecord{}, ErrStudentNotEligible
	}

	now := s.now()
	date := DateOf(now, s.loc)

	if s.locks != nil {
		key := "scanlock:" + studentID + ":" + date
		ok, lockErr := s.locks.Acquire(ctx, key, s.lockTTL)
		switch {
		case lockErr != nil:
			// Lock store down: proceed unlocked, accepting the small
			// race between classification and persistence.
			log.Printf("scan lock unavailable for %s: %v", studentID, lockErr)
		case !ok:
			scanLockContention.Inc()
			return TimeRecord{}, ErrScanBusy
		default:
			defer func() {
				if err := s.locks.Release(context.WithoutCancel(ctx), key); err != nil {
					log.Printf("scan lock release failed for %s: %v", studentID, err)
				}
			}()
		}
	}

	existing, err := s.records.ListByStudentAndDate(ctx, subject.StudentID, date)
	if err != nil {
		return TimeRecord{}, err
	}
	if s.cooldown > 0 && len(existing) > 0 {
		if last := Latest(existing); now.Sub(last.Timestamp) < s.cooldown {
			scansTotal.WithLabelValues("cooldown").Inc()
			return TimeRecord{}, ErrScanCooldown
		}
	}

	rec := TimeRecord{
		StudentID: subject.StudentID,
		Timestamp: now.UTC(),
		Type:      Classify(existing),
		Date:      date,
	}
	if err := rec.Validate(s.loc); err != nil {
		return TimeRecord{}, err
	}

	saved, err := s.records.Insert(ctx, rec)
	if err != nil {
		return TimeRecord{}, err
	}

	scansTotal.WithLabelValues(string(saved.Type)).Inc()
	if s.recent != nil {
		s.recent.Add(ScanEntry{
			StudentID:   subject.StudentID,
			StudentName: subject.DisplayName,
			Type:        saved.Type,
			At:          saved.Timestamp,
		})
	}
	return saved, nil
}

// IsRejection reports whether err is a scan rejection the UI shows to the
// operator, as opposed to an internal failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrStudentNotEligible) ||
		errors.Is(err, ErrScanCooldown) ||
		errors.Is(err, ErrScanBusy)
}
