// Package export renders time records as CSV for download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/Johnskie78/ccsa/internal/attendance"
	"github.com/Johnskie78/ccsa/internal/student"
)

// csvHeaders mirrors the columns the records view exports.
var csvHeaders = []string{
	"Date", "Time", "Type", "Student ID",
	"Last Name", "First Name", "Middle Name", "Year Level", "Course",
}

// TimeRecordsCSV renders records as CSV. Students are joined by business
// key; records with no matching student export as "Unknown".
func TimeRecordsCSV(records []attendance.TimeRecord, students map[string]student.Student, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeaders); err != nil {
		return "", err
	}
	for _, rec := range records {
		s, ok := students[rec.StudentID]
		if !ok {
			s = student.Student{
				StudentID: rec.StudentID,
				LastName:  "Unknown",
				FirstName: "Unknown",
			}
		}
		ts := rec.Timestamp.In(loc)
		typeLabel := "Check In"
		if rec.Type == attendance.TypeOut {
			typeLabel = "Check Out"
		}
		row := []string{
			ts.Format("2006-01-02"),
			ts.Format("15:04:05"),
			typeLabel,
			s.StudentID,
			s.LastName,
			s.FirstName,
			s.MiddleName,
			s.YearLevel,
			s.Course,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// Filename builds the download name for a single day or a range.
func Filename(from, to string) string {
	if to == "" || to == from {
		return fmt.Sprintf("time-records-%s.csv", from)
	}
	return fmt.Sprintf("time-records-%s-to-%s.csv", from, to)
}
