package export

import (
	"strings"
	"testing"
	"time"

	"github.com/Johnskie78/ccsa/internal/attendance"
	"github.com/Johnskie78/ccsa/internal/student"
)

func TestTimeRecordsCSV(t *testing.T) {
	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	records := []attendance.TimeRecord{
		{ID: "r1", StudentID: "2021-00042", Timestamp: ts, Type: attendance.TypeIn, Date: "2025-03-10"},
		{ID: "r2", StudentID: "9999-00000", Timestamp: ts.Add(time.Hour), Type: attendance.TypeOut, Date: "2025-03-10"},
	}
	students := map[string]student.Student{
		"2021-00042": {
			StudentID: "2021-00042",
			LastName:  "Cruz",
			FirstName: "Juan",
			YearLevel: "3",
			Course:    "BSCS",
		},
	}

	out, err := TimeRecordsCSV(records, students, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Date,Time,Type,Student ID") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "Check In") || !strings.Contains(lines[1], "Cruz") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
	if !strings.Contains(lines[2], "Check Out") || !strings.Contains(lines[2], "Unknown") {
		t.Errorf("orphan record must export as Unknown: %s", lines[2])
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("2025-03-10", ""); got != "time-records-2025-03-10.csv" {
		t.Errorf("single day filename = %q", got)
	}
	if got := Filename("2025-03-01", "2025-03-10"); got != "time-records-2025-03-01-to-2025-03-10.csv" {
		t.Errorf("range filename = %q", got)
	}
	if got := Filename("2025-03-10", "2025-03-10"); got != "time-records-2025-03-10.csv" {
		t.Errorf("same-day range filename = %q", got)
	}
}
