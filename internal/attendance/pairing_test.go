package attendance

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestPairAndSum_TwoFullSessions(t *testing.T) {
	records := []TimeRecord{
		rec(TypeIn, "09:00", 1),
		rec(TypeOut, "12:00", 2),
		rec(TypeIn, "13:00", 3),
		rec(TypeOut, "17:00", 4),
	}

	sum, err := PairAndSum(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sum.Total.String(); got != "7h 0m" {
		t.Errorf("total = %s, want 7h 0m", got)
	}
	if len(sum.CheckIns) != 2 || len(sum.CheckOuts) != 2 {
		t.Errorf("expected 2 check-ins and 2 check-outs, got %d/%d", len(sum.CheckIns), len(sum.CheckOuts))
	}
}

func TestPairAndSum_DoubleCheckInSharesNothing(t *testing.T) {
	// The second check-in must not consume the same check-out as the first.
	records := []TimeRecord{
		rec(TypeIn, "09:00", 1),
		rec(TypeIn, "09:30", 2),
		rec(TypeOut, "10:00", 3),
	}

	sum, err := PairAndSum(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sum.Total.String(); got != "1h 0m" {
		t.Errorf("total = %s, want 1h 0m (earliest check-in takes the check-out)", got)
	}
}

func TestPairAndSum_LoneCheckOutReportedUnpaired(t *testing.T) {
	sum, err := PairAndSum([]TimeRecord{rec(TypeOut, "09:00", 1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sum.Total.String(); got != "0h 0m" {
		t.Errorf("total = %s, want 0h 0m", got)
	}
	if len(sum.CheckOuts) != 1 {
		t.Errorf("lone check-out must still be reported, got %d", len(sum.CheckOuts))
	}
}

func TestPairAndSum_UnpairedCheckInContributesNothing(t *testing.T) {
	records := []TimeRecord{
		rec(TypeIn, "09:00", 1),
		rec(TypeOut, "10:00", 2),
		rec(TypeIn, "11:00", 3), // student still present
	}
	sum, err := PairAndSum(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sum.Total.String(); got != "1h 0m" {
		t.Errorf("total = %s, want 1h 0m", got)
	}
}

func TestPairAndSum_CheckOutBeforeCheckInNeverPairs(t *testing.T) {
	// Pairing requires the check-out to be strictly after the check-in.
	records := []TimeRecord{
		rec(TypeOut, "08:00", 1),
		rec(TypeIn, "09:00", 2),
	}
	sum, err := PairAndSum(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Total != 0 {
		t.Errorf("total = %s, want 0h 0m", sum.Total)
	}
}

func TestPairAndSum_IdenticalTimestampsDoNotPair(t *testing.T) {
	records := []TimeRecord{
		rec(TypeIn, "09:00", 1),
		rec(TypeOut, "09:00", 2),
	}
	sum, err := PairAndSum(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Total != 0 {
		t.Errorf("equal timestamps must not pair, total = %s", sum.Total)
	}
}

func TestPairAndSum_MinutesFloored(t *testing.T) {
	in := rec(TypeIn, "09:00", 1)
	out := rec(TypeOut, "09:00", 2)
	out.Timestamp = in.Timestamp.Add(90*time.Minute + 45*time.Second)

	sum, err := PairAndSum([]TimeRecord{in, out})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sum.Total.String(); got != "1h 30m" {
		t.Errorf("total = %s, want 1h 30m (seconds floored)", got)
	}
}

func TestPairAndSum_Idempotent(t *testing.T) {
	records := []TimeRecord{
		rec(TypeIn, "09:00", 1),
		rec(TypeOut, "12:00", 2),
		rec(TypeIn, "13:00", 3),
	}
	first, err := PairAndSum(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := PairAndSum(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestPairAndSum_InvalidTypeRejected(t *testing.T) {
	bad := rec(TypeIn, "09:00", 1)
	bad.Type = "lunch"
	_, err := PairAndSum([]TimeRecord{bad})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestPairAndSum_ZeroTimestampRejected(t *testing.T) {
	bad := TimeRecord{ID: "x", StudentID: "2021-00042", Type: TypeIn, Date: "2025-03-10"}
	_, err := PairAndSum([]TimeRecord{bad})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestBuildDayReport_GroupsPerStudent(t *testing.T) {
	a1 := rec(TypeIn, "09:00", 1)
	a2 := rec(TypeOut, "10:00", 2)
	b1 := rec(TypeIn, "09:15", 3)
	b1.StudentID = "2021-00007"

	summaries, err := BuildDayReport([]TimeRecord{b1, a1, a2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 students, got %d", len(summaries))
	}
	if summaries[0].StudentID != "2021-00007" || summaries[1].StudentID != "2021-00042" {
		t.Errorf("summaries not ordered by student id: %+v", summaries)
	}
	if summaries[1].Total.String() != "1h 0m" {
		t.Errorf("student 2021-00042 total = %s, want 1h 0m", summaries[1].Total)
	}
	if summaries[0].Total != 0 {
		t.Errorf("unpaired student total = %s, want 0h 0m", summaries[0].Total)
	}
}

func TestUniqueCheckInCounts(t *testing.T) {
	a1 := rec(TypeIn, "09:00", 1)
	a2 := rec(TypeIn, "13:00", 2) // same student twice, counts once
	a3 := rec(TypeOut, "17:00", 3)
	b1 := rec(TypeIn, "09:15", 4)
	b1.StudentID = "2021-00007"
	c1 := rec(TypeIn, "09:00", 5)
	c1.Date = "2025-03-11"

	counts := UniqueCheckInCounts([]TimeRecord{a1, a2, a3, b1, c1})
	if counts["2025-03-10"] != 2 {
		t.Errorf("2025-03-10 count = %d, want 2", counts["2025-03-10"])
	}
	if counts["2025-03-11"] != 1 {
		t.Errorf("2025-03-11 count = %d, want 1", counts["2025-03-11"])
	}
}

func TestDurationString(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0h 0m"},
		{45 * time.Minute, "0h 45m"},
		{7 * time.Hour, "7h 0m"},
		{26*time.Hour + 5*time.Minute, "26h 5m"},
	}
	for _, tc := range tests {
		if got := Duration(tc.d).String(); got != tc.want {
			t.Errorf("Duration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
