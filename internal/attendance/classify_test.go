package attendance

import (
	"testing"
	"time"
)

func at(hhmm string) time.Time {
	ts, err := time.Parse("2006-01-02 15:04", "2025-03-10 "+hhmm)
	if err != nil {
		panic(err)
	}
	return ts
}

func rec(typ RecordType, hhmm string, seq int64) TimeRecord {
	return TimeRecord{
		ID:        "r" + hhmm,
		StudentID: "2021-00042",
		Timestamp: at(hhmm),
		Type:      typ,
		Date:      "2025-03-10",
		Seq:       seq,
	}
}

func TestClassify_NoRecords_ReturnsCheckIn(t *testing.T) {
	if got := Classify(nil); got != TypeIn {
		t.Fatalf("expected first scan of the day to be %q, got %q", TypeIn, got)
	}
	if got := Classify([]TimeRecord{}); got != TypeIn {
		t.Fatalf("expected empty slice to classify as %q, got %q", TypeIn, got)
	}
}

func TestClassify_FlipsMostRecentType(t *testing.T) {
	tests := []struct {
		name    string
		records []TimeRecord
		want    RecordType
	}{
		{
			name:    "single check-in means next is check-out",
			records: []TimeRecord{rec(TypeIn, "09:00", 1)},
			want:    TypeOut,
		},
		{
			name:    "single check-out means next is check-in",
			records: []TimeRecord{rec(TypeOut, "09:00", 1)},
			want:    TypeIn,
		},
		{
			name: "alternating sequence flips the last type",
			records: []TimeRecord{
				rec(TypeIn, "09:00", 1),
				rec(TypeOut, "12:00", 2),
				rec(TypeIn, "13:00", 3),
			},
			want: TypeOut,
		},
		{
			name: "order of input does not matter",
			records: []TimeRecord{
				rec(TypeIn, "13:00", 3),
				rec(TypeOut, "12:00", 2),
				rec(TypeIn, "09:00", 1),
			},
			want: TypeOut,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.records); got != tc.want {
				t.Errorf("Classify() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClassify_IdenticalTimestamps_SeqBreaksTie(t *testing.T) {
	records := []TimeRecord{
		rec(TypeOut, "10:00", 2),
		rec(TypeIn, "10:00", 3),
		rec(TypeIn, "09:00", 1),
	}
	// Seq 3 is the latest insertion at 10:00, so its type wins the flip.
	if got := Classify(records); got != TypeOut {
		t.Fatalf("expected seq tiebreak to pick the later insertion, got %q", got)
	}
}

func TestSortChronological_StableOnTies(t *testing.T) {
	records := []TimeRecord{
		rec(TypeOut, "10:00", 5),
		rec(TypeIn, "10:00", 4),
		rec(TypeIn, "08:00", 1),
	}
	SortChronological(records)
	if records[0].Seq != 1 || records[1].Seq != 4 || records[2].Seq != 5 {
		t.Fatalf("unexpected order: %+v", records)
	}
}
