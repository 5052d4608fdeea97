package attendance

import (
	"fmt"
	"sort"
	"time"
)

// DaySummary is the derived pairing result for one student on one day.
// It is recomputed on every query and never persisted.
type DaySummary struct {
	StudentID string       `json:"student_id"`
	CheckIns  []TimeRecord `json:"check_ins"`
	CheckOuts []TimeRecord `json:"check_outs"`
	Total     Duration     `json:"total_duration"`
}

// Duration renders as whole hours and floored minutes, e.g. "7h 0m".
type Duration time.Duration

// String formats the duration the way record views display it.
func (d Duration) String() string {
	hours := time.Duration(d) / time.Hour
	minutes := (time.Duration(d) % time.Hour) / time.Minute
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// MarshalJSON emits the display form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// PairAndSum pairs one student's check-ins with subsequent check-outs for a
// single day and sums the paired durations.
//
// Greedy earliest-available matching: check-ins are walked in ascending
// timestamp order and each takes the earliest unconsumed check-out strictly
// after it. A check-in with no later check-out stays unpaired (student still
// present); a check-out with no earlier check-in contributes no duration but
// is still reported. The total is never negative.
func PairAndSum(records []TimeRecord) (DaySummary, error) {
	var sum DaySummary
	for _, r := range records {
		if !r.Type.Valid() || r.Timestamp.IsZero() {
			return DaySummary{}, fmt.Errorf("%w: id=%s", ErrInvalidRecord, r.ID)
		}
		if sum.StudentID == "" {
			sum.StudentID = r.StudentID
		}
		switch r.Type {
		case TypeIn:
			sum.CheckIns = append(sum.CheckIns, r)
		case TypeOut:
			sum.CheckOuts = append(sum.CheckOuts, r)
		}
	}
	SortChronological(sum.CheckIns)
	SortChronological(sum.CheckOuts)

	var total time.Duration
	consumed := make([]bool, len(sum.CheckOuts))
	for _, in := range sum.CheckIns {
		for i, out := range sum.CheckOuts {
			if consumed[i] || !out.Timestamp.After(in.Timestamp) {
				continue
			}
			total += out.Timestamp.Sub(in.Timestamp)
			consumed[i] = true
			break
		}
	}
	sum.Total = Duration(total)
	return sum, nil
}

// BuildDayReport groups a day's records by student and pairs each group.
// Results come back ordered by student id; callers that join in student
// names re-sort for display.
func BuildDayReport(records []TimeRecord) ([]DaySummary, error) {
	byStudent := make(map[string][]TimeRecord)
	order := make([]string, 0)
	for _, r := range records {
		if _, seen := byStudent[r.StudentID]; !seen {
			order = append(order, r.StudentID)
		}
		byStudent[r.StudentID] = append(byStudent[r.StudentID], r)
	}
	sort.Strings(order)

	summaries := make([]DaySummary, 0, len(order))
	for _, id := range order {
		sum, err := PairAndSum(byStudent[id])
		if err != nil {
			return nil, err
		}
		sum.StudentID = id
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

// UniqueCheckInCounts counts, per calendar day, the distinct students with
// at least one check-in. Feeds the daily report chart.
func UniqueCheckInCounts(records []TimeRecord) map[string]int {
	seen := make(map[string]map[string]bool)
	for _, r := range records {
		if r.Type != TypeIn {
			continue
		}
		if seen[r.Date] == nil {
			seen[r.Date] = make(map[string]bool)
		}
		seen[r.Date][r.StudentID] = true
	}
	counts := make(map[string]int, len(seen))
	for date, students := range seen {
		counts[date] = len(students)
	}
	return counts
}
