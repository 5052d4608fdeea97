package attendance

import "sort"

// Classify decides whether the next scan for a student is a check-in or a
// check-out, given that student's existing records for the current day.
// No records means check-in; otherwise the most recent record's type is
// flipped. Pure function: the caller persists the resulting record.
func Classify(records []TimeRecord) RecordType {
	if len(records) == 0 {
		return TypeIn
	}
	latest := Latest(records)
	return latest.Type.Flip()
}

// Latest returns the most recent record, ordering by timestamp and
// breaking timestamp ties with the insertion sequence number.
func Latest(records []TimeRecord) TimeRecord {
	latest := records[0]
	for _, r := range records[1:] {
		if r.Timestamp.After(latest.Timestamp) ||
			(r.Timestamp.Equal(latest.Timestamp) && r.Seq > latest.Seq) {
			latest = r
		}
	}
	return latest
}

// SortChronological orders records by (timestamp, seq) ascending in place.
func SortChronological(records []TimeRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Timestamp.Equal(records[j].Timestamp) {
			return records[i].Seq < records[j].Seq
		}
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
}
