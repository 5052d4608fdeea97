package attendance

import (
	"sync"
	"time"
)

// ScanEntry is what the scan feed shows for one processed scan.
type ScanEntry struct {
	StudentID   string     `json:"student_id"`
	StudentName string     `json:"student_name"`
	Type        RecordType `json:"type"`
	At          time.Time  `json:"at"`
}

// RecentScans is a bounded ring buffer of the latest scan results, owned by
// the scan handler. Safe for concurrent use.
type RecentScans struct {
	mu      sync.Mutex
	entries []ScanEntry
	next    int
	full    bool
}

// NewRecentScans creates a buffer holding at most capacity entries.
func NewRecentScans(capacity int) *RecentScans {
	if capacity <= 0 {
		capacity = 10
	}
	return &RecentScans{entries: make([]ScanEntry, capacity)}
}

// Add records one scan, evicting the oldest entry when full.
func (r *RecentScans) Add(e ScanEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.next] = e
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
}

// List returns entries newest first.
func (r *RecentScans) List() []ScanEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	size := r.next
	if r.full {
		size = len(r.entries)
	}
	out := make([]ScanEntry, 0, size)
	for i := 1; i <= size; i++ {
		idx := (r.next - i + len(r.entries)) % len(r.entries)
		out = append(out, r.entries[idx])
	}
	return out
}
