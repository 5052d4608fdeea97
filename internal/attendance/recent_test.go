package attendance

import (
	"testing"
)

func entry(id string) ScanEntry {
	return ScanEntry{StudentID: id, Type: TypeIn, At: at("09:00")}
}

func TestRecentScans_Empty(t *testing.T) {
	buf := NewRecentScans(5)
	if got := buf.List(); len(got) != 0 {
		t.Fatalf("expected empty list, got %d", len(got))
	}
}

func TestRecentScans_NewestFirst(t *testing.T) {
	buf := NewRecentScans(5)
	buf.Add(entry("a"))
	buf.Add(entry("b"))
	buf.Add(entry("c"))

	got := buf.List()
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].StudentID != "c" || got[2].StudentID != "a" {
		t.Errorf("wrong order: %+v", got)
	}
}

func TestRecentScans_EvictsOldestAtCapacity(t *testing.T) {
	buf := NewRecentScans(3)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		buf.Add(entry(id))
	}
	got := buf.List()
	if len(got) != 3 {
		t.Fatalf("expected capacity 3, got %d", len(got))
	}
	if got[0].StudentID != "e" || got[1].StudentID != "d" || got[2].StudentID != "c" {
		t.Errorf("wrong eviction order: %+v", got)
	}
}

func TestRecentScans_DefaultCapacity(t *testing.T) {
	buf := NewRecentScans(0)
	for i := 0; i < 15; i++ {
		buf.Add(entry("s"))
	}
	if got := len(buf.List()); got != 10 {
		t.Fatalf("expected default capacity 10, got %d", got)
	}
}
