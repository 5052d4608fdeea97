package student

import (
	"errors"
	"testing"
)

func TestDisplayName(t *testing.T) {
	s := Student{LastName: "Cruz", FirstName: "Juan"}
	if got := s.DisplayName(); got != "Cruz, Juan" {
		t.Errorf("DisplayName() = %q, want %q", got, "Cruz, Juan")
	}
}

func TestActive(t *testing.T) {
	if !(Student{Status: StatusActive}).Active() {
		t.Error("active student reported inactive")
	}
	if (Student{Status: StatusInactive}).Active() {
		t.Error("inactive student reported active")
	}
	if (Student{}).Active() {
		t.Error("zero-value student must not be active")
	}
}

func TestValidateNew(t *testing.T) {
	valid := Student{
		StudentID: "2021-00042",
		LastName:  "Cruz",
		FirstName: "Juan",
		YearLevel: "3",
		Course:    "BSCS",
	}
	if err := valid.ValidateNew(); err != nil {
		t.Fatalf("valid student rejected: %v", err)
	}

	missing := valid
	missing.Course = ""
	if err := missing.ValidateNew(); !errors.Is(err, ErrMissingFields) {
		t.Errorf("missing course must fail, got %v", err)
	}

	badStatus := valid
	badStatus.Status = "suspended"
	if err := badStatus.ValidateNew(); err == nil {
		t.Error("unknown status must fail")
	}
}
