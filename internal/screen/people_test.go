package screen

import (
	"testing"
	"time"
)

func TestPatientAge(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		dob    string
		want   int
		wantOK bool
	}{
		{"1990-10-18", 36, true},
		{"1990-10-19", 35, true},
		{"1990-11-01", 35, true},
		{"1990-01-31", 36, true},
		{"1990-10-18T00:00:00.000Z", 36, true},
		{"", 0, false},
		{"18/10/1990", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.dob, func(t *testing.T) {
			got, ok := PatientAge(tt.dob, now)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("PatientAge(%q) = %d, %v; want %d, %v", tt.dob, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestInitials(t *testing.T) {
	tests := []struct{ first, last, want string }{
		{"maría", "gonzález", "MG"},
		{"Álvaro", "Órtiz", "ÁÓ"},
		{"Ana", "", "A"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := Initials(tt.first, tt.last); got != tt.want {
			t.Errorf("Initials(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestGenderDisplay(t *testing.T) {
	tests := map[string]string{"male": "Masculino", "female": "Femenino", "otro": "otro", "": ""}
	for in, want := range tests {
		if got := GenderDisplay(in); got != want {
			t.Errorf("GenderDisplay(%q) = %q, want %q", in, got, want)
		}
	}
}
