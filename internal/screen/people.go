package screen

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Alijeyrad/libremedic_admin/internal/form"
)

// parseDate accepts RFC 3339 timestamps, keeping their time of day, and
// YYYY-MM-DD, which is midnight UTC. Other values starting with a date are
// cut to it.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if len(s) > len(form.DateLayout) {
		s = s[:len(form.DateLayout)]
	}
	t, err := time.Parse(form.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// dateOnly formats a backend date for a date input, or "".
func dateOnly(s string) string {
	t, ok := parseDate(s)
	if !ok {
		return ""
	}
	return t.Format(form.DateLayout)
}

// PatientAge returns the age in whole years at now. ok is false when
// dateOfBirth cannot be parsed.
func PatientAge(dateOfBirth string, now time.Time) (age int, ok bool) {
	birth, ok := parseDate(dateOfBirth)
	if !ok {
		return 0, false
	}
	age = now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, true
}

// Initials returns the upper-cased first letters of both names.
func Initials(first, last string) string {
	var b strings.Builder
	for _, s := range []string{first, last} {
		if r, _ := utf8.DecodeRuneInString(strings.TrimSpace(s)); r != utf8.RuneError {
			b.WriteRune(r)
		}
	}
	return strings.ToUpper(b.String())
}

func GenderDisplay(gender string) string {
	switch gender {
	case "male":
		return "Masculino"
	case "female":
		return "Femenino"
	default:
		return gender
	}
}
