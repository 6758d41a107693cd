package form

import (
	"regexp"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
)

// Rule validates a single value and returns "" when it is valid.
type Rule func(value string) string

// DateLayout is the layout of every date input.
const DateLayout = "2006-01-02"

// DefaultPhoneRegion is used to parse phone numbers without a country prefix.
const DefaultPhoneRegion = "ES"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s()\-]+$`)
	dniPattern   = regexp.MustCompile(`(?i)^[0-9]{8}[TRWAGMYFPDXBNJZSQVHLCKE]$`)
	niePattern   = regexp.MustCompile(`(?i)^[XYZ][0-9]{7}[TRWAGMYFPDXBNJZSQVHLCKE]$`)
	icd10Pattern = regexp.MustCompile(`^[A-Z]\d{2}(\.\d{1,2})?$`)
)

// Use adapts a Rule to a field validator that ignores the rest of the record.
func Use[T any](r Rule) Validator[T] {
	return func(value string, _ T) string { return r(value) }
}

// Required fails on blank values with "<label> es obligatorio".
func Required(label string) Rule {
	return RequiredMsg(label + " es obligatorio")
}

// RequiredMsg fails on blank values with msg.
func RequiredMsg(msg string) Rule {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return msg
		}
		return ""
	}
}

// Optional runs r only on non-blank values.
func Optional(r Rule) Rule {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return ""
		}
		return r(value)
	}
}

// All runs rules in order and returns the first message.
func All(rules ...Rule) Rule {
	return func(value string) string {
		for _, r := range rules {
			if msg := r(value); msg != "" {
				return msg
			}
		}
		return ""
	}
}

func Email(value string) string {
	if strings.TrimSpace(value) == "" {
		return "El email es obligatorio"
	}
	if !emailPattern.MatchString(value) {
		return "Formato de email inválido"
	}
	return ""
}

// Phone accepts digits, spaces, dashes and parentheses with an optional
// leading +, and the result must parse as a phone number.
func Phone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "El teléfono es obligatorio"
	}
	if !phonePattern.MatchString(value) {
		return "Formato de teléfono inválido"
	}
	if _, err := phonenumbers.Parse(value, DefaultPhoneRegion); err != nil {
		return "Formato de teléfono inválido"
	}
	return ""
}

// DNI accepts a Spanish DNI or NIE by shape.
func DNI(value string) string {
	if strings.TrimSpace(value) == "" {
		return "El DNI/NIE es obligatorio"
	}
	if !dniPattern.MatchString(value) && !niePattern.MatchString(value) {
		return "Formato de DNI/NIE inválido"
	}
	return ""
}

// AgeAt checks a birth date against now: the year difference must be
// between 0 and 150.
func AgeAt(now func() time.Time) Rule {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return "La fecha de nacimiento es obligatoria"
		}
		birth, err := time.Parse(DateLayout, strings.TrimSpace(value))
		if err != nil {
			return "Fecha de nacimiento inválida"
		}
		age := now().Year() - birth.Year()
		if age < 0 || age > 150 {
			return "Fecha de nacimiento inválida"
		}
		return ""
	}
}

// Age is AgeAt with the wall clock.
func Age(value string) string { return AgeAt(time.Now)(value) }

// ICD10 is optional; when present it must look like J06.9.
func ICD10(value string) string {
	if value != "" && !icd10Pattern.MatchString(value) {
		return "Formato de código CIE-10 inválido (ej: J06.9)"
	}
	return ""
}

// Date fails with msg unless value is a YYYY-MM-DD date.
func Date(msg string) Rule {
	return func(value string) string {
		if _, err := time.Parse(DateLayout, strings.TrimSpace(value)); err != nil {
			return msg
		}
		return ""
	}
}

// TimeOfDay fails with msg unless value is HH:MM.
func TimeOfDay(msg string) Rule {
	return func(value string) string {
		if _, err := time.Parse("15:04", strings.TrimSpace(value)); err != nil {
			return msg
		}
		return ""
	}
}

// OneOf fails with msg unless value is one of allowed.
func OneOf(msg string, allowed ...string) Rule {
	return func(value string) string {
		for _, a := range allowed {
			if value == a {
				return ""
			}
		}
		return msg
	}
}

// Digits fails with msg unless value is a non-negative integer.
func Digits(msg string) Rule {
	return func(value string) string {
		v := strings.TrimSpace(value)
		if v == "" {
			return msg
		}
		for _, r := range v {
			if r < '0' || r > '9' {
				return msg
			}
		}
		return ""
	}
}

// DateAfter reports on field when the end date is not strictly after the
// start date. Missing or unparseable dates are left to per-field rules.
func DateAfter[T any](field string, start, end func(T) string, startLabel, endLabel string) RecordValidator[T] {
	return func(record T) []FieldError {
		s, errS := time.Parse(DateLayout, strings.TrimSpace(start(record)))
		e, errE := time.Parse(DateLayout, strings.TrimSpace(end(record)))
		if errS != nil || errE != nil {
			return nil
		}
		if !e.After(s) {
			return []FieldError{{Field: field, Message: endLabel + " debe ser posterior a " + startLabel}}
		}
		return nil
	}
}

// Matches reports msg on field when the two values differ.
func Matches[T any](field string, a, b func(T) string, msg string) RecordValidator[T] {
	return func(record T) []FieldError {
		if a(record) != b(record) {
			return []FieldError{{Field: field, Message: msg}}
		}
		return nil
	}
}
