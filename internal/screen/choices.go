package screen

import (
	"context"
	"strconv"

	"github.com/samber/lo"

	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

// Lister fetches a whole collection.
type Lister[T any] interface {
	List(ctx context.Context) clinicapi.Envelope[[]T]
}

// Option is one entry of a select input.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Choices are the patient and doctor selects of the diagnosis, prescription
// and appointment forms.
type Choices struct {
	Patients []Option `json:"patients"`
	Doctors  []Option `json:"doctors"`
}

// LoadChoices fetches both collections. A failed fetch leaves its select
// empty; the form stays usable.
func LoadChoices(ctx context.Context, patients Lister[clinicapi.Patient], doctors Lister[clinicapi.User]) Choices {
	ch := Choices{Patients: []Option{}, Doctors: []Option{}}

	if env := patients.List(ctx); env.Success {
		ch.Patients = lo.Map(env.Data, func(p clinicapi.Patient, _ int) Option {
			return Option{Value: strconv.FormatInt(p.ID, 10), Label: fullName(p.FirstName, p.LastName)}
		})
	}
	if env := doctors.List(ctx); env.Success {
		ch.Doctors = lo.Map(env.Data, func(u clinicapi.User, _ int) Option {
			label := fullName(u.FirstName, u.LastName)
			if u.Specialty != "" {
				label += " - " + u.Specialty
			}
			return Option{Value: strconv.FormatInt(u.ID, 10), Label: label}
		})
	}
	return ch
}
