package screen

import (
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/Alijeyrad/libremedic_admin/internal/form"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

// PrescriptionState is derived from the end date; the backend does not
// store it.
type PrescriptionState string

const (
	PrescriptionActive   PrescriptionState = "Activa"
	PrescriptionExpiring PrescriptionState = "Por Vencer"
	PrescriptionExpired  PrescriptionState = "Vencida"
)

// ExpiringWindow is how close to its end date a prescription is reported
// as expiring.
const ExpiringWindow = 7 * 24 * time.Hour

// PrescriptionStatus classifies a prescription by its end date. An absent
// or unparseable end date means the prescription is open-ended.
func PrescriptionStatus(endDate *string, now time.Time) PrescriptionState {
	if endDate == nil {
		return PrescriptionActive
	}
	end, ok := parseDate(*endDate)
	if !ok {
		return PrescriptionActive
	}
	switch {
	case end.Before(now):
		return PrescriptionExpired
	case end.Sub(now) < ExpiringWindow:
		return PrescriptionExpiring
	default:
		return PrescriptionActive
	}
}

type PrescriptionForm struct {
	PatientID    string `json:"patientId"`
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Instructions string `json:"instructions"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	PrescribedBy string `json:"prescribedBy"`
}

type prescriptionPayload struct {
	PatientID    int64   `json:"patientId"`
	Medication   string  `json:"medication"`
	Dosage       string  `json:"dosage"`
	Frequency    string  `json:"frequency"`
	Instructions string  `json:"instructions"`
	StartDate    string  `json:"startDate"`
	EndDate      *string `json:"endDate"`
	PrescribedBy int64   `json:"prescribedBy"`
}

type PrescriptionStats struct {
	Total    int                       `json:"total"`
	ByStatus map[PrescriptionState]int `json:"byStatus"`
}

var Prescriptions = Kind[clinicapi.Prescription, PrescriptionForm]{
	Name: "prescriptions",
	Labels: Labels{
		Title:        "Prescripciones",
		Deleted:      "Prescripción eliminada exitosamente!",
		DeleteFailed: "Error al eliminar la prescripción",
		DeletePrompt: "¿Estás seguro de que deseas eliminar esta prescripción? Esta acción no se puede deshacer.",
		Created:      "Prescripción creada exitosamente!",
		CreateFailed: "Error al crear la prescripción",
		Updated:      "Prescripción actualizada exitosamente!",
		UpdateFailed: "Error al actualizar la prescripción",
		LoadFailed:   "Error al cargar la prescripción",
	},
	ID: func(p clinicapi.Prescription) int64 { return p.ID },
	Match: func(p clinicapi.Prescription, term string) bool {
		return contains(p.Medication, term) ||
			contains(userName(p.User), term) ||
			contains(strconv.FormatInt(p.ID, 10), term)
	},
	Blank:  func() PrescriptionForm { return PrescriptionForm{} },
	Schema: func(bool) form.Schema[PrescriptionForm] { return prescriptionSchema },
	ToForm: func(p clinicapi.Prescription) PrescriptionForm {
		return PrescriptionForm{
			PatientID:    formatID(p.PatientID),
			Medication:   p.Medication,
			Dosage:       p.Dosage,
			Frequency:    p.Frequency,
			Instructions: p.Instructions,
			StartDate:    dateOnly(p.StartDate),
			EndDate:      dateOnly(deref(p.EndDate)),
			PrescribedBy: formatID(p.PrescribedBy),
		}
	},
	ToPayload: func(f PrescriptionForm, _ bool) (any, error) {
		patientID, err := parseID("patientId", f.PatientID)
		if err != nil {
			return nil, err
		}
		doctorID, err := parseID("prescribedBy", f.PrescribedBy)
		if err != nil {
			return nil, err
		}
		return prescriptionPayload{
			PatientID:    patientID,
			Medication:   f.Medication,
			Dosage:       f.Dosage,
			Frequency:    f.Frequency,
			Instructions: f.Instructions,
			StartDate:    f.StartDate,
			EndDate:      optional(f.EndDate),
			PrescribedBy: doctorID,
		}, nil
	},
	Columns: []string{"ID", "Medicamento", "Dosis", "Frecuencia", "Médico", "Inicio", "Fin", "Estado"},
	Row: func(p clinicapi.Prescription) []string {
		return []string{
			strconv.FormatInt(p.ID, 10),
			p.Medication,
			p.Dosage,
			p.Frequency,
			userName(p.User),
			dateOnly(p.StartDate),
			dateOnly(deref(p.EndDate)),
			string(PrescriptionStatus(p.EndDate, time.Now())),
		}
	},
	Stats: func(items []clinicapi.Prescription, now time.Time) any { return PrescriptionStatsOf(items, now) },
}

var prescriptionSchema = form.Schema[PrescriptionForm]{
	Fields: []form.Field[PrescriptionForm]{
		{Name: "patientId", Ref: func(f *PrescriptionForm) *string { return &f.PatientID }, Validate: form.Use[PrescriptionForm](form.All(form.Required("El paciente"), form.Digits("Paciente inválido")))},
		{Name: "medication", Ref: func(f *PrescriptionForm) *string { return &f.Medication }, Validate: form.Use[PrescriptionForm](form.Required("El medicamento"))},
		{Name: "dosage", Ref: func(f *PrescriptionForm) *string { return &f.Dosage }, Validate: form.Use[PrescriptionForm](form.RequiredMsg("La dosis es obligatoria"))},
		{Name: "frequency", Ref: func(f *PrescriptionForm) *string { return &f.Frequency }, Validate: form.Use[PrescriptionForm](form.RequiredMsg("La frecuencia es obligatoria"))},
		{Name: "instructions", Ref: func(f *PrescriptionForm) *string { return &f.Instructions }, Validate: form.Use[PrescriptionForm](form.RequiredMsg("Las instrucciones son obligatorias"))},
		{Name: "startDate", Ref: func(f *PrescriptionForm) *string { return &f.StartDate }, Validate: form.Use[PrescriptionForm](form.All(form.RequiredMsg("La fecha de inicio es obligatoria"), form.Date("Fecha de inicio inválida")))},
		{Name: "endDate", Ref: func(f *PrescriptionForm) *string { return &f.EndDate }, Validate: form.Use[PrescriptionForm](form.Optional(form.Date("Fecha de fin inválida")))},
		{Name: "prescribedBy", Ref: func(f *PrescriptionForm) *string { return &f.PrescribedBy }, Validate: form.Use[PrescriptionForm](form.All(form.Required("El médico"), form.Digits("Médico inválido")))},
	},
	Record: []form.RecordValidator[PrescriptionForm]{
		form.DateAfter("endDate",
			func(f PrescriptionForm) string { return f.StartDate },
			func(f PrescriptionForm) string { return f.EndDate },
			"la fecha de inicio", "La fecha de fin"),
	},
}

func PrescriptionStatsOf(items []clinicapi.Prescription, now time.Time) PrescriptionStats {
	return PrescriptionStats{
		Total: len(items),
		ByStatus: lo.CountValuesBy(items, func(p clinicapi.Prescription) PrescriptionState {
			return PrescriptionStatus(p.EndDate, now)
		}),
	}
}
