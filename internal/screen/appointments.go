package screen

import (
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/Alijeyrad/libremedic_admin/internal/form"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

var AppointmentStatuses = []string{"programada", "confirmada", "en progreso", "completada", "cancelada"}

type AppointmentForm struct {
	PatientID       string `json:"patientId"`
	DoctorID        string `json:"doctorId"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Reason          string `json:"reason"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
}

type appointmentPayload struct {
	PatientID       int64   `json:"patientId"`
	DoctorID        int64   `json:"doctorId"`
	AppointmentDate string  `json:"appointmentDate"`
	AppointmentTime string  `json:"appointmentTime"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes"`
}

type AppointmentStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}

var Appointments = Kind[clinicapi.Appointment, AppointmentForm]{
	Name: "appointments",
	Labels: Labels{
		Title:        "Citas",
		Deleted:      "Cita eliminada exitosamente!",
		DeleteFailed: "Error al eliminar la cita",
		DeletePrompt: "¿Estás seguro de que deseas eliminar esta cita? Esta acción no se puede deshacer.",
		Created:      "Cita creada exitosamente!",
		CreateFailed: "Error al crear la cita",
		Updated:      "Cita actualizada exitosamente!",
		UpdateFailed: "Error al actualizar la cita",
		LoadFailed:   "Error al cargar la cita",
	},
	ID: func(a clinicapi.Appointment) int64 { return a.ID },
	Match: func(a clinicapi.Appointment, term string) bool {
		return contains(a.Reason, term) ||
			contains(patientName(a.Patient), term) ||
			contains(userName(a.Doctor), term) ||
			contains(a.Status, term)
	},
	Blank:  func() AppointmentForm { return AppointmentForm{Status: "programada"} },
	Schema: func(bool) form.Schema[AppointmentForm] { return appointmentSchema },
	ToForm: func(a clinicapi.Appointment) AppointmentForm {
		return AppointmentForm{
			PatientID:       formatID(a.PatientID),
			DoctorID:        formatID(a.DoctorID),
			AppointmentDate: dateOnly(a.AppointmentDate),
			AppointmentTime: a.AppointmentTime,
			Reason:          a.Reason,
			Status:          strings.ToLower(a.Status),
			Notes:           deref(a.Notes),
		}
	},
	ToPayload: func(f AppointmentForm, _ bool) (any, error) {
		patientID, err := parseID("patientId", f.PatientID)
		if err != nil {
			return nil, err
		}
		doctorID, err := parseID("doctorId", f.DoctorID)
		if err != nil {
			return nil, err
		}
		return appointmentPayload{
			PatientID:       patientID,
			DoctorID:        doctorID,
			AppointmentDate: f.AppointmentDate,
			AppointmentTime: f.AppointmentTime,
			Reason:          f.Reason,
			Status:          f.Status,
			Notes:           optional(f.Notes),
		}, nil
	},
	Columns: []string{"ID", "Paciente", "Médico", "Fecha", "Hora", "Motivo", "Estado"},
	Row: func(a clinicapi.Appointment) []string {
		return []string{
			strconv.FormatInt(a.ID, 10),
			patientName(a.Patient),
			userName(a.Doctor),
			dateOnly(a.AppointmentDate),
			a.AppointmentTime,
			a.Reason,
			a.Status,
		}
	},
	Stats: func(items []clinicapi.Appointment, _ time.Time) any { return AppointmentStatsOf(items) },
}

var appointmentSchema = form.Schema[AppointmentForm]{
	Fields: []form.Field[AppointmentForm]{
		{Name: "patientId", Ref: func(f *AppointmentForm) *string { return &f.PatientID }, Validate: form.Use[AppointmentForm](form.All(form.Required("El paciente"), form.Digits("Paciente inválido")))},
		{Name: "doctorId", Ref: func(f *AppointmentForm) *string { return &f.DoctorID }, Validate: form.Use[AppointmentForm](form.All(form.Required("El médico"), form.Digits("Médico inválido")))},
		{Name: "appointmentDate", Ref: func(f *AppointmentForm) *string { return &f.AppointmentDate }, Validate: form.Use[AppointmentForm](form.All(form.RequiredMsg("La fecha es obligatoria"), form.Date("Fecha inválida")))},
		{Name: "appointmentTime", Ref: func(f *AppointmentForm) *string { return &f.AppointmentTime }, Validate: form.Use[AppointmentForm](form.All(form.RequiredMsg("La hora es obligatoria"), form.TimeOfDay("Hora inválida")))},
		{Name: "reason", Ref: func(f *AppointmentForm) *string { return &f.Reason }, Validate: form.Use[AppointmentForm](form.Required("El motivo"))},
		{Name: "status", Ref: func(f *AppointmentForm) *string { return &f.Status }, Validate: form.Use[AppointmentForm](form.OneOf("Estado inválido", AppointmentStatuses...))},
		{Name: "notes", Ref: func(f *AppointmentForm) *string { return &f.Notes }},
	},
}

// AppointmentStatsOf counts appointments per lower-cased status.
func AppointmentStatsOf(items []clinicapi.Appointment) AppointmentStats {
	return AppointmentStats{
		Total: len(items),
		ByStatus: lo.CountValuesBy(items, func(a clinicapi.Appointment) string {
			return strings.ToLower(a.Status)
		}),
	}
}
