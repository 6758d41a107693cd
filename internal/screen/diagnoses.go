package screen

import (
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/Alijeyrad/libremedic_admin/internal/form"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

var (
	Severities        = []string{"leve", "moderado", "severo", "critico"}
	DiagnosisStatuses = []string{"Activo", "En tratamiento", "Crónico", "Resuelto"}
)

type DiagnosisForm struct {
	PatientID     string `json:"patientId"`
	DoctorID      string `json:"doctorId"`
	Diagnosis     string `json:"diagnosis"`
	Symptoms      string `json:"symptoms"`
	Treatment     string `json:"treatment"`
	Severity      string `json:"severity"`
	Status        string `json:"status"`
	DiagnosisDate string `json:"diagnosisDate"`
	FollowUpDate  string `json:"followUpDate"`
	Notes         string `json:"notes"`
}

type diagnosisPayload struct {
	PatientID     int64   `json:"patientId"`
	DoctorID      int64   `json:"doctorId"`
	Diagnosis     string  `json:"diagnosis"`
	Symptoms      string  `json:"symptoms"`
	Treatment     string  `json:"treatment"`
	Severity      string  `json:"severity"`
	Status        string  `json:"status"`
	DiagnosisDate string  `json:"diagnosisDate"`
	FollowUpDate  *string `json:"followUpDate"`
	Notes         *string `json:"notes"`
}

type DiagnosisStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Severe   int `json:"severe"`
	Resolved int `json:"resolved"`
}

var Diagnoses = Kind[clinicapi.Diagnosis, DiagnosisForm]{
	Name: "diagnoses",
	Labels: Labels{
		Title:        "Diagnósticos",
		Deleted:      "Diagnóstico eliminado exitosamente!",
		DeleteFailed: "Error al eliminar el diagnóstico",
		DeletePrompt: "¿Estás seguro de que deseas eliminar este diagnóstico? Esta acción no se puede deshacer.",
		Created:      "Diagnóstico creado exitosamente!",
		CreateFailed: "Error al crear el diagnóstico",
		Updated:      "Diagnóstico actualizado exitosamente!",
		UpdateFailed: "Error al actualizar el diagnóstico",
		LoadFailed:   "Error al cargar el diagnóstico",
	},
	ID: func(d clinicapi.Diagnosis) int64 { return d.ID },
	Match: func(d clinicapi.Diagnosis, term string) bool {
		return contains(patientName(d.Patient), term) ||
			contains(userName(d.Doctor), term) ||
			contains(d.Diagnosis, term) ||
			contains(strconv.FormatInt(d.ID, 10), term)
	},
	Blank:  func() DiagnosisForm { return DiagnosisForm{} },
	Schema: func(bool) form.Schema[DiagnosisForm] { return diagnosisSchema },
	ToForm: func(d clinicapi.Diagnosis) DiagnosisForm {
		return DiagnosisForm{
			PatientID:     formatID(d.PatientID),
			DoctorID:      formatID(d.DoctorID),
			Diagnosis:     d.Diagnosis,
			Symptoms:      d.Symptoms,
			Treatment:     d.Treatment,
			Severity:      d.Severity,
			Status:        d.Status,
			DiagnosisDate: dateOnly(d.DiagnosisDate),
			FollowUpDate:  dateOnly(deref(d.FollowUpDate)),
			Notes:         deref(d.Notes),
		}
	},
	ToPayload: func(f DiagnosisForm, _ bool) (any, error) {
		patientID, err := parseID("patientId", f.PatientID)
		if err != nil {
			return nil, err
		}
		doctorID, err := parseID("doctorId", f.DoctorID)
		if err != nil {
			return nil, err
		}
		return diagnosisPayload{
			PatientID:     patientID,
			DoctorID:      doctorID,
			Diagnosis:     f.Diagnosis,
			Symptoms:      f.Symptoms,
			Treatment:     f.Treatment,
			Severity:      f.Severity,
			Status:        f.Status,
			DiagnosisDate: f.DiagnosisDate,
			FollowUpDate:  optional(f.FollowUpDate),
			Notes:         optional(f.Notes),
		}, nil
	},
	Columns: []string{"ID", "Paciente", "Médico", "Diagnóstico", "Severidad", "Estado", "Fecha"},
	Row: func(d clinicapi.Diagnosis) []string {
		return []string{
			strconv.FormatInt(d.ID, 10),
			patientName(d.Patient),
			userName(d.Doctor),
			d.Diagnosis,
			d.Severity,
			d.Status,
			dateOnly(d.DiagnosisDate),
		}
	},
	Stats: func(items []clinicapi.Diagnosis, _ time.Time) any { return DiagnosisStatsOf(items) },
}

var diagnosisSchema = form.Schema[DiagnosisForm]{
	Fields: []form.Field[DiagnosisForm]{
		{Name: "patientId", Ref: func(f *DiagnosisForm) *string { return &f.PatientID }, Validate: form.Use[DiagnosisForm](form.All(form.Required("El paciente"), form.Digits("Paciente inválido")))},
		{Name: "doctorId", Ref: func(f *DiagnosisForm) *string { return &f.DoctorID }, Validate: form.Use[DiagnosisForm](form.All(form.Required("El médico"), form.Digits("Médico inválido")))},
		{Name: "diagnosis", Ref: func(f *DiagnosisForm) *string { return &f.Diagnosis }, Validate: form.Use[DiagnosisForm](form.Required("El diagnóstico"))},
		{Name: "symptoms", Ref: func(f *DiagnosisForm) *string { return &f.Symptoms }, Validate: form.Use[DiagnosisForm](form.RequiredMsg("Los síntomas son obligatorios"))},
		{Name: "treatment", Ref: func(f *DiagnosisForm) *string { return &f.Treatment }, Validate: form.Use[DiagnosisForm](form.Required("El tratamiento"))},
		{Name: "severity", Ref: func(f *DiagnosisForm) *string { return &f.Severity }, Validate: form.Use[DiagnosisForm](form.All(form.RequiredMsg("La severidad es obligatoria"), form.OneOf("Severidad inválida", Severities...)))},
		{Name: "status", Ref: func(f *DiagnosisForm) *string { return &f.Status }, Validate: form.Use[DiagnosisForm](form.Required("El estado"))},
		{Name: "diagnosisDate", Ref: func(f *DiagnosisForm) *string { return &f.DiagnosisDate }, Validate: form.Use[DiagnosisForm](form.All(form.RequiredMsg("La fecha de diagnóstico es obligatoria"), form.Date("Fecha de diagnóstico inválida")))},
		{Name: "followUpDate", Ref: func(f *DiagnosisForm) *string { return &f.FollowUpDate }, Validate: form.Use[DiagnosisForm](form.Optional(form.Date("Fecha de seguimiento inválida")))},
		{Name: "notes", Ref: func(f *DiagnosisForm) *string { return &f.Notes }},
	},
	Record: []form.RecordValidator[DiagnosisForm]{
		form.DateAfter("followUpDate",
			func(f DiagnosisForm) string { return f.DiagnosisDate },
			func(f DiagnosisForm) string { return f.FollowUpDate },
			"la fecha de diagnóstico", "La fecha de seguimiento"),
	},
}

func DiagnosisStatsOf(items []clinicapi.Diagnosis) DiagnosisStats {
	return DiagnosisStats{
		Total: len(items),
		Active: lo.CountBy(items, func(d clinicapi.Diagnosis) bool {
			return d.Status == "Activo" || d.Status == "En tratamiento"
		}),
		Severe: lo.CountBy(items, func(d clinicapi.Diagnosis) bool {
			return d.Severity == "severo" || d.Severity == "critico"
		}),
		Resolved: lo.CountBy(items, func(d clinicapi.Diagnosis) bool { return d.Status == "Resuelto" }),
	}
}

func patientName(p *clinicapi.Patient) string {
	if p == nil {
		return ""
	}
	return fullName(p.FirstName, p.LastName)
}

func userName(u *clinicapi.User) string {
	if u == nil {
		return ""
	}
	return fullName(u.FirstName, u.LastName)
}
