package screen

import (
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/Alijeyrad/libremedic_admin/internal/form"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

type PatientForm struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Identification   string `json:"identification"`
	DateOfBirth      string `json:"dateOfBirth"`
	Gender           string `json:"gender"`
	BloodType        string `json:"bloodType"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergencyContact"`
	EmergencyPhone   string `json:"emergencyPhone"`
	Allergies        string `json:"allergies"`
	MedicalHistory   string `json:"medicalHistory"`
}

type PatientStats struct {
	Total         int `json:"total"`
	Male          int `json:"male"`
	Female        int `json:"female"`
	MalePercent   int `json:"malePercent"`
	AverageAge    int `json:"averageAge"`
	WithAllergies int `json:"withAllergies"`
}

var Patients = Kind[clinicapi.Patient, PatientForm]{
	Name: "patients",
	Labels: Labels{
		Title:        "Pacientes",
		Deleted:      "Paciente eliminado exitosamente!",
		DeleteFailed: "Error al eliminar el paciente",
		DeletePrompt: "¿Estás seguro de que deseas eliminar este paciente? Esta acción no se puede deshacer.",
		Created:      "Paciente creado exitosamente!",
		CreateFailed: "Error al crear el paciente",
		Updated:      "Paciente actualizado exitosamente!",
		UpdateFailed: "Error al actualizar el paciente",
		LoadFailed:   "Error al cargar el paciente",
	},
	ID: func(p clinicapi.Patient) int64 { return p.ID },
	Match: func(p clinicapi.Patient, term string) bool {
		return contains(fullName(p.FirstName, p.LastName), term) ||
			contains(p.Email, term) ||
			contains(p.Phone, term)
	},
	Blank:  func() PatientForm { return PatientForm{} },
	Schema: func(bool) form.Schema[PatientForm] { return patientSchema },
	ToForm: func(p clinicapi.Patient) PatientForm {
		return PatientForm{
			FirstName:        p.FirstName,
			LastName:         p.LastName,
			Email:            p.Email,
			Phone:            p.Phone,
			Identification:   p.Identification,
			DateOfBirth:      dateOnly(p.DateOfBirth),
			Gender:           p.Gender,
			BloodType:        p.BloodType,
			Address:          p.Address,
			EmergencyContact: p.EmergencyContact,
			EmergencyPhone:   p.EmergencyPhone,
			Allergies:        p.Allergies,
			MedicalHistory:   p.MedicalHistory,
		}
	},
	ToPayload: func(f PatientForm, _ bool) (any, error) {
		return clinicapi.Patient{
			FirstName:        f.FirstName,
			LastName:         f.LastName,
			Email:            f.Email,
			Phone:            f.Phone,
			Identification:   f.Identification,
			DateOfBirth:      f.DateOfBirth,
			Gender:           f.Gender,
			BloodType:        f.BloodType,
			Address:          f.Address,
			EmergencyContact: f.EmergencyContact,
			EmergencyPhone:   f.EmergencyPhone,
			Allergies:        f.Allergies,
			MedicalHistory:   f.MedicalHistory,
		}, nil
	},
	Columns: []string{"ID", "Nombre", "Email", "Teléfono", "Género", "Edad"},
	Row: func(p clinicapi.Patient) []string {
		age := ""
		if n, ok := PatientAge(p.DateOfBirth, time.Now()); ok {
			age = strconv.Itoa(n)
		}
		return []string{
			strconv.FormatInt(p.ID, 10),
			fullName(p.FirstName, p.LastName),
			p.Email,
			p.Phone,
			GenderDisplay(p.Gender),
			age,
		}
	},
	Stats: func(items []clinicapi.Patient, now time.Time) any { return PatientStatsOf(items, now) },
}

var patientSchema = form.Schema[PatientForm]{
	Fields: []form.Field[PatientForm]{
		{Name: "firstName", Ref: func(f *PatientForm) *string { return &f.FirstName }, Validate: form.Use[PatientForm](form.Required("El nombre"))},
		{Name: "lastName", Ref: func(f *PatientForm) *string { return &f.LastName }, Validate: form.Use[PatientForm](form.RequiredMsg("Los apellidos son obligatorios"))},
		{Name: "email", Ref: func(f *PatientForm) *string { return &f.Email }, Validate: form.Use[PatientForm](form.Email)},
		{Name: "phone", Ref: func(f *PatientForm) *string { return &f.Phone }, Validate: form.Use[PatientForm](form.Phone)},
		{Name: "identification", Ref: func(f *PatientForm) *string { return &f.Identification }, Validate: form.Use[PatientForm](form.Optional(form.DNI))},
		{Name: "dateOfBirth", Ref: func(f *PatientForm) *string { return &f.DateOfBirth }, Validate: form.Use[PatientForm](form.Age)},
		{Name: "gender", Ref: func(f *PatientForm) *string { return &f.Gender }, Validate: form.Use[PatientForm](form.Required("El género"))},
		{Name: "bloodType", Ref: func(f *PatientForm) *string { return &f.BloodType }},
		{Name: "address", Ref: func(f *PatientForm) *string { return &f.Address }},
		{Name: "emergencyContact", Ref: func(f *PatientForm) *string { return &f.EmergencyContact }},
		{Name: "emergencyPhone", Ref: func(f *PatientForm) *string { return &f.EmergencyPhone }, Validate: form.Use[PatientForm](form.Optional(form.Phone))},
		{Name: "allergies", Ref: func(f *PatientForm) *string { return &f.Allergies }},
		{Name: "medicalHistory", Ref: func(f *PatientForm) *string { return &f.MedicalHistory }},
	},
}

func PatientStatsOf(items []clinicapi.Patient, now time.Time) PatientStats {
	st := PatientStats{
		Total:  len(items),
		Male:   lo.CountBy(items, func(p clinicapi.Patient) bool { return p.Gender == "male" }),
		Female: lo.CountBy(items, func(p clinicapi.Patient) bool { return p.Gender == "female" }),
		WithAllergies: lo.CountBy(items, func(p clinicapi.Patient) bool {
			return p.Allergies != "" && p.Allergies != "Ninguna"
		}),
	}
	if st.Total > 0 {
		st.MalePercent = (st.Male*100 + st.Total/2) / st.Total
	}

	ages := lo.FilterMap(items, func(p clinicapi.Patient, _ int) (int, bool) {
		return PatientAge(p.DateOfBirth, now)
	})
	if len(ages) > 0 {
		st.AverageAge = lo.Sum(ages) / len(ages)
	}
	return st
}
