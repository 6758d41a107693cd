package screen

import (
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/Alijeyrad/libremedic_admin/internal/form"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

const RoleDoctor = "doctor"

type DoctorForm struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Specialty       string `json:"specialty"`
	LicenseNumber   string `json:"licenseNumber"`
	Address         string `json:"address"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// doctorPayload is what the backend expects on /users. Password is only
// sent when set.
type doctorPayload struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Specialty     string `json:"specialty"`
	LicenseNumber string `json:"licenseNumber"`
	Address       string `json:"address"`
	Password      string `json:"password,omitempty"`
	Role          string `json:"role"`
}

type DoctorStats struct {
	Total       int `json:"total"`
	Specialties int `json:"specialties"`
}

var Doctors = Kind[clinicapi.User, DoctorForm]{
	Name: "doctors",
	Labels: Labels{
		Title:        "Médicos",
		Deleted:      "Médico eliminado exitosamente!",
		DeleteFailed: "Error al eliminar el médico",
		DeletePrompt: "¿Estás seguro de que deseas eliminar este médico? Esta acción no se puede deshacer.",
		Created:      "Médico creado exitosamente!",
		CreateFailed: "Error al crear el médico",
		Updated:      "Médico actualizado exitosamente!",
		UpdateFailed: "Error al actualizar el médico",
		LoadFailed:   "Error al cargar el médico",
	},
	ID: func(u clinicapi.User) int64 { return u.ID },
	Match: func(u clinicapi.User, term string) bool {
		return contains(fullName(u.FirstName, u.LastName), term) ||
			contains(u.Email, term) ||
			contains(u.Specialty, term)
	},
	Blank:  func() DoctorForm { return DoctorForm{} },
	Schema: doctorSchema,
	ToForm: func(u clinicapi.User) DoctorForm {
		return DoctorForm{
			FirstName:     u.FirstName,
			LastName:      u.LastName,
			Email:         u.Email,
			Phone:         u.Phone,
			Specialty:     u.Specialty,
			LicenseNumber: u.LicenseNumber,
			Address:       u.Address,
		}
	},
	ToPayload: func(f DoctorForm, _ bool) (any, error) {
		return doctorPayload{
			FirstName:     f.FirstName,
			LastName:      f.LastName,
			Email:         f.Email,
			Phone:         f.Phone,
			Specialty:     f.Specialty,
			LicenseNumber: f.LicenseNumber,
			Address:       f.Address,
			Password:      f.Password,
			Role:          RoleDoctor,
		}, nil
	},
	Columns: []string{"ID", "Nombre", "Email", "Especialidad", "Licencia"},
	Row: func(u clinicapi.User) []string {
		return []string{strconv.FormatInt(u.ID, 10), fullName(u.FirstName, u.LastName), u.Email, u.Specialty, u.LicenseNumber}
	},
	Stats: func(items []clinicapi.User, _ time.Time) any {
		return DoctorStats{
			Total:       len(items),
			Specialties: len(lo.Uniq(lo.Compact(lo.Map(items, func(u clinicapi.User, _ int) string { return u.Specialty })))),
		}
	},
}

// doctorSchema requires a password on create only. On edit an empty
// password keeps the current one.
func doctorSchema(editing bool) form.Schema[DoctorForm] {
	var password, confirm form.Validator[DoctorForm]
	if editing {
		confirm = func(value string, f DoctorForm) string {
			if value == "" && f.Password != "" {
				return "Confirma la contraseña"
			}
			return ""
		}
	} else {
		password = form.Use[DoctorForm](form.Required("La contraseña"))
		confirm = form.Use[DoctorForm](form.RequiredMsg("Confirma la contraseña"))
	}

	fields := []form.Field[DoctorForm]{
		{Name: "firstName", Ref: func(f *DoctorForm) *string { return &f.FirstName }, Validate: form.Use[DoctorForm](form.Required("El nombre"))},
		{Name: "lastName", Ref: func(f *DoctorForm) *string { return &f.LastName }, Validate: form.Use[DoctorForm](form.RequiredMsg("Los apellidos son obligatorios"))},
		{Name: "email", Ref: func(f *DoctorForm) *string { return &f.Email }, Validate: form.Use[DoctorForm](form.Email)},
		{Name: "phone", Ref: func(f *DoctorForm) *string { return &f.Phone }, Validate: form.Use[DoctorForm](form.Phone)},
		{Name: "specialty", Ref: func(f *DoctorForm) *string { return &f.Specialty }, Validate: form.Use[DoctorForm](form.RequiredMsg("La especialidad es obligatoria"))},
		{Name: "licenseNumber", Ref: func(f *DoctorForm) *string { return &f.LicenseNumber }, Validate: form.Use[DoctorForm](form.Required("El número de licencia"))},
		{Name: "address", Ref: func(f *DoctorForm) *string { return &f.Address }},
		{Name: "password", Ref: func(f *DoctorForm) *string { return &f.Password }, Validate: password},
		{Name: "confirmPassword", Ref: func(f *DoctorForm) *string { return &f.ConfirmPassword }, Validate: confirm},
	}
	return form.Schema[DoctorForm]{
		Fields: fields,
		Record: []form.RecordValidator[DoctorForm]{
			form.Matches("confirmPassword",
				func(f DoctorForm) string { return f.Password },
				func(f DoctorForm) string { return f.ConfirmPassword },
				"Las contraseñas no coinciden"),
		},
	}
}
