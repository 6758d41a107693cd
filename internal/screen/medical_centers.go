package screen

import (
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/Alijeyrad/libremedic_admin/internal/form"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

type MedicalCenterForm struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	Type        string `json:"type"`
	Capacity    string `json:"capacity"`
	Description string `json:"description"`
}

type medicalCenterPayload struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	Type        string `json:"type"`
	Capacity    *int   `json:"capacity"`
	Description string `json:"description"`
}

type MedicalCenterStats struct {
	Total int `json:"total"`
	Types int `json:"types"`
}

var MedicalCenters = Kind[clinicapi.MedicalCenter, MedicalCenterForm]{
	Name: "medical-centers",
	Labels: Labels{
		Title:        "Centros Médicos",
		Deleted:      "Centro médico eliminado exitosamente!",
		DeleteFailed: "Error al eliminar el centro médico",
		DeletePrompt: "¿Estás seguro de que deseas eliminar este centro médico? Esta acción no se puede deshacer.",
		Created:      "Centro médico creado exitosamente!",
		CreateFailed: "Error al crear el centro médico",
		Updated:      "Centro médico actualizado exitosamente!",
		UpdateFailed: "Error al actualizar el centro médico",
		LoadFailed:   "Error al cargar el centro médico",
	},
	ID: func(m clinicapi.MedicalCenter) int64 { return m.ID },
	Match: func(m clinicapi.MedicalCenter, term string) bool {
		return contains(m.Name, term) || contains(m.Email, term) || contains(deref(m.Type), term)
	},
	Blank:  func() MedicalCenterForm { return MedicalCenterForm{} },
	Schema: func(bool) form.Schema[MedicalCenterForm] { return medicalCenterSchema },
	ToForm: func(m clinicapi.MedicalCenter) MedicalCenterForm {
		capacity := ""
		if m.Capacity != nil {
			capacity = strconv.Itoa(*m.Capacity)
		}
		return MedicalCenterForm{
			Name:        m.Name,
			Address:     m.Address,
			Phone:       m.Phone,
			Email:       m.Email,
			Website:     deref(m.Website),
			Type:        deref(m.Type),
			Capacity:    capacity,
			Description: deref(m.Description),
		}
	},
	ToPayload: func(f MedicalCenterForm, _ bool) (any, error) {
		var capacity *int
		if c := strings.TrimSpace(f.Capacity); c != "" {
			n, err := strconv.Atoi(c)
			if err != nil {
				return nil, err
			}
			capacity = &n
		}
		return medicalCenterPayload{
			Name:        f.Name,
			Address:     f.Address,
			Phone:       f.Phone,
			Email:       f.Email,
			Website:     f.Website,
			Type:        f.Type,
			Capacity:    capacity,
			Description: f.Description,
		}, nil
	},
	Columns: []string{"ID", "Nombre", "Tipo", "Teléfono", "Email", "Capacidad"},
	Row: func(m clinicapi.MedicalCenter) []string {
		capacity := ""
		if m.Capacity != nil {
			capacity = strconv.Itoa(*m.Capacity)
		}
		return []string{strconv.FormatInt(m.ID, 10), m.Name, deref(m.Type), m.Phone, m.Email, capacity}
	},
	Stats: func(items []clinicapi.MedicalCenter, _ time.Time) any {
		types := lo.Uniq(lo.Compact(lo.Map(items, func(m clinicapi.MedicalCenter, _ int) string { return deref(m.Type) })))
		return MedicalCenterStats{Total: len(items), Types: len(types)}
	},
}

var medicalCenterSchema = form.Schema[MedicalCenterForm]{
	Fields: []form.Field[MedicalCenterForm]{
		{Name: "name", Ref: func(f *MedicalCenterForm) *string { return &f.Name }, Validate: form.Use[MedicalCenterForm](form.Required("El nombre"))},
		{Name: "address", Ref: func(f *MedicalCenterForm) *string { return &f.Address }, Validate: form.Use[MedicalCenterForm](form.RequiredMsg("La dirección es obligatoria"))},
		{Name: "phone", Ref: func(f *MedicalCenterForm) *string { return &f.Phone }, Validate: form.Use[MedicalCenterForm](form.Phone)},
		{Name: "email", Ref: func(f *MedicalCenterForm) *string { return &f.Email }, Validate: form.Use[MedicalCenterForm](form.Email)},
		{Name: "website", Ref: func(f *MedicalCenterForm) *string { return &f.Website }},
		{Name: "type", Ref: func(f *MedicalCenterForm) *string { return &f.Type }, Validate: form.Use[MedicalCenterForm](form.Required("El tipo"))},
		{Name: "capacity", Ref: func(f *MedicalCenterForm) *string { return &f.Capacity }, Validate: form.Use[MedicalCenterForm](form.Optional(form.Digits("La capacidad debe ser un número válido")))},
		{Name: "description", Ref: func(f *MedicalCenterForm) *string { return &f.Description }},
	},
}
