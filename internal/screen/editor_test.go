package screen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

func validPatientForm() PatientForm {
	return PatientForm{
		FirstName:   "María",
		LastName:    "González",
		Email:       "maria@example.com",
		Phone:       "+34 612 345 678",
		DateOfBirth: "1990-05-01",
		Gender:      "female",
	}
}

func TestEditor_InvalidPatientMakesNoCall(t *testing.T) {
	backend := &mockBackend[clinicapi.Patient]{}
	notices := &Collector{}
	ed := NewCreator(Patients, backend, notices)

	f := validPatientForm()
	f.FirstName = ""
	f.Email = "bad"
	ed.Form().SetData(f)

	path, err := ed.Submit(context.Background())

	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, path)
	errs := ed.Form().Errors()
	assert.Equal(t, "El nombre es obligatorio", errs["firstName"])
	assert.Equal(t, "Formato de email inválido", errs["email"])
	assert.Zero(t, backend.calls(&backend.CreateCallCount))
	assert.Equal(t, []Notice{{Level: LevelError, Message: MsgFixErrors}}, notices.Drain())
	assert.False(t, ed.Form().Submitting())
}

func TestEditor_CreatePatient(t *testing.T) {
	backend := &mockBackend[clinicapi.Patient]{}
	notices := &Collector{}
	ed := NewCreator(Patients, backend, notices)
	ed.Form().SetData(validPatientForm())

	path, err := ed.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/patients", path)
	assert.Equal(t, 1, backend.calls(&backend.CreateCallCount))
	assert.Zero(t, backend.calls(&backend.UpdateCallCount))
	require.Len(t, backend.payloads, 1)
	sent, isPatient := backend.payloads[0].(clinicapi.Patient)
	require.True(t, isPatient)
	assert.Equal(t, "maria@example.com", sent.Email)
	assert.Equal(t, []Notice{{Level: LevelSuccess, Message: "Paciente creado exitosamente!"}}, notices.Drain())
	assert.False(t, ed.Form().Submitting())
}

func TestEditor_CreateFailureUsesServerMessage(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		want    string
	}{
		{"server message", "email already registered", "email already registered"},
		{"network failure", clinicapi.MsgNetworkError, MsgConnection},
		{"no message", "", "Error al crear el paciente"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &mockBackend[clinicapi.Patient]{
				CreateFunc: func(context.Context, any) clinicapi.Envelope[clinicapi.Patient] {
					return failed[clinicapi.Patient](tt.backend)
				},
			}
			notices := &Collector{}
			ed := NewCreator(Patients, backend, notices)
			ed.Form().SetData(validPatientForm())

			_, err := ed.Submit(context.Background())

			assert.ErrorIs(t, err, ErrRequest)
			assert.Equal(t, []Notice{{Level: LevelError, Message: tt.want}}, notices.Drain())
		})
	}
}

func TestOpenEditor_PrePopulates(t *testing.T) {
	end := "2026-02-01T00:00:00.000Z"
	backend := &mockBackend[clinicapi.Prescription]{
		GetFunc: func(_ context.Context, id int64) clinicapi.Envelope[clinicapi.Prescription] {
			return ok(clinicapi.Prescription{
				ID: id, PatientID: 4, Medication: "Ibuprofeno 400mg", Dosage: "1", Frequency: "Cada 8 horas",
				Instructions: "Con comida", StartDate: "2026-01-01T00:00:00.000Z", EndDate: &end, PrescribedBy: 9,
			})
		},
	}

	ed, err := OpenEditor(context.Background(), Prescriptions, backend, nil, 12)
	require.NoError(t, err)

	assert.True(t, ed.Editing())
	assert.Equal(t, int64(12), ed.ID())
	data := ed.Form().Data()
	assert.Equal(t, "4", data.PatientID)
	assert.Equal(t, "2026-01-01", data.StartDate)
	assert.Equal(t, "2026-02-01", data.EndDate)
	assert.Equal(t, "9", data.PrescribedBy)

	require.NoError(t, ed.Form().UpdateField("dosage", "2"))
	path, err := ed.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/prescriptions", path)
	assert.Equal(t, 1, backend.calls(&backend.UpdateCallCount))

	sent, isPayload := backend.payloads[0].(prescriptionPayload)
	require.True(t, isPayload)
	assert.Equal(t, int64(4), sent.PatientID)
	assert.Equal(t, "2", sent.Dosage)
	require.NotNil(t, sent.EndDate)
	assert.Equal(t, "2026-02-01", *sent.EndDate)
}

func TestOpenEditor_NotFound(t *testing.T) {
	backend := &mockBackend[clinicapi.Patient]{
		GetFunc: func(context.Context, int64) clinicapi.Envelope[clinicapi.Patient] {
			return failed[clinicapi.Patient]("not found")
		},
	}
	notices := &Collector{}

	ed, err := OpenEditor(context.Background(), Patients, backend, notices, 99)

	assert.Nil(t, ed)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []Notice{{Level: LevelError, Message: "not found"}}, notices.Drain())
}

func TestEditor_PrescriptionEndBeforeStart(t *testing.T) {
	backend := &mockBackend[clinicapi.Prescription]{}
	ed := NewCreator(Prescriptions, backend, nil)
	ed.Form().SetData(PrescriptionForm{
		PatientID: "1", Medication: "Omeprazol 20mg", Dosage: "1", Frequency: "Una vez al día",
		Instructions: "En ayunas", StartDate: "2026-03-10", EndDate: "2026-03-01", PrescribedBy: "2",
	})

	_, err := ed.Submit(context.Background())

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "La fecha de fin debe ser posterior a la fecha de inicio", ed.Form().Error("endDate"))
	assert.Zero(t, backend.calls(&backend.CreateCallCount))
}

func TestEditor_DoctorPasswords(t *testing.T) {
	base := DoctorForm{
		FirstName: "Ana", LastName: "López", Email: "ana@clinica.es", Phone: "612345678",
		Specialty: "Pediatría", LicenseNumber: "28-123",
	}

	t.Run("create requires a password", func(t *testing.T) {
		ed := NewCreator(Doctors, &mockBackend[clinicapi.User]{}, nil)
		ed.Form().SetData(base)
		_, err := ed.Submit(context.Background())
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, "La contraseña es obligatorio", ed.Form().Error("password"))
		assert.Equal(t, "Confirma la contraseña", ed.Form().Error("confirmPassword"))
	})

	t.Run("create rejects a mismatch", func(t *testing.T) {
		f := base
		f.Password, f.ConfirmPassword = "secreta", "otra"
		ed := NewCreator(Doctors, &mockBackend[clinicapi.User]{}, nil)
		ed.Form().SetData(f)
		_, err := ed.Submit(context.Background())
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, "Las contraseñas no coinciden", ed.Form().Error("confirmPassword"))
	})

	t.Run("edit keeps the password when blank", func(t *testing.T) {
		backend := &mockBackend[clinicapi.User]{}
		ed := NewUpdater(Doctors, backend, nil, 5)
		ed.Form().SetData(base)
		_, err := ed.Submit(context.Background())
		require.NoError(t, err)
		sent := backend.payloads[0].(doctorPayload)
		assert.Empty(t, sent.Password)
		assert.Equal(t, RoleDoctor, sent.Role)
	})
}

func TestEditor_MedicalCenterCapacity(t *testing.T) {
	base := MedicalCenterForm{
		Name: "Hospital Norte", Address: "Calle Mayor 1", Phone: "910000000",
		Email: "info@norte.es", Type: "Hospital General",
	}

	tests := []struct {
		name     string
		capacity string
		wantErr  error
		want     *int
	}{
		{"blank sends null", "", nil, nil},
		{"number", "120", nil, func() *int { n := 120; return &n }()},
		{"not a number", "12a", ErrValidation, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &mockBackend[clinicapi.MedicalCenter]{}
			ed := NewCreator(MedicalCenters, backend, nil)
			f := base
			f.Capacity = tt.capacity
			ed.Form().SetData(f)

			_, err := ed.Submit(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, "La capacidad debe ser un número válido", ed.Form().Error("capacity"))
				return
			}
			require.NoError(t, err)
			sent := backend.payloads[0].(medicalCenterPayload)
			assert.Equal(t, tt.want, sent.Capacity)
		})
	}
}
