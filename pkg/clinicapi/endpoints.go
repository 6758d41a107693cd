package clinicapi

import "strconv"

// Collection paths, relative to the configured base URL.
const (
	PathPatients       = "/patients"
	PathUsers          = "/users"
	PathDiagnoses      = "/diagnostics"
	PathPrescriptions  = "/prescriptions"
	PathMedicalCenters = "/medical-centers"
	PathAppointments   = "/appointments"

	PathLogin  = "/auth/login"
	PathLogout = "/auth/logout"
	PathHealth = "/health"
)

// ItemPath returns the path of one record inside a collection.
func ItemPath(collection string, id int64) string {
	return collection + "/" + strconv.FormatInt(id, 10)
}

func PatientPath(id int64) string       { return ItemPath(PathPatients, id) }
func UserPath(id int64) string          { return ItemPath(PathUsers, id) }
func DiagnosisPath(id int64) string     { return ItemPath(PathDiagnoses, id) }
func PrescriptionPath(id int64) string  { return ItemPath(PathPrescriptions, id) }
func MedicalCenterPath(id int64) string { return ItemPath(PathMedicalCenters, id) }
func AppointmentPath(id int64) string   { return ItemPath(PathAppointments, id) }
