package authorize

import "strings"

type Action string
type Resource string
type Role string

// ----------------------------
// Actions
// ----------------------------

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"

	WildcardAction Action = "*"
)

var KnownActions = map[Action]struct{}{
	ActionRead: {}, ActionCreate: {}, ActionUpdate: {}, ActionDelete: {},
}

// ----------------------------
// Resources
// ----------------------------
//
// One per admin screen; the value is the route segment of the screen.

const (
	WildcardResource Resource = "*"

	ResourcePatients       Resource = "patients"
	ResourceDoctors        Resource = "doctors"
	ResourceDiagnoses      Resource = "diagnoses"
	ResourcePrescriptions  Resource = "prescriptions"
	ResourceMedicalCenters Resource = "medical-centers"
	ResourceAppointments   Resource = "appointments"
	ResourceBackend        Resource = "backend"
)

var KnownResources = map[Resource]struct{}{
	ResourcePatients: {}, ResourceDoctors: {}, ResourceDiagnoses: {},
	ResourcePrescriptions: {}, ResourceMedicalCenters: {}, ResourceAppointments: {},
	ResourceBackend: {},
}

// ----------------------------
// Roles
// ----------------------------
//
// Roles are the user types chosen at login.

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

var KnownRoles = map[Role]struct{}{
	RoleAdmin:   {},
	RoleDoctor:  {},
	RolePatient: {},
}

var RoleDisplayNamesES = map[Role]string{
	RoleAdmin:   "Administrador",
	RoleDoctor:  "Médico",
	RolePatient: "Paciente",
}

// ParseRole maps a user type to a role. ok is false for unknown types.
func ParseRole(userType string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(userType)))
	_, ok := KnownRoles[r]
	return r, ok
}

// ----------------------------
// Casbin tuple helpers
// ----------------------------

type PolicyEffect string

const (
	EffectAllow PolicyEffect = "allow"
	EffectDeny  PolicyEffect = "deny"
)

// Permission rows: p, role, resource, action, eft
type PermissionPolicy struct {
	Subject Role
	Object  Resource
	Action  Action
	Effect  PolicyEffect
}

// ActionForMethod maps an HTTP method to the action it performs.
func ActionForMethod(method string) Action {
	switch strings.ToUpper(method) {
	case "POST":
		return ActionCreate
	case "PUT", "PATCH":
		return ActionUpdate
	case "DELETE":
		return ActionDelete
	default:
		return ActionRead
	}
}
