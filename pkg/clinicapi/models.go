package clinicapi

// Patient mirrors the backend patient record.
type Patient struct {
	ID               int64  `json:"id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	DateOfBirth      string `json:"dateOfBirth"`
	Gender           string `json:"gender"`
	Identification   string `json:"identification,omitempty"`
	BloodType        string `json:"bloodType"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergencyContact"`
	EmergencyPhone   string `json:"emergencyPhone"`
	Allergies        string `json:"allergies"`
	MedicalHistory   string `json:"medicalHistory"`
	UserID           int64  `json:"userId,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
	UpdatedAt        string `json:"updatedAt,omitempty"`
}

// User is a role-tagged person record; doctors are users with role "doctor".
type User struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	Specialty     string `json:"specialty,omitempty"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
	Address       string `json:"address,omitempty"`
	Role          string `json:"role,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}

type Diagnosis struct {
	ID            int64    `json:"id"`
	PatientID     int64    `json:"patientId"`
	DoctorID      int64    `json:"doctorId"`
	Diagnosis     string   `json:"diagnosis"`
	Symptoms      string   `json:"symptoms"`
	Treatment     string   `json:"treatment"`
	Severity      string   `json:"severity"`
	Status        string   `json:"status"`
	DiagnosisDate string   `json:"diagnosisDate"`
	FollowUpDate  *string  `json:"followUpDate,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`
	Patient       *Patient `json:"Patient,omitempty"`
	Doctor        *User    `json:"Doctor,omitempty"`
}

type Prescription struct {
	ID           int64   `json:"id"`
	PatientID    int64   `json:"patientId"`
	Medication   string  `json:"medication"`
	Dosage       string  `json:"dosage"`
	Frequency    string  `json:"frequency"`
	Instructions string  `json:"instructions"`
	StartDate    string  `json:"startDate"`
	EndDate      *string `json:"endDate,omitempty"`
	PrescribedBy int64   `json:"prescribedBy"`
	CreatedAt    string  `json:"createdAt,omitempty"`
	UpdatedAt    string  `json:"updatedAt,omitempty"`
	User         *User   `json:"user,omitempty"`
}

type MedicalCenter struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Website     *string `json:"website,omitempty"`
	Type        *string `json:"type,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}

type Appointment struct {
	ID              int64    `json:"id"`
	PatientID       int64    `json:"patientId"`
	DoctorID        int64    `json:"doctorId"`
	AppointmentDate string   `json:"appointmentDate"`
	AppointmentTime string   `json:"appointmentTime"`
	Reason          string   `json:"reason"`
	Status          string   `json:"status"`
	Notes           *string  `json:"notes,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
	Patient         *Patient `json:"Patient,omitempty"`
	Doctor          *User    `json:"Doctor,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the payload of a successful login. Token may be empty when
// the backend does not issue one.
type LoginResult struct {
	Token string `json:"token,omitempty"`
	User  *User  `json:"user,omitempty"`
}
