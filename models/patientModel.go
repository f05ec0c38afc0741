package models

// Appointment statuses.
const (
	StatusAssigned = "Asignado"
	StatusAttended = "Atendido"
)

// Whole-tooth states on an odontogram.
const (
	ToothStateNone    = "none"
	ToothStateMissing = "missing"
	ToothStateCrown   = "crown"
	ToothStateBridge  = "bridge"
)

// FindingHealthy is the default tag of an untouched tooth surface.
const FindingHealthy = "healthy"

// Patient model: demographics plus the intake clinical questionnaire.
type Patient struct {
	ID               string `json:"id"`
	DNI              string `json:"dni"`
	Names            string `json:"names"`
	LastNames        string `json:"lastNames"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	Photo            string `json:"photo,omitempty"`
	Age              int    `json:"age,omitempty"`
	RegistrationDate string `json:"registrationDate"`

	// Historia clínica
	UnderTreatment      bool   `json:"underTreatment"`
	ProneToBleeding     bool   `json:"proneToBleeding"`
	AllergicToMeds      bool   `json:"allergicToMeds"`
	AllergiesDetail     string `json:"allergiesDetail,omitempty"`
	Hypertensive        bool   `json:"hypertensive"`
	Diabetic            bool   `json:"diabetic"`
	Pregnant            bool   `json:"pregnant"`
	ConsultationReason  string `json:"consultationReason"`
	Diagnostic          string `json:"diagnostic"`
	MedicalObservations string `json:"medicalObservations"`
	AttendedBy          string `json:"attendedBy"`
}

func (Patient) Collection() string {
	return "patients"
}

// Treatment model: catalog entry with a reference price.
type Treatment struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (Treatment) Collection() string {
	return "treatments"
}

// PatientTreatment model: join record between a patient and a catalog
// treatment. Present in the schema but not exercised by derived logic.
type PatientTreatment struct {
	ID          string  `json:"id"`
	PatientID   string  `json:"patientId"`
	TreatmentID string  `json:"treatmentId"`
	Date        string  `json:"date"`
	ActualPrice float64 `json:"actualPrice"`
}

func (PatientTreatment) Collection() string {
	return "patient_treatments"
}

// Appointment model. Date and Time together with DoctorID form the
// scheduling-conflict key. Balance is always max(0, cost-paidAmount).
type Appointment struct {
	ID            string  `json:"id"`
	PatientID     string  `json:"patientId"`
	TreatmentID   string  `json:"treatmentId"`
	DoctorID      string  `json:"doctorId"`
	DoctorName    string  `json:"doctorName"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Observations  string  `json:"observations"`
	Status        string  `json:"status"`
	Cost          float64 `json:"cost"`
	ApplyDiscount bool    `json:"applyDiscount"`
	PaidAmount    float64 `json:"paidAmount"`
	Balance       float64 `json:"balance"`
}

func (Appointment) Collection() string {
	return "appointments"
}

// PaymentHistory is one append-only ledger entry on a payment.
type PaymentHistory struct {
	Date   string  `json:"date"`
	Time   string  `json:"time"`
	Amount float64 `json:"amount"`
}

// Payment model: financial ledger companion of an appointment. TotalPaid
// equals the sum of history amounts whenever history is non-empty; prior
// history entries are never rewritten.
type Payment struct {
	ID            string           `json:"id"`
	PatientID     string           `json:"patientId"`
	AppointmentID string           `json:"appointmentId"`
	TreatmentName string           `json:"treatmentName"`
	Amount        float64          `json:"amount"`
	TotalCost     float64          `json:"totalCost"`
	TotalPaid     float64          `json:"totalPaid"`
	Balance       float64          `json:"balance"`
	Date          string           `json:"date"`
	Time          string           `json:"time"`
	Observations  string           `json:"observations"`
	History       []PaymentHistory `json:"history,omitempty"`
}

func (Payment) Collection() string {
	return "payments"
}

// Radiograph model: binary attachment owned by a patient. Immutable once
// created except for deletion.
type Radiograph struct {
	ID        string `json:"id"`
	PatientID string `json:"patientId"`
	FileName  string `json:"fileName"`
	FileType  string `json:"fileType"`
	FileBlob  []byte `json:"fileBlob"`
	Date      string `json:"date"`
}

func (Radiograph) Collection() string {
	return "radiographs"
}

// Consent model: signed consent document attachment, same shape as a
// radiograph.
type Consent struct {
	ID        string `json:"id"`
	PatientID string `json:"patientId"`
	FileName  string `json:"fileName"`
	FileType  string `json:"fileType"`
	FileBlob  []byte `json:"fileBlob"`
	Date      string `json:"date"`
}

func (Consent) Collection() string {
	return "consents"
}

// ToothSurfaces holds the finding tag of each of the five drawable surfaces
// of a tooth. An empty tag means the surface is healthy.
type ToothSurfaces struct {
	Top    string `json:"top,omitempty"`
	Bottom string `json:"bottom,omitempty"`
	Left   string `json:"left,omitempty"`
	Right  string `json:"right,omitempty"`
	Center string `json:"center,omitempty"`
}

// ToothRecord is the charted state of a single tooth: per-surface findings
// plus a whole-tooth state independent of the surface tags.
type ToothRecord struct {
	Surfaces    ToothSurfaces `json:"surfaces"`
	GlobalState string        `json:"globalState"`
}

// Odontogram model: immutable dated snapshot of a patient's full chart,
// keyed by two-digit FDI tooth numbers. The current chart of a patient is
// the snapshot with the most recent date.
type Odontogram struct {
	ID         string                 `json:"id"`
	PatientID  string                 `json:"patientId"`
	Teeth      map[string]ToothRecord `json:"teeth"`
	Diagnostic string                 `json:"diagnostic,omitempty"`
	Date       string                 `json:"date"`
}

func (Odontogram) Collection() string {
	return "odontograms"
}
