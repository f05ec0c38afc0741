package models

// Read models combine persisted entities with denormalized display fields at
// read time. They are never written back to the store.

// AppointmentView is an appointment joined with patient and treatment names.
type AppointmentView struct {
	Appointment
	PatientName   string `json:"patientName"`
	TreatmentName string `json:"treatmentName"`
}

// PaymentView is a payment joined with the owning patient's name and DNI.
type PaymentView struct {
	Payment
	PatientName string `json:"patientName"`
	PatientDNI  string `json:"patientDni"`
}

// PaymentSummary aggregates the whole payments collection.
type PaymentSummary struct {
	TotalCollected   float64 `json:"totalCollected"`
	TotalOutstanding float64 `json:"totalOutstanding"`
	Transactions     int     `json:"transactions"`
}

// FindingCount is the number of times one finding tag appears across a
// snapshot, counting whole-tooth states and surfaces alike.
type FindingCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
