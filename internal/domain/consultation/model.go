package consultation

import "time"

// Consultation records a completed visit: narrative fields, vitals and
// the optional appointment it fulfilled. AppointmentID is a real foreign
// key, nullable for walk-ins.
type Consultation struct {
	ID            int64      `json:"id"`
	PatientID     int64      `json:"patient_id"`
	DoctorID      int64      `json:"doctor_id"`
	AppointmentID *int64     `json:"appointment_id,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
	Reason        *string    `json:"reason,omitempty"`
	Symptoms      *string    `json:"symptoms,omitempty"`
	Diagnosis     *string    `json:"diagnosis,omitempty"`
	Treatment     *string    `json:"treatment,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	WeightKg      *float64   `json:"weight_kg,omitempty"`
	HeightCm      *float64   `json:"height_cm,omitempty"`
	BloodPressure *string    `json:"blood_pressure,omitempty"`
	TemperatureC  *float64   `json:"temperature_c,omitempty"`
	Pulse         *int       `json:"pulse,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	PatientName   string     `json:"patient_name,omitempty"`
	DoctorName    string     `json:"doctor_name,omitempty"`
}

// Prescription is one medication line attached to a consultation.
type Prescription struct {
	ID             int64   `json:"id"`
	ConsultationID int64   `json:"consultation_id"`
	MedicationID   int64   `json:"medication_id"`
	Dosage         string  `json:"dosage"`
	Duration       *string `json:"duration,omitempty"`
	Instructions   *string `json:"instructions,omitempty"`
	MedicationName string  `json:"medication_name,omitempty"`
}

// PrescriptionInput is one submitted prescription line. Lines with a zero
// medication id are treated as left blank and skipped.
type PrescriptionInput struct {
	MedicationID int64   `json:"medication_id"`
	Dosage       string  `json:"dosage"`
	Duration     *string `json:"duration,omitempty"`
	Instructions *string `json:"instructions,omitempty"`
}

// SaveInput carries a full consultation form submission. ID zero means
// create; non-zero means replace that consultation and its prescriptions.
type SaveInput struct {
	ID            int64               `json:"id"`
	PatientID     int64               `json:"patient_id"`
	DoctorID      int64               `json:"doctor_id"`
	AppointmentID *int64              `json:"appointment_id,omitempty"`
	OccurredAt    time.Time           `json:"occurred_at"`
	Reason        *string             `json:"reason,omitempty"`
	Symptoms      *string             `json:"symptoms,omitempty"`
	Diagnosis     *string             `json:"diagnosis,omitempty"`
	Treatment     *string             `json:"treatment,omitempty"`
	Notes         *string             `json:"notes,omitempty"`
	WeightKg      *float64            `json:"weight_kg,omitempty"`
	HeightCm      *float64            `json:"height_cm,omitempty"`
	BloodPressure *string             `json:"blood_pressure,omitempty"`
	TemperatureC  *float64            `json:"temperature_c,omitempty"`
	Pulse         *int                `json:"pulse,omitempty"`
	Prescriptions []PrescriptionInput `json:"prescriptions"`
}

// Details is the full consultation view: record, display names and
// prescription lines with medication names.
type Details struct {
	Consultation
	Prescriptions []*Prescription `json:"prescriptions"`
}

// Filter narrows consultation listings. Zero values are skipped.
type Filter struct {
	PatientID int64
	DoctorID  int64
}
