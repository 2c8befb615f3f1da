package dashboard

import "time"

// Stats is the landing-page summary. The JSON keys are the ones the
// existing front end consumes and must not change.
type Stats struct {
	PatientsTotal       int `json:"patients_total"`
	DoctorsTotal        int `json:"medecins_total"`
	AppointmentsToday   int `json:"rdv_aujourd_hui"`
	AppointmentsWeek    int `json:"rdv_semaine"`
	ConsultationsMonth  int `json:"consultations_mois"`
	MedicationsLowStock int `json:"medicaments_stock_faible"`
}

// HistoryAppointment is one row of a patient's appointment timeline.
type HistoryAppointment struct {
	ID          int64     `json:"id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Reason      *string   `json:"reason,omitempty"`
	Status      string    `json:"status"`
	DoctorName  string    `json:"doctor_name"`
}

// HistoryConsultation is one row of a patient's consultation timeline.
type HistoryConsultation struct {
	ID         int64     `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	Diagnosis  *string   `json:"diagnosis,omitempty"`
	DoctorName string    `json:"doctor_name"`
}

// History holds a patient's two timelines. They are returned side by
// side, each newest first, never interleaved.
type History struct {
	PatientID     int64                  `json:"patient_id"`
	Appointments  []*HistoryAppointment  `json:"appointments"`
	Consultations []*HistoryConsultation `json:"consultations"`
}
