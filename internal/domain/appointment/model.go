package appointment

import "time"

// Appointment statuses. A consultation save marks its appointment
// completed; cancellation keeps the row for history.
const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

var validStatuses = map[string]bool{
	StatusScheduled: true,
	StatusConfirmed: true,
	StatusCancelled: true,
	StatusCompleted: true,
}

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s string) bool { return validStatuses[s] }

// Appointment is a booked slot between a patient and a doctor.
// PatientName and DoctorName are filled by list/get joins for display.
type Appointment struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patient_id"`
	DoctorID    int64     `json:"doctor_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Reason      *string   `json:"reason,omitempty"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	PatientName string    `json:"patient_name,omitempty"`
	DoctorName  string    `json:"doctor_name,omitempty"`
}

// Filter narrows appointment listings. Zero values are skipped.
type Filter struct {
	PatientID int64
	DoctorID  int64
	Status    string
	Day       *time.Time // calendar day, local midnight
}
