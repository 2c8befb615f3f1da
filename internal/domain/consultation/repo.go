package consultation

import "context"

// Repository is the persistence contract for consultations and their
// prescription lines.
type Repository interface {
	Insert(ctx context.Context, cn *Consultation) error
	Update(ctx context.Context, cn *Consultation) error
	GetByID(ctx context.Context, id int64) (*Consultation, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Consultation, int, error)

	DeletePrescriptions(ctx context.Context, consultationID int64) error
	InsertPrescription(ctx context.Context, p *Prescription) error
	ListPrescriptions(ctx context.Context, consultationID int64) ([]*Prescription, error)

	PatientExists(ctx context.Context, patientID int64) (bool, error)
	DoctorExists(ctx context.Context, doctorID int64) (bool, error)
	AppointmentExists(ctx context.Context, appointmentID int64) (bool, error)
}
