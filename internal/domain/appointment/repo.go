package appointment

import (
	"context"
	"time"
)

// Repository is the persistence contract for appointments.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id int64) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Appointment, int, error)
	// ListBetween returns every appointment in [from, to), optionally
	// restricted to one doctor, ordered by time. Feeds the calendar view.
	ListBetween(ctx context.Context, doctorID int64, from, to time.Time) ([]*Appointment, error)
	// SetStatus updates only the status column.
	SetStatus(ctx context.Context, id int64, status string) error
	PatientExists(ctx context.Context, patientID int64) (bool, error)
	DoctorExists(ctx context.Context, doctorID int64) (bool, error)
}
