package patient

import "context"

// Repository is the persistence contract for patients.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Patient, int, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CountAppointments(ctx context.Context, patientID int64) (int, error)
	CountConsultations(ctx context.Context, patientID int64) (int, error)
}
