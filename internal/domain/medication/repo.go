package medication

import "context"

// Repository is the persistence contract for the medication inventory.
type Repository interface {
	Create(ctx context.Context, m *Medication) error
	GetByID(ctx context.Context, id int64) (*Medication, error)
	Update(ctx context.Context, m *Medication) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Medication, int, error)
	ListLowStock(ctx context.Context, threshold int) ([]*Medication, error)
	CountPrescriptions(ctx context.Context, medicationID int64) (int, error)
}
