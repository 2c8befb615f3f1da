package search

import "context"

// Repository runs one substring search per record type. Each method caps
// its own result count at limit; the service trims the combined set.
type Repository interface {
	SearchPatients(ctx context.Context, term string, limit int) ([]*Result, error)
	SearchDoctors(ctx context.Context, term string, limit int) ([]*Result, error)
	SearchAppointments(ctx context.Context, term string, limit int) ([]*Result, error)
	SearchConsultations(ctx context.Context, term string, limit int) ([]*Result, error)
	SearchMedications(ctx context.Context, term string, limit int) ([]*Result, error)
}
