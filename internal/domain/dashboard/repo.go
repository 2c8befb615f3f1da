package dashboard

import (
	"context"
	"time"
)

// Repository exposes the scalar counts and history lookups behind the
// dashboard. Time windows are computed by the caller and bound as
// parameters; the database clock never enters date arithmetic.
type Repository interface {
	CountPatients(ctx context.Context) (int, error)
	CountDoctors(ctx context.Context) (int, error)
	CountAppointmentsBetween(ctx context.Context, from, to time.Time) (int, error)
	CountConsultationsBetween(ctx context.Context, from, to time.Time) (int, error)
	CountLowStockMedications(ctx context.Context, threshold int) (int, error)

	PatientExists(ctx context.Context, patientID int64) (bool, error)
	ListPatientAppointments(ctx context.Context, patientID int64) ([]*HistoryAppointment, error)
	ListPatientConsultations(ctx context.Context, patientID int64) ([]*HistoryConsultation, error)
}
