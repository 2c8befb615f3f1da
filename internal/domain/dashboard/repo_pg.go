package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medicare/clinic/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates the PostgreSQL-backed dashboard repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) count(ctx context.Context, sql string, args ...interface{}) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&n)
	return n, err
}

func (r *repoPG) CountPatients(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM patients`)
}

func (r *repoPG) CountDoctors(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM doctors`)
}

func (r *repoPG) CountAppointmentsBetween(ctx context.Context, from, to time.Time) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM appointments WHERE scheduled_at >= $1 AND scheduled_at < $2`,
		from, to)
}

func (r *repoPG) CountConsultationsBetween(ctx context.Context, from, to time.Time) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM consultations WHERE occurred_at >= $1 AND occurred_at < $2`,
		from, to)
}

func (r *repoPG) CountLowStockMedications(ctx context.Context, threshold int) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM medications WHERE stock < $1`, threshold)
}

func (r *repoPG) PatientExists(ctx context.Context, patientID int64) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM patients WHERE id = $1)`, patientID).Scan(&exists)
	return exists, err
}

func (r *repoPG) ListPatientAppointments(ctx context.Context, patientID int64) ([]*HistoryAppointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT a.id, a.scheduled_at, a.reason, a.status, u.name
		FROM appointments a
		JOIN doctors d ON a.doctor_id = d.id
		JOIN users u ON d.user_id = u.id
		WHERE a.patient_id = $1
		ORDER BY a.scheduled_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*HistoryAppointment
	for rows.Next() {
		var h HistoryAppointment
		if err := rows.Scan(&h.ID, &h.ScheduledAt, &h.Reason, &h.Status, &h.DoctorName); err != nil {
			return nil, err
		}
		items = append(items, &h)
	}
	return items, rows.Err()
}

func (r *repoPG) ListPatientConsultations(ctx context.Context, patientID int64) ([]*HistoryConsultation, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT c.id, c.occurred_at, c.diagnosis, u.name
		FROM consultations c
		JOIN doctors d ON c.doctor_id = d.id
		JOIN users u ON d.user_id = u.id
		WHERE c.patient_id = $1
		ORDER BY c.occurred_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*HistoryConsultation
	for rows.Next() {
		var h HistoryConsultation
		if err := rows.Scan(&h.ID, &h.OccurredAt, &h.Diagnosis, &h.DoctorName); err != nil {
			return nil, err
		}
		items = append(items, &h)
	}
	return items, rows.Err()
}
