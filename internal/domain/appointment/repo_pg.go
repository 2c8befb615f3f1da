package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medicare/clinic/internal/platform/apperr"
	"github.com/medicare/clinic/internal/platform/db"
	"github.com/medicare/clinic/internal/platform/query"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates the PostgreSQL-backed appointment repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const appointmentCols = `a.id, a.patient_id, a.doctor_id, a.scheduled_at, a.reason,
	a.status, a.notes, a.created_at,
	p.last_name || ' ' || p.first_name, u.name`

const appointmentJoins = `JOIN patients p ON a.patient_id = p.id
	JOIN doctors d ON a.doctor_id = d.id
	JOIN users u ON d.user_id = u.id`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.ScheduledAt, &a.Reason,
		&a.Status, &a.Notes, &a.CreatedAt, &a.PatientName, &a.DoctorName)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointments (patient_id, doctor_id, scheduled_at, reason, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at`,
		a.PatientID, a.DoctorID, a.ScheduledAt, a.Reason, a.Status, a.Notes,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	a, err := scanAppointment(r.conn(ctx).QueryRow(ctx, `
		SELECT `+appointmentCols+`
		FROM appointments a `+appointmentJoins+`
		WHERE a.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NewNotFound("appointment", id)
	}
	return a, err
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointments SET patient_id=$2, doctor_id=$3, scheduled_at=$4,
			reason=$5, status=$6, notes=$7
		WHERE id = $1`,
		a.ID, a.PatientID, a.DoctorID, a.ScheduledAt, a.Reason, a.Status, a.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("appointment", a.ID)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("appointment", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Appointment, int, error) {
	qb := query.New("appointments a", appointmentCols).Join(appointmentJoins)
	if f.PatientID > 0 {
		qb.Eq("a.patient_id", f.PatientID)
	}
	if f.DoctorID > 0 {
		qb.Eq("a.doctor_id", f.DoctorID)
	}
	if f.Status != "" {
		qb.Eq("a.status", f.Status)
	}
	if f.Day != nil {
		qb.DateOn("a.scheduled_at", *f.Day)
	}
	qb.OrderBy("a.scheduled_at DESC")

	var total int
	if err := r.conn(ctx).QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListBetween(ctx context.Context, doctorID int64, from, to time.Time) ([]*Appointment, error) {
	qb := query.New("appointments a", appointmentCols).
		Join(appointmentJoins).
		TimeRange("a.scheduled_at", from, to)
	if doctorID > 0 {
		qb.Eq("a.doctor_id", doctorID)
	}
	qb.OrderBy("a.scheduled_at")

	// Calendar views are bounded by the time window, not pagination.
	rows, err := r.conn(ctx).Query(ctx, qb.DataSQL(1000, 0), qb.DataArgs(1000, 0)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *repoPG) SetStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE appointments SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("appointment", id)
	}
	return nil
}

func (r *repoPG) PatientExists(ctx context.Context, patientID int64) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM patients WHERE id = $1)`, patientID).Scan(&exists)
	return exists, err
}

func (r *repoPG) DoctorExists(ctx context.Context, doctorID int64) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM doctors WHERE id = $1)`, doctorID).Scan(&exists)
	return exists, err
}
