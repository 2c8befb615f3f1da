package search

import (
	"context"
	"fmt"
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

// NewRepoPG creates the PostgreSQL-backed search repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func pattern(term string) string { return "%" + term + "%" }

func (r *repoPG) SearchPatients(ctx context.Context, term string, limit int) ([]*Result, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, last_name, first_name, COALESCE(email, ''), COALESCE(phone, '')
		FROM patients
		WHERE last_name ILIKE $1 OR first_name ILIKE $1 OR email ILIKE $1
		ORDER BY last_name, first_name
		LIMIT $2`, pattern(term), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Result
	for rows.Next() {
		var id int64
		var last, first, email, phone string
		if err := rows.Scan(&id, &last, &first, &email, &phone); err != nil {
			return nil, err
		}
		subtitle := email
		if subtitle == "" {
			subtitle = phone
		}
		out = append(out, &Result{
			ID:       id,
			Type:     TypePatient,
			Title:    last + " " + first,
			Subtitle: subtitle,
			URL:      fmt.Sprintf("/patients/%d", id),
		})
	}
	return out, rows.Err()
}

func (r *repoPG) SearchDoctors(ctx context.Context, term string, limit int) ([]*Result, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT d.id, u.name, d.specialty
		FROM doctors d
		JOIN users u ON d.user_id = u.id
		WHERE u.name ILIKE $1 OR d.specialty ILIKE $1
		ORDER BY u.name
		LIMIT $2`, pattern(term), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Result
	for rows.Next() {
		var id int64
		var name, specialty string
		if err := rows.Scan(&id, &name, &specialty); err != nil {
			return nil, err
		}
		out = append(out, &Result{
			ID:       id,
			Type:     TypeDoctor,
			Title:    "Dr " + name,
			Subtitle: specialty,
			URL:      fmt.Sprintf("/medecins/%d", id),
		})
	}
	return out, rows.Err()
}

func (r *repoPG) SearchAppointments(ctx context.Context, term string, limit int) ([]*Result, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT a.id, p.last_name || ' ' || p.first_name, u.name, a.scheduled_at, a.status
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		JOIN doctors d ON a.doctor_id = d.id
		JOIN users u ON d.user_id = u.id
		WHERE p.last_name ILIKE $1 OR p.first_name ILIKE $1 OR u.name ILIKE $1
		ORDER BY a.scheduled_at DESC
		LIMIT $2`, pattern(term), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Result
	for rows.Next() {
		var id int64
		var patientName, doctorName, status string
		var at time.Time
		if err := rows.Scan(&id, &patientName, &doctorName, &at, &status); err != nil {
			return nil, err
		}
		out = append(out, &Result{
			ID:       id,
			Type:     TypeAppointment,
			Title:    "RDV - " + patientName,
			Subtitle: at.Format("02/01/2006 15:04") + " - Dr " + doctorName,
			URL:      fmt.Sprintf("/rendezvous/%d", id),
			Data:     map[string]interface{}{"scheduled_at": at, "status": status},
		})
	}
	return out, rows.Err()
}

func (r *repoPG) SearchConsultations(ctx context.Context, term string, limit int) ([]*Result, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT c.id, p.last_name || ' ' || p.first_name, COALESCE(c.diagnosis, ''), c.occurred_at
		FROM consultations c
		JOIN patients p ON c.patient_id = p.id
		WHERE p.last_name ILIKE $1 OR p.first_name ILIKE $1 OR c.diagnosis ILIKE $1
		ORDER BY c.occurred_at DESC
		LIMIT $2`, pattern(term), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Result
	for rows.Next() {
		var id int64
		var patientName, diagnosis string
		var at time.Time
		if err := rows.Scan(&id, &patientName, &diagnosis, &at); err != nil {
			return nil, err
		}
		subtitle := at.Format("02/01/2006")
		if diagnosis != "" {
			subtitle += " - " + diagnosis
		}
		out = append(out, &Result{
			ID:       id,
			Type:     TypeConsultation,
			Title:    "Consultation - " + patientName,
			Subtitle: subtitle,
			URL:      fmt.Sprintf("/consultations/%d", id),
		})
	}
	return out, rows.Err()
}

func (r *repoPG) SearchMedications(ctx context.Context, term string, limit int) ([]*Result, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, name, COALESCE(description, ''), stock
		FROM medications
		WHERE name ILIKE $1 OR description ILIKE $1
		ORDER BY name
		LIMIT $2`, pattern(term), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Result
	for rows.Next() {
		var id int64
		var name, description string
		var stock int
		if err := rows.Scan(&id, &name, &description, &stock); err != nil {
			return nil, err
		}
		out = append(out, &Result{
			ID:       id,
			Type:     TypeMedication,
			Title:    name,
			Subtitle: description,
			URL:      fmt.Sprintf("/medicaments/%d", id),
			Data:     map[string]interface{}{"stock": stock},
		})
	}
	return out, rows.Err()
}
