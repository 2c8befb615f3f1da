package consultation

import (
	"context"
	"errors"

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

// NewRepoPG creates the PostgreSQL-backed consultation repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const consultationCols = `c.id, c.patient_id, c.doctor_id, c.appointment_id, c.occurred_at,
	c.reason, c.symptoms, c.diagnosis, c.treatment, c.notes,
	c.weight_kg, c.height_cm, c.blood_pressure, c.temperature_c, c.pulse,
	c.created_at,
	p.last_name || ' ' || p.first_name, u.name`

const consultationJoins = `JOIN patients p ON c.patient_id = p.id
	JOIN doctors d ON c.doctor_id = d.id
	JOIN users u ON d.user_id = u.id`

func scanConsultation(row pgx.Row) (*Consultation, error) {
	var cn Consultation
	err := row.Scan(&cn.ID, &cn.PatientID, &cn.DoctorID, &cn.AppointmentID, &cn.OccurredAt,
		&cn.Reason, &cn.Symptoms, &cn.Diagnosis, &cn.Treatment, &cn.Notes,
		&cn.WeightKg, &cn.HeightCm, &cn.BloodPressure, &cn.TemperatureC, &cn.Pulse,
		&cn.CreatedAt, &cn.PatientName, &cn.DoctorName)
	return &cn, err
}

func (r *repoPG) Insert(ctx context.Context, cn *Consultation) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO consultations (patient_id, doctor_id, appointment_id, occurred_at,
			reason, symptoms, diagnosis, treatment, notes,
			weight_kg, height_cm, blood_pressure, temperature_c, pulse)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id, created_at`,
		cn.PatientID, cn.DoctorID, cn.AppointmentID, cn.OccurredAt,
		cn.Reason, cn.Symptoms, cn.Diagnosis, cn.Treatment, cn.Notes,
		cn.WeightKg, cn.HeightCm, cn.BloodPressure, cn.TemperatureC, cn.Pulse,
	).Scan(&cn.ID, &cn.CreatedAt)
}

func (r *repoPG) Update(ctx context.Context, cn *Consultation) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE consultations SET patient_id=$2, doctor_id=$3, appointment_id=$4,
			occurred_at=$5, reason=$6, symptoms=$7, diagnosis=$8, treatment=$9,
			notes=$10, weight_kg=$11, height_cm=$12, blood_pressure=$13,
			temperature_c=$14, pulse=$15
		WHERE id = $1`,
		cn.ID, cn.PatientID, cn.DoctorID, cn.AppointmentID,
		cn.OccurredAt, cn.Reason, cn.Symptoms, cn.Diagnosis, cn.Treatment,
		cn.Notes, cn.WeightKg, cn.HeightCm, cn.BloodPressure,
		cn.TemperatureC, cn.Pulse)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("consultation", cn.ID)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Consultation, error) {
	cn, err := scanConsultation(r.conn(ctx).QueryRow(ctx, `
		SELECT `+consultationCols+`
		FROM consultations c `+consultationJoins+`
		WHERE c.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NewNotFound("consultation", id)
	}
	return cn, err
}

// Delete removes the consultation; prescription lines go with it via the
// cascading foreign key.
func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM consultations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("consultation", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Consultation, int, error) {
	qb := query.New("consultations c", consultationCols).Join(consultationJoins)
	if f.PatientID > 0 {
		qb.Eq("c.patient_id", f.PatientID)
	}
	if f.DoctorID > 0 {
		qb.Eq("c.doctor_id", f.DoctorID)
	}
	qb.OrderBy("c.occurred_at DESC")

	var total int
	if err := r.conn(ctx).QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Consultation
	for rows.Next() {
		cn, err := scanConsultation(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, cn)
	}
	return items, total, rows.Err()
}

func (r *repoPG) DeletePrescriptions(ctx context.Context, consultationID int64) error {
	_, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM prescriptions WHERE consultation_id = $1`, consultationID)
	return err
}

func (r *repoPG) InsertPrescription(ctx context.Context, p *Prescription) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO prescriptions (consultation_id, medication_id, dosage, duration, instructions)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id`,
		p.ConsultationID, p.MedicationID, p.Dosage, p.Duration, p.Instructions,
	).Scan(&p.ID)
}

func (r *repoPG) ListPrescriptions(ctx context.Context, consultationID int64) ([]*Prescription, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT pr.id, pr.consultation_id, pr.medication_id, pr.dosage,
			pr.duration, pr.instructions, m.name
		FROM prescriptions pr
		JOIN medications m ON pr.medication_id = m.id
		WHERE pr.consultation_id = $1
		ORDER BY pr.id`, consultationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Prescription
	for rows.Next() {
		var p Prescription
		if err := rows.Scan(&p.ID, &p.ConsultationID, &p.MedicationID, &p.Dosage,
			&p.Duration, &p.Instructions, &p.MedicationName); err != nil {
			return nil, err
		}
		items = append(items, &p)
	}
	return items, rows.Err()
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

func (r *repoPG) AppointmentExists(ctx context.Context, appointmentID int64) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM appointments WHERE id = $1)`, appointmentID).Scan(&exists)
	return exists, err
}
