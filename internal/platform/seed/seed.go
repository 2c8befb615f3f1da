// Package seed provisions a first-run database: one admin account and a
// small demo dataset. It is a no-op whenever any user already exists, so
// running it repeatedly is safe.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/medicare/clinic/internal/platform/auth"
	"github.com/medicare/clinic/internal/platform/db"
)

// DefaultAdminPassword is only meant for local development; change it on
// first login in any shared environment.
const DefaultAdminPassword = "admin1234"

type demoDoctor struct {
	name, email, specialty, phone string
}

type demoPatient struct {
	last, first, gender, phone string
	birth                      time.Time
}

type demoMedication struct {
	name, description string
	stock             int
	price             float64
}

// Run populates an empty database. Everything is inserted in one
// transaction; a non-empty users table short-circuits immediately.
func Run(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	var existing int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&existing); err != nil {
		return fmt.Errorf("seed: counting users: %w", err)
	}
	if existing > 0 {
		logger.Info().Int("users", existing).Msg("seed skipped, database not empty")
		return nil
	}

	err := db.WithTx(ctx, pool, func(ctx context.Context) error {
		tx := db.TxFromContext(ctx)

		adminHash, err := auth.HashPassword(DefaultAdminPassword)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO users (name, email, password_hash, role)
			VALUES ($1,$2,$3,'admin')`,
			"Administrateur", "admin@clinic.local", adminHash); err != nil {
			return fmt.Errorf("admin user: %w", err)
		}

		doctors := []demoDoctor{
			{"Sophie Martin", "s.martin@clinic.local", "Médecine générale", "0601020304"},
			{"Paul Durand", "p.durand@clinic.local", "Cardiologie", "0605060708"},
		}
		doctorIDs := make([]int64, 0, len(doctors))
		for _, d := range doctors {
			hash, err := auth.HashPassword(DefaultAdminPassword)
			if err != nil {
				return err
			}
			var userID int64
			if err := tx.QueryRow(ctx, `
				INSERT INTO users (name, email, password_hash, role)
				VALUES ($1,$2,$3,'doctor') RETURNING id`,
				d.name, d.email, hash).Scan(&userID); err != nil {
				return fmt.Errorf("doctor user %s: %w", d.email, err)
			}
			var doctorID int64
			if err := tx.QueryRow(ctx, `
				INSERT INTO doctors (user_id, specialty, phone)
				VALUES ($1,$2,$3) RETURNING id`,
				userID, d.specialty, d.phone).Scan(&doctorID); err != nil {
				return fmt.Errorf("doctor profile %s: %w", d.email, err)
			}
			doctorIDs = append(doctorIDs, doctorID)
		}

		patients := []demoPatient{
			{"Dubois", "Marie", "F", "0611223344", time.Date(1985, 4, 12, 0, 0, 0, 0, time.UTC)},
			{"Lefevre", "Jean", "M", "0622334455", time.Date(1972, 11, 3, 0, 0, 0, 0, time.UTC)},
			{"Moreau", "Claire", "F", "0633445566", time.Date(1994, 7, 25, 0, 0, 0, 0, time.UTC)},
		}
		patientIDs := make([]int64, 0, len(patients))
		for _, p := range patients {
			var id int64
			if err := tx.QueryRow(ctx, `
				INSERT INTO patients (last_name, first_name, birth_date, gender, phone)
				VALUES ($1,$2,$3,$4,$5) RETURNING id`,
				p.last, p.first, p.birth, p.gender, p.phone).Scan(&id); err != nil {
				return fmt.Errorf("patient %s: %w", p.last, err)
			}
			patientIDs = append(patientIDs, id)
		}

		medications := []demoMedication{
			{"Paracétamol 500mg", "Antalgique et antipyrétique", 120, 2.50},
			{"Amoxicilline 1g", "Antibiotique à large spectre", 45, 6.80},
			{"Ibuprofène 400mg", "Anti-inflammatoire non stéroïdien", 8, 3.20},
		}
		for _, m := range medications {
			if _, err := tx.Exec(ctx, `
				INSERT INTO medications (name, description, stock, price)
				VALUES ($1,$2,$3,$4)`,
				m.name, m.description, m.stock, m.price); err != nil {
				return fmt.Errorf("medication %s: %w", m.name, err)
			}
		}

		tomorrow := time.Now().AddDate(0, 0, 1)
		slot := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 9, 0, 0, 0, time.Local)
		for i, pid := range patientIDs {
			if _, err := tx.Exec(ctx, `
				INSERT INTO appointments (patient_id, doctor_id, scheduled_at, reason, status)
				VALUES ($1,$2,$3,$4,'scheduled')`,
				pid, doctorIDs[i%len(doctorIDs)], slot.Add(time.Duration(i)*30*time.Minute),
				"Consultation de suivi"); err != nil {
				return fmt.Errorf("appointment for patient %d: %w", pid, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info().
		Str("admin", "admin@clinic.local").
		Msg("seed complete")
	return nil
}
