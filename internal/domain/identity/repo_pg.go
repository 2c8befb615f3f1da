package identity

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

// =========== User repository ===========

type userRepoPG struct{ pool *pgxpool.Pool }

// NewUserRepoPG creates the PostgreSQL-backed user repository.
func NewUserRepoPG(pool *pgxpool.Pool) UserRepository {
	return &userRepoPG{pool: pool}
}

func (r *userRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const userCols = `id, name, email, password_hash, role, last_login, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.LastLogin, &u.CreatedAt)
	return &u, err
}

func (r *userRepoPG) CreateUser(ctx context.Context, u *User) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at`,
		u.Name, u.Email, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *userRepoPG) GetUserByID(ctx context.Context, id int64) (*User, error) {
	u, err := scanUser(r.conn(ctx).QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NewNotFound("user", id)
	}
	return u, err
}

func (r *userRepoPG) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(r.conn(ctx).QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NewNotFound("user", 0)
	}
	return u, err
}

func (r *userRepoPG) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	return err
}

func (r *userRepoPG) DeleteUser(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("user", id)
	}
	return nil
}

// =========== Doctor repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

// NewDoctorRepoPG creates the PostgreSQL-backed doctor repository.
func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepoPG{pool: pool}
}

func (r *doctorRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const doctorCols = `d.id, d.user_id, u.name, u.email, d.specialty, d.phone, d.address`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Email, &d.Specialty, &d.Phone, &d.Address)
	return &d, err
}

func (r *doctorRepoPG) CreateDoctor(ctx context.Context, d *Doctor) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctors (user_id, specialty, phone, address)
		VALUES ($1,$2,$3,$4)
		RETURNING id`,
		d.UserID, d.Specialty, d.Phone, d.Address,
	).Scan(&d.ID)
}

func (r *doctorRepoPG) GetDoctorByID(ctx context.Context, id int64) (*Doctor, error) {
	d, err := scanDoctor(r.conn(ctx).QueryRow(ctx, `
		SELECT `+doctorCols+`
		FROM doctors d JOIN users u ON d.user_id = u.id
		WHERE d.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NewNotFound("doctor", id)
	}
	return d, err
}

// UpdateDoctor writes both the profile row and the backing user's name
// and email; callers run it inside a transaction.
func (r *doctorRepoPG) UpdateDoctor(ctx context.Context, d *Doctor) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctors SET specialty=$2, phone=$3, address=$4 WHERE id = $1`,
		d.ID, d.Specialty, d.Phone, d.Address)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("doctor", d.ID)
	}
	_, err = r.conn(ctx).Exec(ctx,
		`UPDATE users SET name=$2, email=$3 WHERE id = $1`, d.UserID, d.Name, d.Email)
	return err
}

func (r *doctorRepoPG) DeleteDoctor(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("doctor", id)
	}
	return nil
}

func (r *doctorRepoPG) ListDoctors(ctx context.Context, f Filter, limit, offset int) ([]*Doctor, int, error) {
	qb := query.New("doctors d", doctorCols).
		Join("JOIN users u ON d.user_id = u.id")
	if f.Term != "" {
		qb.ILikeAny(f.Term, "u.name", "d.specialty")
	}
	qb.OrderBy("u.name")

	var total int
	if err := r.conn(ctx).QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

func (r *doctorRepoPG) CountAppointments(ctx context.Context, doctorID int64) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE doctor_id = $1`, doctorID).Scan(&n)
	return n, err
}
