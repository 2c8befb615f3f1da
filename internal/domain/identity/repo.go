package identity

import (
	"context"
	"time"
)

// UserRepository is the persistence contract for staff accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	DeleteUser(ctx context.Context, id int64) error
}

// DoctorRepository is the persistence contract for doctor profiles.
type DoctorRepository interface {
	CreateDoctor(ctx context.Context, d *Doctor) error
	GetDoctorByID(ctx context.Context, id int64) (*Doctor, error)
	UpdateDoctor(ctx context.Context, d *Doctor) error
	DeleteDoctor(ctx context.Context, id int64) error
	ListDoctors(ctx context.Context, f Filter, limit, offset int) ([]*Doctor, int, error)
	CountAppointments(ctx context.Context, doctorID int64) (int, error)
}
