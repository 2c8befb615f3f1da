package identity

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/medicare/clinic/internal/platform/apperr"
	"github.com/medicare/clinic/internal/platform/auth"
	"github.com/medicare/clinic/internal/platform/db"
)

// ErrInvalidCredentials is returned by Authenticate for an unknown email
// or a wrong password; the boundary maps it to 401 without revealing
// which of the two failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service implements account and doctor-profile use cases.
type Service struct {
	users   UserRepository
	doctors DoctorRepository
	tx      db.TxRunner
	tokens  *auth.TokenIssuer
}

func NewService(users UserRepository, doctors DoctorRepository, tx db.TxRunner, tokens *auth.TokenIssuer) *Service {
	return &Service{users: users, doctors: doctors, tx: tx, tokens: tokens}
}

// Authenticate verifies credentials, records the login time and mints an
// access token.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		var nf *apperr.NotFoundError
		if errors.As(err, &nf) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, u.ID, now); err != nil {
		return "", nil, err
	}
	u.LastLogin = &now

	token, err := s.tokens.Issue(u.ID, u.Name, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func validateDoctorInput(in *DoctorInput, creating bool) error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "required"
	}
	if strings.TrimSpace(in.Email) == "" {
		fields["email"] = "required"
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		fields["email"] = "invalid email address"
	}
	if strings.TrimSpace(in.Specialty) == "" {
		fields["specialty"] = "required"
	}
	if creating && len(in.Password) < 8 {
		fields["password"] = "must be at least 8 characters"
	}
	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}

// CreateDoctor creates the backing user (role doctor) and the profile
// row in one transaction.
func (s *Service) CreateDoctor(ctx context.Context, in *DoctorInput) (*Doctor, error) {
	if err := validateDoctorInput(in, true); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	d := &Doctor{
		Name:      in.Name,
		Email:     in.Email,
		Specialty: in.Specialty,
		Phone:     in.Phone,
		Address:   in.Address,
	}
	err = s.tx.RunTx(ctx, func(ctx context.Context) error {
		u := &User{Name: in.Name, Email: in.Email, PasswordHash: hash, Role: RoleDoctor}
		if err := s.users.CreateUser(ctx, u); err != nil {
			return err
		}
		d.UserID = u.ID
		return s.doctors.CreateDoctor(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*Doctor, error) {
	return s.doctors.GetDoctorByID(ctx, id)
}

// UpdateDoctor writes profile and backing-user fields atomically.
func (s *Service) UpdateDoctor(ctx context.Context, id int64, in *DoctorInput) (*Doctor, error) {
	if err := validateDoctorInput(in, false); err != nil {
		return nil, err
	}
	d, err := s.doctors.GetDoctorByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Name = in.Name
	d.Email = in.Email
	d.Specialty = in.Specialty
	d.Phone = in.Phone
	d.Address = in.Address

	if err := s.tx.RunTx(ctx, func(ctx context.Context) error {
		return s.doctors.UpdateDoctor(ctx, d)
	}); err != nil {
		return nil, err
	}
	return d, nil
}

// DeleteDoctor removes the profile and its backing user together, unless
// appointments still reference the doctor.
func (s *Service) DeleteDoctor(ctx context.Context, id int64) error {
	d, err := s.doctors.GetDoctorByID(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.doctors.CountAppointments(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.NewConflict("doctor has %d appointment(s); delete them first", n)
	}
	return s.tx.RunTx(ctx, func(ctx context.Context) error {
		if err := s.doctors.DeleteDoctor(ctx, id); err != nil {
			return err
		}
		return s.users.DeleteUser(ctx, d.UserID)
	})
}

func (s *Service) ListDoctors(ctx context.Context, f Filter, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.ListDoctors(ctx, f, limit, offset)
}
