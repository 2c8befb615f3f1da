package patient

import (
	"context"
	"net/mail"
	"strings"

	"github.com/medicare/clinic/internal/platform/apperr"
)

// Service implements patient use cases over the repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) validate(p *Patient) error {
	fields := map[string]string{}
	if strings.TrimSpace(p.LastName) == "" {
		fields["last_name"] = "required"
	}
	if strings.TrimSpace(p.FirstName) == "" {
		fields["first_name"] = "required"
	}
	if p.Email != nil && *p.Email != "" {
		if _, err := mail.ParseAddress(*p.Email); err != nil {
			fields["email"] = "invalid email address"
		}
	}
	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}

// Create validates and stores a new patient. Email uniqueness is enforced
// here, at creation only.
func (s *Service) Create(ctx context.Context, p *Patient) error {
	if err := s.validate(p); err != nil {
		return err
	}
	if p.Email != nil && *p.Email != "" {
		exists, err := s.repo.EmailExists(ctx, *p.Email)
		if err != nil {
			return err
		}
		if exists {
			return apperr.NewValidation("email", "already registered")
		}
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

// Delete removes a patient unless appointments or consultations still
// reference it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	appts, err := s.repo.CountAppointments(ctx, id)
	if err != nil {
		return err
	}
	if appts > 0 {
		return apperr.NewConflict("patient has %d appointment(s); delete them first", appts)
	}
	consults, err := s.repo.CountConsultations(ctx, id)
	if err != nil {
		return err
	}
	if consults > 0 {
		return apperr.NewConflict("patient has %d consultation(s); delete them first", consults)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}
