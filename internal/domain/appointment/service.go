package appointment

import (
	"context"
	"time"

	"github.com/medicare/clinic/internal/platform/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) validate(ctx context.Context, a *Appointment) error {
	fields := map[string]string{}
	if a.PatientID <= 0 {
		fields["patient_id"] = "required"
	}
	if a.DoctorID <= 0 {
		fields["doctor_id"] = "required"
	}
	if a.ScheduledAt.IsZero() {
		fields["scheduled_at"] = "required"
	}
	if a.Status != "" && !ValidStatus(a.Status) {
		fields["status"] = "unknown status"
	}

	if a.PatientID > 0 {
		ok, err := s.repo.PatientExists(ctx, a.PatientID)
		if err != nil {
			return err
		}
		if !ok {
			fields["patient_id"] = "unknown patient"
		}
	}
	if a.DoctorID > 0 {
		ok, err := s.repo.DoctorExists(ctx, a.DoctorID)
		if err != nil {
			return err
		}
		if !ok {
			fields["doctor_id"] = "unknown doctor"
		}
	}

	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if err := s.validate(ctx, a); err != nil {
		return err
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id int64) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, in *Appointment) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.PatientID = in.PatientID
	a.DoctorID = in.DoctorID
	a.ScheduledAt = in.ScheduledAt
	a.Reason = in.Reason
	a.Notes = in.Notes
	if in.Status != "" {
		a.Status = in.Status
	}
	if err := s.validate(ctx, a); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

// Calendar returns appointments in [from, to), optionally for one doctor.
func (s *Service) Calendar(ctx context.Context, doctorID int64, from, to time.Time) ([]*Appointment, error) {
	if !to.After(from) {
		return nil, apperr.NewValidation("to", "must be after from")
	}
	return s.repo.ListBetween(ctx, doctorID, from, to)
}
