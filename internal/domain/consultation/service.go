package consultation

import (
	"context"

	"github.com/medicare/clinic/internal/domain/appointment"
	"github.com/medicare/clinic/internal/platform/apperr"
	"github.com/medicare/clinic/internal/platform/db"
)

// AppointmentMarker flips an appointment's status once a consultation
// fulfills it. Satisfied by appointment.Repository.
type AppointmentMarker interface {
	SetStatus(ctx context.Context, id int64, status string) error
}

type Service struct {
	repo  Repository
	appts AppointmentMarker
	tx    db.TxRunner
}

func NewService(repo Repository, appts AppointmentMarker, tx db.TxRunner) *Service {
	return &Service{repo: repo, appts: appts, tx: tx}
}

func (s *Service) validate(ctx context.Context, in *SaveInput) error {
	fields := map[string]string{}
	if in.PatientID <= 0 {
		fields["patient_id"] = "required"
	}
	if in.DoctorID <= 0 {
		fields["doctor_id"] = "required"
	}
	if in.OccurredAt.IsZero() {
		fields["occurred_at"] = "required"
	}

	if in.PatientID > 0 {
		ok, err := s.repo.PatientExists(ctx, in.PatientID)
		if err != nil {
			return err
		}
		if !ok {
			fields["patient_id"] = "unknown patient"
		}
	}
	if in.DoctorID > 0 {
		ok, err := s.repo.DoctorExists(ctx, in.DoctorID)
		if err != nil {
			return err
		}
		if !ok {
			fields["doctor_id"] = "unknown doctor"
		}
	}
	if in.AppointmentID != nil {
		ok, err := s.repo.AppointmentExists(ctx, *in.AppointmentID)
		if err != nil {
			return err
		}
		if !ok {
			fields["appointment_id"] = "unknown appointment"
		}
	}

	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}

// Save persists a full consultation form in one transaction: the record
// itself, the completed-status flip of a fulfilled appointment, and a full
// replacement of the prescription lines. Validation runs before any write;
// any failure rolls the whole submission back.
func (s *Service) Save(ctx context.Context, in *SaveInput) (*Consultation, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	cn := &Consultation{
		ID:            in.ID,
		PatientID:     in.PatientID,
		DoctorID:      in.DoctorID,
		AppointmentID: in.AppointmentID,
		OccurredAt:    in.OccurredAt,
		Reason:        in.Reason,
		Symptoms:      in.Symptoms,
		Diagnosis:     in.Diagnosis,
		Treatment:     in.Treatment,
		Notes:         in.Notes,
		WeightKg:      in.WeightKg,
		HeightCm:      in.HeightCm,
		BloodPressure: in.BloodPressure,
		TemperatureC:  in.TemperatureC,
		Pulse:         in.Pulse,
	}
	creating := in.ID == 0

	err := s.tx.RunTx(ctx, func(ctx context.Context) error {
		if creating {
			if err := s.repo.Insert(ctx, cn); err != nil {
				return err
			}
			if cn.AppointmentID != nil {
				if err := s.appts.SetStatus(ctx, *cn.AppointmentID, appointment.StatusCompleted); err != nil {
					return err
				}
			}
		} else {
			if err := s.repo.Update(ctx, cn); err != nil {
				return err
			}
			if err := s.repo.DeletePrescriptions(ctx, cn.ID); err != nil {
				return err
			}
		}

		for _, line := range in.Prescriptions {
			if line.MedicationID == 0 {
				continue // blank form row
			}
			p := &Prescription{
				ConsultationID: cn.ID,
				MedicationID:   line.MedicationID,
				Dosage:         line.Dosage,
				Duration:       line.Duration,
				Instructions:   line.Instructions,
			}
			if err := s.repo.InsertPrescription(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cn, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Consultation, error) {
	return s.repo.GetByID(ctx, id)
}

// GetDetails returns the consultation with display names and its
// prescription lines.
func (s *Service) GetDetails(ctx context.Context, id int64) (*Details, error) {
	cn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.ListPrescriptions(ctx, id)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []*Prescription{}
	}
	return &Details{Consultation: *cn, Prescriptions: lines}, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Consultation, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}
