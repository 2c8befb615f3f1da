package dashboard

import (
	"context"
	"time"

	"github.com/medicare/clinic/internal/domain/medication"
	"github.com/medicare/clinic/internal/platform/apperr"
)

// Service computes the landing-page stats and patient timelines. The
// clock is injectable so window arithmetic is testable; all windows are
// half-open [from, to) in the server's local zone.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the time source. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekStart returns the local Monday 00:00 of t's ISO week.
func weekStart(t time.Time) time.Time {
	d := dayStart(t)
	offset := int(d.Weekday()) - 1
	if offset < 0 {
		offset = 6 // Sunday belongs to the week that started the previous Monday
	}
	return d.AddDate(0, 0, -offset)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	now := s.now()
	today := dayStart(now)
	week := weekStart(now)
	month := monthStart(now)

	var st Stats
	var err error

	if st.PatientsTotal, err = s.repo.CountPatients(ctx); err != nil {
		return nil, err
	}
	if st.DoctorsTotal, err = s.repo.CountDoctors(ctx); err != nil {
		return nil, err
	}
	if st.AppointmentsToday, err = s.repo.CountAppointmentsBetween(ctx, today, today.AddDate(0, 0, 1)); err != nil {
		return nil, err
	}
	if st.AppointmentsWeek, err = s.repo.CountAppointmentsBetween(ctx, week, week.AddDate(0, 0, 7)); err != nil {
		return nil, err
	}
	if st.ConsultationsMonth, err = s.repo.CountConsultationsBetween(ctx, month, month.AddDate(0, 1, 0)); err != nil {
		return nil, err
	}
	if st.MedicationsLowStock, err = s.repo.CountLowStockMedications(ctx, medication.LowStockThreshold); err != nil {
		return nil, err
	}
	return &st, nil
}

// PatientHistory returns a patient's appointment and consultation
// timelines side by side, each newest first.
func (s *Service) PatientHistory(ctx context.Context, patientID int64) (*History, error) {
	ok, err := s.repo.PatientExists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NewNotFound("patient", patientID)
	}

	appts, err := s.repo.ListPatientAppointments(ctx, patientID)
	if err != nil {
		return nil, err
	}
	consults, err := s.repo.ListPatientConsultations(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if appts == nil {
		appts = []*HistoryAppointment{}
	}
	if consults == nil {
		consults = []*HistoryConsultation{}
	}
	return &History{PatientID: patientID, Appointments: appts, Consultations: consults}, nil
}
