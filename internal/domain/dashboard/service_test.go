package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medicare/clinic/internal/platform/apperr"
)

type windowCall struct {
	from, to time.Time
}

type mockRepo struct {
	patients      int
	doctors       int
	lowStock      int
	apptWindows   []windowCall
	cnsltWindows  []windowCall
	apptCounts    []int
	cnsltCounts   []int
	knownPatients map[int64]bool
	appts         []*HistoryAppointment
	consults      []*HistoryConsultation
}

func (m *mockRepo) CountPatients(ctx context.Context) (int, error) { return m.patients, nil }
func (m *mockRepo) CountDoctors(ctx context.Context) (int, error)  { return m.doctors, nil }

func (m *mockRepo) CountAppointmentsBetween(ctx context.Context, from, to time.Time) (int, error) {
	m.apptWindows = append(m.apptWindows, windowCall{from, to})
	if len(m.apptCounts) > 0 {
		n := m.apptCounts[0]
		m.apptCounts = m.apptCounts[1:]
		return n, nil
	}
	return 0, nil
}

func (m *mockRepo) CountConsultationsBetween(ctx context.Context, from, to time.Time) (int, error) {
	m.cnsltWindows = append(m.cnsltWindows, windowCall{from, to})
	if len(m.cnsltCounts) > 0 {
		n := m.cnsltCounts[0]
		m.cnsltCounts = m.cnsltCounts[1:]
		return n, nil
	}
	return 0, nil
}

func (m *mockRepo) CountLowStockMedications(ctx context.Context, threshold int) (int, error) {
	return m.lowStock, nil
}

func (m *mockRepo) PatientExists(ctx context.Context, id int64) (bool, error) {
	return m.knownPatients[id], nil
}

func (m *mockRepo) ListPatientAppointments(ctx context.Context, id int64) ([]*HistoryAppointment, error) {
	return m.appts, nil
}

func (m *mockRepo) ListPatientConsultations(ctx context.Context, id int64) ([]*HistoryConsultation, error) {
	return m.consults, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestStatsWindows(t *testing.T) {
	repo := &mockRepo{patients: 12, doctors: 3, lowStock: 2, apptCounts: []int{4, 9}, cnsltCounts: []int{7}}
	// Wednesday 2026-03-11 15:04 local.
	now := time.Date(2026, 3, 11, 15, 4, 0, 0, time.Local)
	svc := NewService(repo).WithClock(fixedClock(now))

	st, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.PatientsTotal != 12 || st.DoctorsTotal != 3 || st.MedicationsLowStock != 2 {
		t.Errorf("scalar counts wrong: %+v", st)
	}
	if st.AppointmentsToday != 4 || st.AppointmentsWeek != 9 || st.ConsultationsMonth != 7 {
		t.Errorf("windowed counts wrong: %+v", st)
	}

	if len(repo.apptWindows) != 2 {
		t.Fatalf("got %d appointment windows, want 2", len(repo.apptWindows))
	}
	today := time.Date(2026, 3, 11, 0, 0, 0, 0, time.Local)
	if !repo.apptWindows[0].from.Equal(today) || !repo.apptWindows[0].to.Equal(today.AddDate(0, 0, 1)) {
		t.Errorf("today window = %v..%v", repo.apptWindows[0].from, repo.apptWindows[0].to)
	}
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
	if !repo.apptWindows[1].from.Equal(monday) || !repo.apptWindows[1].to.Equal(monday.AddDate(0, 0, 7)) {
		t.Errorf("week window = %v..%v", repo.apptWindows[1].from, repo.apptWindows[1].to)
	}

	monthFirst := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	if len(repo.cnsltWindows) != 1 ||
		!repo.cnsltWindows[0].from.Equal(monthFirst) ||
		!repo.cnsltWindows[0].to.Equal(monthFirst.AddDate(0, 1, 0)) {
		t.Errorf("month window = %+v", repo.cnsltWindows)
	}
}

func TestWeekStartOnSunday(t *testing.T) {
	// Sunday 2026-03-15 belongs to the week that began Monday 03-09.
	sunday := time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local)
	got := weekStart(sunday)
	want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("weekStart(sunday) = %v, want %v", got, want)
	}
}

func TestWeekStartOnMonday(t *testing.T) {
	monday := time.Date(2026, 3, 9, 0, 0, 1, 0, time.Local)
	if got := weekStart(monday); !got.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)) {
		t.Errorf("weekStart(monday) = %v", got)
	}
}

func TestPatientHistoryUnknownPatient(t *testing.T) {
	repo := &mockRepo{knownPatients: map[int64]bool{}}
	svc := NewService(repo)

	_, err := svc.PatientHistory(context.Background(), 42)
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestPatientHistoryEmptyTimelines(t *testing.T) {
	repo := &mockRepo{knownPatients: map[int64]bool{7: true}}
	svc := NewService(repo)

	h, err := svc.PatientHistory(context.Background(), 7)
	if err != nil {
		t.Fatalf("PatientHistory: %v", err)
	}
	if h.Appointments == nil || h.Consultations == nil {
		t.Error("timelines should be empty slices, not nil")
	}
	if len(h.Appointments) != 0 || len(h.Consultations) != 0 {
		t.Error("expected empty timelines")
	}
}
