package consultation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medicare/clinic/internal/domain/appointment"
	"github.com/medicare/clinic/internal/platform/apperr"
)

type mockRepo struct {
	consultations map[int64]*Consultation
	prescriptions map[int64][]*Prescription
	nextID        int64
	nextRxID      int64
	patients      map[int64]bool
	doctors       map[int64]bool
	appointments  map[int64]bool
	failInsertRx  bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		consultations: make(map[int64]*Consultation),
		prescriptions: make(map[int64][]*Prescription),
		nextID:        1,
		nextRxID:      1,
		patients:      map[int64]bool{1: true},
		doctors:       map[int64]bool{1: true},
		appointments:  map[int64]bool{5: true},
	}
}

func (m *mockRepo) Insert(ctx context.Context, cn *Consultation) error {
	cn.ID = m.nextID
	m.nextID++
	cn.CreatedAt = time.Now()
	cp := *cn
	m.consultations[cn.ID] = &cp
	return nil
}

func (m *mockRepo) Update(ctx context.Context, cn *Consultation) error {
	if _, ok := m.consultations[cn.ID]; !ok {
		return apperr.NewNotFound("consultation", cn.ID)
	}
	cp := *cn
	m.consultations[cn.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Consultation, error) {
	cn, ok := m.consultations[id]
	if !ok {
		return nil, apperr.NewNotFound("consultation", id)
	}
	cp := *cn
	return &cp, nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.consultations[id]; !ok {
		return apperr.NewNotFound("consultation", id)
	}
	delete(m.consultations, id)
	delete(m.prescriptions, id)
	return nil
}

func (m *mockRepo) List(ctx context.Context, f Filter, limit, offset int) ([]*Consultation, int, error) {
	var out []*Consultation
	for _, cn := range m.consultations {
		out = append(out, cn)
	}
	return out, len(out), nil
}

func (m *mockRepo) DeletePrescriptions(ctx context.Context, id int64) error {
	delete(m.prescriptions, id)
	return nil
}

func (m *mockRepo) InsertPrescription(ctx context.Context, p *Prescription) error {
	if m.failInsertRx {
		return errors.New("insert failed")
	}
	p.ID = m.nextRxID
	m.nextRxID++
	cp := *p
	m.prescriptions[p.ConsultationID] = append(m.prescriptions[p.ConsultationID], &cp)
	return nil
}

func (m *mockRepo) ListPrescriptions(ctx context.Context, id int64) ([]*Prescription, error) {
	return m.prescriptions[id], nil
}

func (m *mockRepo) PatientExists(ctx context.Context, id int64) (bool, error) {
	return m.patients[id], nil
}

func (m *mockRepo) DoctorExists(ctx context.Context, id int64) (bool, error) {
	return m.doctors[id], nil
}

func (m *mockRepo) AppointmentExists(ctx context.Context, id int64) (bool, error) {
	return m.appointments[id], nil
}

type mockMarker struct {
	statuses map[int64]string
}

func (m *mockMarker) SetStatus(ctx context.Context, id int64, status string) error {
	m.statuses[id] = status
	return nil
}

// recordingTx tracks whether a transaction body reported an error, so
// tests can assert a rollback would have happened.
type recordingTx struct {
	rolledBack bool
}

func (r *recordingTx) RunTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		r.rolledBack = true
		return err
	}
	return nil
}

func newTestService() (*Service, *mockRepo, *mockMarker, *recordingTx) {
	repo := newMockRepo()
	marker := &mockMarker{statuses: make(map[int64]string)}
	tx := &recordingTx{}
	return NewService(repo, marker, tx), repo, marker, tx
}

func validInput() *SaveInput {
	return &SaveInput{
		PatientID:  1,
		DoctorID:   1,
		OccurredAt: time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local),
	}
}

func TestSaveValidationBlocksAllWrites(t *testing.T) {
	svc, repo, marker, _ := newTestService()

	in := validInput()
	in.PatientID = 99
	apptID := int64(77)
	in.AppointmentID = &apptID
	in.Prescriptions = []PrescriptionInput{{MedicationID: 3, Dosage: "1/day"}}

	_, err := svc.Save(context.Background(), in)
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Fields["patient_id"] != "unknown patient" {
		t.Errorf("patient_id error = %q", ve.Fields["patient_id"])
	}
	if ve.Fields["appointment_id"] != "unknown appointment" {
		t.Errorf("appointment_id error = %q", ve.Fields["appointment_id"])
	}
	if len(repo.consultations) != 0 || len(repo.prescriptions) != 0 {
		t.Error("writes happened despite validation failure")
	}
	if len(marker.statuses) != 0 {
		t.Error("appointment status changed despite validation failure")
	}
}

func TestSaveFirstTimeCompletesAppointment(t *testing.T) {
	svc, _, marker, _ := newTestService()

	in := validInput()
	apptID := int64(5)
	in.AppointmentID = &apptID

	cn, err := svc.Save(context.Background(), in)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if cn.ID == 0 {
		t.Error("id not assigned")
	}
	if marker.statuses[5] != appointment.StatusCompleted {
		t.Errorf("appointment status = %q, want completed", marker.statuses[5])
	}
}

func TestSaveEditDoesNotTouchAppointment(t *testing.T) {
	svc, _, marker, _ := newTestService()

	apptID := int64(5)
	in := validInput()
	in.AppointmentID = &apptID
	cn, err := svc.Save(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	delete(marker.statuses, 5)

	in.ID = cn.ID
	if _, err := svc.Save(context.Background(), in); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if _, ok := marker.statuses[5]; ok {
		t.Error("edit flipped the appointment status again")
	}
}

func TestSaveSkipsBlankPrescriptionLines(t *testing.T) {
	svc, repo, _, _ := newTestService()

	in := validInput()
	in.Prescriptions = []PrescriptionInput{
		{MedicationID: 3, Dosage: "1/day"},
		{MedicationID: 0}, // blank form row
		{MedicationID: 4, Dosage: "2/day"},
	}
	cn, err := svc.Save(context.Background(), in)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	lines := repo.prescriptions[cn.ID]
	if len(lines) != 2 {
		t.Fatalf("got %d prescription lines, want 2", len(lines))
	}
	if lines[0].MedicationID != 3 || lines[1].MedicationID != 4 {
		t.Errorf("unexpected medication ids: %d, %d", lines[0].MedicationID, lines[1].MedicationID)
	}
}

func TestSaveEditReplacesPrescriptions(t *testing.T) {
	svc, repo, _, _ := newTestService()

	in := validInput()
	in.Prescriptions = []PrescriptionInput{
		{MedicationID: 3, Dosage: "1/day"},
		{MedicationID: 4, Dosage: "2/day"},
	}
	cn, err := svc.Save(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in.ID = cn.ID
	in.Prescriptions = []PrescriptionInput{{MedicationID: 9, Dosage: "3/day"}}
	if _, err := svc.Save(context.Background(), in); err != nil {
		t.Fatalf("edit: %v", err)
	}

	lines := repo.prescriptions[cn.ID]
	if len(lines) != 1 {
		t.Fatalf("got %d prescription lines, want 1 after replacement", len(lines))
	}
	if lines[0].MedicationID != 9 {
		t.Errorf("medication_id = %d, want 9", lines[0].MedicationID)
	}
}

func TestSavePrescriptionFailureRollsBack(t *testing.T) {
	svc, repo, _, tx := newTestService()
	repo.failInsertRx = true

	in := validInput()
	in.Prescriptions = []PrescriptionInput{{MedicationID: 3, Dosage: "1/day"}}
	if _, err := svc.Save(context.Background(), in); err == nil {
		t.Fatal("expected error from prescription insert")
	}
	if !tx.rolledBack {
		t.Error("transaction body error did not propagate for rollback")
	}
}

func TestGetDetailsIncludesPrescriptions(t *testing.T) {
	svc, _, _, _ := newTestService()

	in := validInput()
	in.Prescriptions = []PrescriptionInput{{MedicationID: 3, Dosage: "1/day"}}
	cn, err := svc.Save(context.Background(), in)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	d, err := svc.GetDetails(context.Background(), cn.ID)
	if err != nil {
		t.Fatalf("GetDetails: %v", err)
	}
	if len(d.Prescriptions) != 1 {
		t.Fatalf("got %d prescriptions, want 1", len(d.Prescriptions))
	}
}

func TestGetDetailsMissingConsultation(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.GetDetails(context.Background(), 123)
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
