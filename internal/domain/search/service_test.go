package search

import (
	"context"
	"testing"
)

type mockRepo struct {
	patients      []*Result
	doctors       []*Result
	appointments  []*Result
	consultations []*Result
	medications   []*Result
	calls         []string
}

func capped(items []*Result, limit int) []*Result {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

func (m *mockRepo) SearchPatients(ctx context.Context, term string, limit int) ([]*Result, error) {
	m.calls = append(m.calls, TypePatient)
	return capped(m.patients, limit), nil
}

func (m *mockRepo) SearchDoctors(ctx context.Context, term string, limit int) ([]*Result, error) {
	m.calls = append(m.calls, TypeDoctor)
	return capped(m.doctors, limit), nil
}

func (m *mockRepo) SearchAppointments(ctx context.Context, term string, limit int) ([]*Result, error) {
	m.calls = append(m.calls, TypeAppointment)
	return capped(m.appointments, limit), nil
}

func (m *mockRepo) SearchConsultations(ctx context.Context, term string, limit int) ([]*Result, error) {
	m.calls = append(m.calls, TypeConsultation)
	return capped(m.consultations, limit), nil
}

func (m *mockRepo) SearchMedications(ctx context.Context, term string, limit int) ([]*Result, error) {
	m.calls = append(m.calls, TypeMedication)
	return capped(m.medications, limit), nil
}

func result(id int64, typ, title string) *Result {
	return &Result{ID: id, Type: typ, Title: title}
}

func TestSearchShortTermSkipsDatabase(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	for _, q := range []string{"", "a", "  a  ", " "} {
		results, err := svc.Search(context.Background(), q, "all", 10)
		if err != nil {
			t.Fatalf("Search(%q): %v", q, err)
		}
		if len(results) != 0 {
			t.Errorf("Search(%q) returned %d results, want 0", q, len(results))
		}
	}
	if len(repo.calls) != 0 {
		t.Errorf("short terms ran %d queries, want 0", len(repo.calls))
	}
}

func TestSearchFixedTypeOrder(t *testing.T) {
	repo := &mockRepo{
		patients:    []*Result{result(1, TypePatient, "Zorro Alice")},
		doctors:     []*Result{result(2, TypeDoctor, "Zr House")},
		medications: []*Result{result(3, TypeMedication, "Zyrtec")},
	}
	svc := NewService(repo)

	results, err := svc.Search(context.Background(), "zz", "all", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	// No prefix matches for "zz", so the fixed type order holds.
	wantOrder := []string{TypePatient, TypeDoctor, TypeMedication}
	for i, w := range wantOrder {
		if results[i].Type != w {
			t.Errorf("results[%d].Type = %s, want %s", i, results[i].Type, w)
		}
	}
}

func TestSearchPrefixPartitionIsStable(t *testing.T) {
	repo := &mockRepo{
		patients: []*Result{
			result(1, TypePatient, "Dupres Jean"),   // no prefix
			result(2, TypePatient, "Martin Paul"),   // prefix
			result(3, TypePatient, "Martini Clara"), // prefix
		},
		doctors: []*Result{
			result(4, TypeDoctor, "Dr Martin"), // no prefix ("Dr ..." title)
		},
	}
	svc := NewService(repo)

	results, err := svc.Search(context.Background(), "mar", "all", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	wantIDs := []int64{2, 3, 1, 4}
	if len(results) != len(wantIDs) {
		t.Fatalf("got %d results, want %d", len(results), len(wantIDs))
	}
	for i, w := range wantIDs {
		if results[i].ID != w {
			t.Errorf("results[%d].ID = %d, want %d", i, results[i].ID, w)
		}
	}
}

func TestSearchTypeFilter(t *testing.T) {
	repo := &mockRepo{
		patients:    []*Result{result(1, TypePatient, "Martin Paul")},
		medications: []*Result{result(2, TypeMedication, "Martex")},
	}
	svc := NewService(repo)

	results, err := svc.Search(context.Background(), "mar", "medicaments", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Type != TypeMedication {
		t.Errorf("type filter leaked other types: %+v", results)
	}
	if len(repo.calls) != 1 || repo.calls[0] != TypeMedication {
		t.Errorf("queries ran = %v, want only medications", repo.calls)
	}
}

func TestSearchTruncatesToLimit(t *testing.T) {
	repo := &mockRepo{}
	for i := int64(1); i <= 8; i++ {
		repo.patients = append(repo.patients, result(i, TypePatient, "Martin"))
		repo.doctors = append(repo.doctors, result(100+i, TypeDoctor, "Dr Martin"))
	}
	svc := NewService(repo)

	results, err := svc.Search(context.Background(), "mar", "all", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 5 {
		t.Errorf("got %d results, want 5", len(results))
	}
}

func TestSearchDefaultLimit(t *testing.T) {
	repo := &mockRepo{}
	for i := int64(1); i <= 30; i++ {
		repo.patients = append(repo.patients, result(i, TypePatient, "Martin"))
	}
	svc := NewService(repo)

	results, err := svc.Search(context.Background(), "mar", "all", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != DefaultLimit {
		t.Errorf("got %d results, want default %d", len(results), DefaultLimit)
	}
}
