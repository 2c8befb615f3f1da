package medication

import (
	"context"
	"errors"
	"testing"

	"github.com/medicare/clinic/internal/platform/apperr"
)

type mockRepo struct {
	meds          map[int64]*Medication
	nextID        int64
	prescriptions map[int64]int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		meds:          make(map[int64]*Medication),
		nextID:        1,
		prescriptions: make(map[int64]int),
	}
}

func (m *mockRepo) Create(ctx context.Context, med *Medication) error {
	med.ID = m.nextID
	m.nextID++
	cp := *med
	m.meds[med.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Medication, error) {
	med, ok := m.meds[id]
	if !ok {
		return nil, apperr.NewNotFound("medication", id)
	}
	return med, nil
}

func (m *mockRepo) Update(ctx context.Context, med *Medication) error {
	if _, ok := m.meds[med.ID]; !ok {
		return apperr.NewNotFound("medication", med.ID)
	}
	cp := *med
	m.meds[med.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.meds[id]; !ok {
		return apperr.NewNotFound("medication", id)
	}
	delete(m.meds, id)
	return nil
}

func (m *mockRepo) List(ctx context.Context, f Filter, limit, offset int) ([]*Medication, int, error) {
	var out []*Medication
	for _, med := range m.meds {
		out = append(out, med)
	}
	return out, len(out), nil
}

func (m *mockRepo) ListLowStock(ctx context.Context, threshold int) ([]*Medication, error) {
	var out []*Medication
	for _, med := range m.meds {
		if med.Stock < threshold {
			out = append(out, med)
		}
	}
	return out, nil
}

func (m *mockRepo) CountPrescriptions(ctx context.Context, id int64) (int, error) {
	return m.prescriptions[id], nil
}

func TestCreateRejectsNegativeStockAndPrice(t *testing.T) {
	svc := NewService(newMockRepo())
	err := svc.Create(context.Background(), &Medication{Name: "Aspirin", Stock: -1, Price: -2})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["stock"]; !ok {
		t.Error("missing stock field error")
	}
	if _, ok := ve.Fields["price"]; !ok {
		t.Error("missing price field error")
	}
}

func TestDeleteBlockedByPrescriptions(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	m := &Medication{Name: "Amoxicillin", Stock: 5, Price: 8.5}
	if err := svc.Create(ctx, m); err != nil {
		t.Fatalf("create: %v", err)
	}

	repo.prescriptions[m.ID] = 3
	err := svc.Delete(ctx, m.ID)
	var ce *apperr.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if _, ok := repo.meds[m.ID]; !ok {
		t.Fatal("medication was removed despite references")
	}

	repo.prescriptions[m.ID] = 0
	if err := svc.Delete(ctx, m.ID); err != nil {
		t.Fatalf("unreferenced delete: %v", err)
	}
}

func TestListLowStockUsesThreshold(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	low := &Medication{Name: "Low", Stock: LowStockThreshold - 1}
	ok := &Medication{Name: "Plenty", Stock: LowStockThreshold}
	if err := svc.Create(ctx, low); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Create(ctx, ok); err != nil {
		t.Fatalf("create: %v", err)
	}

	items, err := svc.ListLowStock(ctx)
	if err != nil {
		t.Fatalf("ListLowStock: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Low" {
		t.Errorf("unexpected low-stock list: %+v", items)
	}
}
