package medication

import (
	"context"
	"strings"

	"github.com/medicare/clinic/internal/platform/apperr"
)

// Service implements inventory use cases over the repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validate(m *Medication) error {
	fields := map[string]string{}
	if strings.TrimSpace(m.Name) == "" {
		fields["name"] = "required"
	}
	if m.Stock < 0 {
		fields["stock"] = "must not be negative"
	}
	if m.Price < 0 {
		fields["price"] = "must not be negative"
	}
	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, m *Medication) error {
	if err := validate(m); err != nil {
		return err
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, id int64) (*Medication, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, m *Medication) error {
	if err := validate(m); err != nil {
		return err
	}
	return s.repo.Update(ctx, m)
}

// Delete removes a medication unless prescriptions still reference it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.repo.CountPrescriptions(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.NewConflict("medication is referenced by %d prescription(s)", n)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Medication, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

// ListLowStock returns items below the restock threshold.
func (s *Service) ListLowStock(ctx context.Context) ([]*Medication, error) {
	return s.repo.ListLowStock(ctx, LowStockThreshold)
}
