package search

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultLimit bounds a search when the caller does not ask for a size.
const DefaultLimit = 10

// MaxLimit bounds a search regardless of what the caller asks for.
const MaxLimit = 50

// Type filter values accepted by Search, keyed by API name.
var typeFilters = map[string]string{
	"patients":      TypePatient,
	"medecins":      TypeDoctor,
	"rendezvous":    TypeAppointment,
	"consultations": TypeConsultation,
	"medicaments":   TypeMedication,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search runs the global lookup. Terms shorter than two characters return
// an empty set without touching the database. Results come back in fixed
// type order, with title-prefix matches moved to the front; relative
// order is otherwise preserved. This is a stable partition, not a scored
// ranking.
func (s *Service) Search(ctx context.Context, q, typ string, limit int) ([]*Result, error) {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < 2 {
		return []*Result{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	only := ""
	if typ != "" && typ != "all" {
		only = typeFilters[typ] // unknown filter matches nothing below
	}
	want := func(t string) bool {
		return typ == "" || typ == "all" || only == t
	}

	searches := []struct {
		t   string
		run func(context.Context, string, int) ([]*Result, error)
	}{
		{TypePatient, s.repo.SearchPatients},
		{TypeDoctor, s.repo.SearchDoctors},
		{TypeAppointment, s.repo.SearchAppointments},
		{TypeConsultation, s.repo.SearchConsultations},
		{TypeMedication, s.repo.SearchMedications},
	}

	var results []*Result
	for _, sr := range searches {
		if !want(sr.t) {
			continue
		}
		hits, err := sr.run(ctx, q, limit)
		if err != nil {
			return nil, err
		}
		results = append(results, hits...)
	}

	lower := strings.ToLower(q)
	sort.SliceStable(results, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(results[i].Title), lower)
		pj := strings.HasPrefix(strings.ToLower(results[j].Title), lower)
		return pi && !pj
	})

	if len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []*Result{}
	}
	return results, nil
}
