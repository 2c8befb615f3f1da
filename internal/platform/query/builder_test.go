package query

import (
	"reflect"
	"testing"
	"time"
)

func TestBuilderNoPredicates(t *testing.T) {
	b := New("patients", "id, last_name")
	if got := b.CountSQL(); got != "SELECT COUNT(*) FROM patients" {
		t.Errorf("CountSQL = %q", got)
	}
	wantData := "SELECT id, last_name FROM patients LIMIT $1 OFFSET $2"
	if got := b.DataSQL(20, 0); got != wantData {
		t.Errorf("DataSQL = %q, want %q", got, wantData)
	}
	if got := b.DataArgs(20, 0); !reflect.DeepEqual(got, []interface{}{20, 0}) {
		t.Errorf("DataArgs = %v", got)
	}
}

func TestBuilderILikeAnySharesOneParam(t *testing.T) {
	b := New("patients", "id").
		ILikeAny("mar", "last_name", "first_name", "email").
		Eq("gender", "F").
		OrderBy("last_name, first_name")

	wantCount := "SELECT COUNT(*) FROM patients WHERE (last_name ILIKE $1 OR first_name ILIKE $1 OR email ILIKE $1) AND gender = $2"
	if got := b.CountSQL(); got != wantCount {
		t.Errorf("CountSQL = %q\nwant %q", got, wantCount)
	}
	if got := b.CountArgs(); !reflect.DeepEqual(got, []interface{}{"%mar%", "F"}) {
		t.Errorf("CountArgs = %v", got)
	}

	wantData := "SELECT id FROM patients WHERE (last_name ILIKE $1 OR first_name ILIKE $1 OR email ILIKE $1) AND gender = $2 ORDER BY last_name, first_name LIMIT $3 OFFSET $4"
	if got := b.DataSQL(10, 20); got != wantData {
		t.Errorf("DataSQL = %q\nwant %q", got, wantData)
	}
	if got := b.DataArgs(10, 20); !reflect.DeepEqual(got, []interface{}{"%mar%", "F", 10, 20}) {
		t.Errorf("DataArgs = %v", got)
	}
}

func TestBuilderTimeRangeHalfOpen(t *testing.T) {
	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 0, 7)
	b := New("appointments", "id").TimeRange("scheduled_at", from, to)

	want := "SELECT COUNT(*) FROM appointments WHERE scheduled_at >= $1 AND scheduled_at < $2"
	if got := b.CountSQL(); got != want {
		t.Errorf("CountSQL = %q", got)
	}
	args := b.CountArgs()
	if len(args) != 2 || args[0] != from || args[1] != to {
		t.Errorf("CountArgs = %v", args)
	}
}

func TestBuilderDateOnCoversOneDay(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	b := New("appointments", "id").DateOn("scheduled_at", day)
	args := b.CountArgs()
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
	if args[1].(time.Time).Sub(args[0].(time.Time)) != 24*time.Hour {
		t.Errorf("window is not one day: %v .. %v", args[0], args[1])
	}
}

func TestBuilderJoin(t *testing.T) {
	b := New("appointments a", "a.id").
		Join("JOIN patients p ON a.patient_id = p.id").
		Eq("a.status", "scheduled")
	want := "SELECT COUNT(*) FROM appointments a JOIN patients p ON a.patient_id = p.id WHERE a.status = $1"
	if got := b.CountSQL(); got != want {
		t.Errorf("CountSQL = %q", got)
	}
}
