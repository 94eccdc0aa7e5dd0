package mirror

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestMirror(t *testing.T) *Mirror {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	backend, err := NewGormBackend(db)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	m := New(backend)
	m.SetLogf(t.Logf)
	return m
}

func TestLoad_NeverWrittenSlotLeavesFallback(t *testing.T) {
	m := openTestMirror(t)

	got := map[string]int{"fallback": 1}
	if ok := m.Load(context.Background(), t.Name(), &got); ok {
		t.Fatalf("expected miss for never-written slot")
	}
	if got["fallback"] != 1 {
		t.Fatalf("fallback mutated: %v", got)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	m := openTestMirror(t)
	ctx := context.Background()

	type profile struct {
		Name   string   `json:"name"`
		Age    int      `json:"age"`
		Tags   []string `json:"tags"`
		Nested struct {
			WaterMl int `json:"water_ml"`
		} `json:"nested"`
	}
	want := profile{Name: "Riya", Age: 29, Tags: []string{"Pitta", "vegetarian"}}
	want.Nested.WaterMl = 750

	m.Save(ctx, t.Name(), want)

	var got profile
	if ok := m.Load(ctx, t.Name(), &got); !ok {
		t.Fatalf("expected hit after save")
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestSave_OverwritesPriorContent(t *testing.T) {
	m := openTestMirror(t)
	ctx := context.Background()

	m.Save(ctx, t.Name(), []int{1, 2, 3})
	m.Save(ctx, t.Name(), []int{9})

	var got []int
	if ok := m.Load(ctx, t.Name(), &got); !ok {
		t.Fatalf("expected hit")
	}
	if len(got) != 1 || got[0] != 9 {
		t.Fatalf("expected overwrite, got %v", got)
	}
}

func TestLoad_CorruptDataFallsBack(t *testing.T) {
	db, err := gorm.Open(gormsqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	backend, err := NewGormBackend(db)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := backend.Put(context.Background(), t.Name(), []byte("{not json")); err != nil {
		t.Fatalf("put: %v", err)
	}

	m := New(backend)
	m.SetLogf(t.Logf)

	got := 42
	if ok := m.Load(context.Background(), t.Name(), &got); ok {
		t.Fatalf("expected decode failure to report a miss")
	}
	if got != 42 {
		t.Fatalf("fallback mutated: %d", got)
	}
}

type failingBackend struct{}

func (failingBackend) Get(ctx context.Context, slot string) ([]byte, error) {
	return nil, errors.New("storage unavailable")
}

func (failingBackend) Put(ctx context.Context, slot string, data []byte) error {
	return errors.New("quota exceeded")
}

func TestUnavailableBackend_IsSilentToCallers(t *testing.T) {
	m := New(failingBackend{})

	var logged []string
	m.SetLogf(func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	})

	got := "default"
	if ok := m.Load(context.Background(), "slot", &got); ok {
		t.Fatalf("expected miss")
	}
	if got != "default" {
		t.Fatalf("fallback mutated: %q", got)
	}

	// must not panic or surface the error
	m.Save(context.Background(), "slot", "value")

	if len(logged) != 2 {
		t.Fatalf("expected both failures logged, got %v", logged)
	}
}

func TestWeeklyPlanSlot(t *testing.T) {
	if got := WeeklyPlanSlot("req_1001"); got != "weekly-plan:req_1001" {
		t.Fatalf("unexpected slot name %q", got)
	}
}
