package memory

import (
	"context"
	"errors"
	"testing"

	"resilience-lab/internal/domain"
	"resilience-lab/internal/storage"
)

func testRun(id string, createdAtMs int64, kind domain.DisruptionKind) *domain.SimulationRun {
	return &domain.SimulationRun{
		RunID:        id,
		CreatedAtMs:  createdAtMs,
		Kind:         kind,
		Severity:     0.5,
		DurationDays: 7,
		Shape:        domain.ShapeLogistic,
		HorizonDays:  60,
		Baseline:     1.0,
	}
}

func TestRunStore_InsertAndGet(t *testing.T) {
	s := NewRunStore()
	ctx := context.Background()

	run := testRun("run-1", 100, domain.KindPortClosure)
	if err := s.Insert(ctx, run); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := s.GetByID(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.RunID != "run-1" || got.Kind != domain.KindPortClosure {
		t.Errorf("got %+v, want the inserted run", got)
	}

	// Store keeps its own copy.
	got.Severity = 0.99
	again, _ := s.GetByID(ctx, "run-1")
	if again.Severity != 0.5 {
		t.Error("mutation through a returned run leaked into the store")
	}
}

func TestRunStore_InsertDuplicate(t *testing.T) {
	s := NewRunStore()
	ctx := context.Background()

	if err := s.Insert(ctx, testRun("run-1", 100, domain.KindPortClosure)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	err := s.Insert(ctx, testRun("run-1", 200, domain.KindCyberattack))
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestRunStore_InsertInvalid(t *testing.T) {
	s := NewRunStore()
	ctx := context.Background()

	if err := s.Insert(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("nil run: expected ErrInvalidInput, got %v", err)
	}
	if err := s.Insert(ctx, testRun("", 100, domain.KindPortClosure)); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("empty run_id: expected ErrInvalidInput, got %v", err)
	}
}

func TestRunStore_GetMissing(t *testing.T) {
	s := NewRunStore()
	_, err := s.GetByID(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRunStore_ListOrdering(t *testing.T) {
	s := NewRunStore()
	ctx := context.Background()

	// Same timestamp for b and a breaks the tie by run_id.
	for _, r := range []*domain.SimulationRun{
		testRun("run-b", 200, domain.KindPortClosure),
		testRun("run-a", 200, domain.KindCyberattack),
		testRun("run-c", 100, domain.KindPortClosure),
	} {
		if err := s.Insert(ctx, r); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	runs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"run-c", "run-a", "run-b"}
	if len(runs) != len(want) {
		t.Fatalf("got %d runs, want %d", len(runs), len(want))
	}
	for i, id := range want {
		if runs[i].RunID != id {
			t.Errorf("runs[%d] = %s, want %s", i, runs[i].RunID, id)
		}
	}
}

func TestRunStore_GetByKind(t *testing.T) {
	s := NewRunStore()
	ctx := context.Background()

	s.Insert(ctx, testRun("run-1", 100, domain.KindPortClosure))
	s.Insert(ctx, testRun("run-2", 200, domain.KindCyberattack))
	s.Insert(ctx, testRun("run-3", 300, domain.KindPortClosure))

	runs, err := s.GetByKind(ctx, domain.KindPortClosure)
	if err != nil {
		t.Fatalf("GetByKind failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].RunID != "run-1" || runs[1].RunID != "run-3" {
		t.Errorf("got [%s %s], want [run-1 run-3]", runs[0].RunID, runs[1].RunID)
	}

	empty, err := s.GetByKind(ctx, domain.KindDemandSpike)
	if err != nil {
		t.Fatalf("GetByKind failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("got %d runs for unused kind, want 0", len(empty))
	}
}
