package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JLTC3111/contract-management-app-sub001/model"
)

func seedContract(store *MemoryStore, id string, status model.ContractStatus, expiry *time.Time) {
	store.SaveContract(&model.Contract{
		ID:         id,
		Title:      "Contract " + id,
		Status:     status,
		ExpiryDate: expiry,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	})
}

func seedPhase(t *testing.T, store *MemoryStore, contractID string, number int) {
	t.Helper()
	err := store.InsertPhases(context.Background(), contractID, []model.Phase{
		{ID: contractID + "-p" + string(rune('0'+number)), ContractID: contractID, Number: number, Status: model.PhasePending},
	})
	if err != nil {
		t.Fatalf("Failed to seed phase: %v", err)
	}
}

func TestMigrateContractBackfillsMissingPhases(t *testing.T) {
	store := NewMemoryStore()
	seedContract(store, "c1", model.StatusActive, nil)
	seedPhase(t, store, "c1", 1)
	seedPhase(t, store, "c1", 2)
	seedPhase(t, store, "c1", 3)

	migrator := NewMigrator(store)

	added, err := migrator.MigrateContract(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if added != 3 {
		t.Errorf("Expected 3 phases added, got %d", added)
	}

	phases, err := store.ReadPhases(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Failed to read phases: %v", err)
	}
	if len(phases) != model.PhaseCount {
		t.Fatalf("Expected %d phases, got %d", model.PhaseCount, len(phases))
	}

	for i, phase := range phases {
		if phase.Number != i+1 {
			t.Errorf("Expected phase number %d at position %d, got %d", i+1, i, phase.Number)
		}
	}

	// Backfilled phases carry the catalog defaults with nothing completed
	for _, phase := range phases[3:] {
		tmpl, ok := model.PhaseTemplateFor(phase.Number)
		if !ok {
			t.Fatalf("No template for phase %d", phase.Number)
		}
		if phase.Name != tmpl.Name {
			t.Errorf("Expected phase %d name %q, got %q", phase.Number, tmpl.Name, phase.Name)
		}
		if phase.Status != model.PhasePending {
			t.Errorf("Expected backfilled phase %d to be pending, got %s", phase.Number, phase.Status)
		}
		if len(phase.Tasks) != len(tmpl.Tasks) {
			t.Errorf("Expected %d tasks for phase %d, got %d", len(tmpl.Tasks), phase.Number, len(phase.Tasks))
		}
		for _, task := range phase.Tasks {
			if task.Completed {
				t.Errorf("Expected all backfilled tasks incomplete, task %s is completed", task.ID)
			}
			if task.ID == "" {
				t.Error("Expected backfilled task to have a generated id")
			}
		}
	}
}

func TestMigrateContractIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	seedContract(store, "c1", model.StatusActive, nil)

	migrator := NewMigrator(store)

	added, err := migrator.MigrateContract(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Unexpected error on first run: %v", err)
	}
	if added != model.PhaseCount {
		t.Errorf("Expected %d phases added on first run, got %d", model.PhaseCount, added)
	}

	firstRun, _ := store.ReadPhases(context.Background(), "c1")

	added, err = migrator.MigrateContract(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Unexpected error on second run: %v", err)
	}
	if added != 0 {
		t.Errorf("Expected zero phases added on second run, got %d", added)
	}

	secondRun, _ := store.ReadPhases(context.Background(), "c1")
	if len(secondRun) != len(firstRun) {
		t.Errorf("Expected phase set unchanged, had %d now %d", len(firstRun), len(secondRun))
	}
	for i := range firstRun {
		if secondRun[i].ID != firstRun[i].ID {
			t.Errorf("Expected phase %d untouched, id changed from %s to %s", i+1, firstRun[i].ID, secondRun[i].ID)
		}
	}
}

func TestMigrateContractSingleGap(t *testing.T) {
	store := NewMemoryStore()
	seedContract(store, "c1", model.StatusActive, nil)
	for n := 1; n <= model.PhaseCount; n++ {
		if n == 5 {
			continue
		}
		seedPhase(t, store, "c1", n)
	}

	added, err := NewMigrator(store).MigrateContract(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if added != 1 {
		t.Errorf("Expected 1 phase added, got %d", added)
	}

	phases, _ := store.ReadPhases(context.Background(), "c1")
	if len(phases) != model.PhaseCount {
		t.Errorf("Expected %d phases, got %d", model.PhaseCount, len(phases))
	}
}

// insertFailStore fails phase inserts for selected contracts.
type insertFailStore struct {
	*MemoryStore
	failFor map[string]bool
}

func (s *insertFailStore) InsertPhases(ctx context.Context, contractID string, phases []model.Phase) error {
	if s.failFor[contractID] {
		return errors.New("write refused")
	}
	return s.MemoryStore.InsertPhases(ctx, contractID, phases)
}

func TestMigrateAllIsolatesFailures(t *testing.T) {
	memory := NewMemoryStore()
	seedContract(memory, "c1", model.StatusActive, nil)
	seedContract(memory, "c2", model.StatusActive, nil)
	seedContract(memory, "c3", model.StatusActive, nil)

	// c3 already fully migrated
	if _, err := NewMigrator(memory).MigrateContract(context.Background(), "c3"); err != nil {
		t.Fatalf("Failed to pre-migrate c3: %v", err)
	}

	store := &insertFailStore{MemoryStore: memory, failFor: map[string]bool{"c2": true}}

	summary, err := NewMigrator(store).MigrateAll(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if summary.UpdatedCount != 1 {
		t.Errorf("Expected 1 contract updated, got %d", summary.UpdatedCount)
	}
	if summary.SkippedCount != 1 {
		t.Errorf("Expected 1 contract skipped, got %d", summary.SkippedCount)
	}
	if summary.ErrorCount != 1 {
		t.Errorf("Expected 1 contract failed, got %d", summary.ErrorCount)
	}

	// The failing contract must not block the healthy one
	phases, _ := memory.ReadPhases(context.Background(), "c1")
	if len(phases) != model.PhaseCount {
		t.Errorf("Expected c1 fully migrated despite c2 failing, got %d phases", len(phases))
	}
}

func TestMigrateAllCancellation(t *testing.T) {
	store := NewMemoryStore()
	seedContract(store, "c1", model.StatusActive, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMigrator(store).MigrateAll(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
