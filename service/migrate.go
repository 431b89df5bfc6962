package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JLTC3111/contract-management-app-sub001/model"
)

// MigrationSummary aggregates a MigrateAll pass. Each contract is reported
// exactly once: phases added, nothing missing, or failed.
type MigrationSummary struct {
	UpdatedCount int `json:"updated_count"`
	SkippedCount int `json:"skipped_count"`
	ErrorCount   int `json:"error_count"`
}

// Migrator backfills missing canonical phases. It never touches contract
// status or existing phase data.
type Migrator struct {
	store Store
	now   func() time.Time
}

func NewMigrator(store Store) *Migrator {
	return &Migrator{store: store, now: time.Now}
}

// MigrateContract ensures the contract has all six canonical phases,
// inserting only the missing ones from the template catalog. Running it
// again is a no-op: existing phases are never duplicated or overwritten.
func (m *Migrator) MigrateContract(ctx context.Context, contractID string) (int, error) {
	phases, err := m.store.ReadPhases(ctx, contractID)
	if err != nil {
		return 0, err
	}

	existing := make(map[int]bool, len(phases))
	for i := range phases {
		existing[phases[i].Number] = true
	}

	var missing []model.Phase
	for n := 1; n <= model.PhaseCount; n++ {
		if existing[n] {
			continue
		}
		tmpl, _ := model.PhaseTemplateFor(n)
		missing = append(missing, m.buildPhase(contractID, tmpl))
	}

	if len(missing) == 0 {
		return 0, nil
	}

	if err := m.store.InsertPhases(ctx, contractID, missing); err != nil {
		return 0, err
	}

	slog.Info("backfilled missing phases",
		"contract_id", contractID,
		"phases_added", len(missing),
	)
	return len(missing), nil
}

// MigrateAll runs MigrateContract over every contract. A failure for one
// contract is logged and counted; it never aborts the others. The error
// return is non-nil only when the initial contract read fails.
func (m *Migrator) MigrateAll(ctx context.Context) (MigrationSummary, error) {
	var summary MigrationSummary

	contracts, err := m.store.ReadContracts(ctx, ContractFilter{})
	if err != nil {
		return summary, err
	}

	for i := range contracts {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		added, err := m.MigrateContract(ctx, contracts[i].ID)
		if err != nil {
			slog.Error("phase migration failed",
				"contract_id", contracts[i].ID,
				"error", err,
			)
			summary.ErrorCount++
			continue
		}
		if added > 0 {
			summary.UpdatedCount++
		} else {
			summary.SkippedCount++
		}
	}

	return summary, nil
}

func (m *Migrator) buildPhase(contractID string, tmpl model.PhaseTemplate) model.Phase {
	now := m.now()

	phase := model.Phase{
		ID:          uuid.New().String(),
		ContractID:  contractID,
		Number:      tmpl.Number,
		Name:        tmpl.Name,
		Description: tmpl.Description,
		Status:      model.PhasePending,
		Progress:    0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	phase.Tasks = make([]model.Task, 0, len(tmpl.Tasks))
	for _, t := range tmpl.Tasks {
		phase.Tasks = append(phase.Tasks, model.Task{
			ID:              uuid.New().String(),
			PhaseID:         phase.ID,
			Text:            t.Text,
			LocalizationKey: t.LocalizationKey,
			Completed:       false,
			CreatedAt:       now,
		})
	}

	return phase
}
