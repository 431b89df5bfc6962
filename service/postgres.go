package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/JLTC3111/contract-management-app-sub001/model"
)

// autoManagedStatuses are the statuses the lifecycle engine owns. Anything
// else is a manual override and is excluded when ExcludeTerminal is set.
var autoManagedStatuses = []model.ContractStatus{
	model.StatusDraft,
	model.StatusActive,
	model.StatusExpiring,
	model.StatusExpired,
}

// PostgresStore implements Store on top of gorm/postgres.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore connects to postgres and ensures the schema exists.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(&model.Contract{}, &model.Phase{}, &model.Task{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) ReadContracts(ctx context.Context, filter ContractFilter) ([]model.Contract, error) {
	q := s.db.WithContext(ctx).Model(&model.Contract{})
	if filter.HasExpiry {
		q = q.Where("expiry_date IS NOT NULL")
	}
	if filter.ExcludeTerminal {
		q = q.Where("status IN ?", autoManagedStatuses)
	}

	var contracts []model.Contract
	if err := q.Order("id").Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to read contracts: %w", err)
	}
	return contracts, nil
}

func (s *PostgresStore) ReadContract(ctx context.Context, id string) (*model.Contract, error) {
	var contract model.Contract
	err := s.db.WithContext(ctx).First(&contract, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContractNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read contract: %w", err)
	}
	return &contract, nil
}

func (s *PostgresStore) ReadPhases(ctx context.Context, contractID string) ([]model.Phase, error) {
	var phases []model.Phase
	err := s.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Where("contract_id = ?", contractID).
		Order("phase_number").
		Find(&phases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read phases: %w", err)
	}
	return phases, nil
}

// ConditionalUpdateContractStatus applies the status change only while the
// row still holds the expected status. A lost race returns (false, nil).
func (s *PostgresStore) ConditionalUpdateContractStatus(ctx context.Context, id string, expected, next model.ContractStatus, ts time.Time) (bool, error) {
	tx := s.db.WithContext(ctx).
		Model(&model.Contract{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(map[string]any{"status": next, "updated_at": ts})
	if tx.Error != nil {
		return false, fmt.Errorf("failed to update contract status: %w", tx.Error)
	}
	return tx.RowsAffected == 1, nil
}

func (s *PostgresStore) InsertPhases(ctx context.Context, contractID string, phases []model.Phase) error {
	if len(phases) == 0 {
		return nil
	}
	for i := range phases {
		phases[i].ContractID = contractID
	}
	if err := s.db.WithContext(ctx).Create(&phases).Error; err != nil {
		return fmt.Errorf("failed to insert phases: %w", err)
	}
	return nil
}
