package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/JLTC3111/contract-management-app-sub001/model"
)

// ContractFilter narrows a ReadContracts call.
type ContractFilter struct {
	// HasExpiry keeps only contracts with a non-null expiry date.
	HasExpiry bool
	// ExcludeTerminal drops contracts in a manual terminal status.
	ExcludeTerminal bool
}

// Store is the persistence contract the lifecycle engine consumes. The
// relational engine behind it is an external collaborator; the core only
// needs these reads plus two write primitives.
//
// ConditionalUpdateContractStatus must be atomic: the update applies only
// while the contract still holds the expected status, so two concurrent
// lifecycle runs cannot both claim the same transition.
type Store interface {
	ReadContracts(ctx context.Context, filter ContractFilter) ([]model.Contract, error)
	ReadContract(ctx context.Context, id string) (*model.Contract, error)
	ReadPhases(ctx context.Context, contractID string) ([]model.Phase, error)
	ConditionalUpdateContractStatus(ctx context.Context, id string, expected, next model.ContractStatus, ts time.Time) (bool, error)
	InsertPhases(ctx context.Context, contractID string, phases []model.Phase) error
}

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	contracts map[string]*model.Contract
	phases    map[string][]model.Phase // keyed by contract id
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	slog.Info("using in-memory contract store; data will not survive restarts")
	return &MemoryStore{
		contracts: make(map[string]*model.Contract),
		phases:    make(map[string][]model.Phase),
	}
}

// SaveContract inserts or replaces a contract. Only the in-memory store
// exposes this; with postgres, contract creation belongs to the
// contract-management surface.
func (s *MemoryStore) SaveContract(contract *model.Contract) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *contract
	s.contracts[c.ID] = &c
}

func (s *MemoryStore) ReadContracts(_ context.Context, filter ContractFilter) ([]model.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.Contract
	for _, c := range s.contracts {
		if filter.HasExpiry && c.ExpiryDate == nil {
			continue
		}
		if filter.ExcludeTerminal && c.Status.IsTerminal() {
			continue
		}
		result = append(result, *c)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *MemoryStore) ReadContract(_ context.Context, id string) (*model.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contracts[id]
	if !ok {
		return nil, ErrContractNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *MemoryStore) ReadPhases(_ context.Context, contractID string) ([]model.Phase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	phases := make([]model.Phase, len(s.phases[contractID]))
	copy(phases, s.phases[contractID])
	sort.Slice(phases, func(i, j int) bool { return phases[i].Number < phases[j].Number })
	return phases, nil
}

func (s *MemoryStore) ConditionalUpdateContractStatus(_ context.Context, id string, expected, next model.ContractStatus, ts time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contracts[id]
	if !ok {
		return false, ErrContractNotFound
	}
	if c.Status != expected {
		return false, nil
	}
	c.Status = next
	c.UpdatedAt = ts
	return true, nil
}

func (s *MemoryStore) InsertPhases(_ context.Context, contractID string, phases []model.Phase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phases[contractID] = append(s.phases[contractID], phases...)
	return nil
}
