package helpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/homestead-go/internal/application/farm"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// MockFarmRepository is an in-memory farm.FarmRepository
type MockFarmRepository struct {
	mu     sync.RWMutex
	farms  map[int]*game.FarmState
	saves  int
	errMsg string
}

// NewMockFarmRepository creates an empty repository
func NewMockFarmRepository() *MockFarmRepository {
	return &MockFarmRepository{farms: make(map[int]*game.FarmState)}
}

// Put stores a copy of state under farmID
func (m *MockFarmRepository) Put(farmID int, state *game.FarmState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.farms[farmID] = state.Clone()
}

// Get returns a copy of the stored snapshot, nil when absent
func (m *MockFarmRepository) Get(farmID int) *game.FarmState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.farms[farmID].Clone()
}

// SaveCount reports how many times Save succeeded
func (m *MockFarmRepository) SaveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// SetSaveError makes every Save fail with msg; empty clears it
func (m *MockFarmRepository) SetSaveError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errMsg = msg
}

func (m *MockFarmRepository) Load(ctx context.Context, farmID shared.FarmID) (*game.FarmState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.farms[farmID.Value()]
	if !ok {
		return nil, fmt.Errorf("farm %d: %w", farmID.Value(), farm.ErrFarmNotFound)
	}
	return state.Clone(), nil
}

func (m *MockFarmRepository) Save(ctx context.Context, farmID shared.FarmID, state *game.FarmState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errMsg != "" {
		return fmt.Errorf("%s", m.errMsg)
	}
	m.farms[farmID.Value()] = state.Clone()
	m.saves++
	return nil
}

var _ farm.FarmRepository = (*MockFarmRepository)(nil)
