package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/homestead-go/internal/application/farm"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// GormFarmRepository implements farm.FarmRepository using GORM
type GormFarmRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormFarmRepository creates a new GORM farm repository.
// If clock is nil, uses RealClock.
func NewGormFarmRepository(db *gorm.DB, clock shared.Clock) *GormFarmRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormFarmRepository{db: db, clock: clock}
}

// Load retrieves a farm's state
func (r *GormFarmRepository) Load(ctx context.Context, farmID shared.FarmID) (*game.FarmState, error) {
	var model FarmModel
	result := r.db.WithContext(ctx).Where("id = ?", farmID.Value()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", farm.ErrFarmNotFound, farmID)
		}
		return nil, fmt.Errorf("failed to find farm: %w", result.Error)
	}

	return r.modelToState(&model)
}

// Save upserts a farm's state
func (r *GormFarmRepository) Save(ctx context.Context, farmID shared.FarmID, state *game.FarmState) error {
	model, err := r.stateToModel(farmID, state)
	if err != nil {
		return fmt.Errorf("failed to convert farm to model: %w", err)
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save farm: %w", result.Error)
	}

	return nil
}

// ListIDs returns the ids of all stored farms
func (r *GormFarmRepository) ListIDs(ctx context.Context) ([]int, error) {
	var ids []int
	result := r.db.WithContext(ctx).Model(&FarmModel{}).Order("id").Pluck("id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list farms: %w", result.Error)
	}
	return ids, nil
}

func (r *GormFarmRepository) modelToState(model *FarmModel) (*game.FarmState, error) {
	var state game.FarmState
	if err := json.Unmarshal([]byte(model.State), &state); err != nil {
		return nil, fmt.Errorf("invalid state for farm %d: %w", model.ID, err)
	}
	state.Normalize()
	return &state, nil
}

func (r *GormFarmRepository) stateToModel(farmID shared.FarmID, state *game.FarmState) (*FarmModel, error) {
	if state == nil {
		return nil, fmt.Errorf("state cannot be nil")
	}

	bytes, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}

	now := r.clock.Now()
	return &FarmModel{
		ID:        farmID.Value(),
		State:     string(bytes),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
