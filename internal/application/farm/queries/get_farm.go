package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/farm"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// GetFarmQuery reads a farm's current snapshot
type GetFarmQuery struct {
	FarmID int
}

// GetFarmID returns the farm the request targets
func (q *GetFarmQuery) GetFarmID() int { return q.FarmID }

// GetFarmResponse carries the snapshot
type GetFarmResponse struct {
	State *game.FarmState
}

// GetFarmHandler handles the GetFarm query
type GetFarmHandler struct {
	store *farm.Store
}

// NewGetFarmHandler creates a new GetFarmHandler
func NewGetFarmHandler(store *farm.Store) *GetFarmHandler {
	return &GetFarmHandler{store: store}
}

// Handle executes the GetFarm query
func (h *GetFarmHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetFarmQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetFarmQuery")
	}

	session, err := sessionFor(ctx, h.store, query.FarmID)
	if err != nil {
		return nil, err
	}

	return &GetFarmResponse{State: session.State()}, nil
}

func sessionFor(ctx context.Context, store *farm.Store, id int) (*farm.Session, error) {
	farmID, err := shared.NewFarmID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid farm ID: %w", err)
	}
	return store.Session(ctx, farmID)
}
