package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/homestead-go/internal/application/farm"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/crafting"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
)

// GetCraftingQueueQuery reads a building's crafting queue
type GetCraftingQueueQuery struct {
	FarmID       int
	BuildingName string
	BuildingID   string
}

// GetFarmID returns the farm the request targets
func (q *GetCraftingQueueQuery) GetFarmID() int { return q.FarmID }

// GetCraftingQueueResponse lists the queue and the entry cooking right now
type GetCraftingQueueResponse struct {
	Queue   []game.BuildingProduct
	Cooking *game.BuildingProduct
	Oil     float64
	At      time.Time
}

// GetCraftingQueueHandler handles the GetCraftingQueue query
type GetCraftingQueueHandler struct {
	store *farm.Store
}

// NewGetCraftingQueueHandler creates a new GetCraftingQueueHandler
func NewGetCraftingQueueHandler(store *farm.Store) *GetCraftingQueueHandler {
	return &GetCraftingQueueHandler{store: store}
}

// Handle executes the GetCraftingQueue query
func (h *GetCraftingQueueHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetCraftingQueueQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCraftingQueueQuery")
	}

	session, err := sessionFor(ctx, h.store, query.FarmID)
	if err != nil {
		return nil, err
	}

	building := session.State().FindBuilding(query.BuildingName, query.BuildingID)
	if building == nil {
		return nil, crafting.ErrBuildingNotFound
	}

	now := h.store.Clock().Now()
	resp := &GetCraftingQueueResponse{
		Queue:   building.Crafting,
		Cooking: crafting.CurrentCookingItem(building, now),
		At:      now,
	}
	if building.Oil != nil {
		resp.Oil = *building.Oil
	}
	return resp, nil
}
