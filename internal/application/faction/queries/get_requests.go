package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/farm"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/faction"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// GetKitchenRequestsQuery builds the faction kitchen panel
type GetKitchenRequestsQuery struct {
	FarmID int
}

// GetFarmID returns the farm the request targets
func (q *GetKitchenRequestsQuery) GetFarmID() int { return q.FarmID }

// GetKitchenRequestsResponse is the kitchen panel. NeedsRefresh is set when
// the stored requests belong to a past week or the reset moment has passed.
type GetKitchenRequestsResponse struct {
	View         faction.KitchenView
	NeedsRefresh bool
}

// GetPetRequestsQuery builds the faction pet panel
type GetPetRequestsQuery struct {
	FarmID int
}

// GetFarmID returns the farm the request targets
func (q *GetPetRequestsQuery) GetFarmID() int { return q.FarmID }

// GetPetRequestsResponse is the pet panel
type GetPetRequestsResponse struct {
	View         faction.PetView
	NeedsRefresh bool
}

// GetRequestsHandler handles both faction request panels
type GetRequestsHandler struct {
	store *farm.Store
}

// NewGetRequestsHandler creates a new GetRequestsHandler
func NewGetRequestsHandler(store *farm.Store) *GetRequestsHandler {
	return &GetRequestsHandler{store: store}
}

// Handle executes GetKitchenRequestsQuery or GetPetRequestsQuery
func (h *GetRequestsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch query := request.(type) {
	case *GetKitchenRequestsQuery:
		session, err := h.session(ctx, query.FarmID)
		if err != nil {
			return nil, err
		}
		state := session.State()
		now := h.store.Clock().Now()
		view := faction.KitchenRequests(state, now)
		return &GetKitchenRequestsResponse{
			View:         view,
			NeedsRefresh: view.Timer.ShouldReset() || faction.ChoresStale(state, now),
		}, nil

	case *GetPetRequestsQuery:
		session, err := h.session(ctx, query.FarmID)
		if err != nil {
			return nil, err
		}
		state := session.State()
		now := h.store.Clock().Now()
		view := faction.PetRequests(state, now)
		return &GetPetRequestsResponse{
			View:         view,
			NeedsRefresh: view.Timer.ShouldReset() || faction.ChoresStale(state, now),
		}, nil

	default:
		return nil, fmt.Errorf("invalid request type: expected *GetKitchenRequestsQuery or *GetPetRequestsQuery")
	}
}

func (h *GetRequestsHandler) session(ctx context.Context, id int) (*farm.Session, error) {
	farmID, err := shared.NewFarmID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid farm ID: %w", err)
	}
	return h.store.Session(ctx, farmID)
}
