package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/farm"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/faction"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// RefreshKingdomChoresCommand rolls the faction chores over to the current
// week and saves the farm, as the request panels do when their timer runs out
type RefreshKingdomChoresCommand struct {
	FarmID int
}

// GetFarmID returns the farm the request targets
func (q *RefreshKingdomChoresCommand) GetFarmID() int { return q.FarmID }

// RefreshKingdomChoresResponse carries the saved snapshot
type RefreshKingdomChoresResponse struct {
	Week  string
	State *game.FarmState
}

// RefreshKingdomChoresHandler handles the RefreshKingdomChores command
type RefreshKingdomChoresHandler struct {
	store *farm.Store
}

// NewRefreshKingdomChoresHandler creates a new RefreshKingdomChoresHandler
func NewRefreshKingdomChoresHandler(store *farm.Store) *RefreshKingdomChoresHandler {
	return &RefreshKingdomChoresHandler{store: store}
}

// Handle sends kingdomChores.refreshed followed by SAVE
func (h *RefreshKingdomChoresHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RefreshKingdomChoresCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RefreshKingdomChoresCommand")
	}

	farmID, err := shared.NewFarmID(cmd.FarmID)
	if err != nil {
		return nil, fmt.Errorf("invalid farm ID: %w", err)
	}

	session, err := h.store.Session(ctx, farmID)
	if err != nil {
		return nil, err
	}

	if _, err := session.Send(ctx, faction.KingdomChoresRefreshed{}); err != nil {
		return nil, err
	}

	state, err := session.Send(ctx, farm.Save{})
	if err != nil {
		return nil, err
	}

	return &RefreshKingdomChoresResponse{
		Week:  faction.WeekKey(h.store.Clock().Now()),
		State: state,
	}, nil
}
