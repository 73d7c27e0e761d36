package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/farm"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// DispatchActionCommand applies one tagged action to a farm
type DispatchActionCommand struct {
	FarmID int
	Action farm.Action
}

// GetFarmID returns the farm the request targets
func (q *DispatchActionCommand) GetFarmID() int { return q.FarmID }

// DispatchActionResponse carries the snapshot after the action
type DispatchActionResponse struct {
	Action string
	State  *game.FarmState
}

// DispatchActionHandler handles the DispatchAction command
type DispatchActionHandler struct {
	store *farm.Store
}

// NewDispatchActionHandler creates a new DispatchActionHandler
func NewDispatchActionHandler(store *farm.Store) *DispatchActionHandler {
	return &DispatchActionHandler{store: store}
}

// Handle executes the DispatchAction command. Reducer errors are returned as
// *shared.GameEventError carrying the reducer's message unchanged.
func (h *DispatchActionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DispatchActionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DispatchActionCommand")
	}
	if cmd.Action == nil {
		return nil, fmt.Errorf("action is required")
	}

	farmID, err := shared.NewFarmID(cmd.FarmID)
	if err != nil {
		return nil, fmt.Errorf("invalid farm ID: %w", err)
	}

	session, err := h.store.Session(ctx, farmID)
	if err != nil {
		return nil, err
	}

	state, err := session.Send(ctx, cmd.Action)
	if err != nil {
		return nil, err
	}

	return &DispatchActionResponse{Action: cmd.Action.Type(), State: state}, nil
}
