package commands

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/marketplace"
)

// AcceptOfferCommand accepts a marketplace offer on chain
type AcceptOfferCommand struct {
	Params marketplace.AcceptOfferParams
}

// AcceptOfferResponse carries the session id to use for the next transaction
type AcceptOfferResponse struct {
	NextSessionID string
}

// AcceptOfferHandler handles the AcceptOffer command
type AcceptOfferHandler struct {
	chain    marketplace.Chain
	validate *validator.Validate
}

// NewAcceptOfferHandler creates a new AcceptOfferHandler
func NewAcceptOfferHandler(chain marketplace.Chain) *AcceptOfferHandler {
	return &AcceptOfferHandler{
		chain:    chain,
		validate: validator.New(),
	}
}

// Handle executes the AcceptOffer command. Chain errors are returned unwrapped.
func (h *AcceptOfferHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AcceptOfferCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AcceptOfferCommand")
	}

	if err := h.validate.Struct(cmd.Params); err != nil {
		return nil, fmt.Errorf("invalid offer parameters: %w", err)
	}

	logger := logging.LoggerFromContext(ctx)
	logger.Log(logging.LevelInfo, "accepting offer", map[string]interface{}{
		"farm_id":  cmd.Params.FarmID,
		"trade_id": cmd.Params.Offer.TradeID,
	})

	next, err := marketplace.AcceptOfferTransaction(ctx, h.chain, cmd.Params)
	if err != nil {
		return nil, err
	}

	return &AcceptOfferResponse{NextSessionID: next}, nil
}
