package queries

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/application/farm"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/seeds"
)

// GetSeedPriceQuery prices a seed for a farm
type GetSeedPriceQuery struct {
	FarmID int
	Seed   string
	Amount decimal.Decimal
}

// GetFarmID returns the farm the request targets
func (q *GetSeedPriceQuery) GetFarmID() int { return q.FarmID }

// GetSeedPriceResponse carries the catalog price and the farm's price
type GetSeedPriceResponse struct {
	Seed      string
	BasePrice decimal.Decimal
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	Stock     decimal.Decimal
}

// GetSeedPriceHandler handles the GetSeedPrice query
type GetSeedPriceHandler struct {
	store *farm.Store
}

// NewGetSeedPriceHandler creates a new GetSeedPriceHandler
func NewGetSeedPriceHandler(store *farm.Store) *GetSeedPriceHandler {
	return &GetSeedPriceHandler{store: store}
}

// Handle executes the GetSeedPrice query
func (h *GetSeedPriceHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetSeedPriceQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSeedPriceQuery")
	}

	seed, ok := catalog.Default().Seed(query.Seed)
	if !ok {
		return nil, seeds.ErrNotASeed
	}

	session, err := sessionFor(ctx, h.store, query.FarmID)
	if err != nil {
		return nil, err
	}
	state := session.State()

	amount := query.Amount
	if amount.IsZero() {
		amount = decimal.NewFromInt(1)
	}
	price := seeds.GetBuyPrice(query.Seed, seed, state)

	return &GetSeedPriceResponse{
		Seed:      query.Seed,
		BasePrice: seed.Price,
		UnitPrice: price,
		Total:     price.Mul(amount),
		Stock:     state.Stock.Amount(query.Seed),
	}, nil
}
