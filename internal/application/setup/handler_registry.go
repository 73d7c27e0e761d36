package setup

import (
	"reflect"

	factionQueries "github.com/andrescamacho/homestead-go/internal/application/faction/queries"
	"github.com/andrescamacho/homestead-go/internal/application/farm"
	farmCommands "github.com/andrescamacho/homestead-go/internal/application/farm/commands"
	farmQueries "github.com/andrescamacho/homestead-go/internal/application/farm/queries"
	marketCommands "github.com/andrescamacho/homestead-go/internal/application/marketplace/commands"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/marketplace"
)

// HandlerRegistry holds the dependencies every handler is built from
type HandlerRegistry struct {
	store *farm.Store
	chain *marketplace.Chain
}

// NewHandlerRegistry creates a registry. chain may be nil when the
// marketplace is not configured; its handlers are then left unregistered.
func NewHandlerRegistry(store *farm.Store, chain *marketplace.Chain) *HandlerRegistry {
	return &HandlerRegistry{store: store, chain: chain}
}

// RegisterAll registers every handler the registry can build
func (r *HandlerRegistry) RegisterAll(m mediator.Mediator) error {
	if err := r.RegisterFarmHandlers(m); err != nil {
		return err
	}
	if err := r.RegisterFactionHandlers(m); err != nil {
		return err
	}
	if r.chain != nil {
		return r.RegisterMarketplaceHandlers(m)
	}
	return nil
}

// RegisterFarmHandlers registers action dispatch, chore refresh and the farm queries
func (r *HandlerRegistry) RegisterFarmHandlers(m mediator.Mediator) error {
	handlers := []struct {
		request mediator.Request
		handler mediator.RequestHandler
	}{
		{&farmCommands.DispatchActionCommand{}, farmCommands.NewDispatchActionHandler(r.store)},
		{&farmCommands.RefreshKingdomChoresCommand{}, farmCommands.NewRefreshKingdomChoresHandler(r.store)},
		{&farmQueries.GetFarmQuery{}, farmQueries.NewGetFarmHandler(r.store)},
		{&farmQueries.GetCraftingQueueQuery{}, farmQueries.NewGetCraftingQueueHandler(r.store)},
		{&farmQueries.GetSeedPriceQuery{}, farmQueries.NewGetSeedPriceHandler(r.store)},
	}

	for _, h := range handlers {
		if err := m.Register(reflect.TypeOf(h.request), h.handler); err != nil {
			return err
		}
	}
	return nil
}

// RegisterFactionHandlers registers the kitchen and pet panel queries. Both
// are served by the same handler.
func (r *HandlerRegistry) RegisterFactionHandlers(m mediator.Mediator) error {
	handler := factionQueries.NewGetRequestsHandler(r.store)
	if err := mediator.RegisterHandler[*factionQueries.GetKitchenRequestsQuery](m, handler); err != nil {
		return err
	}
	return mediator.RegisterHandler[*factionQueries.GetPetRequestsQuery](m, handler)
}

// RegisterMarketplaceHandlers registers the on-chain offer acceptance
func (r *HandlerRegistry) RegisterMarketplaceHandlers(m mediator.Mediator) error {
	return mediator.RegisterHandler[*marketCommands.AcceptOfferCommand](m, marketCommands.NewAcceptOfferHandler(*r.chain))
}
