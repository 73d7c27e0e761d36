package setup_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	factionQueries "github.com/andrescamacho/homestead-go/internal/application/faction/queries"
	"github.com/andrescamacho/homestead-go/internal/application/farm"
	farmQueries "github.com/andrescamacho/homestead-go/internal/application/farm/queries"
	marketCommands "github.com/andrescamacho/homestead-go/internal/application/marketplace/commands"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/setup"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
	"github.com/andrescamacho/homestead-go/internal/domain/marketplace"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

func newStore() *farm.Store {
	repo := helpers.NewMockFarmRepository()
	repo.Put(1, game.NewFarmState())
	return farm.NewStore(repo, shared.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)), nil)
}

func TestRegisterAll_WithoutMarketplace(t *testing.T) {
	med := mediator.NewMediator()
	require.NoError(t, setup.NewHandlerRegistry(newStore(), nil).RegisterAll(med))

	resp, err := med.Send(context.Background(), &farmQueries.GetFarmQuery{FarmID: 1})
	require.NoError(t, err)
	assert.NotNil(t, resp.(*farmQueries.GetFarmResponse).State)

	_, err = med.Send(context.Background(), &factionQueries.GetPetRequestsQuery{FarmID: 1})
	assert.NoError(t, err)

	_, err = med.Send(context.Background(), &marketCommands.AcceptOfferCommand{})
	assert.Error(t, err)
}

func TestRegisterAll_WithMarketplace(t *testing.T) {
	med := mediator.NewMediator()
	registry := setup.NewHandlerRegistry(newStore(), &marketplace.Chain{Address: "0x0"})
	require.NoError(t, registry.RegisterAll(med))

	_, err := med.Send(context.Background(), &marketCommands.AcceptOfferCommand{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid offer parameters")
}

func TestRegisterAll_Twice(t *testing.T) {
	med := mediator.NewMediator()
	registry := setup.NewHandlerRegistry(newStore(), nil)
	require.NoError(t, registry.RegisterAll(med))

	assert.Error(t, registry.RegisterAll(med))
}
