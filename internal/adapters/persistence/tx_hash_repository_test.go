package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/adapters/persistence"
	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/domain/marketplace"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

func TestTxHashRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTxHashRepository(db)
	record := marketplace.TxRecord{
		Event:     marketplace.OfferAcceptedEvent,
		Hash:      "0xabc",
		SessionID: "0xsession",
		Deadline:  1735689600,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	// Act
	repo.SaveTxHash(context.Background(), record)
	found, err := repo.FindBySession(context.Background(), "0xsession")

	// Assert
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, record.Hash, found[0].Hash)
	assert.Equal(t, record.Event, found[0].Event)
	assert.Equal(t, record.Deadline, found[0].Deadline)
	assert.True(t, record.CreatedAt.Equal(found[0].CreatedAt))
}

func TestTxHashRepository_SaveFailureIsLogged(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTxHashRepository(db)
	logger := helpers.NewRecordingLogger()
	ctx := logging.WithLogger(context.Background(), logger)
	record := marketplace.TxRecord{Event: marketplace.OfferAcceptedEvent, Hash: "0xdup", SessionID: "s", CreatedAt: time.Now()}

	// Act
	repo.SaveTxHash(ctx, record)
	repo.SaveTxHash(ctx, record)

	// Assert
	assert.True(t, logger.Contains(logging.LevelError, "failed to save transaction hash"))
	found, err := repo.FindBySession(context.Background(), "s")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
