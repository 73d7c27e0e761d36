package shared

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFarmID_RejectsNonPositive(t *testing.T) {
	_, err := NewFarmID(0)
	require.Error(t, err)

	id, err := NewFarmID(42)
	require.NoError(t, err)
	assert.Equal(t, 42, id.Value())
	assert.Equal(t, "42", id.String())
	assert.True(t, id.Equals(MustNewFarmID(42)))
	assert.False(t, id.IsZero())
}

func TestGameEventError_KeepsReducerMessage(t *testing.T) {
	cause := errors.New("Building does not exist")
	err := NewGameEventError("recipe.cancelled", cause)

	assert.Equal(t, "Building does not exist", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "recipe.cancelled", err.Event)
}

func TestMockClock_AdvanceAndMillis(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)
	clock.Advance(90 * time.Second)

	assert.Equal(t, start.UnixMilli()+90_000, Millis(clock.Now()))
	assert.True(t, FromMillis(Millis(clock.Now())).Equal(clock.Now()))
}
