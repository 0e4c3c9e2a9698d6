package memory

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "fundsight/pkg/platform/audit"
)

func TestStoreAppendAndRead(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, audit.Event{RequestID: "r1"}))
	require.NoError(t, store.Append(ctx, audit.Event{RequestID: "r2"}))

	events := store.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "r1", events[0].RequestID)
	assert.Equal(t, "r2", events[1].RequestID)

	t.Run("returned slice is a copy", func(t *testing.T) {
		events[0].RequestID = "mutated"
		assert.Equal(t, "r1", store.Events()[0].RequestID)
	})
}

func TestStoreEvictsOldestAtCapacity(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for i := 0; i < defaultCapacity+3; i++ {
		require.NoError(t, store.Append(ctx, audit.Event{RequestID: strconv.Itoa(i)}))
	}

	events := store.Events()
	require.Len(t, events, defaultCapacity)
	assert.Equal(t, "3", events[0].RequestID, "oldest events are evicted first")
	assert.Equal(t, strconv.Itoa(defaultCapacity+2), events[len(events)-1].RequestID)
}
