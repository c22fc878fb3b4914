package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "prakan/pkg/domain-errors"
)

func TestInMemoryStoreRoundTrip(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	session := NewSession(time.Now().UTC())
	session.Respondent.Age = "30"
	require.NoError(t, store.Save(ctx, session))

	loaded, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, "30", loaded.Respondent.Age)
}

func TestInMemoryStoreIsolatesCaller(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	session := NewSession(time.Now().UTC())
	require.NoError(t, store.Save(ctx, session))

	session.Respondent.Age = "99"
	loaded, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Respondent.Age)

	loaded.Respondent.Age = "55"
	again, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Respondent.Age)
}

func TestInMemoryStoreGetUnknown(t *testing.T) {
	store := NewInMemoryStore()
	_, err := store.Get(context.Background(), "nope")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestInMemoryStoreDelete(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	session := NewSession(time.Now().UTC())
	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, store.Delete(ctx, session.ID))

	_, err := store.Get(ctx, session.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(ctx, session.ID))
}
