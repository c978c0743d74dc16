package draft

import (
	"context"
	"testing"

	"formeo_backend/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	answers := scoring.AnswerMap{
		"q1": scoring.String("90 degrés"),
		"q2": scoring.Number(12),
		"q3": scoring.Set("A", "C"),
	}

	savedAt, err := store.Save(ctx, "7:form-1", answers)
	require.NoError(t, err)
	assert.False(t, savedAt.IsZero())

	got, gotAt, ok := store.Load(ctx, "7:form-1")
	require.True(t, ok)
	assert.Equal(t, answers, got)
	assert.Equal(t, savedAt.Unix(), gotAt.Unix())
}

func TestMemoryStoreLoadAbsent(t *testing.T) {
	_, _, ok := NewMemoryStore().Load(context.Background(), "missing")
	assert.False(t, ok)
}

func TestMemoryStoreCorruptPayloadIsAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Save(ctx, "k", scoring.AnswerMap{"q1": scoring.String("x")})
	require.NoError(t, err)

	store.Corrupt("k")
	_, _, ok := store.Load(ctx, "k")
	assert.False(t, ok, "a corrupt draft must behave as no draft at all")
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Save(ctx, "k", scoring.AnswerMap{"q1": scoring.String("x")})
	require.NoError(t, err)

	store.Clear(ctx, "k")
	_, _, ok := store.Load(ctx, "k")
	assert.False(t, ok)

	// Clearing twice is harmless.
	store.Clear(ctx, "k")
}

func TestKeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Save(ctx, "7:form-1", scoring.AnswerMap{"q1": scoring.String("a")})
	require.NoError(t, err)
	_, err = store.Save(ctx, "7:form-2", scoring.AnswerMap{"q1": scoring.String("b")})
	require.NoError(t, err)

	got1, _, ok := store.Load(ctx, "7:form-1")
	require.True(t, ok)
	got2, _, ok := store.Load(ctx, "7:form-2")
	require.True(t, ok)

	assert.Equal(t, scoring.String("a"), got1["q1"])
	assert.Equal(t, scoring.String("b"), got2["q1"])
}
