package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteScopesByUser(t *testing.T) {
	ctx := context.Background()
	db, err := OpenConnection(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	alice := NewSQLiteFromDB(db, "alice")
	bob := NewSQLiteFromDB(db, "bob")

	added, err := alice.AddEntry(ctx, mathRecord())
	require.NoError(t, err)
	_, err = bob.AddEntry(ctx, examRecord())
	require.NoError(t, err)

	aliceEntries, err := alice.GetEntries(ctx)
	require.NoError(t, err)
	require.Len(t, aliceEntries, 1)
	assert.Equal(t, "Math", aliceEntries[0].Subject)

	assert.ErrorIs(t, bob.DeleteEntry(ctx, added.StorageID), ErrNotFound)
	_, err = bob.UpdateEntry(ctx, added.StorageID, added)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewSQLiteRequiresUser(t *testing.T) {
	_, err := NewSQLite(":memory:", "")
	assert.Error(t, err)
}
