package keystore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/easyrsa-go/pkg/easyrsa"
	"github.com/coinbase/easyrsa-go/pkg/easyrsa/keystore"
)

func openStore(t *testing.T) *keystore.SQLStore {
	t.Helper()
	store, err := keystore.OpenSQLStore(context.Background(), filepath.Join(t.TempDir(), "keys.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLStorePutGet(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	engine, pub, priv := generateKeys(t)

	id, err := store.Put(ctx, "alice", pub, priv)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	entry, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, entry.ID)
	assert.Equal(t, "alice", entry.Label)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.Zero(t, pub.N.Cmp(entry.Public.N))
	assert.Zero(t, pub.E.Cmp(entry.Public.E))
	assert.Zero(t, priv.D.Cmp(entry.Private.D))

	ct, err := engine.Encrypt([]byte("\x00\x01Hi"), entry.Public)
	require.NoError(t, err)
	got, err := engine.Decrypt(ct, entry.Private)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x00\x01Hi"), got)
}

func TestSQLStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	_, pub, priv := generateKeys(t)

	first, err := store.Put(ctx, "first", pub, priv)
	require.NoError(t, err)
	second, err := store.Put(ctx, "second", pub, priv)
	require.NoError(t, err)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	ids := []uuid.UUID{entries[0].ID, entries[1].ID}
	assert.ElementsMatch(t, []uuid.UUID{first, second}, ids)

	require.NoError(t, store.Delete(ctx, first))
	_, err = store.Get(ctx, first)
	require.ErrorIs(t, err, keystore.ErrKeyNotFound)

	err = store.Delete(ctx, first)
	require.ErrorIs(t, err, keystore.ErrKeyNotFound)

	entries, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, second, entries[0].ID)
}

func TestSQLStoreGetMissing(t *testing.T) {
	_, err := openStore(t).Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, keystore.ErrKeyNotFound)
}

func TestSQLStoreRejectsMismatchedPair(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	_, pub, _ := generateKeys(t)
	_, _, otherPriv := generateKeys(t)

	_, err := store.Put(ctx, "mixed", pub, otherPriv)
	require.ErrorIs(t, err, keystore.ErrMismatchedPair)

	_, err = store.Put(ctx, "invalid", &easyrsa.PublicKey{}, otherPriv)
	require.ErrorIs(t, err, easyrsa.ErrInvalidKey)
}

func TestSQLStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "keys.db")
	_, pub, priv := generateKeys(t)

	store, err := keystore.OpenSQLStore(ctx, path)
	require.NoError(t, err)
	id, err := store.Put(ctx, "persisted", pub, priv)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := keystore.OpenSQLStore(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	entry, err := reopened.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "persisted", entry.Label)
}
