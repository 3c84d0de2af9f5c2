package lito_test

import (
	"path/filepath"
	"testing"

	"github.com/midbel/lito"
	"github.com/midbel/lito/environ"
	"github.com/midbel/lito/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *lito.Store {
	t.Helper()
	store, err := lito.OpenStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := openStore(t)

	objs := map[string]eval.Object{
		"n": eval.CreateInt(42),
		"f": eval.CreateReal(3.25),
		"b": eval.CreateBool(true),
	}
	for ident, obj := range objs {
		require.NoError(t, store.Put(ident, obj))
	}
	for ident, obj := range objs {
		got, err := store.Get(ident)
		require.NoError(t, err)
		assert.Equal(t, obj.Raw(), got.Raw(), ident)
		assert.Equal(t, obj.Type(), got.Type(), ident)
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := openStore(t)

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, environ.ErrNotDefined)
}

func TestStoreLoad(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.Put("x", eval.CreateInt(1)))
	require.NoError(t, store.Put("y", eval.CreateReal(2.5)))

	loaded := make(map[string]eval.Object)
	require.NoError(t, store.Load(func(ident string, obj eval.Object) {
		loaded[ident] = obj
	}))
	require.Len(t, loaded, 2)
	assert.Equal(t, int64(1), loaded["x"].Raw())
	assert.Equal(t, 2.5, loaded["y"].Raw())
}

func TestStoreFeedsInterpreter(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.Put("x", eval.CreateInt(7)))

	ip := lito.New()
	require.NoError(t, store.Load(ip.Define))

	res, err := ip.RunString("x + 1")
	require.NoError(t, err)
	assert.Equal(t, int64(8), res.Raw())
}