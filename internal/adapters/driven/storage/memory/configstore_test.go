package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("server.addr", ":8421"))
	require.NoError(t, store.Set("display.result_limit", int64(200)))
	require.NoError(t, store.Set("server.rate_limit", 2.0))
	require.NoError(t, store.Set("flag", true))
	require.NoError(t, store.Set("list", []any{"a", 1, "b"}))

	assert.Equal(t, ":8421", store.GetString("server.addr"))
	assert.Equal(t, 200, store.GetInt("display.result_limit"))
	assert.Equal(t, 2, store.GetInt("server.rate_limit"))
	assert.True(t, store.GetBool("flag"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("list"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_WrongTypesReturnZeroValues(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("key", "text")

	assert.Equal(t, 0, store.GetInt("key"))
	assert.False(t, store.GetBool("key"))
	assert.Nil(t, store.GetStringSlice("key"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_Persistence(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}
