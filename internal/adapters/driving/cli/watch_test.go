package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_Flags(t *testing.T) {
	flag := watchCmd.Flags().Lookup("ext")
	require.NotNil(t, flag)
	assert.Equal(t, "[.txt,.md]", flag.DefValue)
}

func TestWatchCmd_RequiresDir(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "watch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestWatchCmd_MissingDir(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "watch", filepath.Join(t.TempDir(), "missing"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch path error")
}
