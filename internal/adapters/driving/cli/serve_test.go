package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestServeCmd_ErrorsWithoutServices(t *testing.T) {
	setupTestServices(t)
	exportService = nil

	_, err := execute(t, "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating server")
}

func TestServeCmd_StopsOnCancel(t *testing.T) {
	setupTestServices(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rootCmd.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})
	defer rootCmd.SetArgs(nil)

	assert.NoError(t, rootCmd.ExecuteContext(ctx))
}

func TestMCPServeCmd_Flags(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_ErrorsWithoutServices(t *testing.T) {
	setupTestServices(t)
	metricsService = nil

	_, err := execute(t, "mcp", "serve")

	require.Error(t, err)
}

func TestTUICmd_ErrorsWithoutServices(t *testing.T) {
	setupTestServices(t)
	libraryService = nil

	_, err := execute(t, "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create TUI")
}
