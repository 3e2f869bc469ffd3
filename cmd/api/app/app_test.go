package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LoadsConfigFromPath(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	env := "APP_ENV=test\nDATA_DIR=" + dataDir + "\nHTTP_PORT=0\nGRPC_PORT=0\nLOG_LEVEL=error\nBCRYPT_COST=4\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(env), 0o644))
	t.Setenv("CONFIG_PATH", dir)

	a, err := New(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "test", a.Config.Env)
	assert.Equal(t, dataDir, a.Config.Storage.DataDir)
	assert.NotNil(t, a.Server.GRPC)
	assert.NotNil(t, a.Server.HTTP)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	assert.NoError(t, a.Run(ctx))
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, ".", getConfigPath())

	t.Setenv("CONFIG_PATH", "/etc/twitter-api")
	assert.Equal(t, "/etc/twitter-api", getConfigPath())
}
