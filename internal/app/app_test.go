package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/custody/internal/core/infrastructure/crypto/keypair"
	"github.com/weisyn/custody/pkg/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "custody.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Keystore)
	assert.Nil(t, cfg.Log)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoadConfig_ParsesFile(t *testing.T) {
	path := writeConfig(t, `{
		"app_name": "custody",
		"environment": "dev",
		"log": {"level": "debug"},
		"keystore": {"type": "memory", "initial_key_count": 2}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Keystore)
	assert.Equal(t, "memory", *cfg.Keystore.Type)
	assert.Equal(t, 2, *cfg.Keystore.InitialKeyCount)
	assert.Equal(t, "debug", *cfg.Log.Level)
	assert.Equal(t, "dev", *cfg.Environment)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{"keystore": `)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestNew_FileKeystoreOverride(t *testing.T) {
	ksPath := filepath.Join(t.TempDir(), "nested", "custody.keystore")

	a, err := New(
		WithAppConfig(&types.AppConfig{}),
		WithKeystorePath(ksPath),
		WithLogLevel("error"),
	)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "file", a.Config().GetKeystore().Type)
	assert.Equal(t, ksPath, a.Config().GetKeystore().Path)
	assert.Empty(t, a.Keystore().Keys())

	addr, _, _, err := a.Keystore().GenerateNewKey(keypair.Ed25519, nil)
	require.NoError(t, err)
	assert.FileExists(t, ksPath)
	assert.Equal(t, addr, a.Keystore().Addresses()[0])
}

func TestNew_InMemoryOverride(t *testing.T) {
	a, err := New(WithAppConfig(&types.AppConfig{}), WithInMemory(3), WithLogLevel("error"))
	require.NoError(t, err)
	defer a.Close()

	assert.Len(t, a.Keystore().Keys(), 3)
	assert.Equal(t, "test", a.Config().GetEnvironment())
}

func TestNew_DoesNotMutateSuppliedConfig(t *testing.T) {
	cfg := &types.AppConfig{}
	a, err := New(WithAppConfig(cfg), WithInMemory(1), WithLogLevel("error"))
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, cfg.Keystore)
	assert.Nil(t, cfg.Environment)
}

func TestNew_MemoryKeystoreRejectedInProd(t *testing.T) {
	cfg := &types.AppConfig{
		Environment: types.StringPtr("prod"),
		Keystore:    &types.UserKeystoreConfig{Type: types.StringPtr("memory")},
	}
	_, err := New(WithAppConfig(cfg))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keystore.type")
}

func TestNew_InvalidConfigFile(t *testing.T) {
	path := writeConfig(t, `not json`)
	_, err := New(WithConfigFile(path))
	assert.Error(t, err)
}
