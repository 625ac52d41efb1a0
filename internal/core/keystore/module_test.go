package keystore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	internalconfig "github.com/weisyn/custody/internal/config"
	"github.com/weisyn/custody/pkg/interfaces/config"
	"github.com/weisyn/custody/pkg/types"
)

func TestModule_ProvidesKeystore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custody.keystore")
	provider := internalconfig.NewProvider(&types.AppConfig{
		Keystore: &types.UserKeystoreConfig{Path: types.StringPtr(path)},
	})

	var (
		ks      *Keystore
		backend AccountKeystore
	)
	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() config.Provider { return provider }),
		Module(),
		fx.Populate(&ks, &backend),
	)
	require.NoError(t, app.Err())
	require.NotNil(t, ks)
	assert.Same(t, ks.Backend(), backend)

	fileKs, ok := backend.(*FileBasedKeystore)
	require.True(t, ok)
	assert.Equal(t, path, fileKs.Path())
}

func TestModule_InvalidType(t *testing.T) {
	provider := internalconfig.NewProvider(&types.AppConfig{
		Keystore: &types.UserKeystoreConfig{Type: types.StringPtr("hsm")},
	})

	var ks *Keystore
	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() config.Provider { return provider }),
		Module(),
		fx.Populate(&ks),
	)
	require.Error(t, app.Err())
	assert.Contains(t, app.Err().Error(), ErrUnsetType.Error())
}
