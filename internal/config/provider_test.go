package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	keystoreconfig "github.com/weisyn/custody/internal/config/keystore"
	"github.com/weisyn/custody/pkg/types"
)

// TestGetEnvironment 测试 GetEnvironment() 方法
func TestGetEnvironment(t *testing.T) {
	tests := []struct {
		name string
		env  *string
		want string
	}{
		{"显式配置 dev", types.StringPtr("dev"), EnvDev},
		{"显式配置 test", types.StringPtr(" TEST "), EnvTest},
		{"显式配置 prod", types.StringPtr("prod"), EnvProd},
		{"未配置时默认为 prod", nil, EnvProd},
		{"无效值默认为 prod", types.StringPtr("invalid"), EnvProd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := NewProvider(&types.AppConfig{Environment: tt.env})
			assert.Equal(t, tt.want, provider.GetEnvironment())
		})
	}
}

func TestProvider_NilAppConfig(t *testing.T) {
	provider := NewProvider(nil)
	assert.Equal(t, "info", provider.GetLog().Level)
	assert.Equal(t, keystoreconfig.TypeFile, provider.GetKeystore().Type)
	assert.NotNil(t, provider.GetAppConfig())
}

func TestValidateMandatoryConfig(t *testing.T) {
	t.Run("默认配置有效", func(t *testing.T) {
		assert.NoError(t, ValidateMandatoryConfig(NewProvider(nil)))
	})

	t.Run("dev 环境允许内存密钥库", func(t *testing.T) {
		provider := NewProvider(&types.AppConfig{
			Environment: types.StringPtr("dev"),
			Keystore:    &types.UserKeystoreConfig{Type: types.StringPtr("memory")},
		})
		assert.NoError(t, ValidateMandatoryConfig(provider))
	})

	t.Run("prod 环境拒绝内存密钥库", func(t *testing.T) {
		provider := NewProvider(&types.AppConfig{
			Keystore: &types.UserKeystoreConfig{Type: types.StringPtr("memory")},
		})
		err := ValidateMandatoryConfig(provider)
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "keystore.type", verr.Field)
	})

	t.Run("多个错误一起返回", func(t *testing.T) {
		provider := NewProvider(&types.AppConfig{
			Log:      &types.UserLogConfig{Level: types.StringPtr("loud")},
			Keystore: &types.UserKeystoreConfig{Type: types.StringPtr("hsm")},
		})
		err := ValidateMandatoryConfig(provider)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.level")
		assert.Contains(t, err.Error(), "keystore")
	})
}
