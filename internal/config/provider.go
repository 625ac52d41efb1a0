package config

import (
	"strings"

	keystoreconfig "github.com/weisyn/custody/internal/config/keystore"
	logconfig "github.com/weisyn/custody/internal/config/log"
	"github.com/weisyn/custody/pkg/interfaces/config"
	"github.com/weisyn/custody/pkg/types"
)

// 运行环境
const (
	EnvDev  = "dev"
	EnvTest = "test"
	EnvProd = "prod"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}
	return &Provider{
		appConfig: appConfig,
	}
}

// GetEnvironment 获取运行环境，未配置或无效时为 prod
func (p *Provider) GetEnvironment() string {
	if p.appConfig.Environment == nil {
		return EnvProd
	}
	switch env := strings.ToLower(strings.TrimSpace(*p.appConfig.Environment)); env {
	case EnvDev, EnvTest, EnvProd:
		return env
	default:
		return EnvProd
	}
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *logconfig.LogOptions {
	return logconfig.New(p.appConfig.Log).GetOptions()
}

// GetKeystore 获取密钥库配置
func (p *Provider) GetKeystore() *keystoreconfig.KeystoreOptions {
	var dataDir string
	if p.appConfig.DataDir != nil {
		dataDir = *p.appConfig.DataDir
	}
	return keystoreconfig.New(p.appConfig.Keystore, dataDir).GetOptions()
}

// GetAppConfig 获取原始应用配置
func (p *Provider) GetAppConfig() *types.AppConfig {
	return p.appConfig
}
