// Package config provides configuration provider interfaces.
package config

import (
	keystoreconfig "github.com/weisyn/custody/internal/config/keystore"
	logconfig "github.com/weisyn/custody/internal/config/log"
	"github.com/weisyn/custody/pkg/types"
)

// Provider 配置提供者接口
type Provider interface {
	// GetEnvironment 获取运行环境 (dev | test | prod)
	GetEnvironment() string

	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetKeystore 获取密钥库配置
	GetKeystore() *keystoreconfig.KeystoreOptions

	// GetAppConfig 获取原始应用配置
	GetAppConfig() *types.AppConfig
}
