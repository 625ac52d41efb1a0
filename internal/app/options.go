package app

import (
	"github.com/weisyn/custody/pkg/interfaces/config"
	"github.com/weisyn/custody/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 配置文件路径，为空时使用默认配置
	configFilePath string

	// 直接提供的应用配置，优先级高于配置文件
	appConfig *types.AppConfig

	// 命令行覆盖项
	keystorePath *string
	inMemory     *int
	logLevel     *string
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithAppConfig 直接提供应用配置
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = appConfig
	}
}

// WithKeystorePath 使用指定路径的文件密钥库
func WithKeystorePath(path string) Option {
	return func(o *options) {
		o.keystorePath = &path
	}
}

// WithInMemory 使用含 n 个确定性密钥的内存密钥库
func WithInMemory(n int) Option {
	return func(o *options) {
		o.inMemory = &n
	}
}

// WithLogLevel 覆盖日志级别
func WithLogLevel(level string) Option {
	return func(o *options) {
		o.logLevel = &level
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// resolve 加载配置文件并应用命令行覆盖项
func (o *options) resolve() error {
	if o.appConfig == nil {
		appConfig, err := LoadConfig(o.configFilePath)
		if err != nil {
			return err
		}
		o.appConfig = appConfig
	} else {
		copied := *o.appConfig
		o.appConfig = &copied
	}

	if o.keystorePath != nil || o.inMemory != nil {
		ks := &types.UserKeystoreConfig{}
		if o.appConfig.Keystore != nil {
			copied := *o.appConfig.Keystore
			ks = &copied
		}
		if o.keystorePath != nil {
			ks.Type = types.StringPtr("file")
			ks.Path = o.keystorePath
		}
		if o.inMemory != nil {
			ks.Type = types.StringPtr("memory")
			ks.InitialKeyCount = o.inMemory
			// 内存密钥库仅用于测试，未显式配置环境时按 test 处理
			if o.appConfig.Environment == nil {
				o.appConfig.Environment = types.StringPtr("test")
			}
		}
		o.appConfig.Keystore = ks
	}

	if o.logLevel != nil {
		logCfg := &types.UserLogConfig{}
		if o.appConfig.Log != nil {
			copied := *o.appConfig.Log
			logCfg = &copied
		}
		logCfg.Level = o.logLevel
		o.appConfig.Log = logCfg
	}
	return nil
}

// GetAppConfig 返回应用程序配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
