// Package app 组装配置、日志与密钥库模块
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"

	"go.uber.org/fx"

	internalconfig "github.com/weisyn/custody/internal/config"
	"github.com/weisyn/custody/internal/core/infrastructure/log"
	"github.com/weisyn/custody/internal/core/keystore"
	"github.com/weisyn/custody/pkg/interfaces/config"
	logInterface "github.com/weisyn/custody/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/custody/pkg/types"
)

// App 已装配完成的应用
type App struct {
	fxApp    *fx.App
	provider config.Provider
	keystore *keystore.Keystore
	logger   logInterface.Logger
}

// LoadConfig 从 JSON 文件加载应用配置
//
// path 为空或文件不存在时返回空配置（全部使用默认值）；文件存在但无法解析时返回错误。
func LoadConfig(path string) (*types.AppConfig, error) {
	if path == "" {
		return &types.AppConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &types.AppConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败 %s: %w", path, err)
	}

	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("解析配置文件失败 %s: %w", path, err)
	}
	return &appConfig, nil
}

// New 加载配置并构造配置、日志、密钥库模块
func New(opts ...Option) (*App, error) {
	o := newOptions(opts...)
	if err := o.resolve(); err != nil {
		return nil, err
	}

	a := &App{}
	a.fxApp = fx.New(
		fx.NopLogger,
		fx.Provide(func() config.AppOptions { return o }),
		internalconfig.Module(),
		log.Module(),
		keystore.Module(),
		fx.Populate(&a.provider, &a.keystore, &a.logger),
	)
	if err := a.fxApp.Err(); err != nil {
		return nil, fmt.Errorf("创建应用失败: %w", err)
	}
	return a, nil
}

// Keystore 返回密钥库
func (a *App) Keystore() *keystore.Keystore {
	return a.keystore
}

// Logger 返回日志记录器
func (a *App) Logger() logInterface.Logger {
	return a.logger
}

// Config 返回配置提供者
func (a *App) Config() config.Provider {
	return a.provider
}

// Close 刷新日志缓冲区
func (a *App) Close() error {
	err := a.logger.Sync()
	// 终端与管道不支持 fsync
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
