package keystore

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	keystoreconfig "github.com/weisyn/custody/internal/config/keystore"
	"github.com/weisyn/custody/pkg/interfaces/config"
	"github.com/weisyn/custody/pkg/interfaces/infrastructure/log"
)

// KeystoreParams 定义密钥库模块的依赖参数
type KeystoreParams struct {
	fx.In

	Provider config.Provider // 配置提供者
	Logger   log.Logger      `optional:"true"` // 日志记录器
}

// KeystoreOutput 定义密钥库模块的输出结构
type KeystoreOutput struct {
	fx.Out

	Keystore *Keystore
	Backend  AccountKeystore
}

// Module 返回密钥库模块
func Module() fx.Option {
	return fx.Module("keystore",
		fx.Provide(ProvideKeystore),
	)
}

// ProvideKeystore 根据配置构造密钥库
func ProvideKeystore(params KeystoreParams) (KeystoreOutput, error) {
	var logger log.Logger = noopLogger{}
	if params.Logger != nil {
		logger = params.Logger.With("module", "keystore")
	}

	ks, err := TypeFromOptions(params.Provider.GetKeystore()).Init(WithLogger(logger))
	if err != nil {
		return KeystoreOutput{}, err
	}
	return KeystoreOutput{
		Keystore: ks,
		Backend:  ks.Backend(),
	}, nil
}

// TypeFromOptions 将配置选项转换为后端选择器
func TypeFromOptions(opts *keystoreconfig.KeystoreOptions) Type {
	if opts == nil {
		return Type{}
	}
	switch opts.Type {
	case keystoreconfig.TypeFile:
		return FileType(opts.Path)
	case keystoreconfig.TypeMemory:
		return InMemType(opts.InitialKeyCount)
	default:
		return Type{}
	}
}

// noopLogger 是一个无操作的Logger实现，用于未提供Logger时的回退
type noopLogger struct{}

func (noopLogger) Debug(msg string)                          {}
func (noopLogger) Debugf(format string, args ...interface{}) {}
func (noopLogger) Info(msg string)                           {}
func (noopLogger) Infof(format string, args ...interface{})  {}
func (noopLogger) Warn(msg string)                           {}
func (noopLogger) Warnf(format string, args ...interface{})  {}
func (noopLogger) Error(msg string)                          {}
func (noopLogger) Errorf(format string, args ...interface{}) {}
func (noopLogger) Fatal(msg string)                          {}
func (noopLogger) Fatalf(format string, args ...interface{}) {}
func (l noopLogger) With(args ...interface{}) log.Logger     { return l }
func (noopLogger) Sync() error                               { return nil }
func (noopLogger) GetZapLogger() *zap.Logger                 { return zap.NewNop() }
