// Package log 提供基于 zap 的日志实现
// 控制台输出写到 stderr，文件输出通过 lumberjack 轮转
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	logconfig "github.com/weisyn/custody/internal/config/log"
	logInterface "github.com/weisyn/custody/pkg/interfaces/infrastructure/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// 全局日志实例，使用接口类型
	globalLogger logInterface.Logger
	// 用于保护全局日志实例的互斥锁
	mu sync.RWMutex
)

// Logger 是日志记录器的结构体，实现了log.Logger接口
type Logger struct {
	zapLogger *zap.Logger
	sugar     *zap.SugaredLogger
}

// 初始化全局日志记录器
func init() {
	ResetDefault()
}

// ResetDefault 重置全局日志记录器为默认配置
func ResetDefault() {
	logger, err := New(logconfig.New(nil))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize default logger: %v\n", err)
		return
	}
	SetLogger(logger)
}

// New 根据配置创建日志记录器，控制台输出写到 stderr
func New(config *logconfig.Config) (logInterface.Logger, error) {
	return NewWithConsole(config, zapcore.Lock(os.Stderr))
}

// NewWithConsole 根据配置创建日志记录器，控制台输出写到 console
func NewWithConsole(config *logconfig.Config, console zapcore.WriteSyncer) (logInterface.Logger, error) {
	level := zap.NewAtomicLevelAt(config.GetZapLevel())
	outputPath := config.GetFilePath()

	var cores []zapcore.Core

	// 1. 控制台输出
	if config.IsConsoleEnabled() || outputPath == "stderr" || outputPath == "stdout" {
		output := console
		if outputPath == "stdout" {
			output = zapcore.Lock(os.Stdout)
		}
		cores = append(cores, zapcore.NewCore(config.CreateConsoleEncoder(), output, level))
	}

	// 2. 文件输出
	if outputPath != "" && outputPath != "stdout" && outputPath != "stderr" {
		absPath, err := filepath.Abs(outputPath)
		if err != nil {
			return nil, fmt.Errorf("获取日志文件绝对路径失败: %w", err)
		}
		fileWriter, err := createFileWriter(absPath, config)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(config.CreateFileEncoder(), fileWriter, level))
	}

	if len(cores) == 0 {
		cores = append(cores, zapcore.NewNopCore())
	}

	var zapOptions []zap.Option
	if config.IsCallerEnabled() {
		// 跳过一层日志封装，使调用位置指向真实业务代码位置
		zapOptions = append(zapOptions, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	if config.IsStacktraceEnabled() {
		zapOptions = append(zapOptions, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	zapLogger := zap.New(zapcore.NewTee(cores...), zapOptions...)
	return &Logger{
		zapLogger: zapLogger,
		sugar:     zapLogger.Sugar(),
	}, nil
}

// createFileWriter 创建带轮转的日志文件写入器
func createFileWriter(logPath string, config *logconfig.Config) (zapcore.WriteSyncer, error) {
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return nil, fmt.Errorf("创建日志目录失败 %s: %w", logDir, err)
	}

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    config.GetMaxSize(),           // megabytes
		MaxBackups: config.GetMaxBackups(),        // 最多保留文件数
		MaxAge:     config.GetMaxAge(),            // days
		Compress:   config.IsCompressionEnabled(), // 是否压缩
	}), nil
}

// SetLogger 设置全局日志记录器
func SetLogger(logger logInterface.Logger) {
	if logger == nil {
		return
	}
	mu.Lock()
	globalLogger = logger
	mu.Unlock()
}

// GetLogger 获取全局日志记录器
func GetLogger() logInterface.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// Infof 使用全局日志记录器记录信息级别日志
func Infof(format string, args ...interface{}) {
	if l := GetLogger(); l != nil {
		l.Infof(format, args...)
	}
}

// Warnf 使用全局日志记录器记录警告级别日志
func Warnf(format string, args ...interface{}) {
	if l := GetLogger(); l != nil {
		l.Warnf(format, args...)
	}
}

// Errorf 使用全局日志记录器记录错误级别日志
func Errorf(format string, args ...interface{}) {
	if l := GetLogger(); l != nil {
		l.Errorf(format, args...)
	}
}

// With 基于全局日志记录器创建带额外字段的日志记录器
func With(args ...interface{}) logInterface.Logger {
	if GetLogger() == nil {
		ResetDefault()
	}
	return GetLogger().With(args...)
}

// toZapFields 将键值对参数转换为zap字段，奇数个参数时忽略最后一个
func toZapFields(args ...interface{}) []zap.Field {
	if len(args)%2 != 0 {
		args = args[:len(args)-1]
	}

	fields := make([]zap.Field, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		fields = append(fields, zap.Any(key, args[i+1]))
	}
	return fields
}

// GetZapLogger 获取底层的zap日志记录器
func (l *Logger) GetZapLogger() *zap.Logger {
	return l.zapLogger
}

// Debug 记录调试级别的日志
func (l *Logger) Debug(msg string) { l.sugar.Debug(msg) }

// Debugf 使用格式化字符串记录调试级别的日志
func (l *Logger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }

// Info 记录信息级别的日志
func (l *Logger) Info(msg string) { l.sugar.Info(msg) }

// Infof 使用格式化字符串记录信息级别的日志
func (l *Logger) Infof(format string, args ...interface{}) { l.sugar.Infof(format, args...) }

// Warn 记录警告级别的日志
func (l *Logger) Warn(msg string) { l.sugar.Warn(msg) }

// Warnf 使用格式化字符串记录警告级别的日志
func (l *Logger) Warnf(format string, args ...interface{}) { l.sugar.Warnf(format, args...) }

// Error 记录错误级别的日志
func (l *Logger) Error(msg string) { l.sugar.Error(msg) }

// Errorf 使用格式化字符串记录错误级别的日志
func (l *Logger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// Fatal 记录致命级别的日志，然后退出程序
func (l *Logger) Fatal(msg string) { l.sugar.Fatal(msg) }

// Fatalf 使用格式化字符串记录致命级别的日志，然后退出程序
func (l *Logger) Fatalf(format string, args ...interface{}) { l.sugar.Fatalf(format, args...) }

// With 返回一个带有额外字段的Logger
func (l *Logger) With(args ...interface{}) logInterface.Logger {
	zapLogger := l.zapLogger.With(toZapFields(args...)...)
	return &Logger{
		zapLogger: zapLogger,
		sugar:     zapLogger.Sugar(),
	}
}

// Sync 同步日志缓冲区到输出
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}
