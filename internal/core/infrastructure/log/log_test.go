package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap/zapcore"

	internalconfig "github.com/weisyn/custody/internal/config"
	logconfig "github.com/weisyn/custody/internal/config/log"
	"github.com/weisyn/custody/pkg/interfaces/config"
	logInterface "github.com/weisyn/custody/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/custody/pkg/types"
)

func newBufferLogger(t *testing.T, level string) (logInterface.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := logconfig.New(&types.UserLogConfig{Level: types.StringPtr(level)})
	logger, err := NewWithConsole(cfg, zapcore.AddSync(&buf))
	require.NoError(t, err)
	return logger, &buf
}

// TestInfoLog 测试信息级别日志
func TestInfoLog(t *testing.T) {
	logger, buf := newBufferLogger(t, "info")

	logger.Infof("密钥库加载成功: keys=%d", 3)
	logger.Debug("不应输出")
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.Contains(t, out, "密钥库加载成功: keys=3")
	assert.Contains(t, out, "INFO")
	assert.NotContains(t, out, "不应输出")
}

func TestWithModule(t *testing.T) {
	logger, buf := newBufferLogger(t, "debug")

	WithModule(logger, "keystore").Debug("带模块字段")
	require.NoError(t, logger.Sync())

	assert.Contains(t, buf.String(), "带模块字段")
	assert.Contains(t, buf.String(), `"module": "keystore"`)
	assert.Nil(t, WithModule(nil, "keystore"))
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "custody.log")
	cfg := logconfig.New(&types.UserLogConfig{FilePath: types.StringPtr(path)})

	logger, err := New(cfg)
	require.NoError(t, err)
	logger.With("address", "0xabc").Warnf("签名失败: %s", "not found")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	line := strings.TrimSpace(string(data))
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "签名失败: not found", entry["message"])
	assert.Equal(t, "0xabc", entry["address"])
}

func TestFileOutput_BadDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	cfg := logconfig.New(&types.UserLogConfig{FilePath: types.StringPtr(filepath.Join(blocker, "custody.log"))})
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestGlobalLogger(t *testing.T) {
	old := GetLogger()
	t.Cleanup(func() { SetLogger(old) })

	logger, buf := newBufferLogger(t, "info")
	SetLogger(logger)
	SetLogger(nil)
	assert.Same(t, logger, GetLogger())

	Infof("全局 %s", "info")
	Warnf("全局 %s", "warn")
	Errorf("全局 %s", "error")
	With("k", "v").Info("全局 with")
	require.NoError(t, logger.Sync())

	out := buf.String()
	for _, want := range []string{"全局 info", "全局 warn", "全局 error", "全局 with"} {
		assert.Contains(t, out, want)
	}
}

func TestToZapFields_OddArgs(t *testing.T) {
	fields := toZapFields("a", 1, "dangling")
	require.Len(t, fields, 1)
	assert.Equal(t, "a", fields[0].Key)

	fields = toZapFields(42, "v")
	assert.Equal(t, "42", fields[0].Key)
}

func TestModule_ProvidesLogger(t *testing.T) {
	old := GetLogger()
	t.Cleanup(func() { SetLogger(old) })

	provider := internalconfig.NewProvider(&types.AppConfig{
		Log: &types.UserLogConfig{Level: types.StringPtr("warn")},
	})

	var logger logInterface.Logger
	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() config.Provider { return provider }),
		Module(),
		fx.Populate(&logger),
	)
	require.NoError(t, app.Err())
	require.NotNil(t, logger)
	assert.Same(t, logger, GetLogger())
	assert.False(t, logger.GetZapLogger().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.GetZapLogger().Core().Enabled(zapcore.WarnLevel))
}
