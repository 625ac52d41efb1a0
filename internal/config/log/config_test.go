package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"

	"github.com/weisyn/custody/pkg/types"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New(nil)

	assert.Equal(t, "info", cfg.GetLevel())
	assert.Equal(t, zapcore.InfoLevel, cfg.GetZapLevel())
	assert.True(t, cfg.IsConsoleEnabled())
	assert.Empty(t, cfg.GetFilePath())
	assert.Equal(t, 100, cfg.GetMaxSize())
	assert.Equal(t, 10, cfg.GetMaxBackups())
	assert.Equal(t, 30, cfg.GetMaxAge())
	assert.True(t, cfg.IsCompressionEnabled())
}

func TestNew_UserOverrides(t *testing.T) {
	t.Run("文件路径关闭控制台输出", func(t *testing.T) {
		cfg := New(&types.UserLogConfig{
			Level:    types.StringPtr(" DEBUG "),
			FilePath: types.StringPtr("/tmp/custody.log"),
		})
		assert.Equal(t, "debug", cfg.GetLevel())
		assert.Equal(t, zapcore.DebugLevel, cfg.GetZapLevel())
		assert.Equal(t, "/tmp/custody.log", cfg.GetFilePath())
		assert.False(t, cfg.IsConsoleEnabled())
	})

	t.Run("显式保留控制台输出", func(t *testing.T) {
		cfg := New(&types.UserLogConfig{
			FilePath:  types.StringPtr("/tmp/custody.log"),
			ToConsole: types.BoolPtr(true),
		})
		assert.True(t, cfg.IsConsoleEnabled())
	})

	t.Run("未知级别回退为 info", func(t *testing.T) {
		cfg := New(&types.UserLogConfig{Level: types.StringPtr("verbose")})
		assert.Equal(t, zapcore.InfoLevel, cfg.GetZapLevel())
		assert.False(t, ValidLevel(cfg.GetLevel()))
	})
}

func TestFromOptions(t *testing.T) {
	cfg := FromOptions(nil)
	assert.Equal(t, "info", cfg.GetLevel())

	cfg = FromOptions(&LogOptions{Level: "warn"})
	assert.Equal(t, zapcore.WarnLevel, cfg.GetZapLevel())
}
