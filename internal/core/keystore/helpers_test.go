package keystore

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/weisyn/custody/pkg/interfaces/infrastructure/log"
)

const abandonPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// recordingLogger 记录所有日志内容，用于断言敏感信息不会出现在日志中
type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, msg)
}

func (l *recordingLogger) contains(s string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if strings.Contains(e, s) {
			return true
		}
	}
	return false
}

func (l *recordingLogger) Debug(msg string)                          { l.record(msg) }
func (l *recordingLogger) Debugf(format string, args ...interface{}) { l.record(fmt.Sprintf(format, args...)) }
func (l *recordingLogger) Info(msg string)                           { l.record(msg) }
func (l *recordingLogger) Infof(format string, args ...interface{})  { l.record(fmt.Sprintf(format, args...)) }
func (l *recordingLogger) Warn(msg string)                           { l.record(msg) }
func (l *recordingLogger) Warnf(format string, args ...interface{})  { l.record(fmt.Sprintf(format, args...)) }
func (l *recordingLogger) Error(msg string)                          { l.record(msg) }
func (l *recordingLogger) Errorf(format string, args ...interface{}) { l.record(fmt.Sprintf(format, args...)) }
func (l *recordingLogger) Fatal(msg string)                          { l.record(msg) }
func (l *recordingLogger) Fatalf(format string, args ...interface{}) { l.record(fmt.Sprintf(format, args...)) }
func (l *recordingLogger) With(args ...interface{}) log.Logger       { return l }
func (l *recordingLogger) Sync() error                               { return nil }
func (l *recordingLogger) GetZapLogger() *zap.Logger                 { return zap.NewNop() }

func writeFile(path string) error {
	return os.WriteFile(path, []byte("x"), 0o600)
}
