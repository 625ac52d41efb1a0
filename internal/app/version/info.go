// Package version provides version information for the application.
package version

import (
	"fmt"
	"runtime"
)

// 构建时注入的变量，通过ldflags设置
var (
	Version   = "v0.1.0"  // 语义化版本
	BuildTime = "unknown" // 构建时间戳（RFC3339格式）
	Commit    = "unknown" // 源码提交
)

// BuildInfo 构建信息
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetBuildInfo 获取完整构建信息
func GetBuildInfo() *BuildInfo {
	return &BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		Commit:    Commit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String 返回单行版本描述
func (b *BuildInfo) String() string {
	return fmt.Sprintf("custody %s (commit %s, built %s, %s, %s)",
		b.Version, b.Commit, b.BuildTime, b.GoVersion, b.Platform)
}
