// Package types 定义配置文件与模块之间共享的数据类型
package types

// AppConfig 应用配置
// 对应 JSON 配置文件的顶层结构；字段为 nil 表示使用默认值
type AppConfig struct {
	// 应用程序基本信息
	AppName *string `json:"app_name,omitempty"` // 应用名称
	DataDir *string `json:"data_dir,omitempty"` // 数据目录路径

	// Environment 运行环境：dev | test | prod
	// prod 环境禁止使用内存密钥库
	Environment *string `json:"environment,omitempty"`

	// 日志配置 - 对应配置文件中的 log 字段
	Log *UserLogConfig `json:"log,omitempty"`

	// 密钥库配置 - 对应配置文件中的 keystore 字段
	Keystore *UserKeystoreConfig `json:"keystore,omitempty"`
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level     *string `json:"level,omitempty"`      // 日志级别：debug, info, warn, error, fatal
	FilePath  *string `json:"file_path,omitempty"`  // 日志文件路径
	ToConsole *bool   `json:"to_console,omitempty"` // 是否输出到控制台
}

// UserKeystoreConfig 用户密钥库配置
type UserKeystoreConfig struct {
	Type            *string `json:"type,omitempty"`              // 后端类型：file | memory
	Path            *string `json:"path,omitempty"`              // 文件后端路径
	InitialKeyCount *int    `json:"initial_key_count,omitempty"` // 内存后端初始密钥数量
}

// StringPtr 返回字符串指针
func StringPtr(s string) *string { return &s }

// IntPtr 返回整数指针
func IntPtr(i int) *int { return &i }

// BoolPtr 返回布尔指针
func BoolPtr(b bool) *bool { return &b }
