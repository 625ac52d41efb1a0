// Package keystore 提供密钥库后端的配置
package keystore

import (
	"fmt"
	"path/filepath"
	"strings"

	configtypes "github.com/weisyn/custody/pkg/types"
)

// 后端类型名称
const (
	TypeFile   = "file"
	TypeMemory = "memory"
)

// KeystoreOptions 密钥库配置选项
type KeystoreOptions struct {
	Type            string `json:"type"`              // 后端类型 (file, memory)
	Path            string `json:"path"`              // 文件后端路径
	InitialKeyCount int    `json:"initial_key_count"` // 内存后端初始密钥数量
}

// Config 密钥库配置实现
type Config struct {
	options *KeystoreOptions
}

// New 创建密钥库配置，userConfig 为 nil 时使用默认值
//
// dataDir 非空且未显式配置路径时，默认路径放在 dataDir/keystore 下。
func New(userConfig *configtypes.UserKeystoreConfig, dataDir string) *Config {
	options := &KeystoreOptions{
		Type:            defaultType,
		Path:            defaultPath,
		InitialKeyCount: defaultInitialKeyCount,
	}
	if dataDir != "" {
		options.Path = filepath.Join(dataDir, "keystore", filepath.Base(defaultPath))
	}

	if userConfig != nil {
		if userConfig.Type != nil {
			options.Type = strings.ToLower(strings.TrimSpace(*userConfig.Type))
		}
		if userConfig.Path != nil {
			options.Path = *userConfig.Path
		}
		if userConfig.InitialKeyCount != nil {
			options.InitialKeyCount = *userConfig.InitialKeyCount
		}
	}

	return &Config{options: options}
}

// GetOptions 获取完整的密钥库配置选项
func (c *Config) GetOptions() *KeystoreOptions {
	return c.options
}

// Validate 校验配置
func (o *KeystoreOptions) Validate() error {
	switch o.Type {
	case TypeFile:
		if strings.TrimSpace(o.Path) == "" {
			return fmt.Errorf("keystore.path 不能为空")
		}
	case TypeMemory:
		if o.InitialKeyCount < 0 {
			return fmt.Errorf("keystore.initial_key_count 不能为负数: %d", o.InitialKeyCount)
		}
	default:
		return fmt.Errorf("未知的密钥库类型: %q，应为 file 或 memory", o.Type)
	}
	return nil
}

// IsMemory 是否为内存后端
func (o *KeystoreOptions) IsMemory() bool {
	return o.Type == TypeMemory
}
