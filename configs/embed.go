// Package configs 内置各环境的示例配置
package configs

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed development/config.json
var developmentConfig []byte

//go:embed testing/config.json
var testingConfig []byte

//go:embed production/config.json
var productionConfig []byte

// GetDevelopmentConfig 获取开发环境配置
func GetDevelopmentConfig() []byte {
	return developmentConfig
}

// GetTestingConfig 获取测试环境配置（内存密钥库）
func GetTestingConfig() []byte {
	return testingConfig
}

// GetProductionConfig 获取生产环境配置
func GetProductionConfig() []byte {
	return productionConfig
}

// ForEnvironment 按环境名称返回示例配置
func ForEnvironment(env string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development":
		return developmentConfig, nil
	case "test", "testing":
		return testingConfig, nil
	case "prod", "production":
		return productionConfig, nil
	default:
		return nil, fmt.Errorf("未知的环境: %q，应为 dev|test|prod", env)
	}
}
