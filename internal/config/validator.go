package config

import (
	"errors"
	"fmt"

	logconfig "github.com/weisyn/custody/internal/config/log"
	"github.com/weisyn/custody/pkg/interfaces/config"
)

// ValidationError 配置验证错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("配置验证失败 [%s]: %s", e.Field, e.Message)
}

// ValidateMandatoryConfig 在启动时校验配置
//
// 规则：
//   - log.level 必须为已知级别
//   - keystore 配置必须有效
//   - prod 环境禁止使用内存密钥库（其密钥由固定种子生成）
func ValidateMandatoryConfig(provider config.Provider) error {
	var errs []error

	if level := provider.GetLog().Level; !logconfig.ValidLevel(level) {
		errs = append(errs, &ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("未知的日志级别: %q", level),
		})
	}

	ks := provider.GetKeystore()
	if err := ks.Validate(); err != nil {
		errs = append(errs, &ValidationError{
			Field:   "keystore",
			Message: err.Error(),
		})
	}

	if ks.IsMemory() && provider.GetEnvironment() == EnvProd {
		errs = append(errs, &ValidationError{
			Field:   "keystore.type",
			Message: "prod 环境不允许使用内存密钥库",
		})
	}

	return errors.Join(errs...)
}
