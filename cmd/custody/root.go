package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/weisyn/custody/client/core/output"
	"github.com/weisyn/custody/internal/app"
	"github.com/weisyn/custody/internal/app/version"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigFile   string // 配置文件
	KeystorePath string // 文件密钥库路径，覆盖配置
	InMemory     int    // 内存密钥库密钥数量，>=0 时启用
	OutputFormat string // 输出格式
	LogLevel     string // 日志级别
	Silent       bool   // 静默模式
}

// cli 单次命令执行的共享状态
type cli struct {
	flags     GlobalFlags
	in        io.Reader
	formatter *output.Formatter
	app       *app.App
}

// newRootCmd 构造根命令
func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &cli{in: in}

	rootCmd := &cobra.Command{
		Use:   "custody",
		Short: "本地密钥托管工具",
		Long: `custody - 本地签名密钥托管

密钥保存在 JSON 密钥库文件中（或仅保存在内存中），支持:
- 生成新密钥并返回 12 词助记词
- 从助记词按 HD 路径导入 ed25519 / secp256k1 / secp256r1 密钥
- 列出公钥与地址
- 使用指定地址的密钥签名`,
		Version:       version.GetBuildInfo().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(c.flags.OutputFormat)
			if err != nil {
				return err
			}
			c.formatter = output.NewFormatter(format, out)
			c.formatter.SetLogWriter(errOut)
			c.formatter.SetSilent(c.flags.Silent)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.app == nil {
				return nil
			}
			return c.app.Close()
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&c.flags.ConfigFile, "config", "c", "", "配置文件路径 (JSON)")
	pf.StringVar(&c.flags.KeystorePath, "keystore", "", "文件密钥库路径，覆盖配置文件")
	pf.IntVar(&c.flags.InMemory, "in-memory", -1, "使用含 N 个确定性密钥的内存密钥库 (仅测试)")
	pf.StringVarP(&c.flags.OutputFormat, "output", "o", "json", "输出格式: json|pretty|table|text")
	pf.StringVar(&c.flags.LogLevel, "log-level", "", "日志级别: debug|info|warn|error")
	pf.BoolVar(&c.flags.Silent, "silent", false, "静默模式 (仅输出结果)")
	rootCmd.MarkFlagsMutuallyExclusive("keystore", "in-memory")

	rootCmd.AddCommand(
		newNewCmd(c),
		newImportCmd(c),
		newListCmd(c),
		newSignCmd(c),
		newVerifyCmd(c),
		newInfoCmd(c),
		newConfigCmd(c),
		newVersionCmd(c),
	)
	return rootCmd
}

// loadApp 按全局标志加载配置并打开密钥库
func (c *cli) loadApp() (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}

	opts := []app.Option{app.WithConfigFile(c.flags.ConfigFile)}
	if c.flags.KeystorePath != "" {
		opts = append(opts, app.WithKeystorePath(c.flags.KeystorePath))
	}
	if c.flags.InMemory >= 0 {
		opts = append(opts, app.WithInMemory(c.flags.InMemory))
	}
	if c.flags.LogLevel != "" {
		opts = append(opts, app.WithLogLevel(c.flags.LogLevel))
	}

	a, err := app.New(opts...)
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}
