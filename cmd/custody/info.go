package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weisyn/custody/client/core/output"
	"github.com/weisyn/custody/configs"
	"github.com/weisyn/custody/internal/app/version"
)

func newInfoCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "显示密钥库信息",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.loadApp()
			if err != nil {
				return err
			}

			opts := a.Config().GetKeystore()
			path := opts.Path
			if opts.IsMemory() {
				path = ""
			}
			if c.formatter.Format() == output.FormatText {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(a.Keystore().String(), "\n"))
				return err
			}
			return c.formatter.PrintRecord(output.NewRecord(
				"environment", a.Config().GetEnvironment(),
				"type", opts.Type,
				"path", path,
				"keys", fmt.Sprintf("%d", len(a.Keystore().Keys())),
			))
		},
	}
}

func newVersionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.formatter.Print(version.GetBuildInfo())
		},
	}
}

func newConfigCmd(c *cli) *cobra.Command {
	var env string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "输出示例配置文件",
		Long: `输出内置的示例配置，可重定向保存后通过 --config 使用。

示例：
  custody config --env prod > custody.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := configs.ForEnvironment(env)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&env, "env", "dev", "环境: dev|test|prod")
	return cmd
}
