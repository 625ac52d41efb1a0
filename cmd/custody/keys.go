package main

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/weisyn/custody/client/core/output"
	"github.com/weisyn/custody/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/custody/internal/core/infrastructure/crypto/hd"
	"github.com/weisyn/custody/internal/core/infrastructure/crypto/keypair"
)

// keyFlags new/import 共用的派生参数
type keyFlags struct {
	scheme string
	path   string
}

func (f *keyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.scheme, "scheme", "ed25519", "签名方案: ed25519|secp256k1|secp256r1")
	cmd.Flags().StringVar(&f.path, "path", "", "HD 派生路径 (默认使用方案的默认路径)")
}

// resolve 解析方案与路径，路径为空时返回 nil
func (f *keyFlags) resolve() (keypair.SignatureScheme, *hd.DerivationPath, error) {
	scheme, err := keypair.ParseSignatureScheme(f.scheme)
	if err != nil {
		return 0, nil, err
	}
	if strings.TrimSpace(f.path) == "" {
		return scheme, nil, nil
	}
	path, err := hd.ParseDerivationPath(f.path)
	if err != nil {
		return 0, nil, err
	}
	return scheme, path, nil
}

func newNewCmd(c *cli) *cobra.Command {
	var kf keyFlags
	cmd := &cobra.Command{
		Use:   "new",
		Short: "生成新密钥",
		Long: `生成 12 词助记词，派生密钥并保存到密钥库。

助记词只显示这一次，请务必安全备份。

示例：
  custody new
  custody new --scheme secp256k1
  custody new --scheme secp256r1 --path "m/74'/784'/0'/0/1"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, path, err := kf.resolve()
			if err != nil {
				return err
			}
			a, err := c.loadApp()
			if err != nil {
				return err
			}

			addr, phrase, scheme, err := a.Keystore().GenerateNewKey(scheme, path)
			if err != nil {
				return fmt.Errorf("生成密钥失败: %w", err)
			}

			c.formatter.PrintSuccess(fmt.Sprintf("密钥已生成: %s", addr))
			c.formatter.PrintWarning("请务必安全备份助记词，丢失将无法恢复密钥")
			return c.formatter.PrintRecord(output.NewRecord(
				"address", addr.String(),
				"scheme", scheme.String(),
				"mnemonic", phrase,
			))
		},
	}
	kf.register(cmd)
	return cmd
}

func newImportCmd(c *cli) *cobra.Command {
	var kf keyFlags
	var phrase string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "从助记词导入密钥",
		Long: `从 BIP39 助记词按 HD 路径派生密钥并保存到密钥库。

未提供 --mnemonic 时从标准输入读取（终端下不回显）。

示例：
  custody import --scheme secp256k1
  echo "word1 ... word12" | custody import --path "m/44'/784'/0'/0'/1'"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, path, err := kf.resolve()
			if err != nil {
				return err
			}
			if phrase == "" {
				phrase, err = readMnemonic(c.in, cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}
			a, err := c.loadApp()
			if err != nil {
				return err
			}

			addr, err := a.Keystore().ImportFromMnemonic(phrase, scheme, path)
			if err != nil {
				return fmt.Errorf("导入密钥失败: %w", err)
			}

			c.formatter.PrintSuccess(fmt.Sprintf("密钥已导入: %s", addr))
			return c.formatter.PrintRecord(output.NewRecord(
				"address", addr.String(),
				"scheme", scheme.String(),
			))
		},
	}
	kf.register(cmd)
	cmd.Flags().StringVar(&phrase, "mnemonic", "", "助记词 (不推荐，会留在 shell 历史中)")
	return cmd
}

// readMnemonic 从输入读取助记词；终端下不回显
func readMnemonic(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "请输入助记词: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("读取助记词失败: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("读取助记词失败: %w", err)
	}
	if strings.TrimSpace(line) == "" {
		return "", fmt.Errorf("未提供助记词")
	}
	return line, nil
}

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出密钥库中的公钥与地址",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.loadApp()
			if err != nil {
				return err
			}

			keys := a.Keystore().Keys()
			records := make([]output.Record, 0, len(keys))
			for _, pk := range keys {
				records = append(records, output.NewRecord(
					"address", address.FromPublicKey(pk).String(),
					"scheme", pk.Scheme().String(),
					"public_key", pk.Base64(),
				))
			}
			return c.formatter.PrintRecords(records)
		},
	}
}

func newSignCmd(c *cli) *cobra.Command {
	var addrFlag, dataFlag string
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "使用指定地址的密钥签名",
		Long: `对 base64 编码的数据签名，输出 base64(flag || signature || public_key)。

示例：
  custody sign --address 0x1234... --data aGVsbG8=`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := address.Parse(addrFlag)
			if err != nil {
				return err
			}
			msg, err := base64.StdEncoding.DecodeString(dataFlag)
			if err != nil {
				return fmt.Errorf("--data 不是有效的 base64: %w", err)
			}
			a, err := c.loadApp()
			if err != nil {
				return err
			}

			sig, err := a.Keystore().Sign(addr, msg)
			if err != nil {
				return err
			}
			return c.formatter.PrintRecord(output.NewRecord(
				"address", addr.String(),
				"scheme", sig.Scheme().String(),
				"signature", sig.Base64(),
			))
		},
	}
	cmd.Flags().StringVar(&addrFlag, "address", "", "签名地址 (0x...)")
	cmd.Flags().StringVar(&dataFlag, "data", "", "待签名数据 (base64)")
	_ = cmd.MarkFlagRequired("address")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func newVerifyCmd(c *cli) *cobra.Command {
	var sigFlag, dataFlag string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "验证签名",
		Long:  "使用签名中携带的公钥验证 base64 编码的数据，不需要打开密钥库。",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := keypair.SignatureFromBase64(sigFlag)
			if err != nil {
				return err
			}
			msg, err := base64.StdEncoding.DecodeString(dataFlag)
			if err != nil {
				return fmt.Errorf("--data 不是有效的 base64: %w", err)
			}
			pk, err := sig.PublicKey()
			if err != nil {
				return err
			}

			valid := sig.Verify(msg)
			if err := c.formatter.PrintRecord(output.NewRecord(
				"address", address.FromPublicKey(pk).String(),
				"scheme", sig.Scheme().String(),
				"valid", fmt.Sprintf("%t", valid),
			)); err != nil {
				return err
			}
			if !valid {
				return fmt.Errorf("签名无效")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sigFlag, "signature", "", "签名 (base64)")
	cmd.Flags().StringVar(&dataFlag, "data", "", "原始数据 (base64)")
	_ = cmd.MarkFlagRequired("signature")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}
