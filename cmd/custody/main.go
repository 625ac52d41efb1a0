// custody 本地密钥托管命令行工具
//
// 管理文件或内存密钥库中的签名密钥：生成、助记词导入、列出与签名。
package main

import (
	"fmt"
	"os"
)

func main() {
	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
