// Package address 提供从公钥推导账户地址的单向函数
//
// 地址推导算法：
//
//	flag(1字节) || 公钥 → SHA3-256 → 取前 20 字节 → 地址
//
// 文本格式为 "0x" + 40 位小写十六进制。地址只能由公钥推导，调用方不能直接指定。
package address

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/weisyn/custody/internal/core/infrastructure/crypto/keypair"
	"golang.org/x/crypto/sha3"
)

// 地址系统配置常量
const (
	// Length 地址字节长度
	Length = 20
	// HexPrefix 文本格式前缀
	HexPrefix = "0x"
)

var (
	// ErrInvalidAddress 无效的地址格式
	ErrInvalidAddress = errors.New("invalid address format")
	// ErrInvalidAddressLength 无效的地址长度
	ErrInvalidAddressLength = errors.New("invalid address length")
)

// Address 账户地址
type Address [Length]byte

// Zero 零地址
var Zero Address

// FromPublicKey 从公钥推导地址
//
// 对 flag || 公钥字节做 SHA3-256，取前 20 字节。
// 同一公钥总是得到同一地址。
func FromPublicKey(pk keypair.PublicKey) Address {
	hasher := sha3.New256()
	hasher.Write([]byte{pk.Flag()})
	hasher.Write(pk.Bytes())
	digest := hasher.Sum(nil)

	var addr Address
	copy(addr[:], digest[:Length])
	return addr
}

// FromKeyPair 从密钥对的公钥推导地址
func FromKeyPair(kp keypair.KeyPair) Address {
	return FromPublicKey(kp.Public())
}

// FromBytes 从原始字节构造地址
func FromBytes(b []byte) (Address, error) {
	var addr Address
	if len(b) != Length {
		return addr, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidAddressLength, Length, len(b))
	}
	copy(addr[:], b)
	return addr, nil
}

// Parse 解析十六进制地址字符串，"0x" 前缀可选
func Parse(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalidAddress
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, HexPrefix), "0X")

	if len(s) != Length*2 {
		return Zero, fmt.Errorf("%w: expected %d hex chars, got %d", ErrInvalidAddressLength, Length*2, len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return FromBytes(raw)
}

// Bytes 返回地址字节副本
func (a Address) Bytes() []byte {
	return bytes.Clone(a[:])
}

// String 返回 0x 前缀的小写十六进制
func (a Address) String() string {
	return HexPrefix + hex.EncodeToString(a[:])
}

// IsZero 是否为零地址
func (a Address) IsZero() bool {
	return a == Zero
}

// Compare 按字节序比较两个地址
func (a Address) Compare(other Address) int {
	return bytes.Compare(a[:], other[:])
}

// MarshalText 实现 encoding.TextMarshaler
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
