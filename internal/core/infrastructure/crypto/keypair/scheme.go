// Package keypair 提供托管子系统使用的签名密钥对、公钥与签名类型
//
// 支持的签名方案：
// - Ed25519   (flag 0x00)
// - Secp256k1 (flag 0x01)
// - Secp256r1 (flag 0x02)
//
// 每个值都带有方案标识字节，持久化与签名格式均为自描述格式。
package keypair

import (
	"errors"
	"fmt"
	"strings"
)

// SignatureScheme 签名方案
type SignatureScheme byte

const (
	// Ed25519 Ed25519 签名方案
	Ed25519 SignatureScheme = 0x00
	// Secp256k1 secp256k1 ECDSA 签名方案
	Secp256k1 SignatureScheme = 0x01
	// Secp256r1 NIST P-256 ECDSA 签名方案
	Secp256r1 SignatureScheme = 0x02
)

// 错误定义
var (
	ErrUnknownScheme   = errors.New("unknown signature scheme")
	ErrInvalidKeyPair  = errors.New("invalid keypair encoding")
	ErrInvalidPublic   = errors.New("invalid public key")
	ErrInvalidSigBytes = errors.New("invalid signature encoding")
)

// 各方案的长度常量
const (
	// SecretKeyLength 所有方案的私钥（或 Ed25519 种子）长度
	SecretKeyLength = 32
	// Ed25519PublicKeyLength Ed25519 公钥长度
	Ed25519PublicKeyLength = 32
	// CompressedPublicKeyLength secp256k1/secp256r1 压缩公钥长度
	CompressedPublicKeyLength = 33
	// RawSignatureLength 不含 flag 与公钥的签名长度 (r||s 或 Ed25519 签名)
	RawSignatureLength = 64
)

// Flag 返回方案标识字节
func (s SignatureScheme) Flag() byte {
	return byte(s)
}

// String 返回方案名称
func (s SignatureScheme) String() string {
	switch s {
	case Ed25519:
		return "ed25519"
	case Secp256k1:
		return "secp256k1"
	case Secp256r1:
		return "secp256r1"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(s))
	}
}

// PublicKeyLength 返回该方案的公钥字节长度
func (s SignatureScheme) PublicKeyLength() int {
	if s == Ed25519 {
		return Ed25519PublicKeyLength
	}
	return CompressedPublicKeyLength
}

// Valid 是否为已知方案
func (s SignatureScheme) Valid() bool {
	switch s {
	case Ed25519, Secp256k1, Secp256r1:
		return true
	}
	return false
}

// SchemeFromFlag 根据标识字节解析方案
func SchemeFromFlag(flag byte) (SignatureScheme, error) {
	s := SignatureScheme(flag)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: flag 0x%02x", ErrUnknownScheme, flag)
	}
	return s, nil
}

// ParseSignatureScheme 解析方案名称（大小写不敏感）
func ParseSignatureScheme(name string) (SignatureScheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ed25519":
		return Ed25519, nil
	case "secp256k1":
		return Secp256k1, nil
	case "secp256r1":
		return Secp256r1, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
}

// MarshalText 实现 encoding.TextMarshaler
func (s SignatureScheme) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: flag 0x%02x", ErrUnknownScheme, byte(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (s *SignatureScheme) UnmarshalText(text []byte) error {
	parsed, err := ParseSignatureScheme(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
