package keystore

import (
	"errors"
	"fmt"

	"github.com/weisyn/custody/internal/core/infrastructure/crypto/address"
)

// 错误定义，均可通过 errors.Is 判断
var (
	// ErrKeyNotFound 地址没有对应的密钥
	ErrKeyNotFound = errors.New("key not found")
	// ErrInvalidMnemonic 助记词未通过词表或校验和验证
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	// ErrDerivationFailed 路径与签名方案的组合无法派生
	ErrDerivationFailed = errors.New("key derivation failed")
	// ErrStorageCorrupt 已有密钥库文件无法解码
	ErrStorageCorrupt = errors.New("keystore file corrupt")
	// ErrStorageIO 密钥库文件读写失败
	ErrStorageIO = errors.New("keystore storage i/o failed")
	// ErrNilKeyPair 传入空密钥对
	ErrNilKeyPair = errors.New("nil keypair")
)

// KeyNotFoundError 携带请求地址的未找到错误
type KeyNotFoundError struct {
	Address address.Address
}

// Error 实现 error 接口
func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("cannot find key for address: [%s]", e.Address)
}

// Unwrap 使 errors.Is(err, ErrKeyNotFound) 成立
func (e *KeyNotFoundError) Unwrap() error {
	return ErrKeyNotFound
}
