// Package hd 提供分层确定性密钥派生（BIP32 / SLIP-0010）
//
// 派生路径固定为 5 级：m/purpose'/coin_type'/account'/change/address_index
// 不同签名方案使用不同的 purpose：
//   - Ed25519:   m/44'/784'/0'/0'/0' （SLIP-0010，全部硬化）
//   - Secp256k1: m/54'/784'/0'/0/0   （BIP32）
//   - Secp256r1: m/74'/784'/0'/0/0   （SLIP-0010 nist256p1）
package hd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/weisyn/custody/internal/core/infrastructure/crypto/keypair"
)

// BIP44 相关常量
const (
	// CoinType SLIP-0044 币种类型
	CoinType uint32 = 784

	// PurposeEd25519 Ed25519 路径的 purpose
	PurposeEd25519 uint32 = 44
	// PurposeSecp256k1 Secp256k1 路径的 purpose
	PurposeSecp256k1 uint32 = 54
	// PurposeSecp256r1 Secp256r1 路径的 purpose
	PurposeSecp256r1 uint32 = 74

	// HardenedOffset 硬化派生偏移量
	HardenedOffset uint32 = 0x80000000

	// DefaultAccount 默认账户索引
	DefaultAccount uint32 = 0
	// ExternalChain 外部链
	ExternalChain uint32 = 0
	// DefaultAddressIndex 默认地址索引
	DefaultAddressIndex uint32 = 0
)

var (
	// ErrInvalidPath 路径格式错误或与签名方案不匹配
	ErrInvalidPath = errors.New("invalid derivation path")
	// ErrUnsupportedScheme 不支持派生的签名方案
	ErrUnsupportedScheme = errors.New("unsupported scheme for derivation")
)

// DerivationPath BIP32/BIP44 派生路径
//
// purpose、coin_type、account 恒为硬化；change 与 address_index 的硬化标记单独记录。
type DerivationPath struct {
	Purpose        uint32 `json:"purpose"`
	CoinType       uint32 `json:"coin_type"`
	Account        uint32 `json:"account"`
	Change         uint32 `json:"change"`
	AddressIndex   uint32 `json:"address_index"`
	ChangeHardened bool   `json:"change_hardened"`
	IndexHardened  bool   `json:"index_hardened"`
}

// PurposeFor 返回签名方案对应的 purpose
func PurposeFor(scheme keypair.SignatureScheme) (uint32, error) {
	switch scheme {
	case keypair.Ed25519:
		return PurposeEd25519, nil
	case keypair.Secp256k1:
		return PurposeSecp256k1, nil
	case keypair.Secp256r1:
		return PurposeSecp256r1, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
}

// NewDerivationPath 创建指定方案、账户与地址索引的路径
func NewDerivationPath(scheme keypair.SignatureScheme, account, change, addressIndex uint32) (*DerivationPath, error) {
	purpose, err := PurposeFor(scheme)
	if err != nil {
		return nil, err
	}
	hardened := scheme == keypair.Ed25519
	return &DerivationPath{
		Purpose:        purpose,
		CoinType:       CoinType,
		Account:        account,
		Change:         change,
		AddressIndex:   addressIndex,
		ChangeHardened: hardened,
		IndexHardened:  hardened,
	}, nil
}

// DefaultDerivationPath 返回方案的默认派生路径
func DefaultDerivationPath(scheme keypair.SignatureScheme) (*DerivationPath, error) {
	return NewDerivationPath(scheme, DefaultAccount, ExternalChain, DefaultAddressIndex)
}

// ParseDerivationPath 解析派生路径字符串
// 支持格式: m/44'/784'/0'/0'/0' 或 44'/784'/0'/0'/0'，硬化标记可为 ' h H
func ParseDerivationPath(path string) (*DerivationPath, error) {
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "m/")
	path = strings.TrimPrefix(path, "M/")

	parts := strings.Split(path, "/")
	if len(parts) != 5 {
		return nil, fmt.Errorf("%w: expected 5 components, got %d", ErrInvalidPath, len(parts))
	}

	dp := &DerivationPath{}
	var err error

	if dp.Purpose, _, err = parsePathComponent(parts[0], true); err != nil {
		return nil, fmt.Errorf("%w: purpose: %v", ErrInvalidPath, err)
	}
	if dp.CoinType, _, err = parsePathComponent(parts[1], true); err != nil {
		return nil, fmt.Errorf("%w: coin type: %v", ErrInvalidPath, err)
	}
	if dp.Account, _, err = parsePathComponent(parts[2], true); err != nil {
		return nil, fmt.Errorf("%w: account: %v", ErrInvalidPath, err)
	}
	if dp.Change, dp.ChangeHardened, err = parsePathComponent(parts[3], false); err != nil {
		return nil, fmt.Errorf("%w: change: %v", ErrInvalidPath, err)
	}
	if dp.AddressIndex, dp.IndexHardened, err = parsePathComponent(parts[4], false); err != nil {
		return nil, fmt.Errorf("%w: address index: %v", ErrInvalidPath, err)
	}

	return dp, nil
}

// parsePathComponent 解析路径组件
// requireHardened: 是否要求硬化派生
func parsePathComponent(component string, requireHardened bool) (uint32, bool, error) {
	isHardened := strings.HasSuffix(component, "'") || strings.HasSuffix(component, "H") || strings.HasSuffix(component, "h")

	if requireHardened && !isHardened {
		return 0, false, fmt.Errorf("hardened derivation required for %q", component)
	}

	if isHardened {
		component = component[:len(component)-1]
	}

	value, err := strconv.ParseUint(component, 10, 32)
	if err != nil {
		return 0, false, fmt.Errorf("invalid number: %q", component)
	}
	if uint32(value) >= HardenedOffset {
		return 0, false, fmt.Errorf("index %d out of range", value)
	}

	return uint32(value), isHardened, nil
}

// String 返回路径字符串表示
func (dp *DerivationPath) String() string {
	return fmt.Sprintf("m/%d'/%d'/%d'/%s/%s",
		dp.Purpose,
		dp.CoinType,
		dp.Account,
		formatComponent(dp.Change, dp.ChangeHardened),
		formatComponent(dp.AddressIndex, dp.IndexHardened),
	)
}

func formatComponent(index uint32, hardened bool) string {
	if hardened {
		return strconv.FormatUint(uint64(index), 10) + "'"
	}
	return strconv.FormatUint(uint64(index), 10)
}

// ToUint32Array 转换为带硬化偏移的索引数组
func (dp *DerivationPath) ToUint32Array() []uint32 {
	indexes := []uint32{
		dp.Purpose + HardenedOffset,
		dp.CoinType + HardenedOffset,
		dp.Account + HardenedOffset,
		dp.Change,
		dp.AddressIndex,
	}
	if dp.ChangeHardened {
		indexes[3] += HardenedOffset
	}
	if dp.IndexHardened {
		indexes[4] += HardenedOffset
	}
	return indexes
}

// WithAddressIndex 返回使用指定地址索引的新路径
func (dp *DerivationPath) WithAddressIndex(index uint32) *DerivationPath {
	newPath := *dp
	newPath.AddressIndex = index
	return &newPath
}

// NextAddress 返回下一个地址的路径
func (dp *DerivationPath) NextAddress() *DerivationPath {
	return dp.WithAddressIndex(dp.AddressIndex + 1)
}

// ValidateFor 校验路径是否适用于指定签名方案
//
// Ed25519 只支持硬化派生；secp256k1/secp256r1 的 change 与 address_index 必须非硬化。
func (dp *DerivationPath) ValidateFor(scheme keypair.SignatureScheme) error {
	purpose, err := PurposeFor(scheme)
	if err != nil {
		return err
	}
	if dp.Purpose != purpose {
		return fmt.Errorf("%w: %s requires purpose %d', got %d'", ErrInvalidPath, scheme, purpose, dp.Purpose)
	}
	if dp.CoinType != CoinType {
		return fmt.Errorf("%w: expected coin type %d', got %d'", ErrInvalidPath, CoinType, dp.CoinType)
	}

	if scheme == keypair.Ed25519 {
		if !dp.ChangeHardened || !dp.IndexHardened {
			return fmt.Errorf("%w: ed25519 requires all components hardened: %s", ErrInvalidPath, dp)
		}
		return nil
	}

	if dp.ChangeHardened || dp.IndexHardened {
		return fmt.Errorf("%w: %s requires non-hardened change and address index: %s", ErrInvalidPath, scheme, dp)
	}
	return nil
}
