// Package keystore 管理本地签名密钥的生命周期与存储
//
// 结构：
//   - AccountKeystore：存储后端契约（签名、添加密钥、列出公钥）
//   - FileBasedKeystore：以 JSON 文件持久化的后端
//   - InMemKeystore：确定性生成测试密钥的内存后端
//   - Keystore：绑定唯一后端的门面，负责助记词与派生流程
//   - Type：后端选择器，Init 解析为可用的 Keystore
//
// 所有类型均不做内部加锁，并发修改需由调用方串行化。
package keystore

import (
	"slices"

	"github.com/weisyn/custody/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/custody/internal/core/infrastructure/crypto/keypair"
)

// AccountKeystore 密钥存储后端
type AccountKeystore interface {
	// Sign 使用地址对应的密钥签名；地址不存在时返回 *KeyNotFoundError
	Sign(addr address.Address, msg []byte) (keypair.Signature, error)

	// AddKey 按公钥计算地址并存入密钥，同地址覆盖
	AddKey(kp keypair.KeyPair) error

	// Keys 返回全部公钥，按地址升序
	Keys() []keypair.PublicKey
}

// keySet 地址到密钥对的映射
type keySet map[address.Address]keypair.KeyPair

// sortedAddresses 按地址字节升序返回全部地址
func (s keySet) sortedAddresses() []address.Address {
	addrs := make([]address.Address, 0, len(s))
	for addr := range s {
		addrs = append(addrs, addr)
	}
	slices.SortFunc(addrs, address.Address.Compare)
	return addrs
}

func (s keySet) publicKeys() []keypair.PublicKey {
	addrs := s.sortedAddresses()
	keys := make([]keypair.PublicKey, 0, len(addrs))
	for _, addr := range addrs {
		keys = append(keys, s[addr].Public())
	}
	return keys
}

func (s keySet) sign(addr address.Address, msg []byte) (keypair.Signature, error) {
	kp, ok := s[addr]
	if !ok {
		return keypair.Signature{}, &KeyNotFoundError{Address: addr}
	}
	return kp.Sign(msg)
}
