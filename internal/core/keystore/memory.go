package keystore

import (
	"fmt"
	"math/rand/v2"

	"github.com/weisyn/custody/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/custody/internal/core/infrastructure/crypto/keypair"
)

// InMemKeystore 纯内存密钥库，仅用于测试与开发环境
//
// 构造时以固定种子生成 N 个 Ed25519 密钥，相同 N 总是得到相同的地址集合。
type InMemKeystore struct {
	keys keySet
}

// NewInMemKeystore 创建包含 initialKeyNumber 个确定性密钥的内存密钥库
func NewInMemKeystore(initialKeyNumber int) *InMemKeystore {
	ks := &InMemKeystore{keys: make(keySet, max(initialKeyNumber, 0))}

	var seed [32]byte
	rng := rand.NewChaCha8(seed)
	for i := 0; i < initialKeyNumber; i++ {
		kp, err := keypair.Generate(keypair.Ed25519, rng)
		if err != nil {
			// ChaCha8 读取不会失败
			panic(fmt.Sprintf("generate in-memory key %d: %v", i, err))
		}
		ks.keys[address.FromKeyPair(kp)] = kp
	}
	return ks
}

// Sign 使用地址对应的密钥签名
func (ks *InMemKeystore) Sign(addr address.Address, msg []byte) (keypair.Signature, error) {
	return ks.keys.sign(addr, msg)
}

// AddKey 仅修改内存映射
func (ks *InMemKeystore) AddKey(kp keypair.KeyPair) error {
	if kp == nil {
		return ErrNilKeyPair
	}
	ks.keys[address.FromKeyPair(kp)] = kp
	return nil
}

// Keys 返回全部公钥，按地址升序
func (ks *InMemKeystore) Keys() []keypair.PublicKey {
	return ks.keys.publicKeys()
}

var _ AccountKeystore = (*InMemKeystore)(nil)
