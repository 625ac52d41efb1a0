package hd

import (
	"crypto/ecdh"
	"crypto/elliptic"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
)

// slip10Curve SLIP-0010 曲线参数
type slip10Curve struct {
	// seedKey 主密钥 HMAC 的 key
	seedKey []byte
	// order 曲线阶；nil 表示 ed25519（只支持硬化派生，不做模运算）
	order *big.Int
	// publicKey 计算非硬化派生所需的压缩公钥
	publicKey func(priv []byte) ([]byte, error)
}

var (
	slip10Ed25519 = &slip10Curve{
		seedKey: []byte("ed25519 seed"),
	}

	slip10Nist256p1 = &slip10Curve{
		seedKey:   []byte("Nist256p1 seed"),
		order:     elliptic.P256().Params().N,
		publicKey: p256CompressedPublicKey,
	}

	errHardenedOnly = errors.New("curve only supports hardened derivation")
)

// slip10Node 派生过程中的扩展私钥
type slip10Node struct {
	key       []byte
	chainCode []byte
}

func (n *slip10Node) wipe() {
	for i := range n.key {
		n.key[i] = 0
	}
	for i := range n.chainCode {
		n.chainCode[i] = 0
	}
}

// newSlip10Master 由种子生成主节点
func newSlip10Master(curve *slip10Curve, seed []byte) *slip10Node {
	data := seed
	for {
		mac := hmac.New(sha512.New, curve.seedKey)
		mac.Write(data)
		sum := mac.Sum(nil)

		il, ir := sum[:32], sum[32:]
		if curve.order == nil || validScalar(il, curve.order) {
			return &slip10Node{key: il, chainCode: ir}
		}
		// IL 无效时以 I 作为新的输入重新计算
		data = sum
	}
}

// child 派生子节点
func (n *slip10Node) child(curve *slip10Curve, index uint32) (*slip10Node, error) {
	hardened := index >= HardenedOffset
	if curve.order == nil && !hardened {
		return nil, errHardenedOnly
	}

	var data []byte
	if hardened {
		data = make([]byte, 0, 37)
		data = append(data, 0x00)
		data = append(data, n.key...)
	} else {
		pub, err := curve.publicKey(n.key)
		if err != nil {
			return nil, err
		}
		data = make([]byte, 0, 37)
		data = append(data, pub...)
	}
	data = binary.BigEndian.AppendUint32(data, index)

	for {
		mac := hmac.New(sha512.New, n.chainCode)
		mac.Write(data)
		sum := mac.Sum(nil)
		il, ir := sum[:32], sum[32:]

		if curve.order == nil {
			return &slip10Node{key: il, chainCode: ir}, nil
		}

		ilInt := new(big.Int).SetBytes(il)
		if ilInt.Cmp(curve.order) < 0 {
			k := ilInt.Add(ilInt, new(big.Int).SetBytes(n.key))
			k.Mod(k, curve.order)
			if k.Sign() != 0 {
				key := make([]byte, 32)
				k.FillBytes(key)
				return &slip10Node{key: key, chainCode: ir}, nil
			}
		}

		// 结果无效：data = 0x01 || IR || ser32(i)
		data = make([]byte, 0, 37)
		data = append(data, 0x01)
		data = append(data, ir...)
		data = binary.BigEndian.AppendUint32(data, index)
	}
}

// deriveSlip10 沿索引链派生，返回叶子节点私钥
func deriveSlip10(curve *slip10Curve, seed []byte, indexes []uint32) ([]byte, error) {
	node := newSlip10Master(curve, seed)
	for _, idx := range indexes {
		next, err := node.child(curve, idx)
		node.wipe()
		if err != nil {
			return nil, fmt.Errorf("derive child %d: %w", idx, err)
		}
		node = next
	}
	key := append([]byte(nil), node.key...)
	node.wipe()
	return key, nil
}

func validScalar(b []byte, order *big.Int) bool {
	k := new(big.Int).SetBytes(b)
	return k.Sign() != 0 && k.Cmp(order) < 0
}

// p256CompressedPublicKey 计算 P-256 私钥的压缩公钥
func p256CompressedPublicKey(priv []byte) ([]byte, error) {
	key, err := ecdh.P256().NewPrivateKey(priv)
	if err != nil {
		return nil, err
	}
	uncompressed := key.PublicKey().Bytes()
	x := new(big.Int).SetBytes(uncompressed[1:33])
	y := new(big.Int).SetBytes(uncompressed[33:65])
	return elliptic.MarshalCompressed(elliptic.P256(), x, y), nil
}
