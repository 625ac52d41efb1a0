package keypair

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	btcec_ecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// PublicKey 带方案标识的公钥
//
// 字节格式：
//   - Ed25519: 32 字节
//   - Secp256k1 / Secp256r1: 33 字节压缩格式
type PublicKey struct {
	scheme SignatureScheme
	key    []byte
}

// NewPublicKey 从方案与原始字节构造公钥，并校验曲线点
func NewPublicKey(scheme SignatureScheme, key []byte) (PublicKey, error) {
	if !scheme.Valid() {
		return PublicKey{}, fmt.Errorf("%w: flag 0x%02x", ErrUnknownScheme, byte(scheme))
	}
	if len(key) != scheme.PublicKeyLength() {
		return PublicKey{}, fmt.Errorf("%w: %s expects %d bytes, got %d",
			ErrInvalidPublic, scheme, scheme.PublicKeyLength(), len(key))
	}

	switch scheme {
	case Secp256k1:
		if _, err := btcec.ParsePubKey(key); err != nil {
			return PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidPublic, err)
		}
	case Secp256r1:
		if x, _ := elliptic.UnmarshalCompressed(elliptic.P256(), key); x == nil {
			return PublicKey{}, fmt.Errorf("%w: not a P-256 point", ErrInvalidPublic)
		}
	}

	return PublicKey{scheme: scheme, key: bytes.Clone(key)}, nil
}

// Scheme 返回签名方案
func (pk PublicKey) Scheme() SignatureScheme {
	return pk.scheme
}

// Flag 返回方案标识字节
func (pk PublicKey) Flag() byte {
	return pk.scheme.Flag()
}

// Bytes 返回公钥原始字节（副本）
func (pk PublicKey) Bytes() []byte {
	return bytes.Clone(pk.key)
}

// Equal 比较两个公钥
func (pk PublicKey) Equal(other PublicKey) bool {
	return pk.scheme == other.scheme && bytes.Equal(pk.key, other.key)
}

// IsZero 是否为零值公钥
func (pk PublicKey) IsZero() bool {
	return len(pk.key) == 0
}

// Base64 返回 base64(flag || key)
func (pk PublicKey) Base64() string {
	buf := make([]byte, 0, 1+len(pk.key))
	buf = append(buf, pk.Flag())
	buf = append(buf, pk.key...)
	return base64.StdEncoding.EncodeToString(buf)
}

// String 实现 fmt.Stringer
func (pk PublicKey) String() string {
	return pk.Base64()
}

// PublicKeyFromBase64 解析 base64(flag || key) 格式的公钥
func PublicKeyFromBase64(s string) (PublicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidPublic, err)
	}
	if len(raw) < 1 {
		return PublicKey{}, fmt.Errorf("%w: empty", ErrInvalidPublic)
	}
	scheme, err := SchemeFromFlag(raw[0])
	if err != nil {
		return PublicKey{}, err
	}
	return NewPublicKey(scheme, raw[1:])
}

// verify 用该公钥验证原始签名 (不含 flag 与公钥)
func (pk PublicKey) verify(msg, sig []byte) bool {
	if len(sig) != RawSignatureLength {
		return false
	}

	switch pk.scheme {
	case Ed25519:
		return ed25519.Verify(ed25519.PublicKey(pk.key), msg, sig)

	case Secp256k1:
		pub, err := btcec.ParsePubKey(pk.key)
		if err != nil {
			return false
		}
		var r, s btcec.ModNScalar
		if overflow := r.SetByteSlice(sig[:32]); overflow {
			return false
		}
		if overflow := s.SetByteSlice(sig[32:]); overflow {
			return false
		}
		hash := sha256.Sum256(msg)
		return btcec_ecdsa.NewSignature(&r, &s).Verify(hash[:], pub)

	case Secp256r1:
		x, y := elliptic.UnmarshalCompressed(elliptic.P256(), pk.key)
		if x == nil {
			return false
		}
		pub := &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}
		hash := sha256.Sum256(msg)
		r := new(big.Int).SetBytes(sig[:32])
		s := new(big.Int).SetBytes(sig[32:])
		return ecdsa.Verify(pub, hash[:], r, s)
	}

	return false
}
