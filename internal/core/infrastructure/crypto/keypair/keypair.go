package keypair

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	btcec_ecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// KeyPair 签名密钥对
//
// 私钥部分不对外暴露，只能通过 Sign 使用，或通过 EncodeBase64 导出持久化格式。
type KeyPair interface {
	// Scheme 返回签名方案
	Scheme() SignatureScheme

	// Public 返回公钥
	Public() PublicKey

	// Sign 对消息签名，返回 flag || sig || pubkey
	Sign(msg []byte) (Signature, error)

	// EncodeBase64 返回持久化格式 base64(flag || secret)
	EncodeBase64() string
}

// FromSecret 由方案与 32 字节私钥构造密钥对
//
// Ed25519 的 secret 为 RFC 8032 种子；secp256k1/secp256r1 的 secret 为大端标量，须位于 [1, n-1]。
func FromSecret(scheme SignatureScheme, secret []byte) (KeyPair, error) {
	if len(secret) != SecretKeyLength {
		return nil, fmt.Errorf("%w: secret must be %d bytes, got %d", ErrInvalidKeyPair, SecretKeyLength, len(secret))
	}

	switch scheme {
	case Ed25519:
		return newEd25519KeyPair(secret), nil
	case Secp256k1:
		return newSecp256k1KeyPair(secret)
	case Secp256r1:
		return newSecp256r1KeyPair(secret)
	default:
		return nil, fmt.Errorf("%w: flag 0x%02x", ErrUnknownScheme, byte(scheme))
	}
}

// Generate 使用给定随机源生成密钥对；rng 为 nil 时使用 crypto/rand
//
// 相同的随机源字节流总是产生相同的密钥对。
func Generate(scheme SignatureScheme, rng io.Reader) (KeyPair, error) {
	if rng == nil {
		rng = rand.Reader
	}
	if !scheme.Valid() {
		return nil, fmt.Errorf("%w: flag 0x%02x", ErrUnknownScheme, byte(scheme))
	}

	secret := make([]byte, SecretKeyLength)
	defer wipe(secret)

	// secp 标量越界的概率可忽略，但仍需重试直到落入有效区间
	for {
		if _, err := io.ReadFull(rng, secret); err != nil {
			return nil, fmt.Errorf("read entropy: %w", err)
		}
		kp, err := FromSecret(scheme, secret)
		if err == nil {
			return kp, nil
		}
	}
}

// DecodeBase64 解析 base64(flag || secret) 格式的密钥对
func DecodeBase64(s string) (KeyPair, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyPair, err)
	}
	defer wipe(raw)

	if len(raw) != 1+SecretKeyLength {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeyPair, 1+SecretKeyLength, len(raw))
	}
	scheme, err := SchemeFromFlag(raw[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyPair, err)
	}
	return FromSecret(scheme, raw[1:])
}

// Equal 比较两个密钥对是否持有相同的密钥材料
func Equal(a, b KeyPair) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Scheme() == b.Scheme() && a.EncodeBase64() == b.EncodeBase64()
}

// encodeSecret base64(flag || secret)
func encodeSecret(scheme SignatureScheme, secret []byte) string {
	buf := make([]byte, 0, 1+len(secret))
	buf = append(buf, scheme.Flag())
	buf = append(buf, secret...)
	defer wipe(buf)
	return base64.StdEncoding.EncodeToString(buf)
}

// wipe 清零敏感缓冲区
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ===== Ed25519 =====

type ed25519KeyPair struct {
	priv ed25519.PrivateKey
	pub  PublicKey
}

func newEd25519KeyPair(seed []byte) *ed25519KeyPair {
	priv := ed25519.NewKeyFromSeed(seed)
	pubBytes := priv.Public().(ed25519.PublicKey)
	return &ed25519KeyPair{
		priv: priv,
		pub:  PublicKey{scheme: Ed25519, key: append([]byte(nil), pubBytes...)},
	}
}

func (kp *ed25519KeyPair) Scheme() SignatureScheme { return Ed25519 }

func (kp *ed25519KeyPair) Public() PublicKey { return kp.pub }

func (kp *ed25519KeyPair) Sign(msg []byte) (Signature, error) {
	return newSignature(kp.pub, ed25519.Sign(kp.priv, msg)), nil
}

func (kp *ed25519KeyPair) EncodeBase64() string {
	return encodeSecret(Ed25519, kp.priv.Seed())
}

// ===== Secp256k1 =====

type secp256k1KeyPair struct {
	priv *btcec.PrivateKey
	pub  PublicKey
}

func newSecp256k1KeyPair(secret []byte) (*secp256k1KeyPair, error) {
	var k btcec.ModNScalar
	if overflow := k.SetByteSlice(secret); overflow || k.IsZero() {
		k.Zero()
		return nil, fmt.Errorf("%w: secp256k1 scalar out of range", ErrInvalidKeyPair)
	}
	k.Zero()

	priv, pub := btcec.PrivKeyFromBytes(secret)
	return &secp256k1KeyPair{
		priv: priv,
		pub:  PublicKey{scheme: Secp256k1, key: pub.SerializeCompressed()},
	}, nil
}

func (kp *secp256k1KeyPair) Scheme() SignatureScheme { return Secp256k1 }

func (kp *secp256k1KeyPair) Public() PublicKey { return kp.pub }

func (kp *secp256k1KeyPair) Sign(msg []byte) (Signature, error) {
	hash := sha256.Sum256(msg)
	compact := btcec_ecdsa.SignCompact(kp.priv, hash[:], true) // header + r + s
	if len(compact) != 1+RawSignatureLength {
		return Signature{}, fmt.Errorf("secp256k1 sign: unexpected compact signature length %d", len(compact))
	}
	return newSignature(kp.pub, compact[1:]), nil
}

func (kp *secp256k1KeyPair) EncodeBase64() string {
	secret := kp.priv.Serialize()
	defer wipe(secret)
	return encodeSecret(Secp256k1, secret)
}

// ===== Secp256r1 =====

var p256HalfOrder = new(big.Int).Rsh(elliptic.P256().Params().N, 1)

type secp256r1KeyPair struct {
	priv *ecdsa.PrivateKey
	pub  PublicKey
}

func newSecp256r1KeyPair(secret []byte) (*secp256r1KeyPair, error) {
	// ecdh 负责校验标量区间并计算公钥点
	ecdhKey, err := ecdh.P256().NewPrivateKey(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: secp256r1 scalar out of range", ErrInvalidKeyPair)
	}
	uncompressed := ecdhKey.PublicKey().Bytes() // 0x04 || X || Y
	x := new(big.Int).SetBytes(uncompressed[1:33])
	y := new(big.Int).SetBytes(uncompressed[33:65])

	curve := elliptic.P256()
	priv := &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: curve, X: x, Y: y},
		D:         new(big.Int).SetBytes(secret),
	}
	return &secp256r1KeyPair{
		priv: priv,
		pub:  PublicKey{scheme: Secp256r1, key: elliptic.MarshalCompressed(curve, x, y)},
	}, nil
}

func (kp *secp256r1KeyPair) Scheme() SignatureScheme { return Secp256r1 }

func (kp *secp256r1KeyPair) Public() PublicKey { return kp.pub }

func (kp *secp256r1KeyPair) Sign(msg []byte) (Signature, error) {
	hash := sha256.Sum256(msg)
	r, s, err := ecdsa.Sign(rand.Reader, kp.priv, hash[:])
	if err != nil {
		return Signature{}, fmt.Errorf("secp256r1 sign: %w", err)
	}

	// 规范化为 low-S
	if s.Cmp(p256HalfOrder) > 0 {
		s.Sub(kp.priv.Curve.Params().N, s)
	}

	sig := make([]byte, RawSignatureLength)
	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:])
	return newSignature(kp.pub, sig), nil
}

func (kp *secp256r1KeyPair) EncodeBase64() string {
	secret := make([]byte, SecretKeyLength)
	defer wipe(secret)
	kp.priv.D.FillBytes(secret)
	return encodeSecret(Secp256r1, secret)
}

var (
	_ KeyPair = (*ed25519KeyPair)(nil)
	_ KeyPair = (*secp256k1KeyPair)(nil)
	_ KeyPair = (*secp256r1KeyPair)(nil)
)
