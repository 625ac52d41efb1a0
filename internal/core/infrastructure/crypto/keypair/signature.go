package keypair

import (
	"bytes"
	"encoding/base64"
	"fmt"
)

// Signature 自描述签名：flag || sig(64) || pubkey
type Signature struct {
	raw []byte
}

// newSignature 拼装 flag || sig || pubkey
func newSignature(pk PublicKey, sig []byte) Signature {
	raw := make([]byte, 0, 1+len(sig)+len(pk.key))
	raw = append(raw, pk.Flag())
	raw = append(raw, sig...)
	raw = append(raw, pk.key...)
	return Signature{raw: raw}
}

// SignatureFromBytes 解析 flag || sig || pubkey 格式的签名
func SignatureFromBytes(raw []byte) (Signature, error) {
	if len(raw) < 1 {
		return Signature{}, fmt.Errorf("%w: empty", ErrInvalidSigBytes)
	}
	scheme, err := SchemeFromFlag(raw[0])
	if err != nil {
		return Signature{}, err
	}
	want := 1 + RawSignatureLength + scheme.PublicKeyLength()
	if len(raw) != want {
		return Signature{}, fmt.Errorf("%w: %s expects %d bytes, got %d", ErrInvalidSigBytes, scheme, want, len(raw))
	}
	if _, err := NewPublicKey(scheme, raw[1+RawSignatureLength:]); err != nil {
		return Signature{}, err
	}
	return Signature{raw: bytes.Clone(raw)}, nil
}

// SignatureFromBase64 解析 base64 编码的签名
func SignatureFromBase64(s string) (Signature, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Signature{}, fmt.Errorf("%w: %v", ErrInvalidSigBytes, err)
	}
	return SignatureFromBytes(raw)
}

// Scheme 返回签名方案
func (s Signature) Scheme() SignatureScheme {
	if len(s.raw) == 0 {
		return 0
	}
	return SignatureScheme(s.raw[0])
}

// Bytes 返回完整签名字节（副本）
func (s Signature) Bytes() []byte {
	return bytes.Clone(s.raw)
}

// RawSignature 返回不含 flag 与公钥的 64 字节签名
func (s Signature) RawSignature() []byte {
	if len(s.raw) < 1+RawSignatureLength {
		return nil
	}
	return bytes.Clone(s.raw[1 : 1+RawSignatureLength])
}

// PublicKey 返回签名中携带的公钥
func (s Signature) PublicKey() (PublicKey, error) {
	if len(s.raw) < 1+RawSignatureLength {
		return PublicKey{}, fmt.Errorf("%w: truncated", ErrInvalidSigBytes)
	}
	return NewPublicKey(s.Scheme(), s.raw[1+RawSignatureLength:])
}

// Verify 使用签名中携带的公钥验证消息
func (s Signature) Verify(msg []byte) bool {
	pk, err := s.PublicKey()
	if err != nil {
		return false
	}
	return pk.verify(msg, s.RawSignature())
}

// VerifyWith 使用指定公钥验证消息，要求签名携带的公钥一致
func (s Signature) VerifyWith(pk PublicKey, msg []byte) bool {
	embedded, err := s.PublicKey()
	if err != nil || !embedded.Equal(pk) {
		return false
	}
	return pk.verify(msg, s.RawSignature())
}

// Base64 返回 base64 编码
func (s Signature) Base64() string {
	return base64.StdEncoding.EncodeToString(s.raw)
}

// String 实现 fmt.Stringer
func (s Signature) String() string {
	return s.Base64()
}
