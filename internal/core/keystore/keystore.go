package keystore

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/weisyn/custody/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/custody/internal/core/infrastructure/crypto/hd"
	"github.com/weisyn/custody/internal/core/infrastructure/crypto/keypair"
	"github.com/weisyn/custody/internal/core/infrastructure/crypto/mnemonic"
	"github.com/weisyn/custody/pkg/interfaces/infrastructure/log"
)

// Keystore 密钥库门面
//
// 绑定唯一的存储后端，在其上提供助记词生成、导入与派生流程。
// 助记词只返回给调用方，不会被存储或记录到日志。
type Keystore struct {
	backend  AccountKeystore
	mnemonic *mnemonic.Manager
	logger   log.Logger
	label    string
}

// Option Keystore 构造选项
type Option func(*options)

type options struct {
	logger  log.Logger
	entropy io.Reader
}

// WithLogger 设置日志记录器
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEntropy 设置生成助记词的熵源，默认 crypto/rand
func WithEntropy(r io.Reader) Option {
	return func(o *options) {
		o.entropy = r
	}
}

func buildOptions(opts []Option) *options {
	o := &options{entropy: rand.Reader}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = noopLogger{}
	}
	return o
}

// New 使用指定后端创建 Keystore
func New(backend AccountKeystore, opts ...Option) *Keystore {
	o := buildOptions(opts)
	return &Keystore{
		backend:  backend,
		mnemonic: mnemonic.NewManagerWithReader(o.entropy),
		logger:   o.logger,
		label:    backendLabel(backend),
	}
}

// Backend 返回绑定的存储后端
func (k *Keystore) Backend() AccountKeystore {
	return k.backend
}

// AddKey 存入外部构造的密钥对
func (k *Keystore) AddKey(kp keypair.KeyPair) error {
	if err := k.backend.AddKey(kp); err != nil {
		return err
	}
	keystoreKeysAdded.WithLabelValues(k.label).Inc()
	return nil
}

// GenerateNewKey 生成 12 词助记词并派生、存储新密钥
//
// path 为 nil 时使用方案默认路径。返回的助记词是该密钥唯一的备份。
func (k *Keystore) GenerateNewKey(scheme keypair.SignatureScheme, path *hd.DerivationPath) (address.Address, string, keypair.SignatureScheme, error) {
	phrase, err := k.mnemonic.Generate(mnemonic.Words12)
	if err != nil {
		return address.Zero, "", scheme, fmt.Errorf("generate mnemonic: %w", err)
	}

	addr, err := k.deriveAndStore(phrase, scheme, path)
	if err != nil {
		return address.Zero, "", scheme, err
	}

	k.logger.Infof("生成新密钥: address=%s, scheme=%s", addr, scheme)
	return addr, phrase, scheme, nil
}

// ImportFromMnemonic 从助记词派生并存储密钥，重复导入得到相同地址
func (k *Keystore) ImportFromMnemonic(phrase string, scheme keypair.SignatureScheme, path *hd.DerivationPath) (address.Address, error) {
	if ok, reason := k.mnemonic.ValidateWithDetails(phrase); !ok {
		return address.Zero, fmt.Errorf("%w: %s", ErrInvalidMnemonic, reason)
	}

	addr, err := k.deriveAndStore(phrase, scheme, path)
	if err != nil {
		return address.Zero, err
	}

	k.logger.Infof("导入密钥: address=%s, scheme=%s", addr, scheme)
	return addr, nil
}

func (k *Keystore) deriveAndStore(phrase string, scheme keypair.SignatureScheme, path *hd.DerivationPath) (address.Address, error) {
	seed, err := k.mnemonic.ToSeed(phrase, "")
	if err != nil {
		if errors.Is(err, mnemonic.ErrInvalidMnemonic) {
			return address.Zero, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
		}
		return address.Zero, err
	}
	defer func() {
		for i := range seed {
			seed[i] = 0
		}
	}()

	addr, kp, err := hd.DeriveKeyPairFromPath(seed, path, scheme)
	if err != nil {
		k.logger.Warnf("密钥派生失败: scheme=%s, err=%v", scheme, err)
		return address.Zero, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}

	if err := k.AddKey(kp); err != nil {
		return address.Zero, err
	}
	return addr, nil
}

// Keys 返回全部公钥
func (k *Keystore) Keys() []keypair.PublicKey {
	return k.backend.Keys()
}

// Addresses 返回全部公钥对应的地址，顺序与 Keys 一致
func (k *Keystore) Addresses() []address.Address {
	keys := k.backend.Keys()
	addrs := make([]address.Address, 0, len(keys))
	for _, pk := range keys {
		addrs = append(addrs, address.FromPublicKey(pk))
	}
	return addrs
}

// Sign 使用地址对应的密钥签名
func (k *Keystore) Sign(addr address.Address, msg []byte) (keypair.Signature, error) {
	sig, err := k.backend.Sign(addr, msg)
	switch {
	case err == nil:
		keystoreSignTotal.WithLabelValues(k.label, signResultOK).Inc()
	case errors.Is(err, ErrKeyNotFound):
		keystoreSignTotal.WithLabelValues(k.label, signResultNotFound).Inc()
	default:
		keystoreSignTotal.WithLabelValues(k.label, signResultError).Inc()
	}
	return sig, err
}
