package hd

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/weisyn/custody/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/custody/internal/core/infrastructure/crypto/keypair"
)

// DeriveKeyPairFromPath 由 BIP39 种子按路径派生密钥对
//
// path 为 nil 时使用方案的默认路径。路径须满足 ValidateFor(scheme)。
func DeriveKeyPairFromPath(seed []byte, path *DerivationPath, scheme keypair.SignatureScheme) (address.Address, keypair.KeyPair, error) {
	if path == nil {
		var err error
		if path, err = DefaultDerivationPath(scheme); err != nil {
			return address.Zero, nil, err
		}
	}
	if err := path.ValidateFor(scheme); err != nil {
		return address.Zero, nil, err
	}

	var (
		secret []byte
		err    error
	)
	switch scheme {
	case keypair.Ed25519:
		secret, err = deriveSlip10(slip10Ed25519, seed, path.ToUint32Array())
	case keypair.Secp256r1:
		secret, err = deriveSlip10(slip10Nist256p1, seed, path.ToUint32Array())
	case keypair.Secp256k1:
		secret, err = deriveBIP32(seed, path.ToUint32Array())
	default:
		return address.Zero, nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
	if err != nil {
		return address.Zero, nil, fmt.Errorf("derive %s at %s: %w", scheme, path, err)
	}
	defer func() {
		for i := range secret {
			secret[i] = 0
		}
	}()

	kp, err := keypair.FromSecret(scheme, secret)
	if err != nil {
		return address.Zero, nil, fmt.Errorf("derive %s at %s: %w", scheme, path, err)
	}
	return address.FromKeyPair(kp), kp, nil
}

// deriveBIP32 使用 BIP32 派生 secp256k1 私钥
func deriveBIP32(seed []byte, indexes []uint32) ([]byte, error) {
	masterKey, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}

	currentKey := masterKey
	for _, index := range indexes {
		currentKey, err = currentKey.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("derive child %d: %w", index, err)
		}
	}

	privKey, err := currentKey.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("get private key: %w", err)
	}
	return privKey.Serialize(), nil
}
