package keystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/custody/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/custody/internal/core/infrastructure/crypto/keypair"
)

func TestNewInMemKeystore_Deterministic(t *testing.T) {
	a := NewInMemKeystore(3)
	b := NewInMemKeystore(3)

	require.Len(t, a.Keys(), 3)
	assert.Equal(t, a.Keys(), b.Keys())

	seen := make(map[address.Address]bool)
	for _, pk := range a.Keys() {
		assert.Equal(t, keypair.Ed25519, pk.Scheme())
		seen[address.FromPublicKey(pk)] = true
	}
	assert.Len(t, seen, 3)
}

func TestNewInMemKeystore_PrefixStable(t *testing.T) {
	// 同一随机流，较小的 N 生成的密钥是较大 N 的子集
	assert.Subset(t, NewInMemKeystore(5).Keys(), NewInMemKeystore(2).Keys())
}

func TestNewInMemKeystore_Empty(t *testing.T) {
	assert.Empty(t, NewInMemKeystore(0).Keys())
	assert.Empty(t, NewInMemKeystore(-1).Keys())
}

func TestInMemKeystore_AddKeyAndSign(t *testing.T) {
	ks := NewInMemKeystore(1)

	kp, err := keypair.Generate(keypair.Secp256k1, nil)
	require.NoError(t, err)
	require.NoError(t, ks.AddKey(kp))
	assert.Len(t, ks.Keys(), 2)

	sig, err := ks.Sign(address.FromKeyPair(kp), []byte("payload"))
	require.NoError(t, err)
	assert.True(t, sig.Verify([]byte("payload")))

	_, err = ks.Sign(address.Zero, []byte("payload"))
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.ErrorIs(t, ks.AddKey(nil), ErrNilKeyPair)
}
