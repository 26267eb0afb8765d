package bitcoin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"

	"btc-custody.backend/internal/domain/entities"
	domainerrors "btc-custody.backend/internal/domain/errors"
)

// Standard BIP39 test mnemonic with published derivation vectors.
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestNewKeychain_UnknownNetwork(t *testing.T) {
	_, err := NewKeychain("regtest")
	require.Error(t, err)
}

func TestKeychain_GenerateMnemonic(t *testing.T) {
	kc, err := NewKeychain(NetworkTestnet)
	require.NoError(t, err)

	m1, err := kc.GenerateMnemonic()
	require.NoError(t, err)
	assert.True(t, bip39.IsMnemonicValid(m1))
	assert.Len(t, strings.Fields(m1), 12)

	m2, err := kc.GenerateMnemonic()
	require.NoError(t, err)
	assert.NotEqual(t, m1, m2, "mnemonics must be fresh entropy")
}

func TestKeychain_DeriveKey_Deterministic(t *testing.T) {
	kc, err := NewKeychain(NetworkMainnet)
	require.NoError(t, err)

	k1, err := kc.DeriveKey(testMnemonic, "m/84'/0'/0'/0/0")
	require.NoError(t, err)
	k2, err := kc.DeriveKey(testMnemonic, "m/84'/0'/0'/0/0")
	require.NoError(t, err)
	assert.Equal(t, k1.PublicKey.SerializeCompressed(), k2.PublicKey.SerializeCompressed())

	k3, err := kc.DeriveKey(testMnemonic, "m/84'/0'/0'/0/1")
	require.NoError(t, err)
	assert.NotEqual(t, k1.PublicKey.SerializeCompressed(), k3.PublicKey.SerializeCompressed())
}

func TestKeychain_DeriveKey_PublishedVectors(t *testing.T) {
	kc, err := NewKeychain(NetworkMainnet)
	require.NoError(t, err)

	tests := []struct {
		path        string
		addressType entities.AddressType
		want        string
		wantScript  string
	}{
		{"m/44'/0'/0'/0/0", entities.AddressTypeLegacy, "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA", ScriptP2PKH},
		{"m/49'/0'/0'/0/0", entities.AddressTypeSegwit, "37VucYSaXLCAsxYyAPfbSi9eh4iEcbShgf", ScriptP2SHP2WPKH},
		{"m/84'/0'/0'/0/0", entities.AddressTypeNativeSegwit, "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu", ScriptP2WPKH},
	}

	enc, err := NewEncoder(NetworkMainnet)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			key, err := kc.DeriveKey(testMnemonic, tt.path)
			require.NoError(t, err)

			addr, script, err := enc.Encode(key.PublicKey, tt.addressType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr)
			assert.Equal(t, tt.wantScript, script)
		})
	}
}

func TestKeychain_DeriveKey_InvalidInput(t *testing.T) {
	kc, err := NewKeychain(NetworkTestnet)
	require.NoError(t, err)

	_, err = kc.DeriveKey("not a real mnemonic phrase", "m/84'/1'/0'/0/0")
	require.ErrorIs(t, err, domainerrors.ErrDerivationFailed)

	_, err = kc.DeriveKey(testMnemonic, "84'/1'/0'/0/0")
	require.ErrorIs(t, err, domainerrors.ErrDerivationFailed, "path must start with m/")

	_, err = kc.DeriveKey(testMnemonic, "m/84'/x'/0'/0/0")
	require.ErrorIs(t, err, domainerrors.ErrDerivationFailed)
}

func TestKeychain_DefaultPath(t *testing.T) {
	mainnet, err := NewKeychain(NetworkMainnet)
	require.NoError(t, err)
	testnet, err := NewKeychain(NetworkTestnet)
	require.NoError(t, err)

	assert.Equal(t, "m/44'/0'/0'/0/0", mainnet.DefaultPath(entities.AddressTypeLegacy, 0))
	assert.Equal(t, "m/49'/0'/0'/0/3", mainnet.DefaultPath(entities.AddressTypeSegwit, 3))
	assert.Equal(t, "m/84'/0'/0'/0/7", mainnet.DefaultPath(entities.AddressTypeNativeSegwit, 7))

	assert.Equal(t, "m/44'/1'/0'/0/0", testnet.DefaultPath(entities.AddressTypeLegacy, 0))
	assert.Equal(t, "m/84'/1'/0'/0/5", testnet.DefaultPath(entities.AddressTypeNativeSegwit, 5))
}
