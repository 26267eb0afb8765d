package bitcoin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"

	"btc-custody.backend/internal/domain/entities"
	domainerrors "btc-custody.backend/internal/domain/errors"
)

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

// ChainParams resolves a network name to its chain parameters.
func ChainParams(network string) (*chaincfg.Params, error) {
	switch network {
	case NetworkMainnet:
		return &chaincfg.MainNetParams, nil
	case NetworkTestnet:
		return &chaincfg.TestNet3Params, nil
	default:
		return nil, fmt.Errorf("unknown bitcoin network %q", network)
	}
}

// DerivedKey is the result of deriving one path from a seed
type DerivedKey struct {
	PrivateKey *btcec.PrivateKey
	PublicKey  *btcec.PublicKey
	Path       string
}

// Keychain derives BIP32 keys from BIP39 mnemonics on a fixed network.
// The network is decided once at construction, never read from the
// environment at call time.
type Keychain struct {
	params  *chaincfg.Params
	network string
}

// NewKeychain creates a keychain bound to the given network
func NewKeychain(network string) (*Keychain, error) {
	params, err := ChainParams(network)
	if err != nil {
		return nil, err
	}
	return &Keychain{params: params, network: network}, nil
}

// Network returns the network name this keychain is bound to
func (k *Keychain) Network() string {
	return k.network
}

// GenerateMnemonic creates a fresh 12-word BIP39 mnemonic
func (k *Keychain) GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// DeriveKey derives the key at path from the mnemonic. The path uses the
// usual notation, e.g. m/84'/1'/0'/0/0, with ' marking hardened steps.
func (k *Keychain) DeriveKey(mnemonic, path string) (*DerivedKey, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("%w: invalid mnemonic", domainerrors.ErrDerivationFailed)
	}

	master, err := hdkeychain.NewMaster(seed, k.params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrDerivationFailed, err)
	}

	key, err := deriveFromPath(master, path)
	if err != nil {
		return nil, err
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrDerivationFailed, err)
	}
	pub, err := key.ECPubKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrDerivationFailed, err)
	}

	return &DerivedKey{PrivateKey: priv, PublicKey: pub, Path: path}, nil
}

// DefaultPath builds the BIP44/49/84 path for an address type at index.
// Coin type 0 on mainnet, 1 on testnet.
func (k *Keychain) DefaultPath(addressType entities.AddressType, index int) string {
	purpose := 84
	switch addressType {
	case entities.AddressTypeLegacy:
		purpose = 44
	case entities.AddressTypeSegwit:
		purpose = 49
	}

	coinType := 1
	if k.network == NetworkMainnet {
		coinType = 0
	}

	return fmt.Sprintf("m/%d'/%d'/0'/0/%d", purpose, coinType, index)
}

// deriveFromPath walks the slash-separated path from the master key
func deriveFromPath(master *hdkeychain.ExtendedKey, path string) (*hdkeychain.ExtendedKey, error) {
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] != "m" {
		return nil, fmt.Errorf("%w: path must start with m/", domainerrors.ErrDerivationFailed)
	}

	key := master
	for _, part := range parts[1:] {
		var index uint32
		if strings.HasSuffix(part, "'") {
			index64, err := strconv.ParseUint(strings.TrimSuffix(part, "'"), 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid path component %q", domainerrors.ErrDerivationFailed, part)
			}
			index = hdkeychain.HardenedKeyStart + uint32(index64)
		} else {
			index64, err := strconv.ParseUint(part, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid path component %q", domainerrors.ErrDerivationFailed, part)
			}
			index = uint32(index64)
		}

		var err error
		key, err = key.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domainerrors.ErrDerivationFailed, err)
		}
	}
	return key, nil
}
