package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"btc-custody.backend/internal/domain/entities"
)

// Encoder turns public keys into addresses on a fixed network
type Encoder struct {
	params *chaincfg.Params
}

// NewEncoder creates an encoder bound to the given network
func NewEncoder(network string) (*Encoder, error) {
	params, err := ChainParams(network)
	if err != nil {
		return nil, err
	}
	return &Encoder{params: params}, nil
}

// Script tags for the supported encodings
const (
	ScriptP2PKH      = "P2PKH"
	ScriptP2SHP2WPKH = "P2SH-P2WPKH"
	ScriptP2WPKH     = "P2WPKH"
)

// Encode encodes a compressed public key as an address of the given type
// and reports which script kind backs it. Unrecognized types fall back to
// native segwit.
func (e *Encoder) Encode(pub *btcec.PublicKey, addressType entities.AddressType) (string, string, error) {
	pubKeyHash := btcutil.Hash160(pub.SerializeCompressed())

	switch addressType {
	case entities.AddressTypeLegacy:
		addr, err := btcutil.NewAddressPubKeyHash(pubKeyHash, e.params)
		if err != nil {
			return "", "", fmt.Errorf("failed to encode p2pkh address: %w", err)
		}
		return addr.EncodeAddress(), ScriptP2PKH, nil

	case entities.AddressTypeSegwit:
		// P2SH-wrapped P2WPKH: the witness program becomes the redeem script
		witness, err := btcutil.NewAddressWitnessPubKeyHash(pubKeyHash, e.params)
		if err != nil {
			return "", "", fmt.Errorf("failed to build witness program: %w", err)
		}
		script, err := txscript.PayToAddrScript(witness)
		if err != nil {
			return "", "", fmt.Errorf("failed to build redeem script: %w", err)
		}
		addr, err := btcutil.NewAddressScriptHash(script, e.params)
		if err != nil {
			return "", "", fmt.Errorf("failed to encode p2sh address: %w", err)
		}
		return addr.EncodeAddress(), ScriptP2SHP2WPKH, nil

	default:
		addr, err := btcutil.NewAddressWitnessPubKeyHash(pubKeyHash, e.params)
		if err != nil {
			return "", "", fmt.Errorf("failed to encode p2wpkh address: %w", err)
		}
		return addr.EncodeAddress(), ScriptP2WPKH, nil
	}
}
