package bitcoin

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"btc-custody.backend/internal/domain/entities"
)

// Validator checks address syntax against both networks. Validation is a
// pure classification, it never returns an error: malformed input just
// yields is_valid false.
type Validator struct{}

// NewValidator creates a validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate decodes the address against mainnet then testnet and classifies
// its encoding family.
func (v *Validator) Validate(address string) entities.AddressValidation {
	result := entities.AddressValidation{
		Address:     address,
		IsValid:     false,
		AddressType: entities.AddressTypeUnknown,
		Network:     "unknown",
	}

	for _, candidate := range []struct {
		params  *chaincfg.Params
		network string
	}{
		{&chaincfg.MainNetParams, NetworkMainnet},
		{&chaincfg.TestNet3Params, NetworkTestnet},
	} {
		decoded, err := btcutil.DecodeAddress(address, candidate.params)
		if err != nil || !decoded.IsForNet(candidate.params) {
			continue
		}
		result.IsValid = true
		result.AddressType = classify(decoded)
		result.Network = candidate.network
		return result
	}

	return result
}

// classify maps the decoded address kind to an encoding family. P2SH is
// reported as segwit since every address this service mints with a 3/2
// prefix is a wrapped witness program.
func classify(addr btcutil.Address) entities.AddressType {
	switch addr.(type) {
	case *btcutil.AddressPubKeyHash:
		return entities.AddressTypeLegacy
	case *btcutil.AddressScriptHash:
		return entities.AddressTypeSegwit
	case *btcutil.AddressWitnessPubKeyHash, *btcutil.AddressWitnessScriptHash, *btcutil.AddressTaproot:
		return entities.AddressTypeNativeSegwit
	default:
		return entities.AddressTypeUnknown
	}
}
