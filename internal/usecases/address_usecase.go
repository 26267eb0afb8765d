package usecases

import (
	"context"
	"encoding/hex"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"btc-custody.backend/internal/domain/entities"
	domainerrors "btc-custody.backend/internal/domain/errors"
	"btc-custody.backend/internal/domain/repositories"
	"btc-custody.backend/internal/infrastructure/bitcoin"
	"btc-custody.backend/pkg/crypto"
	"btc-custody.backend/pkg/logger"
	"btc-custody.backend/pkg/metrics"
)

// derivationPathPattern is the only accepted shape for caller-supplied paths
var derivationPathPattern = regexp.MustCompile(`^m/\d+'/\d+'/\d+'/\d+/\d+$`)

// AddressUsecase handles the address lifecycle: generation, validation,
// import, details and the one-time mnemonic reveal.
type AddressUsecase struct {
	keychain    *bitcoin.Keychain
	encoder     *bitcoin.Encoder
	validator   *bitcoin.Validator
	sealer      *crypto.MnemonicSealer
	walletRepo  repositories.WalletRepository
	addressRepo repositories.AddressRepository
	uow         repositories.UnitOfWork
}

// NewAddressUsecase creates a new address usecase
func NewAddressUsecase(
	keychain *bitcoin.Keychain,
	encoder *bitcoin.Encoder,
	validator *bitcoin.Validator,
	sealer *crypto.MnemonicSealer,
	walletRepo repositories.WalletRepository,
	addressRepo repositories.AddressRepository,
	uow repositories.UnitOfWork,
) *AddressUsecase {
	return &AddressUsecase{
		keychain:    keychain,
		encoder:     encoder,
		validator:   validator,
		sealer:      sealer,
		walletRepo:  walletRepo,
		addressRepo: addressRepo,
		uow:         uow,
	}
}

// Generate derives one new address for the user. By default a fresh mnemonic
// is generated and sealed onto the wallet; with reuse_wallet_seed the stored
// seed is reused and the index continues from the wallet's generated count.
func (u *AddressUsecase) Generate(ctx context.Context, input *entities.GenerateAddressInput) (*entities.GeneratedAddress, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, domainerrors.BadRequest("Invalid user id")
	}

	addressType := entities.AddressTypeNativeSegwit
	if input.AddressType != "" {
		addressType = entities.AddressType(input.AddressType)
	}

	if input.DerivationPath != "" && !derivationPathPattern.MatchString(input.DerivationPath) {
		return nil, domainerrors.BadRequest("Invalid derivation path format")
	}

	var result *entities.GeneratedAddress
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		wallet, err := u.findOrCreateWallet(ctx, userID)
		if err != nil {
			return err
		}

		mnemonic := ""
		index := 0
		reused := false
		if input.ReuseWalletSeed && wallet.EncryptedMnemonic.Valid {
			mnemonic, err = u.sealer.Open(wallet.EncryptedMnemonic.String)
			if err != nil {
				return err
			}
			count, err := u.addressRepo.CountGeneratedByWallet(ctx, wallet.WalletID)
			if err != nil {
				return err
			}
			index = int(count)
			reused = true
		} else {
			mnemonic, err = u.keychain.GenerateMnemonic()
			if err != nil {
				return err
			}
		}

		path := input.DerivationPath
		if path == "" {
			path = u.keychain.DefaultPath(addressType, index)
		}

		key, err := u.keychain.DeriveKey(mnemonic, path)
		if err != nil {
			return err
		}

		address, _, err := u.encoder.Encode(key.PublicKey, addressType)
		if err != nil {
			return err
		}

		sealedKey, err := u.sealer.Seal(hex.EncodeToString(key.PrivateKey.Serialize()))
		if err != nil {
			return err
		}

		record := &entities.BtcAddress{
			WalletID:    wallet.WalletID,
			UserID:      userID,
			Address:     address,
			AddressType: addressType,
			IsActive:    true,
			Status:      entities.AddressStatusActive,
		}
		record.PublicKey.SetValid(hex.EncodeToString(key.PublicKey.SerializeCompressed()))
		record.PrivateKey.SetValid(sealedKey)
		record.DerivationPath.SetValid(path)
		if input.Label != "" {
			record.Label.SetValid(input.Label)
		}

		if err := u.addressRepo.Create(ctx, record); err != nil {
			return err
		}

		if wallet.WalletAddress == "" {
			if err := u.walletRepo.SetWalletAddress(ctx, wallet.WalletID, address); err != nil {
				return err
			}
		}

		// Seal the fresh mnemonic for the reveal-once flow; a reused seed
		// is already stored.
		if !reused {
			envelope, err := u.sealer.Seal(mnemonic)
			if err != nil {
				return err
			}
			if err := u.walletRepo.SetEncryptedMnemonic(ctx, wallet.WalletID, envelope); err != nil {
				return err
			}
		}

		result = &entities.GeneratedAddress{
			AddressID:      record.AddressID,
			Address:        address,
			AddressType:    addressType,
			PublicKey:      record.PublicKey.String,
			DerivationPath: path,
			Label:          input.Label,
			QRCode:         "bitcoin:" + address,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.AddressesGeneratedTotal.WithLabelValues(string(addressType)).Inc()
	return result, nil
}

// GenerateMultiple derives count addresses from one fresh mnemonic at
// consecutive indices starting at start_index. The mnemonic is sealed onto
// the wallet row and never returned in plaintext.
func (u *AddressUsecase) GenerateMultiple(ctx context.Context, input *entities.GenerateMultipleInput) (*entities.BatchResult, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, domainerrors.BadRequest("Invalid user id")
	}
	if input.Count < 1 || input.Count > 10 {
		return nil, domainerrors.BadRequest("Count must be between 1 and 10")
	}
	if input.StartIndex < 0 || input.StartIndex > 1000000 {
		return nil, domainerrors.BadRequest("Start index must be between 0 and 1000000")
	}

	addressType := entities.AddressTypeNativeSegwit
	if input.AddressType != "" {
		addressType = entities.AddressType(input.AddressType)
	}

	var result *entities.BatchResult
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		wallet, err := u.findOrCreateWallet(ctx, userID)
		if err != nil {
			return err
		}

		mnemonic, err := u.keychain.GenerateMnemonic()
		if err != nil {
			return err
		}

		batch := make([]entities.BatchAddress, 0, input.Count)
		for i := input.StartIndex; i < input.StartIndex+input.Count; i++ {
			path := u.keychain.DefaultPath(addressType, i)

			key, err := u.keychain.DeriveKey(mnemonic, path)
			if err != nil {
				return err
			}
			address, _, err := u.encoder.Encode(key.PublicKey, addressType)
			if err != nil {
				return err
			}
			sealedKey, err := u.sealer.Seal(hex.EncodeToString(key.PrivateKey.Serialize()))
			if err != nil {
				return err
			}

			record := &entities.BtcAddress{
				WalletID:    wallet.WalletID,
				UserID:      userID,
				Address:     address,
				AddressType: addressType,
				IsActive:    true,
				Status:      entities.AddressStatusActive,
			}
			record.PublicKey.SetValid(hex.EncodeToString(key.PublicKey.SerializeCompressed()))
			record.PrivateKey.SetValid(sealedKey)
			record.DerivationPath.SetValid(path)

			if err := u.addressRepo.Create(ctx, record); err != nil {
				return err
			}

			batch = append(batch, entities.BatchAddress{
				AddressID:      record.AddressID,
				Address:        address,
				AddressType:    addressType,
				DerivationPath: path,
				Index:          i,
			})
		}

		if wallet.WalletAddress == "" && len(batch) > 0 {
			if err := u.walletRepo.SetWalletAddress(ctx, wallet.WalletID, batch[0].Address); err != nil {
				return err
			}
		}

		envelope, err := u.sealer.Seal(mnemonic)
		if err != nil {
			return err
		}
		if err := u.walletRepo.SetEncryptedMnemonic(ctx, wallet.WalletID, envelope); err != nil {
			return err
		}

		result = &entities.BatchResult{
			Addresses:      batch,
			Count:          len(batch),
			MnemonicStored: true,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.AddressesGeneratedTotal.WithLabelValues(string(addressType)).Add(float64(result.Count))
	return result, nil
}

// Validate classifies an address. Pure, never an error.
func (u *AddressUsecase) Validate(_ context.Context, input *entities.ValidateAddressInput) *entities.AddressValidation {
	result := u.validator.Validate(input.Address)
	return &result
}

// Import registers an externally generated address. A supplied private key
// is sealed before persistence; for watch-only imports the key is discarded
// so a watch-only row can never carry key material.
func (u *AddressUsecase) Import(ctx context.Context, input *entities.ImportAddressInput) (*entities.ImportedAddress, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, domainerrors.BadRequest("Invalid user id")
	}

	validation := u.validator.Validate(input.Address)
	if !validation.IsValid {
		return nil, domainerrors.BadRequest("Invalid Bitcoin address")
	}

	var result *entities.ImportedAddress
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		_, err := u.addressRepo.GetByAddress(ctx, input.Address)
		if err == nil {
			return domainerrors.BadRequest("Address already exists")
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		wallet, err := u.findOrCreateWallet(ctx, userID)
		if err != nil {
			return err
		}

		record := &entities.BtcAddress{
			WalletID:    wallet.WalletID,
			UserID:      userID,
			Address:     input.Address,
			AddressType: validation.AddressType,
			IsImported:  true,
			WatchOnly:   input.WatchOnly,
			IsActive:    true,
			Status:      entities.AddressStatusActive,
		}
		if input.Label != "" {
			record.Label.SetValid(input.Label)
		}
		if input.PrivateKey != "" && !input.WatchOnly {
			sealedKey, err := u.sealer.Seal(input.PrivateKey)
			if err != nil {
				return err
			}
			record.PrivateKey.SetValid(sealedKey)
		}

		if err := u.addressRepo.Create(ctx, record); err != nil {
			return err
		}

		if wallet.WalletAddress == "" {
			if err := u.walletRepo.SetWalletAddress(ctx, wallet.WalletID, input.Address); err != nil {
				return err
			}
		}

		result = &entities.ImportedAddress{
			AddressID:   record.AddressID,
			Address:     record.Address,
			AddressType: record.AddressType,
			Label:       input.Label,
			WatchOnly:   input.WatchOnly,
			Imported:    true,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetDetails returns the flattened address + wallet view
func (u *AddressUsecase) GetDetails(ctx context.Context, address string) (*entities.AddressDetails, error) {
	validation := u.validator.Validate(address)
	if !validation.IsValid {
		return nil, domainerrors.BadRequest("Invalid Bitcoin address format")
	}

	details, err := u.addressRepo.GetDetails(ctx, address)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Address not found")
		}
		return nil, err
	}
	return details, nil
}

// RevealMnemonic returns the wallet's sealed mnemonic exactly once and
// wipes the ciphertext. A second call finds nothing and 404s.
func (u *AddressUsecase) RevealMnemonic(ctx context.Context, input *entities.RevealMnemonicInput) (string, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return "", domainerrors.BadRequest("Invalid user id")
	}

	var mnemonic string
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		wallet, err := u.walletRepo.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("No stored mnemonic for this user")
			}
			return err
		}
		if !wallet.EncryptedMnemonic.Valid {
			return domainerrors.NotFound("No stored mnemonic for this user")
		}

		mnemonic, err = u.sealer.Open(wallet.EncryptedMnemonic.String)
		if err != nil {
			return err
		}

		return u.walletRepo.ClearEncryptedMnemonic(ctx, wallet.WalletID)
	})
	if err != nil {
		return "", err
	}

	logger.Info(ctx, "mnemonic revealed and wiped", zap.String("user_id", userID.String()))
	return mnemonic, nil
}

// findOrCreateWallet runs inside a unit of work so concurrent first
// requests cannot mint two wallets for one user.
func (u *AddressUsecase) findOrCreateWallet(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	wallet, err := u.walletRepo.GetByUserID(ctx, userID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	wallet = &entities.Wallet{
		UserID:       userID,
		WalletType:   "customer",
		Currency:     "BTC",
		WalletStatus: entities.WalletStatusActive,
	}
	if err := u.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}
