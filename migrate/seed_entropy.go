package migrate

import (
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"

	"github.com/zingolabs/zewif-migrate/zewif"
)

// convertSeedEntropy recovers the BIP-39 mnemonic phrase that a Zingo or
// Zecwallet-Lite wallet's raw seed entropy encodes. Unlike zcashd, neither
// wallet format retains the phrase text itself: only the entropy it was
// derived from is ever persisted, so the phrase has to be regenerated from
// it at migration time. A wallet with no seed bytes at all (imported
// watch-only keys with nothing HD-derived) carries no seed material,
// which isn't an error.
func convertSeedEntropy(seed []byte) (*zewif.SeedMaterial, error) {
	if len(seed) == 0 {
		return nil, nil
	}
	mnemonic, err := bip39.NewMnemonic(seed)
	if err != nil {
		return nil, errors.Wrap(err, "recovering mnemonic from seed entropy")
	}
	return &zewif.SeedMaterial{
		Kind:     zewif.SeedBip39Entropy,
		Mnemonic: mnemonic,
	}, nil
}
