package migrate

import (
	"github.com/zingolabs/zewif-migrate/zcashd"
	"github.com/zingolabs/zewif-migrate/zewif"
)

// convertSeedMaterial migrates the wallet's BIP-39 recovery phrase, if it
// recorded one. A wallet created before zcashd gained HD seeds, or one
// that never found a `mnemonicphrase` record, carries no seed material at
// all — that's recorded as a nil *SeedMaterial, not an error.
func convertSeedMaterial(wallet *zcashd.ZcashdWallet) *zewif.SeedMaterial {
	phrase := wallet.MnemonicPhrase.Phrase
	if phrase == "" {
		return nil
	}
	return &zewif.SeedMaterial{
		Kind:     zewif.SeedBip39Mnemonic,
		Mnemonic: phrase,
	}
}
