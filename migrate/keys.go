package migrate

import (
	"github.com/zingolabs/zewif-migrate/zcashd"
	"github.com/zingolabs/zewif-migrate/zewif"
)

// findSaplingKeyForIVK looks up the full extended spending key recorded
// for a Sapling incoming viewing key, if the wallet kept spend authority
// for that address rather than just view authority.
func findSaplingKeyForIVK(wallet *zcashd.ZcashdWallet, ivk zcashd.SaplingIncomingViewingKey) (zcashd.SaplingKey, bool) {
	key, ok := wallet.SaplingKeys[ivk]
	return key, ok
}

// convertSaplingSpendingKey migrates a zcashd extended spending key into
// its zewif form. Both sides use the same 32-byte scalar representation,
// so every field carries over unchanged.
func convertSaplingSpendingKey(key zcashd.SaplingExtendedSpendingKey) *zewif.SpendingKey {
	return &zewif.SpendingKey{
		Kind:              zewif.SpendingKeySaplingExtended,
		Ask:               key.ExpSK.Ask,
		Nsk:               key.ExpSK.Nsk,
		Ovk:               key.ExpSK.Ovk,
		HasDerivation:     true,
		Depth:             key.Depth,
		ParentFingerprint: key.ParentFVKTag,
		ChildIndex:        key.ChildIndex,
		ChainCode:         key.ChainCode,
		DK:                key.DK,
	}
}
