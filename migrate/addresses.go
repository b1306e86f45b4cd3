package migrate

import (
	"github.com/zingolabs/zewif-migrate/zcashd"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// initializeAddressRegistry builds the address-to-account map a unified
// account bundle implies: every address zcashd recorded metadata for is
// keyed by the account's key id it belongs to. Addresses the bundle
// never mentions (plain transparent/Sapling addresses predating the
// unified-account feature) are left for the caller's own fallback.
func initializeAddressRegistry(wallet *zcashd.ZcashdWallet, unified *zcashd.UnifiedAccounts) *AddressRegistry {
	registry := NewAddressRegistry()
	for addrKeyID, meta := range unified.AddressMetadata {
		registry.Register(NewUnifiedAccountAddressId(addrKeyID), meta.KeyID)
	}
	return registry
}

// accountKeyFor resolves which account owns addrID, falling back to
// defaultAccount when the registry has no opinion.
func accountKeyFor(registry *AddressRegistry, addrID AddressId, defaultAccount zcashtype.U256) zcashtype.U256 {
	if key, ok := registry.FindAccount(addrID); ok {
		return key
	}
	return defaultAccount
}
