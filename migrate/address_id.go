// Package migrate transforms a parsed source wallet (zcashd, Zingo, or
// Zecwallet-Lite) into the protocol-agnostic zewif model.
package migrate

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"

	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// AddressKind discriminates AddressId's payload, grounded on
// original_source/src/zewif/address_id.rs's AddressId enum.
type AddressKind uint8

const (
	AddressTransparent AddressKind = iota
	AddressSapling
	AddressOrchard
	AddressUnified
	AddressUnifiedAccount
)

// AddressId is a universal identifier for an address across zcashd's
// transparent/Sapling/Orchard/unified address spaces, plus an internal
// identifier for addresses that only exist inside a unified account
// bundle (no standalone encoded string).
type AddressId struct {
	Kind    AddressKind
	Address string         // valid for all kinds except AddressUnifiedAccount
	KeyID   zcashtype.U256 // valid only for AddressUnifiedAccount
}

func NewTransparentAddressId(addr string) AddressId { return AddressId{Kind: AddressTransparent, Address: addr} }
func NewSaplingAddressId(addr string) AddressId     { return AddressId{Kind: AddressSapling, Address: addr} }
func NewOrchardAddressId(addr string) AddressId     { return AddressId{Kind: AddressOrchard, Address: addr} }
func NewUnifiedAddressId(addr string) AddressId     { return AddressId{Kind: AddressUnified, Address: addr} }
func NewUnifiedAccountAddressId(id zcashtype.U256) AddressId {
	return AddressId{Kind: AddressUnifiedAccount, KeyID: id}
}

// FromAddressString classifies a bare encoded address string by prefix.
func FromAddressString(address string) (AddressId, error) {
	switch {
	case strings.HasPrefix(address, "t"):
		return NewTransparentAddressId(address), nil
	case strings.HasPrefix(address, "zs"):
		return NewSaplingAddressId(address), nil
	case strings.HasPrefix(address, "zo"):
		return NewOrchardAddressId(address), nil
	case strings.HasPrefix(address, "u"):
		return NewUnifiedAddressId(address), nil
	default:
		return AddressId{}, errors.Errorf("unable to determine address type for: %s", address)
	}
}

// String renders the persistence wire form: "t:…" | "zs:…" | "zo:…" |
// "u:…" | "ua:<hex>".
func (a AddressId) String() string {
	switch a.Kind {
	case AddressTransparent:
		return "t:" + a.Address
	case AddressSapling:
		return "zs:" + a.Address
	case AddressOrchard:
		return "zo:" + a.Address
	case AddressUnified:
		return "u:" + a.Address
	case AddressUnifiedAccount:
		return "ua:" + hex.EncodeToString(a.KeyID[:])
	default:
		return ""
	}
}

// ParseAddressID parses the wire form produced by String.
func ParseAddressID(s string) (AddressId, error) {
	switch {
	case strings.HasPrefix(s, "t:"):
		return NewTransparentAddressId(s[len("t:"):]), nil
	case strings.HasPrefix(s, "zs:"):
		return NewSaplingAddressId(s[len("zs:"):]), nil
	case strings.HasPrefix(s, "zo:"):
		return NewOrchardAddressId(s[len("zo:"):]), nil
	case strings.HasPrefix(s, "u:"):
		return NewUnifiedAddressId(s[len("u:"):]), nil
	case strings.HasPrefix(s, "ua:"):
		raw, err := hex.DecodeString(s[len("ua:"):])
		if err != nil {
			return AddressId{}, errors.Wrap(err, "invalid hex encoding for unified account ID")
		}
		if len(raw) != 32 {
			return AddressId{}, errors.Errorf("invalid unified account ID length: %d", len(raw))
		}
		var id zcashtype.U256
		copy(id[:], raw)
		return NewUnifiedAccountAddressId(id), nil
	default:
		return AddressId{}, errors.Errorf("invalid AddressId format: %s", s)
	}
}

// IsUnifiedAccountAddress reports whether a carries only an internal
// key id rather than a directly addressable string.
func (a AddressId) IsUnifiedAccountAddress() bool {
	return a.Kind == AddressUnifiedAccount
}

// AddressRegistry maps AddressId to the account that owns it, with a
// reverse lookup by account. Duplicates overwrite; iteration order is
// not guaranteed.
type AddressRegistry struct {
	byAddress map[AddressId]zcashtype.U256
}

// NewAddressRegistry returns an empty registry.
func NewAddressRegistry() *AddressRegistry {
	return &AddressRegistry{byAddress: map[AddressId]zcashtype.U256{}}
}

// Register records that addressID belongs to accountID, overwriting any
// prior registration for that address.
func (r *AddressRegistry) Register(addressID AddressId, accountID zcashtype.U256) {
	r.byAddress[addressID] = accountID
}

// FindAccount looks up the account owning addressID.
func (r *AddressRegistry) FindAccount(addressID AddressId) (zcashtype.U256, bool) {
	id, ok := r.byAddress[addressID]
	return id, ok
}

// FindAddressesForAccount returns every address registered to accountID.
func (r *AddressRegistry) FindAddressesForAccount(accountID zcashtype.U256) []AddressId {
	var out []AddressId
	for addr, acct := range r.byAddress {
		if acct == accountID {
			out = append(out, addr)
		}
	}
	return out
}

// AddressCount returns the number of registered addresses.
func (r *AddressRegistry) AddressCount() int { return len(r.byAddress) }

// AccountCount returns the number of distinct accounts referenced.
func (r *AddressRegistry) AccountCount() int {
	seen := map[zcashtype.U256]struct{}{}
	for _, acct := range r.byAddress {
		seen[acct] = struct{}{}
	}
	return len(seen)
}
