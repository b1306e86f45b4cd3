package zingo

import (
	"github.com/pkg/errors"

	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashd"
)

// CapabilityKind discriminates a single-protocol Capability envelope:
// none (no key material at all), view-only, or full spend authority.
// This mirrors zingolib's Capability<ViewingKeyType, SpendKeyType> enum,
// which every one of a wallet's three protocol capabilities (transparent,
// Sapling, Orchard) is built from.
type CapabilityKind uint8

const (
	CapabilityNone CapabilityKind = iota
	CapabilityView
	CapabilitySpend
)

const capabilityVersion = 1

// TransparentViewingKey is the opaque account-level public key material a
// transparent capability carries when the wallet holds view, but not
// spend, authority. Zingo derives this from a BIP-32 account public key;
// the exact field layout lives in zingolib internals outside this corpus,
// so it's kept as a length-prefixed opaque blob rather than decomposed.
type TransparentViewingKey struct {
	Raw []byte
}

func readTransparentViewingKey(p *parser.Parser) (TransparentViewingKey, error) {
	raw, err := p.ReadVarBlob()
	if err != nil {
		return TransparentViewingKey{}, parser.Context(err, "Parsing transparent viewing key")
	}
	return TransparentViewingKey{Raw: raw}, nil
}

// TransparentSpendingKey is the 74-byte legacy BIP-32 account extended
// private key a transparent capability carries with full spend authority
// (LegacyAccountPrivKey in the Zingo unified spending key container).
type TransparentSpendingKey struct {
	Raw [74]byte
}

func readTransparentSpendingKey(p *parser.Parser) (TransparentSpendingKey, error) {
	var k TransparentSpendingKey
	b, err := p.ReadFixedBlob(74)
	if err != nil {
		return k, parser.Context(err, "Parsing transparent spending key")
	}
	copy(k.Raw[:], b)
	return k, nil
}

// OrchardViewingKey is the 96-byte Orchard full viewing key (ak, nk, rivk).
type OrchardViewingKey struct {
	Raw [96]byte
}

func readOrchardViewingKey(p *parser.Parser) (OrchardViewingKey, error) {
	var k OrchardViewingKey
	b, err := p.ReadFixedBlob(96)
	if err != nil {
		return k, parser.Context(err, "Parsing orchard viewing key")
	}
	copy(k.Raw[:], b)
	return k, nil
}

// OrchardSpendingKey is the 32-byte raw Orchard spending key.
type OrchardSpendingKey struct {
	Raw [32]byte
}

func readOrchardSpendingKey(p *parser.Parser) (OrchardSpendingKey, error) {
	var k OrchardSpendingKey
	b, err := p.ReadFixedBlob(32)
	if err != nil {
		return k, parser.Context(err, "Parsing orchard spending key")
	}
	copy(k.Raw[:], b)
	return k, nil
}

// TransparentCapability is the wallet's transparent-protocol key material.
type TransparentCapability struct {
	Kind  CapabilityKind
	View  TransparentViewingKey
	Spend TransparentSpendingKey
}

func readTransparentCapability(p *parser.Parser) (TransparentCapability, error) {
	var c TransparentCapability
	kind, err := readCapabilityKind(p)
	if err != nil {
		return c, err
	}
	c.Kind = kind
	switch kind {
	case CapabilityView:
		if c.View, err = readTransparentViewingKey(p); err != nil {
			return c, err
		}
	case CapabilitySpend:
		if c.Spend, err = readTransparentSpendingKey(p); err != nil {
			return c, err
		}
	}
	return c, nil
}

// SaplingCapability is the wallet's Sapling-protocol key material, reusing
// the zcashd extended key types since both wallets serialize the same
// ZIP-32 extended key envelope.
type SaplingCapability struct {
	Kind  CapabilityKind
	View  zcashd.SaplingExtendedFullViewingKey
	Spend zcashd.SaplingExtendedSpendingKey
}

func readSaplingCapability(p *parser.Parser) (SaplingCapability, error) {
	var c SaplingCapability
	kind, err := readCapabilityKind(p)
	if err != nil {
		return c, err
	}
	c.Kind = kind
	switch kind {
	case CapabilityView:
		if c.View, err = zcashd.ReadSaplingExtendedFullViewingKey(p); err != nil {
			return c, err
		}
	case CapabilitySpend:
		if c.Spend, err = zcashd.ReadSaplingExtendedSpendingKey(p); err != nil {
			return c, err
		}
	}
	return c, nil
}

// OrchardCapability is the wallet's Orchard-protocol key material.
type OrchardCapability struct {
	Kind  CapabilityKind
	View  OrchardViewingKey
	Spend OrchardSpendingKey
}

func readOrchardCapability(p *parser.Parser) (OrchardCapability, error) {
	var c OrchardCapability
	kind, err := readCapabilityKind(p)
	if err != nil {
		return c, err
	}
	c.Kind = kind
	switch kind {
	case CapabilityView:
		if c.View, err = readOrchardViewingKey(p); err != nil {
			return c, err
		}
	case CapabilitySpend:
		if c.Spend, err = readOrchardSpendingKey(p); err != nil {
			return c, err
		}
	}
	return c, nil
}

func readCapabilityKind(p *parser.Parser) (CapabilityKind, error) {
	version, err := p.ReadUint8()
	if err != nil {
		return 0, parser.Context(err, "Parsing capability version")
	}
	if version != capabilityVersion {
		return 0, parser.Context(errors.Errorf("unsupported capability version %d", version), "Parsing capability")
	}
	kind, err := p.ReadUint8()
	if err != nil {
		return 0, parser.Context(err, "Parsing capability type")
	}
	switch CapabilityKind(kind) {
	case CapabilityNone, CapabilityView, CapabilitySpend:
		return CapabilityKind(kind), nil
	default:
		return 0, parser.Context(errors.Errorf("unknown capability type %d", kind), "Parsing capability")
	}
}

// WalletCapability bundles the three protocol-specific key capabilities a
// Zingo wallet carries, in transparent/Sapling/Orchard order (the order
// the Unified Spending Key container's typecodes are parsed in).
type WalletCapability struct {
	Transparent TransparentCapability
	Sapling     SaplingCapability
	Orchard     OrchardCapability
}

// ReadWalletCapability decodes a wallet's full capability bundle.
func ReadWalletCapability(p *parser.Parser) (WalletCapability, error) {
	var c WalletCapability
	var err error
	if c.Transparent, err = readTransparentCapability(p); err != nil {
		return c, parser.Context(err, "Parsing transparent capability")
	}
	if c.Sapling, err = readSaplingCapability(p); err != nil {
		return c, parser.Context(err, "Parsing sapling capability")
	}
	if c.Orchard, err = readOrchardCapability(p); err != nil {
		return c, parser.Context(err, "Parsing orchard capability")
	}
	return c, nil
}
