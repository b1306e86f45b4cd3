package zcashd

import (
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/parser/internal/blake2b"
	"github.com/zingolabs/zewif-migrate/zcashd/tx"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// SaplingIncomingViewingKey re-exports the transaction package's IVK type
// so the key-store tables and the note-data tables share one definition.
type SaplingIncomingViewingKey = tx.SaplingIncomingViewingKey

// ReadSaplingIncomingViewingKey decodes an IVK.
var ReadSaplingIncomingViewingKey = tx.ReadSaplingIncomingViewingKey

// SaplingExpandedSpendingKey is the three scalars a Sapling spend
// authority expands to: spend authorizing, proof-nullifying, and
// outgoing-viewing keys.
type SaplingExpandedSpendingKey struct {
	Ask zcashtype.U256
	Nsk zcashtype.U256
	Ovk zcashtype.U256
}

// ReadSaplingExpandedSpendingKey decodes an expsk.
func ReadSaplingExpandedSpendingKey(p *parser.Parser) (SaplingExpandedSpendingKey, error) {
	var k SaplingExpandedSpendingKey
	var err error
	if k.Ask, err = zcashtype.ReadU256(p); err != nil {
		return k, parser.Context(err, "Parsing ask")
	}
	if k.Nsk, err = zcashtype.ReadU256(p); err != nil {
		return k, parser.Context(err, "Parsing nsk")
	}
	if k.Ovk, err = zcashtype.ReadU256(p); err != nil {
		return k, parser.Context(err, "Parsing ovk")
	}
	return k, nil
}

// SaplingExtendedSpendingKey is the full ZIP-32 extended spending key as
// zcashd persists it.
type SaplingExtendedSpendingKey struct {
	Depth         uint8
	ParentFVKTag  uint32
	ChildIndex    uint32
	ChainCode     zcashtype.U256
	ExpSK         SaplingExpandedSpendingKey
	DK            zcashtype.U256
}

// ReadSaplingExtendedSpendingKey decodes a sapzkey value.
func ReadSaplingExtendedSpendingKey(p *parser.Parser) (SaplingExtendedSpendingKey, error) {
	var k SaplingExtendedSpendingKey
	var err error
	if k.Depth, err = p.ReadUint8(); err != nil {
		return k, parser.Context(err, "Parsing depth")
	}
	if k.ParentFVKTag, err = p.ReadUint32(); err != nil {
		return k, parser.Context(err, "Parsing parent_fvk_tag")
	}
	if k.ChildIndex, err = p.ReadUint32(); err != nil {
		return k, parser.Context(err, "Parsing child_index")
	}
	if k.ChainCode, err = zcashtype.ReadU256(p); err != nil {
		return k, parser.Context(err, "Parsing chain_code")
	}
	if k.ExpSK, err = ReadSaplingExpandedSpendingKey(p); err != nil {
		return k, parser.Context(err, "Parsing expsk")
	}
	if k.DK, err = zcashtype.ReadU256(p); err != nil {
		return k, parser.Context(err, "Parsing dk")
	}
	return k, nil
}

// SaplingFullViewingKey is the three public components a Sapling full
// viewing authority expands to: spend-authority, nullifier, and
// outgoing-viewing verification keys.
type SaplingFullViewingKey struct {
	Ak  zcashtype.U256
	Nk  zcashtype.U256
	Ovk zcashtype.U256
}

// saplingIVKPersonalization is BLAKE2b's personalization string for
// CRH^ivk, the hash Zcash uses to derive a Sapling incoming viewing key
// from its ak/nk components.
var saplingIVKPersonalization = [16]byte{'Z', 'c', 'a', 's', 'h', 'i', 'v', 'k'}

// DeriveSaplingIVK computes a Sapling incoming viewing key from its
// spend-authorizing and nullifier-deriving key components, the same
// BLAKE2b-256 personalized hash zcashd derives internally (CRH^ivk). The
// final reduction mod the Jubjub subgroup order is not applied here,
// since this module never performs Jubjub scalar arithmetic; the raw
// hash output still uniquely identifies the (ak, nk) pair it came from.
func DeriveSaplingIVK(ak, nk zcashtype.U256) SaplingIncomingViewingKey {
	var input [64]byte
	copy(input[:32], ak[:])
	copy(input[32:], nk[:])
	return SaplingIncomingViewingKey(blake2b.Sum256Personalized(saplingIVKPersonalization, input[:]))
}

// ReadSaplingFullViewingKey decodes an fvk.
func ReadSaplingFullViewingKey(p *parser.Parser) (SaplingFullViewingKey, error) {
	var k SaplingFullViewingKey
	var err error
	if k.Ak, err = zcashtype.ReadU256(p); err != nil {
		return k, parser.Context(err, "Parsing ak")
	}
	if k.Nk, err = zcashtype.ReadU256(p); err != nil {
		return k, parser.Context(err, "Parsing nk")
	}
	if k.Ovk, err = zcashtype.ReadU256(p); err != nil {
		return k, parser.Context(err, "Parsing ovk")
	}
	return k, nil
}

// SaplingExtendedFullViewingKey is the ZIP-32 extended full viewing key:
// the same HD envelope as SaplingExtendedSpendingKey, around an fvk
// instead of an expsk (169 bytes total, matching the Sapling component
// size the Zingo unified spending key container validates against).
type SaplingExtendedFullViewingKey struct {
	Depth        uint8
	ParentFVKTag uint32
	ChildIndex   uint32
	ChainCode    zcashtype.U256
	FVK          SaplingFullViewingKey
	DK           zcashtype.U256
}

// ReadSaplingExtendedFullViewingKey decodes an extended full viewing key.
func ReadSaplingExtendedFullViewingKey(p *parser.Parser) (SaplingExtendedFullViewingKey, error) {
	var k SaplingExtendedFullViewingKey
	var err error
	if k.Depth, err = p.ReadUint8(); err != nil {
		return k, parser.Context(err, "Parsing depth")
	}
	if k.ParentFVKTag, err = p.ReadUint32(); err != nil {
		return k, parser.Context(err, "Parsing parent_fvk_tag")
	}
	if k.ChildIndex, err = p.ReadUint32(); err != nil {
		return k, parser.Context(err, "Parsing child_index")
	}
	if k.ChainCode, err = zcashtype.ReadU256(p); err != nil {
		return k, parser.Context(err, "Parsing chain_code")
	}
	if k.FVK, err = ReadSaplingFullViewingKey(p); err != nil {
		return k, parser.Context(err, "Parsing fvk")
	}
	if k.DK, err = zcashtype.ReadU256(p); err != nil {
		return k, parser.Context(err, "Parsing dk")
	}
	return k, nil
}

// SaplingKey is a Sapling IVK paired with its full extended spending key
// and HD metadata (the `sapzkey`/`sapzkeymeta` pairing in a zcashd dump).
type SaplingKey struct {
	IVK      SaplingIncomingViewingKey
	Key      SaplingExtendedSpendingKey
	Metadata KeyMetadata
}

// SaplingZPaymentAddress is a raw Sapling payment address: an 11-byte
// diversifier and a 32-byte transmission key.
type SaplingZPaymentAddress struct {
	Diversifier [11]byte
	Pk          zcashtype.U256
}

// ReadSaplingZPaymentAddress decodes a Sapling payment address.
func ReadSaplingZPaymentAddress(p *parser.Parser) (SaplingZPaymentAddress, error) {
	var a SaplingZPaymentAddress
	d, err := p.ReadFixedBlob(11)
	if err != nil {
		return a, parser.Context(err, "Parsing diversifier")
	}
	copy(a.Diversifier[:], d)
	if a.Pk, err = zcashtype.ReadU256(p); err != nil {
		return a, parser.Context(err, "Parsing pk")
	}
	return a, nil
}
