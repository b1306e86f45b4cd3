package zcashd

import (
	"github.com/pkg/errors"
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// UnifiedAccountMetadata is the `unifiedaccount` record key: the full
// identity of one ZIP-316 unified account: its seed fingerprint, BIP-44
// coin type and key id alongside the bare account id.
type UnifiedAccountMetadata struct {
	SeedFingerprint zcashtype.U256
	Bip44CoinType   uint32
	AccountID       uint32
	KeyID           zcashtype.U256
}

// ReadUnifiedAccountMetadata decodes a `unifiedaccount` record key.
func ReadUnifiedAccountMetadata(p *parser.Parser) (UnifiedAccountMetadata, error) {
	var m UnifiedAccountMetadata
	var err error
	if m.SeedFingerprint, err = zcashtype.ReadU256(p); err != nil {
		return m, parser.Context(err, "Parsing seed_fingerprint")
	}
	if m.Bip44CoinType, err = p.ReadUint32(); err != nil {
		return m, parser.Context(err, "Parsing bip_44_coin_type")
	}
	if m.AccountID, err = p.ReadUint32(); err != nil {
		return m, parser.Context(err, "Parsing account_id")
	}
	if m.KeyID, err = zcashtype.ReadU256(p); err != nil {
		return m, parser.Context(err, "Parsing key_id")
	}
	return m, nil
}

// UnifiedAddressMetadata is the `unifiedaddrmeta` record key: a unified
// address's identity within a unified account, and which component
// receivers it carries.
type UnifiedAddressMetadata struct {
	KeyID          zcashtype.U256
	DiversifierIdx [11]byte
	ReceiverTypes  []ReceiverType
}

// ReadUnifiedAddressMetadata decodes a `unifiedaddrmeta` record key.
func ReadUnifiedAddressMetadata(p *parser.Parser) (UnifiedAddressMetadata, error) {
	var m UnifiedAddressMetadata
	var err error
	if m.KeyID, err = zcashtype.ReadU256(p); err != nil {
		return m, parser.Context(err, "Parsing key_id")
	}
	idx, err := p.ReadFixedBlob(11)
	if err != nil {
		return m, parser.Context(err, "Parsing diversifier_index")
	}
	copy(m.DiversifierIdx[:], idx)
	if m.ReceiverTypes, err = parser.ReadVec(p, ReadReceiverType); err != nil {
		return m, parser.Context(err, "Parsing receiver_types")
	}
	return m, nil
}

// UnifiedAccounts is the assembled unified-accounts bundle: account
// metadata, their addresses' metadata, and the full viewing key string
// recorded per account key id.
type UnifiedAccounts struct {
	AddressMetadata map[zcashtype.U256]UnifiedAddressMetadata
	FullViewingKeys map[zcashtype.U256]string
	AccountMetadata map[zcashtype.U256]UnifiedAccountMetadata
}

// checkZeroDiscriminant enforces the rule that unifiedaccount/
// unifiedaddrmeta values must be the literal u32 zero.
func checkZeroDiscriminant(value []byte, what string) error {
	p := parser.New(value, false)
	v, err := p.ReadUint32()
	if err != nil {
		return parser.Context(err, "Parsing "+what+" value")
	}
	if v != 0 {
		return errors.Errorf("unexpected value for %s: 0x%08x", what, v)
	}
	return p.CheckFinished()
}
