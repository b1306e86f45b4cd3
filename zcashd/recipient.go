package zcashd

import (
	"github.com/pkg/errors"
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// ReceiverType discriminates a RecipientAddress's wire encoding.
type ReceiverType uint8

const (
	ReceiverP2PKH ReceiverType = iota
	ReceiverP2SH
	ReceiverSapling
	ReceiverOrchard
)

// ReadReceiverType decodes a ReceiverType, rejecting unknown values.
func ReadReceiverType(p *parser.Parser) (ReceiverType, error) {
	v, err := p.ReadCompactSize()
	if err != nil {
		return 0, parser.Context(err, "Parsing ReceiverType")
	}
	switch v {
	case 0, 1, 2, 3:
		return ReceiverType(v), nil
	default:
		return 0, errors.Errorf("invalid ReceiverType byte: 0x%02x", v)
	}
}

// KeyId is a transparent P2PKH key hash (RIPEMD160(SHA256(pubkey))).
type KeyId = zcashtype.U160

// ScriptId is a transparent P2SH script hash.
type ScriptId = zcashtype.U160

// OrchardRawAddress is a raw Orchard receiver: an 11-byte diversifier
// and a 32-byte payment-address point.
type OrchardRawAddress struct {
	Diversifier [11]byte
	Pk          zcashtype.U256
}

func readOrchardRawAddress(p *parser.Parser) (OrchardRawAddress, error) {
	var a OrchardRawAddress
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

// RecipientAddress is a send recipient's typed address, as recorded in
// the `recipientmapping` key.
type RecipientAddress struct {
	Type     ReceiverType
	KeyID    KeyId
	ScriptID ScriptId
	Sapling  SaplingZPaymentAddress
	Orchard  OrchardRawAddress
}

// ReadRecipientAddress decodes a RecipientAddress, dispatching on its
// leading ReceiverType discriminant.
func ReadRecipientAddress(p *parser.Parser) (RecipientAddress, error) {
	var a RecipientAddress
	t, err := ReadReceiverType(p)
	if err != nil {
		return a, parser.Context(err, "Parsing receiver_type")
	}
	a.Type = t
	switch t {
	case ReceiverP2PKH:
		if a.KeyID, err = zcashtype.ReadU160(p); err != nil {
			return a, parser.Context(err, "Parsing key_id")
		}
	case ReceiverP2SH:
		if a.ScriptID, err = zcashtype.ReadU160(p); err != nil {
			return a, parser.Context(err, "Parsing script_id")
		}
	case ReceiverSapling:
		if a.Sapling, err = ReadSaplingZPaymentAddress(p); err != nil {
			return a, parser.Context(err, "Parsing sapling_z_payment_address")
		}
	case ReceiverOrchard:
		if a.Orchard, err = readOrchardRawAddress(p); err != nil {
			return a, parser.Context(err, "Parsing orchard_raw_address")
		}
	}
	return a, nil
}

// RecipientMapping pairs a send recipient's typed address with the
// unified address string the wallet displayed for it.
type RecipientMapping struct {
	Recipient     RecipientAddress
	UnifiedAddress string
}
