package zcashd

import (
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// SproutPaymentAddress is a Sprout z-address: a 32-byte paying key (a_pk)
// concatenated with a 32-byte public encryption key (pk_enc).
type SproutPaymentAddress struct {
	APk    zcashtype.U256
	PkEnc  zcashtype.U256
}

// ReadSproutPaymentAddress decodes a SproutPaymentAddress.
func ReadSproutPaymentAddress(p *parser.Parser) (SproutPaymentAddress, error) {
	var a SproutPaymentAddress
	var err error
	if a.APk, err = zcashtype.ReadU256(p); err != nil {
		return a, parser.Context(err, "Parsing a_pk")
	}
	if a.PkEnc, err = zcashtype.ReadU256(p); err != nil {
		return a, parser.Context(err, "Parsing pk_enc")
	}
	return a, nil
}

// SproutSpendingKey pairs a Sprout spending key (a u252-constrained
// scalar) with its HD metadata.
type SproutSpendingKey struct {
	Key      zcashtype.U252
	Metadata KeyMetadata
}
