package zcashd

import "github.com/zingolabs/zewif-migrate/parser"

// Address is the encoded address string zcashd uses as the key for its
// `name`/`purpose` address-book records (a t-, z-, or u-address exactly
// as zcashd's EncodeDestination renders it).
type Address string

// ReadAddress decodes an address-book key's address string.
func ReadAddress(p *parser.Parser) (Address, error) {
	s, err := p.ReadString()
	if err != nil {
		return "", parser.Context(err, "Parsing address")
	}
	return Address(s), nil
}
