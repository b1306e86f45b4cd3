package zcashd

import (
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// NetworkInfo is the `networkinfo` record: a fixed "zcash" tag alongside
// the network identifier string the wallet was created on.
type NetworkInfo struct {
	ZcashTag string
	Ident    string
	Network  zcashtype.Network
}

// ReadNetworkInfo decodes a `networkinfo` value.
func ReadNetworkInfo(p *parser.Parser) (NetworkInfo, error) {
	var n NetworkInfo
	var err error
	if n.ZcashTag, err = p.ReadString(); err != nil {
		return n, parser.Context(err, "Parsing zcash tag")
	}
	if n.Ident, err = p.ReadString(); err != nil {
		return n, parser.Context(err, "Parsing network identifier")
	}
	net, err := zcashtype.ParseNetwork(n.Ident)
	if err != nil {
		return n, parser.Context(err, "Parsing network identifier")
	}
	n.Network = net
	return n, nil
}

// BlockLocator is a condensed chain-tip descriptor: a list of block
// hashes walking back from the wallet's last-seen tip.
type BlockLocator struct {
	Hashes []zcashtype.U256
}

// ReadBlockLocator decodes a `bestblock`/`bestblock_nomerkle` value.
func ReadBlockLocator(p *parser.Parser) (BlockLocator, error) {
	hashes, err := parser.ReadVec(p, zcashtype.ReadU256)
	if err != nil {
		return BlockLocator{}, parser.Context(err, "Parsing block locator hashes")
	}
	return BlockLocator{Hashes: hashes}, nil
}
