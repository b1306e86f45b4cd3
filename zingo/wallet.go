// Package zingo decodes the Zingo wallet file format: a single
// external_version-gated linear byte stream holding a wallet's key
// capabilities, scanned-block cache, transaction table, and sync
// preferences.
package zingo

import (
	"github.com/pkg/errors"

	"github.com/zingolabs/zewif-migrate/parser"
)

const maxWalletVersion = 31

// Wallet is a fully decoded Zingo wallet file.
type Wallet struct {
	Version      uint64
	Capability   WalletCapability
	Blocks       []BlockData
	Transactions TxMap
	ChainName    string
	Options      WalletOptions
	Birthday     uint64
	VerifiedTree []byte
	Price        ZecPriceInfo
	SeedBytes    []byte
	AccountIndex uint32
}

// Parse decodes a Zingo wallet file from buf. When trace is true, each
// top-level field read is logged at debug level.
func Parse(buf []byte, trace bool) (*Wallet, error) {
	p := parser.New(buf, trace)
	w := &Wallet{}

	version, err := p.ReadUint64()
	if err != nil {
		return nil, parser.Context(err, "Parsing external_version")
	}
	if version > maxWalletVersion {
		return nil, errors.Errorf("unsupported zingo wallet version %d", version)
	}
	w.Version = version

	w.Capability, err = ReadWalletCapability(p)
	if err != nil {
		return nil, parser.Context(err, "Parsing wallet_capability")
	}

	w.Blocks, err = parser.ReadVec(p, ReadBlockData)
	if err != nil {
		return nil, parser.Context(err, "Parsing blocks")
	}
	if version <= 14 {
		reverseBlocks(w.Blocks)
	}

	w.Transactions, err = ReadTxMap(p)
	if err != nil {
		return nil, parser.Context(err, "Parsing transactions")
	}

	w.ChainName, err = p.ReadString()
	if err != nil {
		return nil, parser.Context(err, "Parsing chain_name")
	}

	if version <= 23 {
		w.Options = DefaultWalletOptions()
	} else {
		w.Options, err = ReadWalletOptions(p)
		if err != nil {
			return nil, parser.Context(err, "Parsing wallet_options")
		}
	}

	w.Birthday, err = p.ReadUint64()
	if err != nil {
		return nil, parser.Context(err, "Parsing birthday")
	}

	if version <= 22 {
		if version > 12 {
			if _, err := p.ReadBool(); err != nil {
				return nil, parser.Context(err, "Parsing sapling_tree_verified")
			}
		}
		// versions <= 12 are assumed verified without a flag on the wire.
	}

	if version > 21 {
		w.VerifiedTree, err = parser.ReadOptional(p, (*parser.Parser).ReadVarBlob)
		if err != nil {
			return nil, parser.Context(err, "Parsing verified_tree")
		}
	}

	if version <= 13 {
		w.Price = DefaultZecPriceInfo()
	} else {
		w.Price, err = ReadZecPriceInfo(p)
		if err != nil {
			return nil, parser.Context(err, "Parsing price")
		}
	}

	if version == 25 {
		if _, err := parser.ReadVec(p, readOrchardAnchorHeightPair); err != nil {
			return nil, parser.Context(err, "Parsing orchard_anchor_height_pairs")
		}
	}

	w.SeedBytes, err = p.ReadVarBlob()
	if err != nil {
		return nil, parser.Context(err, "Parsing seed_bytes")
	}

	if version >= 28 && len(w.SeedBytes) > 0 {
		w.AccountIndex, err = p.ReadUint32()
		if err != nil {
			return nil, parser.Context(err, "Parsing account_index")
		}
	}

	return w, nil
}

func reverseBlocks(blocks []BlockData) {
	for i, j := 0, len(blocks)-1; i < j; i, j = i+1, j-1 {
		blocks[i], blocks[j] = blocks[j], blocks[i]
	}
}

type orchardAnchorHeightPair struct {
	Anchor [32]byte
	Height uint32
}

func readOrchardAnchorHeightPair(p *parser.Parser) (orchardAnchorHeightPair, error) {
	var pair orchardAnchorHeightPair
	b, err := p.ReadFixedBlob(32)
	if err != nil {
		return pair, parser.Context(err, "Parsing anchor")
	}
	copy(pair.Anchor[:], b)
	if pair.Height, err = p.ReadUint32(); err != nil {
		return pair, parser.Context(err, "Parsing height")
	}
	return pair, nil
}
