// Package zecwallet decodes the Zecwallet-Lite wallet file format: a
// single external_version-gated linear byte stream holding the wallet's
// keys, scanned-block cache, transaction table, and sync preferences.
package zecwallet

import (
	"github.com/pkg/errors"

	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zingo"
)

const maxWalletVersion = 31

// WalletOptions and ZecPriceInfo are shared verbatim with the Zingo
// wallet format; both wallets are built from the same underlying
// library and serialize these records identically.
type WalletOptions = zingo.WalletOptions
type ZecPriceInfo = zingo.ZecPriceInfo

var (
	defaultWalletOptions = zingo.DefaultWalletOptions
	readWalletOptions    = zingo.ReadWalletOptions
	defaultZecPriceInfo  = zingo.DefaultZecPriceInfo
	readZecPriceInfo     = zingo.ReadZecPriceInfo
)

// Wallet is a fully decoded Zecwallet-Lite wallet file.
type Wallet struct {
	Version      uint64
	Keys         Keys
	Blocks       []CompactBlockData
	Transactions TxMap
	ChainName    string
	Options      WalletOptions
	Birthday     uint64
	VerifiedTree []byte
	Price        ZecPriceInfo

	// OrchardWitnesses holds the raw, undecoded bytes of the trailing
	// Orchard commitment-tree bridge (present only when Version > 24).
	// Its wire format is a full incremental-Merkle-tree bridge snapshot
	// (prior bridges, current bridge, saved positions, checkpoints);
	// since it's the last field in the stream and nothing downstream of
	// migration needs to replay it, it's kept opaque rather than decoded.
	OrchardWitnesses []byte
}

// Parse decodes a Zecwallet-Lite wallet file from buf. When trace is
// true, each successful read is logged at debug level.
func Parse(buf []byte, trace bool) (*Wallet, error) {
	p := parser.New(buf, trace)
	w := &Wallet{}

	version, err := p.ReadUint64()
	if err != nil {
		return nil, parser.Context(err, "Parsing external_version")
	}
	if version > maxWalletVersion {
		return nil, errors.Errorf("unsupported zecwallet version %d", version)
	}
	w.Version = version

	if version <= 14 {
		w.Keys, err = ReadKeysOld(p, version)
	} else {
		w.Keys, err = ReadKeys(p)
	}
	if err != nil {
		return nil, parser.Context(err, "Parsing keys")
	}

	w.Blocks, err = parser.ReadVec(p, ReadCompactBlockData)
	if err != nil {
		return nil, parser.Context(err, "Parsing blocks")
	}
	if version <= 14 {
		reverseBlocks(w.Blocks)
	}

	w.Transactions, err = ReadWalletTxns(p)
	if err != nil {
		return nil, parser.Context(err, "Parsing transactions")
	}

	w.ChainName, err = p.ReadString()
	if err != nil {
		return nil, parser.Context(err, "Parsing chain_name")
	}

	if version <= 23 {
		w.Options = defaultWalletOptions()
	} else {
		w.Options, err = readWalletOptions(p)
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
			if _, err := p.ReadUint8(); err != nil {
				return nil, parser.Context(err, "Parsing sapling_tree_verified")
			}
		}
	}

	if version > 21 {
		w.VerifiedTree, err = parser.ReadOptional(p, (*parser.Parser).ReadVarBlob)
		if err != nil {
			return nil, parser.Context(err, "Parsing verified_tree")
		}
	}

	if version <= 13 {
		w.Price = defaultZecPriceInfo()
	} else {
		w.Price, err = readZecPriceInfo(p)
		if err != nil {
			return nil, parser.Context(err, "Parsing price")
		}
	}

	if version > 24 {
		w.OrchardWitnesses, err = parser.ReadOptional(p, func(p *parser.Parser) ([]byte, error) {
			return p.Rest(), nil
		})
		if err != nil {
			return nil, parser.Context(err, "Parsing orchard_witnesses")
		}
	}

	return w, nil
}

func reverseBlocks(blocks []CompactBlockData) {
	for i, j := 0, len(blocks)-1; i < j; i, j = i+1, j-1 {
		blocks[i], blocks[j] = blocks[j], blocks[i]
	}
}
