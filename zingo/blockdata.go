package zingo

import (
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashd/tx"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// BlockData is one scanned block's bookkeeping entry: its height, hash,
// and the lightwalletd-compact-block bytes the wallet cached for it
// (present only from serialization version 12 on).
type BlockData struct {
	Height uint64
	Hash   zcashtype.U256
	Tree   tx.IncrementalMerkleTree
	Ecb    []byte
}

// ReadBlockData decodes one BlockData record. The hash is stored reversed
// relative to its usual display order, matching zcashd's compact block
// hash convention.
func ReadBlockData(p *parser.Parser) (BlockData, error) {
	var b BlockData
	h, err := p.ReadInt32()
	if err != nil {
		return b, parser.Context(err, "Parsing height")
	}
	b.Height = uint64(uint32(h))

	hash, err := zcashtype.ReadU256(p)
	if err != nil {
		return b, parser.Context(err, "Parsing hash")
	}
	reverse256(&hash)
	b.Hash = hash

	if b.Tree, err = tx.ReadIncrementalMerkleTree(p); err != nil {
		return b, parser.Context(err, "Parsing commitment tree")
	}

	version, err := p.ReadUint64()
	if err != nil {
		return b, parser.Context(err, "Parsing version")
	}
	if version > 11 {
		if b.Ecb, err = p.ReadVarBlob(); err != nil {
			return b, parser.Context(err, "Parsing ecb")
		}
	}
	return b, nil
}

func reverse256(h *zcashtype.U256) {
	for i, j := 0, len(h)-1; i < j; i, j = i+1, j-1 {
		h[i], h[j] = h[j], h[i]
	}
}
