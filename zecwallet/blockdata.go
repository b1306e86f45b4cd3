package zecwallet

import (
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashd/tx"
)

// CompactBlockData is one scanned block's bookkeeping entry. Unlike
// Zingo's BlockData, the commitment tree and cached compact-block bytes
// here aren't version-gated: the reader always writes an (often empty)
// tree and always attempts the trailing ecb blob.
type CompactBlockData struct {
	Height uint64
	Ecb    []byte
}

// ReadCompactBlockData decodes one CompactBlockData record.
func ReadCompactBlockData(p *parser.Parser) (CompactBlockData, error) {
	var b CompactBlockData
	h, err := p.ReadInt32()
	if err != nil {
		return b, parser.Context(err, "Parsing height")
	}
	b.Height = uint64(uint32(h))

	if _, err := p.ReadFixedBlob(32); err != nil { // hash, discarded
		return b, parser.Context(err, "Parsing hash")
	}

	if _, err := tx.ReadIncrementalMerkleTree(p); err != nil {
		return b, parser.Context(err, "Parsing commitment tree")
	}

	if _, err := p.ReadUint64(); err != nil { // version, discarded
		return b, parser.Context(err, "Parsing version")
	}

	ecb, err := parser.ReadVec(p, (*parser.Parser).ReadUint8)
	if err != nil {
		// The original format tolerates a missing/truncated ecb here
		// rather than treating it as fatal.
		return b, nil
	}
	b.Ecb = ecb
	return b, nil
}
