package tx

import (
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// SaplingIncomingViewingKey is a Sapling IVK, opaque at this layer.
type SaplingIncomingViewingKey [32]byte

// ReadSaplingIncomingViewingKey decodes an IVK.
func ReadSaplingIncomingViewingKey(p *parser.Parser) (SaplingIncomingViewingKey, error) {
	b, err := p.ReadFixedBlob(32)
	if err != nil {
		return SaplingIncomingViewingKey{}, parser.Context(err, "Parsing incoming_viewing_key")
	}
	var k SaplingIncomingViewingKey
	copy(k[:], b)
	return k, nil
}

// SaplingWitness is an incremental Merkle authentication path at Sapling's
// fixed depth of 32, over Pedersen-hash commitments.
const SaplingTreeDepth = 32

type SaplingWitness struct {
	Tree       IncrementalMerkleTree
	FilledPath []zcashtype.U256
	Cursor     *IncrementalMerkleTree
}

// Root returns the witness's tree root, if the tree has one.
func (w SaplingWitness) Root() (zcashtype.U256, bool) {
	if w.Tree.Left == nil && w.Tree.Right == nil {
		return zcashtype.U256{}, false
	}
	if w.Tree.Left != nil {
		return *w.Tree.Left, true
	}
	return *w.Tree.Right, true
}

// ReadSaplingWitness decodes a witness snapshot plus its authentication
// path.
func ReadSaplingWitness(p *parser.Parser) (SaplingWitness, error) {
	var w SaplingWitness
	var err error
	if w.Tree, err = readIncrementalMerkleTree(p); err != nil {
		return w, parser.Context(err, "Parsing witness tree")
	}
	w.FilledPath, err = parser.ReadVec(p, zcashtype.ReadU256)
	if err != nil {
		return w, parser.Context(err, "Parsing witness filled path")
	}
	cursor, err := parser.ReadOptional(p, readIncrementalMerkleTree)
	if err != nil {
		return w, parser.Context(err, "Parsing witness cursor")
	}
	w.Cursor = cursor
	return w, nil
}

// ReadIncrementalMerkleTree decodes the left/right/parents incremental
// Merkle tree snapshot shared by every Sapling-depth tree in the zcashd,
// Zingo, and Zecwallet-Lite wallet formats.
func ReadIncrementalMerkleTree(p *parser.Parser) (IncrementalMerkleTree, error) {
	return readIncrementalMerkleTree(p)
}

func readIncrementalMerkleTree(p *parser.Parser) (IncrementalMerkleTree, error) {
	var t IncrementalMerkleTree
	left, err := parser.ReadOptional(p, zcashtype.ReadU256)
	if err != nil {
		return t, parser.Context(err, "Parsing left leaf")
	}
	t.Left = left
	right, err := parser.ReadOptional(p, zcashtype.ReadU256)
	if err != nil {
		return t, parser.Context(err, "Parsing right leaf")
	}
	t.Right = right
	parents, err := parser.ReadVec(p, func(p *parser.Parser) (*zcashtype.U256, error) {
		return parser.ReadOptional(p, zcashtype.ReadU256)
	})
	if err != nil {
		return t, parser.Context(err, "Parsing parents")
	}
	t.Parents = parents
	return t, nil
}

// SaplingNoteData records a wallet's view onto a single Sapling output: the
// viewing key that decrypted it, its nullifier once spent, and the
// sequence of witnesses recorded as the chain advanced.
type SaplingNoteData struct {
	Version             int32
	IncomingViewingKey  SaplingIncomingViewingKey
	Nullifier           *zcashtype.U256
	Witnesses           []SaplingWitness
	WitnessHeight       int32
}

// ReadSaplingNoteData decodes one SaplingNoteData record.
func ReadSaplingNoteData(p *parser.Parser) (SaplingNoteData, error) {
	var d SaplingNoteData
	var err error
	if d.Version, err = p.ReadInt32(); err != nil {
		return d, parser.Context(err, "Parsing version")
	}
	if d.IncomingViewingKey, err = ReadSaplingIncomingViewingKey(p); err != nil {
		return d, parser.Context(err, "Parsing incoming_viewing_key")
	}
	if d.Nullifier, err = parser.ReadOptional(p, zcashtype.ReadU256); err != nil {
		return d, parser.Context(err, "Parsing nullifer")
	}
	if d.Witnesses, err = parser.ReadVec(p, ReadSaplingWitness); err != nil {
		return d, parser.Context(err, "Parsing witnesses")
	}
	if d.WitnessHeight, err = p.ReadInt32(); err != nil {
		return d, parser.Context(err, "Parsing witness_height")
	}
	return d, nil
}

// SaplingOutPoint keys a wallet's SaplingNoteData table.
type SaplingOutPoint struct {
	TxId zcashtype.TxId
	Vout uint32
}

// ReadSaplingOutPoint decodes a SaplingOutPoint.
func ReadSaplingOutPoint(p *parser.Parser) (SaplingOutPoint, error) {
	var o SaplingOutPoint
	var err error
	if o.TxId, err = zcashtype.ReadTxId(p); err != nil {
		return o, parser.Context(err, "Parsing txid")
	}
	if o.Vout, err = p.ReadUint32(); err != nil {
		return o, parser.Context(err, "Parsing vout")
	}
	return o, nil
}

// JSOutPoint keys a wallet's SproutNoteData table.
type JSOutPoint struct {
	Hash     zcashtype.TxId
	JsIndex  uint64
	OutIndex uint8
}

// ReadJSOutPoint decodes a JSOutPoint.
func ReadJSOutPoint(p *parser.Parser) (JSOutPoint, error) {
	var o JSOutPoint
	var err error
	if o.Hash, err = zcashtype.ReadTxId(p); err != nil {
		return o, parser.Context(err, "Parsing hash")
	}
	if o.JsIndex, err = p.ReadUint64(); err != nil {
		return o, parser.Context(err, "Parsing js index")
	}
	b, err := p.ReadUint8()
	if err != nil {
		return o, parser.Context(err, "Parsing n")
	}
	o.OutIndex = b
	return o, nil
}

// SproutNoteData is the wallet's local bookkeeping for a Sprout note: its
// address, nullifier once spent, and whether the note is confirmed spent.
type SproutNoteData struct {
	Address   [64]byte // Sprout payment address, opaque at this layer
	Nullifier *zcashtype.U256
	Confirmed bool
}

// ReadSproutNoteData decodes one SproutNoteData record.
func ReadSproutNoteData(p *parser.Parser) (SproutNoteData, error) {
	var d SproutNoteData
	addr, err := p.ReadFixedBlob(64)
	if err != nil {
		return d, parser.Context(err, "Parsing address")
	}
	copy(d.Address[:], addr)
	if d.Nullifier, err = parser.ReadOptional(p, zcashtype.ReadU256); err != nil {
		return d, parser.Context(err, "Parsing nullifier")
	}
	if d.Confirmed, err = p.ReadBool(); err != nil {
		return d, parser.Context(err, "Parsing confirmed")
	}
	return d, nil
}
