// Package tx decodes zcashd's multi-version transaction encoding: the
// Bitcoin-shaped transparent skeleton plus Sprout JoinSplits, Sapling
// V4/V5 shielded bundles, and the NU5 Orchard bundle, together with the
// wallet-local CMerkleTx/CWalletTx metadata that follows it in a `tx`
// wallet-file record.
package tx

import (
	"github.com/pkg/errors"
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// TxIn is a transparent transaction input.
type TxIn struct {
	PrevTxHash     zcashtype.U256
	PrevTxOutIndex uint32
	ScriptSig      []byte
	SequenceNumber uint32
}

// ReadTxIn decodes a transparent input.
func ReadTxIn(p *parser.Parser) (TxIn, error) {
	var in TxIn
	var err error
	if in.PrevTxHash, err = zcashtype.ReadU256(p); err != nil {
		return in, parser.Context(err, "Parsing PrevTxHash")
	}
	if in.PrevTxOutIndex, err = p.ReadUint32(); err != nil {
		return in, parser.Context(err, "Parsing PrevTxOutIndex")
	}
	if in.ScriptSig, err = p.ReadVarBlob(); err != nil {
		return in, parser.Context(err, "Parsing ScriptSig")
	}
	if in.SequenceNumber, err = p.ReadUint32(); err != nil {
		return in, parser.Context(err, "Parsing SequenceNumber")
	}
	return in, nil
}

// TxOut is a transparent transaction output.
type TxOut struct {
	Value  uint64
	Script []byte
}

// ReadTxOut decodes a transparent output.
func ReadTxOut(p *parser.Parser) (TxOut, error) {
	var out TxOut
	var err error
	if out.Value, err = p.ReadUint64(); err != nil {
		return out, parser.Context(err, "Parsing txOut value")
	}
	if out.Script, err = p.ReadVarBlob(); err != nil {
		return out, parser.Context(err, "Parsing txOut script")
	}
	return out, nil
}

// VersionClass classifies a transaction by header + version-group id.
type VersionClass int

const (
	PreOverwinter VersionClass = iota
	OverwinterV3
	SaplingV4Class
	Zip225V5
	Future
)

// Version carries the decoded (overwintered, group, number) tuple.
type Version struct {
	Overwintered    bool
	Number          uint32
	VersionGroupID  zcashtype.IntID
	Class           VersionClass
}

// ReadVersion decodes the 4-byte header and, if overwintered, the version
// group id, classifying the combination into its version class.
func ReadVersion(p *parser.Parser) (Version, error) {
	header, err := p.ReadUint32()
	if err != nil {
		return Version{}, parser.Context(err, "Parsing transaction header")
	}
	v := Version{
		Overwintered: (header >> 31) == 1,
		Number:       header & 0x7fffffff,
	}

	if v.Overwintered {
		groupID, err := zcashtype.ReadIntID(p)
		if err != nil {
			return Version{}, parser.Context(err, "Parsing version group id")
		}
		v.VersionGroupID = groupID
	}

	switch {
	case !v.Overwintered && v.Number < zcashtype.OverwinterTxVersion:
		v.Class = PreOverwinter
	case v.Overwintered && v.VersionGroupID == zcashtype.OverwinterVersionGroupID && v.Number == 3:
		v.Class = OverwinterV3
	case v.Overwintered && v.VersionGroupID == zcashtype.SaplingVersionGroupID && v.Number == zcashtype.SaplingTxVersion:
		v.Class = SaplingV4Class
	case v.Overwintered && v.VersionGroupID == zcashtype.Zip225VersionGroupID && v.Number == zcashtype.Zip225TxVersion:
		v.Class = Zip225V5
	case v.Overwintered && v.VersionGroupID == zcashtype.ZFutureVersionGroupID && v.Number == zcashtype.ZFutureTxVersion:
		v.Class = Future
	default:
		return Version{}, errors.Errorf(
			"unsupported (overwintered=%v, group=0x%08x, number=%d) combination",
			v.Overwintered, uint32(v.VersionGroupID), v.Number)
	}
	return v, nil
}

func (v Version) IsOverwinter() bool { return v.Class == OverwinterV3 }
func (v Version) IsSapling() bool    { return v.Class == SaplingV4Class }
func (v Version) IsZip225() bool     { return v.Class == Zip225V5 }
func (v Version) IsFuture() bool     { return v.Class == Future }
