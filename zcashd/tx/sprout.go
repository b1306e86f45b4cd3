package tx

import (
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// SproutProof is either the legacy PHGR13 proof or a Groth16 proof,
// selected by the `use_groth` parameter threaded down from the enclosing
// transaction's version.
type SproutProof struct {
	Groth bool
	Bytes []byte // 264 bytes (PHGR13) or 192 (Groth16)
}

// PHGRProofSize is the legacy Sprout proof size: 8 curve-point components
// of 33 bytes apiece.
const PHGRProofSize = 8 * 33

// ReadSproutProof decodes a PHGR13 or Groth16 proof depending on useGroth.
func ReadSproutProof(p *parser.Parser, useGroth bool) (SproutProof, error) {
	size := PHGRProofSize
	if useGroth {
		size = zcashtype.GrothProofSize
	}
	b, err := p.ReadFixedBlob(size)
	if err != nil {
		return SproutProof{}, parser.Context(err, "Parsing zkproof")
	}
	return SproutProof{Groth: useGroth, Bytes: b}, nil
}

// JoinSplitDescription is a single Sprout JoinSplit description.
type JoinSplitDescription struct {
	VpubOld        zcashtype.Amount
	VpubNew        zcashtype.Amount
	Anchor         zcashtype.U256
	Nullifiers     [2]zcashtype.U256
	Commitments    [2]zcashtype.U256
	EphemeralKey   zcashtype.U256
	RandomSeed     zcashtype.U256
	Macs           [2]zcashtype.U256
	ZkProof        SproutProof
	Ciphertexts    [2][]byte // 601 bytes each
}

// ReadJoinSplitDescription decodes one JoinSplit description.
func ReadJoinSplitDescription(p *parser.Parser, useGroth bool) (JoinSplitDescription, error) {
	var d JoinSplitDescription
	var err error
	if d.VpubOld, err = readAmountPlain(p); err != nil {
		return d, parser.Context(err, "Parsing vpub_old")
	}
	if d.VpubNew, err = readAmountPlain(p); err != nil {
		return d, parser.Context(err, "Parsing vpub_new")
	}
	if d.Anchor, err = zcashtype.ReadU256(p); err != nil {
		return d, parser.Context(err, "Parsing anchor")
	}
	for i := 0; i < 2; i++ {
		if d.Nullifiers[i], err = zcashtype.ReadU256(p); err != nil {
			return d, parser.Context(err, "Parsing a nullifier")
		}
	}
	for i := 0; i < 2; i++ {
		if d.Commitments[i], err = zcashtype.ReadU256(p); err != nil {
			return d, parser.Context(err, "Parsing a commitment")
		}
	}
	if d.EphemeralKey, err = zcashtype.ReadU256(p); err != nil {
		return d, parser.Context(err, "Parsing ephemeral_key")
	}
	if d.RandomSeed, err = zcashtype.ReadU256(p); err != nil {
		return d, parser.Context(err, "Parsing random_seed")
	}
	for i := 0; i < 2; i++ {
		if d.Macs[i], err = zcashtype.ReadU256(p); err != nil {
			return d, parser.Context(err, "Parsing a mac")
		}
	}
	if d.ZkProof, err = ReadSproutProof(p, useGroth); err != nil {
		return d, parser.Context(err, "Parsing zkproof")
	}
	for i := 0; i < 2; i++ {
		if d.Ciphertexts[i], err = p.ReadFixedBlob(601); err != nil {
			return d, parser.Context(err, "Parsing an encCiphertext")
		}
	}
	return d, nil
}

// readAmountPlain reads an unsigned 64-bit vpub amount (vpub_old/vpub_new
// are always non-negative, unlike the signed-range Amount).
func readAmountPlain(p *parser.Parser) (zcashtype.Amount, error) {
	v, err := p.ReadUint64()
	if err != nil {
		return 0, err
	}
	return zcashtype.Amount(v), nil
}

// JoinSplits is the full JoinSplits section of a transaction: a list of
// descriptions plus, when non-empty, the Ed25519 verification key and
// signature that authorize them.
type JoinSplits struct {
	Descriptions    []JoinSplitDescription
	PubKey          []byte // 32 bytes, joinSplitPubKey
	Sig             []byte // 64 bytes, joinSplitSig
}

// ReadJoinSplits decodes the JoinSplits section, parameterised by
// use_groth.
func ReadJoinSplits(p *parser.Parser, useGroth bool) (JoinSplits, error) {
	var js JoinSplits
	descs, err := parser.ReadVec(p, func(p *parser.Parser) (JoinSplitDescription, error) {
		return ReadJoinSplitDescription(p, useGroth)
	})
	if err != nil {
		return js, parser.Context(err, "Parsing JoinSplit descriptions")
	}
	js.Descriptions = descs
	if len(descs) > 0 {
		if js.PubKey, err = p.ReadFixedBlob(32); err != nil {
			return js, parser.Context(err, "Parsing joinSplitPubKey")
		}
		if js.Sig, err = p.ReadFixedBlob(64); err != nil {
			return js, parser.Context(err, "Parsing joinSplitSig")
		}
	}
	return js, nil
}
