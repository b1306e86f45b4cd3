package tx

import (
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// SpendDescription is a fully assembled Sapling Spend Description,
// independent of the wire version it was read from.
type SpendDescription struct {
	Cv           [32]byte
	Anchor       zcashtype.U256
	Nullifier    zcashtype.U256
	Rk           [32]byte
	ZkProof      []byte // 192 bytes
	SpendAuthSig []byte // 64 bytes
}

// OutputDescription is a fully assembled Sapling Output Description.
type OutputDescription struct {
	Cv            [32]byte
	Cmu           zcashtype.U256
	EphemeralKey  [32]byte
	EncCiphertext []byte
	OutCiphertext []byte
	ZkProof       []byte // 192 bytes
}

type spendV4 struct {
	cv           [32]byte
	anchor       zcashtype.U256
	nullifier    zcashtype.U256
	rk           [32]byte
	zkproof      []byte
	spendAuthSig []byte
}

func readSpendV4(p *parser.Parser) (spendV4, error) {
	var s spendV4
	var err error
	if cv, err2 := p.ReadFixedBlob(32); err2 != nil {
		return s, parser.Context(err2, "Parsing cv")
	} else {
		copy(s.cv[:], cv)
	}
	if s.anchor, err = zcashtype.ReadU256(p); err != nil {
		return s, parser.Context(err, "Parsing anchor")
	}
	if s.nullifier, err = zcashtype.ReadU256(p); err != nil {
		return s, parser.Context(err, "Parsing nullifier")
	}
	if rk, err2 := p.ReadFixedBlob(32); err2 != nil {
		return s, parser.Context(err2, "Parsing rk")
	} else {
		copy(s.rk[:], rk)
	}
	if s.zkproof, err = p.ReadFixedBlob(zcashtype.GrothProofSize); err != nil {
		return s, parser.Context(err, "Parsing zkproof")
	}
	if s.spendAuthSig, err = p.ReadFixedBlob(64); err != nil {
		return s, parser.Context(err, "Parsing spendAuthSig")
	}
	return s, nil
}

type outputV4 struct {
	cv            [32]byte
	cmu           zcashtype.U256
	ephemeralKey  [32]byte
	encCiphertext []byte
	outCiphertext []byte
	zkproof       []byte
}

func readOutputV4(p *parser.Parser) (outputV4, error) {
	var o outputV4
	var err error
	if cv, err2 := p.ReadFixedBlob(32); err2 != nil {
		return o, parser.Context(err2, "Parsing cv")
	} else {
		copy(o.cv[:], cv)
	}
	if o.cmu, err = zcashtype.ReadU256(p); err != nil {
		return o, parser.Context(err, "Parsing cmu")
	}
	if ek, err2 := p.ReadFixedBlob(32); err2 != nil {
		return o, parser.Context(err2, "Parsing ephemeralKey")
	} else {
		copy(o.ephemeralKey[:], ek)
	}
	if o.encCiphertext, err = p.ReadFixedBlob(zcashtype.SaplingV4EncCiphertext); err != nil {
		return o, parser.Context(err, "Parsing encCiphertext")
	}
	if o.outCiphertext, err = p.ReadFixedBlob(zcashtype.SaplingV4OutCiphertext); err != nil {
		return o, parser.Context(err, "Parsing outCiphertext")
	}
	if o.zkproof, err = p.ReadFixedBlob(zcashtype.GrothProofSize); err != nil {
		return o, parser.Context(err, "Parsing zkproof")
	}
	return o, nil
}

// SaplingBundleV4 is the Sapling shielded bundle as encoded in a v4
// (Sapling) transaction: a bundle-level value balance, plus spends and
// outputs each carrying their own anchor/proof/signature.
type SaplingBundleV4 struct {
	ValueBalance zcashtype.Amount
	Spends       []SpendDescription
	Outputs      []OutputDescription
	BindingSig   []byte // not set by ReadSaplingBundleV4; ParseWalletTx stores the trailing signature in WalletTx.SaplingBindingSig
}

func (b *SaplingBundleV4) HaveActions() bool {
	return len(b.Spends) > 0 || len(b.Outputs) > 0
}

// ReadSaplingBundleV4 decodes the `amount, spends, outputs` triple. The
// caller is responsible for reading the trailing binding signature once it
// knows whether any spends or outputs were present.
func ReadSaplingBundleV4(p *parser.Parser) (SaplingBundleV4, error) {
	var b SaplingBundleV4
	var err error
	if b.ValueBalance, err = zcashtype.ReadAmount(p); err != nil {
		return b, parser.Context(err, "Parsing valueBalance")
	}
	rawSpends, err := parser.ReadVec(p, readSpendV4)
	if err != nil {
		return b, parser.Context(err, "Parsing shielded Spend")
	}
	rawOutputs, err := parser.ReadVec(p, readOutputV4)
	if err != nil {
		return b, parser.Context(err, "Parsing shielded Output")
	}
	b.Spends = make([]SpendDescription, len(rawSpends))
	for i, s := range rawSpends {
		b.Spends[i] = SpendDescription{
			Cv: s.cv, Anchor: s.anchor, Nullifier: s.nullifier, Rk: s.rk,
			ZkProof: s.zkproof, SpendAuthSig: s.spendAuthSig,
		}
	}
	b.Outputs = make([]OutputDescription, len(rawOutputs))
	for i, o := range rawOutputs {
		b.Outputs[i] = OutputDescription{
			Cv: o.cv, Cmu: o.cmu, EphemeralKey: o.ephemeralKey,
			EncCiphertext: o.encCiphertext, OutCiphertext: o.outCiphertext, ZkProof: o.zkproof,
		}
	}
	return b, nil
}

type spendV5 struct {
	cv        [32]byte
	nullifier zcashtype.U256
	rk        [32]byte
}

func readSpendV5(p *parser.Parser) (spendV5, error) {
	var s spendV5
	var err error
	if cv, err2 := p.ReadFixedBlob(32); err2 != nil {
		return s, parser.Context(err2, "Parsing cv")
	} else {
		copy(s.cv[:], cv)
	}
	if s.nullifier, err = zcashtype.ReadU256(p); err != nil {
		return s, parser.Context(err, "Parsing nullifier")
	}
	if rk, err2 := p.ReadFixedBlob(32); err2 != nil {
		return s, parser.Context(err2, "Parsing rk")
	} else {
		copy(s.rk[:], rk)
	}
	return s, nil
}

type outputV5 struct {
	cv            [32]byte
	cmu           zcashtype.U256
	ephemeralKey  [32]byte
	encCiphertext []byte
	outCiphertext []byte
}

func readOutputV5(p *parser.Parser) (outputV5, error) {
	var o outputV5
	var err error
	if cv, err2 := p.ReadFixedBlob(32); err2 != nil {
		return o, parser.Context(err2, "Parsing cv")
	} else {
		copy(o.cv[:], cv)
	}
	if o.cmu, err = zcashtype.ReadU256(p); err != nil {
		return o, parser.Context(err, "Parsing cmu")
	}
	if ek, err2 := p.ReadFixedBlob(32); err2 != nil {
		return o, parser.Context(err2, "Parsing ephemeralKey")
	} else {
		copy(o.ephemeralKey[:], ek)
	}
	if o.encCiphertext, err = p.ReadFixedBlob(zcashtype.SaplingV5EncCiphertext); err != nil {
		return o, parser.Context(err, "Parsing encCiphertext")
	}
	if o.outCiphertext, err = p.ReadFixedBlob(zcashtype.SaplingV5OutCiphertext); err != nil {
		return o, parser.Context(err, "Parsing outCiphertext")
	}
	return o, nil
}

// SaplingBundleV5 is the Sapling shielded bundle as encoded in a v5 (NU5)
// transaction: spends/outputs are split-stream encoded, with a single
// shared anchor, and proofs/signatures trail all spend/output records.
type SaplingBundleV5 struct {
	Spends       []SpendDescription
	Outputs      []OutputDescription
	ValueBalance zcashtype.Amount
	BindingSig   []byte
}

// ReadSaplingBundleV5 decodes the zip-225 split-stream Sapling bundle,
// assembling SpendDescription/OutputDescription by zipping the split
// fields back together.
func ReadSaplingBundleV5(p *parser.Parser) (SaplingBundleV5, error) {
	var b SaplingBundleV5

	sdV5s, err := parser.ReadVec(p, readSpendV5)
	if err != nil {
		return b, parser.Context(err, "Parsing spends_v5")
	}
	odV5s, err := parser.ReadVec(p, readOutputV5)
	if err != nil {
		return b, parser.Context(err, "Parsing outputs_v5")
	}

	nSpends, nOutputs := len(sdV5s), len(odV5s)
	if nSpends+nOutputs > 0 {
		if b.ValueBalance, err = zcashtype.ReadAmount(p); err != nil {
			return b, parser.Context(err, "Parsing value_balance")
		}
	}

	var anchor zcashtype.U256
	if nSpends > 0 {
		if anchor, err = zcashtype.ReadU256(p); err != nil {
			return b, parser.Context(err, "Parsing shared anchor")
		}
	}

	spendProofs, err := parser.ReadFixedArray(p, nSpends, func(p *parser.Parser) ([]byte, error) {
		return p.ReadFixedBlob(zcashtype.GrothProofSize)
	})
	if err != nil {
		return b, parser.Context(err, "Parsing spend proofs")
	}
	spendAuthSigs, err := parser.ReadFixedArray(p, nSpends, func(p *parser.Parser) ([]byte, error) {
		return p.ReadFixedBlob(64)
	})
	if err != nil {
		return b, parser.Context(err, "Parsing spend auth sigs")
	}
	outputProofs, err := parser.ReadFixedArray(p, nOutputs, func(p *parser.Parser) ([]byte, error) {
		return p.ReadFixedBlob(zcashtype.GrothProofSize)
	})
	if err != nil {
		return b, parser.Context(err, "Parsing output proofs")
	}

	if nSpends+nOutputs > 0 {
		if b.BindingSig, err = p.ReadFixedBlob(64); err != nil {
			return b, parser.Context(err, "Parsing binding_sig")
		}
	}

	b.Spends = make([]SpendDescription, nSpends)
	for i, s := range sdV5s {
		b.Spends[i] = SpendDescription{
			Cv: s.cv, Anchor: anchor, Nullifier: s.nullifier, Rk: s.rk,
			ZkProof: spendProofs[i], SpendAuthSig: spendAuthSigs[i],
		}
	}
	b.Outputs = make([]OutputDescription, nOutputs)
	for i, o := range odV5s {
		b.Outputs[i] = OutputDescription{
			Cv: o.cv, Cmu: o.cmu, EphemeralKey: o.ephemeralKey,
			EncCiphertext: o.encCiphertext, OutCiphertext: o.outCiphertext, ZkProof: outputProofs[i],
		}
	}
	return b, nil
}
