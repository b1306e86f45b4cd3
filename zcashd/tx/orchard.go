package tx

import (
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// OrchardAction is a single Orchard action description (spend+output
// combined), as carried in the NU5 Orchard bundle.
type OrchardAction struct {
	CvNet           [32]byte
	Nullifier       zcashtype.U256
	Rk              [32]byte
	Cmx             zcashtype.U256
	EncryptedNote   []byte
	SpendAuthSig    []byte // filled in once the trailing sig vector is read
}

func readOrchardActionWithoutAuth(p *parser.Parser) (OrchardAction, error) {
	var a OrchardAction
	var err error
	if cv, err2 := p.ReadFixedBlob(32); err2 != nil {
		return a, parser.Context(err2, "Parsing cv_net")
	} else {
		copy(a.CvNet[:], cv)
	}
	if a.Nullifier, err = zcashtype.ReadU256(p); err != nil {
		return a, parser.Context(err, "Parsing nf_old")
	}
	if rk, err2 := p.ReadFixedBlob(32); err2 != nil {
		return a, parser.Context(err2, "Parsing rk")
	} else {
		copy(a.Rk[:], rk)
	}
	if a.Cmx, err = zcashtype.ReadU256(p); err != nil {
		return a, parser.Context(err, "Parsing cmx")
	}
	// encrypted_note: epk_bytes(32) || enc_ciphertext(580) || out_ciphertext(80)
	if a.EncryptedNote, err = p.ReadFixedBlob(32 + 580 + 80); err != nil {
		return a, parser.Context(err, "Parsing encrypted_note")
	}
	return a, nil
}

// OrchardBundle is None (nil) when the transaction carries no Orchard
// actions: an empty actions_without_auth vector means no bundle at all.
type OrchardBundle struct {
	Actions      []OrchardAction
	SpendsEnabled bool
	OutputsEnabled bool
	ValueBalance zcashtype.Amount
	Anchor       zcashtype.U256
	Proof        []byte
	BindingSig   []byte
}

// ReadOrchardBundle decodes the NU5 Orchard bundle, returning nil when
// there are no actions.
func ReadOrchardBundle(p *parser.Parser) (*OrchardBundle, error) {
	actions, err := parser.ReadVec(p, readOrchardActionWithoutAuth)
	if err != nil {
		return nil, parser.Context(err, "Parsing actions_without_auth")
	}
	if len(actions) == 0 {
		return nil, nil
	}

	flags, err := p.ReadUint8()
	if err != nil {
		return nil, parser.Context(err, "Parsing flags")
	}

	b := &OrchardBundle{
		Actions:        actions,
		SpendsEnabled:  flags&0x01 != 0,
		OutputsEnabled: flags&0x02 != 0,
	}

	if b.ValueBalance, err = zcashtype.ReadAmount(p); err != nil {
		return nil, parser.Context(err, "Parsing value_balance")
	}
	if b.Anchor, err = zcashtype.ReadU256(p); err != nil {
		return nil, parser.Context(err, "Parsing anchor")
	}
	if b.Proof, err = p.ReadVarBlob(); err != nil {
		return nil, parser.Context(err, "Parsing proof")
	}

	for i := range b.Actions {
		sig, err := p.ReadFixedBlob(64)
		if err != nil {
			return nil, parser.Context(err, "Parsing spend_auth_sig")
		}
		b.Actions[i].SpendAuthSig = sig
	}

	if b.BindingSig, err = p.ReadFixedBlob(64); err != nil {
		return nil, parser.Context(err, "Parsing binding_sig")
	}

	return b, nil
}
