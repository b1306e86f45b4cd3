package zecwallet

import (
	"github.com/pkg/errors"

	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashd"
	"github.com/zingolabs/zewif-migrate/zcashd/tx"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// SpentRecord names the transaction and height a note or UTXO was spent
// in, whether confirmed or still pending broadcast.
type SpentRecord struct {
	TxId   zcashtype.TxId
	Height uint32
}

func readSpentRecord(p *parser.Parser) (SpentRecord, error) {
	var r SpentRecord
	var err error
	if r.TxId, err = zcashtype.ReadTxId(p); err != nil {
		return r, parser.Context(err, "Parsing txid")
	}
	if r.Height, err = p.ReadUint32(); err != nil {
		return r, parser.Context(err, "Parsing height")
	}
	return r, nil
}

// SaplingNoteData is this wallet's full view of one received Sapling
// note, including enough of the underlying note (value, rseed) to
// reconstruct it and its witness history for spend proofs.
type SaplingNoteData struct {
	ExtFVK          zcashd.SaplingExtendedFullViewingKey
	Diversifier     [11]byte
	Value           uint64
	RseedIsPreZip212 bool
	Rseed           [32]byte
	Witnesses       []tx.SaplingWitness
	WitnessTopHeight uint64
	Nullifier       zcashtype.U256
	Spent           *SpentRecord
	UnconfirmedSpent *SpentRecord
	Memo            *[]byte
	IsChange        bool
	HaveSpendingKey bool
}

// ReadSaplingNoteData decodes one SaplingNoteData record.
func ReadSaplingNoteData(p *parser.Parser) (SaplingNoteData, error) {
	var d SaplingNoteData
	version, err := p.ReadUint64()
	if err != nil {
		return d, parser.Context(err, "Parsing version")
	}

	if version <= 5 {
		if _, err := p.ReadUint64(); err != nil { // account, discarded
			return d, parser.Context(err, "Parsing account")
		}
	}

	if d.ExtFVK, err = zcashd.ReadSaplingExtendedFullViewingKey(p); err != nil {
		return d, parser.Context(err, "Parsing extfvk")
	}

	div, err := p.ReadFixedBlob(11)
	if err != nil {
		return d, parser.Context(err, "Parsing diversifier")
	}
	copy(d.Diversifier[:], div)

	if d.Value, err = p.ReadUint64(); err != nil {
		return d, parser.Context(err, "Parsing value")
	}
	if version <= 3 {
		d.RseedIsPreZip212 = true
		rb, err := p.ReadFixedBlob(32)
		if err != nil {
			return d, parser.Context(err, "Parsing rseed")
		}
		copy(d.Rseed[:], rb)
	} else {
		noteType, err := p.ReadUint8()
		if err != nil {
			return d, parser.Context(err, "Parsing rseed type")
		}
		switch noteType {
		case 1:
			d.RseedIsPreZip212 = true
		case 2:
			d.RseedIsPreZip212 = false
		default:
			return d, errors.Errorf("bad rseed note type %d", noteType)
		}
		rb, err := p.ReadFixedBlob(32)
		if err != nil {
			return d, parser.Context(err, "Parsing rseed")
		}
		copy(d.Rseed[:], rb)
	}

	d.Witnesses, err = parser.ReadVec(p, tx.ReadSaplingWitness)
	if err != nil {
		return d, parser.Context(err, "Parsing witnesses")
	}
	if version >= 20 {
		if d.WitnessTopHeight, err = p.ReadUint64(); err != nil {
			return d, parser.Context(err, "Parsing witness top height")
		}
	}

	if d.Nullifier, err = zcashtype.ReadU256(p); err != nil {
		return d, parser.Context(err, "Parsing nullifier")
	}

	if version <= 5 {
		spent, err := parser.ReadOptional(p, zcashtype.ReadTxId)
		if err != nil {
			return d, parser.Context(err, "Parsing spent")
		}
		var spentHeight *int32
		if version >= 2 {
			spentHeight, err = parser.ReadOptional(p, (*parser.Parser).ReadInt32)
			if err != nil {
				return d, parser.Context(err, "Parsing spent_at_height")
			}
		}
		if spent != nil && spentHeight != nil {
			d.Spent = &SpentRecord{TxId: *spent, Height: uint32(*spentHeight)}
		}
	} else {
		d.Spent, err = parser.ReadOptional(p, readSpentRecord)
		if err != nil {
			return d, parser.Context(err, "Parsing spent")
		}
	}

	if version > 4 {
		d.UnconfirmedSpent, err = parser.ReadOptional(p, readSpentRecord)
		if err != nil {
			return d, parser.Context(err, "Parsing unconfirmed_spent")
		}
	}

	d.Memo, err = parser.ReadOptional(p, func(p *parser.Parser) ([]byte, error) {
		return p.ReadFixedBlob(512)
	})
	if err != nil {
		return d, parser.Context(err, "Parsing memo")
	}

	isChange, err := p.ReadUint8()
	if err != nil {
		return d, parser.Context(err, "Parsing is_change")
	}
	d.IsChange = isChange > 0

	if version <= 2 {
		d.HaveSpendingKey = true
	} else {
		hsk, err := p.ReadUint8()
		if err != nil {
			return d, parser.Context(err, "Parsing have_spending_key")
		}
		d.HaveSpendingKey = hsk > 0
	}

	return d, nil
}

// OrchardNoteData is this wallet's full view of one received Orchard
// note.
type OrchardNoteData struct {
	FVK              [96]byte
	RecipientAddress [43]byte
	Value            uint64
	Rho              zcashtype.U256
	Rseed            [32]byte
	WitnessPosition  *uint64
	Spent            *SpentRecord
	UnconfirmedSpent *SpentRecord
	Memo             *[]byte
	IsChange         bool
	HaveSpendingKey  bool
}

// ReadOrchardNoteData decodes one OrchardNoteData record.
func ReadOrchardNoteData(p *parser.Parser) (OrchardNoteData, error) {
	var d OrchardNoteData
	if _, err := p.ReadUint64(); err != nil { // version, discarded
		return d, parser.Context(err, "Parsing version")
	}

	fvk, err := p.ReadFixedBlob(96)
	if err != nil {
		return d, parser.Context(err, "Parsing fvk")
	}
	copy(d.FVK[:], fvk)

	addr, err := p.ReadFixedBlob(43)
	if err != nil {
		return d, parser.Context(err, "Parsing address")
	}
	copy(d.RecipientAddress[:], addr)

	if d.Value, err = p.ReadUint64(); err != nil {
		return d, parser.Context(err, "Parsing value")
	}

	if d.Rho, err = zcashtype.ReadU256(p); err != nil {
		return d, parser.Context(err, "Parsing rho")
	}
	rseed, err := p.ReadFixedBlob(32)
	if err != nil {
		return d, parser.Context(err, "Parsing rseed")
	}
	copy(d.Rseed[:], rseed)

	d.WitnessPosition, err = parser.ReadOptional(p, (*parser.Parser).ReadUint64)
	if err != nil {
		return d, parser.Context(err, "Parsing witness_position")
	}

	d.Spent, err = parser.ReadOptional(p, readSpentRecord)
	if err != nil {
		return d, parser.Context(err, "Parsing spent")
	}
	d.UnconfirmedSpent, err = parser.ReadOptional(p, readSpentRecord)
	if err != nil {
		return d, parser.Context(err, "Parsing unconfirmed_spent")
	}

	d.Memo, err = parser.ReadOptional(p, func(p *parser.Parser) ([]byte, error) {
		return p.ReadFixedBlob(512)
	})
	if err != nil {
		return d, parser.Context(err, "Parsing memo")
	}

	isChange, err := p.ReadUint8()
	if err != nil {
		return d, parser.Context(err, "Parsing is_change")
	}
	d.IsChange = isChange > 0

	hsk, err := p.ReadUint8()
	if err != nil {
		return d, parser.Context(err, "Parsing have_spending_key")
	}
	d.HaveSpendingKey = hsk > 0

	return d, nil
}
