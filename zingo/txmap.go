package zingo

import (
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashd/tx"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// Utxo is a transparent output the wallet received, along with its spend
// status.
type Utxo struct {
	Address            string
	TxId               zcashtype.TxId
	OutputIndex        uint64
	Script             []byte
	Value              uint64
	Height             int32
	SpentAtHeight      *int32
	Spent              *zcashtype.TxId
	UnconfirmedSpent   *UnconfirmedSpend
}

// UnconfirmedSpend records a not-yet-mined spend of a note or UTXO.
type UnconfirmedSpend struct {
	TxId   zcashtype.TxId
	Height uint32
}

// ReadUtxo decodes one transparent output record.
func ReadUtxo(p *parser.Parser) (Utxo, error) {
	var u Utxo
	if _, err := p.ReadUint64(); err != nil { // version
		return u, parser.Context(err, "Parsing version")
	}
	addr, err := p.ReadVarBlob()
	if err != nil {
		return u, parser.Context(err, "Parsing address")
	}
	u.Address = string(addr)

	if u.TxId, err = zcashtype.ReadTxId(p); err != nil {
		return u, parser.Context(err, "Parsing txid")
	}
	if u.OutputIndex, err = p.ReadUint64(); err != nil {
		return u, parser.Context(err, "Parsing output_index")
	}
	if u.Value, err = p.ReadUint64(); err != nil {
		return u, parser.Context(err, "Parsing value")
	}
	if u.Height, err = p.ReadInt32(); err != nil {
		return u, parser.Context(err, "Parsing height")
	}
	if u.Script, err = parser.ReadVec(p, (*parser.Parser).ReadUint8); err != nil {
		return u, parser.Context(err, "Parsing script")
	}
	u.Spent, err = parser.ReadOptional(p, zcashtype.ReadTxId)
	if err != nil {
		return u, parser.Context(err, "Parsing spent")
	}
	spentHeight, err := parser.ReadOptional(p, (*parser.Parser).ReadInt32)
	if err != nil {
		return u, parser.Context(err, "Parsing spent_at_height")
	}
	u.SpentAtHeight = spentHeight
	unconfirmed, err := parser.ReadOptional(p, readUnconfirmedSpend)
	if err != nil {
		return u, parser.Context(err, "Parsing unconfirmed_spent")
	}
	u.UnconfirmedSpent = unconfirmed
	return u, nil
}

func readUnconfirmedSpend(p *parser.Parser) (UnconfirmedSpend, error) {
	var s UnconfirmedSpend
	var err error
	if s.TxId, err = zcashtype.ReadTxId(p); err != nil {
		return s, parser.Context(err, "Parsing txid")
	}
	if s.Height, err = p.ReadUint32(); err != nil {
		return s, parser.Context(err, "Parsing height")
	}
	return s, nil
}

// OutgoingTxMetadata is one plaintext record of a recipient this wallet
// sent funds to, kept for the sender's own records.
type OutgoingTxMetadata struct {
	Address string
	Value   uint64
	Memo    [512]byte
}

// ReadOutgoingTxMetadata decodes one outgoing-send record.
func ReadOutgoingTxMetadata(p *parser.Parser) (OutgoingTxMetadata, error) {
	var m OutgoingTxMetadata
	addr, err := p.ReadVarBlob()
	if err != nil {
		return m, parser.Context(err, "Parsing address")
	}
	m.Address = string(addr)
	if m.Value, err = p.ReadUint64(); err != nil {
		return m, parser.Context(err, "Parsing value")
	}
	memo, err := p.ReadFixedBlob(512)
	if err != nil {
		return m, parser.Context(err, "Parsing memo")
	}
	copy(m.Memo[:], memo)
	return m, nil
}

// WalletTx is the wallet's bookkeeping for one transaction: what it spent
// and received, summed by protocol, plus outgoing-send metadata kept for
// selective disclosure.
type WalletTx struct {
	Block       uint32
	Unconfirmed bool
	Datetime    uint64
	TxId        zcashtype.TxId

	SaplingNotes []SaplingNoteData
	OrchardNotes []OrchardNoteData
	Utxos        []Utxo

	TotalOrchardValueSpent     uint64
	TotalSaplingValueSpent     uint64
	TotalTransparentValueSpent uint64

	OutgoingMetadata []OutgoingTxMetadata
	FullTxScanned    bool
	ZecPrice         *float64

	SaplingSpentNullifiers []zcashtype.U256
	OrchardSpentNullifiers []zcashtype.U256
}

// SaplingNoteData is this wallet's view of a single Sapling note it
// received, including its witness history. The Zingo-side note payload
// (diversifier, value, rseed) is reconstructed on demand from the chain
// rather than persisted by itself, so only the wallet-owned bookkeeping —
// nullifier, witnesses, spend records and the change/spending-key flags, a
// subset of what SaplingNoteData in the Zecwallet-Lite format keeps — is
// decoded here.
type SaplingNoteData struct {
	Nullifier        zcashtype.U256
	Witnesses        []tx.SaplingWitness
	Spent            *UnconfirmedSpend
	UnconfirmedSpent *UnconfirmedSpend
	IsChange         bool
	HaveSpendingKey  bool
}

// OrchardNoteData is this wallet's view of a single Orchard note.
type OrchardNoteData struct {
	Nullifier        zcashtype.U256
	WitnessPosition  *uint64
	Spent            *UnconfirmedSpend
	UnconfirmedSpent *UnconfirmedSpend
	IsChange         bool
	HaveSpendingKey  bool
}

// ReadWalletTx decodes one WalletTx record. This is a pragmatic
// reconstruction of zingolib's TxMap entry format (not retrieved in full
// from the corpus): it follows the same field grouping and per-protocol
// value-spent bookkeeping as the Zecwallet-Lite WalletTx::read function,
// which zingolib's format is a near-identical successor to.
func ReadWalletTx(p *parser.Parser) (WalletTx, error) {
	var w WalletTx
	var err error
	if w.Block, err = p.ReadUint32(); err != nil {
		return w, parser.Context(err, "Parsing block")
	}
	if w.Unconfirmed, err = p.ReadBool(); err != nil {
		return w, parser.Context(err, "Parsing unconfirmed")
	}
	if w.Datetime, err = p.ReadUint64(); err != nil {
		return w, parser.Context(err, "Parsing datetime")
	}
	if w.TxId, err = zcashtype.ReadTxId(p); err != nil {
		return w, parser.Context(err, "Parsing txid")
	}

	w.SaplingNotes, err = parser.ReadVec(p, readSaplingNoteData)
	if err != nil {
		return w, parser.Context(err, "Parsing sapling notes")
	}
	w.Utxos, err = parser.ReadVec(p, ReadUtxo)
	if err != nil {
		return w, parser.Context(err, "Parsing utxos")
	}

	if w.TotalOrchardValueSpent, err = p.ReadUint64(); err != nil {
		return w, parser.Context(err, "Parsing total_orchard_value_spent")
	}
	if w.TotalSaplingValueSpent, err = p.ReadUint64(); err != nil {
		return w, parser.Context(err, "Parsing total_sapling_value_spent")
	}
	if w.TotalTransparentValueSpent, err = p.ReadUint64(); err != nil {
		return w, parser.Context(err, "Parsing total_transparent_value_spent")
	}

	w.OutgoingMetadata, err = parser.ReadVec(p, ReadOutgoingTxMetadata)
	if err != nil {
		return w, parser.Context(err, "Parsing outgoing_metadata")
	}
	if w.FullTxScanned, err = p.ReadBool(); err != nil {
		return w, parser.Context(err, "Parsing full_tx_scanned")
	}

	w.ZecPrice, err = parser.ReadOptional(p, (*parser.Parser).ReadFloat64)
	if err != nil {
		return w, parser.Context(err, "Parsing zec_price")
	}

	w.SaplingSpentNullifiers, err = parser.ReadVec(p, zcashtype.ReadU256)
	if err != nil {
		return w, parser.Context(err, "Parsing sapling spent nullifiers")
	}

	w.OrchardNotes, err = parser.ReadVec(p, readOrchardNoteData)
	if err != nil {
		return w, parser.Context(err, "Parsing orchard notes")
	}
	w.OrchardSpentNullifiers, err = parser.ReadVec(p, zcashtype.ReadU256)
	if err != nil {
		return w, parser.Context(err, "Parsing orchard spent nullifiers")
	}

	return w, nil
}

func readSaplingNoteData(p *parser.Parser) (SaplingNoteData, error) {
	var d SaplingNoteData
	var err error
	if d.Nullifier, err = zcashtype.ReadU256(p); err != nil {
		return d, parser.Context(err, "Parsing nullifier")
	}
	d.Witnesses, err = parser.ReadVec(p, tx.ReadSaplingWitness)
	if err != nil {
		return d, parser.Context(err, "Parsing witnesses")
	}
	d.Spent, err = parser.ReadOptional(p, readUnconfirmedSpend)
	if err != nil {
		return d, parser.Context(err, "Parsing spent")
	}
	d.UnconfirmedSpent, err = parser.ReadOptional(p, readUnconfirmedSpend)
	if err != nil {
		return d, parser.Context(err, "Parsing unconfirmed_spent")
	}
	if d.IsChange, err = p.ReadBool(); err != nil {
		return d, parser.Context(err, "Parsing is_change")
	}
	if d.HaveSpendingKey, err = p.ReadBool(); err != nil {
		return d, parser.Context(err, "Parsing have_spending_key")
	}
	return d, nil
}

func readOrchardNoteData(p *parser.Parser) (OrchardNoteData, error) {
	var d OrchardNoteData
	var err error
	if d.Nullifier, err = zcashtype.ReadU256(p); err != nil {
		return d, parser.Context(err, "Parsing nullifier")
	}
	d.WitnessPosition, err = parser.ReadOptional(p, (*parser.Parser).ReadUint64)
	if err != nil {
		return d, parser.Context(err, "Parsing witness_position")
	}
	d.Spent, err = parser.ReadOptional(p, readUnconfirmedSpend)
	if err != nil {
		return d, parser.Context(err, "Parsing spent")
	}
	d.UnconfirmedSpent, err = parser.ReadOptional(p, readUnconfirmedSpend)
	if err != nil {
		return d, parser.Context(err, "Parsing unconfirmed_spent")
	}
	if d.IsChange, err = p.ReadBool(); err != nil {
		return d, parser.Context(err, "Parsing is_change")
	}
	if d.HaveSpendingKey, err = p.ReadBool(); err != nil {
		return d, parser.Context(err, "Parsing have_spending_key")
	}
	return d, nil
}

// TxMap is the wallet's full transaction table, keyed by txid.
type TxMap map[zcashtype.TxId]WalletTx

// ReadTxMap decodes a CompactSize-prefixed sequence of (txid, WalletTx)
// pairs into a TxMap, tolerating duplicate keys by last-write-wins
// insertion.
func ReadTxMap(p *parser.Parser) (TxMap, error) {
	return parser.ReadMap(p, zcashtype.ReadTxId, ReadWalletTx)
}
