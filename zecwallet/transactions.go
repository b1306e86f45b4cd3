package zecwallet

import (
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// Utxo is a transparent output the wallet received, along with its spend
// status.
type Utxo struct {
	Address          string
	TxId             zcashtype.TxId
	OutputIndex      uint64
	Value            uint64
	Height           int32
	Script           []byte
	Spent            *zcashtype.TxId
	SpentAtHeight    *int32
	UnconfirmedSpent *SpentRecord
}

// ReadUtxo decodes one transparent output record.
func ReadUtxo(p *parser.Parser) (Utxo, error) {
	var u Utxo
	version, err := p.ReadUint64()
	if err != nil {
		return u, parser.Context(err, "Parsing version")
	}

	addrLen, err := p.ReadInt32()
	if err != nil {
		return u, parser.Context(err, "Parsing address length")
	}
	addr, err := p.ReadFixedBlob(int(addrLen))
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
	u.Script, err = parser.ReadVec(p, (*parser.Parser).ReadUint8)
	if err != nil {
		return u, parser.Context(err, "Parsing script")
	}
	u.Spent, err = parser.ReadOptional(p, zcashtype.ReadTxId)
	if err != nil {
		return u, parser.Context(err, "Parsing spent")
	}

	if version > 1 {
		u.SpentAtHeight, err = parser.ReadOptional(p, (*parser.Parser).ReadInt32)
		if err != nil {
			return u, parser.Context(err, "Parsing spent_at_height")
		}
	}
	if version > 2 {
		u.UnconfirmedSpent, err = parser.ReadOptional(p, readSpentRecord)
		if err != nil {
			return u, parser.Context(err, "Parsing unconfirmed_spent")
		}
	}
	return u, nil
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

// WalletTx is the wallet's bookkeeping for one transaction.
type WalletTx struct {
	Block       int32
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

// ReadWalletTx decodes one WalletTx record.
func ReadWalletTx(p *parser.Parser) (WalletTx, error) {
	var w WalletTx
	version, err := p.ReadUint64()
	if err != nil {
		return w, parser.Context(err, "Parsing version")
	}

	if w.Block, err = p.ReadInt32(); err != nil {
		return w, parser.Context(err, "Parsing block")
	}

	if version > 20 {
		unconfirmed, err := p.ReadUint8()
		if err != nil {
			return w, parser.Context(err, "Parsing unconfirmed")
		}
		w.Unconfirmed = unconfirmed == 1
	}

	if version >= 4 {
		if w.Datetime, err = p.ReadUint64(); err != nil {
			return w, parser.Context(err, "Parsing datetime")
		}
	}

	if w.TxId, err = zcashtype.ReadTxId(p); err != nil {
		return w, parser.Context(err, "Parsing txid")
	}

	w.SaplingNotes, err = parser.ReadVec(p, ReadSaplingNoteData)
	if err != nil {
		return w, parser.Context(err, "Parsing sapling notes")
	}
	w.Utxos, err = parser.ReadVec(p, ReadUtxo)
	if err != nil {
		return w, parser.Context(err, "Parsing utxos")
	}

	if version > 22 {
		if w.TotalOrchardValueSpent, err = p.ReadUint64(); err != nil {
			return w, parser.Context(err, "Parsing total_orchard_value_spent")
		}
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

	fullTxScanned, err := p.ReadUint8()
	if err != nil {
		return w, parser.Context(err, "Parsing full_tx_scanned")
	}
	w.FullTxScanned = fullTxScanned > 0

	if version > 4 {
		w.ZecPrice, err = parser.ReadOptional(p, (*parser.Parser).ReadFloat64)
		if err != nil {
			return w, parser.Context(err, "Parsing zec_price")
		}
	}

	if version > 5 {
		w.SaplingSpentNullifiers, err = parser.ReadVec(p, zcashtype.ReadU256)
		if err != nil {
			return w, parser.Context(err, "Parsing sapling spent nullifiers")
		}
	}

	if version > 21 {
		w.OrchardNotes, err = parser.ReadVec(p, ReadOrchardNoteData)
		if err != nil {
			return w, parser.Context(err, "Parsing orchard notes")
		}
		w.OrchardSpentNullifiers, err = parser.ReadVec(p, zcashtype.ReadU256)
		if err != nil {
			return w, parser.Context(err, "Parsing orchard spent nullifiers")
		}
	}

	return w, nil
}

// TxMap is the wallet's full transaction table, keyed by txid.
type TxMap map[zcashtype.TxId]WalletTx

// ReadWalletTxns decodes the wallet's full transaction map. Mempool
// entries present on versions at or below 20 are read and discarded: by
// the time a wallet file is migrated, in-flight mempool state is stale.
func ReadWalletTxns(p *parser.Parser) (TxMap, error) {
	version, err := p.ReadUint64()
	if err != nil {
		return nil, parser.Context(err, "Parsing version")
	}

	current, err := parser.ReadMap(p, zcashtype.ReadTxId, ReadWalletTx)
	if err != nil {
		return nil, parser.Context(err, "Parsing current")
	}

	if version <= 20 {
		if _, err := parser.ReadMap(p, zcashtype.ReadTxId, ReadWalletTx); err != nil {
			return nil, parser.Context(err, "Parsing mempool")
		}
	}

	return current, nil
}
