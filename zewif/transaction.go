package zewif

import "github.com/zingolabs/zewif-migrate/zcashtype"

// Position is a leaf index into a note commitment tree.
type Position uint64

// TxIn is a transparent input.
type TxIn struct {
	PrevOutpoint OutPoint
	ScriptSig    []byte
	Sequence     uint32
}

// TxOut is a transparent output.
type TxOut struct {
	Value        zcashtype.Amount
	ScriptPubKey []byte
}

// OutPoint references a previous transaction's output.
type OutPoint struct {
	TxId TxId
	Vout uint32
}

// SaplingSpendDescription is one Sapling spend, migrated from either the
// V4 or V5 bundle encoding (V4 carries a per-spend value; V5 does not).
type SaplingSpendDescription struct {
	SpendIndex   uint32
	Value        *zcashtype.Amount
	AnchorHeight *uint32
	Nullifier    zcashtype.U256
	ZkProof      []byte
}

// SaplingOutputDescription is one Sapling output.
type SaplingOutputDescription struct {
	OutputIndex    uint32
	Commitment     zcashtype.U256
	EphemeralKey   zcashtype.U256
	EncCiphertext  []byte
	Memo           []byte
	Position       Position
	Anchor         *zcashtype.U256
	Witness        *IncrementalWitness
}

// OrchardActionDescription is one Orchard action.
type OrchardActionDescription struct {
	ActionIndex   uint32
	Anchor        zcashtype.U256
	Nullifier     zcashtype.U256
	ZkProof       []byte
	Commitment    zcashtype.U256
	EphemeralKey  zcashtype.U256
	EncCiphertext []byte
	Memo          []byte
	Position      Position
	WitnessAnchor *zcashtype.U256
	Witness       *IncrementalWitness
}

// JoinSplitDescription is one Sprout JoinSplit.
type JoinSplitDescription struct {
	Anchor       zcashtype.U256
	Nullifiers   [2]zcashtype.U256
	Commitments  [2]zcashtype.U256
	ZkProof      []byte
}

// Transaction is one migrated transaction: its transparent and shielded
// components, with no reference back to the account(s) it affects —
// that link lives in each Account.RelevantTransactions set instead.
type Transaction struct {
	TxId         TxId
	RawBytes     []byte
	MinedHeight  *uint32

	Vin  []TxIn
	Vout []TxOut

	SaplingSpends  []SaplingSpendDescription
	SaplingOutputs []SaplingOutputDescription
	OrchardActions []OrchardActionDescription
	JoinSplits     []JoinSplitDescription

	Attachments []Attachment
}
