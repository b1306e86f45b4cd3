package tx

import (
	"github.com/pkg/errors"
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// WalletTx is the fully decoded `tx` wallet-file value: a Bitcoin-shaped
// transaction, its Zcash shielded bundles, and the CMerkleTx/CWalletTx
// wallet-local metadata that zcashd appends after it.
type WalletTx struct {
	Version           Version
	ConsensusBranchID *uint32
	Vin               []TxIn
	Vout              []TxOut
	LockTime          *zcashtype.LockTime
	ExpiryHeight      *uint32
	SaplingValueBalance zcashtype.Amount
	SaplingSpends     []SpendDescription
	SaplingOutputs    []OutputDescription
	SaplingBindingSig []byte
	OrchardBundle     *OrchardBundle
	JoinSplits        *JoinSplits

	// CMerkleTx
	HashBlock    zcashtype.U256
	MerkleBranch []zcashtype.U256
	Index        int32

	// CWalletTx
	MapValue               map[string]string
	MapSproutNoteData      map[JSOutPoint]SproutNoteData
	OrderForm              [][2]string
	TimeReceivedIsTxTime   int32
	TimeReceived           int32
	FromMe                 bool
	IsSpent                bool
	SaplingNoteData        map[SaplingOutPoint]SaplingNoteData

	// RawBytes is the transaction payload before the CMerkleTx/CWalletTx
	// metadata. It's kept distinct from UnparsedData, which is whatever is
	// left *after* every known field (required to be empty for `tx` values).
	RawBytes     []byte
	UnparsedData []byte
}

// ParseWalletTx decodes a complete `tx` wallet-file value.
func ParseWalletTx(data []byte) (*WalletTx, error) {
	p := parser.New(data, false)
	wtx := &WalletTx{}

	version, err := ReadVersion(p)
	if err != nil {
		return nil, parser.Context(err, "Parsing transaction version")
	}
	wtx.Version = version

	if version.IsZip225() {
		branchID, err := p.ReadUint32()
		if err != nil {
			return nil, parser.Context(err, "Parsing consensus branch id")
		}
		wtx.ConsensusBranchID = &branchID

		lt, err := zcashtype.ReadLockTime(p)
		if err != nil {
			return nil, parser.Context(err, "Parsing transaction lock time")
		}
		wtx.LockTime = &lt

		expiry, err := p.ReadUint32()
		if err != nil {
			return nil, parser.Context(err, "Parsing transaction expiry height")
		}
		wtx.ExpiryHeight = &expiry

		if wtx.Vin, err = parser.ReadVec(p, ReadTxIn); err != nil {
			return nil, parser.Context(err, "Parsing transaction inputs")
		}
		if wtx.Vout, err = parser.ReadVec(p, ReadTxOut); err != nil {
			return nil, parser.Context(err, "Parsing transaction outputs")
		}

		bundle, err := ReadSaplingBundleV5(p)
		if err != nil {
			return nil, parser.Context(err, "Parsing Sapling bundle")
		}
		wtx.SaplingValueBalance = bundle.ValueBalance
		wtx.SaplingSpends = bundle.Spends
		wtx.SaplingOutputs = bundle.Outputs
		wtx.SaplingBindingSig = bundle.BindingSig

		orchardBundle, err := ReadOrchardBundle(p)
		if err != nil {
			return nil, parser.Context(err, "Parsing Orchard bundle")
		}
		wtx.OrchardBundle = orchardBundle
	} else {
		if wtx.Vin, err = parser.ReadVec(p, ReadTxIn); err != nil {
			return nil, parser.Context(err, "Parsing transaction inputs")
		}
		if wtx.Vout, err = parser.ReadVec(p, ReadTxOut); err != nil {
			return nil, parser.Context(err, "Parsing transaction outputs")
		}

		lt, err := zcashtype.ReadLockTime(p)
		if err != nil {
			return nil, parser.Context(err, "Parsing transaction lock time")
		}
		wtx.LockTime = lt.AsOption()

		if version.IsOverwinter() || version.IsSapling() || version.IsFuture() {
			expiry, err := p.ReadUint32()
			if err != nil {
				return nil, parser.Context(err, "Parsing transaction expiry height")
			}
			if expiry != 0 {
				wtx.ExpiryHeight = &expiry
			}
		}

		var saplingBundle SaplingBundleV4
		if version.IsSapling() || version.IsFuture() {
			saplingBundle, err = ReadSaplingBundleV4(p)
			if err != nil {
				return nil, parser.Context(err, "Parsing Sapling bundle")
			}
		}
		wtx.SaplingValueBalance = saplingBundle.ValueBalance
		wtx.SaplingSpends = saplingBundle.Spends
		wtx.SaplingOutputs = saplingBundle.Outputs

		if version.Number >= 2 {
			useGroth := version.Overwintered && version.Number >= zcashtype.SaplingTxVersion
			js, err := ReadJoinSplits(p, useGroth)
			if err != nil {
				return nil, parser.Context(err, "Parsing JoinSplits")
			}
			wtx.JoinSplits = &js
		}

		if (version.IsSapling() || version.IsFuture()) && saplingBundle.HaveActions() {
			sig, err := p.ReadFixedBlob(64)
			if err != nil {
				return nil, parser.Context(err, "Parsing Sapling bundle signature")
			}
			wtx.SaplingBindingSig = sig
		}
	}
	wtx.RawBytes = data[:p.Offset()]

	// CMerkleTx
	hashBlock, err := zcashtype.ReadU256(p)
	if err != nil {
		return nil, parser.Context(err, "Parsing hash block")
	}
	wtx.HashBlock = hashBlock
	if wtx.MerkleBranch, err = parser.ReadVec(p, zcashtype.ReadU256); err != nil {
		return nil, parser.Context(err, "Parsing merkle branch")
	}
	if wtx.Index, err = p.ReadInt32(); err != nil {
		return nil, parser.Context(err, "Parsing index")
	}

	// CWalletTx
	unused, err := parser.ReadVec(p, (*parser.Parser).ReadInt32)
	if err != nil {
		return nil, parser.Context(err, "Parsing unused")
	}
	if len(unused) != 0 {
		return nil, parser.Context(fmtErrorf("unused field in CWalletTx is not empty: %d entries", len(unused)), "Parsing CWalletTx")
	}

	if wtx.MapValue, err = parser.ReadMap(p, (*parser.Parser).ReadString, (*parser.Parser).ReadString); err != nil {
		return nil, parser.Context(err, "Parsing map value")
	}
	if wtx.MapSproutNoteData, err = parser.ReadMap(p, ReadJSOutPoint, ReadSproutNoteData); err != nil {
		return nil, parser.Context(err, "Parsing map sprout note data")
	}
	orderForm, err := parser.ReadVec(p, func(p *parser.Parser) ([2]string, error) {
		a, err := p.ReadString()
		if err != nil {
			return [2]string{}, err
		}
		b, err := p.ReadString()
		if err != nil {
			return [2]string{}, err
		}
		return [2]string{a, b}, nil
	})
	if err != nil {
		return nil, parser.Context(err, "Parsing order form")
	}
	wtx.OrderForm = orderForm

	if wtx.TimeReceivedIsTxTime, err = p.ReadInt32(); err != nil {
		return nil, parser.Context(err, "Parsing time received is tx time")
	}
	if wtx.TimeReceived, err = p.ReadInt32(); err != nil {
		return nil, parser.Context(err, "Parsing time received")
	}
	if wtx.FromMe, err = p.ReadBool(); err != nil {
		return nil, parser.Context(err, "Parsing from me")
	}
	if wtx.IsSpent, err = p.ReadBool(); err != nil {
		return nil, parser.Context(err, "Parsing is spent")
	}
	if wtx.SaplingNoteData, err = parser.ReadMap(p, ReadSaplingOutPoint, ReadSaplingNoteData); err != nil {
		return nil, parser.Context(err, "Parsing sapling note data")
	}

	wtx.UnparsedData = p.Rest()
	if len(wtx.UnparsedData) != 0 {
		return nil, parser.Context(fmtErrorf("unparsed data in CWalletTx is not empty: %d bytes", len(wtx.UnparsedData)), "Parsing CWalletTx")
	}

	return wtx, nil
}

func fmtErrorf(format string, args ...any) error {
	return errors.Errorf(format, args...)
}
