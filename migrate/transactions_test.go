package migrate

import (
	"testing"

	"github.com/zingolabs/zewif-migrate/zcashd/tx"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

func TestConvertTransactionTransparentOnly(t *testing.T) {
	wtx := &tx.WalletTx{
		Version: tx.Version{Class: tx.PreOverwinter},
		Vin: []tx.TxIn{
			{PrevTxHash: zcashtype.U256{1}, PrevTxOutIndex: 2, ScriptSig: []byte{0x51}, SequenceNumber: 0xffffffff},
		},
		Vout: []tx.TxOut{
			{Value: 5000, Script: []byte{0x76, 0xa9}},
		},
		RawBytes: []byte{0xde, 0xad, 0xbe, 0xef},
	}

	var txid zcashtype.TxId
	txid[0] = 9

	got, err := convertTransaction(txid, wtx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TxId != txid {
		t.Fatalf("TxId mismatch: got %v, want %v", got.TxId, txid)
	}
	if len(got.Vin) != 1 || got.Vin[0].PrevOutpoint.Vout != 2 {
		t.Fatalf("unexpected Vin: %+v", got.Vin)
	}
	if len(got.Vout) != 1 || got.Vout[0].Value != 5000 {
		t.Fatalf("unexpected Vout: %+v", got.Vout)
	}
	if len(got.RawBytes) != 4 {
		t.Fatalf("unexpected RawBytes length: %d", len(got.RawBytes))
	}
}

func TestConvertTransactionMinimal(t *testing.T) {
	wtx := &tx.WalletTx{Version: tx.Version{Class: tx.PreOverwinter}}
	var txid zcashtype.TxId
	txid[0] = 1

	zt, err := convertTransaction(txid, wtx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if zt.TxId != txid {
		t.Fatalf("unexpected txid: %v", zt.TxId)
	}
}
