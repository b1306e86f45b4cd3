package tx

import "testing"

func TestParseWalletTx_PreOverwinterEmpty(t *testing.T) {
	var buf []byte
	buf = append(buf, le32b(2)...) // version header: not overwintered, number=2

	// CTransaction
	buf = append(buf, 0x00) // vin: empty
	buf = append(buf, 0x00) // vout: empty
	buf = append(buf, le32b(0)...) // lock time = 0 -> AsOption() nil
	buf = append(buf, 0x00)        // JoinSplit descriptions: empty (number>=2)

	// CMerkleTx
	buf = append(buf, make([]byte, 32)...) // hashBlock
	buf = append(buf, 0x00)                // merkleBranch: empty
	buf = append(buf, le32b(0)...)         // index

	// CWalletTx
	buf = append(buf, 0x00)         // unused: empty
	buf = append(buf, 0x00)         // mapValue: empty
	buf = append(buf, 0x00)         // mapSproutNoteData: empty
	buf = append(buf, 0x00)         // orderForm: empty
	buf = append(buf, le32b(0)...) // timeReceivedIsTxTime
	buf = append(buf, le32b(0)...) // timeReceived
	buf = append(buf, 0x00)         // fromMe
	buf = append(buf, 0x00)         // isSpent
	buf = append(buf, 0x00)         // saplingNoteData: empty

	wtx, err := ParseWalletTx(buf)
	if err != nil {
		t.Fatalf("ParseWalletTx: %v", err)
	}
	if wtx.Version.Class != PreOverwinter {
		t.Fatalf("unexpected version class: %+v", wtx.Version)
	}
	if wtx.LockTime != nil {
		t.Fatal("expected zero block-height lock time to normalise to nil")
	}
	if len(wtx.UnparsedData) != 0 {
		t.Fatalf("expected no trailing data, got %d bytes", len(wtx.UnparsedData))
	}
	if len(wtx.RawBytes) == 0 {
		t.Fatal("expected RawBytes to capture the pre-metadata payload")
	}
}

func TestParseWalletTx_TrailingDataRejected(t *testing.T) {
	var buf []byte
	buf = append(buf, le32b(2)...)
	buf = append(buf, 0x00) // vin
	buf = append(buf, 0x00) // vout
	buf = append(buf, le32b(0)...)
	buf = append(buf, 0x00)                // JoinSplit descriptions: empty
	buf = append(buf, make([]byte, 32)...) // hashBlock
	buf = append(buf, 0x00)                // merkleBranch
	buf = append(buf, le32b(0)...)         // index
	buf = append(buf, 0x00)                // unused
	buf = append(buf, 0x00)                // mapValue
	buf = append(buf, 0x00)                // mapSproutNoteData
	buf = append(buf, 0x00)                // orderForm
	buf = append(buf, le32b(0)...)
	buf = append(buf, le32b(0)...)
	buf = append(buf, 0x00)
	buf = append(buf, 0x00)
	buf = append(buf, 0x00) // saplingNoteData
	buf = append(buf, 0xff) // trailing garbage byte

	if _, err := ParseWalletTx(buf); err == nil {
		t.Fatal("expected trailing data to be rejected")
	}
}
