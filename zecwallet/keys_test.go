package zecwallet

import (
	"testing"

	"github.com/zingolabs/zewif-migrate/parser"
)

func le32b(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func TestReadWalletTKey_Imported(t *testing.T) {
	var buf []byte
	buf = append(buf, 0x01) // record version
	buf = append(buf, le32b(uint32(TKeyImported))...)
	buf = append(buf, 0x00)                // locked = false
	buf = append(buf, 0x01)                // key present
	buf = append(buf, make([]byte, 32)...) // raw key
	addr := []byte("t1examplewalletaddress")
	buf = append(buf, byte(len(addr)))
	buf = append(buf, addr...)
	buf = append(buf, 0x00) // hdkey_num: absent
	buf = append(buf, 0x00) // enc_key: absent
	buf = append(buf, 0x00) // nonce: absent

	p := parser.New(buf, false)
	k, err := ReadWalletTKey(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.Type != TKeyImported {
		t.Fatalf("unexpected type: %v", k.Type)
	}
	if k.Address != string(addr) {
		t.Fatalf("unexpected address: %q", k.Address)
	}
	if k.Key == nil {
		t.Fatal("expected a decoded raw key")
	}
	if k.HDKeyNum != nil {
		t.Fatalf("expected no hd key num, got %v", *k.HDKeyNum)
	}
}

func TestReadWalletTKey_RejectsFutureVersion(t *testing.T) {
	p := parser.New([]byte{0x02}, false)
	if _, err := ReadWalletTKey(p); err == nil {
		t.Fatal("expected an error for an unsupported WalletTKey version")
	}
}

func TestReadKeysOld_RejectsPreVersion6(t *testing.T) {
	var buf []byte
	buf = append(buf, 0x01)                // encrypted = true
	buf = append(buf, make([]byte, 48)...) // enc_seed
	buf = append(buf, 0x00)                // nonce: empty vec
	buf = append(buf, make([]byte, 32)...) // seed

	p := parser.New(buf, false)
	if _, err := ReadKeysOld(p, 6); err == nil {
		t.Fatal("expected version 6 (pre per-record-versioning) to be rejected")
	}
}
