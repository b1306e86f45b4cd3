package zingo

import (
	"testing"

	"github.com/zingolabs/zewif-migrate/parser"
)

func le64b(v uint64) []byte {
	out := make([]byte, 8)
	for i := range out {
		out[i] = byte(v >> (8 * i))
	}
	return out
}

func le32b(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func TestReadUtxo_Unspent(t *testing.T) {
	var buf []byte
	buf = append(buf, le64b(1)...) // version
	addr := []byte("t1examplewalletaddress")
	buf = append(buf, byte(len(addr)))
	buf = append(buf, addr...)
	buf = append(buf, make([]byte, 32)...) // txid
	buf = append(buf, le64b(0)...)         // output_index
	buf = append(buf, le64b(5000)...)      // value
	buf = append(buf, le32b(100)...)       // height
	buf = append(buf, 0x02, 0x76, 0xa9)    // script
	buf = append(buf, 0x00)                // spent: absent
	buf = append(buf, 0x00)                // spent_at_height: absent
	buf = append(buf, 0x00)                // unconfirmed_spent: absent

	p := parser.New(buf, false)
	u, err := ReadUtxo(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Address != string(addr) {
		t.Fatalf("unexpected address: %q", u.Address)
	}
	if u.Value != 5000 {
		t.Fatalf("unexpected value: %d", u.Value)
	}
	if u.Height != 100 {
		t.Fatalf("unexpected height: %d", u.Height)
	}
	if len(u.Script) != 2 {
		t.Fatalf("unexpected script: %x", u.Script)
	}
	if u.Spent != nil {
		t.Fatalf("expected no spend record, got %+v", u.Spent)
	}
}

func TestReadOutgoingTxMetadata(t *testing.T) {
	var buf []byte
	addr := []byte("zs1exampleshieldedaddress")
	buf = append(buf, byte(len(addr)))
	buf = append(buf, addr...)
	buf = append(buf, le64b(2500)...)
	buf = append(buf, make([]byte, 512)...) // memo

	p := parser.New(buf, false)
	m, err := ReadOutgoingTxMetadata(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Address != string(addr) {
		t.Fatalf("unexpected address: %q", m.Address)
	}
	if m.Value != 2500 {
		t.Fatalf("unexpected value: %d", m.Value)
	}
}
