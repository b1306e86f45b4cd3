package tx

import (
	"testing"

	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

func le32b(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func TestReadVersion_PreOverwinter(t *testing.T) {
	buf := le32b(2) // not overwintered, number=2
	p := parser.New(buf, false)
	v, err := ReadVersion(p)
	if err != nil {
		t.Fatalf("ReadVersion: %v", err)
	}
	if v.Class != PreOverwinter || v.Overwintered || v.Number != 2 {
		t.Fatalf("unexpected version: %+v", v)
	}
}

func TestReadVersion_Sapling(t *testing.T) {
	header := uint32(4) | (1 << 31)
	buf := append(le32b(header), le32b(uint32(zcashtype.SaplingVersionGroupID))...)
	p := parser.New(buf, false)
	v, err := ReadVersion(p)
	if err != nil {
		t.Fatalf("ReadVersion: %v", err)
	}
	if v.Class != SaplingV4Class || !v.IsSapling() {
		t.Fatalf("unexpected version: %+v", v)
	}
}

func TestReadVersion_Zip225(t *testing.T) {
	header := uint32(5) | (1 << 31)
	buf := append(le32b(header), le32b(uint32(zcashtype.Zip225VersionGroupID))...)
	p := parser.New(buf, false)
	v, err := ReadVersion(p)
	if err != nil {
		t.Fatalf("ReadVersion: %v", err)
	}
	if v.Class != Zip225V5 || !v.IsZip225() {
		t.Fatalf("unexpected version: %+v", v)
	}
}

func TestReadVersion_UnsupportedCombo(t *testing.T) {
	header := uint32(99) | (1 << 31)
	buf := append(le32b(header), le32b(uint32(zcashtype.SaplingVersionGroupID))...)
	p := parser.New(buf, false)
	if _, err := ReadVersion(p); err == nil {
		t.Fatal("expected error for unsupported version/group combination")
	}
}

func TestReadTxIn_ReadTxOut(t *testing.T) {
	var buf []byte
	buf = append(buf, make([]byte, 32)...) // prev hash
	buf = append(buf, le32b(0)...)         // index
	buf = append(buf, 0x00)                // empty scriptSig
	buf = append(buf, le32b(0xffffffff)...)
	p := parser.New(buf, false)
	in, err := ReadTxIn(p)
	if err != nil {
		t.Fatalf("ReadTxIn: %v", err)
	}
	if len(in.ScriptSig) != 0 || in.SequenceNumber != 0xffffffff {
		t.Fatalf("unexpected txin: %+v", in)
	}

	var outBuf []byte
	outBuf = append(outBuf, 0, 0, 0, 0, 0, 0, 0, 0) // value 0
	outBuf = append(outBuf, 0x00)                   // empty script
	p2 := parser.New(outBuf, false)
	out, err := ReadTxOut(p2)
	if err != nil {
		t.Fatalf("ReadTxOut: %v", err)
	}
	if out.Value != 0 || len(out.Script) != 0 {
		t.Fatalf("unexpected txout: %+v", out)
	}
}

func TestReadSaplingBundleV4_Empty(t *testing.T) {
	var buf []byte
	buf = append(buf, 0, 0, 0, 0, 0, 0, 0, 0) // valueBalance = 0
	buf = append(buf, 0x00)                   // zero spends
	buf = append(buf, 0x00)                   // zero outputs
	p := parser.New(buf, false)
	b, err := ReadSaplingBundleV4(p)
	if err != nil {
		t.Fatalf("ReadSaplingBundleV4: %v", err)
	}
	if b.HaveActions() {
		t.Fatal("expected no actions")
	}
	if err := p.CheckFinished(); err != nil {
		t.Fatalf("bundle left unread bytes: %v", err)
	}
}

func TestReadSaplingBundleV5_OutputsOnly(t *testing.T) {
	var buf []byte
	buf = append(buf, 0x00) // zero spends_v5
	buf = append(buf, 0x01) // one output_v5
	buf = append(buf, make([]byte, 32)...) // cv
	buf = append(buf, make([]byte, 32)...) // cmu
	buf = append(buf, make([]byte, 32)...) // ephemeral key
	buf = append(buf, make([]byte, zcashtype.SaplingV5EncCiphertext)...)
	buf = append(buf, make([]byte, zcashtype.SaplingV5OutCiphertext)...)
	buf = append(buf, 0, 0, 0, 0, 0, 0, 0, 0) // value_balance (present: spends+outputs>0)
	// no anchor: nSpends == 0
	buf = append(buf, make([]byte, zcashtype.GrothProofSize)...) // 1 output proof
	buf = append(buf, make([]byte, 64)...)                       // binding sig

	p := parser.New(buf, false)
	b, err := ReadSaplingBundleV5(p)
	if err != nil {
		t.Fatalf("ReadSaplingBundleV5: %v", err)
	}
	if len(b.Spends) != 0 || len(b.Outputs) != 1 {
		t.Fatalf("unexpected bundle shape: %+v", b)
	}
	if err := p.CheckFinished(); err != nil {
		t.Fatalf("bundle left unread bytes: %v", err)
	}
}

func TestReadOrchardBundle_NoActions(t *testing.T) {
	buf := []byte{0x00} // zero actions
	p := parser.New(buf, false)
	b, err := ReadOrchardBundle(p)
	if err != nil {
		t.Fatalf("ReadOrchardBundle: %v", err)
	}
	if b != nil {
		t.Fatal("expected nil bundle when there are no actions")
	}
}

func TestParseOrchardNoteCommitmentTree_Empty(t *testing.T) {
	tr, err := ParseOrchardNoteCommitmentTree(nil)
	if err != nil {
		t.Fatalf("ParseOrchardNoteCommitmentTree: %v", err)
	}
	if tr.Root != nil {
		t.Fatal("expected no root for empty tree data")
	}
}

func TestParseOrchardNoteCommitmentTree_SingleLeaf(t *testing.T) {
	var buf []byte
	buf = append(buf, le32b(1)...)          // format_version = 1
	buf = append(buf, le64b(1)...)          // tree_size = 1
	buf = append(buf, 1)                    // depth = 1
	buf = append(buf, 1)                    // node present
	buf = append(buf, make([]byte, 32)...)  // node hash

	tr, err := ParseOrchardNoteCommitmentTree(buf)
	if err != nil {
		t.Fatalf("ParseOrchardNoteCommitmentTree: %v", err)
	}
	if tr.Root == nil {
		t.Fatal("expected a root node")
	}
	var zero zcashtype.U256
	if pos, ok := tr.FindPosition(zero); !ok || pos != 0 {
		t.Fatalf("expected commitment at position 0, got %v %v", pos, ok)
	}
}

func le64b(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
	return b
}
