package parser

import (
	"bytes"
	"testing"
)

func TestParser_NextAndUnderflow(t *testing.T) {
	p := New([]byte{1, 2, 3, 4}, false)
	b, err := p.Next(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(b, []byte{1, 2}) {
		t.Fatalf("miscompare: %v", b)
	}
	if p.Remaining() != 2 {
		t.Fatalf("unexpected remaining: %d", p.Remaining())
	}
	if _, err := p.Next(3); err == nil {
		t.Fatal("expected underflow error")
	}
}

func TestParser_CheckFinished(t *testing.T) {
	p := New([]byte{1, 2}, false)
	if err := p.CheckFinished(); err == nil {
		t.Fatal("expected not-finished error")
	}
	if _, err := p.Next(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.CheckFinished(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCompactSize_Minimal(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want uint64
		fail bool
	}{
		{"single byte", []byte{0x05}, 5, false},
		{"fd boundary minimal", []byte{0xfd, 0xfd, 0x00}, 0xfd, false},
		{"fd boundary non-minimal", []byte{0xfd, 0x05, 0x00}, 0, true},
		{"fe boundary minimal", []byte{0xfe, 0x00, 0x00, 0x01, 0x00}, 0x10000, false},
		{"fe boundary non-minimal", []byte{0xfe, 0xfd, 0x00, 0x00, 0x00}, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := New(c.in, false)
			got, err := p.ReadCompactSize()
			if c.fail {
				if err == nil {
					t.Fatalf("expected failure for %v", c.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Fatalf("got %d want %d", got, c.want)
			}
		})
	}
}

func TestReadBool_Strict(t *testing.T) {
	p := New([]byte{0x02}, false)
	if _, err := p.ReadBool(); err == nil {
		t.Fatal("expected failure for invalid bool discriminant")
	}
}

func TestReadOptional(t *testing.T) {
	p := New([]byte{0x01, 0x2a, 0x00}, false)
	v, err := ReadOptional(p, (*Parser).ReadUint8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v == nil || *v != 0x2a {
		t.Fatalf("unexpected value: %v", v)
	}
	v, err = ReadOptional(p, (*Parser).ReadUint8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != nil {
		t.Fatalf("expected absent value, got %v", v)
	}
}

func TestReadVec(t *testing.T) {
	p := New([]byte{0x03, 0x01, 0x02, 0x03}, false)
	got, err := ReadVec(p, (*Parser).ReadUint8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("unexpected result: %v", got)
	}
}
