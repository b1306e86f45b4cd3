package zingo

import (
	"testing"

	"github.com/zingolabs/zewif-migrate/parser"
)

func TestReadWalletCapability_AllNone(t *testing.T) {
	var buf []byte
	buf = append(buf, 0x01, byte(CapabilityNone)) // transparent
	buf = append(buf, 0x01, byte(CapabilityNone)) // sapling
	buf = append(buf, 0x01, byte(CapabilityNone)) // orchard

	p := parser.New(buf, false)
	c, err := ReadWalletCapability(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Transparent.Kind != CapabilityNone || c.Sapling.Kind != CapabilityNone || c.Orchard.Kind != CapabilityNone {
		t.Fatalf("unexpected capability kinds: %+v", c)
	}
}

func TestReadWalletCapability_TransparentView(t *testing.T) {
	var buf []byte
	buf = append(buf, 0x01, byte(CapabilityView))   // transparent view
	buf = append(buf, 0x04, 0xde, 0xad, 0xbe, 0xef) // opaque viewing key blob
	buf = append(buf, 0x01, byte(CapabilityNone))   // sapling
	buf = append(buf, 0x01, byte(CapabilityNone))   // orchard

	p := parser.New(buf, false)
	c, err := ReadWalletCapability(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Transparent.Kind != CapabilityView {
		t.Fatalf("unexpected kind: %v", c.Transparent.Kind)
	}
	if len(c.Transparent.View.Raw) != 4 {
		t.Fatalf("unexpected raw viewing key: %x", c.Transparent.View.Raw)
	}
}

func TestReadCapabilityKind_RejectsUnknownVersion(t *testing.T) {
	p := parser.New([]byte{0x02, byte(CapabilityNone)}, false)
	if _, err := readCapabilityKind(p); err == nil {
		t.Fatal("expected an error for an unsupported capability version")
	}
}

func TestReadCapabilityKind_RejectsUnknownType(t *testing.T) {
	p := parser.New([]byte{0x01, 0x09}, false)
	if _, err := readCapabilityKind(p); err == nil {
		t.Fatal("expected an error for an unknown capability type")
	}
}
