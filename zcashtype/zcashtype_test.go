package zcashtype

import (
	"testing"

	"github.com/zingolabs/zewif-migrate/parser"
)

func TestU252Invariant(t *testing.T) {
	var buf [32]byte
	buf[0] = 0xf0
	if _, err := NewU252(buf); err == nil {
		t.Fatal("expected high-nibble-zero violation to fail")
	}
	if _, err := ReadU252(parser.New(buf[:], false)); err == nil {
		t.Fatal("expected ReadU252 to fail")
	}

	buf[0] = 0x0f
	if _, err := NewU252(buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAmountRange(t *testing.T) {
	if !Amount(0).Valid() {
		t.Fatal("zero amount should be valid")
	}
	if Amount(MaxMoney + 1).Valid() {
		t.Fatal("amount above max money should be invalid")
	}
	if Amount(-MaxMoney - 1).Valid() {
		t.Fatal("amount below -max money should be invalid")
	}
}

func TestBranchIdUnknown(t *testing.T) {
	p := parser.New([]byte{0x01, 0x02, 0x03, 0x04}, false)
	if _, err := ReadBranchId(p); err == nil {
		t.Fatal("expected unknown branch id to fail")
	}
}

func TestLockTimeBucketing(t *testing.T) {
	p := parser.New([]byte{0xff, 0xff, 0xff, 0x1c}, false) // < 500_000_000
	lt, err := ReadLockTime(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lt.Kind != LockTimeBlockHeight {
		t.Fatalf("expected block height kind, got %v", lt.Kind)
	}

	zero := LockTime{Kind: LockTimeBlockHeight, Value: 0}
	if zero.AsOption() != nil {
		t.Fatal("expected zero block height to normalize to absent")
	}
}

func TestClientVersionDisplay(t *testing.T) {
	// 5_004_050 = major 5, minor 0, revision 40, build 50 -> "M.m.r" bucket.
	v := ClientVersion(5_004_050)
	if got, want := v.String(), "5.0.40"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	// build 24 -> beta bucket, displayed as beta(build+1).
	v = ClientVersion(5_004_024)
	if got, want := v.String(), "5.0.40-beta25"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
