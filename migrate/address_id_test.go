package migrate

import (
	"testing"

	"github.com/zingolabs/zewif-migrate/zcashtype"
)

func TestFromAddressString(t *testing.T) {
	cases := []struct {
		addr string
		kind AddressKind
	}{
		{"t1PKtYdJJHhc3Pxowmznkg7vdTwnhEsCvR4", AddressTransparent},
		{"zs1z7rejlpsa98s2rrrfkwmaxu53e4ue0ulcrw0h4x5g8jl04tak0d3mm47vdtahatqrlkngh9sly", AddressSapling},
		{"zo1q9x3d4y8f8s7n2", AddressOrchard},
		{"u1xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx", AddressUnified},
	}
	for _, c := range cases {
		id, err := FromAddressString(c.addr)
		if err != nil {
			t.Fatalf("FromAddressString(%q): unexpected error: %v", c.addr, err)
		}
		if id.Kind != c.kind {
			t.Fatalf("FromAddressString(%q): got kind %v, want %v", c.addr, id.Kind, c.kind)
		}
	}
}

func TestFromAddressString_Unrecognized(t *testing.T) {
	if _, err := FromAddressString("bc1qxxxxxx"); err == nil {
		t.Fatal("expected error for unrecognized address prefix")
	}
}

func TestAddressIdStringRoundTrip(t *testing.T) {
	cases := []AddressId{
		NewTransparentAddressId("t1PKtYdJJHhc3Pxowmznkg7vdTwnhEsCvR4"),
		NewSaplingAddressId("zs1z7rejlpsa98s2rrrfkwmaxu53e4ue0ulcrw0h4x5g8jl04tak0d3mm47vdtahatqrlkngh9sly"),
		NewOrchardAddressId("zo1q9x3d4y8f8s7n2"),
		NewUnifiedAddressId("u1xxx"),
		NewUnifiedAccountAddressId(zcashtype.U256{1, 2, 3}),
	}
	for _, want := range cases {
		got, err := ParseAddressID(want.String())
		if err != nil {
			t.Fatalf("ParseAddressID(%q): unexpected error: %v", want.String(), err)
		}
		if got != want {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
		}
	}
}

func TestAddressIdIsUnifiedAccountAddress(t *testing.T) {
	if !NewUnifiedAccountAddressId(zcashtype.U256{}).IsUnifiedAccountAddress() {
		t.Fatal("expected unified account address id to report true")
	}
	if NewTransparentAddressId("t1x").IsUnifiedAccountAddress() {
		t.Fatal("expected transparent address id to report false")
	}
}

func TestAddressRegistry(t *testing.T) {
	registry := NewAddressRegistry()
	addr1 := NewTransparentAddressId("t1PKtYdJJHhc3Pxowmznkg7vdTwnhEsCvR4")
	addr2 := NewSaplingAddressId("zs1abc")
	var account1, account2 zcashtype.U256
	account1[0] = 1
	account2[0] = 2

	registry.Register(addr1, account1)
	registry.Register(addr2, account1)

	if got, ok := registry.FindAccount(addr1); !ok || got != account1 {
		t.Fatalf("FindAccount(addr1) = (%v, %v), want (%v, true)", got, ok, account1)
	}
	if _, ok := registry.FindAccount(NewTransparentAddressId("unknown")); ok {
		t.Fatal("expected unknown address to have no account")
	}
	if n := registry.AddressCount(); n != 2 {
		t.Fatalf("AddressCount() = %d, want 2", n)
	}
	if n := registry.AccountCount(); n != 1 {
		t.Fatalf("AccountCount() = %d, want 1", n)
	}

	registry.Register(addr1, account2)
	addrs := registry.FindAddressesForAccount(account2)
	if len(addrs) != 1 || addrs[0] != addr1 {
		t.Fatalf("FindAddressesForAccount(account2) = %v, want [addr1]", addrs)
	}
}
