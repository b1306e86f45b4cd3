package migrate

import (
	"testing"

	"github.com/zingolabs/zewif-migrate/zewif"
)

func TestConvertSeedEntropyEmpty(t *testing.T) {
	seed, err := convertSeedEntropy(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seed != nil {
		t.Fatalf("expected nil seed material for empty entropy, got %+v", seed)
	}
}

func TestConvertSeedEntropyRecoversMnemonic(t *testing.T) {
	entropy := make([]byte, 32)
	for i := range entropy {
		entropy[i] = byte(i)
	}

	seed, err := convertSeedEntropy(entropy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seed == nil {
		t.Fatal("expected non-nil seed material")
	}
	if seed.Kind != zewif.SeedBip39Entropy {
		t.Fatalf("unexpected seed kind: %v", seed.Kind)
	}
	if seed.Mnemonic == "" {
		t.Fatal("expected a non-empty recovered mnemonic")
	}
}

func TestConvertSeedEntropyBadLength(t *testing.T) {
	// BIP-39 entropy must be a multiple of 4 bytes between 16 and 32.
	_, err := convertSeedEntropy([]byte{1, 2, 3})
	if err == nil {
		t.Fatal("expected an error for invalid entropy length")
	}
}
