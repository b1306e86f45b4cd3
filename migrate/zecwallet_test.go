package migrate

import (
	"testing"

	"github.com/zingolabs/zewif-migrate/zcashtype"
	"github.com/zingolabs/zewif-migrate/zecwallet"
	"github.com/zingolabs/zewif-migrate/zewif"
)

func TestFromZecwalletSingleAccount(t *testing.T) {
	var txid zcashtype.TxId
	txid[0] = 3

	var nf zcashtype.U256
	nf[0] = 9

	wallet := &zecwallet.Wallet{
		ChainName: "test",
		Keys: zecwallet.Keys{
			Encrypted: false,
			Seed:      [32]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
			TKeys: []zecwallet.WalletTKey{
				{Type: zecwallet.TKeyHD, Address: "t1anotheraddress"},
			},
		},
		Transactions: zecwallet.TxMap{
			txid: {
				Block: 200,
				Utxos: []zecwallet.Utxo{
					{Address: "t1anotheraddress", OutputIndex: 0, Value: 1234, Script: []byte{0x76}},
				},
				OrchardSpentNullifiers: []zcashtype.U256{nf},
			},
		},
	}

	top, err := FromZecwallet(wallet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var zwallet *zewif.ZewifWallet
	for _, w := range top.Wallets {
		zwallet = w
	}
	if zwallet.Network != zcashtype.NetworkTest {
		t.Fatalf("unexpected network: %v", zwallet.Network)
	}
	if zwallet.Seed == nil || zwallet.Seed.Kind != zewif.SeedBip39Entropy {
		t.Fatalf("expected recovered seed material, got %+v", zwallet.Seed)
	}

	var account *zewif.Account
	for _, a := range zwallet.Accounts {
		account = a
	}
	addr, ok := account.Addresses["t1anotheraddress"]
	if !ok {
		t.Fatalf("expected transparent address to be present, got %v", account.Addresses)
	}
	if addr.Kind != zewif.AddressTransparent {
		t.Fatalf("unexpected address kind: %v", addr.Kind)
	}

	zt, ok := top.Transactions[txid]
	if !ok {
		t.Fatal("expected transaction to be migrated")
	}
	if len(zt.OrchardActions) != 1 || zt.OrchardActions[0].Nullifier != nf {
		t.Fatalf("unexpected orchard actions: %+v", zt.OrchardActions)
	}
}

func TestFromZecwalletEncryptedSkipsSeedRecovery(t *testing.T) {
	wallet := &zecwallet.Wallet{
		ChainName:    "main",
		Keys:         zecwallet.Keys{Encrypted: true, Seed: [32]byte{1, 2, 3}},
		Transactions: zecwallet.TxMap{},
	}

	top, err := FromZecwallet(wallet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, w := range top.Wallets {
		if w.Seed != nil {
			t.Fatalf("expected no recovered seed material for an encrypted wallet, got %+v", w.Seed)
		}
	}
}

func TestZecwalletOrchardReceiverAddressDecomposesDiversifier(t *testing.T) {
	var raw [43]byte
	for i := 0; i < 11; i++ {
		raw[i] = byte(i + 1)
	}

	addr := zecwalletOrchardReceiverAddress(raw)
	if addr.Kind != zewif.AddressShielded {
		t.Fatalf("unexpected address kind: %v", addr.Kind)
	}
	if len(addr.Shielded.Diversifier) != 11 {
		t.Fatalf("unexpected diversifier length: %d", len(addr.Shielded.Diversifier))
	}
	for i := 0; i < 11; i++ {
		if addr.Shielded.Diversifier[i] != byte(i+1) {
			t.Fatalf("diversifier mismatch at %d: %x", i, addr.Shielded.Diversifier[i])
		}
	}
}

func TestZecwalletOrchardKeyAddressCarriesSpendingKey(t *testing.T) {
	var sk [32]byte
	sk[0] = 42
	okey := zecwallet.WalletOKey{SK: &sk}

	addr := zecwalletOrchardKeyAddress(okey)
	if addr.Shielded.SpendingKey == nil {
		t.Fatal("expected a spending key")
	}
	if addr.Shielded.SpendingKey.Kind != zewif.SpendingKeyRaw {
		t.Fatalf("unexpected spending key kind: %v", addr.Shielded.SpendingKey.Kind)
	}
	if addr.Shielded.SpendingKey.Raw != sk {
		t.Fatalf("unexpected raw key: %x", addr.Shielded.SpendingKey.Raw)
	}
}
