package migrate

import (
	"testing"

	"github.com/zingolabs/zewif-migrate/zcashd"
	"github.com/zingolabs/zewif-migrate/zcashd/tx"
	"github.com/zingolabs/zewif-migrate/zcashtype"
	"github.com/zingolabs/zewif-migrate/zewif"
)

func TestConvertAccountsDefault(t *testing.T) {
	wallet := &zcashd.ZcashdWallet{
		AddressNames:    map[zcashd.Address]string{"t1PKtYdJJHhc3Pxowmznkg7vdTwnhEsCvR4": "primary"},
		AddressPurposes: map[zcashd.Address]string{"t1PKtYdJJHhc3Pxowmznkg7vdTwnhEsCvR4": "receive"},
		Transactions:    map[zcashtype.TxId]*tx.WalletTx{},
	}

	transactions := map[zewif.TxId]*zewif.Transaction{}
	accounts := convertAccounts(wallet, transactions)
	if len(accounts) != 1 {
		t.Fatalf("expected exactly one default account, got %d", len(accounts))
	}
	for _, account := range accounts {
		if account.Name != "Default Account" {
			t.Fatalf("unexpected account name: %s", account.Name)
		}
		if _, ok := account.Addresses["t1PKtYdJJHhc3Pxowmznkg7vdTwnhEsCvR4"]; !ok {
			t.Fatalf("expected transparent address to be present, got %v", account.Addresses)
		}
	}
}
