package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zingolabs/zewif-migrate/zcashtype"
	"github.com/zingolabs/zewif-migrate/zewif"
	"github.com/zingolabs/zewif-migrate/zingo"
)

func TestFromZingoSingleAccount(t *testing.T) {
	var txid zcashtype.TxId
	txid[0] = 7

	var nf zcashtype.U256
	nf[0] = 1

	wallet := &zingo.Wallet{
		ChainName: "main",
		SeedBytes: nil,
		Transactions: zingo.TxMap{
			txid: {
				Block: 100,
				Utxos: []zingo.Utxo{
					{Address: "t1exampleaddress", OutputIndex: 0, Value: 5000, Script: []byte{0x76, 0xa9}},
				},
				SaplingSpentNullifiers: []zcashtype.U256{nf},
			},
		},
	}

	top, err := FromZingo(wallet)
	require.NoError(t, err)
	require.Len(t, top.Wallets, 1)

	var zwallet *zewif.ZewifWallet
	for _, w := range top.Wallets {
		zwallet = w
	}
	assert.Equal(t, zcashtype.NetworkMain, zwallet.Network)
	require.Len(t, zwallet.Accounts, 1)

	var account *zewif.Account
	for _, a := range zwallet.Accounts {
		account = a
	}
	assert.Equal(t, "Default Account", account.Name)
	assert.Contains(t, account.Addresses, "t1exampleaddress")
	assert.Contains(t, account.RelevantTransactions, txid)

	zt, ok := top.Transactions[txid]
	require.True(t, ok, "expected transaction to be migrated")
	require.NotNil(t, zt.MinedHeight)
	assert.EqualValues(t, 100, *zt.MinedHeight)
	require.Len(t, zt.SaplingSpends, 1)
	assert.Equal(t, nf, zt.SaplingSpends[0].Nullifier)
	require.Len(t, zt.Vout, 1)
	assert.EqualValues(t, 5000, zt.Vout[0].Value)
}

func TestFromZingoUnrecognizedChainDefaultsToMain(t *testing.T) {
	wallet := &zingo.Wallet{ChainName: "not-a-real-chain", Transactions: zingo.TxMap{}}
	top, err := FromZingo(wallet)
	require.NoError(t, err)
	for _, w := range top.Wallets {
		assert.Equal(t, zcashtype.NetworkMain, w.Network)
	}
}

func TestZingoSaplingAddressSpendCapability(t *testing.T) {
	var ask, nsk, ovk zcashtype.U256
	ask[0], nsk[0], ovk[0] = 1, 2, 3
	capability := zingo.SaplingCapability{
		Kind: zingo.CapabilitySpend,
	}
	capability.Spend.ExpSK.Ask = ask
	capability.Spend.ExpSK.Nsk = nsk
	capability.Spend.ExpSK.Ovk = ovk

	addr := zingoSaplingAddress(capability)
	require.NotNil(t, addr)
	assert.Equal(t, zewif.AddressShielded, addr.Kind)
	require.NotNil(t, addr.Shielded.SpendingKey, "expected a spending key on a spend-capability address")
	assert.NotEmpty(t, addr.AddressString())
}

func TestZingoSaplingAddressNoneCapability(t *testing.T) {
	assert.Nil(t, zingoSaplingAddress(zingo.SaplingCapability{Kind: zingo.CapabilityNone}))
}
