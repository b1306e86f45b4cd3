package migrate

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/zingolabs/zewif-migrate/zcashd"
	"github.com/zingolabs/zewif-migrate/zewif"
)

// FromZcashd converts a fully-parsed zcashd wallet into the protocol-
// agnostic zewif model: seed material, transactions (with note-commitment
// positions and witnesses filled in), and the accounts the addresses and
// transactions belong to.
func FromZcashd(wallet *zcashd.ZcashdWallet) (*zewif.ZewifTop, error) {
	logger := logrus.WithField("source", "zcashd")

	top := zewif.NewZewifTop()
	zwallet := zewif.NewZewifWallet(wallet.NetworkInfo.Network)
	zwallet.Seed = convertSeedMaterial(wallet)

	transactions, err := convertTransactions(wallet)
	if err != nil {
		return nil, errors.Wrap(err, "converting transactions")
	}

	// Position/witness propagation always runs: the Orchard tree lookup
	// inside it is just the first attempt, and the Sapling/index+1
	// fallbacks must fire even when no tree was recorded at all.
	updateTransactionPositions(wallet, transactions)

	for txid, zt := range transactions {
		top.Transactions[txid] = zt
	}

	accountsByKey := convertAccounts(wallet, transactions)
	for key, account := range accountsByKey {
		var arid zewif.ARID
		copy(arid[:], key[:])
		account.ID = arid
		zwallet.Accounts[arid] = account
	}

	logger.WithFields(logrus.Fields{
		"accounts":     len(zwallet.Accounts),
		"transactions": len(top.Transactions),
	}).Info("zcashd wallet migrated")

	var walletID zewif.ARID
	top.Wallets[walletID] = zwallet

	return top, nil
}
