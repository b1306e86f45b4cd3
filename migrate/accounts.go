package migrate

import (
	"encoding/hex"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/zingolabs/zewif-migrate/zcashd"
	"github.com/zingolabs/zewif-migrate/zcashtype"
	"github.com/zingolabs/zewif-migrate/zewif"
)

// convertAccounts builds the account set a wallet organizes its
// addresses and transactions into: a unified-account bundle when the
// wallet has one, or a single default account otherwise.
func convertAccounts(wallet *zcashd.ZcashdWallet, transactions map[zewif.TxId]*zewif.Transaction) map[ARIDKey]*zewif.Account {
	if wallet.UnifiedAccounts != nil {
		return convertUnifiedAccounts(wallet, wallet.UnifiedAccounts, transactions)
	}
	return convertDefaultAccount(wallet, transactions)
}

// ARIDKey is the internal account identifier convertAccounts keys its
// result by — a zcashd unified-account key id, or the zero value for the
// single default account a wallet with no unified-account bundle gets.
type ARIDKey = zcashtype.U256

func convertDefaultAccount(wallet *zcashd.ZcashdWallet, transactions map[zewif.TxId]*zewif.Transaction) map[ARIDKey]*zewif.Account {
	account := zewif.NewAccount("Default Account")
	network := wallet.NetworkInfo.Network

	for addr, name := range wallet.AddressNames {
		za := transparentZewifAddress(wallet, addr, name)
		account.Addresses[za.AddressString()] = za
	}
	for saplingAddr, ivk := range wallet.SaplingZAddresses {
		za, ok := saplingZewifAddress(wallet, saplingAddr, ivk, network)
		if ok {
			account.Addresses[za.AddressString()] = za
		}
	}
	for txid := range transactions {
		account.AddTransaction(txid)
	}

	return map[ARIDKey]*zewif.Account{{}: account}
}

func convertUnifiedAccounts(wallet *zcashd.ZcashdWallet, unified *zcashd.UnifiedAccounts, transactions map[zewif.TxId]*zewif.Transaction) map[ARIDKey]*zewif.Account {
	logger := logrus.WithField("phase", "account_construction")
	network := wallet.NetworkInfo.Network

	accounts := map[ARIDKey]*zewif.Account{}
	for keyID, meta := range unified.AccountMetadata {
		account := zewif.NewAccount(fmt.Sprintf("Account #%d", meta.AccountID))
		idx := meta.AccountID
		account.ZIP32AccountIndex = &idx
		accounts[keyID] = account
	}
	if len(accounts) == 0 {
		accounts[ARIDKey{}] = zewif.NewAccount("Default Account")
	}

	firstAccountKey := func() ARIDKey {
		for key := range accounts {
			return key
		}
		return ARIDKey{}
	}()

	registry := initializeAddressRegistry(wallet, unified)

	for addr, name := range wallet.AddressNames {
		addrID := NewTransparentAddressId(string(addr))
		key := accountKeyFor(registry, addrID, firstAccountKey)
		account, ok := accounts[key]
		if !ok {
			continue
		}
		za := transparentZewifAddress(wallet, addr, name)
		account.Addresses[za.AddressString()] = za
	}

	for saplingAddr, ivk := range wallet.SaplingZAddresses {
		addrStr, err := zcashd.EncodeSaplingAddress(network, saplingAddr)
		if err != nil {
			continue
		}
		addrID := NewSaplingAddressId(addrStr)
		key := accountKeyFor(registry, addrID, firstAccountKey)
		account, ok := accounts[key]
		if !ok {
			continue
		}
		za, ok := saplingZewifAddress(wallet, saplingAddr, ivk, network)
		if !ok {
			continue
		}
		account.Addresses[za.AddressString()] = za
	}

	for addrKeyID, meta := range unified.AddressMetadata {
		account, ok := accounts[meta.KeyID]
		if !ok {
			account, ok = accounts[firstAccountKey]
			if !ok {
				continue
			}
		}
		ua := unifiedZewifAddress(addrKeyID, meta)
		account.Addresses[ua.AddressString()] = ua
	}

	for keyID, viewingKey := range unified.FullViewingKeys {
		account, ok := accounts[keyID]
		if !ok {
			logger.WithField("key_id", hex.EncodeToString(keyID[:])).Warn("full viewing key has no matching account")
			continue
		}
		addrCount := len(registry.FindAddressesForAccount(keyID))
		logger.WithFields(logrus.Fields{
			"account": account.Name, "addresses": addrCount,
		}).Debugf("full viewing key recorded for account: %s", viewingKey)
	}

	for txid, wtx := range wallet.Transactions {
		addrIDs := extractTransactionAddresses(wallet, txid, wtx)
		relevant := map[ARIDKey]struct{}{}
		for addrID := range addrIDs {
			if key, ok := registry.FindAccount(addrID); ok {
				relevant[key] = struct{}{}
			}
		}
		if len(relevant) == 0 {
			for key := range accounts {
				relevant[key] = struct{}{}
			}
		}
		for key := range relevant {
			if account, ok := accounts[key]; ok {
				account.AddTransaction(txid)
			}
		}
	}

	totalTx := len(transactions)
	var assignedTx, accountsWithTx int
	for _, account := range accounts {
		n := len(account.RelevantTransactions)
		assignedTx += n
		if n > 0 {
			accountsWithTx++
		}
	}
	logger.WithFields(logrus.Fields{
		"total_transactions": totalTx, "assigned_transaction_refs": assignedTx,
		"accounts_with_transactions": accountsWithTx, "accounts": len(accounts),
	}).Info("transaction assignment complete")
	if assignedTx == 0 && totalTx > 0 {
		logger.Warn("no transactions were assigned to any account")
	}

	return accounts
}

func transparentZewifAddress(wallet *zcashd.ZcashdWallet, addr zcashd.Address, name string) *zewif.Address {
	za := &zewif.Address{
		Kind:        zewif.AddressTransparent,
		Transparent: &zewif.TransparentAddress{Address: string(addr)},
		Name:        name,
	}
	if purpose, ok := wallet.AddressPurposes[addr]; ok {
		za.Purpose = purpose
	}
	return za
}

func saplingZewifAddress(wallet *zcashd.ZcashdWallet, addr zcashd.SaplingZPaymentAddress, ivk zcashd.SaplingIncomingViewingKey, network zcashtype.Network) (*zewif.Address, bool) {
	addrStr, err := zcashd.EncodeSaplingAddress(network, addr)
	if err != nil {
		return nil, false
	}
	shielded := &zewif.ShieldedAddress{
		Address:            addrStr,
		IncomingViewingKey: ivk[:],
		Diversifier:        append([]byte(nil), addr.Diversifier[:]...),
	}
	if saplingKey, ok := findSaplingKeyForIVK(wallet, ivk); ok {
		shielded.SpendingKey = convertSaplingSpendingKey(saplingKey.Key)
	}
	za := &zewif.Address{Kind: zewif.AddressShielded, Shielded: shielded}
	if purpose, ok := wallet.AddressPurposes[zcashd.Address(addrStr)]; ok {
		za.Purpose = purpose
	}
	return za, true
}
