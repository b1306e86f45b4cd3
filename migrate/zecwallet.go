package migrate

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/zingolabs/zewif-migrate/zcashtype"
	"github.com/zingolabs/zewif-migrate/zecwallet"
	"github.com/zingolabs/zewif-migrate/zewif"
)

// FromZecwallet converts a fully-parsed Zecwallet-Lite wallet into the
// protocol-agnostic zewif model. Like Zingo, Zecwallet-Lite is a
// single-account wallet, but its richer per-key and per-note records (a
// real WalletTKey.Address, a raw Orchard receiver per note) carry over
// with more fidelity than Zingo's. The enc_key/nonce blobs on its key
// records are not carried into the model.
func FromZecwallet(wallet *zecwallet.Wallet) (*zewif.ZewifTop, error) {
	logger := logrus.WithField("source", "zecwallet")

	network, err := zcashtype.ParseNetwork(wallet.ChainName)
	if err != nil {
		logger.WithError(err).Warn("unrecognized chain name, defaulting to mainnet")
		network = zcashtype.NetworkMain
	}

	top := zewif.NewZewifTop()
	zwallet := zewif.NewZewifWallet(network)

	// An encrypted wallet's Seed field is meaningless plaintext left over
	// from before encryption was turned on; only recover a phrase from it
	// when the wallet isn't locked.
	if !wallet.Keys.Encrypted {
		seed, err := convertSeedEntropy(wallet.Keys.Seed[:])
		if err != nil {
			return nil, errors.Wrap(err, "recovering seed material")
		}
		zwallet.Seed = seed
	}

	transactions := convertZecwalletTransactions(wallet.Transactions)
	for txid, zt := range transactions {
		top.Transactions[txid] = zt
	}

	account := convertZecwalletAccount(wallet)
	var accountID zewif.ARID
	zwallet.Accounts[accountID] = account

	logger.WithFields(logrus.Fields{
		"addresses":    len(account.Addresses),
		"transactions": len(top.Transactions),
	}).Info("zecwallet wallet migrated")

	var walletID zewif.ARID
	top.Wallets[walletID] = zwallet

	return top, nil
}

// convertZecwalletTransactions migrates every WalletTx into a zewif
// Transaction.
func convertZecwalletTransactions(txs zecwallet.TxMap) map[zewif.TxId]*zewif.Transaction {
	out := make(map[zewif.TxId]*zewif.Transaction, len(txs))
	for txid, wtx := range txs {
		out[txid] = convertZecwalletTransaction(txid, wtx)
	}
	return out
}

func convertZecwalletTransaction(txid zewif.TxId, wtx zecwallet.WalletTx) *zewif.Transaction {
	zt := &zewif.Transaction{TxId: txid}

	if !wtx.Unconfirmed && wtx.Block > 0 {
		height := uint32(wtx.Block)
		zt.MinedHeight = &height
	}

	if len(wtx.Utxos) > 0 {
		var maxIdx uint64
		for _, u := range wtx.Utxos {
			if u.OutputIndex > maxIdx {
				maxIdx = u.OutputIndex
			}
		}
		zt.Vout = make([]zewif.TxOut, maxIdx+1)
		for _, u := range wtx.Utxos {
			zt.Vout[u.OutputIndex] = zewif.TxOut{
				Value:        zcashtype.Amount(u.Value),
				ScriptPubKey: u.Script,
			}
		}
	}

	for idx, nf := range wtx.SaplingSpentNullifiers {
		zt.SaplingSpends = append(zt.SaplingSpends, zewif.SaplingSpendDescription{
			SpendIndex: uint32(idx),
			Nullifier:  nf,
		})
	}
	for idx, note := range wtx.SaplingNotes {
		sd := zewif.SaplingOutputDescription{
			OutputIndex: uint32(idx),
			Position:    notePosition(note.Witnesses, idx),
			Anchor:      noteAnchor(note.Witnesses),
			Witness:     noteWitness(note.Witnesses),
		}
		if note.Memo != nil {
			sd.Memo = *note.Memo
		}
		zt.SaplingOutputs = append(zt.SaplingOutputs, sd)
	}

	for idx, nf := range wtx.OrchardSpentNullifiers {
		zt.OrchardActions = append(zt.OrchardActions, zewif.OrchardActionDescription{
			ActionIndex: uint32(idx),
			Nullifier:   nf,
		})
	}
	base := len(wtx.OrchardSpentNullifiers)
	for idx, note := range wtx.OrchardNotes {
		ad := zewif.OrchardActionDescription{ActionIndex: uint32(base + idx)}
		if note.WitnessPosition != nil {
			ad.Position = zewif.Position(*note.WitnessPosition)
		} else {
			ad.Position = zewif.Position(idx + 1)
		}
		if note.Memo != nil {
			ad.Memo = *note.Memo
		}
		zt.OrchardActions = append(zt.OrchardActions, ad)
	}

	return zt
}

// convertZecwalletAccount builds the wallet's single account from its key
// store and the addresses its transactions reveal.
func convertZecwalletAccount(wallet *zecwallet.Wallet) *zewif.Account {
	account := zewif.NewAccount("Default Account")

	for txid, wtx := range wallet.Transactions {
		account.AddTransaction(txid)
		for _, u := range wtx.Utxos {
			if u.Address == "" {
				continue
			}
			if _, ok := account.Addresses[u.Address]; !ok {
				account.Addresses[u.Address] = &zewif.Address{
					Kind:        zewif.AddressTransparent,
					Transparent: &zewif.TransparentAddress{Address: u.Address},
				}
			}
		}
		for _, note := range wtx.OrchardNotes {
			addr := zecwalletOrchardReceiverAddress(note.RecipientAddress)
			if _, ok := account.Addresses[addr.AddressString()]; !ok {
				account.Addresses[addr.AddressString()] = addr
			}
		}
	}

	for _, tk := range wallet.Keys.TKeys {
		if tk.Address == "" {
			continue
		}
		addr, ok := account.Addresses[tk.Address]
		if !ok {
			addr = &zewif.Address{Kind: zewif.AddressTransparent, Transparent: &zewif.TransparentAddress{Address: tk.Address}}
			account.Addresses[tk.Address] = addr
		}
		if tk.Key != nil {
			addr.Transparent.SpendingKey = append([]byte(nil), tk.Key[:]...)
		}
	}

	for _, zk := range wallet.Keys.ZKeys {
		addr := zecwalletSaplingAddress(zk)
		account.Addresses[addr.AddressString()] = addr
	}

	for _, ok := range wallet.Keys.OKeys {
		addr := zecwalletOrchardKeyAddress(ok)
		account.Addresses[addr.AddressString()] = addr
	}

	return account
}

// zecwalletSaplingAddress builds a placeholder shielded address from one
// WalletZKey, the same non-bech32-identifier simplification used for
// Zingo's Sapling capability: neither wallet persists a diversified
// Sapling payment address alongside its own key store.
func zecwalletSaplingAddress(zk zecwallet.WalletZKey) *zewif.Address {
	shielded := &zewif.ShieldedAddress{
		Address:            sapling3x32Identifier("zecwallet-sapling", zk.ExtFVK.FVK.Ak, zk.ExtFVK.FVK.Nk, zk.ExtFVK.FVK.Ovk),
		IncomingViewingKey: deriveSaplingIVKBytes(zk.ExtFVK.FVK.Ak, zk.ExtFVK.FVK.Nk),
	}
	if zk.ExtSK != nil {
		spendKey := convertSaplingSpendingKey(*zk.ExtSK)
		shielded.SpendingKey = spendKey
	}
	return &zewif.Address{Kind: zewif.AddressShielded, Shielded: shielded}
}

func zecwalletOrchardKeyAddress(ok zecwallet.WalletOKey) *zewif.Address {
	shielded := &zewif.ShieldedAddress{
		Address:            "zecwallet-orchard-key:" + hex.EncodeToString(ok.FVK[:]),
		IncomingViewingKey: append([]byte(nil), ok.FVK[:]...),
	}
	if ok.SK != nil {
		shielded.SpendingKey = &zewif.SpendingKey{Kind: zewif.SpendingKeyRaw, Raw: *ok.SK}
	}
	return &zewif.Address{Kind: zewif.AddressShielded, Shielded: shielded}
}

// zecwalletOrchardReceiverAddress decodes a note's raw 43-byte recipient
// address (an 11-byte diversifier plus a 32-byte diversified transmission
// key, the same layout Sapling payment addresses use) into a shielded
// address record. It's still kept as a hex identifier rather than a real
// bech32m Orchard/unified address string: that encoding needs ZIP-316's
// F4Jumble step, which has no counterpart in this corpus.
func zecwalletOrchardReceiverAddress(raw [43]byte) *zewif.Address {
	diversifier := append([]byte(nil), raw[:11]...)
	return &zewif.Address{
		Kind: zewif.AddressShielded,
		Shielded: &zewif.ShieldedAddress{
			Address:     "zecwallet-orchard-receiver:" + hex.EncodeToString(raw[:]),
			Diversifier: diversifier,
		},
	}
}
