package migrate

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/zingolabs/zewif-migrate/zcashd"
	"github.com/zingolabs/zewif-migrate/zcashd/tx"
	"github.com/zingolabs/zewif-migrate/zcashtype"
	"github.com/zingolabs/zewif-migrate/zewif"
	"github.com/zingolabs/zewif-migrate/zingo"
)

// FromZingo converts a fully-parsed Zingo wallet into the protocol-agnostic
// zewif model. Zingo is a single-account, view-key-centric wallet: it
// carries no equivalent of zcashd's unified-account bundle, so every
// address and transaction is gathered into one default account.
func FromZingo(wallet *zingo.Wallet) (*zewif.ZewifTop, error) {
	logger := logrus.WithField("source", "zingo")

	network, err := zcashtype.ParseNetwork(wallet.ChainName)
	if err != nil {
		logger.WithError(err).Warn("unrecognized chain name, defaulting to mainnet")
		network = zcashtype.NetworkMain
	}

	top := zewif.NewZewifTop()
	zwallet := zewif.NewZewifWallet(network)

	seed, err := convertSeedEntropy(wallet.SeedBytes)
	if err != nil {
		return nil, errors.Wrap(err, "recovering seed material")
	}
	zwallet.Seed = seed

	transactions := convertZingoTransactions(wallet.Transactions)
	for txid, zt := range transactions {
		top.Transactions[txid] = zt
	}

	account := convertZingoAccount(wallet)
	var accountID zewif.ARID
	zwallet.Accounts[accountID] = account

	logger.WithFields(logrus.Fields{
		"addresses":    len(account.Addresses),
		"transactions": len(top.Transactions),
	}).Info("zingo wallet migrated")

	var walletID zewif.ARID
	top.Wallets[walletID] = zwallet

	return top, nil
}

func convertZingoTransactions(txs zingo.TxMap) map[zewif.TxId]*zewif.Transaction {
	out := make(map[zewif.TxId]*zewif.Transaction, len(txs))
	for txid, wtx := range txs {
		out[txid] = convertZingoTransaction(txid, wtx)
	}
	return out
}

// convertZingoTransaction migrates one Zingo WalletTx. Zingo's transaction
// bookkeeping is written from the wallet's own point of view: it never
// records the note commitments its received notes correspond to (only
// their eventual nullifiers), so every SaplingOutputDescription/
// OrchardActionDescription built here carries a zero Commitment. Spends
// and outputs are also recorded separately (a spent-nullifier list versus
// a received-note list) rather than paired per bundle action the way a raw
// transaction would encode them, so each is migrated into its own run of
// descriptions rather than matched up one to one.
func convertZingoTransaction(txid zewif.TxId, wtx zingo.WalletTx) *zewif.Transaction {
	zt := &zewif.Transaction{TxId: txid}

	if !wtx.Unconfirmed && wtx.Block > 0 {
		height := wtx.Block
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
		zt.SaplingOutputs = append(zt.SaplingOutputs, zewif.SaplingOutputDescription{
			OutputIndex: uint32(idx),
			Position:    notePosition(note.Witnesses, idx),
			Anchor:      noteAnchor(note.Witnesses),
			Witness:     noteWitness(note.Witnesses),
		})
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
		zt.OrchardActions = append(zt.OrchardActions, ad)
	}

	return zt
}

func notePosition(witnesses []tx.SaplingWitness, fallbackIdx int) zewif.Position {
	if len(witnesses) > 0 {
		return zewif.Position(len(witnesses))
	}
	return zewif.Position(fallbackIdx + 1)
}

func noteAnchor(witnesses []tx.SaplingWitness) *zcashtype.U256 {
	if len(witnesses) == 0 {
		return nil
	}
	if root, ok := witnesses[len(witnesses)-1].Root(); ok {
		return &root
	}
	return nil
}

func noteWitness(witnesses []tx.SaplingWitness) *zewif.IncrementalWitness {
	if len(witnesses) == 0 {
		return nil
	}
	latest := witnesses[len(witnesses)-1]
	return &zewif.IncrementalWitness{FilledPath: latest.FilledPath}
}

// convertZingoAccount builds the wallet's single account: transparent
// addresses recovered from transactions' own outputs (Zingo's capability
// record carries no addresses of its own, only keys), plus one synthetic
// Sapling and/or Orchard address per protocol capability the wallet holds.
func convertZingoAccount(wallet *zingo.Wallet) *zewif.Account {
	account := zewif.NewAccount("Default Account")
	if wallet.AccountIndex != 0 {
		idx := wallet.AccountIndex
		account.ZIP32AccountIndex = &idx
	}

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
	}

	if addr := zingoSaplingAddress(wallet.Capability.Sapling); addr != nil {
		account.Addresses[addr.AddressString()] = addr
	}
	if addr := zingoOrchardAddress(wallet.Capability.Orchard); addr != nil {
		account.Addresses[addr.AddressString()] = addr
	}

	return account
}

// zingoSaplingAddress builds a placeholder shielded address record from a
// Sapling capability. Zingo never persists a diversified Sapling payment
// address for its own account keys (only for outgoing sends, recorded
// alongside each transaction instead): recovering the real zs1... address
// would need the diversifier-exponentiation math Sapling defines over
// Jubjub, which has no counterpart in this corpus. The "address"
// string here is a stable, non-bech32 identifier derived from the key
// material itself, good enough to dedupe and reference but not to receive
// funds with.
func zingoSaplingAddress(capability zingo.SaplingCapability) *zewif.Address {
	switch capability.Kind {
	case zingo.CapabilityView:
		fvk := capability.View
		return &zewif.Address{
			Kind: zewif.AddressShielded,
			Shielded: &zewif.ShieldedAddress{
				Address:            sapling3x32Identifier("zingo-sapling-view", fvk.FVK.Ak, fvk.FVK.Nk, fvk.FVK.Ovk),
				IncomingViewingKey: deriveSaplingIVKBytes(fvk.FVK.Ak, fvk.FVK.Nk),
			},
		}
	case zingo.CapabilitySpend:
		sk := capability.Spend
		return &zewif.Address{
			Kind: zewif.AddressShielded,
			Shielded: &zewif.ShieldedAddress{
				Address:     sapling3x32Identifier("zingo-sapling-spend", sk.ExpSK.Ask, sk.ExpSK.Nsk, sk.ExpSK.Ovk),
				SpendingKey: convertSaplingSpendingKey(sk),
			},
		}
	default:
		return nil
	}
}

func zingoOrchardAddress(capability zingo.OrchardCapability) *zewif.Address {
	switch capability.Kind {
	case zingo.CapabilityView:
		raw := capability.View.Raw
		return &zewif.Address{
			Kind: zewif.AddressShielded,
			Shielded: &zewif.ShieldedAddress{
				Address:            "zingo-orchard-view:" + hex.EncodeToString(raw[:]),
				IncomingViewingKey: append([]byte(nil), raw[:]...),
			},
		}
	case zingo.CapabilitySpend:
		raw := capability.Spend.Raw
		return &zewif.Address{
			Kind: zewif.AddressShielded,
			Shielded: &zewif.ShieldedAddress{
				Address: "zingo-orchard-spend:" + hex.EncodeToString(raw[:]),
				SpendingKey: &zewif.SpendingKey{
					Kind: zewif.SpendingKeyRaw,
					Raw:  raw,
				},
			},
		}
	default:
		return nil
	}
}

func sapling3x32Identifier(prefix string, a, b, c zcashtype.U256) string {
	buf := make([]byte, 0, 96)
	buf = append(buf, a[:]...)
	buf = append(buf, b[:]...)
	buf = append(buf, c[:]...)
	return prefix + ":" + hex.EncodeToString(buf)
}

// deriveSaplingIVKBytes derives a real Sapling incoming viewing key from
// ak/nk rather than reusing ak itself as a placeholder.
func deriveSaplingIVKBytes(ak, nk zcashtype.U256) []byte {
	ivk := zcashd.DeriveSaplingIVK(ak, nk)
	return append([]byte(nil), ivk[:]...)
}
