package migrate

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/zingolabs/zewif-migrate/zcashd"
	"github.com/zingolabs/zewif-migrate/zcashd/tx"
	"github.com/zingolabs/zewif-migrate/zcashtype"
	"github.com/zingolabs/zewif-migrate/zewif"
)

// convertTransactions migrates every zcashd WalletTx into a zewif
// Transaction, keyed by the same TxId.
func convertTransactions(wallet *zcashd.ZcashdWallet) (map[zewif.TxId]*zewif.Transaction, error) {
	out := make(map[zewif.TxId]*zewif.Transaction, len(wallet.Transactions))
	for txid, wtx := range wallet.Transactions {
		zt, err := convertTransaction(txid, wtx)
		if err != nil {
			return nil, errors.Wrapf(err, "converting transaction %x", txid)
		}
		out[txid] = zt
	}
	return out, nil
}

func convertTransaction(txid zewif.TxId, wtx *tx.WalletTx) (*zewif.Transaction, error) {
	zt := &zewif.Transaction{TxId: txid}

	if len(wtx.RawBytes) > 0 {
		zt.RawBytes = append([]byte(nil), wtx.RawBytes...)
	}

	for _, in := range wtx.Vin {
		zt.Vin = append(zt.Vin, zewif.TxIn{
			PrevOutpoint: zewif.OutPoint{TxId: in.PrevTxHash, Vout: in.PrevTxOutIndex},
			ScriptSig:    in.ScriptSig,
			Sequence:     in.SequenceNumber,
		})
	}
	for _, out := range wtx.Vout {
		zt.Vout = append(zt.Vout, zewif.TxOut{
			Value:        zcashtype.Amount(out.Value),
			ScriptPubKey: out.Script,
		})
	}

	// Legacy quirk: V4 spends all carry the bundle's single value_balance,
	// not a per-spend amount; V5 carries none.
	isV4 := !wtx.Version.IsZip225()
	for idx, spend := range wtx.SaplingSpends {
		sd := zewif.SaplingSpendDescription{
			SpendIndex: uint32(idx),
			Nullifier:  spend.Nullifier,
			ZkProof:    spend.ZkProof,
		}
		if isV4 {
			v := wtx.SaplingValueBalance
			sd.Value = &v
		}
		zt.SaplingSpends = append(zt.SaplingSpends, sd)
	}
	for idx, output := range wtx.SaplingOutputs {
		zt.SaplingOutputs = append(zt.SaplingOutputs, zewif.SaplingOutputDescription{
			OutputIndex:   uint32(idx),
			Commitment:    output.Cmu,
			EphemeralKey:  zcashtype.U256(output.EphemeralKey),
			EncCiphertext: output.EncCiphertext,
		})
	}

	if wtx.OrchardBundle != nil {
		for idx, action := range wtx.OrchardBundle.Actions {
			zt.OrchardActions = append(zt.OrchardActions, zewif.OrchardActionDescription{
				ActionIndex:   uint32(idx),
				Anchor:        wtx.OrchardBundle.Anchor,
				Nullifier:     action.Nullifier,
				ZkProof:       wtx.OrchardBundle.Proof,
				Commitment:    action.Cmx,
				EncCiphertext: action.EncryptedNote,
			})
		}
	}

	if wtx.JoinSplits != nil {
		for _, js := range wtx.JoinSplits.Descriptions {
			zt.JoinSplits = append(zt.JoinSplits, zewif.JoinSplitDescription{
				Anchor:      js.Anchor,
				Nullifiers:  js.Nullifiers,
				Commitments: js.Commitments,
				ZkProof:     js.ZkProof.Bytes,
			})
		}
	}

	return zt, nil
}

// updateTransactionPositions walks the Orchard note commitment tree and
// the per-transaction Sapling note data to fill in note-commitment-tree
// positions and witnesses.
func updateTransactionPositions(wallet *zcashd.ZcashdWallet, transactions map[zewif.TxId]*zewif.Transaction) {
	tree := wallet.OrchardTree
	logger := logrus.WithField("phase", "position_propagation")

	var orchardUpdated, orchardTotal, saplingUpdated, saplingTotal int

	for txid, zt := range transactions {
		wtx, ok := wallet.Transactions[txid]
		if !ok {
			continue
		}

		orchardTotal += len(zt.OrchardActions)
		for i := range zt.OrchardActions {
			action := &zt.OrchardActions[i]
			if tree != nil {
				if pos, ok := tree.FindPosition(action.Commitment); ok {
					action.Position = zewif.Position(pos)
					if anchor, witness, ok := tree.CreateWitness(action.Commitment); ok {
						a := anchor
						action.WitnessAnchor = &a
						action.Witness = &zewif.IncrementalWitness{FilledPath: witness.AuthPath}
					}
					orchardUpdated++
					continue
				}
			}
			action.Position = zewif.Position(action.ActionIndex + 1)
		}

		saplingTotal += len(zt.SaplingOutputs)
		for i := range zt.SaplingOutputs {
			output := &zt.SaplingOutputs[i]
			if tree != nil {
				if pos, ok := tree.FindPosition(output.Commitment); ok {
					output.Position = zewif.Position(pos)
					saplingUpdated++
					continue
				}
			}
			if noteData, ok := findSaplingNoteData(wtx, output.OutputIndex); ok && len(noteData.Witnesses) > 0 {
				output.Position = zewif.Position(len(noteData.Witnesses))
				latest := noteData.Witnesses[len(noteData.Witnesses)-1]
				if root, ok := latest.Root(); ok {
					output.Anchor = &root
					output.Witness = &zewif.IncrementalWitness{FilledPath: latest.FilledPath}
				}
				saplingUpdated++
				continue
			}
			output.Position = zewif.Position(output.OutputIndex + 1)
		}
	}

	logger.WithFields(logrus.Fields{
		"orchard_updated": orchardUpdated, "orchard_total": orchardTotal,
		"sapling_updated": saplingUpdated, "sapling_total": saplingTotal,
	}).Info("note commitment tree position update complete")
}

func findSaplingNoteData(wtx *tx.WalletTx, outputIndex uint32) (tx.SaplingNoteData, bool) {
	for outpoint, data := range wtx.SaplingNoteData {
		if outpoint.Vout == outputIndex {
			return data, true
		}
	}
	return tx.SaplingNoteData{}, false
}
