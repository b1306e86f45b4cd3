package migrate

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"

	"github.com/zingolabs/zewif-migrate/zcashd"
	"github.com/zingolabs/zewif-migrate/zcashd/tx"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// extractTransactionAddresses recovers every address a transaction
// touches, as a set of AddressId values, by examining its recipient
// mappings, transparent script patterns, and shielded note data. It
// never returns an error: anything it can't identify is simply left out
// of the result, the same way the fallback-to-all-accounts step later
// treats an empty set.
func extractTransactionAddresses(wallet *zcashd.ZcashdWallet, txid zcashtype.TxId, wtx *tx.WalletTx) map[AddressId]struct{} {
	addresses := map[AddressId]struct{}{}
	network := wallet.NetworkInfo.Network

	for _, recipient := range wallet.SendRecipients[txid] {
		if recipient.UnifiedAddress != "" {
			if addrID, err := FromAddressString(recipient.UnifiedAddress); err == nil {
				addresses[addrID] = struct{}{}
			}
		}
		switch recipient.Recipient.Type {
		case zcashd.ReceiverSapling:
			if addrStr, err := zcashd.EncodeSaplingAddress(network, recipient.Recipient.Sapling); err == nil {
				addresses[NewSaplingAddressId(addrStr)] = struct{}{}
			}
		case zcashd.ReceiverOrchard:
			// No standalone bech32 encoding exists for a bare Orchard
			// raw receiver; key on its raw bytes instead.
			addresses[NewOrchardAddressId(orchardRawAddressKey(recipient.Recipient.Orchard))] = struct{}{}
		case zcashd.ReceiverP2PKH:
			addresses[NewTransparentAddressId(zcashd.EncodeP2PKH(network, recipient.Recipient.KeyID))] = struct{}{}
		case zcashd.ReceiverP2SH:
			addresses[NewTransparentAddressId(zcashd.EncodeP2SH(network, recipient.Recipient.ScriptID))] = struct{}{}
		}
	}

	for _, in := range wtx.Vin {
		if keyID, ok := pubkeyHashFromScriptSig(in.ScriptSig); ok {
			addresses[NewTransparentAddressId(zcashd.EncodeP2PKH(network, keyID))] = struct{}{}
		}
	}

	for _, out := range wtx.Vout {
		if keyID, ok := p2pkhHashFromScript(out.Script); ok {
			addresses[NewTransparentAddressId(zcashd.EncodeP2PKH(network, keyID))] = struct{}{}
		} else if scriptID, ok := p2shHashFromScript(out.Script); ok {
			addresses[NewTransparentAddressId(zcashd.EncodeP2SH(network, scriptID))] = struct{}{}
		}
	}

	for _, noteData := range wtx.SaplingNoteData {
		if addrStr, ok := findSaplingAddressForIVK(wallet, noteData.IncomingViewingKey); ok {
			addresses[NewSaplingAddressId(addrStr)] = struct{}{}
		}
	}

	// "From me" transactions with nothing else identified are attributed
	// to every address the wallet owns, mirroring the fallback the
	// original migration used when script-pattern recovery found nothing.
	if wtx.FromMe && len(addresses) == 0 {
		for saplingAddr, ivk := range wallet.SaplingZAddresses {
			_ = ivk
			if addrStr, err := zcashd.EncodeSaplingAddress(network, saplingAddr); err == nil {
				addresses[NewSaplingAddressId(addrStr)] = struct{}{}
			}
		}
		for addr := range wallet.AddressNames {
			addresses[NewTransparentAddressId(string(addr))] = struct{}{}
		}
	}

	return addresses
}

func findSaplingAddressForIVK(wallet *zcashd.ZcashdWallet, ivk zcashtype.U256) (string, bool) {
	for saplingAddr, addrIVK := range wallet.SaplingZAddresses {
		if addrIVK == ivk {
			addrStr, err := zcashd.EncodeSaplingAddress(wallet.NetworkInfo.Network, saplingAddr)
			if err != nil {
				return "", false
			}
			return addrStr, true
		}
	}
	return "", false
}

// orchardRawAddressKey builds a stable, bare-bytes identifier for an
// Orchard raw receiver that has no standalone encoded address form.
func orchardRawAddressKey(addr zcashd.OrchardRawAddress) string {
	buf := make([]byte, 0, 43)
	buf = append(buf, addr.Diversifier[:]...)
	buf = append(buf, addr.Pk[:]...)
	return string(buf)
}

// pubkeyHashFromScriptSig recovers a P2PKH key hash from a scriptSig's
// trailing compressed pubkey, the common `<sig> <pubkey>` unlocking
// script shape.
func pubkeyHashFromScriptSig(scriptSig []byte) (zcashd.KeyId, bool) {
	if len(scriptSig) <= 33 {
		return zcashd.KeyId{}, false
	}
	pubkey := scriptSig[len(scriptSig)-33:]
	if pubkey[0] != 0x02 && pubkey[0] != 0x03 {
		return zcashd.KeyId{}, false
	}
	return hash160(pubkey), true
}

// p2pkhHashFromScript matches OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY
// OP_CHECKSIG.
func p2pkhHashFromScript(script []byte) (zcashd.KeyId, bool) {
	if len(script) != 25 || script[0] != 0x76 || script[1] != 0xA9 || script[2] != 0x14 ||
		script[23] != 0x88 || script[24] != 0xAC {
		return zcashd.KeyId{}, false
	}
	var id zcashd.KeyId
	copy(id[:], script[3:23])
	return id, true
}

// p2shHashFromScript matches OP_HASH160 <20 bytes> OP_EQUAL.
func p2shHashFromScript(script []byte) (zcashd.ScriptId, bool) {
	if len(script) != 23 || script[0] != 0xA9 || script[1] != 0x14 || script[22] != 0x87 {
		return zcashd.ScriptId{}, false
	}
	var id zcashd.ScriptId
	copy(id[:], script[2:22])
	return id, true
}

// hash160 is RIPEMD160(SHA256(data)), the transparent pubkey/script hash
// zcashd uses throughout.
func hash160(data []byte) zcashd.KeyId {
	sha := sha256.Sum256(data)
	r := ripemd160.New()
	r.Write(sha[:])
	var out zcashd.KeyId
	copy(out[:], r.Sum(nil))
	return out
}
