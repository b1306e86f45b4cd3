package zcashd

import (
	"crypto/sha256"

	"github.com/btcsuite/btcutil/base58"
	"github.com/btcsuite/btcutil/bech32"

	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// base58Prefix is the two-byte version prefix zcashd prepends before the
// 20-byte hash in a transparent address, keyed by network and address
// kind (PUBKEY_ADDRESS/SCRIPT_ADDRESS from zcashd's chainparams).
var base58Prefix = map[zcashtype.Network][2][2]byte{
	zcashtype.NetworkMain:    {{0x1C, 0xB8}, {0x1C, 0xBD}},
	zcashtype.NetworkTest:    {{0x1D, 0x25}, {0x1C, 0xBA}},
	zcashtype.NetworkRegtest: {{0x1D, 0x25}, {0x1C, 0xBA}},
}

// saplingHRP is the bech32 human-readable part for a raw Sapling payment
// address, keyed by network.
var saplingHRP = map[zcashtype.Network]string{
	zcashtype.NetworkMain:    "zs",
	zcashtype.NetworkTest:    "ztestsapling",
	zcashtype.NetworkRegtest: "zregtestsapling",
}

// EncodeP2PKH renders a transparent key hash as a base58check t-address.
func EncodeP2PKH(network zcashtype.Network, keyID KeyId) string {
	return encodeBase58Check(base58Prefix[network][0], keyID[:])
}

// EncodeP2SH renders a transparent script hash as a base58check t-address.
func EncodeP2SH(network zcashtype.Network, scriptID ScriptId) string {
	return encodeBase58Check(base58Prefix[network][1], scriptID[:])
}

// encodeBase58Check builds a zcashd-style address: zcashd's two-byte
// version prefix doesn't fit base58.CheckEncode's single-byte version
// parameter, so the checksum is computed by hand the way zcashd itself
// does (double SHA-256 of prefix||payload, first four bytes).
func encodeBase58Check(prefix [2]byte, payload []byte) string {
	body := make([]byte, 0, 2+len(payload)+4)
	body = append(body, prefix[0], prefix[1])
	body = append(body, payload...)
	first := sha256.Sum256(body)
	second := sha256.Sum256(first[:])
	body = append(body, second[:4]...)
	return base58.Encode(body)
}

// EncodeSaplingAddress renders a raw Sapling payment address (diversifier
// + transmission key) as a bech32 zs-address.
func EncodeSaplingAddress(network zcashtype.Network, addr SaplingZPaymentAddress) (string, error) {
	raw := make([]byte, 0, 43)
	raw = append(raw, addr.Diversifier[:]...)
	raw = append(raw, addr.Pk[:]...)
	converted, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(saplingHRP[network], converted)
}
