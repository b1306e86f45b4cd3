// Package zcashd assembles a parsed BerkeleyDB dump (package bdb) into a
// ZcashdWallet: the transparent/sapling/sprout key stores, address book,
// transactions, and unified-accounts bundle that a zcashd wallet.dat
// carries, grounded on original_source/src/zcashd/zcashd_parser.rs.
package zcashd

import (
	"crypto/sha256"

	"github.com/pkg/errors"
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// PubKey is a serialized EC public key: 33 bytes compressed or 65
// uncompressed.
type PubKey struct {
	Data []byte
}

// ReadPubKey decodes a CompactSize-prefixed PubKey, rejecting any length
// other than the two valid encodings.
func ReadPubKey(p *parser.Parser) (PubKey, error) {
	size, err := p.ReadCompactSize()
	if err != nil {
		return PubKey{}, parser.Context(err, "Parsing PubKey size")
	}
	if size != 33 && size != 65 {
		return PubKey{}, errors.Errorf("invalid PubKey size: %d", size)
	}
	data, err := p.ReadFixedBlob(int(size))
	if err != nil {
		return PubKey{}, parser.Context(err, "Parsing PubKey")
	}
	return PubKey{Data: data}, nil
}

// PrivKey is a serialized DER-wrapped EC private key plus the hash256 of
// (pubkey||privkey bytes) that zcashd stores alongside it for integrity
// checking.
type PrivKey struct {
	Data []byte
	Hash zcashtype.U256
}

// ReadPrivKey decodes a CompactSize-prefixed PrivKey body (214 or 279
// bytes) followed by its stored integrity hash.
func ReadPrivKey(p *parser.Parser) (PrivKey, error) {
	length, err := p.ReadCompactSize()
	if err != nil {
		return PrivKey{}, parser.Context(err, "Parsing PrivKey size")
	}
	if length != zcashtype.PrivKeyBodyLenCompressed && length != zcashtype.PrivKeyBodyLenUncompressed {
		return PrivKey{}, errors.Errorf("invalid PrivKey size: %d", length)
	}
	data, err := p.ReadFixedBlob(int(length))
	if err != nil {
		return PrivKey{}, parser.Context(err, "Parsing PrivKey")
	}
	hash, err := zcashtype.ReadU256(p)
	if err != nil {
		return PrivKey{}, parser.Context(err, "Parsing PrivKey hash")
	}
	return PrivKey{Data: data, Hash: hash}, nil
}

// KeyMetadata carries a key's HD provenance: when it was created and,
// for HD-derived keys, the derivation path and seed fingerprint.
type KeyMetadata struct {
	Version    int32
	CreateTime zcashtype.SecondsSinceEpoch
	HDKeypath  string
	SeedFP     zcashtype.U256
}

// ReadKeyMetadata decodes a CKeyMetadata record.
func ReadKeyMetadata(p *parser.Parser) (KeyMetadata, error) {
	var m KeyMetadata
	var err error
	if m.Version, err = p.ReadInt32(); err != nil {
		return m, parser.Context(err, "Parsing version")
	}
	ct, err := zcashtype.ReadSecondsSinceEpoch(p)
	if err != nil {
		return m, parser.Context(err, "Parsing create_time")
	}
	m.CreateTime = ct
	if m.HDKeypath, err = p.ReadString(); err != nil {
		return m, parser.Context(err, "Parsing hd_keypath")
	}
	if m.SeedFP, err = zcashtype.ReadU256(p); err != nil {
		return m, parser.Context(err, "Parsing seed_fp")
	}
	return m, nil
}

// hash256 is Bitcoin's double-SHA256, used to verify a transparent
// key's integrity hash.
func hash256(data []byte) zcashtype.U256 {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	var out zcashtype.U256
	copy(out[:], second[:])
	return out
}

// Key is a fully paired transparent keypair with its metadata.
type Key struct {
	PubKey   PubKey
	PrivKey  PrivKey
	Metadata KeyMetadata
}

// NewKey validates the hash256(pubkey||privkey) integrity check before
// constructing a Key.
func NewKey(pubkey PubKey, privkey PrivKey, metadata KeyMetadata) (Key, error) {
	combined := append(append([]byte{}, pubkey.Data...), privkey.Data...)
	if hash256(combined) != privkey.Hash {
		return Key{}, errors.New("invalid keypair: pubkey and privkey do not match")
	}
	return Key{PubKey: pubkey, PrivKey: privkey, Metadata: metadata}, nil
}

// KeyPoolEntry is one reserved-but-unused transparent key in the key
// pool.
type KeyPoolEntry struct {
	Version   zcashtype.ClientVersion
	Timestamp zcashtype.SecondsSinceEpoch
	Key       PubKey
}

// ReadKeyPoolEntry decodes a `pool` value.
func ReadKeyPoolEntry(p *parser.Parser) (KeyPoolEntry, error) {
	var e KeyPoolEntry
	var err error
	if e.Version, err = zcashtype.ReadClientVersion(p); err != nil {
		return e, parser.Context(err, "Parsing version")
	}
	if e.Timestamp, err = zcashtype.ReadSecondsSinceEpoch(p); err != nil {
		return e, parser.Context(err, "Parsing timestamp")
	}
	if e.Key, err = ReadPubKey(p); err != nil {
		return e, parser.Context(err, "Parsing key")
	}
	return e, nil
}
