package zcashd

import (
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// Bip39Mnemonic is the wallet seed phrase record: a BIP-39 language tag
// and the phrase itself, keyed in the dump by the seed's fingerprint
// (attached after parsing, since the fingerprint lives in the record key
// rather than its value).
type Bip39Mnemonic struct {
	Language    zcashtype.MnemonicLanguage
	Phrase      string
	Fingerprint zcashtype.U256
}

// ReadBip39Mnemonic decodes a `mnemonicphrase` value.
func ReadBip39Mnemonic(p *parser.Parser) (Bip39Mnemonic, error) {
	var m Bip39Mnemonic
	var err error
	if m.Language, err = zcashtype.ReadMnemonicLanguage(p); err != nil {
		return m, parser.Context(err, "Parsing language")
	}
	if m.Phrase, err = p.ReadString(); err != nil {
		return m, parser.Context(err, "Parsing mnemonic")
	}
	return m, nil
}

// MnemonicHDChain is the HD derivation counters the wallet maintains for
// accounts and legacy (pre-unified) transparent/sapling keys derived
// from the mnemonic seed.
type MnemonicHDChain struct {
	Version                      int32
	SeedFP                       zcashtype.U256
	CreateTime                   zcashtype.SecondsSinceEpoch
	AccountCounter               uint32
	LegacyTKeyExternalCounter    uint32
	LegacyTKeyInternalCounter    uint32
	LegacySaplingKeyCounter      uint32
	MnemonicSeedBackupConfirmed  bool
}

// ReadMnemonicHDChain decodes a `mnemonichdchain` value.
func ReadMnemonicHDChain(p *parser.Parser) (MnemonicHDChain, error) {
	var c MnemonicHDChain
	var err error
	if c.Version, err = p.ReadInt32(); err != nil {
		return c, parser.Context(err, "Parsing version")
	}
	if c.SeedFP, err = zcashtype.ReadU256(p); err != nil {
		return c, parser.Context(err, "Parsing seed_fp")
	}
	if c.CreateTime, err = zcashtype.ReadSecondsSinceEpoch(p); err != nil {
		return c, parser.Context(err, "Parsing create_time")
	}
	if c.AccountCounter, err = p.ReadUint32(); err != nil {
		return c, parser.Context(err, "Parsing account_counter")
	}
	if c.LegacyTKeyExternalCounter, err = p.ReadUint32(); err != nil {
		return c, parser.Context(err, "Parsing legacy_tkey_external_counter")
	}
	if c.LegacyTKeyInternalCounter, err = p.ReadUint32(); err != nil {
		return c, parser.Context(err, "Parsing legacy_tkey_internal_counter")
	}
	if c.LegacySaplingKeyCounter, err = p.ReadUint32(); err != nil {
		return c, parser.Context(err, "Parsing legacy_sapling_key_counter")
	}
	if c.MnemonicSeedBackupConfirmed, err = p.ReadBool(); err != nil {
		return c, parser.Context(err, "Parsing mnemonic_seed_backup_confirmed")
	}
	return c, nil
}
