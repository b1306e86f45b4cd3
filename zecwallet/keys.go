package zecwallet

import (
	"github.com/pkg/errors"

	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashd"
)

// ZKeyType discriminates how a WalletZKey came to be in the wallet.
type ZKeyType uint32

const (
	ZKeyHD ZKeyType = iota
	ZKeyImportedSpending
	ZKeyImportedView
)

// WalletZKey is one Sapling key record: either HD-derived from the
// wallet's seed, an imported spending key, or an imported view-only key.
// extsk is present only when the wallet held (and wasn't locked away
// from) the spending authority.
type WalletZKey struct {
	Type     ZKeyType
	Locked   bool
	ExtSK    *zcashd.SaplingExtendedSpendingKey
	ExtFVK   zcashd.SaplingExtendedFullViewingKey
	HDKeyNum *uint32
	EncKey   []byte
	Nonce    []byte
}

// ReadWalletZKey decodes one WalletZKey record.
func ReadWalletZKey(p *parser.Parser) (WalletZKey, error) {
	var k WalletZKey
	version, err := p.ReadUint8()
	if err != nil {
		return k, parser.Context(err, "Parsing version")
	}
	if version > 1 {
		return k, errors.Errorf("unsupported WalletZKey version %d", version)
	}
	kind, err := p.ReadUint32()
	if err != nil {
		return k, parser.Context(err, "Parsing keytype")
	}
	switch ZKeyType(kind) {
	case ZKeyHD, ZKeyImportedSpending, ZKeyImportedView:
		k.Type = ZKeyType(kind)
	default:
		return k, errors.Errorf("unknown WalletZKey type %d", kind)
	}
	if k.Locked, err = p.ReadBool(); err != nil {
		return k, parser.Context(err, "Parsing locked")
	}
	k.ExtSK, err = parser.ReadOptional(p, zcashd.ReadSaplingExtendedSpendingKey)
	if err != nil {
		return k, parser.Context(err, "Parsing extsk")
	}
	if k.ExtFVK, err = zcashd.ReadSaplingExtendedFullViewingKey(p); err != nil {
		return k, parser.Context(err, "Parsing extfvk")
	}
	k.HDKeyNum, err = parser.ReadOptional(p, (*parser.Parser).ReadUint32)
	if err != nil {
		return k, parser.Context(err, "Parsing hdkey_num")
	}
	k.EncKey, err = parser.ReadOptional(p, readByteVec)
	if err != nil {
		return k, parser.Context(err, "Parsing enc_key")
	}
	k.Nonce, err = parser.ReadOptional(p, readByteVec)
	if err != nil {
		return k, parser.Context(err, "Parsing nonce")
	}
	return k, nil
}

// TKeyType discriminates how a WalletTKey came to be in the wallet.
type TKeyType uint32

const (
	TKeyHD TKeyType = iota
	TKeyImported
)

// WalletTKey is one transparent key record.
type WalletTKey struct {
	Type     TKeyType
	Locked   bool
	Key      *[32]byte
	Address  string
	HDKeyNum *uint32
	EncKey   []byte
	Nonce    []byte
}

// ReadWalletTKey decodes one WalletTKey record.
func ReadWalletTKey(p *parser.Parser) (WalletTKey, error) {
	var k WalletTKey
	version, err := p.ReadUint8()
	if err != nil {
		return k, parser.Context(err, "Parsing version")
	}
	if version > 1 {
		return k, errors.Errorf("unsupported WalletTKey version %d", version)
	}
	kind, err := p.ReadUint32()
	if err != nil {
		return k, parser.Context(err, "Parsing keytype")
	}
	switch TKeyType(kind) {
	case TKeyHD, TKeyImported:
		k.Type = TKeyType(kind)
	default:
		return k, errors.Errorf("unknown WalletTKey type %d", kind)
	}
	if k.Locked, err = p.ReadBool(); err != nil {
		return k, parser.Context(err, "Parsing locked")
	}
	k.Key, err = parser.ReadOptional(p, read32)
	if err != nil {
		return k, parser.Context(err, "Parsing key")
	}
	addr, err := p.ReadVarBlob()
	if err != nil {
		return k, parser.Context(err, "Parsing address")
	}
	k.Address = string(addr)
	k.HDKeyNum, err = parser.ReadOptional(p, (*parser.Parser).ReadUint32)
	if err != nil {
		return k, parser.Context(err, "Parsing hdkey_num")
	}
	k.EncKey, err = parser.ReadOptional(p, readByteVec)
	if err != nil {
		return k, parser.Context(err, "Parsing enc_key")
	}
	k.Nonce, err = parser.ReadOptional(p, readByteVec)
	if err != nil {
		return k, parser.Context(err, "Parsing nonce")
	}
	return k, nil
}

// OKeyType discriminates how a WalletOKey came to be in the wallet.
type OKeyType uint32

const (
	OKeyHD OKeyType = iota
	OKeyImportedSpending
	OKeyImportedFullView
)

// WalletOKey is one Orchard key record.
type WalletOKey struct {
	Type     OKeyType
	Locked   bool
	HDKeyNum *uint32
	FVK      [96]byte
	SK       *[32]byte
	EncKey   []byte
	Nonce    []byte
}

// ReadWalletOKey decodes one WalletOKey record.
func ReadWalletOKey(p *parser.Parser) (WalletOKey, error) {
	var k WalletOKey
	version, err := p.ReadUint8()
	if err != nil {
		return k, parser.Context(err, "Parsing version")
	}
	if version > 1 {
		return k, errors.Errorf("unsupported WalletOKey version %d", version)
	}
	kind, err := p.ReadUint32()
	if err != nil {
		return k, parser.Context(err, "Parsing keytype")
	}
	switch OKeyType(kind) {
	case OKeyHD, OKeyImportedSpending, OKeyImportedFullView:
		k.Type = OKeyType(kind)
	default:
		return k, errors.Errorf("unknown WalletOKey type %d", kind)
	}
	if k.Locked, err = p.ReadBool(); err != nil {
		return k, parser.Context(err, "Parsing locked")
	}
	k.HDKeyNum, err = parser.ReadOptional(p, (*parser.Parser).ReadUint32)
	if err != nil {
		return k, parser.Context(err, "Parsing hdkey_num")
	}
	fvk, err := p.ReadFixedBlob(96)
	if err != nil {
		return k, parser.Context(err, "Parsing fvk")
	}
	copy(k.FVK[:], fvk)
	k.SK, err = parser.ReadOptional(p, read32)
	if err != nil {
		return k, parser.Context(err, "Parsing sk")
	}
	k.EncKey, err = parser.ReadOptional(p, readByteVec)
	if err != nil {
		return k, parser.Context(err, "Parsing enc_key")
	}
	k.Nonce, err = parser.ReadOptional(p, readByteVec)
	if err != nil {
		return k, parser.Context(err, "Parsing nonce")
	}
	return k, nil
}

func read32(p *parser.Parser) ([32]byte, error) {
	var out [32]byte
	b, err := p.ReadFixedBlob(32)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

func readByteVec(p *parser.Parser) ([]byte, error) {
	return parser.ReadVec(p, (*parser.Parser).ReadUint8)
}

// Keys is the wallet's full key store: seed material plus the Sapling,
// transparent, and Orchard key records derived from or imported into it.
type Keys struct {
	Encrypted bool
	EncSeed   [48]byte
	Nonce     []byte
	Seed      [32]byte
	ZKeys     []WalletZKey
	TKeys     []WalletTKey
	OKeys     []WalletOKey
}

const keysSerializedVersion = 22

// ReadKeys decodes a Keys record for wallet versions after 14, when the
// key store settled into per-record-versioned WalletZKey/WalletTKey/
// WalletOKey entries.
func ReadKeys(p *parser.Parser) (Keys, error) {
	var k Keys
	version, err := p.ReadUint64()
	if err != nil {
		return k, parser.Context(err, "Parsing version")
	}
	if version > keysSerializedVersion {
		return k, errors.Errorf("unsupported Keys version %d", version)
	}

	encrypted, err := p.ReadUint8()
	if err != nil {
		return k, parser.Context(err, "Parsing encrypted")
	}
	k.Encrypted = encrypted > 0

	encSeed, err := p.ReadFixedBlob(48)
	if err != nil {
		return k, parser.Context(err, "Parsing enc_seed")
	}
	copy(k.EncSeed[:], encSeed)

	if k.Nonce, err = readByteVec(p); err != nil {
		return k, parser.Context(err, "Parsing nonce")
	}

	seed, err := p.ReadFixedBlob(32)
	if err != nil {
		return k, parser.Context(err, "Parsing seed")
	}
	copy(k.Seed[:], seed)

	if version > 21 {
		k.OKeys, err = parser.ReadVec(p, ReadWalletOKey)
		if err != nil {
			return k, parser.Context(err, "Parsing okeys")
		}
	}

	k.ZKeys, err = parser.ReadVec(p, ReadWalletZKey)
	if err != nil {
		return k, parser.Context(err, "Parsing zkeys")
	}

	k.TKeys, err = parser.ReadVec(p, ReadWalletTKey)
	if err != nil {
		return k, parser.Context(err, "Parsing tkeys")
	}

	return k, nil
}

// legacyTKey is the pre-version-21 transparent key record: a raw 32-byte
// secret key, with its address recovered from a separate parallel vector
// rather than stored alongside the key.
type legacyTKey struct {
	Key [32]byte
}

// ReadKeysOld decodes a Keys record for wallet versions at or below 14,
// before WalletZKey/WalletTKey settled into their own versioned record
// formats. Versions at or below 6, which stored raw Sapling extended
// keys and derived the HD key metadata by re-deriving addresses, are not
// supported: that reconstruction needs the wallet's Sapling address
// derivation, which lives outside this decoder's scope.
func ReadKeysOld(p *parser.Parser, version uint64) (Keys, error) {
	var k Keys
	var err error

	if version >= 4 {
		encrypted, err := p.ReadUint8()
		if err != nil {
			return k, parser.Context(err, "Parsing encrypted")
		}
		k.Encrypted = encrypted > 0

		encSeed, err := p.ReadFixedBlob(48)
		if err != nil {
			return k, parser.Context(err, "Parsing enc_seed")
		}
		copy(k.EncSeed[:], encSeed)

		if k.Nonce, err = readByteVec(p); err != nil {
			return k, parser.Context(err, "Parsing nonce")
		}
	}

	seed, err := p.ReadFixedBlob(32)
	if err != nil {
		return k, parser.Context(err, "Parsing seed")
	}
	copy(k.Seed[:], seed)

	if version <= 6 {
		return k, errors.Errorf("zecwallet key format version %d predates per-record versioning and isn't supported", version)
	}
	k.ZKeys, err = parser.ReadVec(p, ReadWalletZKey)
	if err != nil {
		return k, parser.Context(err, "Parsing zkeys")
	}

	if version <= 20 {
		legacyKeys, err := parser.ReadVec(p, func(p *parser.Parser) (legacyTKey, error) {
			var lk legacyTKey
			b, err := p.ReadFixedBlob(32)
			if err != nil {
				return lk, err
			}
			copy(lk.Key[:], b)
			return lk, nil
		})
		if err != nil {
			return k, parser.Context(err, "Parsing legacy tkeys")
		}
		var addresses []string
		if version >= 4 {
			addrs, err := parser.ReadVec(p, func(p *parser.Parser) (string, error) {
				b, err := p.ReadVarBlob()
				return string(b), err
			})
			if err != nil {
				return k, parser.Context(err, "Parsing legacy taddresses")
			}
			addresses = addrs
		}
		k.TKeys = make([]WalletTKey, len(legacyKeys))
		for i, lk := range legacyKeys {
			key := lk.Key
			tk := WalletTKey{Type: TKeyHD, Key: &key, HDKeyNum: uint32ptr(uint32(i))}
			if i < len(addresses) {
				tk.Address = addresses[i]
			}
			k.TKeys[i] = tk
		}
	} else {
		k.TKeys, err = parser.ReadVec(p, ReadWalletTKey)
		if err != nil {
			return k, parser.Context(err, "Parsing tkeys")
		}
	}

	return k, nil
}

func uint32ptr(v uint32) *uint32 { return &v }
