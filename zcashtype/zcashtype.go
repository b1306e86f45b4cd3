// Package zcashtype implements the Zcash/Bitcoin semantic value types shared
// by every source wallet format: fixed-width hashes, the Sapling/Orchard
// scalar-range u252, monetary amounts, network upgrade branch ids, lock
// times, client versions, and network identifiers.
package zcashtype

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
	"github.com/zingolabs/zewif-migrate/parser"
)

// U256 is a 32-byte little-endian value: note commitments, anchors,
// nullifiers, transaction ids. chainhash.Hash already gives us the
// equality, hex-display, and byte-order behavior a fixed 32-byte value needs.
type U256 = chainhash.Hash

// ReadU256 decodes a U256.
func ReadU256(p *parser.Parser) (U256, error) {
	b, err := p.ReadFixedBlob(32)
	if err != nil {
		return U256{}, parser.Context(err, "Parsing u256")
	}
	var h U256
	copy(h[:], b)
	return h, nil
}

// TxId is a transaction's content hash.
type TxId = U256

// ReadTxId decodes a TxId.
func ReadTxId(p *parser.Parser) (TxId, error) { return ReadU256(p) }

// U160 is a 20-byte little-endian value, used for P2PKH/P2SH hashes and
// transparent key ids.
type U160 [20]byte

// ReadU160 decodes a U160.
func ReadU160(p *parser.Parser) (U160, error) {
	b, err := p.ReadFixedBlob(20)
	if err != nil {
		return U160{}, parser.Context(err, "Parsing u160")
	}
	var h U160
	copy(h[:], b)
	return h, nil
}

func (h U160) String() string {
	return fmt.Sprintf("%x", [20]byte(h))
}

// U252 is a 32-byte value whose top four bits must be zero: the Pallas/
// Jubjub scalar range used for Sprout spending keys.
type U252 struct {
	inner U256
}

// NewU252 validates the high-nibble-zero invariant and constructs a U252.
func NewU252(b U256) (U252, error) {
	if b[0]&0xf0 != 0 {
		return U252{}, errors.New("First four bits of u252 must be zero")
	}
	return U252{inner: b}, nil
}

// Bytes returns the raw 32 bytes.
func (u U252) Bytes() [32]byte { return [32]byte(u.inner) }

// ReadU252 decodes a U252, enforcing the high-nibble-zero invariant.
func ReadU252(p *parser.Parser) (U252, error) {
	b, err := ReadU256(p)
	if err != nil {
		return U252{}, parser.Context(err, "Parsing u252")
	}
	u, err := NewU252(b)
	if err != nil {
		return U252{}, parser.Context(err, "Parsing u252")
	}
	return u, nil
}

// Amount is a signed zatoshi balance.
type Amount int64

// MaxMoney is the maximum valid Zcash amount, in zatoshis (21_000_000 ZEC).
const MaxMoney int64 = 21_000_000 * 100_000_000

// Valid reports whether the amount is within the Zcash-valid range.
func (a Amount) Valid() bool {
	return int64(a) >= -MaxMoney && int64(a) <= MaxMoney
}

// ReadAmount decodes a signed 64-bit zatoshi amount and validates its range.
func ReadAmount(p *parser.Parser) (Amount, error) {
	v, err := p.ReadInt64()
	if err != nil {
		return 0, parser.Context(err, "Parsing amount")
	}
	a := Amount(v)
	if !a.Valid() {
		return 0, parser.Context(errors.Errorf("amount %d out of valid range", v), "Parsing amount")
	}
	return a, nil
}

// BranchId identifies a Zcash network-upgrade consensus branch.
type BranchId uint32

const (
	BranchSprout    BranchId = 0
	BranchOverwinter BranchId = 0x5ba81b19
	BranchSapling   BranchId = 0x76b809bb
	BranchBlossom   BranchId = 0x2bb40e60
	BranchHeartwood BranchId = 0xf5b9230b
	BranchCanopy    BranchId = 0xe9ff75a6
	BranchNu5       BranchId = 0xc2d6d0b4
	BranchNu6       BranchId = 0xc8e71055
	BranchZFuture   BranchId = 0xffffffff
)

func (b BranchId) String() string {
	switch b {
	case BranchSprout:
		return "Sprout"
	case BranchOverwinter:
		return "Overwinter"
	case BranchSapling:
		return "Sapling"
	case BranchBlossom:
		return "Blossom"
	case BranchHeartwood:
		return "Heartwood"
	case BranchCanopy:
		return "Canopy"
	case BranchNu5:
		return "Nu5"
	case BranchNu6:
		return "Nu6"
	case BranchZFuture:
		return "ZFuture"
	default:
		return fmt.Sprintf("Unknown(0x%08x)", uint32(b))
	}
}

// ReadBranchId decodes a BranchId from a u32, failing on unknown values.
func ReadBranchId(p *parser.Parser) (BranchId, error) {
	v, err := p.ReadUint32()
	if err != nil {
		return 0, parser.Context(err, "Parsing branch id")
	}
	b := BranchId(v)
	switch b {
	case BranchSprout, BranchOverwinter, BranchSapling, BranchBlossom,
		BranchHeartwood, BranchCanopy, BranchNu5, BranchNu6, BranchZFuture:
		return b, nil
	default:
		return 0, parser.Context(errors.Errorf("unknown consensus branch id 0x%08x", v), "Parsing branch id")
	}
}

// LockTimeKind distinguishes the two LockTime variants.
type LockTimeKind int

const (
	LockTimeBlockHeight LockTimeKind = iota
	LockTimeTimestamp
)

// LockTime is either a block height or a Unix timestamp, bucketed on the
// Bitcoin-inherited 500_000_000 threshold.
type LockTime struct {
	Kind  LockTimeKind
	Value uint32
}

// AsOption normalises a zero block-height lock time to "absent".
func (l LockTime) AsOption() *LockTime {
	if l.Kind == LockTimeBlockHeight && l.Value == 0 {
		return nil
	}
	return &l
}

// ReadLockTime decodes a u32 and buckets it into a LockTime variant.
func ReadLockTime(p *parser.Parser) (LockTime, error) {
	v, err := p.ReadUint32()
	if err != nil {
		return LockTime{}, parser.Context(err, "Parsing lock time")
	}
	if v < 500_000_000 {
		return LockTime{Kind: LockTimeBlockHeight, Value: v}, nil
	}
	return LockTime{Kind: LockTimeTimestamp, Value: v}, nil
}

// SecondsSinceEpoch is a Unix timestamp in seconds.
type SecondsSinceEpoch uint64

// ReadSecondsSinceEpoch decodes a u64 timestamp.
func ReadSecondsSinceEpoch(p *parser.Parser) (SecondsSinceEpoch, error) {
	v, err := p.ReadUint64()
	if err != nil {
		return 0, parser.Context(err, "Parsing seconds since epoch")
	}
	return SecondsSinceEpoch(v), nil
}

// String formats the timestamp as ISO-8601 UTC, for debug output.
func (s SecondsSinceEpoch) String() string {
	return time.Unix(int64(s), 0).UTC().Format(time.RFC3339)
}

// ClientVersion is a zcashd-style encoded version: major*1e6 + minor*1e4 +
// revision*100 + build.
type ClientVersion uint32

// ReadClientVersion decodes a u32 client version.
func ReadClientVersion(p *parser.Parser) (ClientVersion, error) {
	v, err := p.ReadUint32()
	if err != nil {
		return 0, parser.Context(err, "Parsing client version")
	}
	return ClientVersion(v), nil
}

// Parts decomposes the version into its four components.
func (c ClientVersion) Parts() (major, minor, revision, build uint32) {
	v := uint32(c)
	major = v / 1_000_000
	minor = (v % 1_000_000) / 10_000
	revision = (v % 10_000) / 100
	build = v % 100
	return
}

// String formats a ClientVersion the way zcashd's `-version` output does.
func (c ClientVersion) String() string {
	major, minor, revision, build := c.Parts()
	switch {
	case build < 25:
		return fmt.Sprintf("%d.%d.%d-beta%d", major, minor, revision, build+1)
	case build < 50:
		return fmt.Sprintf("%d.%d.%d-rc%d", major, minor, revision, build-24)
	case build == 50:
		return fmt.Sprintf("%d.%d.%d", major, minor, revision)
	default:
		return fmt.Sprintf("%d.%d.%d-%d", major, minor, revision, build-50)
	}
}

// Network identifies the Zcash network a wallet belongs to.
type Network int

const (
	NetworkMain Network = iota
	NetworkTest
	NetworkRegtest
)

// ParseNetwork resolves a network tag string into a Network.
func ParseNetwork(s string) (Network, error) {
	switch s {
	case "main":
		return NetworkMain, nil
	case "test":
		return NetworkTest, nil
	case "regtest":
		return NetworkRegtest, nil
	default:
		return 0, errors.Errorf("unknown network %q", s)
	}
}

func (n Network) String() string {
	switch n {
	case NetworkMain:
		return "main"
	case NetworkTest:
		return "test"
	case NetworkRegtest:
		return "regtest"
	default:
		return "unknown"
	}
}

// IntID is an opaque little-endian u32 identifier, used for Zcash
// transaction version group ids.
type IntID uint32

// ReadIntID decodes an IntID.
func ReadIntID(p *parser.Parser) (IntID, error) {
	v, err := p.ReadUint32()
	if err != nil {
		return 0, parser.Context(err, "Parsing int id")
	}
	return IntID(v), nil
}

// Zcash transaction version-group constants.
const (
	OverwinterVersionGroupID IntID = 0x03c48270
	SaplingVersionGroupID    IntID = 0x892f2085
	Zip225VersionGroupID     IntID = 0x26a7270a
	ZFutureVersionGroupID    IntID = 0xffffffff
)

// Zcash transaction version constants.
const (
	OverwinterTxVersion uint32 = 3
	SaplingTxVersion    uint32 = 4
	Zip225TxVersion     uint32 = 5
	ZFutureTxVersion    uint32 = 0x0000ffff
)

// Groth proof and Sapling ciphertext sizes.
const (
	GrothProofSize          = 192
	SaplingV4EncCiphertext  = 580 + 16
	SaplingV4OutCiphertext  = 64 + 16
	SaplingV5EncCiphertext  = 580
	SaplingV5OutCiphertext  = 80
	PrivKeyBodyLenUncompressed = 279
	PrivKeyBodyLenCompressed   = 214
	PubKeyLenUncompressed      = 65
	PubKeyLenCompressed        = 33
)

// MnemonicLanguage is a BIP-39 wordlist language id.
type MnemonicLanguage uint8

const (
	LanguageEnglish MnemonicLanguage = iota
	LanguageSimplifiedChinese
	LanguageTraditionalChinese
	LanguageCzech
	LanguageFrench
	LanguageItalian
	LanguageJapanese
	LanguageKorean
	LanguagePortuguese
	LanguageSpanish
)

// ReadMnemonicLanguage decodes a BIP-39 language id, failing on unknown
// values.
func ReadMnemonicLanguage(p *parser.Parser) (MnemonicLanguage, error) {
	v, err := p.ReadUint8()
	if err != nil {
		return 0, parser.Context(err, "Parsing mnemonic language")
	}
	if v > uint8(LanguageSpanish) {
		return 0, parser.Context(errors.Errorf("unknown mnemonic language id %d", v), "Parsing mnemonic language")
	}
	return MnemonicLanguage(v), nil
}
