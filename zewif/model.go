// Package zewif is the protocol-agnostic wallet interchange model that
// every source-wallet migration (zcashd, Zingo, Zecwallet-Lite) converts
// into. It owns no parsing logic of its own; it is the common target
// type graph assembled by package migrate.
package zewif

import "github.com/zingolabs/zewif-migrate/zcashtype"

// ARID is a random-generated stable identifier for a wallet or account,
// distinct from any address or key material.
type ARID [16]byte

// TxId is the canonical Zcash transaction id.
type TxId = zcashtype.TxId

// ZewifTop is the root of a migration's output: every converted wallet
// plus the global transaction store they share references into.
type ZewifTop struct {
	Wallets      map[ARID]*ZewifWallet
	Transactions map[TxId]*Transaction
	Attachments  []Attachment
}

// NewZewifTop returns an empty top-level container.
func NewZewifTop() *ZewifTop {
	return &ZewifTop{
		Wallets:      map[ARID]*ZewifWallet{},
		Transactions: map[TxId]*Transaction{},
	}
}

// ZewifWallet is one migrated wallet: its network, optional seed, and
// the accounts it was organized into.
type ZewifWallet struct {
	ID          ARID
	Network     zcashtype.Network
	Seed        *SeedMaterial
	Accounts    map[ARID]*Account
	Attachments []Attachment
}

// NewZewifWallet returns an empty wallet on the given network.
func NewZewifWallet(network zcashtype.Network) *ZewifWallet {
	return &ZewifWallet{
		Network:  network,
		Accounts: map[ARID]*Account{},
	}
}

// Account groups addresses and the transactions relevant to them under
// one logical spending identity.
type Account struct {
	ID                   ARID
	Name                 string
	ZIP32AccountIndex    *uint32
	Addresses            map[string]*Address // keyed by Address.AddressString()
	RelevantTransactions map[TxId]struct{}
	SaplingSentOutputs   []SaplingSentOutput
	OrchardSentOutputs   []OrchardSentOutput
	Attachments          []Attachment
}

// NewAccount returns an empty account with the given display name.
func NewAccount(name string) *Account {
	return &Account{
		Name:                 name,
		Addresses:            map[string]*Address{},
		RelevantTransactions: map[TxId]struct{}{},
	}
}

// AddTransaction records txid as relevant to this account.
func (a *Account) AddTransaction(txid TxId) {
	a.RelevantTransactions[txid] = struct{}{}
}

// SaplingSentOutput is a plaintext record of a Sapling output this
// account's viewing key decrypted, kept for selective disclosure.
type SaplingSentOutput struct {
	TxId      TxId
	OutIndex  uint32
	Recipient string
	Value     zcashtype.Amount
	Memo      []byte
}

// OrchardSentOutput is the Orchard analogue of SaplingSentOutput.
type OrchardSentOutput struct {
	TxId      TxId
	ActionIdx uint32
	Recipient string
	Value     zcashtype.Amount
	Memo      []byte
}

// Attachment is a vendor-extension envelope ZeWIF carries opaquely:
// migration never interprets its contents.
type Attachment struct {
	VendorID string
	Name     string
	Data     []byte
}

// AddressKind discriminates Address's ProtocolAddress payload.
type AddressKind uint8

const (
	AddressTransparent AddressKind = iota
	AddressShielded
	AddressUnified
)

// Address is one address an account owns: its protocol-specific payload
// plus the display metadata common to every kind.
type Address struct {
	Kind        AddressKind
	Transparent *TransparentAddress
	Shielded    *ShieldedAddress
	Unified     *UnifiedAddress
	Name        string
	Purpose     string
}

// AddressString returns the payload's encoded address string,
// regardless of kind.
func (a *Address) AddressString() string {
	switch a.Kind {
	case AddressTransparent:
		return a.Transparent.Address
	case AddressShielded:
		return a.Shielded.Address
	case AddressUnified:
		return a.Unified.Address
	default:
		return ""
	}
}

// TransparentAddress is a t-address and whatever spend authority or HD
// derivation metadata the source wallet recorded for it.
type TransparentAddress struct {
	Address       string
	SpendingKey   []byte // serialized WIF/raw privkey, if known
	DerivationPath string
}

// ShieldedAddress is a Sapling or Sprout z-address.
type ShieldedAddress struct {
	Address          string
	IncomingViewingKey []byte
	SpendingKey      *SpendingKey
	Diversifier      []byte
}

// UnifiedAddress is a u-address with its component receivers.
type UnifiedAddress struct {
	Address        string
	ReceiverTypes  []string
	DiversifierIdx []byte
	Transparent    *TransparentAddress
	Sapling        *ShieldedAddress
	Orchard        *ShieldedAddress
}

// SeedMaterialKind discriminates SeedMaterial's payload. Currently only
// BIP-39 mnemonics are produced by any migration.
type SeedMaterialKind uint8

const (
	SeedBip39Mnemonic SeedMaterialKind = iota
	// SeedBip39Entropy marks a wallet that recorded only its raw seed
	// entropy (Zingo and Zecwallet-Lite), not the mnemonic phrase
	// itself. Mnemonic still carries a phrase, recovered from the
	// entropy at migration time.
	SeedBip39Entropy
)

// SeedMaterial is the wallet's root key material, if the source wallet
// retained it.
type SeedMaterial struct {
	Kind     SeedMaterialKind
	Mnemonic string
}

// SpendingKeyKind discriminates SpendingKey's payload.
type SpendingKeyKind uint8

const (
	SpendingKeySaplingExtended SpendingKeyKind = iota
	SpendingKeyRaw
)

// SpendingKey is either a full ZIP-32 Sapling extended spending key or
// an opaque 32-byte raw key, preserved exactly as the source recorded
// it.
type SpendingKey struct {
	Kind SpendingKeyKind

	// SaplingExtended fields
	Ask              zcashtype.U256
	Nsk              zcashtype.U256
	Ovk              zcashtype.U256
	HasDerivation    bool
	Depth            uint8
	ParentFingerprint uint32
	ChildIndex       uint32
	ChainCode        zcashtype.U256
	DK               zcashtype.U256

	// Raw
	Raw [32]byte
}
