package zcashd

import (
	"github.com/zingolabs/zewif-migrate/zcashd/tx"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// ZcashdWallet is the fully-parsed record set of a zcashd wallet.dat
// dump.
type ZcashdWallet struct {
	AddressNames      map[Address]string
	AddressPurposes   map[Address]string
	BestBlockNoMerkle *BlockLocator
	BestBlock         BlockLocator
	ClientVersion     zcashtype.ClientVersion
	DefaultKey        PubKey
	KeyPool           map[int64]KeyPoolEntry
	// Keys is keyed by the raw serialized pubkey bytes: PubKey itself
	// is not comparable (it embeds a variable-length []byte), so it
	// cannot be a map key directly.
	Keys              map[string]Key
	MinVersion        zcashtype.ClientVersion
	MnemonicHDChain   MnemonicHDChain
	MnemonicPhrase    Bip39Mnemonic
	NetworkInfo       NetworkInfo
	OrchardTree       *tx.OrchardNoteCommitmentTree
	OrderPosNext      *int64
	SaplingKeys       map[SaplingIncomingViewingKey]SaplingKey
	SaplingZAddresses map[SaplingZPaymentAddress]SaplingIncomingViewingKey
	SendRecipients    map[zcashtype.TxId][]RecipientMapping
	SproutKeys        map[SproutPaymentAddress]SproutSpendingKey
	Transactions      map[zcashtype.TxId]*tx.WalletTx
	UnifiedAccounts   *UnifiedAccounts
	WitnessCacheSize  int64
}
