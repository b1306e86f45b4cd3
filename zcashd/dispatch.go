package zcashd

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/zingolabs/zewif-migrate/bdb"
	"github.com/zingolabs/zewif-migrate/parser"
	"github.com/zingolabs/zewif-migrate/zcashd/tx"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// dispatcher pulls per-keyname records out of a bdb.Dump and assembles a
// ZcashdWallet, tracking which raw keys it has consumed.
type dispatcher struct {
	dump      *bdb.Dump
	unparsed  map[string]bdb.DBKey
	logger    *logrus.Logger
}

// ParseDump decodes a bdb.Dump into a ZcashdWallet, returning alongside
// it the set of dump entries that no known keyname claimed.
func ParseDump(dump *bdb.Dump) (*ZcashdWallet, []bdb.DBKey, error) {
	d := &dispatcher{dump: dump, unparsed: map[string]bdb.DBKey{}, logger: logrus.StandardLogger()}
	for _, name := range dump.Keynames() {
		for _, e := range dump.ByKeyname(name) {
			d.unparsed[rawKeyID(e.Key)] = e.Key
		}
	}

	w := &ZcashdWallet{}
	var err error

	if w.BestBlock, err = d.blockLocator("bestblock"); err != nil {
		return nil, nil, err
	}
	if w.DefaultKey, err = d.defaultKey(); err != nil {
		return nil, nil, err
	}
	if w.Keys, err = d.keys(); err != nil {
		return nil, nil, err
	}
	if w.MinVersion, err = d.clientVersion("minversion"); err != nil {
		return nil, nil, err
	}
	if w.AddressNames, err = d.addressStrings("name"); err != nil {
		return nil, nil, err
	}
	if w.OrderPosNext, err = d.optionalI64("orderposnext"); err != nil {
		return nil, nil, err
	}
	if w.KeyPool, err = d.keyPool(); err != nil {
		return nil, nil, err
	}
	if w.AddressPurposes, err = d.addressStrings("purpose"); err != nil {
		return nil, nil, err
	}
	if w.SaplingZAddresses, err = d.saplingZAddresses(); err != nil {
		return nil, nil, err
	}
	if w.SaplingKeys, err = d.saplingKeys(); err != nil {
		return nil, nil, err
	}
	if w.Transactions, err = d.transactions(); err != nil {
		return nil, nil, err
	}
	if w.ClientVersion, err = d.clientVersion("version"); err != nil {
		return nil, nil, err
	}
	if w.WitnessCacheSize, err = d.requiredI64("witnesscachesize"); err != nil {
		return nil, nil, err
	}
	if w.SproutKeys, err = d.sproutKeys(); err != nil {
		return nil, nil, err
	}
	if w.NetworkInfo, err = d.networkInfo(); err != nil {
		return nil, nil, err
	}
	if w.OrchardTree, err = d.orchardTree(); err != nil {
		return nil, nil, err
	}
	if w.UnifiedAccounts, err = d.unifiedAccounts(); err != nil {
		return nil, nil, err
	}
	if w.MnemonicPhrase, err = d.mnemonicPhrase(); err != nil {
		return nil, nil, err
	}
	if w.MnemonicHDChain, err = d.mnemonicHDChain(); err != nil {
		return nil, nil, err
	}
	if w.SendRecipients, err = d.sendRecipients(); err != nil {
		return nil, nil, err
	}
	if w.BestBlockNoMerkle, err = d.optionalBlockLocator("bestblock_nomerkle"); err != nil {
		return nil, nil, err
	}

	remaining := make([]bdb.DBKey, 0, len(d.unparsed))
	for _, k := range d.unparsed {
		remaining = append(remaining, k)
	}
	return w, remaining, nil
}

func rawKeyID(k bdb.DBKey) string {
	return k.Keyname + "\x00" + string(k.Suffix)
}

func (d *dispatcher) mark(k bdb.DBKey) {
	delete(d.unparsed, rawKeyID(k))
}

func (d *dispatcher) entries(keyname string) []bdb.Entry {
	return d.dump.ByKeyname(keyname)
}

func (d *dispatcher) singleValue(keyname string) ([]byte, bool) {
	es := d.entries(keyname)
	if len(es) == 0 {
		return nil, false
	}
	d.mark(es[0].Key)
	return es[0].Value, true
}

func (d *dispatcher) blockLocator(keyname string) (BlockLocator, error) {
	value, ok := d.singleValue(keyname)
	if !ok {
		return BlockLocator{}, errors.Errorf("missing required record: %s", keyname)
	}
	if len(value) == 0 {
		return BlockLocator{}, nil
	}
	return parseWhole(value, ReadBlockLocator, keyname)
}

func (d *dispatcher) optionalBlockLocator(keyname string) (*BlockLocator, error) {
	value, ok := d.singleValue(keyname)
	if !ok {
		return nil, nil
	}
	if len(value) == 0 {
		return &BlockLocator{}, nil
	}
	bl, err := parseWhole(value, ReadBlockLocator, keyname)
	if err != nil {
		return nil, err
	}
	return &bl, nil
}

func (d *dispatcher) defaultKey() (PubKey, error) {
	value, ok := d.singleValue("defaultkey")
	if !ok {
		return PubKey{}, errors.New("missing required record: defaultkey")
	}
	return parseWhole(value, ReadPubKey, "defaultkey")
}

func (d *dispatcher) clientVersion(keyname string) (zcashtype.ClientVersion, error) {
	value, ok := d.singleValue(keyname)
	if !ok {
		return 0, errors.Errorf("missing required record: %s", keyname)
	}
	return parseWhole(value, zcashtype.ReadClientVersion, keyname)
}

func (d *dispatcher) requiredI64(keyname string) (int64, error) {
	value, ok := d.singleValue(keyname)
	if !ok {
		return 0, errors.Errorf("missing required record: %s", keyname)
	}
	return parseWhole(value, (*parser.Parser).ReadInt64, keyname)
}

func (d *dispatcher) optionalI64(keyname string) (*int64, error) {
	value, ok := d.singleValue(keyname)
	if !ok {
		return nil, nil
	}
	v, err := parseWhole(value, (*parser.Parser).ReadInt64, keyname)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (d *dispatcher) addressStrings(keyname string) (map[Address]string, error) {
	out := map[Address]string{}
	for _, e := range d.entries(keyname) {
		addr, err := parseWhole(e.Key.Suffix, ReadAddress, keyname+" key")
		if err != nil {
			return nil, err
		}
		s, err := parseWhole(e.Value, (*parser.Parser).ReadString, keyname+" value")
		if err != nil {
			return nil, err
		}
		if _, dup := out[addr]; dup {
			return nil, errors.Errorf("duplicate address found: %s", addr)
		}
		out[addr] = s
		d.mark(e.Key)
	}
	return out, nil
}

func (d *dispatcher) keys() (map[string]Key, error) {
	keyRecords := d.entries("key")
	metaRecords := d.entries("keymeta")
	if len(keyRecords) != len(metaRecords) {
		return nil, errors.New("mismatched key and keymeta records")
	}
	metaByPub := map[string]bdb.Entry{}
	for _, m := range metaRecords {
		metaByPub[string(m.Key.Suffix)] = m
	}

	out := map[string]Key{}
	for _, e := range keyRecords {
		pubkey, err := parseWhole(e.Key.Suffix, ReadPubKey, "pubkey")
		if err != nil {
			return nil, err
		}
		privkey, err := parseWhole(e.Value, ReadPrivKey, "privkey")
		if err != nil {
			return nil, err
		}
		m, ok := metaByPub[string(e.Key.Suffix)]
		if !ok {
			return nil, errors.New("getting metadata: no matching keymeta record")
		}
		metadata, err := parseWhole(m.Value, ReadKeyMetadata, "metadata")
		if err != nil {
			return nil, err
		}
		key, err := NewKey(pubkey, privkey, metadata)
		if err != nil {
			return nil, errors.Wrap(err, "creating keypair")
		}
		out[string(pubkey.Data)] = key
		d.mark(e.Key)
		d.mark(m.Key)
	}
	return out, nil
}

func (d *dispatcher) saplingKeys() (map[SaplingIncomingViewingKey]SaplingKey, error) {
	out := map[SaplingIncomingViewingKey]SaplingKey{}
	keyRecords := d.entries("sapzkey")
	if len(keyRecords) == 0 {
		return out, nil
	}
	metaRecords := d.entries("sapzkeymeta")
	if len(keyRecords) != len(metaRecords) {
		return nil, errors.New("mismatched sapzkey and sapzkeymeta records")
	}
	metaByIVK := map[string]bdb.Entry{}
	for _, m := range metaRecords {
		metaByIVK[string(m.Key.Suffix)] = m
	}
	for _, e := range keyRecords {
		ivk, err := parseWhole(e.Key.Suffix, ReadSaplingIncomingViewingKey, "ivk")
		if err != nil {
			return nil, err
		}
		spendingKey, err := parseWhole(e.Value, ReadSaplingExtendedSpendingKey, "spending_key")
		if err != nil {
			return nil, err
		}
		m, ok := metaByIVK[string(e.Key.Suffix)]
		if !ok {
			return nil, errors.New("getting sapzkeymeta metadata: no matching record")
		}
		metadata, err := parseWhole(m.Value, ReadKeyMetadata, "sapzkeymeta metadata")
		if err != nil {
			return nil, err
		}
		out[ivk] = SaplingKey{IVK: ivk, Key: spendingKey, Metadata: metadata}
		d.mark(e.Key)
		d.mark(m.Key)
	}
	return out, nil
}

func (d *dispatcher) sproutKeys() (map[SproutPaymentAddress]SproutSpendingKey, error) {
	out := map[SproutPaymentAddress]SproutSpendingKey{}
	keyRecords := d.entries("zkey")
	if len(keyRecords) == 0 {
		return out, nil
	}
	metaRecords := d.entries("zkeymeta")
	if len(keyRecords) != len(metaRecords) {
		return nil, errors.New("mismatched zkey and zkeymeta records")
	}
	metaByAddr := map[string]bdb.Entry{}
	for _, m := range metaRecords {
		metaByAddr[string(m.Key.Suffix)] = m
	}
	for _, e := range keyRecords {
		addr, err := parseWhole(e.Key.Suffix, ReadSproutPaymentAddress, "payment_address")
		if err != nil {
			return nil, err
		}
		spendingKey, err := parseWhole(e.Value, zcashtype.ReadU252, "spending_key")
		if err != nil {
			return nil, err
		}
		m, ok := metaByAddr[string(e.Key.Suffix)]
		if !ok {
			return nil, errors.New("getting metadata: no matching zkeymeta record")
		}
		metadata, err := parseWhole(m.Value, ReadKeyMetadata, "metadata")
		if err != nil {
			return nil, err
		}
		out[addr] = SproutSpendingKey{Key: spendingKey, Metadata: metadata}
		d.mark(e.Key)
		d.mark(m.Key)
	}
	return out, nil
}

func (d *dispatcher) keyPool() (map[int64]KeyPoolEntry, error) {
	out := map[int64]KeyPoolEntry{}
	for _, e := range d.entries("pool") {
		index, err := parseWhole(e.Key.Suffix, (*parser.Parser).ReadInt64, "key pool index")
		if err != nil {
			return nil, err
		}
		entry, err := parseWhole(e.Value, ReadKeyPoolEntry, "key pool entry")
		if err != nil {
			return nil, err
		}
		out[index] = entry
		d.mark(e.Key)
	}
	return out, nil
}

func (d *dispatcher) saplingZAddresses() (map[SaplingZPaymentAddress]SaplingIncomingViewingKey, error) {
	out := map[SaplingZPaymentAddress]SaplingIncomingViewingKey{}
	for _, e := range d.entries("sapzaddr") {
		addr, err := parseWhole(e.Key.Suffix, ReadSaplingZPaymentAddress, "payment address")
		if err != nil {
			return nil, err
		}
		ivk, err := parseWhole(e.Value, ReadSaplingIncomingViewingKey, "viewing key")
		if err != nil {
			return nil, err
		}
		if _, dup := out[addr]; dup {
			return nil, errors.Errorf("duplicate payment address found: %+v", addr)
		}
		out[addr] = ivk
		d.mark(e.Key)
	}
	return out, nil
}

func (d *dispatcher) transactions() (map[zcashtype.TxId]*tx.WalletTx, error) {
	out := map[zcashtype.TxId]*tx.WalletTx{}
	for _, e := range d.entries("tx") {
		txid, err := parseWhole(e.Key.Suffix, zcashtype.ReadTxId, "txid")
		if err != nil {
			return nil, err
		}
		wtx, err := tx.ParseWalletTx(e.Value)
		if err != nil {
			return nil, parser.Context(err, "Parsing wallet transaction")
		}
		out[txid] = wtx
		d.mark(e.Key)
	}
	return out, nil
}

func (d *dispatcher) networkInfo() (NetworkInfo, error) {
	value, ok := d.singleValue("networkinfo")
	if !ok {
		return NetworkInfo{}, errors.New("missing required record: networkinfo")
	}
	return parseWhole(value, ReadNetworkInfo, "networkinfo")
}

func (d *dispatcher) orchardTree() (*tx.OrchardNoteCommitmentTree, error) {
	value, ok := d.singleValue("orchard_note_commitment_tree")
	if !ok {
		return nil, errors.New("missing required record: orchard_note_commitment_tree")
	}
	t, err := tx.ParseOrchardNoteCommitmentTree(value)
	if err != nil {
		return nil, parser.Context(err, "Parsing orchard note commitment tree")
	}
	return t, nil
}

func (d *dispatcher) mnemonicPhrase() (Bip39Mnemonic, error) {
	es := d.entries("mnemonicphrase")
	if len(es) == 0 {
		return Bip39Mnemonic{}, errors.New("missing required record: mnemonicphrase")
	}
	e := es[0]
	fingerprint, err := parseWhole(e.Key.Suffix, zcashtype.ReadU256, "seed fingerprint")
	if err != nil {
		return Bip39Mnemonic{}, err
	}
	m, err := parseWhole(e.Value, ReadBip39Mnemonic, "mnemonic phrase")
	if err != nil {
		return Bip39Mnemonic{}, err
	}
	m.Fingerprint = fingerprint
	d.mark(e.Key)
	return m, nil
}

func (d *dispatcher) mnemonicHDChain() (MnemonicHDChain, error) {
	value, ok := d.singleValue("mnemonichdchain")
	if !ok {
		return MnemonicHDChain{}, errors.New("missing required record: mnemonichdchain")
	}
	return parseWhole(value, ReadMnemonicHDChain, "mnemonichdchain")
}

func (d *dispatcher) sendRecipients() (map[zcashtype.TxId][]RecipientMapping, error) {
	out := map[zcashtype.TxId][]RecipientMapping{}
	for _, e := range d.entries("recipientmapping") {
		p := parser.New(e.Key.Suffix, false)
		txid, err := zcashtype.ReadTxId(p)
		if err != nil {
			return nil, parser.Context(err, "Parsing txid")
		}
		recipient, err := ReadRecipientAddress(p)
		if err != nil {
			return nil, parser.Context(err, "Parsing recipient_address")
		}
		if err := p.CheckFinished(); err != nil {
			return nil, err
		}
		unified, err := parseWhole(e.Value, (*parser.Parser).ReadString, "unified_address")
		if err != nil {
			return nil, err
		}
		out[txid] = append(out[txid], RecipientMapping{Recipient: recipient, UnifiedAddress: unified})
		d.mark(e.Key)
	}
	return out, nil
}

func (d *dispatcher) unifiedAccounts() (*UnifiedAccounts, error) {
	addrEntries := d.entries("unifiedaddrmeta")
	if len(addrEntries) == 0 {
		return nil, nil
	}

	addressMetadata := map[zcashtype.U256]UnifiedAddressMetadata{}
	for _, e := range addrEntries {
		metadata, err := parseWhole(e.Key.Suffix, ReadUnifiedAddressMetadata, "UnifiedAddressMetadata key")
		if err != nil {
			return nil, err
		}
		addressMetadata[metadata.KeyID] = metadata
		if err := checkZeroDiscriminant(e.Value, "UnifiedAddressMetadata"); err != nil {
			return nil, err
		}
		d.mark(e.Key)
	}

	accountMetadata := map[zcashtype.U256]UnifiedAccountMetadata{}
	for _, e := range d.entries("unifiedaccount") {
		metadata, err := parseWhole(e.Key.Suffix, ReadUnifiedAccountMetadata, "UnifiedAccountMetadata key")
		if err != nil {
			return nil, err
		}
		accountMetadata[metadata.KeyID] = metadata
		if err := checkZeroDiscriminant(e.Value, "UnifiedAccountMetadata"); err != nil {
			return nil, err
		}
		d.mark(e.Key)
	}

	fullViewingKeys := map[zcashtype.U256]string{}
	for _, e := range d.entries("unifiedfvk") {
		keyID, err := parseWhole(e.Key.Suffix, zcashtype.ReadU256, "UnifiedFullViewingKey key")
		if err != nil {
			return nil, err
		}
		fvk, err := parseWhole(e.Value, (*parser.Parser).ReadString, "UnifiedFullViewingKey value")
		if err != nil {
			return nil, err
		}
		fullViewingKeys[keyID] = fvk
		d.mark(e.Key)
	}

	if len(addressMetadata) == 0 || len(fullViewingKeys) == 0 || len(accountMetadata) == 0 {
		return nil, nil
	}

	return &UnifiedAccounts{
		AddressMetadata: addressMetadata,
		FullViewingKeys: fullViewingKeys,
		AccountMetadata: accountMetadata,
	}, nil
}

// parseWhole runs decode over buf and requires the buffer be fully
// consumed, wrapping any failure with a context phrase.
func parseWhole[T any](buf []byte, decode func(*parser.Parser) (T, error), phrase string) (T, error) {
	p := parser.New(buf, false)
	v, err := decode(p)
	if err != nil {
		var zero T
		return zero, parser.Context(err, phrase)
	}
	if err := p.CheckFinished(); err != nil {
		var zero T
		return zero, parser.Context(err, phrase)
	}
	return v, nil
}
