package zingo

import (
	"github.com/pkg/errors"

	"github.com/zingolabs/zewif-migrate/parser"
)

// MemoDownloadOption controls how aggressively a Zingo wallet fetched
// transaction memos while syncing.
type MemoDownloadOption uint8

const (
	MemoDownloadNone MemoDownloadOption = iota
	MemoDownloadWallet
	MemoDownloadAll
)

// WalletOptions are the wallet's persisted sync preferences.
type WalletOptions struct {
	DownloadMemos MemoDownloadOption
	SpamThreshold int64
}

// DefaultWalletOptions is what a wallet serialized before options were
// introduced (version <= 23) is assumed to have used.
func DefaultWalletOptions() WalletOptions {
	return WalletOptions{DownloadMemos: MemoDownloadWallet, SpamThreshold: -1}
}

// ReadWalletOptions decodes a WalletOptions record. Versions at or below 1
// never wrote a spam threshold; it defaults to -1 (disabled) for those.
func ReadWalletOptions(p *parser.Parser) (WalletOptions, error) {
	var o WalletOptions
	version, err := p.ReadUint64()
	if err != nil {
		return o, parser.Context(err, "Parsing version")
	}
	b, err := p.ReadUint8()
	if err != nil {
		return o, parser.Context(err, "Parsing download_memos")
	}
	switch b {
	case 0:
		o.DownloadMemos = MemoDownloadNone
	case 1:
		o.DownloadMemos = MemoDownloadWallet
	case 2:
		o.DownloadMemos = MemoDownloadAll
	default:
		return o, parser.Context(errors.Errorf("invalid download_memos discriminant %d", b), "Parsing download_memos")
	}
	if version <= 1 {
		o.SpamThreshold = -1
	} else {
		v, err := p.ReadInt64()
		if err != nil {
			return o, parser.Context(err, "Parsing spam_threshold")
		}
		o.SpamThreshold = v
	}
	return o, nil
}

// ZecPriceInfo is the wallet's cached ZEC/fiat price bookkeeping. The
// "current" price itself is never persisted (it's assumed stale on load),
// so only the historical-fetch bookkeeping survives a round trip.
type ZecPriceInfo struct {
	Currency                      string
	LastHistoricalPricesFetchedAt *uint64
	HistoricalPricesRetryCount    uint64
}

// DefaultZecPriceInfo is what a wallet serialized before price info was
// introduced (version <= 13) is assumed to have used.
func DefaultZecPriceInfo() ZecPriceInfo {
	return ZecPriceInfo{Currency: "USD"}
}

// ReadZecPriceInfo decodes a ZecPriceInfo record.
func ReadZecPriceInfo(p *parser.Parser) (ZecPriceInfo, error) {
	info := ZecPriceInfo{Currency: "USD"}
	_, err := p.ReadUint64() // version; the current price is never persisted regardless
	if err != nil {
		return info, parser.Context(err, "Parsing version")
	}
	fetchedAt, err := parser.ReadOptional(p, (*parser.Parser).ReadUint64)
	if err != nil {
		return info, parser.Context(err, "Parsing last_historical_prices_fetched_at")
	}
	info.LastHistoricalPricesFetchedAt = fetchedAt
	if info.HistoricalPricesRetryCount, err = p.ReadUint64(); err != nil {
		return info, parser.Context(err, "Parsing historical_prices_retry_count")
	}
	return info, nil
}
