package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zingolabs/zewif-migrate/bdb"
	"github.com/zingolabs/zewif-migrate/migrate"
	"github.com/zingolabs/zewif-migrate/zcashd"
	"github.com/zingolabs/zewif-migrate/zecwallet"
	"github.com/zingolabs/zewif-migrate/zewif"
	"github.com/zingolabs/zewif-migrate/zingo"
)

// migrateCmd groups the per-source-wallet migration subcommands. Each
// takes exactly one positional argument: the wallet file path.
// Serializing the resulting ZewifTop to disk is left to an external
// collaborator; this command only reports a summary.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate a wallet file into the ZeWIF interchange model",
}

var migrateZcashdCmd = &cobra.Command{
	Use:   "zcashd <db_dump-output-or-wallet-path>",
	Short: "Migrate a zcashd wallet.dat (via db_dump output) into ZeWIF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		var dump *bdb.Dump
		var err error
		if raw, readErr := os.ReadFile(path); readErr == nil && looksLikeDbDumpText(raw) {
			dump, err = bdb.Parse(string(raw))
		} else {
			dump, err = bdb.Run(path)
		}
		if err != nil {
			return errors.Wrap(err, "reading db_dump output")
		}

		wallet, unparsed, err := zcashd.ParseDump(dump)
		if err != nil {
			return errors.Wrap(err, "parsing zcashd wallet records")
		}
		reportUnparsedKeys(unparsed)

		top, err := migrate.FromZcashd(wallet)
		if err != nil {
			return errors.Wrap(err, "migrating zcashd wallet")
		}
		printSummary(top)
		return nil
	},
}

var migrateZingoCmd = &cobra.Command{
	Use:   "zingo <wallet-file>",
	Short: "Migrate a Zingo wallet file into ZeWIF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "reading wallet file")
		}
		wallet, err := zingo.Parse(raw, viper.GetBool("trace"))
		if err != nil {
			return errors.Wrap(err, "parsing Zingo wallet")
		}
		top, err := migrate.FromZingo(wallet)
		if err != nil {
			return errors.Wrap(err, "migrating Zingo wallet")
		}
		printSummary(top)
		return nil
	},
}

var migrateZecwalletCmd = &cobra.Command{
	Use:   "zecwallet <wallet-file>",
	Short: "Migrate a Zecwallet-Lite wallet file into ZeWIF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "reading wallet file")
		}
		wallet, err := zecwallet.Parse(raw, viper.GetBool("trace"))
		if err != nil {
			return errors.Wrap(err, "parsing Zecwallet-Lite wallet")
		}
		top, err := migrate.FromZecwallet(wallet)
		if err != nil {
			return errors.Wrap(err, "migrating Zecwallet-Lite wallet")
		}
		printSummary(top)
		return nil
	},
}

// looksLikeDbDumpText reports whether raw already looks like the textual
// output of db_dump (rather than a raw .dat file needing that external
// utility run over it), so callers can feed a previously captured dump
// directly without re-invoking db_dump.
func looksLikeDbDumpText(raw []byte) bool {
	s := string(raw)
	return strings.Contains(s, "HEADER=END") || strings.Contains(s, "VERSION=")
}

// reportUnparsedKeys lists any dump entries no keyname dispatcher
// claimed, grouped by keyname.
func reportUnparsedKeys(unparsed []bdb.DBKey) {
	if len(unparsed) == 0 {
		return
	}
	byName := map[string]int{}
	for _, k := range unparsed {
		byName[k.Keyname]++
	}
	for name, count := range byName {
		logrus.WithFields(logrus.Fields{"keyname": name, "count": count}).Warn("unparsed dump records")
	}
}

func printSummary(top *zewif.ZewifTop) {
	fmt.Printf("wallets: %d\n", len(top.Wallets))
	fmt.Printf("transactions: %d\n", len(top.Transactions))
	for id, w := range top.Wallets {
		fmt.Printf("  wallet %x: network=%s accounts=%d\n", id, w.Network, len(w.Accounts))
		for _, a := range w.Accounts {
			fmt.Printf("    account %q: addresses=%d transactions=%d\n", a.Name, len(a.Addresses), len(a.RelevantTransactions))
		}
	}
}

func init() {
	migrateCmd.AddCommand(migrateZcashdCmd)
	migrateCmd.AddCommand(migrateZingoCmd)
	migrateCmd.AddCommand(migrateZecwalletCmd)
}
