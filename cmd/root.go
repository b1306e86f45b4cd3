// Copyright (c) 2019-2020 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zingolabs/zewif-migrate/common/logging"
)

var cfgFile string

// rootCmd is the migration tool's base command. It carries no Run of its
// own; the real work happens in the `migrate` subcommands.
var rootCmd = &cobra.Command{
	Use:   "zewif-migrate",
	Short: "Migrate zcashd, Zingo, and Zecwallet-Lite wallets into the ZeWIF interchange model",
	Long: `zewif-migrate reads a wallet file produced by zcashd (as a BerkeleyDB
dump), Zingo, or Zecwallet-Lite and converts it into the protocol-agnostic
ZeWIF interchange model, preserving every account, address, transaction,
note, and piece of key material the source wallet recorded.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(viper.GetString("log-level"))
		if err != nil {
			return errors.Wrap(err, "parsing log level")
		}
		return logging.Configure(level, viper.GetString("log-file"))
	},
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return !info.IsDir()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Print the full context chain, most-specific-first.
		fmt.Println(chainString(err))
		os.Exit(1)
	}
}

// chainString renders an error's Cause() chain, most specific cause
// first.
func chainString(err error) string {
	var lines []string
	for err != nil {
		lines = append(lines, err.Error())
		cause, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		inner := cause.Cause()
		if inner == nil {
			break
		}
		err = inner
	}
	out := ""
	for i := len(lines) - 1; i >= 0; i-- {
		if i < len(lines)-1 {
			out += "\n"
		}
		out += lines[i]
	}
	return out
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(migrateCmd)
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./zewif-migrate.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (logrus: trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "log file to write to (default: stderr)")
	rootCmd.PersistentFlags().Bool("trace", false, "enable parser trace logging of every decoded field")

	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("trace", rootCmd.PersistentFlags().Lookup("trace"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("zewif-migrate")
	}
	viper.SetEnvPrefix("ZEWIF")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
