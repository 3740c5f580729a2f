// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubmed-fetcher CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-fetcher/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd runs the fetch pipeline for one positional query.
var rootCmd = &cobra.Command{
	Use:   "pubmed-fetcher <query>",
	Short: "Fetch PubMed citation records for a search term",
	Long: `pubmed-fetcher queries PubMed for articles matching a search term, fetches
the full citation records in one batch, extracts title, authors, and
affiliations, and writes the results to a JSON file.

A search that finds nothing, or a failed NCBI call, is reported on the
console and still exits successfully; only an unparseable citation
document fails the run.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
	RunE:          runFetch,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubmed-fetcher.yaml or ~/.config/pubmed-fetcher/config.yaml)")

	rootCmd.Flags().String("output", "pubmed_results.json", "output file for the JSON snapshot")
	rootCmd.Flags().Int("max-results", 10, "maximum number of identifiers to request")
	rootCmd.Flags().Bool("verbose", false, "log request details and the parsed citation tree")
	rootCmd.Flags().Bool("archive", false, "also store the run in the archive database")
	rootCmd.Flags().String("archive-dir", "archive", "directory holding the archive database")

	viper.BindPFlag("output.file", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("search.max_results", rootCmd.Flags().Lookup("max-results"))
	viper.BindPFlag("archive.enabled", rootCmd.Flags().Lookup("archive"))
	viper.BindPFlag("archive.dir", rootCmd.Flags().Lookup("archive-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubmed-fetcher")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubmed-fetcher"))
		}
	}

	viper.SetEnvPrefix("PUBMED_FETCHER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
