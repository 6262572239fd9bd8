// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the omics-reporter CLI, the
// rare-disease multi-omics reporting pipeline.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/omics-reporter/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if set, otherwise the secret value for
// key if one was loaded.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the omics-reporter CLI.
var rootCmd = &cobra.Command{
	Use:   "omics-reporter",
	Short: "Rare disease multi-omics reporting pipeline",
	Long: `omics-reporter scores a tabular variant list with a deterministic
rule set, summarizes differential-expression results, and synthesizes a
markdown findings report. Report synthesis uses a generative model when
a credential is configured and falls back to a fixed template otherwise,
so a report always exists.

Each pipeline stage is a subcommand: score, deseq, summarize, and
report. The report subcommand runs the stages end to end.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./omics-reporter.yaml or ~/.config/omics-reporter/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("omics-reporter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "omics-reporter"))
		}
	}

	viper.SetEnvPrefix("OMICS_REPORTER")
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
