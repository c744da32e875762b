package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/claimflag/internal/config"
)

var cfg config.Config

var configFile string

var rootCmd = &cobra.Command{
	Use:   "claimflag",
	Short: "Duplicate procedure billing classifier",
	Long: "Classifies claim line-items to detect duplicate or improperly split procedure billing,\n" +
		"either by temporal clustering within a claim cohort or by NCCI edit-pair intersection.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg.ApplyDefaults()
		if configFile != "" {
			return cfg.LoadFromFile(configFile)
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("CLAIMFLAG_DB_URL"), "Postgres connection string (or set CLAIMFLAG_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&configFile, "config", "", "Path to YAML config with classification thresholds")
}
