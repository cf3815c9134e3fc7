package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/s-pearce/ooicgsn-data-tools/internal/config"
)

var cfg config.Config

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ooingest",
	Short: "OOI ingest-sheet → M2M ingest-request submitter",
	Long:  "Reads a CSV ingest sheet and submits one ingest request per row to the OOINet M2M API, recording the API responses to a timestamped result CSV.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfgFile, "config", "", "Optional YAML config file (base_url, netrc, out_dir)")
}

// applyConfigFile merges values from --config into cfg. Flags set explicitly
// on the command line win over file values.
func applyConfigFile(cmd *cobra.Command) error {
	if cfgFile == "" {
		return nil
	}
	fv, err := config.FromFile(cfgFile)
	if err != nil {
		return err
	}
	if fv.BaseURL != "" && !cmd.Flags().Changed("base-url") {
		cfg.BaseURL = fv.BaseURL
	}
	if fv.Netrc != "" && !cmd.Flags().Changed("netrc") {
		cfg.NetrcPath = fv.Netrc
	}
	if fv.OutDir != "" && !cmd.Flags().Changed("out-dir") {
		cfg.OutDir = fv.OutDir
	}
	return nil
}

// defaultNetrc is the conventional per-user credential file location.
func defaultNetrc() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".netrc"
	}
	return filepath.Join(home, ".netrc")
}
