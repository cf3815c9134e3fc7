package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/s-pearce/ooicgsn-data-tools/internal/config"
	"github.com/s-pearce/ooicgsn-data-tools/internal/credentials"
	"github.com/s-pearce/ooicgsn-data-tools/internal/exitcode"
	"github.com/s-pearce/ooicgsn-data-tools/internal/ingest"
	"github.com/s-pearce/ooicgsn-data-tools/internal/logging"
	"github.com/s-pearce/ooicgsn-data-tools/internal/manifest"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run the ingest sheet: show what would be submitted (no network)",
	RunE:  runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringVarP(&cfg.CSVFile, "csvfile", "c", "", "Path to the ingest CSV sheet (required)")
	f.StringVarP(&cfg.IngestType, "ingest_type", "t", "", "Ingest type: telemetered or recovered (required)")
	f.StringVar(&cfg.BaseURL, "base-url", config.DefaultBaseURL, "OOINet base URL")
	f.StringVar(&cfg.NetrcPath, "netrc", defaultNetrc(), "netrc file holding the API credentials")
	_ = planCmd.MarkFlagRequired("csvfile")
	_ = planCmd.MarkFlagRequired("ingest_type")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := applyConfigFile(cmd); err != nil {
		log.Error().Err(err).Msg("config file failed")
		os.Exit(exitcode.ConfigError)
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	// A plan never talks to the API, so missing credentials only cost the
	// username shown in the previewed requests.
	username := "<netrc username>"
	if host, err := credentials.HostOf(cfg.BaseURL); err == nil {
		if creds, err := credentials.FromNetrc(cfg.NetrcPath, host); err == nil {
			username = creds.Username
		} else {
			log.Debug().Err(err).Msg("credentials unavailable, using placeholder username")
		}
	}

	rows, err := manifest.Load(cfg.CSVFile, cfg.IngestType, username)
	if err != nil {
		log.Error().Err(err).Msg("load failed")
		var parseErr *manifest.ParseError
		if errors.As(err, &parseErr) {
			os.Exit(exitcode.ParseError)
		}
		os.Exit(exitcode.ConfigError)
	}

	filtered, cabled := manifest.Filter(rows)

	fmt.Println("=== ooingest plan ===")
	fmt.Printf("Sheet:     %s\n", cfg.CSVFile)
	fmt.Printf("Type:      %s\n", cfg.IngestType)
	fmt.Printf("Rows:      %d loaded, %d eligible\n", len(rows), len(filtered))
	if len(cabled) > 0 {
		fmt.Printf("Cabled:    %v (excluded, handled by the cabled-array system)\n", cabled)
	}
	fmt.Println()

	if len(filtered) == 0 {
		fmt.Println("Removed cabled array reference designators from the ingestion, no other systems left.")
		return nil
	}

	disabled := 0
	for i := range filtered {
		row := &filtered[i]
		if row.Disabled() {
			disabled++
			fmt.Printf("skip (disabled): %s deployment %d\n", row.RefDes, row.Deployment)
			continue
		}
		row.RefDesFinal = ingest.RefDesFinal(row.RefDes)
		rendered, err := json.MarshalIndent(ingest.BuildRequest(row), "", "  ")
		if err != nil {
			log.Error().Err(err).Msg("render request failed")
			os.Exit(exitcode.ParseError)
		}
		fmt.Println(string(rendered))
	}

	fmt.Printf("\nWould submit %d requests (%d disabled entries skipped)\n", len(filtered)-disabled, disabled)
	return nil
}
