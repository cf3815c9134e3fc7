package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/s-pearce/ooicgsn-data-tools/internal/config"
	"github.com/s-pearce/ooicgsn-data-tools/internal/credentials"
	"github.com/s-pearce/ooicgsn-data-tools/internal/exitcode"
	"github.com/s-pearce/ooicgsn-data-tools/internal/ingest"
	"github.com/s-pearce/ooicgsn-data-tools/internal/logging"
	"github.com/s-pearce/ooicgsn-data-tools/internal/m2m"
	"github.com/s-pearce/ooicgsn-data-tools/internal/manifest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Submit ingest requests from a CSV ingest sheet",
	RunE:  runIngest,
}

func init() {
	f := ingestCmd.Flags()
	f.StringVarP(&cfg.CSVFile, "csvfile", "c", "", "Path to the ingest CSV sheet (required)")
	f.StringVarP(&cfg.IngestType, "ingest_type", "t", "", "Ingest type: telemetered or recovered (required)")
	f.StringVar(&cfg.BaseURL, "base-url", config.DefaultBaseURL, "OOINet base URL")
	f.StringVar(&cfg.NetrcPath, "netrc", defaultNetrc(), "netrc file holding the API credentials")
	f.StringVar(&cfg.OutDir, "out-dir", ".", "Directory the result CSV is written to")
	f.BoolVar(&cfg.AutoApprove, "yes", false, "Submit every request without prompting")
	f.DurationVar(&cfg.Timeout, "timeout", 0, "Per-request HTTP timeout (0 = no timeout)")
	_ = ingestCmd.MarkFlagRequired("csvfile")
	_ = ingestCmd.MarkFlagRequired("ingest_type")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := applyConfigFile(cmd); err != nil {
		log.Error().Err(err).Msg("config file failed")
		os.Exit(exitcode.ConfigError)
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	host, err := credentials.HostOf(cfg.BaseURL)
	if err != nil {
		log.Error().Err(err).Msg("base URL invalid")
		os.Exit(exitcode.UsageError)
	}
	creds, err := credentials.FromNetrc(cfg.NetrcPath, host)
	if err != nil {
		log.Error().Err(err).Msg("credential lookup failed")
		os.Exit(exitcode.ConfigError)
	}

	client := m2m.New(cfg.BaseURL, creds.APIKey, creds.APIToken, cfg.Timeout)
	var confirm ingest.Confirmer = ingest.NewConsole(os.Stdin, os.Stdout)
	if cfg.AutoApprove {
		confirm = ingest.AutoApprove{}
	}

	summary, err := ingest.Run(ctx, log, &cfg, creds.Username, client, confirm, os.Stdout)
	if err != nil {
		var pe *ingest.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("ingest failed")
			switch pe.Phase {
			case "load":
				var parseErr *manifest.ParseError
				if errors.As(pe.Err, &parseErr) {
					os.Exit(exitcode.ParseError)
				}
				os.Exit(exitcode.ConfigError)
			case "write":
				os.Exit(exitcode.WriteError)
			default:
				os.Exit(exitcode.SubmitError)
			}
		}
		log.Error().Err(err).Msg("ingest failed")
		os.Exit(exitcode.SubmitError)
	}

	if summary.ResultFile == "" {
		// Nothing survived the cabled-platform filter; the notice has
		// already been printed and no result file is written.
		return nil
	}

	fmt.Printf("Ingest run complete: %d recorded, %d failed, %d disabled, %d skipped by operator (%.1fs)\n",
		summary.Recorded, summary.Failed, summary.SkippedDisabled, summary.SkippedByOperator,
		summary.DurationTotal.Seconds())
	fmt.Printf("Results: %s\n", summary.ResultFile)

	if summary.Failed > 0 {
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
