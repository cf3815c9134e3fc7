package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/s-pearce/ooicgsn-data-tools/internal/config"
	"github.com/s-pearce/ooicgsn-data-tools/internal/manifest"
	"github.com/s-pearce/ooicgsn-data-tools/internal/model"
	"github.com/s-pearce/ooicgsn-data-tools/internal/results"
)

// Submitter performs the network submission of one built request and returns
// the decoded response fields in server order.
type Submitter interface {
	Submit(ctx context.Context, req *model.IngestRequest) ([]model.ResponseField, error)
}

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full ingest pipeline: load → filter → submit → write.
// Per-row submission failures are recorded in the summary and do not stop
// the run; load, filter, and result-write failures abort it. When the filter
// stage leaves no rows the run ends cleanly without a result file.
func Run(ctx context.Context, log zerolog.Logger, cfg *config.Config, username string, sub Submitter, confirm Confirmer, console io.Writer) (*model.RunSummary, error) {
	totalStart := time.Now()

	summary := &model.RunSummary{RunID: uuid.New().String()}
	log = log.With().Str("run_id", summary.RunID).Logger()

	// Phase 1: Load
	log.Info().Str("csvfile", cfg.CSVFile).Str("ingest_type", cfg.IngestType).Msg("loading ingest sheet")
	rows, err := manifest.Load(cfg.CSVFile, cfg.IngestType, username)
	if err != nil {
		return nil, &PipelineError{Phase: "load", Err: err}
	}
	summary.RowsLoaded = len(rows)

	// Phase 2: Filter
	filtered, cabled := manifest.Filter(rows)
	summary.RowsCabled = len(cabled)
	summary.RowsEligible = len(filtered)
	if len(cabled) > 0 {
		log.Info().Strs("refdes", cabled).Msg("excluding cabled platforms")
	}
	if len(filtered) == 0 {
		fmt.Fprintln(console, "Removed cabled array reference designators from the ingestion, no other systems left.")
		summary.DurationTotal = time.Since(totalStart)
		return summary, nil
	}

	// Phase 3: Submit
	log.Info().Int("rows", len(filtered)).Msg("starting submissions")
	var records []model.ResultRecord
	for i := range filtered {
		row := &filtered[i]

		if row.Disabled() {
			summary.SkippedDisabled++
			log.Debug().Str("refdes", row.RefDes).Int("deployment", row.Deployment).Str("status", string(model.StatusSkippedDisabled)).Msg("skipping disabled entry")
			continue
		}

		row.RefDesFinal = RefDesFinal(row.RefDes)
		req := BuildRequest(row)

		rendered, err := json.MarshalIndent(req, "", "  ")
		if err != nil {
			return nil, &PipelineError{Phase: "submit", Err: fmt.Errorf("render request: %w", err)}
		}
		fmt.Fprintln(console, string(rendered))

		ok, err := confirm.Confirm(req)
		if err != nil {
			return nil, &PipelineError{Phase: "submit", Err: err}
		}
		if !ok {
			summary.SkippedByOperator++
			fmt.Fprintln(console, "Skipping this ingest request")
			log.Debug().Str("refdes", row.RefDes).Int("deployment", row.Deployment).Str("status", string(model.StatusSkippedByOperator)).Msg("operator declined")
			continue
		}

		log.Debug().Str("refdes", row.RefDes).Int("deployment", row.Deployment).Str("status", string(model.StatusSubmitted)).Msg("submitting ingest request")
		fields, err := sub.Submit(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, &PipelineError{Phase: "submit", Err: err}
			}
			summary.Failed++
			log.Error().Err(err).Str("refdes", row.RefDes).Int("deployment", row.Deployment).Str("status", string(model.StatusFailed)).Msg("ingest request failed")
			continue
		}

		records = append(records, model.ResultRecord{
			Response:            fields,
			ReferenceDesignator: row.RefDes,
			State:               row.State,
			Type:                row.Type,
			Deployment:          row.Deployment,
			Username:            row.Username,
			Priority:            row.Priority,
			RefDesFinal:         row.RefDesFinal,
			FileMask:            row.FileMask,
		})
		summary.Recorded++
		log.Info().Str("refdes", row.RefDes).Int("deployment", row.Deployment).Str("status", string(model.StatusRecorded)).Msg("ingest request recorded")
	}

	// Phase 4: Write results
	results.Print(console, records)
	path, err := results.Write(records, cfg.OutDir, time.Now().UTC())
	if err != nil {
		return nil, &PipelineError{Phase: "write", Err: err}
	}
	summary.ResultFile = path
	summary.DurationTotal = time.Since(totalStart)

	log.Info().
		Int("recorded", summary.Recorded).
		Int("failed", summary.Failed).
		Int("skipped_disabled", summary.SkippedDisabled).
		Int("skipped_by_operator", summary.SkippedByOperator).
		Str("result_file", summary.ResultFile).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("ingest run complete")

	return summary, nil
}
