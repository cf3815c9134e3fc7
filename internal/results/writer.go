package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/s-pearce/ooicgsn-data-tools/internal/model"
)

// metaColumns are the manifest-metadata columns appended after the response
// columns, in the order the original result sheets used.
var metaColumns = [8]string{
	"ReferenceDesignator", "state", "type", "deployment",
	"username", "priority", "refDesFinal", "fileMask",
}

// responseColumns returns the union of response field names across all
// records, in order of first appearance.
func responseColumns(records []model.ResultRecord) []string {
	var cols []string
	seen := make(map[string]struct{})
	for _, rec := range records {
		for _, f := range rec.Response {
			if _, ok := seen[f.Name]; ok {
				continue
			}
			seen[f.Name] = struct{}{}
			cols = append(cols, f.Name)
		}
	}
	return cols
}

func recordValues(rec *model.ResultRecord, respCols []string) []string {
	byName := make(map[string]string, len(rec.Response))
	for _, f := range rec.Response {
		byName[f.Name] = f.Value
	}

	values := make([]string, 0, len(respCols)+len(metaColumns))
	for _, col := range respCols {
		values = append(values, byName[col])
	}
	return append(values,
		rec.ReferenceDesignator,
		rec.State,
		rec.Type,
		strconv.Itoa(rec.Deployment),
		rec.Username,
		strconv.Itoa(rec.Priority),
		rec.RefDesFinal,
		rec.FileMask,
	)
}

// Print dumps the accumulated result table to w.
func Print(w io.Writer, records []model.ResultRecord) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	respCols := responseColumns(records)

	for i, col := range append(respCols, metaColumns[:]...) {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)

	for i := range records {
		for j, v := range recordValues(&records[i], respCols) {
			if j > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, v)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

// Filename returns the result file name for a run that finished at now:
// a UTC timestamp followed by the fixed _ingested.csv suffix.
func Filename(now time.Time) string {
	return now.UTC().Format("20060102_150405") + "_ingested.csv"
}

// Write serializes the accumulated records to a timestamped CSV in outDir
// and returns the file path. Response columns lead in first-appearance
// order, metadata columns follow, and there is no index column. An empty
// accumulator still produces a header-only file.
func Write(records []model.ResultRecord, outDir string, now time.Time) (string, error) {
	path := filepath.Join(outDir, Filename(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create result file: %w", err)
	}

	w := csv.NewWriter(f)
	respCols := responseColumns(records)

	if err := w.Write(append(respCols, metaColumns[:]...)); err != nil {
		f.Close()
		return "", fmt.Errorf("write result header: %w", err)
	}
	for i := range records {
		if err := w.Write(recordValues(&records[i], respCols)); err != nil {
			f.Close()
			return "", fmt.Errorf("write result row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("flush result file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close result file: %w", err)
	}
	return path, nil
}
