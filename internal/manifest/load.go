package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/s-pearce/ooicgsn-data-tools/internal/model"
)

// requiredHeaders are the exact names of the four leading sheet columns, in
// order. Anything past them is ignored except the optional date columns.
var requiredHeaders = [4]string{"filename_mask", "reference_designator", "data_source", "parser"}

// Optional header names recognized past the fourth column.
const (
	beginDateHeader = "begin_file_date"
	endDateHeader   = "end_file_date"
)

// ParseError reports an ingest sheet that was readable but could not be
// interpreted: bad leading headers, a short record, or a filename mask with
// no extractable deployment number.
type ParseError struct {
	Row  int // 1-based data row number; 0 when the header itself is at fault
	Mask string
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("ingest sheet: %s", e.Msg)
	}
	if e.Mask != "" {
		return fmt.Sprintf("ingest sheet row %d (%s): %s", e.Row, e.Mask, e.Msg)
	}
	return fmt.Sprintf("ingest sheet row %d: %s", e.Row, e.Msg)
}

// trailingDigits captures the digit run at the end of a path segment.
var trailingDigits = regexp.MustCompile(`[0-9]+$`)

// DeploymentNumber extracts the deployment number from a filename mask: the
// trailing digit run of the sixth '/'-delimited segment. A mask with fewer
// than six segments, or whose sixth segment has no trailing digits, is a
// hard error rather than a silent zero.
func DeploymentNumber(mask string) (int, error) {
	parts := strings.Split(mask, "/")
	if len(parts) < 6 {
		return 0, fmt.Errorf("mask has %d path segments, need at least 6", len(parts))
	}
	digits := trailingDigits.FindString(parts[5])
	if digits == "" {
		return 0, fmt.Errorf("segment %q has no trailing deployment number", parts[5])
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("deployment number %q: %w", digits, err)
	}
	return n, nil
}

// Load reads the ingest sheet at path and returns its rows with the derived
// fields (username, deployment, state, priority, type) populated. The first
// four columns are positional and must carry the expected header names; the
// deployment number is derived per row from the filename mask. Rows with an
// empty mask are loaded as-is (the filter stage drops them) and do not need
// a deployment number.
func Load(path, ingestType, username string) ([]model.ManifestRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ingest sheet: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read ingest sheet header: %w", err)
	}
	if len(header) < len(requiredHeaders) {
		return nil, &ParseError{Msg: fmt.Sprintf("header has %d columns, need at least %d", len(header), len(requiredHeaders))}
	}
	for i, want := range requiredHeaders {
		if got := strings.TrimSpace(header[i]); got != want {
			return nil, &ParseError{Msg: fmt.Sprintf("column %d is %q, want %q", i+1, got, want)}
		}
	}

	beginIdx, endIdx := -1, -1
	for i := len(requiredHeaders); i < len(header); i++ {
		switch strings.TrimSpace(header[i]) {
		case beginDateHeader:
			beginIdx = i
		case endDateHeader:
			endIdx = i
		}
	}

	ingestTypeName := model.TypeRecovered
	if strings.Contains(ingestType, "telemetered") {
		ingestTypeName = model.TypeTelemetered
	}

	var rows []model.ManifestRow
	rowNum := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read ingest sheet: %w", err)
		}
		rowNum++
		if len(rec) < len(requiredHeaders) {
			return nil, &ParseError{Row: rowNum, Msg: fmt.Sprintf("record has %d columns, need at least %d", len(rec), len(requiredHeaders))}
		}

		row := model.ManifestRow{
			FileMask:     rec[0],
			RefDes:       rec[1],
			DataSource:   rec[2],
			ParserDriver: rec[3],
			Username:     username,
			State:        model.StateRun,
			Priority:     model.DefaultPriority,
			Type:         ingestTypeName,
		}
		if beginIdx >= 0 && beginIdx < len(rec) {
			row.BeginFileDate = rec[beginIdx]
		}
		if endIdx >= 0 && endIdx < len(rec) {
			row.EndFileDate = rec[endIdx]
		}

		if row.FileMask != "" {
			deployment, err := DeploymentNumber(row.FileMask)
			if err != nil {
				return nil, &ParseError{Row: rowNum, Mask: row.FileMask, Msg: err.Error()}
			}
			row.Deployment = deployment
		}

		rows = append(rows, row)
	}

	return rows, nil
}
