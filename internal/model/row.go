package model

import "strings"

// Constants injected into every loaded row. State and priority are fixed for
// every request this tool submits; type depends on the --ingest_type flag.
const (
	StateRun        = "RUN"
	DefaultPriority = 1

	TypeTelemetered = "TELEMETERED"
	TypeRecovered   = "RECOVERED"
)

// ManifestRow is one line of the ingest sheet with derived fields populated.
// Field names follow the M2M wire format rather than the raw CSV headers
// (filename_mask → FileMask, reference_designator → RefDes, and so on).
type ManifestRow struct {
	FileMask     string
	RefDes       string
	DataSource   string
	ParserDriver string

	// Derived at load time.
	Username   string
	Deployment int
	State      string
	Priority   int
	Type       string

	// Assigned in the submission loop from the wildcard allow-list.
	RefDesFinal string

	// Optional date range, populated only when the sheet carries
	// begin_file_date / end_file_date columns past the first four.
	BeginFileDate string
	EndFileDate   string
}

// Disabled reports whether the row is commented out. An empty parser field,
// or a '#' anywhere in it, marks the entry as not to be submitted.
func (r *ManifestRow) Disabled() bool {
	return r.ParserDriver == "" || strings.Contains(r.ParserDriver, "#")
}
