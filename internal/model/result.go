package model

// RowStatus is the terminal (or pending) state of one manifest row as it
// moves through the submission loop. A row never re-enters Pending.
type RowStatus string

const (
	StatusPending           RowStatus = "PENDING"
	StatusSkippedDisabled   RowStatus = "SKIPPED_DISABLED"
	StatusSkippedByOperator RowStatus = "SKIPPED_BY_OPERATOR"
	StatusSubmitted         RowStatus = "SUBMITTED"
	StatusRecorded          RowStatus = "RECORDED"
	StatusFailed            RowStatus = "FAILED"
)

// ResponseField is one key/value pair from the API's JSON response, in the
// order the server sent it. String values are kept verbatim; everything else
// is rendered as its compact JSON form. Order matters because the result
// file's leading columns mirror the response.
type ResponseField struct {
	Name  string
	Value string
}

// ResultRecord is one row of the result file: the API response fields for a
// successfully submitted request plus a copy of the originating row's
// metadata.
type ResultRecord struct {
	Response []ResponseField

	ReferenceDesignator string
	State               string
	Type                string
	Deployment          int
	Username            string
	Priority            int
	RefDesFinal         string
	FileMask            string
}
