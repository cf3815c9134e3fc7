package model

// FileMaskSpec is the per-file-mask descriptor inside an ingest request.
// Empty string members are omitted from the wire form.
type FileMaskSpec struct {
	ParserDriver string `json:"parserDriver,omitempty"`
	FileMask     string `json:"fileMask,omitempty"`
	DataSource   string `json:"dataSource,omitempty"`
	Deployment   int    `json:"deployment"`
	RefDes       string `json:"refDes,omitempty"`
	RefDesFinal  string `json:"refDesFinal,omitempty"`
}

// RequestOptions is the optional date-range sub-object. It is attached to a
// request only when at least one of the dates is present.
type RequestOptions struct {
	BeginFileDate string `json:"beginFileDate,omitempty"`
	EndFileDate   string `json:"endFileDate,omitempty"`
}

// IngestRequest is the JSON body POSTed to the M2M ingest-request endpoint.
type IngestRequest struct {
	Username               string          `json:"username"`
	State                  string          `json:"state"`
	IngestRequestFileMasks []FileMaskSpec  `json:"ingestRequestFileMasks"`
	Type                   string          `json:"type"`
	Priority               int             `json:"priority"`
	Options                *RequestOptions `json:"options,omitempty"`
}
