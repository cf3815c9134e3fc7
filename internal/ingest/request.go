package ingest

import "github.com/s-pearce/ooicgsn-data-tools/internal/model"

// wildcardRefDes lists the multi-sensor mooring CTDMOs whose file masks cover
// several instruments. For these the CTDMO decoder is invoked, so refDesFinal
// is "false"; for everything else it is "true".
var wildcardRefDes = map[string]struct{}{
	"GA03FLMA-RIM01-02-CTDMOG000": {},
	"GA03FLMB-RIM01-02-CTDMOG000": {},
	"GI03FLMA-RIM01-02-CTDMOG000": {},
	"GI03FLMB-RIM01-02-CTDMOG000": {},
	"GP03FLMA-RIM01-02-CTDMOG000": {},
	"GP03FLMB-RIM01-02-CTDMOG000": {},
	"GS03FLMA-RIM01-02-CTDMOG000": {},
	"GS03FLMB-RIM01-02-CTDMOG000": {},
}

// RefDesFinal returns the wire-format flag for a reference designator:
// "false" for the wildcard CTDMO designators, "true" otherwise.
func RefDesFinal(refDes string) string {
	if _, ok := wildcardRefDes[refDes]; ok {
		return "false"
	}
	return "true"
}

// BuildRequest maps one normalized row into the nested request body the M2M
// API expects. It is a pure function: the row is not modified and repeated
// calls return structurally identical requests.
func BuildRequest(row *model.ManifestRow) *model.IngestRequest {
	req := &model.IngestRequest{
		Username: row.Username,
		State:    row.State,
		IngestRequestFileMasks: []model.FileMaskSpec{{
			ParserDriver: row.ParserDriver,
			FileMask:     row.FileMask,
			DataSource:   row.DataSource,
			Deployment:   row.Deployment,
			RefDes:       row.RefDes,
			RefDesFinal:  row.RefDesFinal,
		}},
		Type:     row.Type,
		Priority: row.Priority,
	}

	if row.BeginFileDate != "" || row.EndFileDate != "" {
		req.Options = &model.RequestOptions{
			BeginFileDate: row.BeginFileDate,
			EndFileDate:   row.EndFileDate,
		}
	}

	return req
}
