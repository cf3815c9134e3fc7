package manifest

import (
	"regexp"
	"sort"

	"github.com/s-pearce/ooicgsn-data-tools/internal/model"
)

// cabledPattern matches reference designators belonging to cabled-array
// platforms, which are ingested through a different system.
var cabledPattern = regexp.MustCompile(`^(RS|CE02SHBP|CE04OSBP|CE04OSPD|CE04OSPS)`)

// IsCabled reports whether a reference designator belongs to a cabled
// platform.
func IsCabled(refDes string) bool {
	return cabledPattern.MatchString(refDes)
}

// Filter sorts rows by (deployment, reference designator) ascending, drops
// rows without a file mask, and removes rows for cabled platforms. It
// returns the retained rows plus the sorted set of excluded cabled
// designators. The input slice is not modified.
func Filter(rows []model.ManifestRow) ([]model.ManifestRow, []string) {
	sorted := make([]model.ManifestRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Deployment != sorted[j].Deployment {
			return sorted[i].Deployment < sorted[j].Deployment
		}
		return sorted[i].RefDes < sorted[j].RefDes
	})

	kept := make([]model.ManifestRow, 0, len(sorted))
	cabledSet := make(map[string]struct{})
	for _, r := range sorted {
		if r.FileMask == "" {
			continue
		}
		if IsCabled(r.RefDes) {
			cabledSet[r.RefDes] = struct{}{}
			continue
		}
		kept = append(kept, r)
	}

	cabled := make([]string, 0, len(cabledSet))
	for rd := range cabledSet {
		cabled = append(cabled, rd)
	}
	sort.Strings(cabled)

	return kept, cabled
}
