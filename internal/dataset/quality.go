package dataset

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

// QualityOptions tunes NearDuplicateNames.
type QualityOptions struct {
	// MaxDistance flags pairs whose edit distance is at most this value.
	// It only applies when both names are longer than 2*MaxDistance runes.
	MaxDistance int
	// MinJaroWinkler flags pairs at or above this similarity.
	MinJaroWinkler float64
}

// DefaultQualityOptions are used by the check command.
var DefaultQualityOptions = QualityOptions{MaxDistance: 2, MinJaroWinkler: 0.95}

// NearDuplicate is a pair of distinct source names that look like the same
// center spelled twice.
type NearDuplicate struct {
	First       string  `json:"first"`
	Second      string  `json:"second"`
	Distance    int     `json:"distance"`
	JaroWinkler float64 `json:"jaro_winkler"`
}

// NearDuplicateNames compares every pair of center names with the shared
// "centro de saude" phrase removed, since it would dominate both metrics.
// Exact duplicates never reach this point; names that differ only in case
// or accents show up with distance 0.
func (ds *Dataset) NearDuplicateNames(opts QualityOptions) []NearDuplicate {
	keys := make([]string, len(ds.names))
	for i, name := range ds.names {
		keys[i] = strings.Join(strings.Fields(strings.ReplaceAll(name, ds.canonical, " ")), " ")
	}

	var out []NearDuplicate
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			a, b := keys[i], keys[j]
			if a == "" || b == "" {
				continue
			}

			dist := levenshtein.ComputeDistance(a, b)
			jw := smetrics.JaroWinkler(a, b, 0.7, 4)

			long := utf8.RuneCountInString(a) > 2*opts.MaxDistance &&
				utf8.RuneCountInString(b) > 2*opts.MaxDistance
			if (long && dist <= opts.MaxDistance) || jw >= opts.MinJaroWinkler {
				out = append(out, NearDuplicate{
					First:       ds.records[i].Name,
					Second:      ds.records[j].Name,
					Distance:    dist,
					JaroWinkler: jw,
				})
			}
		}
	}
	return out
}
