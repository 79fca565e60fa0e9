package dataset

import (
	"strings"

	"github.com/health-center-lookup/app/models"
	"github.com/health-center-lookup/internal/normalizer"
)

// Field selects a searchable record attribute.
type Field int

const (
	FieldName Field = iota
	FieldNeighborhood
	FieldDistrict
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldNeighborhood:
		return "neighborhood"
	case FieldDistrict:
		return "district"
	default:
		return "unknown"
	}
}

// Vocabulary lists the distinct normalized values of each searchable field
// in dataset order.
type Vocabulary struct {
	CenterNames   []string
	Neighborhoods []string
	Districts     []string
}

// Dataset is the read-only lookup context shared by every query. Nothing
// mutates it after New returns.
type Dataset struct {
	Report     Report
	Vocabulary Vocabulary

	records   []models.HealthCenter
	canonical string

	// normalized values, parallel to records
	names         []string
	neighborhoods []string
	districts     []string
}

// New precomputes the normalized fields and vocabularies of records.
func New(records []models.HealthCenter, tn *normalizer.TextNormalizer) *Dataset {
	ds := &Dataset{
		records:       records,
		canonical:     tn.Canonical(),
		names:         make([]string, len(records)),
		neighborhoods: make([]string, len(records)),
		districts:     make([]string, len(records)),
	}
	for i, rec := range records {
		ds.names[i] = tn.Normalize(rec.Name)
		ds.neighborhoods[i] = tn.Normalize(rec.Neighborhood)
		ds.districts[i] = tn.Normalize(rec.District)
	}
	ds.Vocabulary = Vocabulary{
		CenterNames:   distinct(ds.names),
		Neighborhoods: distinct(ds.neighborhoods),
		Districts:     distinct(ds.districts),
	}
	return ds
}

// Len returns the number of records.
func (ds *Dataset) Len() int { return len(ds.records) }

// Records returns the records in source order. Callers must not modify it.
func (ds *Dataset) Records() []models.HealthCenter { return ds.records }

// NormalizedNames returns the normalized center names, parallel to Records.
func (ds *Dataset) NormalizedNames() []string { return ds.names }

// At returns copies of the records at the given indices.
func (ds *Dataset) At(indices []int) []models.HealthCenter {
	if len(indices) == 0 {
		return nil
	}
	out := make([]models.HealthCenter, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(ds.records) {
			out = append(out, ds.records[i])
		}
	}
	return out
}

// Contains returns, in dataset order, the records whose normalized field
// contains term. term must already be normalized; an empty term matches
// nothing.
func (ds *Dataset) Contains(field Field, term string) []models.HealthCenter {
	if term == "" {
		return nil
	}
	var values []string
	switch field {
	case FieldName:
		values = ds.names
	case FieldNeighborhood:
		values = ds.neighborhoods
	case FieldDistrict:
		values = ds.districts
	default:
		return nil
	}

	var out []models.HealthCenter
	for i, v := range values {
		if strings.Contains(v, term) {
			out = append(out, ds.records[i])
		}
	}
	return out
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
