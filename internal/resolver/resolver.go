package resolver

import (
	"github.com/health-center-lookup/app/models"
	"github.com/health-center-lookup/internal/dataset"
	"github.com/health-center-lookup/internal/normalizer"
	"github.com/health-center-lookup/internal/similarity"
	"go.uber.org/zap"
)

// Level tells which entity produced the records of a lookup.
type Level string

const (
	LevelNone         Level = "none"
	LevelCenter       Level = "centro_saude"
	LevelCenterFuzzy  Level = "centro_saude_similar"
	LevelNeighborhood Level = "bairro"
	LevelDistrict     Level = "distrito"
)

// Options tunes the resolver.
type Options struct {
	// Threshold is the exclusive minimum TF-IDF similarity for the fuzzy
	// name fallback. Zero or negative means similarity.DefaultThreshold.
	Threshold float64
}

// Result is a lookup outcome. Records is nil when nothing matched.
type Result struct {
	Level   Level                 `json:"level"`
	Records []models.HealthCenter `json:"records"`
}

// Resolver maps entities to dataset records. Levels are tried in the order
// center name, neighborhood, district and the first one with records wins;
// results of different levels are never mixed.
type Resolver struct {
	dataset    *dataset.Dataset
	index      *similarity.Index
	normalizer *normalizer.TextNormalizer
	threshold  float64
	logger     *zap.Logger
}

// New indexes the normalized center names of ds for the fuzzy fallback.
func New(ds *dataset.Dataset, tn *normalizer.TextNormalizer, opts Options, logger *zap.Logger) *Resolver {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = similarity.DefaultThreshold
	}
	return &Resolver{
		dataset:    ds,
		index:      similarity.NewIndex(ds.NormalizedNames()),
		normalizer: tn,
		threshold:  threshold,
		logger:     logger,
	}
}

// Index returns the TF-IDF index over the center names.
func (r *Resolver) Index() *similarity.Index { return r.index }

// Threshold returns the fuzzy similarity threshold in use.
func (r *Resolver) Threshold() float64 { return r.threshold }

// Resolve returns the records for entities, or nil when no level matches.
func (r *Resolver) Resolve(entities models.Entities) []models.HealthCenter {
	return r.Lookup(entities).Records
}

// Lookup is Resolve that also reports the matching level.
func (r *Resolver) Lookup(entities models.Entities) Result {
	if term := r.normalizer.Normalize(entities.CenterName); term != "" {
		if records := r.dataset.Contains(dataset.FieldName, term); len(records) > 0 {
			return r.found(LevelCenter, term, records)
		}
		if records := r.dataset.At(r.index.Above(term, r.threshold)); len(records) > 0 {
			return r.found(LevelCenterFuzzy, term, records)
		}
	}

	if term := r.normalizer.Normalize(entities.Neighborhood); term != "" {
		if records := r.dataset.Contains(dataset.FieldNeighborhood, term); len(records) > 0 {
			return r.found(LevelNeighborhood, term, records)
		}
	}

	if term := r.normalizer.Normalize(entities.District); term != "" {
		if records := r.dataset.Contains(dataset.FieldDistrict, term); len(records) > 0 {
			return r.found(LevelDistrict, term, records)
		}
	}

	r.logger.Debug("No health center found",
		zap.String("centro_saude", entities.CenterName),
		zap.String("bairro", entities.Neighborhood),
		zap.String("distrito", entities.District))
	return Result{Level: LevelNone}
}

func (r *Resolver) found(level Level, term string, records []models.HealthCenter) Result {
	r.logger.Debug("Health centers found",
		zap.String("level", string(level)),
		zap.String("term", term),
		zap.Int("count", len(records)))
	return Result{Level: level, Records: records}
}
