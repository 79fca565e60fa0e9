// Package query wires the normalizer, extractor and resolver over one loaded
// dataset. An Engine is immutable and safe for concurrent use.
package query

import (
	"fmt"

	"github.com/health-center-lookup/app/models"
	"github.com/health-center-lookup/internal/dataset"
	"github.com/health-center-lookup/internal/extractor"
	"github.com/health-center-lookup/internal/normalizer"
	"github.com/health-center-lookup/internal/resolver"
	"go.uber.org/zap"
)

// Options configures NewEngine.
type Options struct {
	DataPath   string
	CacheSize  int
	Similarity resolver.Options
}

type Engine struct {
	normalizer *normalizer.TextNormalizer
	dataset    *dataset.Dataset
	extractor  *extractor.Extractor
	resolver   *resolver.Resolver
}

// NewEngine loads the dataset at opts.DataPath and builds every lookup
// structure. A load failure is returned as *dataset.LoadError.
func NewEngine(opts Options, logger *zap.Logger) (*Engine, error) {
	tn, err := normalizer.NewDefaultTextNormalizer()
	if err != nil {
		return nil, fmt.Errorf("build normalizer: %w", err)
	}
	loader, err := dataset.NewLoader(tn, opts.CacheSize, logger)
	if err != nil {
		return nil, err
	}
	ds, err := loader.Load(opts.DataPath)
	if err != nil {
		return nil, err
	}
	return NewEngineFromDataset(ds, tn, opts.Similarity, logger), nil
}

// NewEngineFromDataset builds an Engine over an already loaded dataset.
func NewEngineFromDataset(ds *dataset.Dataset, tn *normalizer.TextNormalizer, opts resolver.Options, logger *zap.Logger) *Engine {
	return &Engine{
		normalizer: tn,
		dataset:    ds,
		extractor:  extractor.New(tn, ds.Vocabulary, logger),
		resolver:   resolver.New(ds, tn, opts, logger),
	}
}

// Normalize returns the matching form of text.
func (e *Engine) Normalize(text string) string {
	return e.normalizer.Normalize(text)
}

// ExtractEntities finds the center, neighborhood and district mentioned in
// message.
func (e *Engine) ExtractEntities(message string) models.Entities {
	return e.extractor.Extract(message)
}

// GetCenterInfo returns the records for entities, nil when nothing matches.
func (e *Engine) GetCenterInfo(entities models.Entities) []models.HealthCenter {
	return e.resolver.Resolve(entities)
}

// Lookup is GetCenterInfo that also reports which entity matched.
func (e *Engine) Lookup(entities models.Entities) resolver.Result {
	return e.resolver.Lookup(entities)
}

// Dataset returns the loaded dataset.
func (e *Engine) Dataset() *dataset.Dataset { return e.dataset }

// Resolver returns the record resolver.
func (e *Engine) Resolver() *resolver.Resolver { return e.resolver }
