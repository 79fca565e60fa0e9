package extractor

import (
	"strings"

	"github.com/health-center-lookup/app/models"
	"github.com/health-center-lookup/internal/dataset"
	"github.com/health-center-lookup/internal/normalizer"
	"go.uber.org/zap"
)

// Extractor pulls center, neighborhood and district mentions out of a user
// message. All of its state is built once and only read afterwards.
type Extractor struct {
	normalizer *normalizer.TextNormalizer
	logger     *zap.Logger

	centers       *PhraseMatcher
	neighborhoods *PhraseMatcher
	districts     *PhraseMatcher

	neighborhoodKeywords *PhraseMatcher
	districtKeywords     *PhraseMatcher
}

// New builds the matchers from the dataset vocabularies and the keyword
// lists of the normalizer rules. Keywords go through the same normalization
// as messages so that accented entries ("região") still match.
func New(tn *normalizer.TextNormalizer, vocab dataset.Vocabulary, logger *zap.Logger) *Extractor {
	rules := tn.Rules()
	return &Extractor{
		normalizer:           tn,
		logger:               logger,
		centers:              NewPhraseMatcher(vocab.CenterNames),
		neighborhoods:        NewPhraseMatcher(vocab.Neighborhoods),
		districts:            NewPhraseMatcher(vocab.Districts),
		neighborhoodKeywords: NewPhraseMatcher(normalizeAll(tn, rules.NeighborhoodKeywords)),
		districtKeywords:     NewPhraseMatcher(normalizeAll(tn, rules.DistrictKeywords)),
	}
}

// Extract returns the entities found in text. CenterName is filled on its
// own; at most one of Neighborhood and District is set:
//
//   - a district keyword keeps only a district match
//   - otherwise a neighborhood keyword keeps only a neighborhood match
//   - otherwise a district match wins over a neighborhood match
func (e *Extractor) Extract(text string) models.Entities {
	tokens := e.normalizer.Tokens(text)
	return e.ExtractTokens(tokens)
}

// ExtractTokens is Extract for a message that is already normalized and
// split on whitespace.
func (e *Extractor) ExtractTokens(tokens []string) models.Entities {
	var entities models.Entities
	if len(tokens) == 0 {
		return entities
	}

	if m, ok := e.centers.First(tokens); ok {
		entities.CenterName = m.Phrase
	}

	district, hasDistrict := e.districts.First(tokens)
	neighborhood, hasNeighborhood := e.neighborhoods.First(tokens)

	switch {
	case e.districtKeywords.Any(tokens):
		if hasDistrict {
			entities.District = district.Phrase
		}
	case e.neighborhoodKeywords.Any(tokens):
		if hasNeighborhood {
			entities.Neighborhood = neighborhood.Phrase
		}
	case hasDistrict:
		entities.District = district.Phrase
	case hasNeighborhood:
		entities.Neighborhood = neighborhood.Phrase
	}

	e.logger.Debug("Entities extracted",
		zap.String("normalized", strings.Join(tokens, " ")),
		zap.String("centro_saude", entities.CenterName),
		zap.String("bairro", entities.Neighborhood),
		zap.String("distrito", entities.District))

	return entities
}

func normalizeAll(tn *normalizer.TextNormalizer, values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if n := tn.Normalize(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}
