package resolver

import (
	"path/filepath"
	"testing"

	"github.com/health-center-lookup/app/models"
	"github.com/health-center-lookup/internal/dataset"
	"github.com/health-center-lookup/internal/normalizer"
	"github.com/health-center-lookup/internal/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestResolver(t *testing.T, opts Options) *Resolver {
	t.Helper()
	tn, err := normalizer.NewDefaultTextNormalizer()
	require.NoError(t, err)
	loader, err := dataset.NewLoader(tn, 1, zap.NewNop())
	require.NoError(t, err)
	ds, err := loader.Load(filepath.Join("..", "dataset", "testdata", "centros_saude.csv"))
	require.NoError(t, err)
	return New(ds, tn, opts, zap.NewNop())
}

func names(records []models.HealthCenter) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestResolver_Lookup(t *testing.T) {
	r := newTestResolver(t, Options{})
	assert.Equal(t, similarity.DefaultThreshold, r.Threshold())
	assert.Equal(t, 6, r.Index().Len())

	tests := []struct {
		name     string
		entities models.Entities
		level    Level
		expected []string
	}{
		{
			name:     "center name wins over district",
			entities: models.Entities{CenterName: "centro de saude barreiro", District: "oeste"},
			level:    LevelCenter,
			expected: []string{"CENTRO DE SAUDE BARREIRO"},
		},
		{
			name:     "center name is normalized again",
			entities: models.Entities{CenterName: "Posto de Saúde São Bento"},
			level:    LevelCenter,
			expected: []string{"CENTRO DE SAUDE SÃO BENTO"},
		},
		{
			name:     "fuzzy fallback on center names",
			entities: models.Entities{CenterName: "centro de saude santa monika", Neighborhood: "barreiro"},
			level:    LevelCenterFuzzy,
			expected: []string{"CENTRO DE SAUDE SANTA MONICA"},
		},
		{
			name:     "unknown center falls through to neighborhood",
			entities: models.Entities{CenterName: "clinica xyz", Neighborhood: "vila cemig"},
			level:    LevelNeighborhood,
			expected: []string{"CENTRO DE SAUDE VILA CEMIG"},
		},
		{
			name:     "neighborhood is a substring match",
			entities: models.Entities{Neighborhood: "centro"},
			level:    LevelNeighborhood,
			expected: []string{"CENTRO DE SAUDE CENTRO SUL"},
		},
		{
			name:     "district in dataset order",
			entities: models.Entities{District: "CENTRO-SUL"},
			level:    LevelDistrict,
			expected: []string{"CENTRO DE SAUDE CENTRO SUL", "CENTRO DE SAUDE SÃO BENTO"},
		},
		{
			name:     "unknown neighborhood falls through to district",
			entities: models.Entities{Neighborhood: "lagoinha", District: "barreiro"},
			level:    LevelDistrict,
			expected: []string{"CENTRO DE SAUDE BARREIRO", "CENTRO DE SAUDE VILA CEMIG"},
		},
		{
			name:     "nothing matches",
			entities: models.Entities{CenterName: "hospital", Neighborhood: "lagoinha", District: "norte"},
			level:    LevelNone,
		},
		{
			name:     "empty entities",
			entities: models.Entities{},
			level:    LevelNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Lookup(tt.entities)
			assert.Equal(t, tt.level, got.Level)
			assert.Equal(t, tt.expected, names(got.Records))
			assert.Equal(t, got.Records, r.Resolve(tt.entities))
		})
	}
}

func TestResolver_FuzzyThreshold(t *testing.T) {
	entities := models.Entities{CenterName: "centro de saude santa monika", Neighborhood: "jardim america"}

	score := newTestResolver(t, Options{}).Index().Scores("centro de saude santa monika")[0]
	require.Greater(t, score, similarity.DefaultThreshold)

	t.Run("above threshold", func(t *testing.T) {
		r := newTestResolver(t, Options{Threshold: score - 0.01})
		assert.Equal(t, LevelCenterFuzzy, r.Lookup(entities).Level)
	})

	t.Run("at threshold", func(t *testing.T) {
		r := newTestResolver(t, Options{Threshold: score})
		got := r.Lookup(entities)
		assert.Equal(t, LevelNeighborhood, got.Level)
		assert.Equal(t, []string{"CENTRO DE SAUDE JARDIM AMERICA"}, names(got.Records))
	})
}
