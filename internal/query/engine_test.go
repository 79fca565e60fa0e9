package query

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/health-center-lookup/app/models"
	"github.com/health-center-lookup/internal/dataset"
	"github.com/health-center-lookup/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixture = filepath.Join("..", "dataset", "testdata", "centros_saude.csv")

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(Options{DataPath: fixture, CacheSize: 1}, zap.NewNop())
	require.NoError(t, err)
	return e
}

func TestEngine_EndToEnd(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, 6, e.Dataset().Len())

	tests := []struct {
		message  string
		level    resolver.Level
		expected []string
	}{
		{"Qual o endereço do posto de saúde Vila Cemig?", resolver.LevelCenter, []string{"CENTRO DE SAUDE VILA CEMIG"}},
		{"postos no bairro Barreiro", resolver.LevelNeighborhood, []string{"CENTRO DE SAUDE BARREIRO"}},
		{"unidades da região barreiro", resolver.LevelDistrict, []string{"CENTRO DE SAUDE BARREIRO", "CENTRO DE SAUDE VILA CEMIG"}},
		{"centros no distrito centro-sul", resolver.LevelDistrict, []string{"CENTRO DE SAUDE CENTRO SUL", "CENTRO DE SAUDE SÃO BENTO"}},
		{"bom dia", resolver.LevelNone, nil},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			entities := e.ExtractEntities(tt.message)
			got := e.Lookup(entities)
			assert.Equal(t, tt.level, got.Level)

			var names []string
			for _, r := range e.GetCenterInfo(entities) {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestEngine_Normalize(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, "centro de saude na avenida afonso pena", e.Normalize("UBS na Av. Afonso Pena!"))
}

func TestEngine_PriorityNeverMixes(t *testing.T) {
	e := newTestEngine(t)
	got := e.GetCenterInfo(models.Entities{CenterName: "centro de saude santa monica", District: "barreiro"})
	require.Len(t, got, 1)
	assert.Equal(t, "VENDA NOVA", got[0].District)
}

func TestNewEngine_LoadError(t *testing.T) {
	_, err := NewEngine(Options{DataPath: "missing.csv"}, zap.NewNop())
	var loadErr *dataset.LoadError
	assert.True(t, errors.As(err, &loadErr))
}
