package services

import (
	"testing"

	"github.com/health-center-lookup/app/models"
	"github.com/stretchr/testify/assert"
)

var (
	barreiro = models.HealthCenter{
		Name:         "CENTRO DE SAUDE BARREIRO",
		Neighborhood: "BARREIRO",
		Address:      "Rua Pedro Ii, 50 - Barreiro",
		Phone:        "(31) 99999-8888",
		District:     "BARREIRO",
	}
	vilaCemig = models.HealthCenter{
		Name:         "CENTRO DE SAUDE VILA CEMIG",
		Neighborhood: "VILA CEMIG",
		Address:      "Rua Cemig, 200 - Vila Cemig",
		District:     "BARREIRO",
	}
	barreiroDeCima = models.HealthCenter{
		Name:         "CENTRO DE SAUDE BARREIRO DE CIMA",
		Neighborhood: "BARREIRO",
		Address:      "Rua A, 1 - Barreiro",
		Phone:        "(31) 3277-0000",
		District:     "BARREIRO",
	}
)

func TestReplyService_Format(t *testing.T) {
	rs := NewReplyService()

	tests := []struct {
		name     string
		entities models.Entities
		records  []models.HealthCenter
		expected string
	}{
		{
			name:     "no records",
			entities: models.Entities{CenterName: "centro de saude x"},
			expected: NoMatchReply,
		},
		{
			name:     "center query",
			entities: models.Entities{CenterName: "centro de saude barreiro"},
			records:  []models.HealthCenter{barreiro},
			expected: "Encontrei 1 centro(s) de saúde:" +
				"<br>• <b>CENTRO DE SAUDE BARREIRO</b>: Rua Pedro Ii, 50 - Barreiro | Telefone: (31) 99999-8888",
		},
		{
			name:     "single neighborhood",
			entities: models.Entities{Neighborhood: "barreiro"},
			records:  []models.HealthCenter{barreiro, barreiroDeCima},
			expected: "Encontrei 2 centro(s) de saúde no bairro BARREIRO:" +
				"<br>• <b>CENTRO DE SAUDE BARREIRO</b>: Rua Pedro Ii, 50 - Barreiro | Telefone: (31) 99999-8888" +
				"<br>• <b>CENTRO DE SAUDE BARREIRO DE CIMA</b>: Rua A, 1 - Barreiro | Telefone: (31) 3277-0000",
		},
		{
			name:     "district grouped by neighborhood in first seen order",
			entities: models.Entities{District: "barreiro"},
			records:  []models.HealthCenter{barreiro, vilaCemig, barreiroDeCima},
			expected: "Encontrei 3 centro(s) de saúde no distrito BARREIRO:<br>" +
				"<br><br><b>Bairro BARREIRO:</b>" +
				"<br>• <b>CENTRO DE SAUDE BARREIRO</b>: Rua Pedro Ii, 50 - Barreiro | Telefone: (31) 99999-8888" +
				"<br>• <b>CENTRO DE SAUDE BARREIRO DE CIMA</b>: Rua A, 1 - Barreiro | Telefone: (31) 3277-0000" +
				"<br><br><b>Bairro VILA CEMIG:</b>" +
				"<br>• <b>CENTRO DE SAUDE VILA CEMIG</b>: Rua Cemig, 200 - Vila Cemig | Telefone: não disponível",
		},
		{
			name:     "neighborhood spanning several neighborhoods uses the district layout",
			entities: models.Entities{Neighborhood: "vila"},
			records:  []models.HealthCenter{vilaCemig, barreiro},
			expected: "Encontrei 2 centro(s) de saúde no distrito BARREIRO:<br>" +
				"<br><br><b>Bairro VILA CEMIG:</b>" +
				"<br>• <b>CENTRO DE SAUDE VILA CEMIG</b>: Rua Cemig, 200 - Vila Cemig | Telefone: não disponível" +
				"<br><br><b>Bairro BARREIRO:</b>" +
				"<br>• <b>CENTRO DE SAUDE BARREIRO</b>: Rua Pedro Ii, 50 - Barreiro | Telefone: (31) 99999-8888",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rs.Format(tt.entities, tt.records))
		})
	}
}
