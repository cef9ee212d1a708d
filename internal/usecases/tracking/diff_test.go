package tracking

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jbiddulph/localseo/internal/domain"
)

func float64Ptr(f float64) *float64 {
	return &f
}

func stringPtr(s string) *string {
	return &s
}

func place(id, name string, rank int) domain.RankedPlace {
	return domain.RankedPlace{PlaceID: id, Name: name, Rank: rank}
}

func TestHasChanged(t *testing.T) {
	tests := []struct {
		name     string
		previous []domain.RankedPlace
		current  []domain.RankedPlace
		expected bool
	}{
		{
			name:     "Listas idênticas não mudaram",
			previous: []domain.RankedPlace{place("a", "Loja A", 1), place("b", "Loja B", 2)},
			current:  []domain.RankedPlace{place("a", "Loja A", 1), place("b", "Loja B", 2)},
			expected: false,
		},
		{
			name:     "Tamanhos diferentes mudaram",
			previous: []domain.RankedPlace{place("a", "Loja A", 1)},
			current:  []domain.RankedPlace{place("a", "Loja A", 1), place("b", "Loja B", 2)},
			expected: true,
		},
		{
			name:     "Item novo sem par no snapshot anterior mudou",
			previous: []domain.RankedPlace{place("a", "Loja A", 1), place("b", "Loja B", 2)},
			current:  []domain.RankedPlace{place("a", "Loja A", 1), place("c", "Loja C", 2)},
			expected: true,
		},
		{
			name:     "Mudança de rank em par casado mudou",
			previous: []domain.RankedPlace{place("a", "Loja A", 1), place("b", "Loja B", 2)},
			current:  []domain.RankedPlace{place("b", "Loja B", 1), place("a", "Loja A", 2)},
			expected: true,
		},
		{
			name: "Mudança só na nota mudou",
			previous: []domain.RankedPlace{
				{PlaceID: "a", Name: "Loja A", Rank: 1, Rating: float64Ptr(4.5)},
			},
			current: []domain.RankedPlace{
				{PlaceID: "a", Name: "Loja A", Rank: 1, Rating: float64Ptr(4.6)},
			},
			expected: true,
		},
		{
			name: "Mudança só no total de avaliações mudou",
			previous: []domain.RankedPlace{
				{PlaceID: "a", Name: "Loja A", Rank: 1, UserRatingsTotal: intPtr(120)},
			},
			current: []domain.RankedPlace{
				{PlaceID: "a", Name: "Loja A", Rank: 1, UserRatingsTotal: intPtr(121)},
			},
			expected: true,
		},
		{
			name: "Nota ausente nos dois lados não mudou",
			previous: []domain.RankedPlace{
				{PlaceID: "a", Name: "Loja A", Rank: 1},
			},
			current: []domain.RankedPlace{
				{PlaceID: "a", Name: "Loja A", Rank: 1},
			},
			expected: false,
		},
		{
			name: "Nota presente só em um lado mudou",
			previous: []domain.RankedPlace{
				{PlaceID: "a", Name: "Loja A", Rank: 1, Rating: float64Ptr(4.5)},
			},
			current: []domain.RankedPlace{
				{PlaceID: "a", Name: "Loja A", Rank: 1},
			},
			expected: true,
		},
		{
			name:     "Listas vazias não mudaram",
			previous: []domain.RankedPlace{},
			current:  []domain.RankedPlace{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasChanged(tt.previous, tt.current))
		})
	}
}

func TestBuildAlerts_RankDrop(t *testing.T) {
	previous := []domain.RankedPlace{
		place("a", "Loja A", 1),
		place("b", "Loja B", 2),
		place("c", "Loja C", 3),
	}

	t.Run("Queda de 3 posições gera alerta de severidade média", func(t *testing.T) {
		current := []domain.RankedPlace{
			place("b", "Loja B", 1),
			place("c", "Loja C", 2),
			place("a", "Loja A", 4),
		}

		alerts := BuildAlerts(previous, current, nil)

		assert.Len(t, alerts, 1)
		assert.Equal(t, domain.AlertTypeRankDrop, alerts[0].Type)
		assert.Equal(t, domain.SeverityMedium, alerts[0].Severity)

		var data domain.RankDropData
		assert.NoError(t, json.Unmarshal(alerts[0].Data, &data))
		assert.Len(t, data.Drops, 1)
		assert.Equal(t, "a", data.Drops[0].PlaceID)
		assert.Equal(t, -3, data.Drops[0].Delta)
	})

	t.Run("Queda de 5 ou mais posições eleva a severidade para alta", func(t *testing.T) {
		current := []domain.RankedPlace{
			place("b", "Loja B", 1),
			place("c", "Loja C", 2),
			place("a", "Loja A", 6),
		}

		alerts := BuildAlerts(previous, current, nil)

		assert.Len(t, alerts, 1)
		assert.Equal(t, domain.AlertTypeRankDrop, alerts[0].Type)
		assert.Equal(t, domain.SeverityHigh, alerts[0].Severity)
	})

	t.Run("Queda de 2 posições não gera alerta", func(t *testing.T) {
		current := []domain.RankedPlace{
			place("b", "Loja B", 1),
			place("c", "Loja C", 2),
			place("a", "Loja A", 3),
		}

		alerts := BuildAlerts(previous, current, nil)
		assert.Empty(t, alerts)
	})

	t.Run("Item que sumiu do snapshot não conta como queda", func(t *testing.T) {
		current := []domain.RankedPlace{
			place("b", "Loja B", 1),
			place("c", "Loja C", 2),
		}

		alerts := BuildAlerts(previous, current, nil)
		assert.Empty(t, alerts)
	})
}

func TestBuildAlerts_NewTopThree(t *testing.T) {
	previous := []domain.RankedPlace{
		place("a", "Loja A", 1),
		place("b", "Loja B", 2),
		place("c", "Loja C", 3),
	}

	t.Run("Entrante no top 3 gera alerta", func(t *testing.T) {
		current := []domain.RankedPlace{
			place("a", "Loja A", 1),
			place("x", "Loja X", 2),
			place("b", "Loja B", 3),
		}

		alerts := BuildAlerts(previous, current, nil)

		assert.Len(t, alerts, 1)
		assert.Equal(t, domain.AlertTypeNewTopThree, alerts[0].Type)
		assert.Equal(t, domain.SeverityMedium, alerts[0].Severity)

		var data domain.NewTopThreeData
		assert.NoError(t, json.Unmarshal(alerts[0].Data, &data))
		assert.Len(t, data.Entrants, 1)
		assert.Equal(t, "x", data.Entrants[0].PlaceID)
		assert.Equal(t, 2, data.Entrants[0].Rank)
	})

	t.Run("Item já conhecido que sobe para o top 3 não é entrante", func(t *testing.T) {
		previous := []domain.RankedPlace{
			place("a", "Loja A", 1),
			place("b", "Loja B", 2),
			place("d", "Loja D", 5),
		}
		current := []domain.RankedPlace{
			place("a", "Loja A", 1),
			place("d", "Loja D", 2),
			place("b", "Loja B", 3),
		}

		alerts := BuildAlerts(previous, current, nil)
		assert.Empty(t, alerts)
	})
}

func TestBuildAlerts_BusinessVisibility(t *testing.T) {
	// Ranks anteriores próximos dos atuais para nenhum subteste disparar
	// rank_drop junto; cada tipo de alerta é independente
	t.Run("Negócio dentro do top 10 não gera alerta", func(t *testing.T) {
		previous := []domain.RankedPlace{place("a", "Barbearia Central", 2)}
		current := []domain.RankedPlace{place("a", "Barbearia Central", 4)}

		alerts := BuildAlerts(previous, current, stringPtr("barbearia central"))
		assert.Empty(t, alerts)
	})

	t.Run("Negócio abaixo do top 10 gera alerta alto com o rank", func(t *testing.T) {
		previous := []domain.RankedPlace{place("a", "Barbearia Central", 10)}
		current := []domain.RankedPlace{place("a", "Barbearia Central", 12)}

		alerts := BuildAlerts(previous, current, stringPtr("Barbearia Central"))

		assert.Len(t, alerts, 1)
		assert.Equal(t, domain.AlertTypeBusinessOutOfTop, alerts[0].Type)
		assert.Equal(t, domain.SeverityHigh, alerts[0].Severity)

		var data domain.BusinessVisibilityData
		assert.NoError(t, json.Unmarshal(alerts[0].Data, &data))
		assert.NotNil(t, data.Rank)
		assert.Equal(t, 12, *data.Rank)
	})

	t.Run("Negócio ausente do snapshot gera alerta com rank nulo", func(t *testing.T) {
		previous := []domain.RankedPlace{place("a", "Barbearia Central", 1)}
		current := []domain.RankedPlace{place("b", "Outra Loja", 4)}

		alerts := BuildAlerts(previous, current, stringPtr("Barbearia Central"))

		assert.Len(t, alerts, 1)
		assert.Equal(t, domain.AlertTypeBusinessOutOfTop, alerts[0].Type)

		var data domain.BusinessVisibilityData
		assert.NoError(t, json.Unmarshal(alerts[0].Data, &data))
		assert.Nil(t, data.Rank)
	})

	t.Run("Casamento por substring ignora maiúsculas", func(t *testing.T) {
		previous := []domain.RankedPlace{place("a", "A BARBEARIA CENTRAL LTDA", 1)}
		current := []domain.RankedPlace{place("a", "A BARBEARIA CENTRAL LTDA", 2)}

		alerts := BuildAlerts(previous, current, stringPtr("barbearia central"))
		assert.Empty(t, alerts)
	})

	t.Run("Nome de negócio vazio não avalia visibilidade", func(t *testing.T) {
		previous := []domain.RankedPlace{place("a", "Barbearia Central", 1)}
		current := []domain.RankedPlace{place("b", "Outra Loja", 4)}

		alerts := BuildAlerts(previous, current, stringPtr(""))
		assert.Empty(t, alerts)
	})
}

func TestBuildAlerts_OrderAndDeterminism(t *testing.T) {
	previous := []domain.RankedPlace{
		place("a", "Loja A", 1),
		place("b", "Loja B", 2),
		place("c", "Loja C", 3),
	}
	// Loja A despenca, Loja X entra no top 3 e o negócio configurado some
	current := []domain.RankedPlace{
		place("x", "Loja X", 1),
		place("b", "Loja B", 2),
		place("c", "Loja C", 3),
		place("a", "Loja A", 7),
	}

	first := BuildAlerts(previous, current, stringPtr("Minha Ótica"))
	second := BuildAlerts(previous, current, stringPtr("Minha Ótica"))

	assert.Len(t, first, 3)
	assert.Equal(t, domain.AlertTypeRankDrop, first[0].Type)
	assert.Equal(t, domain.AlertTypeNewTopThree, first[1].Type)
	assert.Equal(t, domain.AlertTypeBusinessOutOfTop, first[2].Type)

	// Determinismo: mesmas entradas, mesma saída byte a byte
	assert.Equal(t, first, second)
}
