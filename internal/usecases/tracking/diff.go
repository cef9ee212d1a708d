package tracking

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jbiddulph/localseo/internal/domain"
)

// HasChanged compara duas listas ranqueadas pelo identificador do lugar e
// responde se vale a pena persistir um novo snapshot. Mudou quando os tamanhos
// diferem, quando algum item atual não existia antes, ou quando um par casado
// difere em rank, nota ou total de avaliações. A ausência total de snapshot
// anterior é tratada como mudança pelo chamador (o primeiro snapshot sempre
// persiste).
func HasChanged(previous, current []domain.RankedPlace) bool {
	if len(previous) != len(current) {
		return true
	}

	prevByID := make(map[string]domain.RankedPlace, len(previous))
	for _, item := range previous {
		prevByID[item.PlaceID] = item
	}

	for _, item := range current {
		prev, ok := prevByID[item.PlaceID]
		if !ok {
			return true
		}

		if prev.Rank != item.Rank ||
			!equalFloat64Ptr(prev.Rating, item.Rating) ||
			!equalIntPtr(prev.UserRatingsTotal, item.UserRatingsTotal) {
			return true
		}
	}

	return false
}

// BuildAlerts classifica a mudança entre dois snapshots e produz os alertas
// derivados. Função pura e determinística: entradas idênticas produzem listas
// idênticas, inclusive na ordem (que segue a ordem da lista atual, não a
// magnitude). A emissão é sempre rank_drop, new_top_three e depois
// business_out_of_top; zero, um, dois ou os três tipos podem disparar.
func BuildAlerts(previous, current []domain.RankedPlace, businessName *string) []domain.Alert {
	alerts := make([]domain.Alert, 0, 3)

	prevByID := make(map[string]domain.RankedPlace, len(previous))
	for _, item := range previous {
		prevByID[item.PlaceID] = item
	}

	// Quedas de 3 ou mais posições entre itens presentes nos dois snapshots
	drops := make([]domain.RankDrop, 0)
	for _, item := range current {
		prev, ok := prevByID[item.PlaceID]
		if !ok {
			continue
		}

		delta := prev.Rank - item.Rank
		if delta <= -3 {
			drops = append(drops, domain.RankDrop{
				PlaceID: item.PlaceID,
				Name:    item.Name,
				Delta:   delta,
			})
		}
	}

	if len(drops) > 0 {
		severity := domain.SeverityMedium
		for _, drop := range drops {
			if drop.Delta <= -5 {
				severity = domain.SeverityHigh
				break
			}
		}

		alerts = append(alerts, domain.Alert{
			Type:     domain.AlertTypeRankDrop,
			Severity: severity,
			Message:  fmt.Sprintf("Detectadas %d quedas de 3 ou mais posições.", len(drops)),
			Data:     marshalAlertData(domain.RankDropData{Drops: drops}),
		})
	}

	// Entrantes no top 3 que não existiam no snapshot anterior
	entrants := make([]domain.NewEntrant, 0)
	for _, item := range current {
		if item.Rank > 3 {
			continue
		}
		if _, ok := prevByID[item.PlaceID]; ok {
			continue
		}

		entrants = append(entrants, domain.NewEntrant{
			PlaceID: item.PlaceID,
			Name:    item.Name,
			Rank:    item.Rank,
		})
	}

	if len(entrants) > 0 {
		alerts = append(alerts, domain.Alert{
			Type:     domain.AlertTypeNewTopThree,
			Severity: domain.SeverityMedium,
			Message:  fmt.Sprintf("%d novos concorrentes entraram no top 3.", len(entrants)),
			Data:     marshalAlertData(domain.NewTopThreeData{Entrants: entrants}),
		})
	}

	// Visibilidade do negócio configurado: substring case-insensitive no nome.
	// A aproximação por substring é preservada propositalmente, apesar de
	// frágil com concorrentes de nome parecido.
	if businessName != nil && *businessName != "" {
		var matchedRank *int
		for _, item := range current {
			if strings.Contains(strings.ToLower(item.Name), strings.ToLower(*businessName)) {
				rank := item.Rank
				matchedRank = &rank
				break
			}
		}

		if matchedRank == nil || *matchedRank > 10 {
			alerts = append(alerts, domain.Alert{
				Type:     domain.AlertTypeBusinessOutOfTop,
				Severity: domain.SeverityHigh,
				Message:  fmt.Sprintf("%s está fora do top 10 neste snapshot.", *businessName),
				Data: marshalAlertData(domain.BusinessVisibilityData{
					BusinessName: *businessName,
					Rank:         matchedRank,
				}),
			})
		}
	}

	return alerts
}

// marshalAlertData serializa o payload estruturado do alerta. Os tipos de
// payload são compostos apenas de tipos serializáveis, então o erro é
// impossível aqui.
func marshalAlertData(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func equalFloat64Ptr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
