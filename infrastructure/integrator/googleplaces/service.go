// Package googleplaces integra com as APIs de Geocoding e Places do Google
// para coletar o ranking de busca local de um cohort
package googleplaces

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/jbiddulph/localseo/infrastructure/integrator/googleplaces/placesclient"
	"github.com/jbiddulph/localseo/internal/config"
	"github.com/jbiddulph/localseo/internal/domain"
	"github.com/jbiddulph/localseo/pkg/utils"
)

const (
	// DefaultRadiusKm é o raio usado quando o cohort não define um
	DefaultRadiusKm = 1.5
	// MinRadiusKm é o piso do raio de busca; valores menores são elevados
	MinRadiusKm = 0.5
)

// SearchResult é o resultado de uma coleta: o centro geocodificado e os
// itens ranqueados pela posição na resposta do provedor
type SearchResult struct {
	CenterLat float64
	CenterLng float64
	Items     []domain.RankedPlace
}

type PlacesIntegrator interface {
	CollectRankedPlaces(postcode, keyword string, radiusKm *float64) (*SearchResult, error)
}

type GooglePlacesIntegrator struct {
	cfg    *config.Config
	Client placesclient.Client
}

func New(cfg *config.Config, client placesclient.Client) *GooglePlacesIntegrator {
	return &GooglePlacesIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// CollectRankedPlaces geocodifica o postcode e executa a busca por
// proximidade. O rank de cada item é a posição na lista (iniciando em 1).
func (s *GooglePlacesIntegrator) CollectRankedPlaces(postcode, keyword string, radiusKm *float64) (*SearchResult, error) {
	center, err := s.Client.Geocode(postcode)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"postcode": postcode,
			"error":    err.Error(),
		}).Error("places: falha ao geocodificar postcode")
		return nil, fmt.Errorf("erro ao geocodificar postcode: %w", err)
	}

	radius := DefaultRadiusKm
	if radiusKm != nil {
		radius = *radiusKm
	}
	if radius < MinRadiusKm {
		radius = MinRadiusKm
	}
	radiusMeters := int(math.Round(radius * 1000))

	places, err := s.Client.NearbySearch(center.Lat, center.Lng, radiusMeters, keyword)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"postcode": postcode,
			"keyword":  keyword,
			"error":    err.Error(),
		}).Error("places: falha na busca por proximidade")
		return nil, fmt.Errorf("erro na busca por proximidade: %w", err)
	}

	items := make([]domain.RankedPlace, 0, len(places))
	for i, place := range places {
		items = append(items, domain.RankedPlace{
			PlaceID:          place.PlaceID,
			Name:             place.Name,
			Rank:             i + 1,
			Rating:           roundRating(place.Rating),
			UserRatingsTotal: place.UserRatingsTotal,
			Vicinity:         place.Vicinity,
			Lat:              place.Geometry.Location.Lat,
			Lng:              place.Geometry.Location.Lng,
		})
	}

	logrus.WithFields(logrus.Fields{
		"postcode": postcode,
		"keyword":  keyword,
		"results":  len(items),
	}).Debug("places: coleta concluída")

	return &SearchResult{
		CenterLat: center.Lat,
		CenterLng: center.Lng,
		Items:     items,
	}, nil
}

// roundRating normaliza a nota do provedor para duas casas decimais
func roundRating(rating *float64) *float64 {
	if rating == nil {
		return nil
	}

	rounded := utils.RoundWithTwoDecimalPlace(*rating)
	return &rounded
}
