package placesclient

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
	googledomain "github.com/jbiddulph/localseo/infrastructure/integrator/googleplaces/domain"
)

// NearbySearch busca estabelecimentos próximos às coordenadas filtrando pela
// palavra-chave. A ordem da lista retornada é a relevância atribuída pelo
// Google e é preservada.
func (c *PlacesClient) NearbySearch(lat, lng float64, radiusMeters int, keyword string) ([]googledomain.Place, error) {
	params := url.Values{}
	params.Add("location", fmt.Sprintf("%f,%f", lat, lng))
	params.Add("radius", strconv.Itoa(radiusMeters))
	params.Add("keyword", keyword)
	params.Add("key", c.Cfg.Google.APIKey)

	requestURL := fmt.Sprintf("%s/place/nearbysearch/json?%s", c.Cfg.Google.MapsBaseURL, params.Encode())

	body, err := c.doRequest(requestURL)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição de nearby search")
		return nil, err
	}

	var response googledomain.NearbySearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON de nearby search")
		return nil, err
	}

	// Qualquer status fora de OK é erro, inclusive ZERO_RESULTS
	if response.Status != "OK" {
		if response.ErrorMessage != "" {
			return nil, fmt.Errorf("nearby search falhou (status: %s): %s", response.Status, response.ErrorMessage)
		}
		return nil, fmt.Errorf("nearby search falhou (status: %s)", response.Status)
	}

	return response.Results, nil
}
