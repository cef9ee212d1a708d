package placesclient

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	googledomain "github.com/jbiddulph/localseo/infrastructure/integrator/googleplaces/domain"
)

// Geocode resolve um CEP/postcode para coordenadas usando a Geocoding API
func (c *PlacesClient) Geocode(postcode string) (*googledomain.GeoPoint, error) {
	params := url.Values{}
	params.Add("address", postcode)
	params.Add("key", c.Cfg.Google.APIKey)

	requestURL := fmt.Sprintf("%s/geocode/json?%s", c.Cfg.Google.MapsBaseURL, params.Encode())

	body, err := c.doRequest(requestURL)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição de geocoding")
		return nil, err
	}

	var response googledomain.GeocodeResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON de geocoding")
		return nil, err
	}

	if response.Status != "OK" || len(response.Results) == 0 {
		if response.ErrorMessage != "" {
			return nil, fmt.Errorf("geocoding sem resultados para %q (status: %s): %s", postcode, response.Status, response.ErrorMessage)
		}
		return nil, fmt.Errorf("geocoding sem resultados para %q (status: %s)", postcode, response.Status)
	}

	location := response.Results[0].Geometry.Location
	return &location, nil
}
