package placesclient

import (
	"fmt"
	"io"
	"net/http"
	"time"

	googledomain "github.com/jbiddulph/localseo/infrastructure/integrator/googleplaces/domain"
	"github.com/jbiddulph/localseo/internal/config"
)

type Client interface {
	Geocode(postcode string) (*googledomain.GeoPoint, error)
	NearbySearch(lat, lng float64, radiusMeters int, keyword string) ([]googledomain.Place, error)
}

type PlacesClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &PlacesClient{
		Cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// doRequest executa a requisição GET e devolve o corpo da resposta
func (c *PlacesClient) doRequest(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("resposta inesperada da API do Google: status %d", resp.StatusCode)
	}

	return body, nil
}
