// Package domain contém as estruturas de resposta da API do Google Maps
package domain

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Geometry struct {
	Location GeoPoint `json:"location"`
}

// Place é um resultado bruto da Nearby Search. O rank não vem da API, é
// atribuído pela posição na lista.
type Place struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal *int     `json:"user_ratings_total"`
	Vicinity         *string  `json:"vicinity"`
	Geometry         Geometry `json:"geometry"`
}

type GeocodeResult struct {
	Geometry Geometry `json:"geometry"`
}

type GeocodeResponse struct {
	Results      []GeocodeResult `json:"results"`
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message"`
}

type NearbySearchResponse struct {
	Results      []Place `json:"results"`
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message"`
}
