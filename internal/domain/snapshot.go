package domain

import "time"

// RankedPlace é uma entrada do resultado de busca local. O rank é atribuído
// pela posição na lista retornada pelo provedor (iniciando em 1), não pelo
// provedor em si.
type RankedPlace struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Rank             int      `json:"rank"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal *int     `json:"user_ratings_total"`
	Vicinity         *string  `json:"vicinity"`
	Lat              float64  `json:"lat"`
	Lng              float64  `json:"lng"`
}

// Snapshot é uma captura imutável dos resultados ranqueados de um cohort.
// Uma nova busca sempre gera um novo snapshot, nunca atualiza um antigo.
type Snapshot struct {
	ID        string        `json:"id"`
	OwnerID   int           `json:"owner_id"`
	CohortID  string        `json:"cohort_id"`
	Keyword   string        `json:"keyword"`
	Postcode  string        `json:"postcode"`
	RadiusKm  *float64      `json:"radius_km"`
	CenterLat float64       `json:"center_lat"`
	CenterLng float64       `json:"center_lng"`
	CreatedAt time.Time     `json:"created_at"`
	Items     []RankedPlace `json:"items,omitempty"`
}

// SnapshotInfo é a projeção mínima de um snapshot usada em relatórios
type SnapshotInfo struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
