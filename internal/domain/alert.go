package domain

import (
	"encoding/json"
	"time"
)

type AlertType string

const (
	AlertTypeRankDrop         AlertType = "rank_drop"
	AlertTypeNewTopThree      AlertType = "new_top_three"
	AlertTypeBusinessOutOfTop AlertType = "business_out_of_top"
)

type AlertSeverity string

const (
	SeverityLow    AlertSeverity = "low"
	SeverityMedium AlertSeverity = "medium"
	SeverityHigh   AlertSeverity = "high"
)

// Alert é um fato derivado da comparação entre dois snapshots. Gravado uma
// única vez; o payload em Data varia conforme o tipo.
type Alert struct {
	ID         string          `json:"id"`
	OwnerID    int             `json:"owner_id"`
	CohortID   string          `json:"cohort_id"`
	SnapshotID string          `json:"snapshot_id"`
	Type       AlertType       `json:"alert_type"`
	Severity   AlertSeverity   `json:"severity"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	CreatedAt  time.Time       `json:"created_at"`
}

// RankDrop descreve um item que perdeu 3 ou mais posições entre snapshots.
// Delta = rank anterior - rank atual (negativo = queda).
type RankDrop struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
	Delta   int    `json:"delta"`
}

type RankDropData struct {
	Drops []RankDrop `json:"drops"`
}

// NewEntrant descreve um item que entrou no top 3 sem aparecer no snapshot anterior
type NewEntrant struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
	Rank    int    `json:"rank"`
}

type NewTopThreeData struct {
	Entrants []NewEntrant `json:"new_top_three"`
}

// BusinessVisibilityData carrega o nome configurado do negócio e o rank
// encontrado no snapshot atual (nil quando ausente por completo)
type BusinessVisibilityData struct {
	BusinessName string `json:"business_name"`
	Rank         *int   `json:"rank"`
}
