package domain

import "time"

// Report é um relatório compartilhável somente-leitura identificado por slug público
type Report struct {
	ID        string    `json:"id"`
	OwnerID   int       `json:"owner_id"`
	CohortID  string    `json:"cohort_id"`
	Slug      string    `json:"slug"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// RankMovement é um destaque de movimentação entre os dois últimos snapshots.
// Delta positivo = subiu de posição.
type RankMovement struct {
	Name  string `json:"name"`
	Delta int    `json:"delta"`
}

// ReportData é o conjunto de dados montado para renderizar um relatório
type ReportData struct {
	Cohort           Cohort         `json:"cohort"`
	LatestSnapshot   *SnapshotInfo  `json:"latest_snapshot"`
	PreviousSnapshot *SnapshotInfo  `json:"previous_snapshot"`
	Items            []RankedPlace  `json:"items"`
	Deltas           []RankMovement `json:"deltas"`
}
