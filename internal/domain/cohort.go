// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// Cohort representa uma combinação monitorada de CEP/postcode, palavra-chave,
// raio e nome do negócio pertencente a um usuário
type Cohort struct {
	ID           string    `json:"id"`
	OwnerID      int       `json:"owner_id"`
	Name         string    `json:"name"`
	Postcode     string    `json:"postcode"`
	Keyword      *string   `json:"keyword"`
	RadiusKm     *float64  `json:"radius_km"`
	BusinessName *string   `json:"business_name"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateCohortRequest struct {
	Name         string   `json:"name"`
	Postcode     string   `json:"postcode"`
	Keyword      *string  `json:"keyword"`
	RadiusKm     *float64 `json:"radius_km"`
	BusinessName *string  `json:"business_name"`
	Notes        *string  `json:"notes"`
}

type UpdateCohortRequest struct {
	ID           string   `json:"id"`
	Name         *string  `json:"name"`
	Postcode     *string  `json:"postcode"`
	Keyword      *string  `json:"keyword"`
	RadiusKm     *float64 `json:"radius_km"`
	BusinessName *string  `json:"business_name"`
	Notes        *string  `json:"notes"`
}
