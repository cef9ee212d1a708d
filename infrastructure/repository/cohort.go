package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/jbiddulph/localseo/infrastructure/database/postgres"
	"github.com/jbiddulph/localseo/internal/domain"
)

const (
	cohortsTable = "cohorts"
)

type CohortRepository interface {
	CreateCohort(cohort *domain.Cohort) (*domain.Cohort, error)
	UpdateCohort(req domain.UpdateCohortRequest, ownerID int) error
	GetCohortByID(cohortID string, ownerID int) (*domain.Cohort, error)
	ListCohorts(ownerID int) ([]*domain.Cohort, error)
	CountCohorts(ownerID int) (int, error)
	DeleteCohort(cohortID string, ownerID int) error
}

type cohortRepository struct {
	conn *postgres.Connection
}

func NewCohortRepository(conn *postgres.Connection) CohortRepository {
	return &cohortRepository{
		conn: conn,
	}
}

func (r *cohortRepository) CreateCohort(cohort *domain.Cohort) (*domain.Cohort, error) {
	query, args, err := squirrel.
		Insert(cohortsTable).
		Columns("owner_id", "name", "postcode", "keyword", "radius_km", "business_name", "notes").
		Values(
			cohort.OwnerID,
			cohort.Name,
			cohort.Postcode,
			cohort.Keyword,
			cohort.RadiusKm,
			cohort.BusinessName,
			cohort.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&cohort.ID, &cohort.CreatedAt, &cohort.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return cohort, nil
}

func (r *cohortRepository) UpdateCohort(req domain.UpdateCohortRequest, ownerID int) error {
	queryBuilder := squirrel.
		Update(cohortsTable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": req.ID, "owner_id": ownerID})

	if req.Name != nil {
		queryBuilder = queryBuilder.Set("name", *req.Name)
	}

	if req.Postcode != nil {
		queryBuilder = queryBuilder.Set("postcode", *req.Postcode)
	}

	if req.Keyword != nil {
		queryBuilder = queryBuilder.Set("keyword", req.Keyword)
	}

	if req.RadiusKm != nil {
		queryBuilder = queryBuilder.Set("radius_km", req.RadiusKm)
	}

	if req.BusinessName != nil {
		queryBuilder = queryBuilder.Set("business_name", req.BusinessName)
	}

	if req.Notes != nil {
		queryBuilder = queryBuilder.Set("notes", req.Notes)
	}

	query, args, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *cohortRepository) GetCohortByID(cohortID string, ownerID int) (*domain.Cohort, error) {
	query, args, err := squirrel.
		Select("id", "owner_id", "name", "postcode", "keyword", "radius_km", "business_name", "notes", "created_at", "updated_at").
		From(cohortsTable).
		Where(squirrel.Eq{"id": cohortID, "owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var cohort domain.Cohort
	err = r.conn.QueryRow(query, args...).Scan(
		&cohort.ID,
		&cohort.OwnerID,
		&cohort.Name,
		&cohort.Postcode,
		&cohort.Keyword,
		&cohort.RadiusKm,
		&cohort.BusinessName,
		&cohort.Notes,
		&cohort.CreatedAt,
		&cohort.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &cohort, nil
}

func (r *cohortRepository) ListCohorts(ownerID int) ([]*domain.Cohort, error) {
	query, args, err := squirrel.
		Select("id", "owner_id", "name", "postcode", "keyword", "radius_km", "business_name", "notes", "created_at", "updated_at").
		From(cohortsTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	cohorts := make([]*domain.Cohort, 0)
	for rows.Next() {
		var cohort domain.Cohort
		if err := rows.Scan(
			&cohort.ID,
			&cohort.OwnerID,
			&cohort.Name,
			&cohort.Postcode,
			&cohort.Keyword,
			&cohort.RadiusKm,
			&cohort.BusinessName,
			&cohort.Notes,
			&cohort.CreatedAt,
			&cohort.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear cohort: %w", err)
		}
		cohorts = append(cohorts, &cohort)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return cohorts, nil
}

func (r *cohortRepository) CountCohorts(ownerID int) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(cohortsTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *cohortRepository) DeleteCohort(cohortID string, ownerID int) error {
	query, args, err := squirrel.
		Delete(cohortsTable).
		Where(squirrel.Eq{"id": cohortID, "owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
