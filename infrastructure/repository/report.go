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
	reportsTable = "reports"
)

type ReportRepository interface {
	CreateReport(report *domain.Report) (*domain.Report, error)
	GetReportBySlug(slug string) (*domain.Report, error)
	ListReports(ownerID int, cohortID string) ([]*domain.Report, error)
	CountActiveReports(ownerID int) (int, error)
	DeleteReport(reportID string, ownerID int) error
	DeleteExpired() (int64, error)
}

type reportRepository struct {
	conn *postgres.Connection
}

func NewReportRepository(conn *postgres.Connection) ReportRepository {
	return &reportRepository{
		conn: conn,
	}
}

func (r *reportRepository) CreateReport(report *domain.Report) (*domain.Report, error) {
	query, args, err := squirrel.
		Insert(reportsTable).
		Columns("owner_id", "cohort_id", "slug", "expires_at").
		Values(report.OwnerID, report.CohortID, report.Slug, report.ExpiresAt).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return nil, err
	}

	return report, nil
}

func (r *reportRepository) GetReportBySlug(slug string) (*domain.Report, error) {
	query, args, err := squirrel.
		Select("id", "owner_id", "cohort_id", "slug", "expires_at", "created_at").
		From(reportsTable).
		Where(squirrel.Eq{"slug": slug}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var report domain.Report
	err = r.conn.QueryRow(query, args...).Scan(
		&report.ID,
		&report.OwnerID,
		&report.CohortID,
		&report.Slug,
		&report.ExpiresAt,
		&report.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &report, nil
}

func (r *reportRepository) ListReports(ownerID int, cohortID string) ([]*domain.Report, error) {
	queryBuilder := squirrel.
		Select("id", "owner_id", "cohort_id", "slug", "expires_at", "created_at").
		From(reportsTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if cohortID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"cohort_id": cohortID})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	reports := make([]*domain.Report, 0)
	for rows.Next() {
		var report domain.Report
		if err := rows.Scan(
			&report.ID,
			&report.OwnerID,
			&report.CohortID,
			&report.Slug,
			&report.ExpiresAt,
			&report.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear relatório: %w", err)
		}
		reports = append(reports, &report)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return reports, nil
}

// CountActiveReports conta os relatórios ainda não expirados do usuário
func (r *reportRepository) CountActiveReports(ownerID int) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(reportsTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Expr("expires_at > NOW()")).
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

func (r *reportRepository) DeleteReport(reportID string, ownerID int) error {
	query, args, err := squirrel.
		Delete(reportsTable).
		Where(squirrel.Eq{"id": reportID, "owner_id": ownerID}).
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

// DeleteExpired remove relatórios cujo prazo de compartilhamento expirou
func (r *reportRepository) DeleteExpired() (int64, error) {
	query, args, err := squirrel.
		Delete(reportsTable).
		Where(squirrel.Expr("expires_at < NOW()")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}
