package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/jbiddulph/localseo/infrastructure/database/postgres"
	"github.com/jbiddulph/localseo/internal/domain"
)

const (
	alertsTable = "alerts"
)

type AlertRepository interface {
	ListAlerts(ownerID int, cohortID string, limit int) ([]*domain.Alert, error)
	DeleteOlderThan(days int, batchSize int) (int64, error)
}

type alertRepository struct {
	conn *postgres.Connection
}

func NewAlertRepository(conn *postgres.Connection) AlertRepository {
	return &alertRepository{
		conn: conn,
	}
}

// ListAlerts retorna os alertas do usuário, do mais recente ao mais antigo.
// cohortID vazio retorna alertas de todos os cohorts.
func (r *alertRepository) ListAlerts(ownerID int, cohortID string, limit int) ([]*domain.Alert, error) {
	queryBuilder := squirrel.
		Select("id", "owner_id", "cohort_id", "snapshot_id", "alert_type", "severity", "message", "data", "created_at").
		From(alertsTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if cohortID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"cohort_id": cohortID})
	}

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(limit))
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

	alerts := make([]*domain.Alert, 0)
	for rows.Next() {
		var alert domain.Alert
		var data []byte
		if err := rows.Scan(
			&alert.ID,
			&alert.OwnerID,
			&alert.CohortID,
			&alert.SnapshotID,
			&alert.Type,
			&alert.Severity,
			&alert.Message,
			&data,
			&alert.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear alerta: %w", err)
		}
		alert.Data = data
		alerts = append(alerts, &alert)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return alerts, nil
}

// DeleteOlderThan remove alertas antigos em lotes
func (r *alertRepository) DeleteOlderThan(days int, batchSize int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	var total int64
	for {
		query, args, err := squirrel.
			Delete(alertsTable).
			Where(fmt.Sprintf(
				"id IN (SELECT id FROM %s WHERE created_at < ? ORDER BY created_at ASC LIMIT %d)",
				alertsTable, batchSize,
			), cutoff).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return total, fmt.Errorf("erro ao construir a query: %w", err)
		}

		result, err := r.conn.Exec(query, args...)
		if err != nil {
			return total, fmt.Errorf("erro ao executar a query: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
		}

		total += rowsAffected
		if rowsAffected < int64(batchSize) {
			break
		}
	}

	return total, nil
}
