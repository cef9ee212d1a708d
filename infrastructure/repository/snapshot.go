package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/jbiddulph/localseo/infrastructure/database/postgres"
	"github.com/jbiddulph/localseo/internal/domain"
)

const (
	snapshotsTable     = "rank_snapshots"
	snapshotItemsTable = "rank_snapshot_items"
)

type SnapshotRepository interface {
	InsertSnapshot(ctx context.Context, snapshot *domain.Snapshot, alerts []domain.Alert) (*domain.Snapshot, error)
	GetLatestSnapshot(cohortID string) (*domain.Snapshot, error)
	GetSnapshotByID(snapshotID string, ownerID int) (*domain.Snapshot, error)
	ListSnapshotInfos(cohortID string, ownerID int, limit int) ([]*domain.SnapshotInfo, error)
	DeleteOlderThan(days int, batchSize int) (int64, error)
}

type snapshotRepository struct {
	conn *postgres.Connection
}

func NewSnapshotRepository(conn *postgres.Connection) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

// InsertSnapshot grava o snapshot, seus itens e os alertas derivados em uma
// única transação. Ou tudo é persistido, ou nada é.
func (r *snapshotRepository) InsertSnapshot(ctx context.Context, snapshot *domain.Snapshot, alerts []domain.Alert) (*domain.Snapshot, error) {
	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		query, args, err := squirrel.
			Insert(snapshotsTable).
			Columns("owner_id", "cohort_id", "keyword", "postcode", "radius_km", "center_lat", "center_lng").
			Values(
				snapshot.OwnerID,
				snapshot.CohortID,
				snapshot.Keyword,
				snapshot.Postcode,
				snapshot.RadiusKm,
				snapshot.CenterLat,
				snapshot.CenterLng,
			).
			Suffix("RETURNING id, created_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if err := tx.QueryRowContext(ctx, query, args...).Scan(&snapshot.ID, &snapshot.CreatedAt); err != nil {
			return fmt.Errorf("erro ao inserir snapshot: %w", err)
		}

		if len(snapshot.Items) > 0 {
			itemsBuilder := squirrel.
				Insert(snapshotItemsTable).
				Columns("snapshot_id", "place_id", "name", "rank", "rating", "user_ratings_total", "vicinity", "lat", "lng")

			for _, item := range snapshot.Items {
				itemsBuilder = itemsBuilder.Values(
					snapshot.ID,
					item.PlaceID,
					item.Name,
					item.Rank,
					item.Rating,
					item.UserRatingsTotal,
					item.Vicinity,
					item.Lat,
					item.Lng,
				)
			}

			itemsSQL, itemsArgs, err := itemsBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, itemsSQL, itemsArgs...); err != nil {
				return fmt.Errorf("erro ao inserir itens do snapshot: %w", err)
			}
		}

		for i := range alerts {
			alertSQL, alertArgs, err := squirrel.
				Insert(alertsTable).
				Columns("owner_id", "cohort_id", "snapshot_id", "alert_type", "severity", "message", "data").
				Values(
					alerts[i].OwnerID,
					alerts[i].CohortID,
					snapshot.ID,
					alerts[i].Type,
					alerts[i].Severity,
					alerts[i].Message,
					[]byte(alerts[i].Data),
				).
				Suffix("RETURNING id, created_at").
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if err := tx.QueryRowContext(ctx, alertSQL, alertArgs...).Scan(&alerts[i].ID, &alerts[i].CreatedAt); err != nil {
				return fmt.Errorf("erro ao inserir alerta: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// GetLatestSnapshot busca o snapshot mais recente de um cohort, com os itens
// carregados na ordem do ranking
func (r *snapshotRepository) GetLatestSnapshot(cohortID string) (*domain.Snapshot, error) {
	query, args, err := squirrel.
		Select("id", "owner_id", "cohort_id", "keyword", "postcode", "radius_km", "center_lat", "center_lng", "created_at").
		From(snapshotsTable).
		Where(squirrel.Eq{"cohort_id": cohortID}).
		OrderBy("created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	snapshot, err := r.scanSnapshot(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	items, err := r.getSnapshotItems(snapshot.ID)
	if err != nil {
		return nil, err
	}
	snapshot.Items = items

	return snapshot, nil
}

func (r *snapshotRepository) GetSnapshotByID(snapshotID string, ownerID int) (*domain.Snapshot, error) {
	query, args, err := squirrel.
		Select("id", "owner_id", "cohort_id", "keyword", "postcode", "radius_km", "center_lat", "center_lng", "created_at").
		From(snapshotsTable).
		Where(squirrel.Eq{"id": snapshotID, "owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	snapshot, err := r.scanSnapshot(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	items, err := r.getSnapshotItems(snapshot.ID)
	if err != nil {
		return nil, err
	}
	snapshot.Items = items

	return snapshot, nil
}

func (r *snapshotRepository) ListSnapshotInfos(cohortID string, ownerID int, limit int) ([]*domain.SnapshotInfo, error) {
	queryBuilder := squirrel.
		Select("id", "created_at").
		From(snapshotsTable).
		Where(squirrel.Eq{"cohort_id": cohortID, "owner_id": ownerID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

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

	infos := make([]*domain.SnapshotInfo, 0)
	for rows.Next() {
		var info domain.SnapshotInfo
		if err := rows.Scan(&info.ID, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
		}
		infos = append(infos, &info)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return infos, nil
}

// DeleteOlderThan remove snapshots antigos em lotes para não segurar locks
// longos. Os itens são removidos em cascata pela FK.
func (r *snapshotRepository) DeleteOlderThan(days int, batchSize int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	var total int64
	for {
		query, args, err := squirrel.
			Delete(snapshotsTable).
			Where(fmt.Sprintf(
				"id IN (SELECT id FROM %s WHERE created_at < ? ORDER BY created_at ASC LIMIT %d)",
				snapshotsTable, batchSize,
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

func (r *snapshotRepository) scanSnapshot(row *sql.Row) (*domain.Snapshot, error) {
	snapshot := &domain.Snapshot{}
	err := row.Scan(
		&snapshot.ID,
		&snapshot.OwnerID,
		&snapshot.CohortID,
		&snapshot.Keyword,
		&snapshot.Postcode,
		&snapshot.RadiusKm,
		&snapshot.CenterLat,
		&snapshot.CenterLng,
		&snapshot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (r *snapshotRepository) getSnapshotItems(snapshotID string) ([]domain.RankedPlace, error) {
	query, args, err := squirrel.
		Select("place_id", "name", "rank", "rating", "user_ratings_total", "vicinity", "lat", "lng").
		From(snapshotItemsTable).
		Where(squirrel.Eq{"snapshot_id": snapshotID}).
		OrderBy("rank ASC").
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

	items := make([]domain.RankedPlace, 0)
	for rows.Next() {
		var item domain.RankedPlace
		if err := rows.Scan(
			&item.PlaceID,
			&item.Name,
			&item.Rank,
			&item.Rating,
			&item.UserRatingsTotal,
			&item.Vicinity,
			&item.Lat,
			&item.Lng,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear item do snapshot: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return items, nil
}
