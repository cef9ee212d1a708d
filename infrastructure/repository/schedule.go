package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/jbiddulph/localseo/infrastructure/database/postgres"
	"github.com/jbiddulph/localseo/internal/domain"
)

const (
	schedulesTable = "tracking_schedules"
)

type ScheduleRepository interface {
	CreateSchedule(schedule *domain.TrackingSchedule) (*domain.TrackingSchedule, error)
	UpdateSchedule(req domain.UpdateScheduleRequest, ownerID int) error
	GetScheduleByID(scheduleID string, ownerID int) (*domain.TrackingSchedule, error)
	ListSchedules(ownerID int) ([]*domain.TrackingSchedule, error)
	ListActiveSchedules() ([]*domain.TrackingSchedule, error)
	UpdateLastRunAt(scheduleID string, runAt time.Time) error
	DeleteSchedule(scheduleID string, ownerID int) error
}

type scheduleRepository struct {
	conn *postgres.Connection
}

func NewScheduleRepository(conn *postgres.Connection) ScheduleRepository {
	return &scheduleRepository{
		conn: conn,
	}
}

func (r *scheduleRepository) CreateSchedule(schedule *domain.TrackingSchedule) (*domain.TrackingSchedule, error) {
	query, args, err := squirrel.
		Insert(schedulesTable).
		Columns("owner_id", "cohort_id", "frequency", "day_of_week", "hour_utc", "is_active").
		Values(
			schedule.OwnerID,
			schedule.CohortID,
			schedule.Frequency,
			schedule.DayOfWeek,
			schedule.HourUTC,
			schedule.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return schedule, nil
}

func (r *scheduleRepository) UpdateSchedule(req domain.UpdateScheduleRequest, ownerID int) error {
	queryBuilder := squirrel.
		Update(schedulesTable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": req.ID, "owner_id": ownerID})

	if req.Frequency != nil {
		queryBuilder = queryBuilder.Set("frequency", *req.Frequency)

		// Ao mudar para diário, o dia da semana deixa de fazer sentido
		if *req.Frequency == domain.FrequencyDaily {
			queryBuilder = queryBuilder.Set("day_of_week", nil)
		}
	}

	if req.DayOfWeek != nil {
		queryBuilder = queryBuilder.Set("day_of_week", *req.DayOfWeek)
	}

	if req.HourUTC != nil {
		queryBuilder = queryBuilder.Set("hour_utc", *req.HourUTC)
	}

	if req.Active != nil {
		queryBuilder = queryBuilder.Set("is_active", *req.Active)
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

func (r *scheduleRepository) GetScheduleByID(scheduleID string, ownerID int) (*domain.TrackingSchedule, error) {
	query, args, err := squirrel.
		Select("id", "owner_id", "cohort_id", "frequency", "day_of_week", "hour_utc", "is_active", "last_run_at", "created_at", "updated_at").
		From(schedulesTable).
		Where(squirrel.Eq{"id": scheduleID, "owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var schedule domain.TrackingSchedule
	err = r.conn.QueryRow(query, args...).Scan(
		&schedule.ID,
		&schedule.OwnerID,
		&schedule.CohortID,
		&schedule.Frequency,
		&schedule.DayOfWeek,
		&schedule.HourUTC,
		&schedule.Active,
		&schedule.LastRunAt,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &schedule, nil
}

func (r *scheduleRepository) ListSchedules(ownerID int) ([]*domain.TrackingSchedule, error) {
	query, args, err := squirrel.
		Select("id", "owner_id", "cohort_id", "frequency", "day_of_week", "hour_utc", "is_active", "last_run_at", "created_at", "updated_at").
		From(schedulesTable).
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

	schedules := make([]*domain.TrackingSchedule, 0)
	for rows.Next() {
		var schedule domain.TrackingSchedule
		if err := rows.Scan(
			&schedule.ID,
			&schedule.OwnerID,
			&schedule.CohortID,
			&schedule.Frequency,
			&schedule.DayOfWeek,
			&schedule.HourUTC,
			&schedule.Active,
			&schedule.LastRunAt,
			&schedule.CreatedAt,
			&schedule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear agendamento: %w", err)
		}
		schedules = append(schedules, &schedule)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return schedules, nil
}

// ListActiveSchedules retorna todos os agendamentos ativos com o cohort
// correspondente já carregado. Usado pelo ciclo de sincronização.
func (r *scheduleRepository) ListActiveSchedules() ([]*domain.TrackingSchedule, error) {
	query, args, err := squirrel.
		Select(
			"ts.id", "ts.owner_id", "ts.cohort_id", "ts.frequency", "ts.day_of_week",
			"ts.hour_utc", "ts.is_active", "ts.last_run_at", "ts.created_at", "ts.updated_at",
			"c.id", "c.owner_id", "c.name", "c.postcode", "c.keyword", "c.radius_km",
			"c.business_name", "c.notes", "c.created_at", "c.updated_at",
		).
		From(schedulesTable + " ts").
		Join(cohortsTable + " c ON c.id = ts.cohort_id").
		Where(squirrel.Eq{"ts.is_active": true}).
		OrderBy("ts.created_at ASC").
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

	schedules := make([]*domain.TrackingSchedule, 0)
	for rows.Next() {
		var schedule domain.TrackingSchedule
		var cohort domain.Cohort
		if err := rows.Scan(
			&schedule.ID,
			&schedule.OwnerID,
			&schedule.CohortID,
			&schedule.Frequency,
			&schedule.DayOfWeek,
			&schedule.HourUTC,
			&schedule.Active,
			&schedule.LastRunAt,
			&schedule.CreatedAt,
			&schedule.UpdatedAt,
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
			return nil, fmt.Errorf("erro ao escanear agendamento ativo: %w", err)
		}
		schedule.Cohort = &cohort
		schedules = append(schedules, &schedule)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return schedules, nil
}

// UpdateLastRunAt avança o marcador de última execução. O marcador nunca
// retrocede: execuções concorrentes ou atrasadas não sobrescrevem um valor
// mais recente.
func (r *scheduleRepository) UpdateLastRunAt(scheduleID string, runAt time.Time) error {
	query, args, err := squirrel.
		Update(schedulesTable).
		Set("last_run_at", runAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": scheduleID}).
		Where(squirrel.Or{
			squirrel.Eq{"last_run_at": nil},
			squirrel.Lt{"last_run_at": runAt},
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *scheduleRepository) DeleteSchedule(scheduleID string, ownerID int) error {
	query, args, err := squirrel.
		Delete(schedulesTable).
		Where(squirrel.Eq{"id": scheduleID, "owner_id": ownerID}).
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
