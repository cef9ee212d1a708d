package domain

import "time"

type ScheduleFrequency string

const (
	FrequencyDaily  ScheduleFrequency = "daily"
	FrequencyWeekly ScheduleFrequency = "weekly"
)

// DefaultDayOfWeek é o dia usado por agendamentos semanais sem dia configurado (segunda-feira)
const DefaultDayOfWeek = 1

// TrackingSchedule define quando um cohort deve ter um novo snapshot capturado.
// DayOfWeek (0=domingo..6=sábado) só é relevante quando a frequência é semanal.
type TrackingSchedule struct {
	ID        string            `json:"id"`
	OwnerID   int               `json:"owner_id"`
	CohortID  string            `json:"cohort_id"`
	Frequency ScheduleFrequency `json:"frequency"`
	DayOfWeek *int              `json:"day_of_week"`
	HourUTC   int               `json:"hour_utc"`
	Active    bool              `json:"is_active"`
	LastRunAt *time.Time        `json:"last_run_at"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Cohort é preenchido apenas quando o agendamento é carregado com join
	Cohort *Cohort `json:"cohort,omitempty"`
}

type CreateScheduleRequest struct {
	CohortID  string            `json:"cohort_id"`
	Frequency ScheduleFrequency `json:"frequency"`
	DayOfWeek *int              `json:"day_of_week"`
	HourUTC   int               `json:"hour_utc"`
}

type UpdateScheduleRequest struct {
	ID        string             `json:"id"`
	Frequency *ScheduleFrequency `json:"frequency"`
	DayOfWeek *int               `json:"day_of_week"`
	HourUTC   *int               `json:"hour_utc"`
	Active    *bool              `json:"is_active"`
}
