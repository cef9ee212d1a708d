package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jbiddulph/localseo/internal/domain"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func intPtr(i int) *int {
	return &i
}

func TestIsDue_Daily(t *testing.T) {
	// Quinta-feira, 15 de janeiro de 2026, 09:00 UTC
	now := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		schedule domain.TrackingSchedule
		now      time.Time
		expected bool
	}{
		{
			name: "Agendamento inativo nunca é devido",
			schedule: domain.TrackingSchedule{
				Frequency: domain.FrequencyDaily,
				HourUTC:   9,
				Active:    false,
			},
			now:      now,
			expected: false,
		},
		{
			name: "Fora da hora configurada não é devido",
			schedule: domain.TrackingSchedule{
				Frequency: domain.FrequencyDaily,
				HourUTC:   10,
				Active:    true,
			},
			now:      now,
			expected: false,
		},
		{
			name: "Primeira execução na hora configurada é devida",
			schedule: domain.TrackingSchedule{
				Frequency: domain.FrequencyDaily,
				HourUTC:   9,
				Active:    true,
				LastRunAt: nil,
			},
			now:      now,
			expected: true,
		},
		{
			name: "Já executado hoje não repete",
			schedule: domain.TrackingSchedule{
				Frequency: domain.FrequencyDaily,
				HourUTC:   9,
				Active:    true,
				LastRunAt: timePtr(time.Date(2026, 1, 15, 9, 0, 5, 0, time.UTC)),
			},
			now:      now,
			expected: false,
		},
		{
			name: "Executado ontem volta a ser devido",
			schedule: domain.TrackingSchedule{
				Frequency: domain.FrequencyDaily,
				HourUTC:   9,
				Active:    true,
				LastRunAt: timePtr(time.Date(2026, 1, 14, 9, 0, 5, 0, time.UTC)),
			},
			now:      now,
			expected: true,
		},
		{
			name: "A comparação é pela data UTC, não por delta de 24 horas",
			schedule: domain.TrackingSchedule{
				Frequency: domain.FrequencyDaily,
				HourUTC:   23,
				Active:    true,
				// Executou 23:50 de ontem; agora são 23:05 de hoje: menos de
				// 24h, mas a data UTC virou
				LastRunAt: timePtr(time.Date(2026, 1, 14, 23, 50, 0, 0, time.UTC)),
			},
			now:      time.Date(2026, 1, 15, 23, 5, 0, 0, time.UTC),
			expected: true,
		},
		{
			name: "Hora avaliada em UTC mesmo com now em outro fuso",
			schedule: domain.TrackingSchedule{
				Frequency: domain.FrequencyDaily,
				HourUTC:   9,
				Active:    true,
			},
			// 06:00 em UTC-3 é 09:00 UTC
			now:      time.Date(2026, 1, 15, 6, 0, 0, 0, time.FixedZone("BRT", -3*3600)),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDue(tt.schedule, tt.now))
		})
	}
}

func TestIsDue_Weekly(t *testing.T) {
	// Segunda-feira, 12 de janeiro de 2026, 07:00 UTC
	monday := time.Date(2026, 1, 12, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		schedule domain.TrackingSchedule
		now      time.Time
		expected bool
	}{
		{
			name: "Semanal sem dia configurado assume segunda-feira",
			schedule: domain.TrackingSchedule{
				Frequency: domain.FrequencyWeekly,
				DayOfWeek: nil,
				HourUTC:   7,
				Active:    true,
			},
			now:      monday,
			expected: true,
		},
		{
			name: "Dia da semana errado não é devido",
			schedule: domain.TrackingSchedule{
				Frequency: domain.FrequencyWeekly,
				DayOfWeek: intPtr(3),
				HourUTC:   7,
				Active:    true,
			},
			now:      monday,
			expected: false,
		},
		{
			name: "Dia configurado e hora certa é devido",
			schedule: domain.TrackingSchedule{
				Frequency: domain.FrequencyWeekly,
				DayOfWeek: intPtr(1),
				HourUTC:   7,
				Active:    true,
			},
			now:      monday,
			expected: true,
		},
		{
			name: "Executado há exatamente 6 dias ainda não repete",
			schedule: domain.TrackingSchedule{
				Frequency: domain.FrequencyWeekly,
				DayOfWeek: intPtr(1),
				HourUTC:   7,
				Active:    true,
				LastRunAt: timePtr(monday.Add(-6 * 24 * time.Hour)),
			},
			now:      monday,
			expected: false,
		},
		{
			name: "Executado há 7 dias volta a ser devido",
			schedule: domain.TrackingSchedule{
				Frequency: domain.FrequencyWeekly,
				DayOfWeek: intPtr(1),
				HourUTC:   7,
				Active:    true,
				LastRunAt: timePtr(monday.Add(-7 * 24 * time.Hour)),
			},
			now:      monday,
			expected: true,
		},
		{
			name: "Execução na mesma manhã não repete",
			schedule: domain.TrackingSchedule{
				Frequency: domain.FrequencyWeekly,
				DayOfWeek: intPtr(1),
				HourUTC:   7,
				Active:    true,
				LastRunAt: timePtr(monday.Add(-10 * time.Minute)),
			},
			now:      monday,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDue(tt.schedule, tt.now))
		})
	}
}
