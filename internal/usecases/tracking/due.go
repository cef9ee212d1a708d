// Package tracking contém o núcleo do rastreamento de ranking local: o
// predicado de agendamento devido, a detecção de mudanças entre snapshots e a
// classificação de alertas, além do serviço que orquestra a execução.
package tracking

import (
	"time"

	"github.com/jbiddulph/localseo/internal/domain"
)

// IsDue decide se um agendamento deve executar agora. O chamador deve invocar
// o predicado pelo menos uma vez por hora (idealmente na hora em ponto): a
// janela é a igualdade da hora UTC atual, então uma janela perdida não é
// recuperada — o agendamento espera o próximo ciclo.
func IsDue(schedule domain.TrackingSchedule, now time.Time) bool {
	if !schedule.Active {
		return false
	}

	now = now.UTC()
	if now.Hour() != schedule.HourUTC {
		return false
	}

	if schedule.Frequency == domain.FrequencyDaily {
		if schedule.LastRunAt == nil {
			return true
		}

		// Comparação pela projeção YYYY-MM-DD, não por delta de 24h: uma
		// re-execução no mesmo dia só acontece depois da virada da data UTC
		lastDate := schedule.LastRunAt.UTC().Format(time.DateOnly)
		today := now.Format(time.DateOnly)
		return lastDate != today
	}

	dayOfWeek := domain.DefaultDayOfWeek
	if schedule.DayOfWeek != nil {
		dayOfWeek = *schedule.DayOfWeek
	}

	if int(now.Weekday()) != dayOfWeek {
		return false
	}

	if schedule.LastRunAt == nil {
		return true
	}

	// Guarda estrita de >6 dias para não disparar duas vezes na mesma semana
	return now.Sub(*schedule.LastRunAt) > 6*24*time.Hour
}
