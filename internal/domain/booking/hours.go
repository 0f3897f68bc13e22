package booking

import (
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// DayHours é o expediente de um dia da semana.
type DayHours struct {
	DayOfWeek   int  `json:"day_of_week"`
	StartHour   int  `json:"start_hour"`
	StartMinute int  `json:"start_minute"`
	EndHour     int  `json:"end_hour"`
	EndMinute   int  `json:"end_minute"`
	IsOpen      bool `json:"is_open"`
}

// WeeklyHours é indexado pelo dia da semana (0=domingo).
type WeeklyHours [7]DayHours

func (d DayHours) startMinutes() int { return d.StartHour*60 + d.StartMinute }
func (d DayHours) endMinutes() int   { return d.EndHour*60 + d.EndMinute }

// Validate garante que um dia aberto começa antes de terminar.
func (d DayHours) Validate() error {
	if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
		return httperr.ErrValidation("invalid_day_of_week", "Dia da semana deve estar entre 0 (domingo) e 6 (sábado).")
	}
	if !d.IsOpen {
		return nil
	}
	if d.StartHour < 0 || d.StartHour > 23 || d.EndHour < 0 || d.EndHour > 23 ||
		d.StartMinute < 0 || d.StartMinute > 59 || d.EndMinute < 0 || d.EndMinute > 59 {
		return httperr.ErrValidation("invalid_time", fmt.Sprintf("Horário inválido para o dia %d.", d.DayOfWeek))
	}
	if d.startMinutes() >= d.endMinutes() {
		return httperr.ErrValidation("invalid_hours_range", fmt.Sprintf("O horário de abertura deve ser anterior ao de fechamento (dia %d).", d.DayOfWeek))
	}
	return nil
}

// DefaultWeeklyHours: domingo fechado, seg-qua 14:00-18:30, qui-sáb 14:00-21:00.
func DefaultWeeklyHours() WeeklyHours {
	var w WeeklyHours
	for day := 0; day < 7; day++ {
		switch {
		case day == 0:
			w[day] = DayHours{DayOfWeek: day}
		case day <= 3:
			w[day] = DayHours{DayOfWeek: day, StartHour: 14, EndHour: 18, EndMinute: 30, IsOpen: true}
		default:
			w[day] = DayHours{DayOfWeek: day, StartHour: 14, EndHour: 21, IsOpen: true}
		}
	}
	return w
}

// ResolveWeeklyHours monta a semana a partir dos registros da barbearia.
// Sem registros vale o padrão; com registros, dias ausentes ficam fechados.
func ResolveWeeklyHours(records []models.BarbershopHours) (WeeklyHours, bool) {
	if len(records) == 0 {
		return DefaultWeeklyHours(), true
	}

	var w WeeklyHours
	for day := range w {
		w[day] = DayHours{DayOfWeek: day}
	}

	for _, r := range records {
		if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
			continue
		}
		w[r.DayOfWeek] = DayHours{
			DayOfWeek:   r.DayOfWeek,
			StartHour:   r.StartHour,
			StartMinute: r.StartMinute,
			EndHour:     r.EndHour,
			EndMinute:   r.EndMinute,
			IsOpen:      r.IsOpen,
		}
	}
	return w, false
}

// ValidateWeek valida todos os dias e rejeita dias repetidos.
func ValidateWeek(days []DayHours) error {
	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if err := d.Validate(); err != nil {
			return err
		}
		if seen[d.DayOfWeek] {
			return httperr.ErrValidation("duplicate_day_of_week", fmt.Sprintf("Dia %d informado mais de uma vez.", d.DayOfWeek))
		}
		seen[d.DayOfWeek] = true
	}
	return nil
}

func ToRecords(barbershopID uint, days []DayHours) []models.BarbershopHours {
	out := make([]models.BarbershopHours, 0, len(days))
	for _, d := range days {
		out = append(out, models.BarbershopHours{
			BarbershopID: barbershopID,
			DayOfWeek:    d.DayOfWeek,
			StartHour:    d.StartHour,
			StartMinute:  d.StartMinute,
			EndHour:      d.EndHour,
			EndMinute:    d.EndMinute,
			IsOpen:       d.IsOpen,
		})
	}
	return out
}
