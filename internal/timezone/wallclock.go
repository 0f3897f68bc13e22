package timezone

import (
	"fmt"
	"time"
)

// Horários de agendamento são gravados com os campos de relógio local
// escritos como UTC e lidos de volta da mesma forma. Use sempre o par
// StoreWallClock / WallClockFromStored; nunca formate o instante bruto.

// WallClock é uma data e hora civis, sem fuso.
type WallClock struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

// StoreWallClock monta o instante persistido para a data/hora escolhida.
func StoreWallClock(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

// WallClockFromStored devolve exatamente os campos gravados por
// StoreWallClock, em qualquer fuso que o driver tenha usado na leitura.
func WallClockFromStored(stored time.Time) WallClock {
	u := stored.UTC()
	return WallClock{
		Year:   u.Year(),
		Month:  u.Month(),
		Day:    u.Day(),
		Hour:   u.Hour(),
		Minute: u.Minute(),
	}
}

// Date formata como AAAA-MM-DD.
func (w WallClock) Date() string {
	return fmt.Sprintf("%04d-%02d-%02d", w.Year, int(w.Month), w.Day)
}

// Clock formata como HH:MM.
func (w WallClock) Clock() string {
	return fmt.Sprintf("%02d:%02d", w.Hour, w.Minute)
}

func (w WallClock) String() string {
	return w.Date() + " " + w.Clock()
}

// In converte para um instante real em loc. Em horários inexistentes
// (salto do horário de verão) o time.Date normaliza a hora, então use
// apenas onde um instante é necessário; para exibição use Date e Clock.
func (w WallClock) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(w.Year, w.Month, w.Day, w.Hour, w.Minute, 0, 0, loc)
}

// StoredDayRange devolve o intervalo [início, fim) de instantes
// persistidos que pertencem ao dia civil informado.
func StoredDayRange(year int, month time.Month, day int) (time.Time, time.Time) {
	start := StoreWallClock(year, month, day, 0, 0)
	return start, start.AddDate(0, 0, 1)
}
