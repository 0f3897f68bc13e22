package booking

import (
	"time"
)

const SlotInterval = 45 * time.Minute

const slotLayout = "15:04"

// Date é um dia civil, sem fuso.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// GenerateSlots devolve os horários "HH:MM" do dia, do início do expediente
// em passos de interval, incluindo qualquer passo <= fim.
func GenerateSlots(day DayHours, interval time.Duration) []string {
	if !day.IsOpen || interval <= 0 {
		return []string{}
	}

	// aritmética em UTC: horário de parede sem saltos de horário de verão
	base := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	cur := base.Add(time.Duration(day.startMinutes()) * time.Minute)
	end := base.Add(time.Duration(day.endMinutes()) * time.Minute)

	slots := []string{}
	for !cur.After(end) {
		slots = append(slots, cur.Format(slotLayout))
		cur = cur.Add(interval)
	}
	return slots
}

// ComputeAvailableSlots aplica o expediente do dia da semana de date e
// remove os horários já reservados.
func ComputeAvailableSlots(week WeeklyHours, date Date, reserved map[string]struct{}) []string {
	all := GenerateSlots(week[int(date.Weekday())], SlotInterval)
	return ExcludeReserved(all, reserved)
}

func ExcludeReserved(slots []string, reserved map[string]struct{}) []string {
	if len(reserved) == 0 {
		return slots
	}
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if _, taken := reserved[s]; !taken {
			out = append(out, s)
		}
	}
	return out
}

// IsOfferable informa se hh:mm é um dos horários gerados para o dia.
func IsOfferable(week WeeklyHours, date Date, hour, minute int) bool {
	want := time.Date(2000, time.January, 1, hour, minute, 0, 0, time.UTC).Format(slotLayout)
	for _, s := range GenerateSlots(week[int(date.Weekday())], SlotInterval) {
		if s == want {
			return true
		}
	}
	return false
}

func FormatSlot(t time.Time) string {
	return t.Format(slotLayout)
}
