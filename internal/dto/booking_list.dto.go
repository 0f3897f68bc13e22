package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingDTO expõe o horário já reinterpretado no relógio da barbearia.
type BookingDTO struct {
	ID uint `json:"id"`

	BarbershopID   uint   `json:"barbershop_id"`
	BarbershopName string `json:"barbershop_name,omitempty"`

	ServiceID    uint            `json:"service_id"`
	ServiceName  string          `json:"service_name"`
	ServicePrice decimal.Decimal `json:"service_price"`

	UserID      uint   `json:"user_id"`
	ClientName  string `json:"client_name,omitempty"`
	ClientPhone string `json:"client_phone,omitempty"`

	StartsAt time.Time `json:"starts_at"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
}

type AvailabilityDTO struct {
	Date      string   `json:"date"`
	DayOfWeek int      `json:"day_of_week"`
	Slots     []string `json:"slots"`
}
